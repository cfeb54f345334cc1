package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Feed</title>
<item>
<title>Climate policy summit opens</title>
<link>https://example.com/summit</link>
<description>World leaders gather to discuss climate policy.</description>
</item>
<item>
<title>Local sports roundup</title>
<link>https://example.com/sports</link>
<description>Weekend match results.</description>
</item>
</channel>
</rss>`

func TestQueryTerms(t *testing.T) {
	got := QueryTerms("  Climate   POLICY ")
	if !reflect.DeepEqual(got, []string{"climate", "policy"}) {
		t.Errorf("QueryTerms = %v", got)
	}
	if got := QueryTerms("   "); len(got) != 0 {
		t.Errorf("blank query produced terms %v", got)
	}
}

func TestFeedProviderFiltersByQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	p := NewFeedProvider([]FeedSource{{Name: "test", URL: srv.URL}}, 5*time.Second)
	hits, err := p.Search(context.Background(), "climate policy", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].URL != "https://example.com/summit" {
		t.Errorf("hit URL = %q", hits[0].URL)
	}
	if hits[0].Source != "test" {
		t.Errorf("hit source = %q, want the feed name", hits[0].Source)
	}
}

func TestFeedProviderMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	p := NewFeedProvider([]FeedSource{{Name: "test", URL: srv.URL}}, 5*time.Second)
	hits, err := p.Search(context.Background(), "summit roundup", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want capped at 1", len(hits))
	}
}

func TestFeedProviderNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	p := NewFeedProvider([]FeedSource{{Name: "test", URL: srv.URL}}, 5*time.Second)
	_, err := p.Search(context.Background(), "quantum entanglement", 10)
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("err = %v, want ErrNoResults", err)
	}
}

func TestFeedProviderAllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewFeedProvider([]FeedSource{
		{Name: "a", URL: srv.URL},
		{Name: "b", URL: srv.URL},
	}, 5*time.Second)
	_, err := p.Search(context.Background(), "anything", 10)
	if err == nil || errors.Is(err, ErrNoResults) {
		t.Errorf("err = %v, want a hard failure when every source fails", err)
	}
}

func TestFeedProviderSkipsBrokenSource(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer broken.Close()

	p := NewFeedProvider([]FeedSource{
		{Name: "broken", URL: broken.URL},
		{Name: "good", URL: good.URL},
	}, 5*time.Second)
	hits, err := p.Search(context.Background(), "climate", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want 1 from the working source", len(hits))
	}
}

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{Hits: []Hit{{URL: "https://a"}, {URL: "https://b"}}}
	hits, err := p.Search(context.Background(), "anything", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want capped at 1", len(hits))
	}

	empty := &StaticProvider{}
	if _, err := empty.Search(context.Background(), "anything", 5); !errors.Is(err, ErrNoResults) {
		t.Errorf("empty provider err = %v, want ErrNoResults", err)
	}
}
