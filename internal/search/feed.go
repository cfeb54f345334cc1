package search

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/avwhitaker/scout/internal/logging"
)

// FeedSource is one feed the provider consults.
type FeedSource struct {
	Name string
	URL  string
}

// FeedProvider searches a fixed set of RSS/Atom feeds for items whose title
// or description mention the query. Cheap to run and fully offline-testable;
// used as the primary provider in the default configuration.
type FeedProvider struct {
	sources []FeedSource
	client  *http.Client
}

// NewFeedProvider creates a FeedProvider over the given sources.
func NewFeedProvider(sources []FeedSource, timeout time.Duration) *FeedProvider {
	return &FeedProvider{
		sources: sources,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *FeedProvider) Name() string { return "feeds" }

// Search fetches each configured feed and keeps items matching the query.
// Per-feed failures are logged and skipped; the provider only errors when
// every feed failed or nothing matched.
func (p *FeedProvider) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	terms := QueryTerms(query)
	if len(terms) == 0 {
		return nil, ErrNoResults
	}

	var hits []Hit
	failures := 0

	for _, src := range p.sources {
		if ctx.Err() != nil {
			return hits, ctx.Err()
		}

		items, err := p.fetchFeed(ctx, src)
		if err != nil {
			logging.Debug("feed provider: source failed", "source", src.Name, "err", err)
			failures++
			continue
		}

		for _, item := range items {
			if !matchesQuery(item.Title+" "+item.Description, terms) {
				continue
			}
			hits = append(hits, Hit{
				Title:   item.Title,
				URL:     item.Link,
				Snippet: item.Description,
				Source:  src.Name,
			})
			if len(hits) >= maxResults {
				return hits, nil
			}
		}
	}

	if len(hits) == 0 {
		if failures == len(p.sources) && len(p.sources) > 0 {
			return nil, fmt.Errorf("feed provider: all %d sources failed", failures)
		}
		return nil, ErrNoResults
	}
	return hits, nil
}

func (p *FeedProvider) fetchFeed(ctx context.Context, src FeedSource) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Scout/1.0 (+https://github.com/avwhitaker/scout)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed.Items, nil
}
