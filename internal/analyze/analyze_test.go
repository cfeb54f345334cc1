package analyze

import (
	"strings"
	"testing"

	"github.com/avwhitaker/scout/internal/fetch"
)

func TestRelevanceBounds(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
	}{
		{"empty text", "", "climate policy"},
		{"empty query", "some document text", ""},
		{"no overlap", "cooking recipes for pasta", "quantum computing"},
		{"full overlap", "climate policy climate policy", "climate policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relevance(tt.text, tt.query)
			if got < 0 || got > 1 {
				t.Errorf("Relevance = %v, want in [0,1]", got)
			}
		})
	}
}

func TestRelevancePhraseMonotonicity(t *testing.T) {
	query := "climate policy"
	phrase := "The new climate policy was announced today by the ministry."
	scattered := "The climate report discussed several topics and a policy question."

	if p, s := Relevance(phrase, query), Relevance(scattered, query); p < s {
		t.Errorf("phrase doc scored %v, scattered doc scored %v; want phrase >= scattered", p, s)
	}
}

func TestRelevanceDeterminism(t *testing.T) {
	text := "Climate policy experts met to discuss emissions targets and climate adaptation."
	query := "climate policy"
	first := Relevance(text, query)
	for i := 0; i < 5; i++ {
		if got := Relevance(text, query); got != first {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a great success and excellent progress", "positive"},
		{"a complete failure, total crisis and loss", "negative"},
		{"the meeting took place on tuesday", "neutral"},
		{"good results despite a minor problem", "neutral"},
	}
	for _, tt := range tests {
		if got := Sentiment(tt.text); got != tt.want {
			t.Errorf("Sentiment(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestReadabilityBounds(t *testing.T) {
	texts := []string{
		"The cat sat. The dog ran. It was fun.",
		"Notwithstanding the aforementioned considerations, interdisciplinary methodological heterogeneity substantially complicates reproducibility.",
		"",
	}
	for _, text := range texts {
		got := Readability(text)
		if got < 0 || got > 100 {
			t.Errorf("Readability(%q) = %v, want in [0,100]", text, got)
		}
	}
}

func TestReadabilitySimpleBeatsDense(t *testing.T) {
	simple := "The cat sat. The dog ran. We had fun. It was good."
	dense := "Interdisciplinary methodological heterogeneity substantially complicates infrastructural reproducibility considerations notwithstanding preliminary epistemological assumptions."
	if s, d := Readability(simple), Readability(dense); s <= d {
		t.Errorf("simple text scored %v, dense text scored %v; want simple > dense", s, d)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"academic", "Abstract. This study presents a methodology for testing the hypothesis. Findings suggest...", "academic"},
		{"news", "Officials announced the decision today, Reuters reported. According to sources...", "news"},
		{"technical", "The API documentation covers the algorithm and its implementation. Clone the repository to deploy.", "technical"},
		{"opinion", "In my view, the editorial misses the point. I believe we should reconsider.", "opinion"},
		{"general", "The weather was mild and the streets were quiet.", "general"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentType(tt.text); got != tt.want {
				t.Errorf("ContentType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntities(t *testing.T) {
	text := "Marie Curie worked in Paris. The institute honored Marie Curie last year."
	got := Entities(text)

	found := map[string]bool{}
	for _, e := range got {
		found[e] = true
	}
	if !found["Marie Curie"] {
		t.Errorf("entities %v missing %q", got, "Marie Curie")
	}
	if !found["Paris"] {
		t.Errorf("entities %v missing %q", got, "Paris")
	}
	if found["The"] {
		t.Error("lone capitalized stopword extracted as entity")
	}

	// Deduplication: Marie Curie appears twice in the text, once in output.
	count := 0
	for _, e := range got {
		if e == "Marie Curie" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("entity appears %d times, want 1", count)
	}
}

func TestTopics(t *testing.T) {
	text := strings.Repeat("emissions ", 5) + strings.Repeat("policy ", 3) + "the and of brief"
	topics := Topics(text, 3)

	if len(topics) == 0 {
		t.Fatal("no topics returned")
	}
	if topics[0].Term != "emissions" {
		t.Errorf("top topic = %q, want %q", topics[0].Term, "emissions")
	}
	for i := 1; i < len(topics); i++ {
		if topics[i].Weight > topics[i-1].Weight {
			t.Errorf("topics not sorted by weight at index %d", i)
		}
	}
	for _, topic := range topics {
		if stopwords[topic.Term] {
			t.Errorf("stopword %q returned as topic", topic.Term)
		}
	}
}

func TestSummaryPicksQuerySentences(t *testing.T) {
	text := "The conference opened on Monday. Climate policy dominated the agenda. " +
		"Lunch was served at noon. Delegates debated climate policy measures late into the night. " +
		"The venue was crowded."
	got := Summary(text, "climate policy", 2)

	if !strings.Contains(got, "Climate policy dominated") {
		t.Errorf("summary %q missing the most relevant sentence", got)
	}
	if strings.Contains(got, "Lunch was served") {
		t.Errorf("summary %q includes an irrelevant sentence", got)
	}
}

func TestAnalyzeLowRelevanceFlag(t *testing.T) {
	a := New(Options{})
	doc := fetch.Document{
		URL:  "https://example.com/a",
		Text: "An unrelated article about gardening tools and soil quality.",
	}

	res := a.Analyze(doc, "quantum computing", 0.6)
	if !res.LowRelevance {
		t.Error("off-topic document not flagged low-relevance")
	}
	if res.Relevance < 0 || res.Relevance > 1 {
		t.Errorf("relevance = %v, want in [0,1]", res.Relevance)
	}

	// A flagged result is still produced, never dropped.
	if res.Doc.URL != doc.URL {
		t.Error("low-relevance result lost its document")
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	a := New(Options{})
	doc := fetch.Document{
		URL: "https://example.com/a",
		Text: "Climate policy experts met in Geneva. The study presents findings " +
			"on emissions. Progress was strong and the outlook is promising.",
	}

	first := a.Analyze(doc, "climate policy", 0.5)
	second := a.Analyze(doc, "climate policy", 0.5)

	if first.Relevance != second.Relevance {
		t.Errorf("relevance differs across runs: %v vs %v", first.Relevance, second.Relevance)
	}
	if first.Sentiment != second.Sentiment || first.ContentType != second.ContentType {
		t.Error("feature labels differ across runs")
	}
	if len(first.Entities) != len(second.Entities) {
		t.Fatal("entity counts differ across runs")
	}
	for i := range first.Entities {
		if first.Entities[i] != second.Entities[i] {
			t.Errorf("entity order differs at %d: %q vs %q", i, first.Entities[i], second.Entities[i])
		}
	}
}
