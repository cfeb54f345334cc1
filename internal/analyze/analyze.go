// Package analyze scores a fetched document against the research query and
// extracts content features. All scoring is deterministic: the same document
// text and query always produce the same result.
package analyze

import (
	"regexp"
	"strings"

	"github.com/avwhitaker/scout/internal/fetch"
)

// Relevance factor weights. They sum to 1 so the score stays in [0,1].
const (
	weightTermFreq  = 0.30
	weightCoverage  = 0.25
	weightPhrase    = 0.30
	weightProximity = 0.15
)

// Topic is one weighted topic term.
type Topic struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Result is the scored, characterized form of a document. Immutable once
// produced; a changed threshold affects future results only.
type Result struct {
	Doc          fetch.Document `json:"document"`
	Relevance    float64        `json:"relevance"`
	LowRelevance bool           `json:"low_relevance"`
	Credibility  float64        `json:"credibility"`
	Sentiment    string         `json:"sentiment"`
	Readability  float64        `json:"readability"`
	ContentType  string         `json:"content_type"`
	Complexity   string         `json:"complexity"`
	Entities     []string       `json:"entities"`
	Topics       []Topic        `json:"topics"`
	Summary      string         `json:"summary"`
}

// Options tunes feature extraction. Zero values get defaults.
type Options struct {
	TopicCount       int // top-K topics returned, default 10
	SummarySentences int // extractive summary length, default 3
}

// Analyzer scores documents for a single query. Stateless and safe for
// concurrent use.
type Analyzer struct {
	opts Options
}

func New(opts Options) *Analyzer {
	if opts.TopicCount <= 0 {
		opts.TopicCount = 10
	}
	if opts.SummarySentences <= 0 {
		opts.SummarySentences = 3
	}
	return &Analyzer{opts: opts}
}

// Analyze scores doc against query. Credibility is filled in by the caller
// once corpus-level signals (semantic alignment, domain novelty) are known.
func (a *Analyzer) Analyze(doc fetch.Document, query string, threshold float64) Result {
	text := doc.Text
	if text == "" {
		text = doc.Snippet
	}

	rel := Relevance(text, query)
	return Result{
		Doc:          doc,
		Relevance:    rel,
		LowRelevance: rel < threshold,
		Sentiment:    Sentiment(text),
		Readability:  Readability(text),
		ContentType:  ContentType(text),
		Complexity:   Complexity(text),
		Entities:     Entities(text),
		Topics:       Topics(text, a.opts.TopicCount),
		Summary:      Summary(text, query, a.opts.SummarySentences),
	}
}

var wordRe = regexp.MustCompile(`[a-z0-9][a-z0-9'-]*`)

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Relevance combines four normalized factors: query-term frequency,
// distinct-term coverage, an exact-phrase bonus, and term proximity.
func Relevance(text, query string) float64 {
	terms := tokenize(query)
	tokens := tokenize(text)
	if len(terms) == 0 || len(tokens) == 0 {
		return 0
	}

	termSet := make(map[string]bool, len(terms))
	for _, t := range terms {
		termSet[t] = true
	}

	matches := 0
	present := make(map[string]bool)
	var positions []int
	for i, tok := range tokens {
		if termSet[tok] {
			matches++
			present[tok] = true
			positions = append(positions, i)
		}
	}

	tf := clamp01(10 * float64(matches) / float64(len(tokens)))
	coverage := float64(len(present)) / float64(len(termSet))

	phrase := 0.0
	if normQuery := strings.Join(terms, " "); normQuery != "" &&
		strings.Contains(strings.Join(tokens, " "), normQuery) {
		phrase = 1.0
	}

	return weightTermFreq*tf +
		weightCoverage*coverage +
		weightPhrase*phrase +
		weightProximity*proximity(positions)
}

// proximity scores how tightly matched term positions cluster. Adjacent
// matches score 1; the score decays with the average gap between matches.
func proximity(positions []int) float64 {
	if len(positions) == 0 {
		return 0
	}
	if len(positions) == 1 {
		return 0.5
	}
	totalGap := 0
	for i := 1; i < len(positions); i++ {
		totalGap += positions[i] - positions[i-1]
	}
	avgGap := float64(totalGap) / float64(len(positions)-1)
	return clamp01(1 / avgGap)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
