// Package report renders accumulated research results for callers: formatted
// exports, corpus statistics, and score distributions.
package report

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/avwhitaker/scout/internal/analyze"
	"github.com/avwhitaker/scout/internal/credibility"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format renders results as json, markdown, html, or text. Unknown format
// names fall back to text.
func Format(query string, results []analyze.Result, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode results: %w", err)
		}
		return string(out), nil
	case "markdown":
		return formatMarkdown(query, results), nil
	case "html":
		return formatHTML(query, results), nil
	default:
		return formatText(query, results), nil
	}
}

func avgRelevance(results []analyze.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range results {
		total += r.Relevance
	}
	return total / float64(len(results))
}

func formatMarkdown(query string, results []analyze.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Research Results: %s\n\n", query)
	fmt.Fprintf(&b, "**Total Results:** %d\n", len(results))
	fmt.Fprintf(&b, "**Average Relevance:** %.2f\n\n", avgRelevance(results))

	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", r.Doc.Title)
		fmt.Fprintf(&b, "**URL:** [%s](%s)\n", r.Doc.URL, r.Doc.URL)
		fmt.Fprintf(&b, "**Relevance:** %.2f | **Credibility:** %.2f\n\n", r.Relevance, r.Credibility)
		fmt.Fprintf(&b, "%s\n\n---\n\n", r.Summary)
	}
	return b.String()
}

func formatHTML(query string, results []analyze.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Research Results: %s</h1>", html.EscapeString(query))
	for _, r := range results {
		b.WriteString("<div class='result'>")
		fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(r.Doc.Title))
		fmt.Fprintf(&b, "<p><strong>Relevance:</strong> %.2f</p>", r.Relevance)
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(r.Summary))
		fmt.Fprintf(&b, "<a href='%s'>Read more</a>", html.EscapeString(r.Doc.URL))
		b.WriteString("</div>")
	}
	return b.String()
}

func formatText(query string, results []analyze.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research Results: %s\n\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "%s\nURL: %s\nRelevance: %.2f\n%s\n\n", r.Doc.Title, r.Doc.URL, r.Relevance, r.Summary)
		b.WriteString(strings.Repeat("-", 80) + "\n\n")
	}
	return b.String()
}

// Distribution buckets scores in [0,1] into five equal bins.
type Distribution struct {
	Bins   [5]int  `json:"bins"` // [0,0.2) [0.2,0.4) [0.4,0.6) [0.6,0.8) [0.8,1]
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

func distribute(scores []float64) Distribution {
	var d Distribution
	if len(scores) == 0 {
		return d
	}
	for _, s := range scores {
		bin := int(s * 5)
		if bin > 4 {
			bin = 4
		}
		if bin < 0 {
			bin = 0
		}
		d.Bins[bin]++
		d.Mean += s
	}
	d.Mean /= float64(len(scores))
	variance := 0.0
	for _, s := range scores {
		variance += (s - d.Mean) * (s - d.Mean)
	}
	d.StdDev = math.Sqrt(variance / float64(len(scores)))
	return d
}

// Analysis is the corpus-level statistics payload.
type Analysis struct {
	TotalResults       int            `json:"total_results"`
	AvgRelevance       float64        `json:"avg_relevance"`
	AvgWordCount       int            `json:"avg_word_count"`
	SourceDistribution map[string]int `json:"source_distribution"`
	TopTopics          []analyze.Topic `json:"top_topics"`
	QualityScore       float64        `json:"quality_score"`
	Relevance          Distribution   `json:"relevance_distribution"`
	Credibility        Distribution   `json:"credibility_distribution"`
	LowRelevanceCount  int            `json:"low_relevance_count"`
}

// Analyze computes statistics and score distributions over the result set.
func Analyze(results []analyze.Result) Analysis {
	a := Analysis{
		TotalResults:       len(results),
		SourceDistribution: make(map[string]int),
	}
	if len(results) == 0 {
		return a
	}

	relScores := make([]float64, len(results))
	credScores := make([]float64, len(results))
	topicFreq := make(map[string]float64)
	totalWords := 0

	for i, r := range results {
		relScores[i] = r.Relevance
		credScores[i] = r.Credibility
		if r.LowRelevance {
			a.LowRelevanceCount++
		}
		domain := credibility.Domain(r.Doc.URL)
		if domain == "" {
			domain = "unknown"
		}
		a.SourceDistribution[domain]++
		totalWords += len(strings.Fields(r.Doc.Text))
		for _, topic := range r.Topics {
			topicFreq[topic.Term] += topic.Weight
		}
	}

	a.AvgRelevance = avgRelevance(results)
	a.AvgWordCount = totalWords / len(results)
	a.Relevance = distribute(relScores)
	a.Credibility = distribute(credScores)

	topics := make([]analyze.Topic, 0, len(topicFreq))
	for term, w := range topicFreq {
		topics = append(topics, analyze.Topic{Term: term, Weight: w})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Weight != topics[j].Weight {
			return topics[i].Weight > topics[j].Weight
		}
		return topics[i].Term < topics[j].Term
	})
	if len(topics) > 10 {
		topics = topics[:10]
	}
	a.TopTopics = topics

	diversity := float64(len(a.SourceDistribution)) / 5
	if diversity > 1 {
		diversity = 1
	}
	quantity := float64(len(results)) / 20
	if quantity > 1 {
		quantity = 1
	}
	a.QualityScore = a.AvgRelevance*0.5 + diversity*0.3 + quantity*0.2
	return a
}
