package osint

import (
	"github.com/avwhitaker/scout/internal/analyze"
	"github.com/avwhitaker/scout/internal/credibility"
)

// Intelligence score blend weights; they sum to 1.
const (
	weightSourceDiversity = 0.25
	weightAvgRelevance    = 0.35
	weightContentDepth    = 0.20
	weightTemporalSpread  = 0.20
)

// diversityTarget is the distinct-domain count at which the diversity
// factor saturates.
const diversityTarget = 5

// IntelligenceReport summarizes overall research quality.
type IntelligenceReport struct {
	Score     float64 `json:"score"`
	Quality   string  `json:"quality"`
	Breakdown struct {
		SourceDiversity float64 `json:"source_diversity"`
		AvgRelevance    float64 `json:"avg_relevance"`
		ContentDepth    float64 `json:"content_depth"`
		TemporalSpread  float64 `json:"temporal_spread"`
	} `json:"breakdown"`
}

// IntelligenceScore blends source diversity, average relevance, content
// depth, and temporal spread of the result set into one quality score in
// [0,1].
func IntelligenceScore(results []analyze.Result) IntelligenceReport {
	var rep IntelligenceReport
	if len(results) == 0 {
		rep.Quality = "no_data"
		return rep
	}

	domains := make(map[string]bool)
	days := make(map[string]bool)
	totalRelevance := 0.0
	totalLength := 0
	for _, r := range results {
		if d := credibility.Domain(r.Doc.URL); d != "" {
			domains[d] = true
		}
		totalRelevance += r.Relevance
		totalLength += len(r.Doc.Text)
		for _, date := range DateMentions(r.Doc.Text) {
			days[date] = true
		}
	}

	rep.Breakdown.SourceDiversity = clampUnit(float64(len(domains)) / diversityTarget)
	rep.Breakdown.AvgRelevance = totalRelevance / float64(len(results))
	rep.Breakdown.ContentDepth = clampUnit(float64(totalLength) / float64(len(results)) / 1000)
	rep.Breakdown.TemporalSpread = clampUnit(float64(len(days)) / 10)

	rep.Score = weightSourceDiversity*rep.Breakdown.SourceDiversity +
		weightAvgRelevance*rep.Breakdown.AvgRelevance +
		weightContentDepth*rep.Breakdown.ContentDepth +
		weightTemporalSpread*rep.Breakdown.TemporalSpread
	rep.Quality = qualityLabel(rep.Score)
	return rep
}

func qualityLabel(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.6:
		return "good"
	case score >= 0.4:
		return "moderate"
	case score >= 0.2:
		return "fair"
	default:
		return "poor"
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
