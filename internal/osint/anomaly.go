package osint

import "math"

// DefaultZScoreThreshold flags points more than two standard deviations
// from the series mean.
const DefaultZScoreThreshold = 2.0

// Anomaly is one flagged point in a numeric series.
type Anomaly struct {
	Index  int     `json:"index"`
	Value  float64 `json:"value"`
	ZScore float64 `json:"z_score"`
}

// Anomalies flags points whose absolute Z-score exceeds threshold. A series
// with fewer than three points, or with zero variance, yields none.
func Anomalies(series []float64, threshold float64) []Anomaly {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	if len(series) < 3 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	variance := 0.0
	for _, v := range series {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(series))
	std := math.Sqrt(variance)
	if std == 0 {
		return nil
	}

	var out []Anomaly
	for i, v := range series {
		z := (v - mean) / std
		if math.Abs(z) > threshold {
			out = append(out, Anomaly{Index: i, Value: v, ZScore: z})
		}
	}
	return out
}
