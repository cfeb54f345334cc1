package analyze

import (
	"sort"
	"strings"
)

// Summary extracts the n sentences most related to the query and returns
// them in their original order. Early sentences get a small position bonus
// so a lede beats an equally-matching sentence buried at the bottom.
func Summary(text, query string, n int) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= n {
		return strings.Join(sentences, ". ") + "."
	}

	terms := tokenize(query)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		lower := strings.ToLower(s)
		score := 0.0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		score += 1.0 / float64(i+1) // position bonus
		ranked[i] = scored{idx: i, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	picked := ranked[:n]
	sort.Slice(picked, func(i, j int) bool { return picked[i].idx < picked[j].idx })

	out := make([]string, n)
	for i, p := range picked {
		out[i] = sentences[p.idx]
	}
	return strings.Join(out, ". ") + "."
}
