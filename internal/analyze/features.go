package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// Sentiment labels text by net polarity over the static word lists.
func Sentiment(text string) string {
	net := 0
	for _, tok := range tokenize(text) {
		if positiveWords[tok] {
			net++
		} else if negativeWords[tok] {
			net--
		}
	}
	switch {
	case net > 0:
		return "positive"
	case net < 0:
		return "negative"
	default:
		return "neutral"
	}
}

var sentenceRe = regexp.MustCompile(`[.!?]+\s`)

func splitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// syllables approximates syllable count by vowel groups, minimum one.
func syllables(word string) int {
	n := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			n++
		}
		prevVowel = vowel
	}
	if n == 0 {
		return 1
	}
	return n
}

// Readability maps a Flesch-style sentence-length and syllable formula onto
// [0,100]. Higher is easier to read.
func Readability(text string) float64 {
	sentences := splitSentences(text)
	tokens := tokenize(text)
	if len(sentences) == 0 || len(tokens) == 0 {
		return 0
	}

	totalSyllables := 0
	for _, tok := range tokens {
		totalSyllables += syllables(tok)
	}

	wordsPerSentence := float64(len(tokens)) / float64(len(sentences))
	syllablesPerWord := float64(totalSyllables) / float64(len(tokens))

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ContentType classifies text by cue-phrase counting. The first cue set in
// declaration order wins ties; no cues at all means "general".
func ContentType(text string) string {
	lower := strings.ToLower(text)
	best := "general"
	bestCount := 0
	for _, ct := range contentTypeCues {
		count := 0
		for _, cue := range ct.cues {
			count += strings.Count(lower, cue)
		}
		if count > bestCount {
			best = ct.label
			bestCount = count
		}
	}
	return best
}

// Complexity buckets the readability score into a coarse label.
func Complexity(text string) string {
	r := Readability(text)
	switch {
	case r >= 60:
		return "basic"
	case r >= 30:
		return "intermediate"
	default:
		return "advanced"
	}
}

var entityRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}\b`)

// Entities extracts capitalized phrases as entity candidates. Single common
// sentence-starters are filtered; output is deduplicated and sorted.
func Entities(text string) []string {
	seen := make(map[string]bool)
	for _, m := range entityRe.FindAllString(text, -1) {
		if len(m) < 3 {
			continue
		}
		// Drop lone capitalized stopwords ("The", "This", ...).
		if !strings.Contains(m, " ") && stopwords[strings.ToLower(m)] {
			continue
		}
		seen[m] = true
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Topics returns the top-K non-stopword terms scored by frequency weighted
// by term length. Ties break alphabetically so output is stable.
func Topics(text string, k int) []Topic {
	freq := make(map[string]int)
	for _, tok := range tokenize(text) {
		if stopwords[tok] || len(tok) < 3 {
			continue
		}
		freq[tok]++
	}
	if len(freq) == 0 {
		return nil
	}

	topics := make([]Topic, 0, len(freq))
	for term, n := range freq {
		topics = append(topics, Topic{
			Term:   term,
			Weight: float64(n) * (1 + float64(len(term))/10),
		})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Weight != topics[j].Weight {
			return topics[i].Weight > topics[j].Weight
		}
		return topics[i].Term < topics[j].Term
	})
	if len(topics) > k {
		topics = topics[:k]
	}
	return topics
}
