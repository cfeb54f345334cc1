package osint

import (
	"regexp"
	"sort"
	"strings"
)

// Location extraction patterns: prepositional phrases ("in New York"),
// suffixed forms ("Berlin region"), and a small gazetteer of names that the
// other two patterns miss.
var (
	prepLocationRe   = regexp.MustCompile(`\b(?:in|at|from|to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	suffixLocationRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:city|country|state|region|province)`)
	gazetteerRe      = regexp.MustCompile(`\b(?:United States|United Kingdom|China|India|Russia|Japan|Germany|France|Brazil|Canada|Australia)\b`)
)

// Leading articles swallowed by the capitalized-phrase patterns.
var leadingArticles = map[string]bool{"The": true, "A": true, "An": true}

func trimArticle(phrase string) string {
	for {
		first, rest, ok := strings.Cut(phrase, " ")
		if !ok || !leadingArticles[first] {
			return phrase
		}
		phrase = rest
	}
}

// Locations extracts location mentions from text. Deduplicated and sorted.
func Locations(text string) []string {
	seen := make(map[string]bool)
	for _, m := range prepLocationRe.FindAllStringSubmatch(text, -1) {
		if loc := trimArticle(m[1]); loc != "" {
			seen[loc] = true
		}
	}
	for _, m := range suffixLocationRe.FindAllStringSubmatch(text, -1) {
		if loc := trimArticle(m[1]); loc != "" {
			seen[loc] = true
		}
	}
	for _, m := range gazetteerRe.FindAllString(text, -1) {
		seen[m] = true
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// LocationsByDocument maps each document URL to its location mentions,
// dropping documents with none.
func LocationsByDocument(docs map[string]string) map[string][]string {
	out := make(map[string][]string)
	for url, text := range docs {
		if locs := Locations(text); len(locs) > 0 {
			out[url] = locs
		}
	}
	return out
}
