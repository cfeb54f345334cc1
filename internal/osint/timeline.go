package osint

import (
	"regexp"
	"sort"
)

// Date-mention patterns, tried in order. Month-name and ISO forms bucket by
// full date; bare years bucket by year.
var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDateRe = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})\b`)
	yearRe      = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// TimelineBucket groups documents sharing a date mention.
type TimelineBucket struct {
	Date string   `json:"date"` // "2024-03-01" or bare year "2024"
	URLs []string `json:"urls"`
	Size int      `json:"size"`
}

// Timeline is the clustered view of date mentions across the corpus.
type Timeline struct {
	Buckets []TimelineBucket `json:"buckets"`
	Span    [2]string        `json:"span"` // earliest and latest bucket keys
}

var monthNumber = map[string]string{
	"January": "01", "February": "02", "March": "03", "April": "04",
	"May": "05", "June": "06", "July": "07", "August": "08",
	"September": "09", "October": "10", "November": "11", "December": "12",
}

// DateMentions extracts normalized date keys from text. Full dates take
// precedence over the bare years inside them.
func DateMentions(text string) []string {
	seen := make(map[string]bool)
	covered := make(map[string]bool) // years already part of a full date

	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		seen[m[1]+"-"+m[2]+"-"+m[3]] = true
		covered[m[1]] = true
	}
	for _, m := range monthDateRe.FindAllStringSubmatch(text, -1) {
		day := m[2]
		if len(day) == 1 {
			day = "0" + day
		}
		seen[m[3]+"-"+monthNumber[m[1]]+"-"+day] = true
		covered[m[3]] = true
	}
	for _, m := range yearRe.FindAllString(text, -1) {
		if !covered[m] {
			seen[m] = true
		}
	}

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// BuildTimeline buckets documents by their date mentions. A document with
// several distinct date mentions lands in several buckets.
func BuildTimeline(docs map[string]string) Timeline {
	buckets := make(map[string][]string)
	for url, text := range docs {
		for _, d := range DateMentions(text) {
			buckets[d] = append(buckets[d], url)
		}
	}
	if len(buckets) == 0 {
		return Timeline{}
	}

	keys := make([]string, 0, len(buckets))
	for d := range buckets {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	tl := Timeline{Span: [2]string{keys[0], keys[len(keys)-1]}}
	for _, d := range keys {
		urls := buckets[d]
		sort.Strings(urls)
		tl.Buckets = append(tl.Buckets, TimelineBucket{Date: d, URLs: urls, Size: len(urls)})
	}
	return tl
}
