// Package credibility estimates source trustworthiness from the document
// URL and content. Heuristic and deterministic; no external reputation API.
package credibility

import (
	"net/url"
	"regexp"
	"strings"
)

// Factor weights; they sum to 1.
const (
	weightDomain    = 0.30
	weightQuality   = 0.25
	weightCitations = 0.15
	weightAlignment = 0.20
	weightDiversity = 0.10
)

// Authority scores for recognized domains. Unknown domains fall back to
// their TLD entry, then to a neutral 0.50.
var trustedDomains = map[string]float64{
	// Academic and research
	"arxiv.org": 0.95, "nature.com": 0.95, "science.org": 0.95,
	"ieee.org": 0.95, "acm.org": 0.95, "pubmed.ncbi.nlm.nih.gov": 0.95,

	// Government and official
	"who.int": 0.90, "un.org": 0.90, "europa.eu": 0.90,

	// Major news organizations
	"reuters.com": 0.85, "apnews.com": 0.85, "bbc.com": 0.85, "npr.org": 0.85,
	"theguardian.com": 0.80, "nytimes.com": 0.80, "wsj.com": 0.80,

	// Tech and professional
	"github.com": 0.75, "stackoverflow.com": 0.75, "medium.com": 0.70,
	"techcrunch.com": 0.70, "wired.com": 0.70, "arstechnica.com": 0.70,

	// Reference
	"wikipedia.org": 0.75, "britannica.com": 0.80,

	// TLD fallbacks
	"edu": 0.95, "gov": 0.90, "org": 0.55, "com": 0.50, "net": 0.45,
}

// Breakdown carries the per-factor scores behind an overall credibility
// score, for callers that want the explanation.
type Breakdown struct {
	DomainAuthority float64 `json:"domain_authority"`
	ContentQuality  float64 `json:"content_quality"`
	Citations       float64 `json:"citations"`
	Alignment       float64 `json:"alignment"`
	Diversity       float64 `json:"diversity"`
	Overall         float64 `json:"overall"`
	TrustLevel      string  `json:"trust_level"`
	Domain          string  `json:"domain"`
}

// Score combines domain authority, content quality, citation presence,
// semantic alignment with the query, and a small first-seen-domain bonus
// into a weighted credibility score in [0,1].
func Score(rawURL, content string, alignment float64, newDomain bool) Breakdown {
	domain := Domain(rawURL)

	diversity := 0.0
	if newDomain {
		diversity = 1.0
	}

	b := Breakdown{
		DomainAuthority: domainAuthority(domain),
		ContentQuality:  contentQuality(content),
		Citations:       citationScore(content),
		Alignment:       clamp01(alignment),
		Diversity:       diversity,
		Domain:          domain,
	}
	b.Overall = weightDomain*b.DomainAuthority +
		weightQuality*b.ContentQuality +
		weightCitations*b.Citations +
		weightAlignment*b.Alignment +
		weightDiversity*b.Diversity
	b.TrustLevel = trustLevel(b.Overall)
	return b
}

// Domain extracts the lowercased host from a URL, without port.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}

func domainAuthority(domain string) float64 {
	if domain == "" {
		return 0.50
	}
	if score, ok := trustedDomains[domain]; ok {
		return score
	}
	// Registered domain without subdomain prefix ("en.wikipedia.org").
	parts := strings.Split(domain, ".")
	if len(parts) > 2 {
		if score, ok := trustedDomains[strings.Join(parts[len(parts)-2:], ".")]; ok {
			return score
		}
	}
	if score, ok := trustedDomains[parts[len(parts)-1]]; ok {
		return score
	}
	return 0.50
}

var dataRe = regexp.MustCompile(`\d+%|\d+\.\d+|statistics|data|study|research`)

// contentQuality rewards length, capitalized sentences, and the presence of
// data or statistics. Base 0.5 with bounded bonuses.
func contentQuality(content string) float64 {
	words := strings.Fields(content)
	if len(words) == 0 {
		return 0
	}

	score := 0.5
	if len(words) > 500 {
		score += 0.1
	}
	if len(words) > 1000 {
		score += 0.1
	}

	sentences := regexp.MustCompile(`[.!?]+`).Split(content, -1)
	capitalized, total := 0, 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		total++
		if r := s[0]; r >= 'A' && r <= 'Z' {
			capitalized++
		}
	}
	if total > 0 {
		score += float64(capitalized) / float64(total) * 0.15
	}

	if dataRe.MatchString(strings.ToLower(content)) {
		score += 0.15
	}
	return clamp01(score)
}

var citationRes = []*regexp.Regexp{
	regexp.MustCompile(`\[\d+\]`),
	regexp.MustCompile(`\(\d{4}\)`),
	regexp.MustCompile(`(?i)et al\.`),
	regexp.MustCompile(`(?i)according to`),
	regexp.MustCompile(`(?i)source:`),
	regexp.MustCompile(`https?://`),
}

// citationScore normalizes citation-pattern hits per 100 words, capped at
// five per hundred.
func citationScore(content string) float64 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	count := 0
	for _, re := range citationRes {
		count += len(re.FindAllString(content, -1))
	}
	density := float64(count) / (float64(words) / 100)
	return clamp01(density / 5)
}

func trustLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "medium"
	case score >= 0.4:
		return "low"
	default:
		return "very-low"
	}
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
