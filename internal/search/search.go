// Package search defines the search-provider collaborator interface and its
// built-in implementations. Providers turn a query into candidate URLs; they
// never fetch page content themselves.
package search

import (
	"context"
	"errors"
	"strings"
)

// Hit is one search result returned by a provider.
type Hit struct {
	Title   string
	URL     string
	Snippet string
	Source  string // provider/source display name
}

// Provider answers a query with an ordered list of hits.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Hit, error)
}

// ErrNoResults is returned by a provider that completed without finding hits.
var ErrNoResults = errors.New("search: no results")

// QueryTerms lowercases and splits a query into its terms.
func QueryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// matchesQuery reports whether text contains at least one query term.
func matchesQuery(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
