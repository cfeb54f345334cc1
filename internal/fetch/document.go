// Package fetch retrieves document content over HTTP with rate limiting,
// bounded retries, and URL normalization for deduplication.
package fetch

import "time"

// Document is one fetched and extracted document.
type Document struct {
	URL           string    `json:"url"`
	NormalizedURL string    `json:"normalized_url"`
	Title         string    `json:"title"`
	Snippet       string    `json:"snippet,omitempty"`
	Source        string    `json:"source,omitempty"`
	HTML          string    `json:"-"`
	Text          string    `json:"text"`
	FetchedAt     time.Time `json:"fetched_at"`
	FromCache     bool      `json:"from_cache"`
}
