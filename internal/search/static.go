package search

import "context"

// StaticProvider serves a fixed hit list. Useful as a low-priority fallback
// seeded from configuration, and as a deterministic provider in tests.
type StaticProvider struct {
	ProviderName string
	Hits         []Hit
	Err          error
}

func (p *StaticProvider) Name() string {
	if p.ProviderName == "" {
		return "static"
	}
	return p.ProviderName
}

func (p *StaticProvider) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.Hits) == 0 {
		return nil, ErrNoResults
	}
	hits := p.Hits
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits, nil
}
