package fetch

import "sync"

// FailedURLSet records normalized URLs whose fetch exhausted all retry
// attempts. Members are skipped for the remainder of the task so a dead
// link is never retried across batches.
type FailedURLSet struct {
	mu   sync.RWMutex
	urls map[string]string // normalized URL -> last error message
}

func NewFailedURLSet() *FailedURLSet {
	return &FailedURLSet{urls: make(map[string]string)}
}

// Add records a terminal failure for the URL.
func (s *FailedURLSet) Add(normalizedURL, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[normalizedURL] = reason
}

// Contains reports whether the URL has already failed terminally.
func (s *FailedURLSet) Contains(normalizedURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.urls[normalizedURL]
	return ok
}

// Len returns the number of failed URLs.
func (s *FailedURLSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls)
}

// Reasons returns a copy of the failure map for reporting.
func (s *FailedURLSet) Reasons() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.urls))
	for k, v := range s.urls {
		out[k] = v
	}
	return out
}
