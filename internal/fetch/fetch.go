package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/avwhitaker/scout/internal/logging"
)

const maxBodyBytes = 4 << 20 // 4 MiB cap per document

// StatusError is a non-2xx HTTP response. Codes 429 and 5xx are retryable;
// other client errors are terminal.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d fetching %s", e.Code, e.URL)
}

func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Options configures a Fetcher.
type Options struct {
	MaxAttempts    int           // total attempts per URL, including the first
	RetryBaseDelay time.Duration // doubled after each failed attempt
	Timeout        time.Duration // per-request timeout
	RatePerSecond  float64       // global request rate across all workers
	UserAgent      string

	// Sleep is called between retry attempts. Tests substitute a recorder;
	// nil means a context-aware real sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Fetcher downloads pages with a shared rate limiter and bounded retries.
// Safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
}

// New creates a Fetcher. Zero option fields get conservative defaults.
func New(opts Options) *Fetcher {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 4
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 8
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Scout/1.0 (+https://github.com/avwhitaker/scout)"
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1),
		opts:    opts,
	}
}

// Fetch downloads the URL body, retrying transient failures with exponential
// backoff. Terminal client errors (404 and friends) fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	delay := f.opts.RetryBaseDelay
	var lastErr error

	for attempt := 1; attempt <= f.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			logging.Debug("retrying fetch", "url", url, "attempt", attempt, "delay", delay)
			if err := f.opts.Sleep(ctx, delay); err != nil {
				return "", err
			}
			delay *= 2
		}

		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if se, ok := err.(*StatusError); ok && !se.Retryable() {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("fetch failed after %d attempts: %w", f.opts.MaxAttempts, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
