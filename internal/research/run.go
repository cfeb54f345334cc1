package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avwhitaker/scout/internal/analyze"
	"github.com/avwhitaker/scout/internal/credibility"
	"github.com/avwhitaker/scout/internal/extract"
	"github.com/avwhitaker/scout/internal/fetch"
	"github.com/avwhitaker/scout/internal/logging"
	"github.com/avwhitaker/scout/internal/search"
)

// run executes one research task to a terminal state.
func (c *Controller) run(ctx context.Context) {
	c.mu.Lock()
	params := c.params
	done := c.done
	c.mu.Unlock()
	defer close(done)

	hits, err := c.searchProviders(ctx, params)
	if err != nil {
		c.fail(err)
		return
	}

	queue := c.dedupe(hits)
	c.mu.Lock()
	c.progress.Queried = len(queue)
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.deps.MaxConcurrent)

	for _, hit := range queue {
		if c.halted() {
			break
		}
		hit := hit
		g.Go(func() error {
			// Re-checked here so a pause issued after dispatch still
			// holds this fetch back until resume.
			if c.gate() {
				c.process(gctx, hit)
			}
			return nil
		})
	}
	g.Wait()

	c.finalize()
}

// searchProviders tries each provider in priority order until one returns
// hits. Provider-specific errors are logged, never surfaced; only full
// exhaustion is a task-level error.
func (c *Controller) searchProviders(ctx context.Context, params Parameters) ([]search.Hit, error) {
	for _, p := range c.deps.Providers {
		hits, err := p.Search(ctx, params.Query, params.MaxResults)
		if err != nil {
			if !errors.Is(err, search.ErrNoResults) {
				logging.Warn("search provider failed", "provider", p.Name(), "err", err)
			}
			continue
		}
		if len(hits) > 0 {
			logging.Info("search provider answered", "provider", p.Name(), "hits", len(hits))
			return hits, nil
		}
	}
	return nil, fmt.Errorf("all %d search providers failed for query %q", len(c.deps.Providers), params.Query)
}

// dedupe normalizes hit URLs and drops duplicates within the batch, URLs
// already dispatched this task, and URLs that failed terminally. First
// occurrence wins.
func (c *Controller) dedupe(hits []search.Hit) []search.Hit {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []search.Hit
	for _, hit := range hits {
		norm := fetch.Normalize(hit.URL)
		if norm == "" || c.seen[norm] || c.failed.Contains(norm) {
			continue
		}
		c.seen[norm] = true
		hit.URL = norm
		out = append(out, hit)
	}
	return out
}

// halted reports whether no further work should be queued at all.
func (c *Controller) halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Stopped || c.state == Errored || len(c.results) >= c.params.MaxResults
}

// gate blocks while the task is paused and reports whether another fetch
// may be dispatched. Reads of state and parameters happen under one lock so
// a dispatch decision never sees a half-applied update.
func (c *Controller) gate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		switch {
		case c.state == Stopped || c.state == Errored:
			return false
		case len(c.results) >= c.params.MaxResults:
			return false
		case c.state == Paused:
			c.cond.Wait()
		default:
			return true
		}
	}
}

// process fetches, extracts, and analyzes one hit. All failures are local:
// they feed counters and the failed-URL set, never task state.
func (c *Controller) process(ctx context.Context, hit search.Hit) {
	body, fromCache, err := c.fetchBody(ctx, hit.URL)
	if err != nil {
		c.recordFailure(hit.URL, err)
		return
	}

	text := extract.Text(body)
	if text == "" {
		c.recordFailure(hit.URL, errors.New("no text extracted"))
		return
	}
	title := extract.Title(body)
	if title == "" {
		title = hit.Title
	}

	doc := fetch.Document{
		URL:           hit.URL,
		NormalizedURL: hit.URL,
		Title:         title,
		Snippet:       hit.Snippet,
		Source:        hit.Source,
		HTML:          body,
		Text:          text,
		FetchedAt:     time.Now(),
		FromCache:     fromCache,
	}

	c.mu.Lock()
	params := c.params
	domain := credibility.Domain(doc.URL)
	newDomain := domain != "" && !c.domains[domain]
	if domain != "" {
		c.domains[domain] = true
	}
	c.progress.Fetched++
	c.mu.Unlock()

	analyzer := analyze.New(analyze.Options{SummarySentences: summaryLength(params.DetailLevel)})
	result := analyzer.Analyze(doc, params.Query, params.RelevanceThreshold)

	alignment := c.index.Similarity(params.Query, doc.Text)
	result.Credibility = credibility.Score(doc.URL, doc.Text, alignment, newDomain).Overall

	c.mu.Lock()
	c.results = append(c.results, result)
	c.progress.Analyzed++
	progress := c.progress
	state := c.state
	ids := make([]string, len(c.results))
	texts := make([]string, len(c.results))
	for i, r := range c.results {
		ids[i] = r.Doc.URL
		texts[i] = r.Doc.Text
	}
	c.mu.Unlock()

	c.index.Build(ids, texts)

	c.emit(Event{
		Type:      EventResultAdded,
		State:     state,
		URL:       doc.URL,
		Title:     doc.Title,
		Relevance: result.Relevance,
		Progress:  progress,
	})
}

func (c *Controller) fetchBody(ctx context.Context, url string) (string, bool, error) {
	if c.deps.Cache != nil {
		entry, fromCache, err := c.deps.Cache.GetOrFetch(ctx, url, func(ctx context.Context) (string, error) {
			return c.deps.Fetcher.Fetch(ctx, url)
		})
		return entry.Content, fromCache, err
	}
	body, err := c.deps.Fetcher.Fetch(ctx, url)
	return body, false, err
}

func (c *Controller) recordFailure(url string, err error) {
	c.failed.Add(url, err.Error())
	c.mu.Lock()
	c.progress.Errored++
	progress := c.progress
	state := c.state
	c.mu.Unlock()
	logging.Debug("document skipped", "url", url, "err", err)
	c.emit(Event{Type: EventFetchFailed, State: state, URL: url, Err: err.Error(), Progress: progress})
}

// fail moves the task to Errored, keeping any results already collected.
func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.state = Errored
	c.cause = err
	c.finished = time.Now()
	c.cond.Broadcast()
	c.mu.Unlock()
	logging.Error("research task failed", "err", err)
	c.emitState(Errored)
}

// finalize settles the terminal state once the queue is drained. A task
// paused with nothing left to do completes on resume or stops on stop.
func (c *Controller) finalize() {
	c.mu.Lock()
	for c.state == Paused {
		c.cond.Wait()
	}
	if c.state == Running {
		c.state = Completed
		c.finished = time.Now()
		c.mu.Unlock()
		c.emitState(Completed)
		return
	}
	c.mu.Unlock()
}
