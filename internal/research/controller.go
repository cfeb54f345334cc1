// Package research drives one research task end to end: provider search,
// deduplicated cached fetching, per-document analysis, and a live-mutable
// lifecycle state machine (pause, resume, stop, reparameterize).
package research

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avwhitaker/scout/internal/analyze"
	"github.com/avwhitaker/scout/internal/cache"
	"github.com/avwhitaker/scout/internal/fetch"
	"github.com/avwhitaker/scout/internal/search"
	"github.com/avwhitaker/scout/internal/semantic"
)

// PageFetcher downloads one URL. *fetch.Fetcher is the production
// implementation.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchFunc adapts a function to PageFetcher.
type FetchFunc func(ctx context.Context, url string) (string, error)

func (f FetchFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// Deps are the collaborators a Controller drives.
type Deps struct {
	Providers     []search.Provider // tried in priority order
	Fetcher       PageFetcher
	Cache         *cache.Cache
	MaxConcurrent int // simultaneous in-flight fetches, default 5
}

// Status is a point-in-time snapshot of the task.
type Status struct {
	TaskID     string     `json:"task_id"`
	State      string     `json:"state"`
	Query      string     `json:"query"`
	Parameters Parameters `json:"parameters"`
	Progress   Progress   `json:"progress"`
	StartedAt  time.Time  `json:"started_at,omitempty"`
	FinishedAt time.Time  `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Controller owns exactly one current research task. All exported methods
// are safe for concurrent use.
type Controller struct {
	deps Deps

	mu       sync.Mutex
	cond     *sync.Cond
	state    State
	taskID   string
	params   Parameters
	progress Progress
	results  []analyze.Result
	seen     map[string]bool // normalized URLs dispatched this task
	domains  map[string]bool // domains already contributing a result
	failed   *fetch.FailedURLSet
	index    *semantic.Index
	cause    error
	started  time.Time
	finished time.Time

	events chan Event
	done   chan struct{}
}

// NewController creates an idle controller over the given collaborators.
func NewController(deps Deps) *Controller {
	if deps.MaxConcurrent <= 0 {
		deps.MaxConcurrent = 5
	}
	c := &Controller{
		deps:    deps,
		state:   Idle,
		failed:  fetch.NewFailedURLSet(),
		index:   semantic.NewIndex(),
		seen:    make(map[string]bool),
		domains: make(map[string]bool),
		events:  make(chan Event, 64),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Events returns the progress event stream. Events are dropped, never
// blocked on, when the consumer lags.
func (c *Controller) Events() <-chan Event { return c.events }

// Start begins a new task. Valid only in Idle.
func (c *Controller) Start(ctx context.Context, params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != Idle {
		defer c.mu.Unlock()
		return &InvalidStateError{Op: "start", State: c.state}
	}
	c.state = Running
	c.taskID = uuid.NewString()
	c.params = params
	c.progress = Progress{}
	c.results = nil
	c.seen = make(map[string]bool)
	c.domains = make(map[string]bool)
	c.failed = fetch.NewFailedURLSet()
	c.index = semantic.NewIndex()
	c.cause = nil
	c.started = time.Now()
	c.finished = time.Time{}
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.emitState(Running)
	go c.run(ctx)
	return nil
}

// Pause stops new fetch dispatch. In-flight fetches finish and their
// results are still recorded. Valid only in Running.
func (c *Controller) Pause() error {
	c.mu.Lock()
	if c.state != Running {
		defer c.mu.Unlock()
		return &InvalidStateError{Op: "pause", State: c.state}
	}
	c.state = Paused
	c.mu.Unlock()
	c.emitState(Paused)
	return nil
}

// Resume continues fetch dispatch from where the queue left off. Valid only
// in Paused.
func (c *Controller) Resume() error {
	c.mu.Lock()
	if c.state != Paused {
		defer c.mu.Unlock()
		return &InvalidStateError{Op: "resume", State: c.state}
	}
	c.state = Running
	c.cond.Broadcast()
	c.mu.Unlock()
	c.emitState(Running)
	return nil
}

// Stop ends the task. Collected results remain available. Valid in Running
// or Paused.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != Running && c.state != Paused {
		defer c.mu.Unlock()
		return &InvalidStateError{Op: "stop", State: c.state}
	}
	c.state = Stopped
	c.finished = time.Now()
	c.cond.Broadcast()
	c.mu.Unlock()
	c.emitState(Stopped)
	return nil
}

// UpdateParameters merges a partial update atomically: every field is
// validated first and an out-of-range value leaves all parameters
// unchanged. Valid in Running or Paused.
func (c *Controller) UpdateParameters(u Update) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running && c.state != Paused {
		return &InvalidStateError{Op: "update parameters", State: c.state}
	}

	next := u.apply(c.params)
	if err := next.Validate(); err != nil {
		return err
	}
	c.params = next
	return nil
}

// Reset returns a finished controller to Idle so a new task can start.
// Valid only in a terminal state.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Terminal() {
		return &InvalidStateError{Op: "reset", State: c.state}
	}
	c.state = Idle
	return nil
}

// Status returns a snapshot of the task.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		TaskID:     c.taskID,
		State:      c.state.String(),
		Query:      c.params.Query,
		Parameters: c.params,
		Progress:   c.progress,
		StartedAt:  c.started,
		FinishedAt: c.finished,
	}
	if c.cause != nil {
		s.Error = c.cause.Error()
	}
	return s
}

// Results returns a copy of the accumulated result set, in completion
// order.
func (c *Controller) Results() []analyze.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]analyze.Result, len(c.results))
	copy(out, c.results)
	return out
}

// SearchResults returns results whose title, summary, or text contain the
// query substring, at or above minRelevance.
func (c *Controller) SearchResults(query string, minRelevance float64) []analyze.Result {
	lower := strings.ToLower(query)
	var out []analyze.Result
	for _, r := range c.Results() {
		if r.Relevance < minRelevance {
			continue
		}
		if strings.Contains(strings.ToLower(r.Doc.Title), lower) ||
			strings.Contains(strings.ToLower(r.Summary), lower) ||
			strings.Contains(strings.ToLower(r.Doc.Text), lower) {
			out = append(out, r)
		}
	}
	return out
}

// ReAnalyze re-scores every collected result under the current parameters.
// Never triggered implicitly by a parameter change; callers opt in. Results
// appended by workers while the re-analysis runs are kept: the write-back
// merges by document URL instead of replacing the slice.
func (c *Controller) ReAnalyze() []analyze.Result {
	c.mu.Lock()
	params := c.params
	snapshot := make([]analyze.Result, len(c.results))
	copy(snapshot, c.results)
	c.mu.Unlock()

	analyzer := analyze.New(analyze.Options{SummarySentences: summaryLength(params.DetailLevel)})
	fresh := make(map[string]analyze.Result, len(snapshot))
	for _, r := range snapshot {
		re := analyzer.Analyze(r.Doc, params.Query, params.RelevanceThreshold)
		re.Credibility = r.Credibility // corpus signals are not recomputed
		fresh[r.Doc.URL] = re
	}

	c.mu.Lock()
	for i, r := range c.results {
		if re, ok := fresh[r.Doc.URL]; ok {
			c.results[i] = re
		}
	}
	out := make([]analyze.Result, len(c.results))
	copy(out, c.results)
	c.mu.Unlock()
	return out
}

// SemanticIndex exposes the corpus index for similarity queries.
func (c *Controller) SemanticIndex() *semantic.Index { return c.index }

// FailedURLs returns the terminally-failed URLs with their last errors.
func (c *Controller) FailedURLs() map[string]string { return c.failed.Reasons() }

// Cache returns the shared document cache, nil when disabled.
func (c *Controller) Cache() *cache.Cache { return c.deps.Cache }

// Wait blocks until the current task reaches a terminal state. Returns
// immediately when no task has started.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) emitState(s State) {
	c.mu.Lock()
	p := c.progress
	c.mu.Unlock()
	c.emit(Event{Type: EventStateChanged, State: s, Progress: p})
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

func summaryLength(detailLevel int) int {
	n := detailLevel / 2
	if n < 1 {
		n = 1
	}
	return n
}
