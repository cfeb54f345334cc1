package research

import "fmt"

// Parameter ranges enforced on start and update.
const (
	MinDepth      = 1
	MaxDepth      = 10
	MinMaxResults = 5
	MaxMaxResults = 100
	MinDetail     = 1
	MaxDetail     = 10
)

// Parameters steer a research task. All fields can be changed mid-run via
// UpdateParameters.
type Parameters struct {
	Query              string  `json:"query"`
	Depth              int     `json:"depth"`
	MaxResults         int     `json:"max_results"`
	RelevanceThreshold float64 `json:"relevance_threshold"`
	DetailLevel        int     `json:"detail_level"`
	SourceType         string  `json:"source_type"`
	OutputFormat       string  `json:"output_format"`
}

// DefaultParameters returns the standard settings for a query.
func DefaultParameters(query string) Parameters {
	return Parameters{
		Query:              query,
		Depth:              3,
		MaxResults:         10,
		RelevanceThreshold: 0.5,
		DetailLevel:        5,
		SourceType:         "web",
		OutputFormat:       "markdown",
	}
}

// Validate checks every field against its range.
func (p Parameters) Validate() error {
	if p.Query == "" {
		return &ValidationError{Field: "query", Message: "must not be empty"}
	}
	if p.Depth < MinDepth || p.Depth > MaxDepth {
		return &ValidationError{Field: "depth", Message: fmt.Sprintf("must be in [%d,%d], got %d", MinDepth, MaxDepth, p.Depth)}
	}
	if p.MaxResults < MinMaxResults || p.MaxResults > MaxMaxResults {
		return &ValidationError{Field: "max_results", Message: fmt.Sprintf("must be in [%d,%d], got %d", MinMaxResults, MaxMaxResults, p.MaxResults)}
	}
	if p.RelevanceThreshold < 0 || p.RelevanceThreshold > 1 {
		return &ValidationError{Field: "relevance_threshold", Message: fmt.Sprintf("must be in [0,1], got %v", p.RelevanceThreshold)}
	}
	if p.DetailLevel < MinDetail || p.DetailLevel > MaxDetail {
		return &ValidationError{Field: "detail_level", Message: fmt.Sprintf("must be in [%d,%d], got %d", MinDetail, MaxDetail, p.DetailLevel)}
	}
	return nil
}

// Update is a partial parameter change; nil fields are left as they are.
type Update struct {
	Depth              *int     `json:"depth,omitempty"`
	MaxResults         *int     `json:"max_results,omitempty"`
	RelevanceThreshold *float64 `json:"relevance_threshold,omitempty"`
	DetailLevel        *int     `json:"detail_level,omitempty"`
	SourceType         *string  `json:"source_type,omitempty"`
	OutputFormat       *string  `json:"output_format,omitempty"`
}

// apply returns p with the update merged in. The result still needs
// validation; apply itself never mutates p.
func (u Update) apply(p Parameters) Parameters {
	if u.Depth != nil {
		p.Depth = *u.Depth
	}
	if u.MaxResults != nil {
		p.MaxResults = *u.MaxResults
	}
	if u.RelevanceThreshold != nil {
		p.RelevanceThreshold = *u.RelevanceThreshold
	}
	if u.DetailLevel != nil {
		p.DetailLevel = *u.DetailLevel
	}
	if u.SourceType != nil {
		p.SourceType = *u.SourceType
	}
	if u.OutputFormat != nil {
		p.OutputFormat = *u.OutputFormat
	}
	return p
}

// ValidationError reports a parameter outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// InvalidStateError reports an operation attempted in the wrong task state.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}
