package research

// State is the task lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
	Stopped
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Completed || s == Stopped || s == Errored
}

// EventType tags a task event.
type EventType int

const (
	EventStateChanged EventType = iota
	EventResultAdded
	EventFetchFailed
)

// Event is one progress notification emitted by the controller. Consumers
// that fall behind lose events; the controller never blocks on them.
type Event struct {
	Type      EventType
	State     State
	URL       string
	Title     string
	Relevance float64
	Err       string
	Progress  Progress
}

// Progress holds the task counters.
type Progress struct {
	Queried  int `json:"queried"`
	Fetched  int `json:"fetched"`
	Analyzed int `json:"analyzed"`
	Errored  int `json:"errored"`
}
