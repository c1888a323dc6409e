package domain

// EventKind classifies a single line of external tool output
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventProgress
	EventInfo
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventInfo:
		return "info"
	default:
		return "unrecognized"
	}
}

// ProgressUpdate is a percentage parsed from one progress line
type ProgressUpdate struct {
	Percent float64 // 0.0 - 100.0
}

// Event is the typed result of parsing one output line
type Event struct {
	Kind     EventKind
	Progress ProgressUpdate
	Raw      string
}

// EventHandler receives events in the order the external tool emitted them
type EventHandler func(Event)
