package supervisor

// State tracks the supervised child through its lifecycle. Transitions are
// strictly forward: NotStarted -> Running -> one terminal state.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateExited
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	switch s {
	case StateExited, StateCancelled, StateTimedOut:
		return true
	default:
		return false
	}
}
