package graph

// State is a GraphState's position in the lifecycle:
//
//	UNBUILT -> BUILT -> CONNECTED -> OPEN -> RUNNING <-> IDLE -> CLOSED -> RESET -> UNBUILT
type State int

const (
	StateUnbuilt State = iota
	StateBuilt
	StateConnected
	StateOpen
	StateRunning
	StateIdle
	StateClosed
	StateReset
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "UNBUILT"
	case StateBuilt:
		return "BUILT"
	case StateConnected:
		return "CONNECTED"
	case StateOpen:
		return "OPEN"
	case StateRunning:
		return "RUNNING"
	case StateIdle:
		return "IDLE"
	case StateClosed:
		return "CLOSED"
	case StateReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}
