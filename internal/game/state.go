// Package game owns a simulation run: the clock that paces and kills it, its
// configuration, and the session handle that ties a world to its robots.
package game

// State represents the current simulation state.
type State int

const (
	// StateRunning is the normal state where robots may act.
	StateRunning State = iota
	// StateDead is entered on the first illegal action and never left.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
