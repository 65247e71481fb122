package workflow

import "fmt"

// Machine is a declared finite-state machine: for each state, the set of
// states it may legally transition to. Legality is a single map lookup so
// the full transition graph stays auditable in one place.
type Machine[S comparable] struct {
	name        string
	transitions map[S]map[S]bool
}

// NewMachine builds a machine from a transition table. The table maps each
// state to the list of states reachable from it; states absent from the
// table are terminal.
func NewMachine[S comparable](name string, table map[S][]S) *Machine[S] {
	transitions := make(map[S]map[S]bool, len(table))
	for from, tos := range table {
		set := make(map[S]bool, len(tos))
		for _, to := range tos {
			set[to] = true
		}
		transitions[from] = set
	}
	return &Machine[S]{name: name, transitions: transitions}
}

// CanTransition reports whether moving from one state to another is legal
func (m *Machine[S]) CanTransition(from, to S) bool {
	return m.transitions[from][to]
}

// IsTerminal reports whether a state has no outgoing transitions
func (m *Machine[S]) IsTerminal(state S) bool {
	return len(m.transitions[state]) == 0
}

// AllowedFrom returns the number of states reachable from the given state
func (m *Machine[S]) AllowedFrom(state S) int {
	return len(m.transitions[state])
}

// Validate returns an error describing an illegal transition, or nil when
// the transition is legal
func (m *Machine[S]) Validate(from, to S) error {
	if m.CanTransition(from, to) {
		return nil
	}
	return &TransitionError{Machine: m.name, From: fmt.Sprint(from), To: fmt.Sprint(to)}
}

// TransitionError reports an attempt to perform an illegal state transition
type TransitionError struct {
	Machine string
	From    string
	To      string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: illegal transition %s -> %s", e.Machine, e.From, e.To)
}
