package domain

import (
	"sort"
	"unicode/utf8"
)

// Automaton is a validated, read-only snapshot of states and transitions.
// Instances are produced by Builder.Build; there is no way to observe an
// Automaton that failed validation.
type Automaton struct {
	kind        Kind
	tapes       int
	singleInput bool
	allowStay   bool

	states      []State
	index       map[int]int // state ID -> position in states
	transitions []Transition
	outgoing    map[int][]Transition
	initial     int
	hasInitial  bool
	finals      map[int]bool
}

// Kind returns the automaton family.
func (a *Automaton) Kind() Kind { return a.kind }

// Tapes returns the number of tapes of a Turing machine (zero otherwise).
func (a *Automaton) Tapes() int { return a.tapes }

// SingleInput reports whether PDA pop/push strings are restricted to one symbol.
func (a *Automaton) SingleInput() bool { return a.singleInput }

// AllowStay reports whether Turing machine transitions may use MoveStay.
func (a *Automaton) AllowStay() bool { return a.allowStay }

// States returns the states ordered by ID.
func (a *Automaton) States() []State {
	out := make([]State, len(a.states))
	copy(out, a.states)
	return out
}

// NumStates returns the number of states.
func (a *Automaton) NumStates() int { return len(a.states) }

// State looks up a state by ID.
func (a *Automaton) State(id int) (State, bool) {
	i, ok := a.index[id]
	if !ok {
		return State{}, false
	}
	return a.states[i], true
}

// HasState reports whether id belongs to the automaton.
func (a *Automaton) HasState(id int) bool {
	_, ok := a.index[id]
	return ok
}

// Initial returns the initial state, if one is set.
func (a *Automaton) Initial() (State, bool) {
	if !a.hasInitial {
		return State{}, false
	}
	return a.State(a.initial)
}

// IsFinal reports whether id is a final state.
func (a *Automaton) IsFinal(id int) bool { return a.finals[id] }

// Finals returns the final state IDs in ascending order.
func (a *Automaton) Finals() []int {
	out := make([]int, 0, len(a.finals))
	for id := range a.finals {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Transitions returns every transition in insertion order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, len(a.transitions))
	copy(out, a.transitions)
	return out
}

// TransitionsFrom returns the transitions leaving id, in insertion order.
// The returned slice must not be modified.
func (a *Automaton) TransitionsFrom(id int) []Transition {
	return a.outgoing[id]
}

// Alphabet derives the input alphabet by projecting transition labels.
// FSA and PDA contribute every rune of their input labels; a Turing machine
// contributes the non-blank, non-wildcard read symbols of its first tape,
// which the caller filters with its Profile if needed.
func (a *Automaton) Alphabet() []string {
	seen := make(map[string]bool)
	add := func(label string) {
		for len(label) > 0 {
			r, size := utf8.DecodeRuneInString(label)
			seen[string(r)] = true
			label = label[size:]
		}
	}
	for _, t := range a.transitions {
		switch tr := t.(type) {
		case FSATransition:
			add(tr.Symbol)
		case PDATransition:
			add(tr.Input)
		case TMTransition:
			if len(tr.Tapes) > 0 && tr.Tapes[0].Read != "" {
				seen[tr.Tapes[0].Read] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// MaxStateID returns the highest state ID, or -1 for an empty automaton.
func (a *Automaton) MaxStateID() int {
	if len(a.states) == 0 {
		return -1
	}
	return a.states[len(a.states)-1].ID
}

// Clone returns a structurally identical copy.
func (a *Automaton) Clone() *Automaton {
	b := a.Rebuild()
	// The source already passed validation, so the copy cannot fail.
	out, _ := b.Build()
	return out
}

// Rebuild returns a Builder preloaded with this automaton's structure.
func (a *Automaton) Rebuild() *Builder {
	b := NewBuilder(a.kind, WithTapes(a.tapes))
	b.singleInput = a.singleInput
	b.allowStay = a.allowStay
	for _, s := range a.states {
		b.AddState(s.ID, s.Label)
	}
	for _, t := range a.transitions {
		b.AddTransition(copyTransition(t))
	}
	if a.hasInitial {
		b.SetInitial(a.initial)
	}
	for id := range a.finals {
		b.AddFinal(id)
	}
	return b
}

func copyTransition(t Transition) Transition {
	if tm, ok := t.(TMTransition); ok {
		tapes := make([]TapeAction, len(tm.Tapes))
		copy(tapes, tm.Tapes)
		tm.Tapes = tapes
		return tm
	}
	return t
}
