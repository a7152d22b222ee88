package domain

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// BuilderOption configures structural settings of the automaton under construction.
type BuilderOption func(*Builder)

// WithTapes sets the tape count of a Turing machine (default 1).
func WithTapes(n int) BuilderOption {
	return func(b *Builder) {
		b.tapes = n
	}
}

// WithSingleInput restricts PDA pop and push strings to at most one symbol.
func WithSingleInput() BuilderOption {
	return func(b *Builder) {
		b.singleInput = true
	}
}

// WithStayMoves permits MoveStay in Turing machine transitions.
func WithStayMoves() BuilderOption {
	return func(b *Builder) {
		b.allowStay = true
	}
}

// Builder collects states and transitions and validates them in Build.
// Builder methods never fail; every problem is reported by Build at once.
type Builder struct {
	kind        Kind
	tapes       int
	singleInput bool
	allowStay   bool

	states      []State
	transitions []Transition
	initial     *int
	finals      []int
}

// NewBuilder starts an automaton of the given kind.
func NewBuilder(kind Kind, opts ...BuilderOption) *Builder {
	b := &Builder{kind: kind}
	if kind == KindTM {
		b.tapes = 1
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddState registers a state.
func (b *Builder) AddState(id int, label string) *Builder {
	b.states = append(b.states, State{ID: id, Label: label})
	return b
}

// AddTransition registers a transition.
func (b *Builder) AddTransition(t Transition) *Builder {
	b.transitions = append(b.transitions, t)
	return b
}

// SetInitial marks id as the initial state, replacing any previous choice.
func (b *Builder) SetInitial(id int) *Builder {
	b.initial = &id
	return b
}

// AddFinal marks id as a final state.
func (b *Builder) AddFinal(id int) *Builder {
	b.finals = append(b.finals, id)
	return b
}

// Build validates the collected structure and returns the automaton.
// On failure it returns an *AggregateError listing every problem found.
func (b *Builder) Build() (*Automaton, error) {
	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if !b.kind.Valid() {
		fail("kind", "unknown automaton kind", string(b.kind))
	}
	if b.kind == KindTM && b.tapes < 1 {
		fail("tapes", "a Turing machine needs at least one tape", b.tapes)
	}

	a := &Automaton{
		kind:        b.kind,
		tapes:       b.tapes,
		singleInput: b.singleInput,
		allowStay:   b.allowStay,
		index:       make(map[int]int, len(b.states)),
		outgoing:    make(map[int][]Transition),
		finals:      make(map[int]bool),
	}

	states := make([]State, 0, len(b.states))
	seen := make(map[int]bool, len(b.states))
	for _, s := range b.states {
		if seen[s.ID] {
			fail(fmt.Sprintf("state %d", s.ID), "duplicate state id", nil)
			continue
		}
		seen[s.ID] = true
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })
	a.states = states
	for i, s := range states {
		a.index[s.ID] = i
	}

	for i, t := range b.transitions {
		key := fmt.Sprintf("transition[%d]", i)
		if t == nil {
			fail(key, "nil transition", nil)
			continue
		}
		if err := b.validateTransition(key, t, seen); err != nil {
			errs = append(errs, err...)
			continue
		}
		a.transitions = append(a.transitions, t)
		from, _ := t.Endpoints()
		a.outgoing[from] = append(a.outgoing[from], t)
	}

	if b.initial != nil {
		if !seen[*b.initial] {
			fail("initial", "initial state is not part of the automaton", *b.initial)
		} else {
			a.initial = *b.initial
			a.hasInitial = true
		}
	}

	for _, id := range b.finals {
		if !seen[id] {
			fail("finals", "final state is not part of the automaton", id)
			continue
		}
		a.finals[id] = true
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return a, nil
}

func (b *Builder) validateTransition(key string, t Transition, states map[int]bool) []error {
	var errs []error
	fail := func(reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if k := KindOf(t); k != b.kind {
		fail(fmt.Sprintf("%s transition in a %s automaton", k, b.kind), nil)
		return errs
	}
	from, to := t.Endpoints()
	if !states[from] {
		fail("source state is not part of the automaton", from)
	}
	if !states[to] {
		fail("target state is not part of the automaton", to)
	}

	switch tr := t.(type) {
	case PDATransition:
		if b.singleInput {
			if utf8.RuneCountInString(tr.Pop) > 1 {
				fail("pop string longer than one symbol in single-input mode", tr.Pop)
			}
			if utf8.RuneCountInString(tr.Push) > 1 {
				fail("push string longer than one symbol in single-input mode", tr.Push)
			}
		}
	case TMTransition:
		if len(tr.Tapes) != b.tapes {
			fail(fmt.Sprintf("expected %d tape actions", b.tapes), len(tr.Tapes))
		}
		for i, act := range tr.Tapes {
			switch act.Move {
			case MoveLeft, MoveRight:
			case MoveStay:
				if !b.allowStay {
					fail(fmt.Sprintf("tape %d: stay moves are not enabled", i), string(act.Move))
				}
			default:
				fail(fmt.Sprintf("tape %d: unknown move", i), string(act.Move))
			}
			if act.Read == "" {
				fail(fmt.Sprintf("tape %d: empty read symbol", i), nil)
			}
			if act.Write == "" {
				fail(fmt.Sprintf("tape %d: empty write symbol", i), nil)
			}
		}
	}
	return errs
}
