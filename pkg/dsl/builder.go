package dsl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder accumulates an automaton definition. Every method returns the
// builder so definitions read top to bottom; problems surface in Build.
type Builder struct {
	kind    domain.Kind
	inner   *domain.Builder
	seen    map[int]bool
	errs    []error
	counter int
}

func newBuilder(kind domain.Kind, opts ...domain.BuilderOption) *Builder {
	return &Builder{
		kind:  kind,
		inner: domain.NewBuilder(kind, opts...),
		seen:  make(map[int]bool),
	}
}

// FSA starts a finite automaton.
func FSA() *Builder {
	return newBuilder(domain.KindFSA)
}

// PDA starts a pushdown automaton.
func PDA(opts ...domain.BuilderOption) *Builder {
	return newBuilder(domain.KindPDA, opts...)
}

// TM starts a Turing machine with the given number of tapes.
func TM(tapes int, opts ...domain.BuilderOption) *Builder {
	return newBuilder(domain.KindTM, append([]domain.BuilderOption{domain.WithTapes(tapes)}, opts...)...)
}

// States declares unlabeled states. Already declared ids are skipped.
func (b *Builder) States(ids ...int) *Builder {
	for _, id := range ids {
		b.State(id, "")
	}
	return b
}

// State declares a labeled state. Already declared ids are skipped.
func (b *Builder) State(id int, label string) *Builder {
	if b.seen[id] {
		return b
	}
	b.seen[id] = true
	b.inner.AddState(id, label)
	return b
}

// Initial marks the initial state.
func (b *Builder) Initial(id int) *Builder {
	b.inner.SetInitial(id)
	return b
}

// Final marks final states.
func (b *Builder) Final(ids ...int) *Builder {
	for _, id := range ids {
		b.inner.AddFinal(id)
	}
	return b
}

// On adds a finite automaton transition reading symbol.
func (b *Builder) On(from, to int, symbol string) *Builder {
	b.inner.AddTransition(domain.FSATransition{From: from, To: to, Symbol: symbol})
	return b
}

// Epsilon adds a transition that consumes nothing. For pushdown automata it
// also leaves the stack untouched.
func (b *Builder) Epsilon(from, to int) *Builder {
	if b.kind == domain.KindPDA {
		return b.Stack(from, to, "", "", "")
	}
	return b.On(from, to, "")
}

// Stack adds a pushdown transition reading input, popping pop and pushing push.
func (b *Builder) Stack(from, to int, input, pop, push string) *Builder {
	b.inner.AddTransition(domain.PDATransition{From: from, To: to, Input: input, Pop: pop, Push: push})
	return b
}

// Tape adds a Turing machine transition with one "read;write,move" action per tape.
func (b *Builder) Tape(from, to int, actions ...string) *Builder {
	line := fmt.Sprintf("%d -> %d: %s", from, to, strings.Join(actions, "|"))
	t, err := dto.ParseTransition(domain.KindTM, line)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	tapes := make([]domain.TapeAction, len(t.Tapes))
	for i, a := range t.Tapes {
		tapes[i] = domain.TapeAction{Read: a.Read, Write: a.Write, Move: domain.Move(strings.ToUpper(a.Move))}
	}
	b.inner.AddTransition(domain.TMTransition{From: from, To: to, Tapes: tapes})
	return b
}

// Build validates the definition.
func (b *Builder) Build() (*domain.Automaton, error) {
	a, err := b.inner.Build()
	if len(b.errs) == 0 {
		return a, err
	}
	errs := append([]error{}, b.errs...)
	if err != nil {
		errs = append(errs, domain.ValidationErrors(err)...)
	}
	return nil, &domain.AggregateError{Errors: errs}
}

// MustBuild is Build for definitions known to be valid. It panics otherwise.
func (b *Builder) MustBuild() *domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

// Library collects named definitions into an in-memory store.
type Library struct {
	builders map[string]*Builder
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{builders: make(map[string]*Builder)}
}

// Add registers a definition under name, replacing any previous one.
func (l *Library) Add(name string, b *Builder) *Library {
	l.builders[name] = b
	return l
}

// Build validates every definition and loads them into a memory store.
func (l *Library) Build() (*memory.Store, error) {
	names := make([]string, 0, len(l.builders))
	for name := range l.builders {
		names = append(names, name)
	}
	sort.Strings(names)

	built := make(map[string]*domain.Automaton, len(names))
	var errs []error
	for _, name := range names {
		a, err := l.builders[name].Build()
		if err != nil {
			errs = append(errs, fmt.Errorf("automaton %q: %w", name, err))
			continue
		}
		built[name] = a
	}
	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	return memory.NewStoreFrom(built), nil
}
