package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/closure"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/equivalence"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/subset"
)

// Version is the release of the engine, reported by the CLI and the MCP server.
const Version = "0.4.0"

// Result is the outcome of a simulation together with its configuration tree.
type Result = runtime.Result

// BudgetPolicy decides how a run continues once its configuration budget is spent.
type BudgetPolicy = runtime.BudgetPolicy

// Engine is the high-level entry point of the library.
// It is safe for concurrent use: every call builds its own simulation.
type Engine struct {
	profile domain.Profile
	policy  BudgetPolicy
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	store   ports.AutomatonStore

	budget  int
	closure *bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithProfile replaces the default settings.
func WithProfile(p domain.Profile) Option {
	return func(e *Engine) {
		e.profile = p
	}
}

// WithBudget overrides the profile budget.
func WithBudget(n int) Option {
	return func(e *Engine) {
		e.budget = n
	}
}

// WithClosure overrides whether FSA and PDA runs fold epsilon chains.
func WithClosure(enabled bool) Option {
	return func(e *Engine) {
		e.closure = &enabled
	}
}

// WithBudgetPolicy sets the callback consulted when a run exhausts its budget.
func WithBudgetPolicy(p BudgetPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore attaches a library of named automata, used by the *Named methods.
func WithStore(s ports.AutomatonStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// New initializes an Engine. It fails if the resulting profile is invalid.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{profile: domain.DefaultProfile()}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.budget != 0 {
		eng.profile.Budget = eng.budget
	}
	if eng.closure != nil {
		eng.profile.StepWithClosure = *eng.closure
	}
	if err := eng.profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng, nil
}

// Profile returns the settings the engine runs with.
func (e *Engine) Profile() domain.Profile {
	return e.profile
}

// Store returns the attached automaton library, or nil.
func (e *Engine) Store() ports.AutomatonStore {
	return e.store
}

// Simulate runs a on input and returns the full result.
// Budget exhaustion is reported through Result.Outcome, not as an error.
func (e *Engine) Simulate(ctx context.Context, a *domain.Automaton, input string) (*Result, error) {
	sim, err := runtime.New(a, e.profile,
		runtime.WithBudgetPolicy(e.policy),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, input)
}

// Accepts reports whether a accepts input.
// It returns domain.ErrBudgetExhausted when the run ends without a verdict.
func (e *Engine) Accepts(ctx context.Context, a *domain.Automaton, input string) (bool, error) {
	res, err := e.Simulate(ctx, a, input)
	if err != nil {
		return false, err
	}
	if res.Outcome == domain.OutcomeUnknown {
		return false, fmt.Errorf("input %q: %w", input, domain.ErrBudgetExhausted)
	}
	return res.Accepted(), nil
}

// AcceptsAll runs every input and returns the verdicts in order.
// It stops at the first error.
func (e *Engine) AcceptsAll(ctx context.Context, a *domain.Automaton, inputs []string) ([]bool, error) {
	out := make([]bool, len(inputs))
	for i, input := range inputs {
		ok, err := e.Accepts(ctx, a, input)
		if err != nil {
			return out[:i], err
		}
		out[i] = ok
	}
	return out, nil
}

// Convert determinizes a finite automaton.
func (e *Engine) Convert(a *domain.Automaton) (*domain.Automaton, error) {
	dfa, err := subset.Convert(a)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("automaton determinized",
		"states_in", a.NumStates(),
		"states_out", dfa.NumStates())
	return dfa, nil
}

// Equal reports whether two deterministic automata are isomorphic.
func (e *Engine) Equal(a, b *domain.Automaton) bool {
	return equivalence.Equal(a, b)
}

// Closure returns the epsilon-closure of state in a, sorted.
func (e *Engine) Closure(a *domain.Automaton, state int) []int {
	return closure.Of(a, state)
}

// Lookup loads a named automaton from the attached store.
func (e *Engine) Lookup(ctx context.Context, name string) (*domain.Automaton, error) {
	if e.store == nil {
		return nil, fmt.Errorf("automaton %q: no store configured: %w", name, domain.ErrAutomatonNotFound)
	}
	a, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", name, err)
	}
	return a, nil
}

// SimulateNamed looks name up in the store and simulates it.
func (e *Engine) SimulateNamed(ctx context.Context, name, input string) (*Result, error) {
	a, err := e.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Simulate(ctx, a, input)
}
