package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// BudgetPolicy is consulted each time a run exhausts its configuration budget.
// It is the cooperative decision point for runaway nondeterministic searches.
type BudgetPolicy func(ctx context.Context, event *domain.BudgetEvent) domain.Decision

// StopUnknown is the default BudgetPolicy: give up without a verdict.
func StopUnknown(context.Context, *domain.BudgetEvent) domain.Decision {
	return domain.DecisionUnknown
}

// Result is the outcome of a run together with everything it explored.
type Result struct {
	Outcome domain.Outcome
	// Tree holds every configuration created during the run.
	Tree *domain.Tree
	// Accepting lists the accepting configurations of the final frontier.
	Accepting []int
	// Frontier lists the configurations that were live when the run stopped.
	Frontier []int
	Rounds   int
	Created  int
}

// Accepted reports whether the run found an accepting configuration.
func (r *Result) Accepted() bool {
	return r.Outcome == domain.OutcomeAccepted
}

// Trace returns the history of the first accepting configuration, root first.
func (r *Result) Trace() []domain.Configuration {
	if len(r.Accepting) == 0 {
		return nil
	}
	return r.Tree.Path(r.Accepting[0])
}

// Simulation orchestrates the round-based expansion of a Stepper.
type Simulation struct {
	kind    domain.Kind
	stepper Stepper
	filters []AcceptanceFilter
	budget  int
	policy  BudgetPolicy
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Simulation.
type Option func(*Simulation)

// WithBudget sets the number of configurations created between two budget decisions.
func WithBudget(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.budget = n
		}
	}
}

// WithBudgetPolicy sets the callback deciding what happens when the budget runs out.
func WithBudgetPolicy(p BudgetPolicy) Option {
	return func(s *Simulation) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulation) {
		s.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulation wires a stepper and its acceptance filters.
func NewSimulation(kind domain.Kind, stepper Stepper, filters []AcceptanceFilter, opts ...Option) *Simulation {
	s := &Simulation{
		kind:    kind,
		stepper: stepper,
		filters: filters,
		budget:  domain.DefaultBudget,
		policy:  StopUnknown,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New builds the simulation the profile describes for a.
func New(a *domain.Automaton, profile domain.Profile, opts ...Option) (*Simulation, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	stepper, err := NewStepper(a, profile)
	if err != nil {
		return nil, err
	}
	// The profile budget comes first so a caller's WithBudget overrides it.
	opts = append([]Option{WithBudget(profile.Budget)}, opts...)
	return NewSimulation(a.Kind(), stepper, FiltersFor(a, profile), opts...), nil
}

// Run explores the configuration space of input level by level.
// Each round first checks the frontier for acceptance, then replaces it by
// the successors of all its configurations. ctx is checked between rounds.
func (s *Simulation) Run(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	tree := domain.NewTree()

	var frontier []domain.Configuration
	for _, c := range s.stepper.Initial(input) {
		frontier = append(frontier, tree.Add(c))
	}

	res := &Result{Tree: tree, Outcome: domain.OutcomeRejected}
	sinceDecision := len(frontier)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res.Accepting = accepting(frontier, s.filters)
		s.emitRound(ctx, res.Rounds, len(frontier), tree.Len())
		if len(res.Accepting) > 0 {
			res.Outcome = domain.OutcomeAccepted
			break
		}

		var next []domain.Configuration
		stopped := false
		for i, c := range frontier {
			for _, succ := range s.stepper.Step(c) {
				next = append(next, tree.Add(succ))
				sinceDecision++
			}
			if sinceDecision <= s.budget {
				continue
			}
			pending := len(next) + len(frontier) - i - 1
			switch s.decide(ctx, res.Rounds, tree.Len(), pending) {
			case domain.DecisionContinue:
				sinceDecision = 0
				continue
			case domain.DecisionReject:
				res.Outcome = domain.OutcomeRejected
			default:
				res.Outcome = domain.OutcomeUnknown
			}
			stopped = true
			break
		}

		res.Rounds++
		frontier = next
		if stopped {
			// Successors created before the stop may already accept.
			if res.Accepting = accepting(frontier, s.filters); len(res.Accepting) > 0 {
				res.Outcome = domain.OutcomeAccepted
			}
			break
		}
	}

	res.Frontier = res.Frontier[:0]
	for _, c := range frontier {
		res.Frontier = append(res.Frontier, c.ID)
	}
	res.Created = tree.Len()

	s.logger.Debug("simulation finished",
		"kind", s.kind,
		"outcome", res.Outcome,
		"rounds", res.Rounds,
		"configurations", res.Created)
	s.emitComplete(ctx, input, res, time.Since(start))
	return res, nil
}

func (s *Simulation) decide(ctx context.Context, round, created, frontier int) domain.Decision {
	event := &domain.BudgetEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBudget, Kind: s.kind},
		Round:     round,
		Created:   created,
		Frontier:  frontier,
		Budget:    s.budget,
	}
	event.Decision = s.policy(ctx, event)
	s.logger.Warn("configuration budget exhausted",
		"kind", s.kind,
		"round", round,
		"configurations", created,
		"budget", s.budget,
		"decision", event.Decision.String())
	if s.hooks.OnBudget != nil {
		s.hooks.OnBudget(ctx, event)
	}
	return event.Decision
}

func (s *Simulation) emitRound(ctx context.Context, round, frontier, created int) {
	s.logger.Debug("simulation round", "kind", s.kind, "round", round, "frontier", frontier)
	if s.hooks.OnRound != nil {
		s.hooks.OnRound(ctx, &domain.RoundEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRound, Kind: s.kind},
			Round:     round,
			Frontier:  frontier,
			Created:   created,
		})
	}
}

func (s *Simulation) emitComplete(ctx context.Context, input string, res *Result, d time.Duration) {
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(ctx, &domain.SimulationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete, Kind: s.kind},
			Input:     input,
			Outcome:   res.Outcome,
			Rounds:    res.Rounds,
			Created:   res.Created,
			Duration:  d,
		})
	}
}
