package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
)

// EngineOptions collects the global CLI flags that shape an engine.
type EngineOptions struct {
	ProfilePath string
	Budget      int
	// Closure is "", "on" or "off"; empty keeps the profile setting.
	Closure     string
	Debug       bool
	Interactive bool
	Metrics     *observability.Metrics
	Store       ports.AutomatonStore
}

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr to keep Stdout for results.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewEngine initializes an engine with standard CLI conventions.
func NewEngine(opts EngineOptions, logger *slog.Logger) (*automata.Engine, error) {
	engineOpts := []automata.Option{automata.WithLogger(logger)}

	if opts.ProfilePath != "" {
		profile, err := file.ReadProfile(opts.ProfilePath)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, automata.WithProfile(profile))
	}
	if opts.Budget != 0 {
		engineOpts = append(engineOpts, automata.WithBudget(opts.Budget))
	}
	switch opts.Closure {
	case "":
	case "on", "true":
		engineOpts = append(engineOpts, automata.WithClosure(true))
	case "off", "false":
		engineOpts = append(engineOpts, automata.WithClosure(false))
	default:
		return nil, &domain.ValidationError{Key: "closure", Reason: "expected on or off", Value: opts.Closure}
	}

	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	if opts.Metrics != nil {
		hooks = append(hooks, opts.Metrics.Hooks())
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, automata.WithLifecycleHooks(observability.Chain(hooks...)))
	}

	if opts.Interactive {
		if policy := InteractivePolicy(os.Stdin, os.Stderr); policy != nil {
			engineOpts = append(engineOpts, automata.WithBudgetPolicy(policy))
		}
	}
	if opts.Store != nil {
		engineOpts = append(engineOpts, automata.WithStore(opts.Store))
	}

	engine, err := automata.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRound: func(ctx context.Context, e *domain.RoundEvent) {
			logger.Debug("Round", "kind", e.Kind, "round", e.Round, "frontier", e.Frontier, "created", e.Created)
		},
		OnBudget: func(ctx context.Context, e *domain.BudgetEvent) {
			logger.Debug("Budget Exhausted", "kind", e.Kind, "round", e.Round, "budget", e.Budget, "decision", e.Decision.String())
		},
		OnComplete: func(ctx context.Context, e *domain.SimulationEvent) {
			logger.Debug("Simulation Complete", "kind", e.Kind, "outcome", e.Outcome, "rounds", e.Rounds, "duration", e.Duration)
		},
	}
}
