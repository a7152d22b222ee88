package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "automata"

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	Simulations    *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	Configurations *prometheus.HistogramVec
	Rounds         *prometheus.CounterVec
	BudgetEvents   *prometheus.CounterVec
	Conversions    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulations_total",
				Help:      "Total number of simulation runs by automaton kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "simulation_duration_seconds",
				Help:      "Duration of simulation runs",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"kind"},
		),
		Configurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "simulation_configurations",
				Help:      "Configurations created per simulation run",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"kind"},
		),
		Rounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulation_rounds_total",
				Help:      "Total number of expansion rounds",
			},
			[]string{"kind"},
		),
		BudgetEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "budget_exhaustions_total",
				Help:      "Budget exhaustions by policy decision",
			},
			[]string{"kind", "decision"},
		),
		Conversions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_states",
				Help:      "State counts of subset construction inputs and outputs",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"side"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Simulations, m.Duration, m.Configurations, m.Rounds, m.BudgetEvents, m.Conversions)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRound: func(ctx context.Context, e *domain.RoundEvent) {
			m.Rounds.WithLabelValues(string(e.Kind)).Inc()
		},
		OnBudget: func(ctx context.Context, e *domain.BudgetEvent) {
			m.BudgetEvents.WithLabelValues(string(e.Kind), e.Decision.String()).Inc()
		},
		OnComplete: func(ctx context.Context, e *domain.SimulationEvent) {
			kind := string(e.Kind)
			m.Simulations.WithLabelValues(kind, string(e.Outcome)).Inc()
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
			m.Configurations.WithLabelValues(kind).Observe(float64(e.Created))
		},
	}
}

// ObserveConversion records the state counts of one determinization.
func (m *Metrics) ObserveConversion(nfaStates, dfaStates int) {
	m.Conversions.WithLabelValues("nfa").Observe(float64(nfaStates))
	m.Conversions.WithLabelValues("dfa").Observe(float64(dfaStates))
}

// Chain merges several hook sets; each callback runs in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnRound != nil {
			prev := out.OnRound
			out.OnRound = func(ctx context.Context, e *domain.RoundEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRound(ctx, e)
			}
		}
		if h.OnBudget != nil {
			prev := out.OnBudget
			out.OnBudget = func(ctx context.Context, e *domain.BudgetEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnBudget(ctx, e)
			}
		}
		if h.OnComplete != nil {
			prev := out.OnComplete
			out.OnComplete = func(ctx context.Context, e *domain.SimulationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnComplete(ctx, e)
			}
		}
	}
	return out
}
