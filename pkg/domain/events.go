package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRound    EventType = "round"
	EventBudget   EventType = "budget"
	EventComplete EventType = "complete"
)

// Outcome is the verdict of a simulation run.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	// OutcomeUnknown means the run stopped at its budget without a verdict.
	OutcomeUnknown Outcome = "unknown"
)

// Decision is what a BudgetPolicy answers when a run exhausts its budget.
type Decision int

const (
	// DecisionUnknown stops the run with OutcomeUnknown.
	DecisionUnknown Decision = iota
	// DecisionContinue grants another budget and keeps searching.
	DecisionContinue
	// DecisionReject stops the run with OutcomeRejected.
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionContinue:
		return "continue"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Kind      Kind      `json:"kind"`
}

// RoundEvent is emitted after a frontier has been checked for acceptance.
type RoundEvent struct {
	EventBase
	Round    int `json:"round"`
	Frontier int `json:"frontier"`
	Created  int `json:"created"`
}

// BudgetEvent is emitted when a run exhausts its configuration budget.
type BudgetEvent struct {
	EventBase
	Round    int      `json:"round"`
	Created  int      `json:"created"`
	Frontier int      `json:"frontier"`
	Budget   int      `json:"budget"`
	Decision Decision `json:"decision"`
}

// SimulationEvent is emitted when a run reaches a verdict.
type SimulationEvent struct {
	EventBase
	Input    string        `json:"input"`
	Outcome  Outcome       `json:"outcome"`
	Rounds   int           `json:"rounds"`
	Created  int           `json:"created"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRound    func(context.Context, *RoundEvent)
	OnBudget   func(context.Context, *BudgetEvent)
	OnComplete func(context.Context, *SimulationEvent)
}
