package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/closure"
	"github.com/aretw0/automata/pkg/domain"
)

// Stepper expands configurations of one automaton kind.
// Implementations hold no per-run state, so a Stepper can serve many runs.
type Stepper interface {
	// Initial seeds the root configurations for input.
	Initial(input string) []domain.Configuration
	// Step returns the successors of c. Successors have Parent == c.ID.
	Step(c domain.Configuration) []domain.Configuration
}

// NewStepper selects the stepper matching the automaton kind and profile.
func NewStepper(a *domain.Automaton, profile domain.Profile) (Stepper, error) {
	switch a.Kind() {
	case domain.KindFSA:
		return NewFSAStepper(a, profile.StepWithClosure)
	case domain.KindPDA:
		return NewPDAStepper(a, profile.StackBottom, profile.StepWithClosure)
	case domain.KindTM:
		return NewTMStepper(a, profile.Blank, profile.Wildcard)
	default:
		return nil, fmt.Errorf("no stepper for automaton kind %q", a.Kind())
	}
}

// seedStates returns the states a run starts in: the initial state, or its
// closure when epsilon chains are folded.
func seedStates(a *domain.Automaton, cl *closure.Cache) ([]int, error) {
	init, ok := a.Initial()
	if !ok {
		return nil, domain.ErrNoInitialState
	}
	if cl != nil {
		return cl.Of(init.ID), nil
	}
	return []int{init.ID}, nil
}

// targets returns the states a successor is created in for a transition into to.
func targets(to int, cl *closure.Cache) []int {
	if cl != nil {
		return cl.Of(to)
	}
	return []int{to}
}

func checkKind(a *domain.Automaton, want domain.Kind) error {
	if a.Kind() != want {
		return fmt.Errorf("expected a %s automaton, got %s", want, a.Kind())
	}
	if _, ok := a.Initial(); !ok {
		return domain.ErrNoInitialState
	}
	return nil
}
