package domain

import "fmt"

// StackAcceptance selects how a pushdown automaton accepts.
type StackAcceptance string

const (
	AcceptFinalState StackAcceptance = "final_state"
	AcceptEmptyStack StackAcceptance = "empty_stack"
)

// Profile holds the engine settings that used to be process-wide in
// workbench GUIs. It is passed explicitly to simulators and converters.
type Profile struct {
	// Lambda is the display symbol of the empty string.
	Lambda string `json:"lambda" yaml:"lambda"`

	// StackBottom is the symbol a PDA stack starts with. Empty means an empty stack.
	StackBottom string `json:"stack_bottom" yaml:"stack_bottom"`

	// Blank is the symbol an empty tape cell reads as.
	Blank string `json:"blank" yaml:"blank"`

	// Wildcard matches any non-blank symbol on read and echoes it on write.
	Wildcard string `json:"wildcard" yaml:"wildcard"`

	// Budget bounds the configurations created between two budget decisions.
	Budget int `json:"budget" yaml:"budget"`

	// StackAcceptance selects the PDA acceptance mode for a run.
	StackAcceptance StackAcceptance `json:"stack_acceptance" yaml:"stack_acceptance"`

	// AcceptByFinal and AcceptByHalt are the Turing machine acceptance filters.
	// Both may be active at the same time.
	AcceptByFinal bool `json:"accept_by_final" yaml:"accept_by_final"`
	AcceptByHalt  bool `json:"accept_by_halt" yaml:"accept_by_halt"`

	// StepWithClosure folds epsilon chains into a single step (FSA and PDA).
	StepWithClosure bool `json:"step_with_closure" yaml:"step_with_closure"`
}

// DefaultProfile returns the settings used when nothing else is configured.
func DefaultProfile() Profile {
	return Profile{
		Lambda:          DefaultLambda,
		StackBottom:     DefaultStackBottom,
		Blank:           DefaultBlank,
		Wildcard:        DefaultWildcard,
		Budget:          DefaultBudget,
		StackAcceptance: AcceptFinalState,
		AcceptByFinal:   true,
	}
}

// Validate checks the profile for settings the simulators cannot honour.
func (p Profile) Validate() error {
	var errs []error
	if p.Budget <= 0 {
		errs = append(errs, &ValidationError{Key: "budget", Reason: "must be positive", Value: p.Budget})
	}
	switch p.StackAcceptance {
	case AcceptFinalState, AcceptEmptyStack:
	default:
		errs = append(errs, &ValidationError{Key: "stack_acceptance", Reason: "unknown mode", Value: string(p.StackAcceptance)})
	}
	if p.Blank == "" {
		errs = append(errs, &ValidationError{Key: "blank", Reason: "required"})
	}
	if p.Wildcard != "" && p.Wildcard == p.Blank {
		errs = append(errs, &ValidationError{Key: "wildcard", Reason: fmt.Sprintf("must differ from blank %q", p.Blank), Value: p.Wildcard})
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Display renders s, substituting the lambda symbol for the empty string.
func (p Profile) Display(s string) string {
	if s == "" {
		return p.Lambda
	}
	return s
}
