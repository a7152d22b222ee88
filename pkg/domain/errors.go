package domain

import (
	"errors"
	"fmt"
)

// ErrBudgetExhausted is returned when a simulation stopped at its configuration budget
// without deciding whether the input is accepted.
var ErrBudgetExhausted = errors.New("configuration budget exhausted")

// ErrAutomatonNotFound is returned when a name cannot be found in the store.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrNotFiniteAutomaton is returned by operations that only accept finite automata.
var ErrNotFiniteAutomaton = errors.New("not a finite automaton")

// ErrNoInitialState is returned when an operation needs an initial state and none is set.
var ErrNoInitialState = errors.New("automaton has no initial state")

// ValidationError represents a single structural validation failure.
type ValidationError struct {
	Key    string // Element being validated, e.g. "transition[3]" or "state 4"
	Reason string // Human-readable reason for failure
	Value  any    // The offending value, if any
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
