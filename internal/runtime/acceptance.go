package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
)

// AcceptanceFilter decides whether a single configuration is accepting.
// A configuration accepts when any active filter accepts it.
type AcceptanceFilter interface {
	Accept(c domain.Configuration) bool
}

// FinalStateFilter accepts configurations in a final state.
// With RequireConsumed set, the input must also be fully consumed.
type FinalStateFilter struct {
	Automaton       *domain.Automaton
	RequireConsumed bool
}

func (f FinalStateFilter) Accept(c domain.Configuration) bool {
	if f.RequireConsumed && c.Input != "" {
		return false
	}
	return f.Automaton.IsFinal(c.State)
}

// EmptyStackFilter accepts PDA configurations with no input left and an empty stack.
type EmptyStackFilter struct{}

func (EmptyStackFilter) Accept(c domain.Configuration) bool {
	return c.Input == "" && c.Stack == ""
}

// HaltingFilter accepts Turing machine configurations that halted.
type HaltingFilter struct{}

func (HaltingFilter) Accept(c domain.Configuration) bool {
	return c.Halted
}

// FiltersFor returns the filters the profile activates for a.
func FiltersFor(a *domain.Automaton, profile domain.Profile) []AcceptanceFilter {
	switch a.Kind() {
	case domain.KindPDA:
		if profile.StackAcceptance == domain.AcceptEmptyStack {
			return []AcceptanceFilter{EmptyStackFilter{}}
		}
		return []AcceptanceFilter{FinalStateFilter{Automaton: a, RequireConsumed: true}}
	case domain.KindTM:
		var filters []AcceptanceFilter
		if profile.AcceptByFinal {
			filters = append(filters, FinalStateFilter{Automaton: a})
		}
		if profile.AcceptByHalt {
			filters = append(filters, HaltingFilter{})
		}
		return filters
	default:
		return []AcceptanceFilter{FinalStateFilter{Automaton: a, RequireConsumed: true}}
	}
}

// Accepts reports whether any filter accepts c.
func Accepts(c domain.Configuration, filters []AcceptanceFilter) bool {
	for _, f := range filters {
		if f.Accept(c) {
			return true
		}
	}
	return false
}

// IsAccepted reports whether any configuration of the frontier is accepting.
func IsAccepted(frontier []domain.Configuration, filters []AcceptanceFilter) bool {
	return len(accepting(frontier, filters)) > 0
}

func accepting(frontier []domain.Configuration, filters []AcceptanceFilter) []int {
	var ids []int
	for _, c := range frontier {
		if Accepts(c, filters) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
