package dto

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Ref points at an automaton either by name in a store or inline.
type Ref struct {
	Name      string    `json:"name,omitempty" jsonschema_description:"Name of a stored automaton"`
	Automaton *Document `json:"automaton,omitempty" jsonschema_description:"Inline automaton definition"`
}

// Resolve returns the automaton the reference points at. An inline
// definition wins over a name.
func (r Ref) Resolve(ctx context.Context, store ports.AutomatonStore) (*domain.Automaton, error) {
	if r.Automaton != nil {
		return r.Automaton.ToDomain()
	}
	if r.Name == "" {
		return nil, &domain.ValidationError{Key: "automaton", Reason: "either name or automaton is required"}
	}
	if store == nil {
		return nil, fmt.Errorf("automaton %q: no store configured: %w", r.Name, domain.ErrAutomatonNotFound)
	}
	a, err := store.Load(ctx, r.Name)
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", r.Name, err)
	}
	return a, nil
}
