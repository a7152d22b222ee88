package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Automaton
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Automaton),
	}
}

// NewStoreFrom creates a store preloaded with the given automata.
func NewStoreFrom(automata map[string]*domain.Automaton) *Store {
	s := NewStore()
	for name, a := range automata {
		s.data[name] = a.Clone()
	}
	return s
}

// Save keeps a clone of a, so later changes through Rebuild never leak in.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	cloned := a.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = cloned
	return nil
}

// Load retrieves the automaton from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[name]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a, nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
