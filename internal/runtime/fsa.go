package runtime

import (
	"strings"

	"github.com/aretw0/automata/pkg/closure"
	"github.com/aretw0/automata/pkg/domain"
)

// FSAStepper steps finite automata.
type FSAStepper struct {
	automaton *domain.Automaton
	closure   *closure.Cache // nil steps by state
	seeds     []int
}

// NewFSAStepper creates an FSA stepper. With withClosure set, every successor
// is replaced by one configuration per state of its epsilon-closure and
// epsilon transitions are not followed on their own.
func NewFSAStepper(a *domain.Automaton, withClosure bool) (*FSAStepper, error) {
	if err := checkKind(a, domain.KindFSA); err != nil {
		return nil, err
	}
	s := &FSAStepper{automaton: a}
	if withClosure {
		s.closure = closure.NewCache(a)
	}
	seeds, err := seedStates(a, s.closure)
	if err != nil {
		return nil, err
	}
	s.seeds = seeds
	return s, nil
}

// Initial seeds one configuration per starting state.
func (s *FSAStepper) Initial(input string) []domain.Configuration {
	out := make([]domain.Configuration, 0, len(s.seeds))
	for _, id := range s.seeds {
		out = append(out, domain.Configuration{
			Parent: domain.NoParent,
			State:  id,
			Input:  input,
		})
	}
	return out
}

// Step follows every transition whose label prefixes the remaining input.
func (s *FSAStepper) Step(c domain.Configuration) []domain.Configuration {
	var out []domain.Configuration
	for _, t := range s.automaton.TransitionsFrom(c.State) {
		tr := t.(domain.FSATransition)
		if s.closure != nil && tr.IsLambda() {
			continue
		}
		if !strings.HasPrefix(c.Input, tr.Symbol) {
			continue
		}
		rest := c.Input[len(tr.Symbol):]
		for _, id := range targets(tr.To, s.closure) {
			next := c.Derive(id)
			next.Input = rest
			out = append(out, next)
		}
	}
	return out
}
