package runtime

import (
	"strings"

	"github.com/aretw0/automata/pkg/closure"
	"github.com/aretw0/automata/pkg/domain"
)

// PDAStepper steps pushdown automata. The stack is a string with the top
// symbol first, so every configuration owns its stack outright.
type PDAStepper struct {
	automaton *domain.Automaton
	bottom    string
	closure   *closure.Cache // nil steps by state
	seeds     []int
}

// NewPDAStepper creates a PDA stepper whose runs start with bottom on the stack.
// With withClosure set, every successor is expanded over its epsilon-closure.
func NewPDAStepper(a *domain.Automaton, bottom string, withClosure bool) (*PDAStepper, error) {
	if err := checkKind(a, domain.KindPDA); err != nil {
		return nil, err
	}
	s := &PDAStepper{automaton: a, bottom: bottom}
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

// Initial seeds one configuration per starting state, holding only the bottom marker.
func (s *PDAStepper) Initial(input string) []domain.Configuration {
	out := make([]domain.Configuration, 0, len(s.seeds))
	for _, id := range s.seeds {
		out = append(out, domain.Configuration{
			Parent: domain.NoParent,
			State:  id,
			Input:  input,
			Stack:  s.bottom,
		})
	}
	return out
}

// Step applies every transition whose input and pop strings prefix the
// remaining input and the stack.
func (s *PDAStepper) Step(c domain.Configuration) []domain.Configuration {
	var out []domain.Configuration
	for _, t := range s.automaton.TransitionsFrom(c.State) {
		tr := t.(domain.PDATransition)
		if !strings.HasPrefix(c.Input, tr.Input) || !strings.HasPrefix(c.Stack, tr.Pop) {
			continue
		}
		rest := c.Input[len(tr.Input):]
		stack := tr.Push + c.Stack[len(tr.Pop):]
		for _, id := range targets(tr.To, s.closure) {
			next := c.Derive(id)
			next.Input = rest
			next.Stack = stack
			out = append(out, next)
		}
	}
	return out
}
