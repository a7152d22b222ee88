package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
)

// TMStepper steps multi-tape Turing machines.
type TMStepper struct {
	automaton *domain.Automaton
	blank     string
	wildcard  string
	initial   int
}

// NewTMStepper creates a Turing machine stepper.
// Empty cells read as blank; wildcard (if non-empty) matches any non-blank
// symbol on read and writes back the symbol it read.
func NewTMStepper(a *domain.Automaton, blank, wildcard string) (*TMStepper, error) {
	if err := checkKind(a, domain.KindTM); err != nil {
		return nil, err
	}
	init, _ := a.Initial()
	return &TMStepper{
		automaton: a,
		blank:     blank,
		wildcard:  wildcard,
		initial:   init.ID,
	}, nil
}

// Initial writes the input on the first tape, one symbol per cell.
func (s *TMStepper) Initial(input string) []domain.Configuration {
	tapes := make([]domain.Tape, s.automaton.Tapes())
	for _, r := range input {
		tapes[0].Cells = append(tapes[0].Cells, string(r))
	}
	return []domain.Configuration{{
		Parent: domain.NoParent,
		State:  s.initial,
		Input:  input,
		Tapes:  tapes,
	}}
}

// Step applies every transition whose reads match all tapes at once.
// When nothing applies, the single successor is c marked as halted;
// a halted configuration has no successors.
func (s *TMStepper) Step(c domain.Configuration) []domain.Configuration {
	if c.Halted {
		return nil
	}
	var out []domain.Configuration
	for _, t := range s.automaton.TransitionsFrom(c.State) {
		tr := t.(domain.TMTransition)
		if !s.applies(c, tr) {
			continue
		}
		out = append(out, s.apply(c, tr))
	}
	if len(out) == 0 {
		halted := c.Derive(c.State)
		halted.Halted = true
		return []domain.Configuration{halted}
	}
	return out
}

func (s *TMStepper) applies(c domain.Configuration, tr domain.TMTransition) bool {
	if len(tr.Tapes) != len(c.Tapes) {
		return false
	}
	for i, act := range tr.Tapes {
		if !s.matches(c.Tapes[i].Read(), act.Read) {
			return false
		}
	}
	return true
}

func (s *TMStepper) matches(cell, read string) bool {
	if s.wildcard != "" && read == s.wildcard {
		return cell != ""
	}
	if cell == "" {
		return read == s.blank
	}
	return cell == read
}

func (s *TMStepper) apply(c domain.Configuration, tr domain.TMTransition) domain.Configuration {
	next := c.Derive(tr.To)
	for i, act := range tr.Tapes {
		tape := &next.Tapes[i]
		cell := tape.Read()

		sym := act.Write
		switch {
		case s.wildcard != "" && sym == s.wildcard:
			sym = cell
		case sym == s.blank:
			sym = ""
		}
		for len(tape.Cells) <= tape.Head {
			tape.Cells = append(tape.Cells, "")
		}
		tape.Cells[tape.Head] = sym

		switch act.Move {
		case domain.MoveRight:
			tape.Head++
		case domain.MoveLeft:
			if tape.Head == 0 {
				tape.Cells = append([]string{""}, tape.Cells...)
			} else {
				tape.Head--
			}
		}
	}
	return next
}
