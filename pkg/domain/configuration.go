package domain

import (
	"strings"
)

// NoParent marks a root configuration of a run.
const NoParent = -1

// Tape is one Turing machine tape. Empty cells hold "".
type Tape struct {
	Cells []string `json:"cells"`
	Head  int      `json:"head"`
}

// Read returns the symbol under the head, "" when the cell is empty.
func (t Tape) Read() string {
	if t.Head < 0 || t.Head >= len(t.Cells) {
		return ""
	}
	return t.Cells[t.Head]
}

// Clone returns a deep copy, so siblings never share cells.
func (t Tape) Clone() Tape {
	cells := make([]string, len(t.Cells))
	copy(cells, t.Cells)
	return Tape{Cells: cells, Head: t.Head}
}

// String renders the tape with the head cell in brackets, using blank for empty cells.
func (t Tape) String(blank string) string {
	var sb strings.Builder
	last := len(t.Cells)
	if t.Head >= last {
		last = t.Head + 1
	}
	for i := 0; i < last; i++ {
		sym := ""
		if i < len(t.Cells) {
			sym = t.Cells[i]
		}
		if sym == "" {
			sym = blank
		}
		if i == t.Head {
			sb.WriteString("[" + sym + "]")
		} else {
			sb.WriteString(sym)
		}
	}
	return sb.String()
}

// Configuration is one point of a nondeterministic computation.
// It is a value record: once added to a Tree it is never modified, and
// successors are new records pointing back through Parent.
type Configuration struct {
	ID     int `json:"id"`
	Parent int `json:"parent"`
	State  int `json:"state"`
	Depth  int `json:"depth"`

	// Input is the unconsumed suffix of the input (FSA, PDA) or the original
	// input (TM, where consumption happens on the tape).
	Input string `json:"input"`

	// Stack holds the PDA stack with the top symbol first.
	Stack string `json:"stack,omitempty"`

	// Tapes holds the Turing machine tapes.
	Tapes []Tape `json:"tapes,omitempty"`

	// Halted is set on the Turing machine configuration recorded when no
	// transition applied to its parent.
	Halted bool `json:"halted,omitempty"`
}

// Derive returns a successor seeded from c: same payload, parent set to c.
// Tapes are deep-copied.
func (c Configuration) Derive(state int) Configuration {
	next := Configuration{
		ID:     NoParent,
		Parent: c.ID,
		State:  state,
		Depth:  c.Depth + 1,
		Input:  c.Input,
		Stack:  c.Stack,
	}
	if len(c.Tapes) > 0 {
		next.Tapes = make([]Tape, len(c.Tapes))
		for i, t := range c.Tapes {
			next.Tapes[i] = t.Clone()
		}
	}
	return next
}

// IsRoot reports whether c seeds a run.
func (c Configuration) IsRoot() bool {
	return c.Parent == NoParent
}
