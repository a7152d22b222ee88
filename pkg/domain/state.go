package domain

// Kind identifies the family of an automaton.
type Kind string

const (
	KindFSA Kind = "fsa" // Finite state automaton
	KindPDA Kind = "pda" // Pushdown automaton
	KindTM  Kind = "tm"  // Multi-tape Turing machine
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFSA, KindPDA, KindTM:
		return true
	}
	return false
}

// State is a vertex of an automaton.
// The label is for display only; the engine never interprets it.
type State struct {
	ID    int    `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}
