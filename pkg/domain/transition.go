package domain

import (
	"fmt"
	"strings"
)

// Transition defines a rule to move from one state to another.
// It is a closed sum type: FSATransition, PDATransition and TMTransition
// are its only implementations, and simulators type-switch on them.
type Transition interface {
	// Endpoints returns the source and target state IDs.
	Endpoints() (from, to int)
	// Label renders the defining fields, used to compare transitions by label.
	Label() string
	// IsLambda reports whether every defining field is empty.
	IsLambda() bool

	kind() Kind
}

// FSATransition consumes Symbol from the input. An empty Symbol is an epsilon move.
type FSATransition struct {
	From   int    `json:"from" yaml:"from"`
	To     int    `json:"to" yaml:"to"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

func (t FSATransition) Endpoints() (int, int) { return t.From, t.To }
func (t FSATransition) Label() string         { return t.Symbol }
func (t FSATransition) IsLambda() bool        { return t.Symbol == "" }
func (t FSATransition) kind() Kind            { return KindFSA }

// PDATransition consumes Input, replaces the stack prefix Pop with Push.
// Any of the three may be empty.
type PDATransition struct {
	From  int    `json:"from" yaml:"from"`
	To    int    `json:"to" yaml:"to"`
	Input string `json:"input,omitempty" yaml:"input,omitempty"`
	Pop   string `json:"pop,omitempty" yaml:"pop,omitempty"`
	Push  string `json:"push,omitempty" yaml:"push,omitempty"`
}

func (t PDATransition) Endpoints() (int, int) { return t.From, t.To }
func (t PDATransition) Label() string {
	return fmt.Sprintf("%s,%s;%s", t.Input, t.Pop, t.Push)
}
func (t PDATransition) IsLambda() bool { return t.Input == "" && t.Pop == "" && t.Push == "" }
func (t PDATransition) kind() Kind     { return KindPDA }

// Move is a Turing machine head movement.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "S"
)

// TapeAction is the read/write/move triple a TMTransition applies to one tape.
type TapeAction struct {
	Read  string `json:"read" yaml:"read"`
	Write string `json:"write" yaml:"write"`
	Move  Move   `json:"move" yaml:"move"`
}

// TMTransition steps every tape in lock-step; Tapes holds one action per tape.
type TMTransition struct {
	From  int          `json:"from" yaml:"from"`
	To    int          `json:"to" yaml:"to"`
	Tapes []TapeAction `json:"tapes" yaml:"tapes"`
}

func (t TMTransition) Endpoints() (int, int) { return t.From, t.To }
func (t TMTransition) Label() string {
	parts := make([]string, len(t.Tapes))
	for i, a := range t.Tapes {
		parts[i] = fmt.Sprintf("%s;%s,%s", a.Read, a.Write, a.Move)
	}
	return strings.Join(parts, "|")
}

// IsLambda is always false: a Turing machine transition always reads a cell.
func (t TMTransition) IsLambda() bool { return false }
func (t TMTransition) kind() Kind     { return KindTM }

// KindOf returns the automaton kind a transition belongs to.
func KindOf(t Transition) Kind {
	return t.kind()
}
