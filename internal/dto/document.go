package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Document is the serialized form of an automaton.
// It uses "mapstructure" tags so definition files can be decoded from generic
// YAML maps, and json/yaml tags for storage and transport.
type Document struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Kind        string       `json:"kind" yaml:"kind" mapstructure:"kind"`
	Tapes       int          `json:"tapes,omitempty" yaml:"tapes,omitempty" mapstructure:"tapes"`
	SingleInput bool         `json:"single_input,omitempty" yaml:"single_input,omitempty" mapstructure:"single_input"`
	AllowStay   bool         `json:"allow_stay,omitempty" yaml:"allow_stay,omitempty" mapstructure:"allow_stay"`
	States      []State      `json:"states" yaml:"states" mapstructure:"states"`
	Initial     *int         `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
	Finals      []int        `json:"finals,omitempty" yaml:"finals,omitempty" mapstructure:"finals"`
	Transitions []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

type State struct {
	ID    int    `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Transition flattens the three transition shapes. Symbol is used by finite
// automata, Input/Pop/Push by pushdown automata and Tapes by Turing machines.
type Transition struct {
	From   int          `json:"from" yaml:"from" mapstructure:"from"`
	To     int          `json:"to" yaml:"to" mapstructure:"to"`
	Symbol string       `json:"symbol,omitempty" yaml:"symbol,omitempty" mapstructure:"symbol"`
	Input  string       `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`
	Pop    string       `json:"pop,omitempty" yaml:"pop,omitempty" mapstructure:"pop"`
	Push   string       `json:"push,omitempty" yaml:"push,omitempty" mapstructure:"push"`
	Tapes  []TapeAction `json:"tapes,omitempty" yaml:"tapes,omitempty" mapstructure:"tapes"`
}

type TapeAction struct {
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	Write string `json:"write" yaml:"write" mapstructure:"write"`
	Move  string `json:"move" yaml:"move" mapstructure:"move"`
}

// ToDomain validates the document and builds the automaton it describes.
func (d Document) ToDomain() (*domain.Automaton, error) {
	kind := domain.Kind(strings.ToLower(d.Kind))
	var opts []domain.BuilderOption
	if d.Tapes > 0 {
		opts = append(opts, domain.WithTapes(d.Tapes))
	}
	if d.SingleInput {
		opts = append(opts, domain.WithSingleInput())
	}
	if d.AllowStay {
		opts = append(opts, domain.WithStayMoves())
	}

	b := domain.NewBuilder(kind, opts...)
	for _, s := range d.States {
		b.AddState(s.ID, s.Label)
	}
	if d.Initial != nil {
		b.SetInitial(*d.Initial)
	}
	for _, id := range d.Finals {
		b.AddFinal(id)
	}
	for _, t := range d.Transitions {
		b.AddTransition(t.toDomain(kind))
	}

	a, err := b.Build()
	if err != nil {
		if d.Name != "" {
			return nil, fmt.Errorf("automaton %q: %w", d.Name, err)
		}
		return nil, err
	}
	return a, nil
}

func (t Transition) toDomain(kind domain.Kind) domain.Transition {
	switch kind {
	case domain.KindPDA:
		return domain.PDATransition{From: t.From, To: t.To, Input: t.Input, Pop: t.Pop, Push: t.Push}
	case domain.KindTM:
		actions := make([]domain.TapeAction, len(t.Tapes))
		for i, a := range t.Tapes {
			actions[i] = domain.TapeAction{Read: a.Read, Write: a.Write, Move: domain.Move(strings.ToUpper(a.Move))}
		}
		return domain.TMTransition{From: t.From, To: t.To, Tapes: actions}
	default:
		return domain.FSATransition{From: t.From, To: t.To, Symbol: t.Symbol}
	}
}

// FromDomain serializes a under name.
func FromDomain(name string, a *domain.Automaton) Document {
	d := Document{
		Name:        name,
		Kind:        string(a.Kind()),
		SingleInput: a.SingleInput(),
		AllowStay:   a.AllowStay(),
		Finals:      a.Finals(),
	}
	if a.Kind() == domain.KindTM {
		d.Tapes = a.Tapes()
	}
	for _, s := range a.States() {
		d.States = append(d.States, State{ID: s.ID, Label: s.Label})
	}
	if init, ok := a.Initial(); ok {
		id := init.ID
		d.Initial = &id
	}
	for _, t := range a.Transitions() {
		d.Transitions = append(d.Transitions, fromTransition(t))
	}
	return d
}

func fromTransition(t domain.Transition) Transition {
	switch tr := t.(type) {
	case domain.PDATransition:
		return Transition{From: tr.From, To: tr.To, Input: tr.Input, Pop: tr.Pop, Push: tr.Push}
	case domain.TMTransition:
		out := Transition{From: tr.From, To: tr.To}
		for _, a := range tr.Tapes {
			out.Tapes = append(out.Tapes, TapeAction{Read: a.Read, Write: a.Write, Move: string(a.Move)})
		}
		return out
	case domain.FSATransition:
		return Transition{From: tr.From, To: tr.To, Symbol: tr.Symbol}
	default:
		from, to := t.Endpoints()
		return Transition{From: from, To: to, Symbol: t.Label()}
	}
}

// ParseTransition reads the compact form "from -> to: label", where label
// uses the notation of domain.Transition.Label for the given kind:
//
//	fsa: "0 -> 1: a"
//	pda: "0 -> 1: a,Z;AZ"
//	tm:  "0 -> 1: a;b,R|□;x,L"
//
// An empty label after the colon is an epsilon transition.
func ParseTransition(kind domain.Kind, s string) (Transition, error) {
	arrow := strings.Index(s, "->")
	colon := strings.Index(s, ":")
	if arrow < 0 || colon < arrow {
		return Transition{}, fmt.Errorf("transition %q: expected \"from -> to: label\"", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(s[:arrow]))
	if err != nil {
		return Transition{}, fmt.Errorf("transition %q: bad source state: %w", s, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(s[arrow+2 : colon]))
	if err != nil {
		return Transition{}, fmt.Errorf("transition %q: bad target state: %w", s, err)
	}
	label := strings.TrimSpace(s[colon+1:])
	out := Transition{From: from, To: to}

	switch kind {
	case domain.KindPDA:
		in, rest, ok := strings.Cut(label, ",")
		if !ok && label != "" {
			return Transition{}, fmt.Errorf("transition %q: expected \"input,pop;push\"", s)
		}
		pop, push, _ := strings.Cut(rest, ";")
		out.Input, out.Pop, out.Push = in, pop, push
	case domain.KindTM:
		for _, part := range strings.Split(label, "|") {
			read, rest, ok := strings.Cut(part, ";")
			write, move, ok2 := strings.Cut(rest, ",")
			if !ok || !ok2 {
				return Transition{}, fmt.Errorf("transition %q: expected \"read;write,move\" per tape", s)
			}
			out.Tapes = append(out.Tapes, TapeAction{
				Read:  strings.TrimSpace(read),
				Write: strings.TrimSpace(write),
				Move:  strings.TrimSpace(move),
			})
		}
	default:
		out.Symbol = label
	}
	return out, nil
}

// StripLambda replaces every label field equal to lambda with the empty
// string, so documents may spell epsilon with a visible symbol.
func (d *Document) StripLambda(lambda string) {
	if lambda == "" {
		return
	}
	strip := func(s *string) {
		if *s == lambda {
			*s = ""
		}
	}
	for i := range d.Transitions {
		t := &d.Transitions[i]
		strip(&t.Symbol)
		strip(&t.Input)
		strip(&t.Pop)
		strip(&t.Push)
	}
}
