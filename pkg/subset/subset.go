// Package subset converts nondeterministic finite automata into deterministic
// ones by subset construction over epsilon-closures.
package subset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/closure"
	"github.com/aretw0/automata/pkg/domain"
)

// Convert returns a DFA accepting the same language as nfa.
// An automaton that is already deterministic is returned as a clone.
// DFA state labels carry the originating NFA state sets, e.g. "{0,1}".
func Convert(nfa *domain.Automaton) (*domain.Automaton, error) {
	if nfa.Kind() != domain.KindFSA {
		return nil, fmt.Errorf("subset construction: %w", domain.ErrNotFiniteAutomaton)
	}
	if IsDeterministic(nfa) {
		return nfa.Clone(), nil
	}
	c, err := NewConstructor(nfa)
	if err != nil {
		return nil, err
	}
	return c.Run()
}

// IsDeterministic reports whether a is an FSA with no epsilon transitions and
// no two transitions leaving a state whose labels prefix one another.
func IsDeterministic(a *domain.Automaton) bool {
	if a.Kind() != domain.KindFSA {
		return false
	}
	for _, s := range a.States() {
		out := a.TransitionsFrom(s.ID)
		for i, t := range out {
			if t.IsLambda() {
				return false
			}
			for _, u := range out[i+1:] {
				if strings.HasPrefix(t.Label(), u.Label()) || strings.HasPrefix(u.Label(), t.Label()) {
					return false
				}
			}
		}
	}
	return true
}

// Normalize splits every transition labeled with more than one symbol into a
// chain of single-symbol transitions through fresh intermediate states.
// The result accepts the same language.
func Normalize(a *domain.Automaton) (*domain.Automaton, error) {
	if a.Kind() != domain.KindFSA {
		return nil, fmt.Errorf("normalize: %w", domain.ErrNotFiniteAutomaton)
	}
	multi := false
	for _, t := range a.Transitions() {
		if utf8.RuneCountInString(t.Label()) > 1 {
			multi = true
			break
		}
	}
	if !multi {
		return a, nil
	}

	b := domain.NewBuilder(domain.KindFSA)
	for _, s := range a.States() {
		b.AddState(s.ID, s.Label)
	}
	if init, ok := a.Initial(); ok {
		b.SetInitial(init.ID)
	}
	for _, id := range a.Finals() {
		b.AddFinal(id)
	}

	next := a.MaxStateID() + 1
	for _, t := range a.Transitions() {
		tr := t.(domain.FSATransition)
		symbols := []rune(tr.Symbol)
		if len(symbols) <= 1 {
			b.AddTransition(tr)
			continue
		}
		from := tr.From
		for i, r := range symbols {
			to := tr.To
			if i < len(symbols)-1 {
				to = next
				b.AddState(next, "")
				next++
			}
			b.AddTransition(domain.FSATransition{From: from, To: to, Symbol: string(r)})
			from = to
		}
	}
	return b.Build()
}

// Constructor runs the subset construction step by step.
type Constructor struct {
	nfa      *domain.Automaton
	closures *closure.Cache
	alphabet []string

	sets     [][]int        // DFA state ID -> sorted NFA state set
	byKey    map[string]int // canonical set key -> DFA state ID
	expanded []bool
	worklist []int

	transitions []domain.FSATransition
	initial     int
}

// NewConstructor prepares a construction for nfa, normalizing multi-symbol labels first.
func NewConstructor(nfa *domain.Automaton) (*Constructor, error) {
	if nfa.Kind() != domain.KindFSA {
		return nil, fmt.Errorf("subset construction: %w", domain.ErrNotFiniteAutomaton)
	}
	if _, ok := nfa.Initial(); !ok {
		return nil, fmt.Errorf("subset construction: %w", domain.ErrNoInitialState)
	}
	normalized, err := Normalize(nfa)
	if err != nil {
		return nil, fmt.Errorf("subset construction: %w", err)
	}
	return &Constructor{
		nfa:      normalized,
		closures: closure.NewCache(normalized),
		alphabet: normalized.Alphabet(),
		byKey:    make(map[string]int),
		initial:  -1,
	}, nil
}

// CreateInitialState creates the DFA state for the closure of the NFA initial
// state and queues it for expansion. It is idempotent.
func (c *Constructor) CreateInitialState() int {
	if c.initial >= 0 {
		return c.initial
	}
	init, _ := c.nfa.Initial()
	c.initial = c.intern(c.closures.Of(init.ID))
	return c.initial
}

// ExpandState adds the outgoing transitions of DFA state id, creating and
// queueing target states that did not exist yet. A state is expanded once.
func (c *Constructor) ExpandState(id int) {
	if id < 0 || id >= len(c.sets) || c.expanded[id] {
		return
	}
	c.expanded[id] = true

	for _, symbol := range c.alphabet {
		target := c.move(c.sets[id], symbol)
		if len(target) == 0 {
			continue
		}
		to := c.intern(target)
		c.transitions = append(c.transitions, domain.FSATransition{From: id, To: to, Symbol: symbol})
	}
}

// Run expands states until the worklist is empty and builds the DFA.
func (c *Constructor) Run() (*domain.Automaton, error) {
	c.CreateInitialState()
	for len(c.worklist) > 0 {
		id := c.worklist[0]
		c.worklist = c.worklist[1:]
		c.ExpandState(id)
	}
	return c.Build()
}

// Build assembles the DFA from the states created so far.
func (c *Constructor) Build() (*domain.Automaton, error) {
	b := domain.NewBuilder(domain.KindFSA)
	for id, set := range c.sets {
		b.AddState(id, Label(set))
		if c.containsFinal(set) {
			b.AddFinal(id)
		}
	}
	if c.initial >= 0 {
		b.SetInitial(c.initial)
	}
	for _, t := range c.transitions {
		b.AddTransition(t)
	}
	return b.Build()
}

// Subset returns the NFA state set behind DFA state id.
func (c *Constructor) Subset(id int) []int {
	if id < 0 || id >= len(c.sets) {
		return nil
	}
	out := make([]int, len(c.sets[id]))
	copy(out, c.sets[id])
	return out
}

// Pending reports how many DFA states still wait for expansion.
func (c *Constructor) Pending() int {
	return len(c.worklist)
}

// Label renders a sorted state set as "{0,1,2}".
func Label(set []int) string {
	parts := make([]string, len(set))
	for i, id := range set {
		parts[i] = strconv.Itoa(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// intern returns the DFA state for set, creating and queueing it if needed.
func (c *Constructor) intern(set []int) int {
	key := Label(set)
	if id, ok := c.byKey[key]; ok {
		return id
	}
	id := len(c.sets)
	c.sets = append(c.sets, set)
	c.expanded = append(c.expanded, false)
	c.byKey[key] = id
	c.worklist = append(c.worklist, id)
	return id
}

// move returns the closure of the states reachable from set on symbol.
func (c *Constructor) move(set []int, symbol string) []int {
	seen := make(map[int]bool)
	for _, s := range set {
		for _, t := range c.nfa.TransitionsFrom(s) {
			if t.Label() != symbol {
				continue
			}
			_, to := t.Endpoints()
			for _, id := range c.closures.Of(to) {
				seen[id] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (c *Constructor) containsFinal(set []int) bool {
	for _, id := range set {
		if c.nfa.IsFinal(id) {
			return true
		}
	}
	return false
}
