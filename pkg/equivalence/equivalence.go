// Package equivalence decides whether two deterministic automata are the same
// machine up to a renaming of their states.
//
// Both automata must be deterministic (at most one outgoing transition per
// label and state) and have an initial state. This is not checked: on other
// inputs the result is unspecified.
package equivalence

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Equal reports whether a bijection between the states of a and b maps
// initial to initial, preserves finality and maps every transition to one
// with the same label.
func Equal(a, b *domain.Automaton) bool {
	if a.NumStates() != b.NumStates() {
		return false
	}
	initA, okA := a.Initial()
	initB, okB := b.Initial()
	if !okA || !okB {
		return !okA && !okB && a.NumStates() == 0
	}

	c := &checker{
		a:       a,
		b:       b,
		forward: make(map[int]int),
		reverse: make(map[int]int),
	}
	return c.matches(initA.ID, initB.ID)
}

// checker holds the partial bijection hypothesized so far.
type checker struct {
	a, b    *domain.Automaton
	forward map[int]int // state of a -> state of b
	reverse map[int]int // state of b -> state of a
}

func (c *checker) matches(sa, sb int) bool {
	if mapped, ok := c.forward[sa]; ok {
		return mapped == sb
	}
	if _, ok := c.reverse[sb]; ok {
		return false
	}
	if c.a.IsFinal(sa) != c.b.IsFinal(sb) {
		return false
	}

	outA := byLabel(c.a.TransitionsFrom(sa))
	outB := byLabel(c.b.TransitionsFrom(sb))
	if len(outA) != len(outB) ||
		len(c.a.TransitionsFrom(sa)) != len(c.b.TransitionsFrom(sb)) {
		return false
	}
	for label := range outA {
		if _, ok := outB[label]; !ok {
			return false
		}
	}

	c.forward[sa] = sb
	c.reverse[sb] = sa
	for label, ta := range outA {
		_, toA := ta.Endpoints()
		_, toB := outB[label].Endpoints()
		if !c.matches(toA, toB) {
			delete(c.forward, sa)
			delete(c.reverse, sb)
			return false
		}
	}
	return true
}

func byLabel(transitions []domain.Transition) map[string]domain.Transition {
	out := make(map[string]domain.Transition, len(transitions))
	for _, t := range transitions {
		out[t.Label()] = t
	}
	return out
}
