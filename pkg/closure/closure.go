// Package closure computes epsilon-closures over an automaton's lambda transitions.
package closure

import (
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Of returns the IDs of every state reachable from state through lambda
// transitions only, including state itself, in ascending order.
// Unknown states yield an empty result.
func Of(a *domain.Automaton, state int) []int {
	if !a.HasState(state) {
		return nil
	}
	return Set(a, []int{state})
}

// Set returns the union of the closures of states, in ascending order.
func Set(a *domain.Automaton, states []int) []int {
	visited := make(map[int]bool, len(states))
	queue := make([]int, 0, len(states))
	for _, s := range states {
		if !visited[s] && a.HasState(s) {
			visited[s] = true
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, t := range a.TransitionsFrom(current) {
			if !t.IsLambda() {
				continue
			}
			_, to := t.Endpoints()
			if !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}

	out := make([]int, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Cache memoizes Of for a single automaton.
// Not safe for concurrent use.
type Cache struct {
	automaton *domain.Automaton
	closures  map[int][]int
}

// NewCache creates a cache bound to a.
func NewCache(a *domain.Automaton) *Cache {
	return &Cache{
		automaton: a,
		closures:  make(map[int][]int),
	}
}

// Of returns the memoized closure of state.
func (c *Cache) Of(state int) []int {
	cl, ok := c.closures[state]
	if !ok {
		cl = Of(c.automaton, state)
		c.closures[state] = cl
	}
	return cl
}
