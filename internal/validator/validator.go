package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Report lists structural problems that Build accepts but that usually
// point at a mistake in a definition.
type Report struct {
	// NoInitial is set when the automaton has states but no initial state.
	NoInitial bool
	// NoFinal is set for finite and pushdown automata without final states.
	NoFinal bool
	// Unreachable lists states no path from the initial state visits.
	Unreachable []int
	// Dead lists reachable states of finite and pushdown automata from which
	// no final state can be reached.
	Dead []int
}

// Clean reports whether the report found nothing.
func (r Report) Clean() bool {
	return !r.NoInitial && !r.NoFinal && len(r.Unreachable) == 0 && len(r.Dead) == 0
}

// Warnings renders the findings as one line each.
func (r Report) Warnings() []string {
	var out []string
	if r.NoInitial {
		out = append(out, "no initial state")
	}
	if r.NoFinal {
		out = append(out, "no final states")
	}
	if len(r.Unreachable) > 0 {
		out = append(out, "unreachable states: "+join(r.Unreachable))
	}
	if len(r.Dead) > 0 {
		out = append(out, "dead states: "+join(r.Dead))
	}
	return out
}

// Check crawls a from its initial state, ignoring transition labels.
func Check(a *domain.Automaton) Report {
	var r Report
	if a.NumStates() == 0 {
		return r
	}
	acceptsByFinal := a.Kind() != domain.KindTM
	r.NoFinal = acceptsByFinal && len(a.Finals()) == 0

	init, ok := a.Initial()
	if !ok {
		r.NoInitial = true
		return r
	}

	forward := make(map[int][]int)
	backward := make(map[int][]int)
	for _, t := range a.Transitions() {
		from, to := t.Endpoints()
		forward[from] = append(forward[from], to)
		backward[to] = append(backward[to], from)
	}

	reachable := crawl([]int{init.ID}, forward)
	for _, s := range a.States() {
		if !reachable[s.ID] {
			r.Unreachable = append(r.Unreachable, s.ID)
		}
	}

	if acceptsByFinal && !r.NoFinal {
		live := crawl(a.Finals(), backward)
		for _, s := range a.States() {
			if reachable[s.ID] && !live[s.ID] {
				r.Dead = append(r.Dead, s.ID)
			}
		}
	}
	return r
}

func crawl(start []int, edges map[int][]int) map[int]bool {
	visited := make(map[int]bool)
	queue := append([]int(nil), start...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}

func join(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
