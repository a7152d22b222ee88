package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []int
	Current *int
}

// OverlayFromTrace marks every state of a trace as visited and its last one as current.
func OverlayFromTrace(trace []domain.Configuration) *Overlay {
	if len(trace) == 0 {
		return nil
	}
	o := &Overlay{}
	for _, c := range trace {
		o.Visited = append(o.Visited, c.State)
	}
	last := trace[len(trace)-1].State
	o.Current = &last
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a.
// It applies semantic styling:
// - State: ((Circle))
// - Final: (((Double circle)))
// - Initial: an arrow from an invisible entry point
// Parallel transitions between two states share one edge with a combined label.
func GenerateMermaid(a *domain.Automaton, lambda string, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if init, ok := a.Initial(); ok {
		sb.WriteString("    entry[ ]:::entry\n")
		sb.WriteString(fmt.Sprintf("    entry --> %s\n", nodeID(init.ID)))
	}

	for _, s := range a.States() {
		opener, closer := "((", "))"
		if a.IsFinal(s.ID) {
			opener, closer = "(((", ")))"
		}
		label := fmt.Sprintf("q%d", s.ID)
		if s.Label != "" {
			label = s.Label
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(s.ID), opener, escape(label), closer))
	}

	type edge struct{ from, to int }
	labels := make(map[edge][]string)
	var order []edge
	for _, t := range a.Transitions() {
		from, to := t.Endpoints()
		e := edge{from, to}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], DisplayLabel(t, lambda))
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].from != order[j].from {
			return order[i].from < order[j].from
		}
		return order[i].to < order[j].to
	})
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			nodeID(e.from), escape(strings.Join(labels[e], ", ")), nodeID(e.to)))
	}

	sb.WriteString("\n    classDef entry fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.Visited {
			if seen[id] || !a.HasState(id) {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
		}
		if overlay.Current != nil && a.HasState(*overlay.Current) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(*overlay.Current)))
		}
	}

	return sb.String()
}

// DisplayLabel renders the label of t with lambda in place of empty parts.
func DisplayLabel(t domain.Transition, lambda string) string {
	show := func(s string) string {
		if s == "" {
			return lambda
		}
		return s
	}
	switch tr := t.(type) {
	case domain.FSATransition:
		return show(tr.Symbol)
	case domain.PDATransition:
		return fmt.Sprintf("%s,%s;%s", show(tr.Input), show(tr.Pop), show(tr.Push))
	default:
		return t.Label()
	}
}

func nodeID(id int) string {
	if id < 0 {
		return fmt.Sprintf("sm%d", -id)
	}
	return fmt.Sprintf("s%d", id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
