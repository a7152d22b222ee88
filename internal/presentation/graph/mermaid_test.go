package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		build    *dsl.Builder
		contains []string
		excludes []string
	}{
		{
			name:  "State Shapes",
			build: dsl.FSA().State(0, "even").States(1).Initial(0).Final(0),
			contains: []string{
				"graph LR",
				"entry --> s0",
				"s0(((\"even\")))",
				"s1((\"q1\"))",
			},
		},
		{
			name:  "No Initial State",
			build: dsl.FSA().States(0),
			excludes: []string{
				"entry --> ",
			},
		},
		{
			name:  "Merged Parallel Edges",
			build: dsl.FSA().States(0, 1).On(0, 1, "a").On(0, 1, "b").Epsilon(1, 0),
			contains: []string{
				"s0 -- \"a, b\" --> s1",
				"s1 -- \"λ\" --> s0",
			},
		},
		{
			name:  "PDA Labels",
			build: dsl.PDA().States(0).Stack(0, 0, "(", "", "X"),
			contains: []string{
				"s0 -- \"(,λ;X\" --> s0",
			},
		},
		{
			name:  "TM Labels",
			build: dsl.TM(2).States(0, 1).Tape(0, 1, "a;b,R", "□;□,L"),
			contains: []string{
				"s0 -- \"a;b,R|□;□,L\" --> s1",
			},
		},
		{
			name:  "Quote Escaping",
			build: dsl.FSA().State(0, `say "hi"`).On(0, 0, `"`),
			contains: []string{
				`s0(("say #quot;hi#quot;"))`,
				`s0 -- "#quot;" --> s0`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.build.MustBuild(), domain.DefaultLambda, nil)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
			assert.NotContains(t, out, "Overlay Styles")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	a := dsl.FSA().States(0, 1, 2).Initial(0).Final(2).On(0, 1, "a").On(1, 2, "b").MustBuild()
	trace := []domain.Configuration{{State: 0}, {State: 1}, {State: 0}, {State: 2}}

	out := graph.GenerateMermaid(a, domain.DefaultLambda, graph.OverlayFromTrace(trace))
	assert.Contains(t, out, "class s0 visited;")
	assert.Contains(t, out, "class s1 visited;")
	assert.Contains(t, out, "class s2 current;")
	assert.Equal(t, 1, strings.Count(out, "class s0 visited;"), "visited states are deduplicated")

	assert.Nil(t, graph.OverlayFromTrace(nil))
}
