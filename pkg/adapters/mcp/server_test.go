package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parensYAML = `
kind: pda
states: [{id: 0}]
initial: 0
transitions:
  - "0 -> 0: (,λ;X"
  - "0 -> 0: ),X;λ"
  - "0 -> 0: λ,Z;λ"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := dsl.NewLibrary().
		Add("ends-in-a", dsl.FSA().States(0, 1).Initial(0).Final(1).
			On(0, 0, "a").On(0, 0, "b").On(0, 1, "a")).
		Add("lambda-chain", dsl.FSA().States(0, 1, 2).Initial(0).
			Epsilon(0, 1).Epsilon(1, 2).On(2, 0, "a")).
		Build()
	require.NoError(t, err)

	p := domain.DefaultProfile()
	p.StackAcceptance = domain.AcceptEmptyStack
	eng, err := automata.New(automata.WithProfile(p), automata.WithStore(store))
	require.NoError(t, err)
	return NewServer(eng, store)
}

func call(args map[string]interface{}) (context.Context, mcp.CallToolRequest, map[string]interface{}) {
	return context.Background(), mcp.CallToolRequest{}, args
}

func TestSimulateTool(t *testing.T) {
	s := newTestServer(t)

	t.Run("Named", func(t *testing.T) {
		resp, err := s.handleSimulate(call(map[string]interface{}{"automaton": "ends-in-a", "input": "ba", "trace": true}))
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAccepted, resp.Outcome)
		assert.True(t, resp.Accepted)
		assert.Len(t, resp.Trace, 3)
	})

	t.Run("Inline", func(t *testing.T) {
		resp, err := s.handleSimulate(call(map[string]interface{}{"automaton": parensYAML, "input": "(())"}))
		require.NoError(t, err)
		assert.True(t, resp.Accepted)
		assert.Empty(t, resp.Trace)

		resp, err = s.handleSimulate(call(map[string]interface{}{"automaton": parensYAML, "input": "())"}))
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeRejected, resp.Outcome)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := s.handleSimulate(call(map[string]interface{}{"automaton": "missing"}))
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

		_, err = s.handleSimulate(call(map[string]interface{}{}))
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)

		_, err = s.handleSimulate(call(map[string]interface{}{"automaton": "kind: fsa\ninitial: 4\n"}))
		assert.Error(t, err)

		_, err = s.handleSimulate(call(map[string]interface{}{"automaton": "ends-in-a", "input": "a\x00"}))
		assert.ErrorIs(t, err, sanitize.ErrControlCharacter)
	})
}

func TestConvertAndEqualTools(t *testing.T) {
	s := newTestServer(t)

	conv, err := s.handleConvert(call(map[string]interface{}{"automaton": "ends-in-a"}))
	require.NoError(t, err)
	assert.Len(t, conv.Automaton.States, 2)

	raw, err := json.Marshal(conv.Automaton)
	require.NoError(t, err)

	eq, err := s.handleEqual(call(map[string]interface{}{"left": string(raw), "right": string(raw)}))
	require.NoError(t, err)
	assert.True(t, eq.Equal)

	eq, err = s.handleEqual(call(map[string]interface{}{"left": string(raw), "right": "lambda-chain"}))
	require.NoError(t, err)
	assert.False(t, eq.Equal)

	_, err = s.handleConvert(call(map[string]interface{}{"automaton": parensYAML}))
	assert.ErrorIs(t, err, domain.ErrNotFiniteAutomaton)

	_, err = s.handleEqual(call(map[string]interface{}{"left": "ends-in-a", "right": "nope"}))
	assert.ErrorContains(t, err, "right")
}

func TestClosureTool(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleClosure(call(map[string]interface{}{"automaton": "lambda-chain", "state": float64(0)}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, resp.Closure)

	resp, err = s.handleClosure(call(map[string]interface{}{"automaton": "lambda-chain", "state": float64(2)}))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, resp.Closure)

	_, err = s.handleClosure(call(map[string]interface{}{"automaton": "lambda-chain", "state": 1.5}))
	assert.Error(t, err)

	_, err = s.handleClosure(call(map[string]interface{}{"automaton": "lambda-chain", "state": float64(7)}))
	assert.Error(t, err)
}

func TestLibraryResource(t *testing.T) {
	s := newTestServer(t)

	text, err := s.libraryJSON(context.Background())
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "ends-in-a", docs[0]["name"])
	assert.Equal(t, "lambda-chain", docs[1]["name"])
}
