package dto_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_RoundTripPDA(t *testing.T) {
	a, err := domain.NewBuilder(domain.KindPDA, domain.WithSingleInput()).
		AddState(0, "q0").AddState(1, "q1").
		AddTransition(domain.PDATransition{From: 0, To: 0, Input: "(", Push: "X"}).
		AddTransition(domain.PDATransition{From: 0, To: 1, Pop: "Z"}).
		SetInitial(0).
		AddFinal(1).
		Build()
	require.NoError(t, err)

	doc := dto.FromDomain("parens", a)
	assert.Equal(t, "parens", doc.Name)
	assert.Equal(t, "pda", doc.Kind)
	assert.True(t, doc.SingleInput)
	require.NotNil(t, doc.Initial)
	assert.Equal(t, 0, *doc.Initial)

	back, err := doc.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, a.States(), back.States())
	assert.Equal(t, a.Transitions(), back.Transitions())
	assert.Equal(t, a.Finals(), back.Finals())
	assert.True(t, back.SingleInput())
}

func TestDocument_ToDomainReportsName(t *testing.T) {
	doc := dto.Document{
		Name:        "broken",
		Kind:        "fsa",
		States:      []dto.State{{ID: 0}},
		Transitions: []dto.Transition{{From: 0, To: 3, Symbol: "a"}},
	}
	_, err := doc.ToDomain()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `automaton "broken"`)
	assert.NotEmpty(t, domain.ValidationErrors(err))
}

func TestDocument_TMMovesAreCaseInsensitive(t *testing.T) {
	doc := dto.Document{
		Kind:   "TM",
		States: []dto.State{{ID: 0}, {ID: 1}},
		Transitions: []dto.Transition{
			{From: 0, To: 1, Tapes: []dto.TapeAction{{Read: "a", Write: "b", Move: "r"}}},
		},
	}
	a, err := doc.ToDomain()
	require.NoError(t, err)
	tr := a.Transitions()[0].(domain.TMTransition)
	assert.Equal(t, domain.MoveRight, tr.Tapes[0].Move)
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		in   string
		want dto.Transition
	}{
		{"fsa", domain.KindFSA, "0 -> 1: ab", dto.Transition{From: 0, To: 1, Symbol: "ab"}},
		{"fsa epsilon", domain.KindFSA, "2->3:", dto.Transition{From: 2, To: 3}},
		{"pda", domain.KindPDA, "0 -> 1: a,Z;AZ", dto.Transition{From: 0, To: 1, Input: "a", Pop: "Z", Push: "AZ"}},
		{"pda empty", domain.KindPDA, "1 -> 1: ,;", dto.Transition{From: 1, To: 1}},
		{"tm two tapes", domain.KindTM, "0 -> 0: a;a,R|□;a,R", dto.Transition{From: 0, To: 0, Tapes: []dto.TapeAction{
			{Read: "a", Write: "a", Move: "R"},
			{Read: "□", Write: "a", Move: "R"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dto.ParseTransition(tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransition_Errors(t *testing.T) {
	for _, in := range []string{"0 1 a", "x -> 1: a", "0 -> y: a"} {
		_, err := dto.ParseTransition(domain.KindFSA, in)
		assert.Error(t, err, in)
	}
	_, err := dto.ParseTransition(domain.KindPDA, "0 -> 1: a")
	assert.Error(t, err)
	_, err = dto.ParseTransition(domain.KindTM, "0 -> 1: a,R")
	assert.Error(t, err)
}

func TestDocument_StripLambda(t *testing.T) {
	doc := dto.Document{Transitions: []dto.Transition{
		{Symbol: "λ"},
		{Input: "λ", Pop: "Z", Push: "λ"},
	}}
	doc.StripLambda("λ")
	assert.Equal(t, "", doc.Transitions[0].Symbol)
	assert.Equal(t, dto.Transition{Pop: "Z"}, doc.Transitions[1])
}

func TestRef_Resolve(t *testing.T) {
	ctx := context.Background()
	a, err := domain.NewBuilder(domain.KindFSA).AddState(0, "").SetInitial(0).Build()
	require.NoError(t, err)
	store := memory.NewStoreFrom(map[string]*domain.Automaton{"single": a})

	got, err := dto.Ref{Name: "single"}.Resolve(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumStates())

	inline := dto.FromDomain("", a)
	inline.States = append(inline.States, dto.State{ID: 1})
	got, err = dto.Ref{Name: "single", Automaton: &inline}.Resolve(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumStates(), "inline definitions win")

	_, err = dto.Ref{Name: "missing"}.Resolve(ctx, store)
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = dto.Ref{Name: "single"}.Resolve(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = dto.Ref{}.Resolve(ctx, store)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
