package automata_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// epsilonLoop never consumes input under the closure variant.
func epsilonLoop() *dsl.Builder {
	return dsl.PDA().
		States(0, 1).
		Initial(0).
		Final(1).
		Epsilon(0, 0).
		Stack(0, 1, "a", "", "")
}

func TestEngine_New(t *testing.T) {
	eng, err := automata.New(automata.WithBudget(25), automata.WithClosure(true))
	require.NoError(t, err)
	assert.Equal(t, 25, eng.Profile().Budget)
	assert.True(t, eng.Profile().StepWithClosure)

	_, err = automata.New(automata.WithBudget(-1))
	require.Error(t, err)
	assert.NotEmpty(t, domain.ValidationErrors(err))
}

func TestEngine_AcceptsReportsBudget(t *testing.T) {
	eng, err := automata.New(automata.WithClosure(true), automata.WithBudget(100))
	require.NoError(t, err)

	_, err = eng.Accepts(context.Background(), epsilonLoop().MustBuild(), "b")
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)

	res, err := eng.Simulate(context.Background(), epsilonLoop().MustBuild(), "b")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnknown, res.Outcome)
}

func TestEngine_BudgetPolicyAndHooks(t *testing.T) {
	var budgets, completes int
	eng, err := automata.New(
		automata.WithClosure(true),
		automata.WithBudget(10),
		automata.WithBudgetPolicy(func(context.Context, *domain.BudgetEvent) domain.Decision {
			return domain.DecisionReject
		}),
		automata.WithLifecycleHooks(domain.LifecycleHooks{
			OnBudget:   func(context.Context, *domain.BudgetEvent) { budgets++ },
			OnComplete: func(context.Context, *domain.SimulationEvent) { completes++ },
		}),
	)
	require.NoError(t, err)

	ok, err := eng.Accepts(context.Background(), epsilonLoop().MustBuild(), "b")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, budgets)
	assert.Equal(t, 1, completes)
}

func TestEngine_AcceptsAllStopsAtError(t *testing.T) {
	eng, err := automata.New(automata.WithClosure(true), automata.WithBudget(50))
	require.NoError(t, err)

	a := dsl.PDA().
		States(0, 1).
		Initial(0).
		Final(1).
		Stack(0, 1, "b", "", "").
		Epsilon(1, 1).
		MustBuild()

	got, err := eng.AcceptsAll(context.Background(), a, []string{"b", "", "a"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, got)

	got, err = eng.AcceptsAll(context.Background(), epsilonLoop().MustBuild(), []string{"", "a"})
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
	assert.Empty(t, got)
}

func TestEngine_ConvertEqualClosure(t *testing.T) {
	eng, err := automata.New()
	require.NoError(t, err)

	nfa := dsl.FSA().
		States(0, 1, 2).
		Initial(0).
		Final(2).
		Epsilon(0, 1).
		Epsilon(1, 2).
		On(2, 2, "a").
		MustBuild()

	assert.Equal(t, []int{0, 1, 2}, eng.Closure(nfa, 0))
	assert.Equal(t, []int{2}, eng.Closure(nfa, 2))

	dfa, err := eng.Convert(nfa)
	require.NoError(t, err)
	// {0,1,2} --a--> {2} --a--> {2}
	want := dsl.FSA().
		States(3, 4).
		Initial(3).
		Final(3, 4).
		On(3, 4, "a").
		On(4, 4, "a").
		MustBuild()
	assert.True(t, eng.Equal(dfa, want))

	_, err = eng.Convert(epsilonLoop().MustBuild())
	assert.ErrorIs(t, err, domain.ErrNotFiniteAutomaton)
}

func TestEngine_Named(t *testing.T) {
	eng, err := automata.New()
	require.NoError(t, err)
	_, err = eng.Lookup(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	store, err := dsl.NewLibrary().
		Add("as", dsl.FSA().States(0).Initial(0).Final(0).On(0, 0, "a")).
		Build()
	require.NoError(t, err)

	eng, err = automata.New(automata.WithStore(store))
	require.NoError(t, err)

	res, err := eng.SimulateNamed(context.Background(), "as", "aaa")
	require.NoError(t, err)
	assert.True(t, res.Accepted())

	_, err = eng.SimulateNamed(context.Background(), "missing", "")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}
