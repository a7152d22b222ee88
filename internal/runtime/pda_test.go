package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balancedParens is the PDA derived from S -> (S)S | λ, accepting by empty stack.
func balancedParens(t *testing.T) *domain.Automaton {
	return mustBuild(t, domain.NewBuilder(domain.KindPDA).
		AddState(0, "q0").AddState(1, "q1").
		AddTransition(domain.PDATransition{From: 0, To: 1, Pop: "Z", Push: "SZ"}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Pop: "S", Push: "(S)S"}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Pop: "S"}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Input: "(", Pop: "("}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Input: ")", Pop: ")"}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Pop: "Z"}).
		SetInitial(0))
}

func TestSimulation_PDA_EmptyStack(t *testing.T) {
	a := balancedParens(t)
	p := domain.DefaultProfile()
	p.StackAcceptance = domain.AcceptEmptyStack

	tests := []struct {
		input string
		want  domain.Outcome
	}{
		{"(())", domain.OutcomeAccepted},
		{"()()", domain.OutcomeAccepted},
		{"", domain.OutcomeAccepted},
		{"(()", domain.OutcomeRejected},
		{")(", domain.OutcomeRejected},
	}
	for _, withClosure := range []bool{false, true} {
		p.StepWithClosure = withClosure
		for _, tt := range tests {
			res := run(t, a, p, tt.input)
			assert.Equal(t, tt.want, res.Outcome, "input %q closure=%v", tt.input, withClosure)
		}
	}
}

func TestSimulation_PDA_FinalState(t *testing.T) {
	// a^n b^n, n >= 1, accepting in state 2 once the input is consumed.
	a := mustBuild(t, domain.NewBuilder(domain.KindPDA, domain.WithSingleInput()).
		AddState(0, "").AddState(1, "").AddState(2, "").
		AddTransition(domain.PDATransition{From: 0, To: 0, Input: "a", Push: "A"}).
		AddTransition(domain.PDATransition{From: 0, To: 1, Input: "b", Pop: "A"}).
		AddTransition(domain.PDATransition{From: 1, To: 1, Input: "b", Pop: "A"}).
		AddTransition(domain.PDATransition{From: 1, To: 2, Pop: "Z", Push: "Z"}).
		SetInitial(0).
		AddFinal(2))

	p := domain.DefaultProfile()
	assert.True(t, run(t, a, p, "ab").Accepted())
	assert.True(t, run(t, a, p, "aaabbb").Accepted())
	assert.False(t, run(t, a, p, "aab").Accepted())
	assert.False(t, run(t, a, p, "abb").Accepted())
	assert.False(t, run(t, a, p, "").Accepted())

	res := run(t, a, p, "aabb")
	trace := res.Trace()
	require.NotEmpty(t, trace)
	assert.Equal(t, "Z", trace[0].Stack)
	assert.Equal(t, "AAZ", trace[2].Stack)
	assert.Equal(t, "Z", trace[len(trace)-1].Stack)

	// Final state alone does not accept with input left over.
	p.StackAcceptance = domain.AcceptEmptyStack
	assert.False(t, run(t, a, p, "ab").Accepted())
}

func TestSimulation_PDA_SiblingsDoNotShareStacks(t *testing.T) {
	a := mustBuild(t, domain.NewBuilder(domain.KindPDA).
		AddState(0, "").AddState(1, "").AddState(2, "").
		AddTransition(domain.PDATransition{From: 0, To: 1, Push: "X"}).
		AddTransition(domain.PDATransition{From: 0, To: 2, Push: "Y"}).
		SetInitial(0))

	res := run(t, a, domain.DefaultProfile(), "")
	children := res.Tree.Children(0)
	require.Len(t, children, 2)
	left, _ := res.Tree.Get(children[0])
	right, _ := res.Tree.Get(children[1])
	root, _ := res.Tree.Get(0)
	assert.Equal(t, "XZ", left.Stack)
	assert.Equal(t, "YZ", right.Stack)
	assert.Equal(t, "Z", root.Stack)
}

func epsilonSelfLoop(t *testing.T) *domain.Automaton {
	return mustBuild(t, domain.NewBuilder(domain.KindPDA).
		AddState(0, "").AddState(1, "").
		AddTransition(domain.PDATransition{From: 0, To: 0}).
		AddTransition(domain.PDATransition{From: 0, To: 1, Input: "a"}).
		SetInitial(0).
		AddFinal(1))
}

func TestSimulation_PDA_EpsilonLoopHitsBudget(t *testing.T) {
	p := domain.DefaultProfile()
	p.StepWithClosure = true

	var events []*domain.BudgetEvent
	hooks := domain.LifecycleHooks{
		OnBudget: func(ctx context.Context, e *domain.BudgetEvent) {
			events = append(events, e)
		},
	}

	res := run(t, epsilonSelfLoop(t), p, "b", runtime.WithLifecycleHooks(hooks))
	assert.Equal(t, domain.OutcomeUnknown, res.Outcome)
	assert.Greater(t, res.Created, domain.DefaultBudget)
	require.Len(t, events, 1)
	assert.Equal(t, domain.DecisionUnknown, events[0].Decision)
	assert.Equal(t, domain.DefaultBudget, events[0].Budget)
	assert.NotEmpty(t, res.Frontier)
}

func TestSimulation_BudgetPolicy(t *testing.T) {
	p := domain.DefaultProfile()
	p.StepWithClosure = true
	p.Budget = 50

	t.Run("Continue Then Reject", func(t *testing.T) {
		calls := 0
		policy := func(ctx context.Context, e *domain.BudgetEvent) domain.Decision {
			calls++
			if calls < 3 {
				return domain.DecisionContinue
			}
			return domain.DecisionReject
		}
		res := run(t, epsilonSelfLoop(t), p, "b", runtime.WithBudgetPolicy(policy))
		assert.Equal(t, domain.OutcomeRejected, res.Outcome)
		assert.Equal(t, 3, calls)
		assert.Greater(t, res.Created, 150)
	})

	t.Run("Continue Until Accepted", func(t *testing.T) {
		calls := 0
		policy := func(ctx context.Context, e *domain.BudgetEvent) domain.Decision {
			calls++
			return domain.DecisionContinue
		}
		// The self loop keeps one branch alive forever, but "a" is accepted
		// on the second round, before the budget matters.
		res := run(t, epsilonSelfLoop(t), p, "a", runtime.WithBudgetPolicy(policy))
		assert.True(t, res.Accepted())
		assert.Zero(t, calls)
	})

	t.Run("Budget Option Overrides Profile", func(t *testing.T) {
		res := run(t, epsilonSelfLoop(t), p, "b", runtime.WithBudget(5))
		assert.Equal(t, domain.OutcomeUnknown, res.Outcome)
		assert.LessOrEqual(t, res.Created, 10)
	})
}
