package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetEvent() *domain.BudgetEvent {
	return &domain.BudgetEvent{Round: 3, Created: 12, Frontier: 4, Budget: 10}
}

func TestPromptPolicy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Decision
	}{
		{"Continue", "c\n", domain.DecisionContinue},
		{"Reject Word", "reject\n", domain.DecisionReject},
		{"Unknown", "u\n", domain.DecisionUnknown},
		{"Retry After Garbage", "what\nyes\n", domain.DecisionContinue},
		{"EOF", "", domain.DecisionUnknown},
		{"Answer Without Newline", "r", domain.DecisionReject},
		{"Gives Up", "a\nb\nc\n", domain.DecisionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			policy := PromptPolicy(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, policy(context.Background(), budgetEvent()))
			assert.Contains(t, out.String(), "12 configurations created by round 3")
		})
	}

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		policy := PromptPolicy(strings.NewReader("c\n"), &bytes.Buffer{})
		assert.Equal(t, domain.DecisionUnknown, policy(ctx, budgetEvent()))
	})
}

func TestInteractivePolicy_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	assert.Nil(t, InteractivePolicy(f, &bytes.Buffer{}))
	assert.Nil(t, InteractivePolicy(nil, &bytes.Buffer{}))
}

func TestNewEngine(t *testing.T) {
	logger := CreateLogger(false)

	t.Run("Profile And Overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("budget: 50\nstack_acceptance: empty_stack\n"), 0644))

		eng, err := NewEngine(EngineOptions{ProfilePath: path, Closure: "on"}, logger)
		require.NoError(t, err)
		assert.Equal(t, 50, eng.Profile().Budget)
		assert.Equal(t, domain.AcceptEmptyStack, eng.Profile().StackAcceptance)
		assert.True(t, eng.Profile().StepWithClosure)

		eng, err = NewEngine(EngineOptions{ProfilePath: path, Budget: 7}, logger)
		require.NoError(t, err)
		assert.Equal(t, 7, eng.Profile().Budget)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := NewEngine(EngineOptions{Closure: "maybe"}, logger)
		assert.Error(t, err)

		_, err = NewEngine(EngineOptions{Budget: -1}, logger)
		assert.Error(t, err)

		_, err = NewEngine(EngineOptions{ProfilePath: filepath.Join(t.TempDir(), "missing.yaml")}, logger)
		assert.Error(t, err)
	})

	t.Run("Metrics And Debug Hooks", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)

		eng, err := NewEngine(EngineOptions{Debug: true, Metrics: metrics}, CreateLogger(true))
		require.NoError(t, err)

		a := dsl.FSA().States(0).Initial(0).Final(0).MustBuild()
		ok, err := eng.Accepts(context.Background(), a, "")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Simulations.WithLabelValues("fsa", "accepted")))
	})
}

const seedFile = `
name: one
kind: fsa
states: [{id: 0}]
initial: 0
finals: [0]
transitions: []
---
name: two
kind: fsa
states: [{id: 0}, {id: 1}]
initial: 0
transitions: ["0 -> 1: ε"]
`

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	seed := filepath.Join(t.TempDir(), "lib.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(seedFile), 0644))

	t.Run("Memory With Seed", func(t *testing.T) {
		store, closeFn, err := OpenStore(ctx, StoreOptions{Seed: seed, Lambda: "ε"})
		require.NoError(t, err)
		defer closeFn()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, names)

		two, err := store.Load(ctx, "two")
		require.NoError(t, err)
		require.Len(t, two.Transitions(), 1)
		assert.Equal(t, "", two.Transitions()[0].(domain.FSATransition).Symbol)
	})

	t.Run("File", func(t *testing.T) {
		dir := t.TempDir()
		store, closeFn, err := OpenStore(ctx, StoreOptions{Backend: "file", Dir: dir, Seed: seed, Lambda: "ε"})
		require.NoError(t, err)
		defer closeFn()

		_, err = os.Stat(filepath.Join(dir, "one.yaml"))
		assert.NoError(t, err)
		_, err = store.Load(ctx, "two")
		assert.NoError(t, err)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, closeFn, err := OpenStore(ctx, StoreOptions{
			Backend:     "redis",
			RedisAddr:   mr.Addr(),
			RedisPrefix: "test:",
			Seed:        seed,
			Lambda:      "ε",
		})
		require.NoError(t, err)
		defer closeFn()

		assert.True(t, mr.Exists("test:automaton:one"))
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, names)
	})

	t.Run("Errors", func(t *testing.T) {
		_, closeFn, err := OpenStore(ctx, StoreOptions{Backend: "file"})
		assert.Error(t, err)
		assert.NoError(t, closeFn())

		_, _, err = OpenStore(ctx, StoreOptions{Backend: "etcd"})
		assert.Error(t, err)

		_, _, err = OpenStore(ctx, StoreOptions{Seed: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, HandleExecutionError(nil))
	assert.NoError(t, HandleExecutionError(context.Canceled))
	assert.Error(t, HandleExecutionError(assert.AnError))
}
