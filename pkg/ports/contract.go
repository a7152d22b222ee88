package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAutomatonStoreContract runs a suite of tests to verify that an
// AutomatonStore implementation adheres to the interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	pda, err := domain.NewBuilder(domain.KindPDA).
		AddState(0, "start").AddState(1, "done").
		AddTransition(domain.PDATransition{From: 0, To: 0, Input: "(", Push: "X"}).
		AddTransition(domain.PDATransition{From: 0, To: 0, Input: ")", Pop: "X"}).
		AddTransition(domain.PDATransition{From: 0, To: 1, Pop: "Z"}).
		SetInitial(0).
		AddFinal(1).
		Build()
	require.NoError(t, err)

	tm, err := domain.NewBuilder(domain.KindTM, domain.WithTapes(2), domain.WithStayMoves()).
		AddState(0, "").AddState(1, "").
		AddTransition(domain.TMTransition{From: 0, To: 1, Tapes: []domain.TapeAction{
			{Read: "a", Write: "b", Move: domain.MoveRight},
			{Read: "□", Write: "a", Move: domain.MoveStay},
		}}).
		SetInitial(0).
		Build()
	require.NoError(t, err)

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, pda), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, pda.Kind(), loaded.Kind())
		assert.Equal(t, pda.States(), loaded.States())
		assert.Equal(t, pda.Transitions(), loaded.Transitions())
		assert.Equal(t, pda.Finals(), loaded.Finals())
		init, ok := loaded.Initial()
		require.True(t, ok)
		assert.Equal(t, 0, init.ID)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, tm))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, domain.KindTM, loaded.Kind())
		assert.Equal(t, 2, loaded.Tapes())
		assert.True(t, loaded.AllowStay())
		assert.Equal(t, tm.Transitions(), loaded.Transitions())
		_, ok := loaded.Initial()
		assert.True(t, ok)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, pda))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name should succeed")
	})

	t.Run("List", func(t *testing.T) {
		names := []string{name + "-b", name + "-a"}
		for _, n := range names {
			require.NoError(t, store.Save(ctx, n, pda))
		}
		defer func() {
			for _, n := range names {
				_ = store.Delete(ctx, n)
			}
		}()

		listed, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, listed, names[0])
		assert.Contains(t, listed, names[1])
		assert.IsNonDecreasing(t, listed, fmt.Sprintf("List should be sorted, got %v", listed))
	})
}
