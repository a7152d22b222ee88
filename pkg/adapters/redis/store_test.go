package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func evenAs(t *testing.T) *domain.Automaton {
	t.Helper()
	a, err := domain.NewBuilder(domain.KindFSA).
		AddState(0, "even").AddState(1, "odd").
		AddTransition(domain.FSATransition{From: 0, To: 1, Symbol: "a"}).
		AddTransition(domain.FSATransition{From: 1, To: 0, Symbol: "a"}).
		SetInitial(0).
		AddFinal(0).
		Build()
	require.NoError(t, err)
	return a
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunAutomatonStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "even-as", evenAs(t)))

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, "even-as")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "even-as")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	// The index is pruned against the wall clock, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "even-as", evenAs(t)))

	assert.True(t, mr.Exists("custom:app:automaton:even-as"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"even-as"}, list)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"automaton:bad", "{not json"))
	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAutomatonNotFound)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"automaton:invalid", `{"kind":"fsa","states":[{"id":0}],"initial":4}`))
	_, err = store.Load(context.Background(), "invalid")
	require.Error(t, err)
	assert.NotEmpty(t, domain.ValidationErrors(err))
}
