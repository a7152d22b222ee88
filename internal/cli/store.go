package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// StoreOptions selects the automaton library backing serve and mcp.
type StoreOptions struct {
	// Backend is "memory", "file" or "redis".
	Backend string
	// Dir is the directory of the file backend.
	Dir string
	// Seed is a definition file loaded into the library at startup.
	Seed string
	// Lambda is the symbol definition files use for the empty string.
	Lambda string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// OpenStore creates the configured library. The returned close function is
// never nil.
func OpenStore(ctx context.Context, opts StoreOptions) (ports.AutomatonStore, func() error, error) {
	noop := func() error { return nil }

	var (
		store   ports.AutomatonStore
		closeFn = noop
	)
	switch opts.Backend {
	case "", "memory":
		store = memory.NewStore()
	case "file":
		if opts.Dir == "" {
			return nil, noop, &domain.ValidationError{Key: "store-dir", Reason: "required by the file store"}
		}
		fs, err := file.NewStore(opts.Dir, DecodeOptions(opts.Lambda)...)
		if err != nil {
			return nil, noop, err
		}
		store = fs
	case "redis":
		var ropts []redis.Option
		if opts.RedisPrefix != "" {
			ropts = append(ropts, redis.WithPrefix(opts.RedisPrefix))
		}
		if opts.RedisTTL > 0 {
			ropts = append(ropts, redis.WithTTL(opts.RedisTTL))
		}
		rs := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, ropts...)
		store, closeFn = rs, rs.Close
	default:
		return nil, noop, &domain.ValidationError{Key: "store", Reason: "expected memory, file or redis", Value: opts.Backend}
	}

	if opts.Seed != "" {
		if err := Seed(ctx, store, opts.Seed, DecodeOptions(opts.Lambda)...); err != nil {
			_ = closeFn()
			return nil, noop, err
		}
	}
	return store, closeFn, nil
}

// Seed saves every definition of path into store.
func Seed(ctx context.Context, store ports.AutomatonStore, path string, opts ...file.DecodeOption) error {
	defs, err := file.ReadFile(path, opts...)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := store.Save(ctx, def.Name, def.Automaton); err != nil {
			return fmt.Errorf("seeding %q: %w", def.Name, err)
		}
	}
	return nil
}

// DecodeOptions returns the definition file options for a lambda symbol.
func DecodeOptions(lambda string) []file.DecodeOption {
	if lambda == "" {
		return nil
	}
	return []file.DecodeOption{file.WithLambda(lambda)}
}
