package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "memory", "Automaton library backend (memory|file|redis)")
	cmd.Flags().String("store-dir", "", "Directory of the file backend")
	cmd.Flags().String("seed", "", "Definition file loaded into the library at startup")
	cmd.Flags().String("redis-addr", "localhost:6379", "Redis address")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().String("redis-prefix", "", "Redis key prefix")
	cmd.Flags().Duration("redis-ttl", 0, "Expire stored automata after this long (0 keeps them)")
}

func storeOptions(cmd *cobra.Command, lambda string) cli.StoreOptions {
	backend, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("store-dir")
	seed, _ := cmd.Flags().GetString("seed")
	addr, _ := cmd.Flags().GetString("redis-addr")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	prefix, _ := cmd.Flags().GetString("redis-prefix")
	ttl, _ := cmd.Flags().GetDuration("redis-ttl")
	return cli.StoreOptions{
		Backend:       backend,
		Dir:           dir,
		Seed:          seed,
		Lambda:        lambda,
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
		RedisPrefix:   prefix,
		RedisTTL:      ttl,
	}
}
