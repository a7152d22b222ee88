/*
Package automata simulates and transforms finite automata, pushdown automata
and multi-tape Turing machines.

# Concept

An automaton is built once through domain.Builder, which validates it and
returns an immutable snapshot. The Engine then explores its configuration
space breadth-first: every round checks the live configurations for
acceptance and replaces them by their successors. Every configuration ever
created is kept in a tree, so the path that led to acceptance can be replayed.

Nondeterministic searches can grow without bound. A configuration budget
bounds the work between two decisions of a BudgetPolicy, which may continue,
reject or give up with an unknown outcome.

# Key Features

  - Three machine families behind one Stepper interface.
  - Epsilon-closure folding for finite and pushdown automata.
  - Subset construction from NFA to DFA.
  - Isomorphism check between deterministic automata.
  - Pluggable automaton libraries (memory, YAML files, Redis).

# Usage

	a, err := dsl.FSA().
		States(0, 1).
		Initial(0).
		Final(1).
		On(0, 0, "a").
		On(0, 1, "a").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := automata.New()
	if err != nil {
		log.Fatal(err)
	}

	ok, err := eng.Accepts(context.Background(), a, "aaa")
*/
package automata
