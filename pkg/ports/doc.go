/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the engine from storage backends, so the same
automaton library can live in memory, in a directory of YAML files or in Redis.

# Key Interfaces

  - AutomatonStore: Saves, loads, lists and deletes named automata.

RunAutomatonStoreContract is a reusable test suite every adapter runs.
*/
package ports
