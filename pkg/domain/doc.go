/*
Package domain contains the core data model of the automata engine.

It defines the automaton structure consumed by the simulators, the subset
constructor and the equivalence checker, plus the configuration records those
simulators produce. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - State: A uniquely numbered vertex of an automaton, with an optional label.
  - Transition: A sealed sum type over FSATransition, PDATransition and TMTransition.
  - Automaton: An immutable snapshot built (and validated) through Builder.
  - Configuration: One point of a nondeterministic computation, stored in a Tree.
  - Profile: Explicit engine settings (symbols, budget, acceptance modes).
*/
package domain
