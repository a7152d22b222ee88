/*
Package dsl provides a fluent Go DSL for constructing automata programmatically.

It is a thin layer over domain.Builder that reads well in tests and examples
and spares callers the transition struct literals.

Example usage:

	package main

	import (
		"github.com/aretw0/automata/pkg/dsl"
	)

	func main() {
		// Balanced parentheses, accepted by empty stack.
		parens := dsl.PDA().
			States(0).
			Initial(0).
			Stack(0, 0, "(", "", "X").
			Stack(0, 0, ")", "X", "").
			Stack(0, 0, "", "Z", "")

		// Binary increment on a single tape.
		inc := dsl.TM(1).
			States(0, 1, 2).
			Initial(0).
			Final(2).
			Tape(0, 0, "~;~,R").
			Tape(0, 1, "□;□,L").
			Tape(1, 1, "1;0,L").
			Tape(1, 2, "0;1,L").
			Tape(1, 2, "□;1,L")

		// The resulting library can be attached with automata.WithStore.
		store, err := dsl.NewLibrary().
			Add("parens", parens).
			Add("increment", inc).
			Build()
		// ...
	}
*/
package dsl
