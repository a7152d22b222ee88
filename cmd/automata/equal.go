package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotEqual = errors.New("automata differ")

var equalCmd = &cobra.Command{
	Use:   "equal <file> <left> <right>",
	Short: "Check whether two DFAs are identical up to state renaming",
	Long: `Compares the automata named <left> and <right> in <file>. Both must be deterministic.
Exits with status 1 when they differ.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd, false)
		if err != nil {
			return err
		}
		left, err := loadAutomaton(args[0], args[1], eng.Profile())
		if err != nil {
			return err
		}
		right, err := loadAutomaton(args[0], args[2], eng.Profile())
		if err != nil {
			return err
		}

		if !eng.Equal(left.Automaton, right.Automaton) {
			return fmt.Errorf("%s and %s: %w", left.Name, right.Name, errNotEqual)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s and %s are equal\n", left.Name, right.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(equalCmd)
}
