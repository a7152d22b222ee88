package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var closureCmd = &cobra.Command{
	Use:   "closure <file> <state>",
	Short: "Print the epsilon-closure of a state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		state, err := strconv.Atoi(args[1])
		if err != nil {
			return &domain.ValidationError{Key: "state", Reason: "must be an integer", Value: args[1]}
		}

		eng, err := newEngine(cmd, false)
		if err != nil {
			return err
		}
		def, err := loadAutomaton(args[0], name, eng.Profile())
		if err != nil {
			return err
		}
		if !def.Automaton.HasState(state) {
			return &domain.ValidationError{Key: "state", Reason: "unknown state", Value: state}
		}

		ids := eng.Closure(def.Automaton, state)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "{%s}\n", strings.Join(parts, ","))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(closureCmd)
	closureCmd.Flags().StringP("name", "n", "", "Automaton to use when the file defines several")
}
