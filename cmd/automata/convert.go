package main

import (
	"os"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a finite automaton into a DFA",
	Long:  `Runs the subset construction on the automaton in <file> and writes the DFA as YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		output, _ := cmd.Flags().GetString("output")

		eng, err := newEngine(cmd, false)
		if err != nil {
			return err
		}
		def, err := loadAutomaton(args[0], name, eng.Profile())
		if err != nil {
			return err
		}
		dfa, err := eng.Convert(def.Automaton)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return file.Encode(w, def.Name+"-dfa", dfa)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("name", "n", "", "Automaton to use when the file defines several")
	convertCmd.Flags().StringP("output", "o", "", "Write the DFA to this file instead of stdout")
}
