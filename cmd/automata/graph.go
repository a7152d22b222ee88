package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the automaton in <file>.
With --input, the states on the accepting path are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		eng, err := newEngine(cmd, false)
		if err != nil {
			return err
		}
		def, err := loadAutomaton(args[0], name, eng.Profile())
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res, err := eng.Simulate(cmd.Context(), def.Automaton, input)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromTrace(res.Trace())
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def.Automaton, eng.Profile().Lambda, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("name", "n", "", "Automaton to use when the file defines several")
	graphCmd.Flags().StringP("input", "i", "", "Highlight the accepting path for this input")
}
