package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

type simulateOutput struct {
	Input   string `json:"input"`
	Outcome string `json:"outcome"`
	Rounds  int    `json:"rounds"`
	Created int    `json:"configurations"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <file> [input...]",
	Short: "Run an automaton on one or more input words",
	Long: `Runs the automaton defined in <file> on every input word and prints its verdict.
With --trace, the path that led to acceptance is printed as a table.
When the budget runs out on a terminal, you are asked whether to keep searching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		trace, _ := cmd.Flags().GetBool("trace")
		plain, _ := cmd.Flags().GetBool("plain")
		jsonMode, _ := cmd.Flags().GetBool("json")

		eng, err := newEngine(cmd, !jsonMode)
		if err != nil {
			return err
		}
		def, err := loadAutomaton(args[0], name, eng.Profile())
		if err != nil {
			return err
		}

		inputs := args[1:]
		if len(inputs) == 0 {
			inputs = []string{""}
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		out := cmd.OutOrStdout()
		render, err := tui.NewRenderer(plain || jsonMode)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)

		for _, input := range inputs {
			res, err := eng.Simulate(ctx, def.Automaton, input)
			if err != nil {
				return cli.HandleExecutionError(err)
			}

			if jsonMode {
				if err := enc.Encode(simulateOutput{
					Input:   input,
					Outcome: string(res.Outcome),
					Rounds:  res.Rounds,
					Created: res.Created,
				}); err != nil {
					return err
				}
				continue
			}

			if !trace {
				fmt.Fprintf(out, "%q\t%s\n", input, tui.Outcome(res.Outcome))
				continue
			}
			md := tui.SummaryMarkdown(input, res.Outcome, res.Rounds, res.Created)
			if path := res.Trace(); len(path) > 0 {
				md += "\n" + tui.TraceMarkdown(def.Automaton.Kind(), path, eng.Profile())
			}
			rendered, err := render(md)
			if err != nil {
				fmt.Fprintln(os.Stderr, "render failed:", err)
				rendered = md
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("name", "n", "", "Automaton to use when the file defines several")
	simulateCmd.Flags().BoolP("trace", "t", false, "Print the accepting path")
	simulateCmd.Flags().Bool("plain", false, "Print markdown without terminal styling")
	simulateCmd.Flags().Bool("json", false, "Print one JSON object per input")
}
