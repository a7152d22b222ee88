package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/subset"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check definition files for consistency",
	Long: `Decodes every automaton of each file, reporting unknown states, malformed
transitions and wrong tape counts. Finite automata are also reported as
deterministic or not, and unreachable or dead states are listed as warnings.
With --strict, warnings fail the check too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd, false)
		if err != nil {
			return err
		}

		strict, _ := cmd.Flags().GetBool("strict")
		out := cmd.OutOrStdout()
		var failed int
		for _, path := range args {
			defs, err := file.ReadFile(path, cli.DecodeOptions(eng.Profile().Lambda)...)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s: %v\n", path, err)
				for _, verr := range domain.ValidationErrors(err) {
					fmt.Fprintf(out, "  - %v\n", verr)
				}
				continue
			}
			for _, def := range defs {
				a := def.Automaton
				note := ""
				if a.Kind() == domain.KindFSA {
					if subset.IsDeterministic(a) {
						note = ", deterministic"
					} else {
						note = ", nondeterministic"
					}
				}
				report := validator.Check(a)
				mark := "✅"
				if !report.Clean() {
					mark = "⚠️"
				}
				fmt.Fprintf(out, "%s: %s (%s, %d states, %d transitions%s) %s\n",
					path, def.Name, a.Kind(), a.NumStates(), len(a.Transitions()), note, mark)
				for _, w := range report.Warnings() {
					fmt.Fprintf(out, "  - %s\n", w)
				}
				if strict && !report.Clean() {
					failed++
				}
			}
		}

		if failed > 0 {
			return fmt.Errorf("validation failed: %d problems in %d files", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
