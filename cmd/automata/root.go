package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata simulates finite, pushdown and Turing machines",
	Long: `Automata loads automaton definitions from YAML files, runs them on input words,
converts NFAs to DFAs and compares deterministic automata up to state renaming.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("profile", "", "Profile file (YAML or JSON) overriding the default settings")
	rootCmd.PersistentFlags().Int("budget", 0, "Configurations created before the budget policy is consulted")
	rootCmd.PersistentFlags().String("closure", "", "Fold epsilon chains into single steps (on|off)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine rounds and budget decisions to stderr")
}

// newEngine builds an engine from the persistent flags.
func newEngine(cmd *cobra.Command, interactive bool) (*automata.Engine, error) {
	opts := engineOptions(cmd)
	opts.Interactive = interactive
	return cli.NewEngine(opts, cli.CreateLogger(opts.Debug))
}

func engineOptions(cmd *cobra.Command) cli.EngineOptions {
	profile, _ := cmd.Flags().GetString("profile")
	budget, _ := cmd.Flags().GetInt("budget")
	closure, _ := cmd.Flags().GetString("closure")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.EngineOptions{
		ProfilePath: profile,
		Budget:      budget,
		Closure:     closure,
		Debug:       debug,
	}
}

// loadAutomaton reads the automaton called name from path, or the first one
// when name is empty. Files use the profile's lambda symbol.
func loadAutomaton(path, name string, p domain.Profile) (file.Definition, error) {
	return file.ReadOne(path, name, cli.DecodeOptions(p.Lambda)...)
}
