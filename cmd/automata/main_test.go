package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const library = `
name: ends-in-a
kind: fsa
states: [{id: 0}, {id: 1}]
initial: 0
finals: [1]
transitions:
  - "0 -> 0: a"
  - "0 -> 0: b"
  - "0 -> 1: a"
---
name: ends-in-a-dfa
kind: fsa
states: [{id: 10}, {id: 11}]
initial: 10
finals: [11]
transitions:
  - "10 -> 11: a"
  - "10 -> 10: b"
  - "11 -> 11: a"
  - "11 -> 10: b"
---
name: chain
kind: fsa
states: [{id: 0}, {id: 1}, {id: 2}]
initial: 0
transitions:
  - "0 -> 1: λ"
  - "1 -> 2: λ"
`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the CLI with args after resetting every flag to its default.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	lib := writeLibrary(t, library)

	out, err := run(t, "simulate", lib, "ba", "ab", "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "accepted")
	assert.Contains(t, lines[1], "rejected")
	assert.Contains(t, lines[2], "rejected")

	out, err = run(t, "simulate", lib, "--json", "aa")
	require.NoError(t, err)
	var res simulateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "aa", res.Input)
	assert.Equal(t, "accepted", res.Outcome)

	out, err = run(t, "simulate", lib, "--name", "ends-in-a-dfa", "--trace", "--plain", "ba")
	require.NoError(t, err)
	assert.Contains(t, out, "| step |")
	assert.Contains(t, out, "accepted")

	_, err = run(t, "simulate", lib, "--name", "missing", "a")
	assert.Error(t, err)

	_, err = run(t, "simulate", lib, "--budget=-3", "a")
	assert.Error(t, err)
}

func TestConvertAndEqualCommands(t *testing.T) {
	lib := writeLibrary(t, library)

	out, err := run(t, "convert", lib)
	require.NoError(t, err)
	assert.Contains(t, out, "name: ends-in-a-dfa")

	// Append the converted DFA to the library and compare it with the hand-written one.
	converted := strings.Replace(out, "name: ends-in-a-dfa", "name: converted", 1)
	both := writeLibrary(t, library+"---\n"+converted)

	out, err = run(t, "equal", both, "converted", "ends-in-a-dfa")
	require.NoError(t, err)
	assert.Contains(t, out, "are equal")

	_, err = run(t, "equal", both, "converted", "chain")
	assert.ErrorIs(t, err, errNotEqual)

	dst := filepath.Join(t.TempDir(), "dfa.yaml")
	_, err = run(t, "convert", lib, "-o", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: fsa")
}

func TestClosureCommand(t *testing.T) {
	lib := writeLibrary(t, library)

	out, err := run(t, "closure", lib, "0", "--name", "chain")
	require.NoError(t, err)
	assert.Equal(t, "{0,1,2}\n", out)

	_, err = run(t, "closure", lib, "x", "--name", "chain")
	assert.Error(t, err)
	_, err = run(t, "closure", lib, "9", "--name", "chain")
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	lib := writeLibrary(t, library)

	out, err := run(t, "graph", lib, "--input", "ba")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "classDef")
}

func TestValidateCommand(t *testing.T) {
	lib := writeLibrary(t, library)
	out, err := run(t, "validate", lib)
	require.NoError(t, err)
	assert.Contains(t, out, "ends-in-a (fsa, 2 states, 3 transitions, nondeterministic)")
	assert.Contains(t, out, "ends-in-a-dfa (fsa, 2 states, 4 transitions, deterministic)")

	// chain has no final states.
	assert.Contains(t, out, "  - no final states")
	_, err = run(t, "validate", "--strict", lib)
	assert.Error(t, err)

	bad := writeLibrary(t, "kind: fsa\nstates: [{id: 0}]\ninitial: 5\ntransitions: []\n")
	out, err = run(t, "validate", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "initial")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "automata version")
}
