package tui_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMarkdown_PDA(t *testing.T) {
	trace := []domain.Configuration{
		{State: 0, Input: "()", Stack: "Z"},
		{State: 0, Depth: 1, Input: ")", Stack: "XZ"},
		{State: 1, Depth: 2, Input: "", Stack: ""},
	}
	out := tui.TraceMarkdown(domain.KindPDA, trace, domain.DefaultProfile())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| step | state | input | stack |", lines[0])
	assert.Equal(t, "| 0 | 0 | `()` | `Z` |", lines[2])
	assert.Equal(t, "| 2 | 1 | `λ` | `λ` |", lines[4])
}

func TestTraceMarkdown_TM(t *testing.T) {
	trace := []domain.Configuration{
		{State: 0, Tapes: []domain.Tape{{Cells: []string{"a", "|"}}, {}}},
		{State: 0, Depth: 1, Halted: true, Tapes: []domain.Tape{{Cells: []string{"b", "|"}, Head: 1}, {}}},
	}
	out := tui.TraceMarkdown(domain.KindTM, trace, domain.DefaultProfile())
	assert.Contains(t, out, "| step | state | tape 0 | tape 1 |")
	assert.Contains(t, out, "|---:|---:|---|---|")
	assert.Contains(t, out, "b[\\|]")
	assert.Contains(t, out, "halted")
}

func TestTraceMarkdown_FSA(t *testing.T) {
	out := tui.TraceMarkdown(domain.KindFSA, []domain.Configuration{{State: 3, Input: "ab"}}, domain.DefaultProfile())
	assert.Contains(t, out, "| 0 | 3 | `ab` |")
	assert.NotContains(t, out, "stack")
}

func TestSummaryMarkdown(t *testing.T) {
	out := tui.SummaryMarkdown("ab", domain.OutcomeAccepted, 2, 5)
	assert.Contains(t, out, "## accepted")
	assert.Contains(t, out, "- configurations: 5")
}

func TestNewRenderer_Plain(t *testing.T) {
	render, err := tui.NewRenderer(true)
	require.NoError(t, err)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}
