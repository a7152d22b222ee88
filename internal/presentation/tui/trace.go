package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// TraceMarkdown renders a configuration path as a markdown table. The
// columns depend on the automaton kind: stacks for pushdown automata and
// tapes, with the head cell in brackets, for Turing machines.
func TraceMarkdown(kind domain.Kind, trace []domain.Configuration, p domain.Profile) string {
	var sb strings.Builder

	switch kind {
	case domain.KindPDA:
		sb.WriteString("| step | state | input | stack |\n|---:|---:|---|---|\n")
	case domain.KindTM:
		tapes := 1
		if len(trace) > 0 {
			tapes = len(trace[0].Tapes)
		}
		sb.WriteString("| step | state |")
		for i := 0; i < tapes; i++ {
			sb.WriteString(fmt.Sprintf(" tape %d |", i))
		}
		sb.WriteString("\n|---:|---:|" + strings.Repeat("---|", tapes) + "\n")
	default:
		sb.WriteString("| step | state | input |\n|---:|---:|---|\n")
	}

	for _, c := range trace {
		sb.WriteString(fmt.Sprintf("| %d | %d |", c.Depth, c.State))
		switch kind {
		case domain.KindPDA:
			sb.WriteString(fmt.Sprintf(" %s | %s |", cell(p.Display(c.Input)), cell(p.Display(c.Stack))))
		case domain.KindTM:
			for _, t := range c.Tapes {
				sb.WriteString(fmt.Sprintf(" %s |", cell(t.String(p.Blank))))
			}
		default:
			sb.WriteString(fmt.Sprintf(" %s |", cell(p.Display(c.Input))))
		}
		if c.Halted {
			sb.WriteString(" halted")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SummaryMarkdown renders the headline numbers of a run.
func SummaryMarkdown(input string, outcome domain.Outcome, rounds, created int) string {
	return fmt.Sprintf("## %s\n\n- input: `%s`\n- rounds: %d\n- configurations: %d\n",
		outcome, input, rounds, created)
}

// cell escapes the characters markdown tables reserve.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return "`" + s + "`"
}
