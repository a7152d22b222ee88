package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the CLI banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#818cf8"},
		{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#a78bfa"},
		{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#c084fc"},
		{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Outcome renders an outcome in its traffic-light color.
func Outcome(o domain.Outcome) string {
	p := termenv.ColorProfile()
	color := "#facc15"
	switch o {
	case domain.OutcomeAccepted:
		color = "#4ade80"
	case domain.OutcomeRejected:
		color = "#f87171"
	}
	return termenv.String(string(o)).Foreground(p.Color(color)).Bold().String()
}
