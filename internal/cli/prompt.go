package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"golang.org/x/term"
)

// PromptPolicy asks on w whether an exhausted run should go on, reading the
// answer from r. End of input, a cancelled context or an unrecognized
// answer repeated three times give up with an unknown outcome.
func PromptPolicy(r io.Reader, w io.Writer) automata.BudgetPolicy {
	br := bufio.NewReader(r)
	return func(ctx context.Context, e *domain.BudgetEvent) domain.Decision {
		for attempt := 0; attempt < 3; attempt++ {
			if ctx.Err() != nil {
				return domain.DecisionUnknown
			}
			fmt.Fprintf(w, ">>> %d configurations created by round %d (%d live). Continue? [c]ontinue/[r]eject/[u]nknown: ",
				e.Created, e.Round, e.Frontier)

			line, err := br.ReadString('\n')
			if d, ok := parseDecision(line); ok {
				return d
			}
			if err != nil {
				fmt.Fprintln(w)
				return domain.DecisionUnknown
			}
		}
		return domain.DecisionUnknown
	}
}

func parseDecision(answer string) (domain.Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "c", "continue", "y", "yes":
		return domain.DecisionContinue, true
	case "r", "reject", "n", "no":
		return domain.DecisionReject, true
	case "u", "unknown":
		return domain.DecisionUnknown, true
	default:
		return domain.DecisionUnknown, false
	}
}

// InteractivePolicy prompts on w when f is a terminal and returns nil
// otherwise, leaving the engine's default of stopping with unknown.
func InteractivePolicy(f *os.File, w io.Writer) automata.BudgetPolicy {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return PromptPolicy(f, w)
}
