package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfacheck/internal/validator"
	"github.com/aretw0/dfacheck/pkg/domain"
)

// Describe renders an automaton and its analysis report as markdown.
func Describe(a *domain.Automaton, r validator.Report) string {
	var sb strings.Builder

	title := a.Name()
	if title == "" {
		title = "State Machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **Alphabet** (%d): `%s`\n", len(a.Alphabet()), displayAlphabet(r.Alphabet))
	fmt.Fprintf(&sb, "- **States**: %d\n", a.NumStates())
	fmt.Fprintf(&sb, "- **Start**: `%s`\n", a.Label(a.Start()))

	accepting := make([]string, 0)
	for _, q := range a.Accepting() {
		accepting = append(accepting, "`"+a.Label(q)+"`")
	}
	if len(accepting) == 0 {
		accepting = append(accepting, "_none_")
	}
	fmt.Fprintf(&sb, "- **Accepting**: %s\n", strings.Join(accepting, ", "))
	if len(r.Unreachable) > 0 {
		fmt.Fprintf(&sb, "- **Unreachable**: %s\n", strings.Join(r.Unreachable, ", "))
	}
	if len(r.Dead) > 0 {
		fmt.Fprintf(&sb, "- **Dead**: %s\n", strings.Join(r.Dead, ", "))
	}
	if r.Empty {
		sb.WriteString("\n> This machine accepts no word.\n")
	}

	alphabet := a.Alphabet()
	if len(alphabet) == 0 {
		return sb.String()
	}

	sb.WriteString("\n## Transitions\n\n| state |")
	for _, s := range alphabet {
		fmt.Fprintf(&sb, " %s |", s)
	}
	sb.WriteString("\n|---|")
	for range alphabet {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for q := 0; q < a.NumStates(); q++ {
		id := domain.StateID(q)
		marker := ""
		if id == a.Start() {
			marker += "→"
		}
		if a.IsAccepting(id) {
			marker += "*"
		}
		fmt.Fprintf(&sb, "| %s%s |", marker, a.Label(id))
		for _, s := range alphabet {
			to, _ := a.Next(id, s)
			fmt.Fprintf(&sb, " %s |", a.Label(to))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func displayAlphabet(s string) string {
	if s == "" {
		return "∅"
	}
	return s
}
