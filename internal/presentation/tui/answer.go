package tui

import (
	"os"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Answer renders the final line of a check. The word "yes" appears iff the
// verdict accepts; color adds ANSI styling around the answer only.
func Answer(v domain.Verdict, color bool) string {
	word := v.Answer()
	if color {
		p := termenv.ColorProfile()
		c := p.Color("#f87171")
		if v.Accepted {
			c = p.Color("#4ade80")
		}
		word = termenv.String(word).Foreground(c).Bold().String()
	}
	return "Answer: " + word + "."
}
