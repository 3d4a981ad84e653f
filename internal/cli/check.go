package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/internal/presentation/tui"
	"github.com/aretw0/dfacheck/internal/runtime"
	"github.com/aretw0/dfacheck/pkg/domain"
)

// Exit codes of the check command.
const (
	ExitAnswered       = 0 // yes or no was printed for a valid machine
	ExitInvalidMachine = 1
	ExitUsage          = 2
)

// CheckOptions contains all the configuration for the check command.
type CheckOptions struct {
	MachinePath string
	Word        string
	Format      string
	Mode        string
	Verbose     bool
	Color       bool
	LogLevel    string
}

// RunCheck loads one machine, answers one query and returns the exit code.
// Stdout receives only the "Answer: ..." line; everything else goes to stderr.
func RunCheck(ctx context.Context, opts CheckOptions, stdout, stderr io.Writer) int {
	level := opts.LogLevel
	if level == "" {
		level = "warn"
	}
	logger, err := CreateLogger(stderr, level)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	var format dfacheck.Format
	if opts.Format != "" {
		if format, err = dfacheck.ParseFormat(opts.Format); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitUsage
		}
	}
	mode, err := domain.ParseMode(opts.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	reject := func(code int) int {
		fmt.Fprintln(stdout, tui.Answer(domain.Verdict{}, opts.Color))
		return code
	}

	checker := CreateChecker(logger, nil)
	a, err := checker.LoadFile(ctx, opts.MachinePath, format)
	if err != nil {
		printDiagnostics(stderr, err)
		return reject(ExitInvalidMachine)
	}

	w := domain.ParseWord(opts.Word)
	if opts.Verbose {
		printVerbose(stderr, a, w, mode)
	}

	v, err := checker.Query(ctx, a, w, mode)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return reject(ExitAnswered)
	}

	fmt.Fprintln(stdout, tui.Answer(v, opts.Color))
	return ExitAnswered
}

func printVerbose(w io.Writer, a *domain.Automaton, word domain.Word, mode domain.Mode) {
	fmt.Fprint(w, tui.Describe(a, dfacheck.Analyze(a)))
	fmt.Fprintln(w)

	if mode == domain.ModeInfix {
		fmt.Fprintf(w, "Checking if there exists w = w1+w0+w2, where w0 = %q, such that w is acceptable...\n", string(word))
		return
	}

	path, _, err := runtime.Trace(a, word)
	labels := make([]string, len(path))
	for i, q := range path {
		labels[i] = a.Label(q)
	}
	fmt.Fprintf(w, "Run on %q: %s", string(word), strings.Join(labels, " -> "))
	if err != nil {
		fmt.Fprint(w, " -> (stuck)")
	}
	fmt.Fprintln(w)
}
