package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVerdictNotFound is returned by a verdict cache on a miss.
var ErrVerdictNotFound = errors.New("verdict not found")

// FormatError reports a description that cannot be parsed into the required
// entities: bad tokens, missing or duplicated sections, undeclared references.
type FormatError struct {
	Line   int    // 1-based source line, 0 when not applicable
	Field  string // section the problem was found in
	Reason string
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed description")
	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d)", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, ": %s", e.Field)
	}
	fmt.Fprintf(&sb, ": %s", e.Reason)
	return sb.String()
}

// AlphabetTooLargeError reports an alphabet with more than MaxAlphabetSize symbols.
type AlphabetTooLargeError struct {
	Size int
}

func (e *AlphabetTooLargeError) Error() string {
	return fmt.Sprintf("alphabet has %d symbols, at most %d are allowed", e.Size, MaxAlphabetSize)
}

// NonDeterministicError reports a (state, symbol) pair that does not have
// exactly one transition. An empty Targets means the pair is missing.
type NonDeterministicError struct {
	State   string
	Symbol  Symbol
	Targets []string
}

// Missing reports whether the pair has no transition at all.
func (e *NonDeterministicError) Missing() bool { return len(e.Targets) == 0 }

func (e *NonDeterministicError) Error() string {
	if e.Missing() {
		return fmt.Sprintf("state %q has no transition on %s", e.State, e.Symbol)
	}
	return fmt.Sprintf("state %q has %d transitions on %s (to %s)",
		e.State, len(e.Targets), e.Symbol, strings.Join(e.Targets, ", "))
}

// OutOfAlphabetError reports a query symbol outside the machine's alphabet.
// It invalidates the query only, never the machine.
type OutOfAlphabetError struct {
	Symbol   rune
	Position int // 0-based index in the word
}

func (e *OutOfAlphabetError) Error() string {
	return fmt.Sprintf("symbol %q at position %d is not in the alphabet", e.Symbol, e.Position)
}

// MaxReportedErrors bounds how many failures an AggregateError lists.
const MaxReportedErrors = 32

// AggregateError carries several load failures at once. Omitted counts
// failures found past MaxReportedErrors and not listed.
type AggregateError struct {
	Errors  []error
	Omitted int
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 && e.Omitted == 0 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors)+e.Omitted)
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	if e.Omitted > 0 {
		fmt.Fprintf(&sb, "  ... and %d more\n", e.Omitted)
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Join returns nil for no errors, the error itself for one, and an
// *AggregateError otherwise.
func Join(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &AggregateError{Errors: errs}
}

// ErrorList accumulates failures, keeping at most MaxReportedErrors of them.
// The zero value is ready to use.
type ErrorList struct {
	errs    []error
	omitted int
}

// Add records err.
func (l *ErrorList) Add(err error) {
	if len(l.errs) < MaxReportedErrors {
		l.errs = append(l.errs, err)
		return
	}
	l.omitted++
}

// Err returns the collected failures as Join would, or an *AggregateError
// whenever some were dropped.
func (l *ErrorList) Err() error {
	if l.omitted == 0 {
		return Join(l.errs)
	}
	return &AggregateError{Errors: l.errs, Omitted: l.omitted}
}

// Omitted returns how many failures were recorded but not kept.
func Omitted(err error) int {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Omitted
	}
	return 0
}

// ValidationErrors returns all failures if err is an AggregateError,
// the error itself in a one-element slice otherwise.
func ValidationErrors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}

// ErrorKind is a stable name for a failure category.
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindFormat           ErrorKind = "format"
	KindAlphabetTooLarge ErrorKind = "alphabet_too_large"
	KindNonDeterministic ErrorKind = "non_deterministic"
	KindOutOfAlphabet    ErrorKind = "out_of_alphabet"
	KindInternal         ErrorKind = "internal"
)

// Kind classifies err. For aggregates the first recognised kind wins, in the
// order alphabet size, format, determinism.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		tooLarge *AlphabetTooLargeError
		format   *FormatError
		nondet   *NonDeterministicError
		outside  *OutOfAlphabetError
	)
	switch {
	case errors.As(err, &tooLarge):
		return KindAlphabetTooLarge
	case errors.As(err, &format):
		return KindFormat
	case errors.As(err, &nondet):
		return KindNonDeterministic
	case errors.As(err, &outside):
		return KindOutOfAlphabet
	}
	return KindInternal
}

// IsValidationError reports whether err means the machine itself is invalid,
// as opposed to a bad query or an I/O problem.
func IsValidationError(err error) bool {
	switch Kind(err) {
	case KindFormat, KindAlphabetTooLarge, KindNonDeterministic:
		return true
	}
	return false
}
