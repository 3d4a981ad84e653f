package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatError_Message(t *testing.T) {
	assert.EqualError(t, &domain.FormatError{Reason: "empty description"},
		"malformed description: empty description")
	assert.EqualError(t, &domain.FormatError{Line: 3, Field: "start", Reason: "bad"},
		"malformed description (line 3): start: bad")
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want domain.ErrorKind
	}{
		{nil, domain.KindNone},
		{&domain.FormatError{Reason: "x"}, domain.KindFormat},
		{&domain.AlphabetTooLargeError{Size: 27}, domain.KindAlphabetTooLarge},
		{&domain.NonDeterministicError{State: "0", Symbol: 'a'}, domain.KindNonDeterministic},
		{&domain.OutOfAlphabetError{Symbol: 'c', Position: 2}, domain.KindOutOfAlphabet},
		{fmt.Errorf("wrapped: %w", &domain.FormatError{Reason: "x"}), domain.KindFormat},
		{errors.New("disk on fire"), domain.KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.Kind(tt.err), "%v", tt.err)
	}
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, domain.IsValidationError(&domain.FormatError{}))
	assert.True(t, domain.IsValidationError(&domain.AlphabetTooLargeError{Size: 30}))
	assert.True(t, domain.IsValidationError(&domain.NonDeterministicError{}))
	assert.False(t, domain.IsValidationError(&domain.OutOfAlphabetError{Symbol: 'x'}))
	assert.False(t, domain.IsValidationError(errors.New("io")))
	assert.False(t, domain.IsValidationError(nil))
}

func TestJoin(t *testing.T) {
	assert.NoError(t, domain.Join(nil))

	single := &domain.FormatError{Reason: "only"}
	assert.Same(t, single, domain.Join([]error{single}))

	missing := &domain.NonDeterministicError{State: "q", Symbol: 'b'}
	doubled := &domain.NonDeterministicError{State: "p", Symbol: 'a', Targets: []string{"p", "q"}}
	err := domain.Join([]error{doubled, missing})

	var aggr *domain.AggregateError
	require.ErrorAs(t, err, &aggr)
	assert.Equal(t, "2 validation errors:\n"+
		"  1. state \"p\" has 2 transitions on a (to p, q)\n"+
		"  2. state \"q\" has no transition on b\n", err.Error())

	var nd *domain.NonDeterministicError
	require.ErrorAs(t, err, &nd)
	assert.Same(t, doubled, nd)
	assert.Equal(t, domain.KindNonDeterministic, domain.Kind(err))

	assert.Equal(t, []error{doubled, missing}, domain.ValidationErrors(err))
	assert.Equal(t, []error{single}, domain.ValidationErrors(single))
	assert.Nil(t, domain.ValidationErrors(nil))
}

func TestErrorList(t *testing.T) {
	var empty domain.ErrorList
	assert.NoError(t, empty.Err())
	assert.Zero(t, domain.Omitted(nil))

	var one domain.ErrorList
	only := &domain.FormatError{Reason: "only"}
	one.Add(only)
	assert.Same(t, only, one.Err())

	var many domain.ErrorList
	for i := 0; i < domain.MaxReportedErrors+5; i++ {
		many.Add(&domain.NonDeterministicError{State: fmt.Sprint(i), Symbol: 'a'})
	}
	err := many.Err()
	assert.Len(t, domain.ValidationErrors(err), domain.MaxReportedErrors)
	assert.Equal(t, 5, domain.Omitted(err))
	assert.Equal(t, domain.KindNonDeterministic, domain.Kind(err))

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, fmt.Sprintf("%d validation errors:\n", domain.MaxReportedErrors+5)), msg)
	assert.True(t, strings.HasSuffix(msg, "  ... and 5 more\n"), msg)
}

func TestAggregateError_SingleWithOmitted(t *testing.T) {
	err := &domain.AggregateError{Errors: []error{&domain.FormatError{Reason: "x"}}, Omitted: 2}
	assert.Equal(t, "3 validation errors:\n  1. malformed description: x\n  ... and 2 more\n", err.Error())
}

func TestKind_AggregatePrefersFormat(t *testing.T) {
	err := domain.Join([]error{
		&domain.NonDeterministicError{State: "q", Symbol: 'a'},
		&domain.FormatError{Reason: "x"},
	})
	assert.Equal(t, domain.KindFormat, domain.Kind(err))
}

func TestVerdict(t *testing.T) {
	v := domain.Verdict{Accepted: true}
	assert.Equal(t, "yes", v.Answer())

	r := domain.Reject(domain.ModeInfix, domain.ParseWord("-"), &domain.OutOfAlphabetError{Symbol: 'q'})
	assert.Equal(t, "no", r.Answer())
	assert.False(t, r.Accepted)
	assert.Equal(t, domain.KindOutOfAlphabet, r.Reason)
	assert.Equal(t, "-", r.Word)
	assert.Equal(t, domain.ModeInfix, r.Mode)
}

func TestParseMode(t *testing.T) {
	m, err := domain.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeExact, m)

	m, err = domain.ParseMode("infix")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeInfix, m)

	_, err = domain.ParseMode("Infix")
	assert.Error(t, err)
}
