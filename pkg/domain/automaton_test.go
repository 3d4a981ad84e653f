package domain_test

import (
	"testing"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parity builds a two-state machine over {a, b} accepting an even number of b's.
func parity() domain.Spec {
	even, odd := domain.EmptyRow(), domain.EmptyRow()
	even['a'-'a'], even['b'-'a'] = 0, 1
	odd['a'-'a'], odd['b'-'a'] = 1, 0
	return domain.Spec{
		Name:      "parity",
		Labels:    []string{"even", "odd"},
		Alphabet:  []domain.Symbol{'a', 'b'},
		Table:     []domain.Row{even, odd},
		Start:     0,
		Accepting: []domain.StateID{0},
	}
}

func TestNewAutomaton(t *testing.T) {
	spec := parity()
	a, err := domain.NewAutomaton(spec)
	require.NoError(t, err)

	assert.Equal(t, "parity", a.Name())
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, []string{"even", "odd"}, a.Labels())
	assert.Equal(t, []domain.StateID{0}, a.Accepting())
	assert.True(t, a.HasSymbol('b'))
	assert.False(t, a.HasSymbol('c'))
	assert.False(t, a.HasSymbol('B'))

	q, ok := a.Next(1, 'b')
	require.True(t, ok)
	assert.Equal(t, domain.StateID(0), q)

	q, ok = a.Next(0, 'z')
	assert.False(t, ok)
	assert.Equal(t, domain.NoState, q)

	assert.Len(t, a.Edges(), 4)
	assert.Equal(t, domain.Edge{From: 1, Symbol: 'a', To: 1}, a.Edges()[2])

	// The automaton owns copies of its inputs.
	spec.Labels[0] = "mutated"
	spec.Table[0]['b'-'a'] = 0
	assert.Equal(t, "even", a.Label(0))
	q, _ = a.Next(0, 'b')
	assert.Equal(t, domain.StateID(1), q)

	labels := a.Labels()
	labels[1] = "mutated"
	assert.Equal(t, "odd", a.Label(1))
}

func TestNewAutomaton_RejectsIncompleteTable(t *testing.T) {
	spec := parity()
	spec.Table[1]['a'-'a'] = domain.NoState
	_, err := domain.NewAutomaton(spec)

	var nd *domain.NonDeterministicError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, "odd", nd.State)
	assert.True(t, nd.Missing())
}

func TestNewAutomaton_RejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Spec)
	}{
		{"no states", func(s *domain.Spec) { s.Labels = nil; s.Table = nil }},
		{"row count", func(s *domain.Spec) { s.Table = s.Table[:1] }},
		{"start out of range", func(s *domain.Spec) { s.Start = 2 }},
		{"accepting out of range", func(s *domain.Spec) { s.Accepting = []domain.StateID{5} }},
		{"invalid symbol", func(s *domain.Spec) { s.Alphabet = []domain.Symbol{'a', 'B'} }},
		{"repeated symbol", func(s *domain.Spec) { s.Alphabet = []domain.Symbol{'a', 'b', 'a'} }},
		{"duplicate label", func(s *domain.Spec) { s.Labels = []string{"x", "x"} }},
		{"stray cell", func(s *domain.Spec) { s.Table[0]['c'-'a'] = 0 }},
		{"target out of range", func(s *domain.Spec) { s.Table[0]['a'-'a'] = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := parity()
			tt.mutate(&spec)
			_, err := domain.NewAutomaton(spec)
			assert.Error(t, err)
		})
	}
}

func TestSymbol(t *testing.T) {
	s, err := domain.ParseSymbol("k")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Index())
	assert.Equal(t, "k", s.String())
	assert.Equal(t, domain.Symbol('z'), domain.SymbolAt(25))

	for _, bad := range []string{"", "ab", "K", "1", "-"} {
		_, err := domain.ParseSymbol(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWord(t *testing.T) {
	assert.True(t, domain.ParseWord("-").IsEmpty())
	assert.True(t, domain.ParseWord("").IsEmpty())
	assert.Equal(t, "-", domain.ParseWord("").String())
	assert.Equal(t, domain.Word("--"), domain.ParseWord("--"))
	assert.Equal(t, "abc", domain.ParseWord("abc").String())
}
