package domain

import "fmt"

// StateID is the dense index of a state inside an Automaton.
type StateID int

// NoState marks an unset cell of a transition table.
const NoState StateID = -1

// MaxStates bounds the number of declared states. Descriptions above it are
// rejected before any per-state memory is allocated.
const MaxStates = 1 << 16

// Row is one state's outgoing transitions, indexed by Symbol.Index().
type Row [MaxAlphabetSize]StateID

// EmptyRow returns a Row with every cell unset.
func EmptyRow() Row {
	var r Row
	for i := range r {
		r[i] = NoState
	}
	return r
}

// Automaton is a validated, total, deterministic finite automaton.
// It is immutable after construction and safe for concurrent readers.
type Automaton struct {
	name       string
	labels     []string
	index      map[string]StateID
	alphabet   []Symbol
	inAlphabet [MaxAlphabetSize]bool
	delta      []Row
	start      StateID
	accepting  []bool
}

// Spec carries the already resolved pieces of an Automaton.
type Spec struct {
	Name      string
	Labels    []string
	Alphabet  []Symbol
	Table     []Row
	Start     StateID
	Accepting []StateID
}

// NewAutomaton builds an Automaton from resolved parts.
// It re-checks the structural invariants (indices in range, a total table
// over the alphabet, no stray cells outside it) and copies every input so the
// caller cannot mutate the result afterwards.
func NewAutomaton(spec Spec) (*Automaton, error) {
	n := len(spec.Labels)
	if n == 0 {
		return nil, &FormatError{Field: "states", Reason: "at least one state is required"}
	}
	if n > MaxStates {
		return nil, &FormatError{Field: "states", Reason: fmt.Sprintf("%d states declared, at most %d are allowed", n, MaxStates)}
	}
	if len(spec.Table) != n {
		return nil, fmt.Errorf("transition table has %d rows for %d states", len(spec.Table), n)
	}
	if len(spec.Alphabet) > MaxAlphabetSize {
		return nil, &AlphabetTooLargeError{Size: len(spec.Alphabet)}
	}
	if spec.Start < 0 || int(spec.Start) >= n {
		return nil, &FormatError{Field: "start", Reason: fmt.Sprintf("state index %d out of range", spec.Start)}
	}

	a := &Automaton{
		name:      spec.Name,
		labels:    append([]string(nil), spec.Labels...),
		index:     make(map[string]StateID, n),
		delta:     make([]Row, n),
		start:     spec.Start,
		accepting: make([]bool, n),
	}
	for i, l := range a.labels {
		if _, dup := a.index[l]; dup {
			return nil, &FormatError{Field: "states", Reason: fmt.Sprintf("state %q declared twice", l)}
		}
		a.index[l] = StateID(i)
	}
	for _, s := range spec.Alphabet {
		if !s.Valid() {
			return nil, &FormatError{Field: "alphabet", Reason: fmt.Sprintf("symbol %s is not a lowercase letter", s)}
		}
		if a.inAlphabet[s.Index()] {
			return nil, &FormatError{Field: "alphabet", Reason: fmt.Sprintf("symbol %s declared twice", s)}
		}
		a.inAlphabet[s.Index()] = true
		a.alphabet = append(a.alphabet, s)
	}
	for _, f := range spec.Accepting {
		if f < 0 || int(f) >= n {
			return nil, &FormatError{Field: "accepting", Reason: fmt.Sprintf("state index %d out of range", f)}
		}
		a.accepting[f] = true
	}

	var errs ErrorList
	for q, row := range spec.Table {
		for i, to := range row {
			sym := SymbolAt(i)
			switch {
			case !a.inAlphabet[i] && to != NoState:
				return nil, &FormatError{Field: "transitions", Reason: fmt.Sprintf("state %q moves on undeclared symbol %s", a.labels[q], sym)}
			case a.inAlphabet[i] && to == NoState:
				errs.Add(&NonDeterministicError{State: a.labels[q], Symbol: sym})
			case to != NoState && (to < 0 || int(to) >= n):
				return nil, &FormatError{Field: "transitions", Reason: fmt.Sprintf("state index %d out of range", to)}
			}
		}
		a.delta[q] = row
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the optional machine name.
func (a *Automaton) Name() string { return a.name }

// NumStates returns the number of declared states.
func (a *Automaton) NumStates() int { return len(a.labels) }

// Label returns the label of state q.
func (a *Automaton) Label(q StateID) string {
	if q < 0 || int(q) >= len(a.labels) {
		return ""
	}
	return a.labels[q]
}

// Labels returns a copy of all state labels in declaration order.
func (a *Automaton) Labels() []string {
	return append([]string(nil), a.labels...)
}

// Lookup resolves a state label.
func (a *Automaton) Lookup(label string) (StateID, bool) {
	q, ok := a.index[label]
	return q, ok
}

// Alphabet returns a copy of the declared symbols in declaration order.
func (a *Automaton) Alphabet() []Symbol {
	return append([]Symbol(nil), a.alphabet...)
}

// HasSymbol reports whether r belongs to the declared alphabet.
func (a *Automaton) HasSymbol(r rune) bool {
	if r < 'a' || r > 'z' {
		return false
	}
	return a.inAlphabet[r-'a']
}

// Start returns the start state.
func (a *Automaton) Start() StateID { return a.start }

// IsAccepting reports whether q is in the accepting set.
func (a *Automaton) IsAccepting(q StateID) bool {
	return q >= 0 && int(q) < len(a.accepting) && a.accepting[q]
}

// Accepting returns the accepting states in index order.
func (a *Automaton) Accepting() []StateID {
	var out []StateID
	for q, ok := range a.accepting {
		if ok {
			out = append(out, StateID(q))
		}
	}
	return out
}

// Next returns δ(q, s). The second result is false when s is outside the
// alphabet; within it the table is total, so a destination always exists.
func (a *Automaton) Next(q StateID, s Symbol) (StateID, bool) {
	if !s.Valid() || !a.inAlphabet[s.Index()] {
		return NoState, false
	}
	return a.delta[q][s.Index()], true
}

// Edge is one entry of the transition table.
type Edge struct {
	From   StateID
	Symbol Symbol
	To     StateID
}

// Edges lists the full transition table ordered by state, then by alphabet
// declaration order.
func (a *Automaton) Edges() []Edge {
	out := make([]Edge, 0, len(a.labels)*len(a.alphabet))
	for q := range a.delta {
		for _, s := range a.alphabet {
			out = append(out, Edge{From: StateID(q), Symbol: s, To: a.delta[q][s.Index()]})
		}
	}
	return out
}
