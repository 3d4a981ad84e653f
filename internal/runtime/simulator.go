package runtime

import (
	"github.com/aretw0/dfacheck/pkg/domain"
)

// Accepts runs w through a and reports whether the run ends in an accepting
// state. The empty word leaves the automaton in its start state. A symbol
// outside the alphabet fails the query with *domain.OutOfAlphabetError.
func Accepts(a *domain.Automaton, w domain.Word) (bool, error) {
	q, err := Run(a, a.Start(), w)
	if err != nil {
		return false, err
	}
	return a.IsAccepting(q), nil
}

// Run walks w starting from q and returns the state the walk ends in.
func Run(a *domain.Automaton, q domain.StateID, w domain.Word) (domain.StateID, error) {
	for i, r := range w {
		if !a.HasSymbol(r) {
			return domain.NoState, &domain.OutOfAlphabetError{Symbol: r, Position: i}
		}
		q, _ = a.Next(q, domain.Symbol(r))
	}
	return q, nil
}

// Trace is like Accepts but also returns every state visited, start included.
// On an out-of-alphabet symbol the path holds the states visited so far.
func Trace(a *domain.Automaton, w domain.Word) ([]domain.StateID, bool, error) {
	q := a.Start()
	path := make([]domain.StateID, 1, len(w)+1)
	path[0] = q
	for i, r := range w {
		if !a.HasSymbol(r) {
			return path, false, &domain.OutOfAlphabetError{Symbol: r, Position: i}
		}
		q, _ = a.Next(q, domain.Symbol(r))
		path = append(path, q)
	}
	return path, a.IsAccepting(q), nil
}

// AcceptsInfix reports whether some accepted word has w as a factor, that
// is whether w1+w+w2 is accepted for some words w1 and w2. For the empty w
// this asks whether the automaton accepts anything at all.
func AcceptsInfix(a *domain.Automaton, w domain.Word) (bool, error) {
	for i, r := range w {
		if !a.HasSymbol(r) {
			return false, &domain.OutOfAlphabetError{Symbol: r, Position: i}
		}
	}
	reach := Reachable(a, a.Start())
	live := CoReachable(a)
	for q, ok := range reach {
		if !ok {
			continue
		}
		end, err := Run(a, domain.StateID(q), w)
		if err != nil {
			return false, err
		}
		if live[end] {
			return true, nil
		}
	}
	return false, nil
}
