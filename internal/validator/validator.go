package validator

import (
	"fmt"

	"github.com/aretw0/dfacheck/internal/runtime"
	"github.com/aretw0/dfacheck/pkg/domain"
)

// Build proves that def describes a total, deterministic automaton over at
// most domain.MaxAlphabetSize symbols and returns it. Nothing is repaired:
// a missing or doubled transition rejects the whole machine, whether or not
// the offending state is reachable.
func Build(def *domain.Definition) (*domain.Automaton, error) {
	if def == nil {
		return nil, &domain.FormatError{Reason: "empty definition"}
	}

	alphabet, err := resolveAlphabet(def.Alphabet)
	if err != nil {
		return nil, err
	}

	index, err := resolveStates(def.States)
	if err != nil {
		return nil, err
	}

	if !def.StartSet {
		return nil, &domain.FormatError{Field: "start", Reason: "missing start state"}
	}
	start, ok := index[def.Start]
	if !ok {
		return nil, &domain.FormatError{Field: "start", Reason: fmt.Sprintf("undeclared state %q", def.Start)}
	}

	accepting := make([]domain.StateID, 0, len(def.Accepting))
	seen := make(map[domain.StateID]bool, len(def.Accepting))
	for _, l := range def.Accepting {
		q, ok := index[l]
		if !ok {
			return nil, &domain.FormatError{Field: "accepting", Reason: fmt.Sprintf("undeclared state %q", l)}
		}
		if seen[q] {
			return nil, &domain.FormatError{Field: "accepting", Reason: fmt.Sprintf("state %q listed twice", l)}
		}
		seen[q] = true
		accepting = append(accepting, q)
	}

	targets, err := collectTransitions(def, index, alphabet)
	if err != nil {
		return nil, err
	}

	// Exhaustive scan: every declared state, every alphabet symbol.
	table := make([]domain.Row, len(def.States))
	var errs domain.ErrorList
	for q := range def.States {
		table[q] = domain.EmptyRow()
		for _, s := range alphabet {
			dst := targets[pair{domain.StateID(q), s}]
			if len(dst) != 1 {
				labels := make([]string, len(dst))
				for i, to := range dst {
					labels[i] = def.States[to]
				}
				errs.Add(&domain.NonDeterministicError{State: def.States[q], Symbol: s, Targets: labels})
				continue
			}
			table[q][s.Index()] = dst[0]
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return domain.NewAutomaton(domain.Spec{
		Name:      def.Name,
		Labels:    def.States,
		Alphabet:  alphabet,
		Table:     table,
		Start:     start,
		Accepting: accepting,
	})
}

func resolveAlphabet(tokens []string) ([]domain.Symbol, error) {
	distinct := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		distinct[t] = true
	}
	if len(distinct) > domain.MaxAlphabetSize {
		return nil, &domain.AlphabetTooLargeError{Size: len(distinct)}
	}

	out := make([]domain.Symbol, 0, len(tokens))
	var declared [domain.MaxAlphabetSize]bool
	for _, t := range tokens {
		s, err := domain.ParseSymbol(t)
		if err != nil {
			return nil, &domain.FormatError{Field: "alphabet", Reason: err.Error()}
		}
		if declared[s.Index()] {
			return nil, &domain.FormatError{Field: "alphabet", Reason: fmt.Sprintf("symbol %s declared twice", s)}
		}
		declared[s.Index()] = true
		out = append(out, s)
	}
	return out, nil
}

func resolveStates(labels []string) (map[string]domain.StateID, error) {
	if len(labels) == 0 {
		return nil, &domain.FormatError{Field: "states", Reason: "at least one state is required"}
	}
	if len(labels) > domain.MaxStates {
		return nil, &domain.FormatError{Field: "states", Reason: fmt.Sprintf("%d states declared, at most %d are allowed", len(labels), domain.MaxStates)}
	}
	index := make(map[string]domain.StateID, len(labels))
	for i, l := range labels {
		if l == "" {
			return nil, &domain.FormatError{Field: "states", Reason: fmt.Sprintf("state #%d has an empty label", i+1)}
		}
		if _, dup := index[l]; dup {
			return nil, &domain.FormatError{Field: "states", Reason: fmt.Sprintf("state %q declared twice", l)}
		}
		index[l] = domain.StateID(i)
	}
	return index, nil
}

type pair struct {
	from domain.StateID
	sym  domain.Symbol
}

// collectTransitions groups declared rules by (state, symbol). Reference
// errors are gathered across all rules before giving up. Memory grows with
// the number of rules, not with the number of declared states.
func collectTransitions(def *domain.Definition, index map[string]domain.StateID, alphabet []domain.Symbol) (map[pair][]domain.StateID, error) {
	var inAlphabet [domain.MaxAlphabetSize]bool
	for _, s := range alphabet {
		inAlphabet[s.Index()] = true
	}

	targets := make(map[pair][]domain.StateID, len(def.Transitions))
	var errs domain.ErrorList
	for _, tr := range def.Transitions {
		from, okFrom := index[tr.From]
		to, okTo := index[tr.To]
		sym, symErr := domain.ParseSymbol(tr.Symbol)
		switch {
		case !okFrom:
			errs.Add(&domain.FormatError{Line: tr.Line, Field: "transitions", Reason: fmt.Sprintf("rule %s references undeclared state %q", rule(tr), tr.From)})
		case !okTo:
			errs.Add(&domain.FormatError{Line: tr.Line, Field: "transitions", Reason: fmt.Sprintf("rule %s references undeclared state %q", rule(tr), tr.To)})
		case symErr != nil:
			errs.Add(&domain.FormatError{Line: tr.Line, Field: "transitions", Reason: fmt.Sprintf("rule %s: %v", rule(tr), symErr)})
		case !inAlphabet[sym.Index()]:
			errs.Add(&domain.FormatError{Line: tr.Line, Field: "transitions", Reason: fmt.Sprintf("rule %s references out-of-alphabet symbol %s", rule(tr), sym)})
		default:
			k := pair{from, sym}
			targets[k] = append(targets[k], to)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

func rule(tr domain.Transition) string {
	return fmt.Sprintf("%q", tr.From+" "+tr.Symbol+" "+tr.To)
}

// Report summarises structural facts about a valid automaton. None of them
// affect validity.
type Report struct {
	States      int      `json:"states"`
	Alphabet    string   `json:"alphabet"`
	Unreachable []string `json:"unreachable,omitempty"`
	Dead        []string `json:"dead,omitempty"`
	// Empty is true when no word at all is accepted.
	Empty bool `json:"empty"`
}

// Analyze reports unreachable states and states that can never lead to
// acceptance.
func Analyze(a *domain.Automaton) Report {
	var alpha []byte
	for _, s := range a.Alphabet() {
		alpha = append(alpha, byte(s))
	}
	r := Report{States: a.NumStates(), Alphabet: string(alpha)}

	reach := runtime.Reachable(a, a.Start())
	live := runtime.CoReachable(a)
	for q := 0; q < a.NumStates(); q++ {
		if !reach[q] {
			r.Unreachable = append(r.Unreachable, a.Label(domain.StateID(q)))
		}
		if !live[q] {
			r.Dead = append(r.Dead, a.Label(domain.StateID(q)))
		}
	}
	r.Empty = !live[a.Start()]
	return r
}
