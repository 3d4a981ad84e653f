/*
Package dfacheck loads deterministic finite automata from textual descriptions, proves they are well formed, and answers whether words belong to their language.

A description is accepted only if it names a complete and deterministic machine: every declared state, reachable or not, has exactly one transition on every symbol of an alphabet of at most 26 lowercase letters. Anything else is rejected with a typed error (*domain.FormatError, *domain.AlphabetTooLargeError, *domain.NonDeterministicError) and is never simulated. A word containing a symbol outside the alphabet fails the query with *domain.OutOfAlphabetError but leaves the machine usable.

# Formats

Three concrete syntaxes are supported:

  - text: the classic token stream "|A| |S| s0 |F| f1..fk" followed by "s a s'" triples, states numbered from 0.
  - yaml and json: named sections alphabet, states, start, accepting and transitions, with arbitrary state labels.

# Usage

	checker := dfacheck.New(dfacheck.WithLogger(logger))

	a, err := checker.LoadFile(ctx, "machine.sm", "")
	if err != nil {
		for _, e := range domain.ValidationErrors(err) {
			log.Println(e)
		}
		return
	}

	v, err := checker.Query(ctx, a, domain.ParseWord("abba"), domain.ModeExact)
	fmt.Println("Answer:", v.Answer())

A loaded *domain.Automaton is immutable and may be queried from many goroutines at once.
*/
package dfacheck
