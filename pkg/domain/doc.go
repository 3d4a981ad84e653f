/*
Package domain contains the core models of the dfacheck engine.

It defines the entities a machine description is turned into and the values
a query produces. This package is kept pure and free of I/O, following the
same ports-and-adapters split as the rest of the module.

# Key Entities

  - Definition: the raw, unvalidated content of a machine description.
  - Automaton: a validated, immutable, total and deterministic automaton.
  - Word: a query over the automaton's alphabet (or the empty word).
  - Verdict: the accept/reject answer for one query.
*/
package domain
