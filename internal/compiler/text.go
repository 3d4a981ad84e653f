package compiler

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/dfacheck/pkg/domain"
)

// The text format is a whitespace separated token stream:
//
//	|A|          alphabet size; the alphabet is the first |A| letters from 'a'
//	|S|          number of states, named 0 .. |S|-1
//	s0           start state
//	|F| f1..fk   number of accepting states, then the states
//	s a s'       zero or more transitions
//
// '#' starts a comment running to the end of the line.

type token struct {
	text string
	line int
}

type tokenStream struct {
	toks []token
	pos  int
	last int
}

func tokenize(data []byte) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, f := range strings.Fields(text) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.FormatError{Line: line + 1, Reason: err.Error()}
	}
	return toks, nil
}

func (ts *tokenStream) done() bool { return ts.pos >= len(ts.toks) }

func (ts *tokenStream) next() (token, bool) {
	if ts.done() {
		return token{line: ts.last}, false
	}
	t := ts.toks[ts.pos]
	ts.pos++
	ts.last = t.line
	return t, true
}

// count reads an unsigned decimal integer for the named field. Signs and
// values that do not fit in 31 bits are rejected.
func (ts *tokenStream) count(field string) (int, int, error) {
	t, ok := ts.next()
	if !ok {
		return 0, t.line, &domain.FormatError{Line: t.line, Field: field, Reason: "unexpected end of input, integer expected"}
	}
	n, err := strconv.ParseUint(t.text, 10, 31)
	if err != nil {
		return 0, t.line, &domain.FormatError{Line: t.line, Field: field, Reason: fmt.Sprintf("non-negative integer expected, got %q", t.text)}
	}
	return int(n), t.line, nil
}

func parseText(data []byte) (*domain.Definition, error) {
	toks, err := tokenize(data)
	if err != nil {
		return nil, err
	}
	ts := &tokenStream{toks: toks}
	if ts.done() {
		return nil, &domain.FormatError{Field: "alphabet", Reason: "empty description"}
	}

	alpha, _, err := ts.count("alphabet")
	if err != nil {
		return nil, err
	}
	if alpha > domain.MaxAlphabetSize {
		return nil, &domain.AlphabetTooLargeError{Size: alpha}
	}

	nstates, line, err := ts.count("states")
	if err != nil {
		return nil, err
	}
	if nstates == 0 {
		return nil, &domain.FormatError{Line: line, Field: "states", Reason: "at least one state is required"}
	}
	if nstates > domain.MaxStates {
		return nil, &domain.FormatError{Line: line, Field: "states", Reason: fmt.Sprintf("%d states declared, at most %d are allowed", nstates, domain.MaxStates)}
	}

	def := &domain.Definition{
		Alphabet: letters(alpha),
		States:   make([]string, nstates),
	}
	for i := range def.States {
		def.States[i] = strconv.Itoa(i)
	}

	start, _, err := ts.count("start")
	if err != nil {
		return nil, err
	}
	def.Start = strconv.Itoa(start)
	def.StartSet = true

	nfinal, line, err := ts.count("accepting")
	if err != nil {
		return nil, err
	}
	if nfinal > nstates {
		return nil, &domain.FormatError{Line: line, Field: "accepting", Reason: fmt.Sprintf("%d accepting states declared, only %d states exist", nfinal, nstates)}
	}
	def.Accepting = []string{}
	for i := 0; i < nfinal; i++ {
		f, _, err := ts.count(fmt.Sprintf("accepting state #%d", i+1))
		if err != nil {
			return nil, err
		}
		def.Accepting = append(def.Accepting, strconv.Itoa(f))
	}

	for !ts.done() {
		tr, err := ts.transition()
		if err != nil {
			return nil, err
		}
		def.Transitions = append(def.Transitions, tr)
	}
	return def, nil
}

func (ts *tokenStream) transition() (domain.Transition, error) {
	from, line, err := ts.count("transition source")
	if err != nil {
		return domain.Transition{}, err
	}
	sym, ok := ts.next()
	if !ok {
		return domain.Transition{}, &domain.FormatError{Line: line, Field: "transitions", Reason: `incomplete rule, expected "s a s'"`}
	}
	to, _, err := ts.count("transition target")
	if err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{
		From:   strconv.Itoa(from),
		Symbol: sym.text,
		To:     strconv.Itoa(to),
		Line:   line,
	}, nil
}
