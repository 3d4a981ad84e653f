package domain

import "fmt"

// Mode selects the question asked about a word.
type Mode string

const (
	// ModeExact asks whether the automaton accepts the word itself.
	ModeExact Mode = "exact"
	// ModeInfix asks whether some accepted word contains the word as a factor.
	ModeInfix Mode = "infix"
)

// ParseMode validates a mode name. The empty string selects ModeExact.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeExact:
		return ModeExact, nil
	case ModeInfix:
		return ModeInfix, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeExact, ModeInfix)
}

// Verdict is the outcome of a single query.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Mode     Mode   `json:"mode"`
	Word     string `json:"word"`
	// FinalState is the label of the state the run ended in (exact mode only).
	FinalState string `json:"final_state,omitempty"`
	// Reason names the failure kind when the query could not be answered.
	Reason ErrorKind `json:"reason,omitempty"`
}

// Reject builds a rejecting verdict for a query that failed with err.
func Reject(mode Mode, w Word, err error) Verdict {
	return Verdict{Mode: mode, Word: w.String(), Reason: Kind(err)}
}

// Answer renders the verdict the way the command surface reports it.
func (v Verdict) Answer() string {
	if v.Accepted {
		return "yes"
	}
	return "no"
}
