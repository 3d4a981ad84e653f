package domain

// Word is a query over an automaton's alphabet. Its runes are not checked
// against any alphabet until it is simulated.
type Word []rune

// ParseWord converts command-line input into a Word. EmptyWordMarker and the
// empty string both denote the zero-length word.
func ParseWord(s string) Word {
	if s == EmptyWordMarker || s == "" {
		return Word{}
	}
	return Word(s)
}

// IsEmpty reports whether w is the zero-length word.
func (w Word) IsEmpty() bool { return len(w) == 0 }

func (w Word) String() string {
	if w.IsEmpty() {
		return EmptyWordMarker
	}
	return string(w)
}
