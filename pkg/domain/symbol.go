package domain

import "fmt"

// MaxAlphabetSize is the size of the addressable symbol space ('a'..'z').
const MaxAlphabetSize = 26

// EmptyWordMarker is the command-line token standing for the zero-length word.
const EmptyWordMarker = "-"

// Symbol is a single lowercase letter.
type Symbol byte

// ParseSymbol converts a one-letter token into a Symbol.
func ParseSymbol(token string) (Symbol, error) {
	if len(token) != 1 {
		return 0, fmt.Errorf("symbol %q must be exactly one letter", token)
	}
	s := Symbol(token[0])
	if !s.Valid() {
		return 0, fmt.Errorf("symbol %q is not a lowercase letter", token)
	}
	return s, nil
}

// Valid reports whether s lies in 'a'..'z'.
func (s Symbol) Valid() bool {
	return s >= 'a' && s <= 'z'
}

// Index returns the position of s in the fixed symbol space.
func (s Symbol) Index() int {
	return int(s - 'a')
}

func (s Symbol) String() string {
	if s.Valid() {
		return string(rune(s))
	}
	return fmt.Sprintf("%q", rune(s))
}

// SymbolAt returns the i-th letter of the symbol space.
func SymbolAt(i int) Symbol {
	return Symbol('a' + i)
}
