package domain

// Definition is the parsed but unvalidated content of a machine description.
// It is produced by a parser and consumed exactly once by the validator.
type Definition struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	States      []string     `json:"states" yaml:"states"`
	Alphabet    []string     `json:"alphabet" yaml:"alphabet"`
	Start       string       `json:"start" yaml:"start"`
	Accepting   []string     `json:"accepting" yaml:"accepting"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`

	// StartSet is false when the description never named a start state.
	StartSet bool `json:"-" yaml:"-"`
}
