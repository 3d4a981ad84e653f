package domain

// Transition is one declared rule "on Symbol, move From -> To".
// Labels are not yet checked against the declared states.
type Transition struct {
	From   string `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string `json:"on" yaml:"on" mapstructure:"on"`
	To     string `json:"to" yaml:"to" mapstructure:"to"`

	// Line is the source line the rule was read from (0 when unknown).
	Line int `json:"-" yaml:"-" mapstructure:"-"`
}
