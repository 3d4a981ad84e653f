package compiler

import (
	"testing"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatText, DetectFormat("machines/t0.sm"))
	assert.Equal(t, FormatText, DetectFormat("noext"))
	assert.Equal(t, FormatYAML, DetectFormat("m.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("M.YML"))
	assert.Equal(t, FormatJSON, DetectFormat("m.json"))
}

func TestParse_Text(t *testing.T) {
	src := `
# two states over {a, b}
2 2
0
1 1
0 a 1   0 b 0
1 a 1
1 b 0
`
	def, err := Parse([]byte(src), FormatText)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, def.Alphabet)
	assert.Equal(t, []string{"0", "1"}, def.States)
	assert.Equal(t, "0", def.Start)
	assert.True(t, def.StartSet)
	assert.Equal(t, []string{"1"}, def.Accepting)
	require.Len(t, def.Transitions, 4)
	assert.Equal(t, domain.Transition{From: "0", Symbol: "a", To: "1", Line: 6}, def.Transitions[0])
	assert.Equal(t, 8, def.Transitions[3].Line)
}

func TestParse_TextNoAcceptingNoTransitions(t *testing.T) {
	def, err := Parse([]byte("0 1 0 0"), FormatText)
	require.NoError(t, err)
	assert.Empty(t, def.Alphabet)
	assert.Empty(t, def.Accepting)
	assert.Empty(t, def.Transitions)
}

func TestParse_TextErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		line  int
	}{
		{"empty", "", "alphabet", 0},
		{"only comments", "# nothing\n", "alphabet", 0},
		{"bad alphabet size", "x", "alphabet", 1},
		{"negative states", "2\n-1", "states", 2},
		{"zero states", "2\n0", "states", 2},
		{"missing start", "2 1", "start", 1},
		{"truncated accepting list", "2 2 0 2 1", "accepting state #2", 1},
		{"incomplete rule", "1 1 0 0\n0", "transitions", 2},
		{"bad target", "1 1 0 0\n0 a z", "transition target", 2},
		{"signed count", "+1 1 0 0", "alphabet", 1},
		{"overflowing start", "1 1 99999999999 0", "start", 1},
		{"overflowing accepting count", "1 1 0 999999999999999999", "accepting", 1},
		{"accepting count above state count", "2 2 0 3 0 1 1", "accepting", 1},
		{"too many states", "1 5000000 0 0", "states", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), FormatText)
			var fe *domain.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.line, fe.Line)
		})
	}
}

func TestParse_TextLargeCountsDoNotAllocate(t *testing.T) {
	for _, src := range []string{"1 1 0 999999999999999999", "1 5000000 0 0", "1 65536 0 2147483647"} {
		assert.NotPanics(t, func() {
			def, err := Parse([]byte(src), FormatText)
			assert.Nil(t, def)
			assert.True(t, domain.IsValidationError(err), "%q: %v", src, err)
		})
	}

	def, err := Parse([]byte("1 65536 0 0"), FormatText)
	require.NoError(t, err)
	assert.Len(t, def.States, domain.MaxStates)
}

func TestParse_TextAlphabetTooLarge(t *testing.T) {
	_, err := Parse([]byte("27 1 0 0"), FormatText)
	var tooLarge *domain.AlphabetTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 27, tooLarge.Size)

	def, err := Parse([]byte("26 1 0 0"), FormatText)
	require.NoError(t, err)
	assert.Len(t, def.Alphabet, 26)
	assert.Equal(t, "z", def.Alphabet[25])
}

func TestParse_YAML(t *testing.T) {
	src := `
name: toggle
alphabet: [a, b]
states: [off, on]
start: off
accepting: [on]
transitions:
  - off a on
  - on a off
  - {from: off, on: b, to: off}
  - from: on
    on: b
    to: on
`
	def, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "toggle", def.Name)
	assert.Equal(t, []string{"a", "b"}, def.Alphabet)
	assert.Equal(t, []string{"off", "on"}, def.States)
	assert.Equal(t, "off", def.Start)
	assert.Equal(t, []string{"on"}, def.Accepting)
	require.Len(t, def.Transitions, 4)
	assert.Equal(t, domain.Transition{From: "off", Symbol: "b", To: "off"}, def.Transitions[2])
}

func TestParse_YAMLAlphabetForms(t *testing.T) {
	base := "states: [0]\nstart: 0\naccepting: []\ntransitions: []\n"

	def, err := Parse([]byte("alphabet: abc\n"+base), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, def.Alphabet)

	def, err = Parse([]byte("alphabet: 2\n"+base), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.Alphabet)
	assert.Equal(t, []string{"0"}, def.States)

	_, err = Parse([]byte("alphabet: 30\n"+base), FormatYAML)
	var tooLarge *domain.AlphabetTooLargeError
	assert.ErrorAs(t, err, &tooLarge)

	_, err = Parse([]byte("alphabet: -1\n"+base), FormatYAML)
	var fe *domain.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestParse_JSON(t *testing.T) {
	src := `{"alphabet": 1, "states": [0, 1], "start": 1, "accepting": [0],
		"transitions": [{"from": 0, "on": "a", "to": 1}, "1 a 0"]}`
	def, err := Parse([]byte(src), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1"}, def.States)
	assert.Equal(t, "1", def.Start)
	assert.Equal(t, domain.Transition{From: "0", Symbol: "a", To: "1"}, def.Transitions[0])
	assert.Equal(t, domain.Transition{From: "1", Symbol: "a", To: "0"}, def.Transitions[1])
}

func TestParse_StructuredErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
		field  string
	}{
		{"invalid json", FormatJSON, `{"alphabet": `, ""},
		{"missing transitions", FormatYAML, "alphabet: a\nstates: [0]\nstart: 0\naccepting: []\n", "transitions"},
		{"missing start", FormatYAML, "alphabet: a\nstates: [0]\naccepting: []\ntransitions: []\n", "start"},
		{"unknown section", FormatYAML, "alphabet: a\nstates: [0]\nstart: 0\naccepting: []\ntransitions: []\nfinal: [0]\n", ""},
		{"short rule", FormatYAML, "alphabet: a\nstates: [0]\nstart: 0\naccepting: []\ntransitions: [\"0 a\"]\n", "transitions[0]"},
		{"rule without target", FormatYAML, "alphabet: a\nstates: [0]\nstart: 0\naccepting: []\ntransitions: [{from: 0, on: a}]\n", "transitions[0]"},
		{"duplicate json section", FormatJSON, `{"alphabet":"a","states":[0],"start":0,"start":1,"accepting":[],"transitions":[]}`, ""},
		{"duplicate yaml section", FormatYAML, "alphabet: a\nstates: [0]\nstart: 0\nstart: 1\naccepting: []\ntransitions: []\n", ""},
		{"nested state label", FormatYAML, "alphabet: a\nstates: [[0]]\nstart: 0\naccepting: []\ntransitions: []\n", "states"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.format)
			var fe *domain.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}
