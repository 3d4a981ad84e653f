package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// rawMachine mirrors the structured (YAML/JSON) description before labels
// and symbols are normalised to strings.
type rawMachine struct {
	Name        string `mapstructure:"name"`
	Alphabet    any    `mapstructure:"alphabet"`
	States      []any  `mapstructure:"states"`
	Start       any    `mapstructure:"start"`
	Accepting   []any  `mapstructure:"accepting"`
	Transitions []any  `mapstructure:"transitions"`
}

var requiredSections = []string{"alphabet", "states", "start", "accepting", "transitions"}

func parseStructured(data []byte, format Format) (*domain.Definition, error) {
	// JSON is a YAML subset; decoding both through yaml.v3 rejects
	// duplicate keys in either format.
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.FormatError{Reason: fmt.Sprintf("invalid %s: %v", format, err)}
	}
	for _, key := range requiredSections {
		if _, ok := doc[key]; !ok {
			return nil, &domain.FormatError{Field: key, Reason: "missing required section"}
		}
	}

	var raw rawMachine
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, &domain.FormatError{Reason: err.Error()}
	}

	def := &domain.Definition{Name: raw.Name}

	if def.Alphabet, err = alphabetOf(raw.Alphabet); err != nil {
		return nil, err
	}
	if def.States, err = labelsOf("states", raw.States); err != nil {
		return nil, err
	}
	if def.Accepting, err = labelsOf("accepting", raw.Accepting); err != nil {
		return nil, err
	}
	if raw.Start != nil {
		if def.Start, err = label("start", raw.Start); err != nil {
			return nil, err
		}
		def.StartSet = true
	}

	for i, item := range raw.Transitions {
		tr, err := transitionOf(item)
		if err != nil {
			return nil, &domain.FormatError{Field: fmt.Sprintf("transitions[%d]", i), Reason: err.Error()}
		}
		def.Transitions = append(def.Transitions, tr)
	}
	return def, nil
}

// alphabetOf accepts a list of letters, a string of letters, or a size.
func alphabetOf(v any) ([]string, error) {
	switch a := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		out := make([]string, 0, len(a))
		for _, r := range a {
			out = append(out, string(r))
		}
		return out, nil
	case int:
		return sizedAlphabet(a)
	case float64:
		if a != float64(int(a)) {
			return nil, &domain.FormatError{Field: "alphabet", Reason: fmt.Sprintf("size %v is not an integer", a)}
		}
		return sizedAlphabet(int(a))
	case []any:
		return labelsOf("alphabet", a)
	}
	return nil, &domain.FormatError{Field: "alphabet", Reason: fmt.Sprintf("unsupported value of type %T", v)}
}

func sizedAlphabet(n int) ([]string, error) {
	if n < 0 {
		return nil, &domain.FormatError{Field: "alphabet", Reason: "size must not be negative"}
	}
	if n > domain.MaxAlphabetSize {
		return nil, &domain.AlphabetTooLargeError{Size: n}
	}
	return letters(n), nil
}

func labelsOf(field string, items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		l, err := label(field, it)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// label normalises a YAML/JSON scalar into a state label or symbol token.
func label(field string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", &domain.FormatError{Field: field, Reason: fmt.Sprintf("scalar expected, got %T", v)}
}

func transitionOf(item any) (domain.Transition, error) {
	switch v := item.(type) {
	case string:
		f := strings.Fields(v)
		if len(f) != 3 {
			return domain.Transition{}, fmt.Errorf(`rule %q must have the form "from symbol to"`, v)
		}
		return domain.Transition{From: f[0], Symbol: f[1], To: f[2]}, nil
	case map[string]any:
		var tr domain.Transition
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &tr,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return tr, err
		}
		if err := dec.Decode(v); err != nil {
			return tr, err
		}
		switch {
		case tr.From == "":
			return tr, fmt.Errorf(`missing "from"`)
		case tr.Symbol == "":
			return tr, fmt.Errorf(`missing "on"`)
		case tr.To == "":
			return tr, fmt.Errorf(`missing "to"`)
		}
		return tr, nil
	}
	return domain.Transition{}, fmt.Errorf("rule must be a map or a string, got %T", item)
}
