package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/dfacheck/pkg/domain"
)

// Format names a concrete syntax for machine descriptions.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, yaml or json)", s)
}

// DetectFormat picks a format from a file extension, defaulting to text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// Parser converts raw description bytes into a Definition.
type Parser struct {
	format Format
}

// NewParser creates a parser for the given format.
func NewParser(format Format) *Parser {
	if format == "" {
		format = FormatText
	}
	return &Parser{format: format}
}

// Format returns the syntax this parser reads.
func (p *Parser) Format() Format { return p.format }

// Parse decodes data. Syntax problems surface as *domain.FormatError and an
// oversized declared alphabet as *domain.AlphabetTooLargeError; semantic
// checks are left to the validator.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	switch p.format {
	case FormatText:
		return parseText(data)
	case FormatYAML, FormatJSON:
		return parseStructured(data, p.format)
	}
	return nil, fmt.Errorf("unsupported format %q", p.format)
}

// Parse is a shorthand for NewParser(format).Parse(data).
func Parse(data []byte, format Format) (*domain.Definition, error) {
	return NewParser(format).Parse(data)
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = domain.SymbolAt(i).String()
	}
	return out
}
