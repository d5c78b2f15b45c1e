package shortcode

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MarshalText renders the symbol as its single character.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts exactly one Alphabet character.
func (s *Symbol) UnmarshalText(text []byte) error {
	r, size := utf8.DecodeRune(text)
	if len(text) == 0 || size != len(text) {
		return fmt.Errorf("symbol must be a single character, got %q", text)
	}
	sym, ok := Lookup(r)
	if !ok {
		return &InvalidCharacterError{Char: r}
	}
	*s = sym
	return nil
}

// MarshalYAML renders the symbol as a plain string scalar.
func (s Symbol) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts a scalar holding exactly one Alphabet character.
func (s *Symbol) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: symbol must be a scalar", node.Line)
	}
	if err := s.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalText returns the cached rendering.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.text), nil
}

// UnmarshalText parses text and replaces c with the result. On error c is
// left untouched.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML renders the code as a plain string scalar.
func (c Code) MarshalYAML() (any, error) {
	return c.text, nil
}

// UnmarshalYAML accepts a scalar node and parses its value.
func (c *Code) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: code must be a scalar", node.Line)
	}
	if err := c.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
