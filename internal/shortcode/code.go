package shortcode

import (
	"iter"
	"slices"
	"strings"
)

// Code is an immutable sequence of symbols together with its rendered text.
// The zero value is the empty code.
type Code struct {
	symbols []Symbol
	text    string
}

// FromSymbols builds a Code from already validated symbols.
func FromSymbols(symbols ...Symbol) Code {
	return newCode(slices.Clone(symbols))
}

// newCode takes ownership of symbols.
func newCode(symbols []Symbol) Code {
	if len(symbols) == 0 {
		return Code{}
	}
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteByte(Alphabet[s.idx])
	}
	return Code{symbols: symbols, text: b.String()}
}

// Parse validates every character of raw against Alphabet and stops at the
// first one that is not a member.
func Parse(raw string) (Code, error) {
	symbols := make([]Symbol, 0, len(raw))
	pos := 0
	for _, r := range raw {
		s, ok := Lookup(r)
		if !ok {
			return Code{}, &InvalidCharacterError{Char: r, Position: pos}
		}
		symbols = append(symbols, s)
		pos++
	}
	return newCode(symbols), nil
}

// MustParse is like Parse but panics if raw is not a valid code.
func MustParse(raw string) Code {
	c, err := Parse(raw)
	if err != nil {
		panic("shortcode: " + err.Error())
	}
	return c
}

// Len returns the number of symbols.
func (c Code) Len() int {
	return len(c.symbols)
}

// IsEmpty reports whether the code has no symbols.
func (c Code) IsEmpty() bool {
	return len(c.symbols) == 0
}

// At returns the symbol at position i. It panics if i is out of range.
func (c Code) At(i int) Symbol {
	return c.symbols[i]
}

// Symbols returns a copy of the symbol sequence.
func (c Code) Symbols() []Symbol {
	return slices.Clone(c.symbols)
}

// All iterates over the symbols in order.
func (c Code) All() iter.Seq2[int, Symbol] {
	return func(yield func(int, Symbol) bool) {
		for i, s := range c.symbols {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Equal reports whether both codes hold the same symbols.
func (c Code) Equal(other Code) bool {
	return c.text == other.text
}

func (c Code) String() string {
	return c.text
}

// Group renders the code split into groups of size joined by sep, as codes
// are usually printed. A size of zero or less returns the plain rendering.
func (c Code) Group(size int, sep string) string {
	if size <= 0 || len(c.text) <= size {
		return c.text
	}
	var b strings.Builder
	b.Grow(len(c.text) + len(sep)*(len(c.text)/size))
	for i := 0; i < len(c.text); i += size {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(c.text[i:min(i+size, len(c.text))])
	}
	return b.String()
}
