// Package shortcode implements short, human-facing codes over an alphabet
// that leaves out glyphs people confuse when reading or copying by hand.
package shortcode

import (
	"cmp"
	"strings"
)

// Alphabet excludes ambiguous characters: O, 0, I, 1 and L.
// The position of each character is its Symbol index.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// AlphabetSize is the number of distinct symbols.
const AlphabetSize = len(Alphabet)

// Symbol is a single validated character of Alphabet.
// The zero value is the first character of Alphabet.
type Symbol struct {
	idx uint8
}

// Lookup returns the Symbol for r. Matching is exact and case-sensitive,
// so lowercase letters are never members.
func Lookup(r rune) (Symbol, bool) {
	if r > 0x7f {
		return Symbol{}, false
	}
	i := strings.IndexRune(Alphabet, r)
	if i < 0 {
		return Symbol{}, false
	}
	return Symbol{idx: uint8(i)}, true
}

// Rune returns the character this Symbol stands for.
func (s Symbol) Rune() rune {
	return rune(Alphabet[s.idx])
}

// Index returns the position of the Symbol in Alphabet.
func (s Symbol) Index() int {
	return int(s.idx)
}

// Compare orders symbols by their Alphabet index.
func (s Symbol) Compare(other Symbol) int {
	return cmp.Compare(s.idx, other.idx)
}

func (s Symbol) String() string {
	return Alphabet[s.idx : s.idx+1]
}
