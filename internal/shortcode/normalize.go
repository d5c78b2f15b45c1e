package shortcode

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Normalize prepares typed input for Parse. It folds full-width forms to
// ASCII, upper-cases letters and drops the spaces, tabs and hyphens people
// insert when copying grouped codes. Excluded glyphs are kept as they are,
// so "o" becomes "O" and is still rejected by Parse.
func Normalize(raw string) string {
	s := width.Fold.String(raw)
	s = cases.Upper(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, s)
}
