package shortcode_test

import (
	"errors"
	"testing"

	"vdcode/internal/shortcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(t *testing.T, c rune) shortcode.Symbol {
	t.Helper()
	s, ok := shortcode.Lookup(c)
	require.True(t, ok, "%q is not a member", c)
	return s
}

func TestFromSymbols(t *testing.T) {
	symbols := []shortcode.Symbol{sym(t, 'A'), sym(t, 'B'), sym(t, '2')}
	code := shortcode.FromSymbols(symbols...)

	assert.Equal(t, "AB2", code.String())
	assert.Equal(t, symbols, code.Symbols())
	assert.Equal(t, 3, code.Len())

	// the code keeps its own copy
	symbols[0] = sym(t, 'Z')
	assert.Equal(t, "AB2", code.String())
	assert.Equal(t, 'A', code.At(0).Rune())
}

func TestFromSymbols_Empty(t *testing.T) {
	code := shortcode.FromSymbols()
	assert.True(t, code.IsEmpty())
	assert.Equal(t, "", code.String())
	assert.True(t, code.Equal(shortcode.Code{}))
}

func TestParse_Valid(t *testing.T) {
	tests := []string{"AB29XY", "M29W", "5K7", "", "ABCDEFGHJKMNPQRSTUVWXYZ23456789"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			code, err := shortcode.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, code.String())
			assert.Equal(t, len(in), code.Len())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		char rune
		pos  int
	}{
		{name: "excluded O in HELLO", in: "HELLO!", char: 'L', pos: 2},
		{name: "all ambiguous", in: "O0I1", char: 'O', pos: 0},
		{name: "lowercase", in: "abc", char: 'a', pos: 0},
		{name: "punctuation at end", in: "7ZPQ!", char: '!', pos: 4},
		{name: "space", in: "AB 29", char: ' ', pos: 2},
		{name: "multibyte counts as one position", in: "AéB0", char: 'é', pos: 1},
		{name: "invalid utf8", in: "AB\xff", char: '�', pos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := shortcode.Parse(tt.in)
			require.Error(t, err)
			assert.True(t, code.IsEmpty())
			assert.ErrorIs(t, err, shortcode.ErrInvalidCharacter)

			var charErr *shortcode.InvalidCharacterError
			require.True(t, errors.As(err, &charErr))
			assert.Equal(t, tt.char, charErr.Char)
			assert.Equal(t, tt.pos, charErr.Position)
		})
	}
}

func TestParse_RoundTripGenerated(t *testing.T) {
	gen := shortcode.NewGenerator().Length(20)
	for seed := uint64(0); seed < 200; seed++ {
		code, err := gen.Generate(seeded(seed))
		require.NoError(t, err)

		parsed, err := shortcode.Parse(code.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(code))
		assert.Equal(t, code, parsed)
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, "Q4V", shortcode.MustParse("Q4V").String())
	assert.Panics(t, func() { shortcode.MustParse("q4v") })
}

func TestCode_At(t *testing.T) {
	code := shortcode.MustParse("5K7")

	assert.Equal(t, sym(t, '5'), code.At(0))
	assert.Equal(t, 'K', code.At(1).Rune())
	assert.Equal(t, "7", code.At(2).String())

	assert.Panics(t, func() { code.At(3) })
	assert.Panics(t, func() { code.At(-1) })
}

func TestCode_All(t *testing.T) {
	code := shortcode.MustParse("X2Z")

	var collected []rune
	for _, s := range code.All() {
		collected = append(collected, s.Rune())
	}
	assert.Equal(t, []rune{'X', '2', 'Z'}, collected)

	// iteration is restartable
	var again []rune
	for i, s := range code.All() {
		assert.Equal(t, code.At(i), s)
		again = append(again, s.Rune())
	}
	assert.Equal(t, collected, again)

	// early exit
	count := 0
	for range code.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestCode_SymbolsReturnsCopy(t *testing.T) {
	code := shortcode.MustParse("ABC")
	symbols := code.Symbols()
	symbols[0] = sym(t, 'Z')

	assert.Equal(t, "ABC", code.String())
	assert.Equal(t, 'A', code.At(0).Rune())
}

func TestCode_Equal(t *testing.T) {
	assert.True(t, shortcode.MustParse("K2Z7").Equal(shortcode.MustParse("K2Z7")))
	assert.False(t, shortcode.MustParse("K2Z7").Equal(shortcode.MustParse("K2Z8")))
	assert.False(t, shortcode.MustParse("K2Z").Equal(shortcode.MustParse("K2Z7")))
}

func TestCode_Group(t *testing.T) {
	tests := []struct {
		in   string
		size int
		sep  string
		want string
	}{
		{"AB29XY", 3, "-", "AB2-9XY"},
		{"AB29XYZ", 3, "-", "AB2-9XY-Z"},
		{"AB29XY", 2, " ", "AB 29 XY"},
		{"AB29XY", 6, "-", "AB29XY"},
		{"AB29XY", 0, "-", "AB29XY"},
		{"", 3, "-", ""},
	}

	for _, tt := range tests {
		code := shortcode.MustParse(tt.in)
		assert.Equal(t, tt.want, code.Group(tt.size, tt.sep))
	}
}

func TestCode_GroupRoundTripsThroughNormalize(t *testing.T) {
	code := shortcode.MustParse("HJK2345MN")
	back, err := shortcode.Parse(shortcode.Normalize(code.Group(3, "-")))
	require.NoError(t, err)
	assert.True(t, code.Equal(back))
}
