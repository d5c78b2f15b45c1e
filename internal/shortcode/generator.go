package shortcode

import (
	"fmt"
	"math/rand/v2"
)

// DefaultLength is the code length used by NewGenerator.
const DefaultLength = 6

// maxAdjacentRedraws bounds consecutive rejected draws at one position when
// adjacent repeats are forbidden. With 31 symbols a rejection has probability
// 1/31, so reaching the bound means the source is degenerate.
const maxAdjacentRedraws = 1024

// Generator produces random codes. It is a value: builder methods return a
// modified copy and never change the receiver.
//
//	code, err := shortcode.NewGenerator().
//		Length(8).
//		NoAdjacentRepeats().
//		Generate(shortcode.CryptoSource{})
type Generator struct {
	length            int
	noAdjacentRepeats bool
	noRepeats         bool
}

// NewGenerator returns a generator for codes of DefaultLength with repeats allowed.
func NewGenerator() Generator {
	return Generator{length: DefaultLength}
}

// Length sets the number of symbols in generated codes.
func (g Generator) Length(n int) Generator {
	g.length = n
	return g
}

// NoAdjacentRepeats forbids two equal symbols next to each other.
func (g Generator) NoAdjacentRepeats() Generator {
	g.noAdjacentRepeats = true
	return g
}

// NoRepeats forbids any symbol from appearing twice. Codes are then limited
// to AlphabetSize symbols.
func (g Generator) NoRepeats() Generator {
	g.noRepeats = true
	return g
}

// Len returns the configured length.
func (g Generator) Len() int { return g.length }

// ForbidsAdjacentRepeats reports whether NoAdjacentRepeats is set.
func (g Generator) ForbidsAdjacentRepeats() bool { return g.noAdjacentRepeats }

// ForbidsRepeats reports whether NoRepeats is set.
func (g Generator) ForbidsRepeats() bool { return g.noRepeats }

// Validate checks the configuration without drawing anything.
func (g Generator) Validate() error {
	if g.length < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, g.length)
	}
	if g.noRepeats && g.length > AlphabetSize {
		return &LengthExceedsUniqueSetError{Requested: g.length, Available: AlphabetSize}
	}
	return nil
}

// Generate draws a code from src. The source is used only for the duration
// of the call and must not be shared with concurrent callers unless it is
// safe for that (see CryptoSource and NewLockedSource).
func (g Generator) Generate(src rand.Source) (Code, error) {
	if err := g.Validate(); err != nil {
		return Code{}, err
	}
	if g.length == 0 {
		return Code{}, nil
	}
	if src == nil {
		return Code{}, ErrNilSource
	}

	rng := rand.New(src)
	if g.noRepeats {
		// Symbols drawn without replacement are pairwise distinct, so the
		// adjacent constraint holds as well and needs no extra pass.
		return newCode(sampleDistinct(rng, g.length)), nil
	}

	symbols, err := g.sampleWithReplacement(rng)
	if err != nil {
		return Code{}, err
	}
	return newCode(symbols), nil
}

// sampleDistinct runs a partial Fisher-Yates shuffle over all indices and
// keeps the first n. n must not exceed AlphabetSize.
func sampleDistinct(rng *rand.Rand, n int) []Symbol {
	var pool [AlphabetSize]uint8
	for i := range pool {
		pool[i] = uint8(i)
	}

	symbols := make([]Symbol, n)
	for i := range n {
		j := i + rng.IntN(AlphabetSize-i)
		pool[i], pool[j] = pool[j], pool[i]
		symbols[i] = Symbol{idx: pool[i]}
	}
	return symbols
}

func (g Generator) sampleWithReplacement(rng *rand.Rand) ([]Symbol, error) {
	symbols := make([]Symbol, 0, g.length)
	redraws := 0

	for len(symbols) < g.length {
		s := Symbol{idx: uint8(rng.IntN(AlphabetSize))}

		if g.noAdjacentRepeats && len(symbols) > 0 && symbols[len(symbols)-1] == s {
			redraws++
			if redraws > maxAdjacentRedraws {
				return nil, fmt.Errorf("%w: %d consecutive adjacent repeats at position %d",
					ErrInfeasibleConfiguration, redraws, len(symbols))
			}
			continue
		}

		symbols = append(symbols, s)
		redraws = 0
	}

	return symbols, nil
}
