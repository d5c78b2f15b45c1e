package shortcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter indicates a character outside Alphabet.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrLengthExceedsUniqueSet indicates that more distinct symbols were
	// requested than Alphabet holds.
	ErrLengthExceedsUniqueSet = errors.New("length exceeds unique symbol set")

	// ErrInfeasibleConfiguration indicates the generator could not satisfy
	// its constraints with the draws the source produced.
	ErrInfeasibleConfiguration = errors.New("infeasible generator configuration")

	// ErrNegativeLength indicates a negative code length.
	ErrNegativeLength = errors.New("code length must not be negative")

	// ErrNilSource indicates Generate was called without a randomness source.
	ErrNilSource = errors.New("nil randomness source")
)

// InvalidCharacterError reports the first character that failed validation.
type InvalidCharacterError struct {
	Char     rune
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Position)
}

// Is makes errors.Is(err, ErrInvalidCharacter) hold.
func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// LengthExceedsUniqueSetError is returned when uniqueness is required and the
// requested length is larger than the alphabet.
type LengthExceedsUniqueSetError struct {
	Requested int
	Available int
}

func (e *LengthExceedsUniqueSetError) Error() string {
	return fmt.Sprintf("length %d exceeds unique symbol set of %d", e.Requested, e.Available)
}

// Is makes errors.Is(err, ErrLengthExceedsUniqueSet) hold.
func (e *LengthExceedsUniqueSetError) Is(target error) bool {
	return target == ErrLengthExceedsUniqueSet
}
