package hufftree

import (
	"errors"
)

var (
	// ErrEmptyAlphabet is returned when an Encoder is built from an empty
	// frequency table.
	ErrEmptyAlphabet = errors.New("empty alphabet")

	// ErrZeroWeight is returned when a frequency table assigns a weight of
	// zero to some Symbol.
	ErrZeroWeight = errors.New("zero weight")

	// ErrInvalidSymbol is returned when a frequency table contains a
	// negative Symbol or one greater than MaxSymbol.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrWeightOverflow is returned when the weights of a frequency table
	// do not sum to a value representable as a uint64.
	ErrWeightOverflow = errors.New("total weight overflows uint64")

	// ErrUnknownSymbol is returned by Encode when the input contains a
	// Symbol that is not part of the Encoder's alphabet.
	ErrUnknownSymbol = errors.New("symbol not found")

	// ErrMalformedCode is returned by Decode when the input contains a
	// character other than '0' or '1', or ends in the middle of a code.
	ErrMalformedCode = errors.New("malformed code")
)
