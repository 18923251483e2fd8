package hufftree

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol rune

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(unicode.MaxRune)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// Valid returns true iff this Symbol may appear in a frequency table, i.e. it
// is a Unicode code point that can be encoded as UTF-8.  Surrogate halves are
// not valid.
func (sym Symbol) Valid() bool {
	return utf8.ValidRune(rune(sym))
}

// String returns the Symbol as a one-character string.
func (sym Symbol) String() string {
	return string(rune(sym))
}

// GoString returns the Symbol as a quoted Go rune literal.
func (sym Symbol) GoString() string {
	return strconv.QuoteRune(rune(sym))
}

// Frequencies maps each Symbol of an alphabet to its weight.  Every weight
// must be positive.
type Frequencies map[Symbol]uint64

// Total returns the sum of all weights, and false if the sum overflows.
func (freqs Frequencies) Total() (uint64, bool) {
	var sum uint64
	for _, w := range freqs {
		next := sum + w
		if next < sum {
			return 0, false
		}
		sum = next
	}
	return sum, true
}
