package hufftree

import (
	"fmt"
	"strconv"
	"strings"
)

// Code represents a sequence of bits, written as a string of '0' and '1'
// characters.  The first character is the first bit, i.e. the edge taken
// out of the root.
type Code string

// Len returns the number of bits in this Code.
func (hc Code) Len() int {
	return len(hc)
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code has
// the empty Code as a prefix, and every Code is a prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	return strings.HasPrefix(string(hc), string(prefix))
}

// Valid returns true iff this Code consists only of '0' and '1' characters.
func (hc Code) Valid() bool {
	return invalidBitIndex(string(hc)) < 0
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if len(hc) == 0 {
		return "\"\""
	}
	return strconv.Quote(string(hc))
}

var _ fmt.Stringer = Code("")

// invalidBitIndex returns the offset of the first character that is neither
// '0' nor '1', or -1.
func invalidBitIndex(bits string) int {
	for i := 0; i < len(bits); i++ {
		if ch := bits[i]; ch != '0' && ch != '1' {
			return i
		}
	}
	return -1
}
