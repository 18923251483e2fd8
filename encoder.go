package hufftree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/exp/slices"
)

// Encoder holds a Huffman tree and the code table derived from it.  An
// Encoder is immutable after Init and safe for concurrent use.
type Encoder struct {
	tree    *Tree
	codes   map[Symbol]Code
	freqs   Frequencies
	tracer  Tracer
	minSize byte
	maxSize byte
}

// NewEncoder builds an Encoder for the given frequency table.
func NewEncoder(freqs Frequencies, opts ...Option) (*Encoder, error) {
	e := new(Encoder)
	if err := e.Init(freqs, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Init initializes this Encoder.  The frequency table must contain at least
// one Symbol, and every weight must be positive.
//
// If the table holds a single Symbol, its Code is "0": the tree is a lone
// leaf, so the Code is not a tree path, but it keeps every encoded Symbol
// exactly one bit long.
//
func (e *Encoder) Init(freqs Frequencies, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkFrequencies(freqs); err != nil {
		return err
	}

	tree := buildTree(freqs, o.tracer)

	codes := make(map[Symbol]Code, len(freqs))
	copied := make(Frequencies, len(freqs))
	var minSize, maxSize byte
	var hasMinMax bool
	tree.Walk(func(_ int, n Node) bool {
		if !n.IsLeaf() {
			return true
		}
		hc := n.Code
		if hc == "" {
			hc = "0"
		}
		codes[n.Symbol] = hc
		copied[n.Symbol] = n.Weight

		size := byte(hc.Len())
		if !hasMinMax {
			hasMinMax = true
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
		return true
	})

	*e = Encoder{
		tree:    tree,
		codes:   codes,
		freqs:   copied,
		tracer:  o.tracer,
		minSize: minSize,
		maxSize: maxSize,
	}

	if e.tracer != nil {
		e.tracer.Trace(Event{Kind: EventBuilt, Tree: tree})
	}
	return nil
}

// Encode encodes a sequence of Symbols into the concatenation of their codes.
// If any Symbol is not in the alphabet, Encode returns an error wrapping
// ErrUnknownSymbol and no output.
func (e Encoder) Encode(symbols []Symbol) (string, error) {
	e.mustBeInitialized()

	var size int
	for index, sym := range symbols {
		hc, found := e.codes[sym]
		if !found {
			return "", fmt.Errorf("%w: %#v at position %d", ErrUnknownSymbol, sym, index)
		}
		size += hc.Len()
	}

	var buf strings.Builder
	buf.Grow(size)
	for _, sym := range symbols {
		buf.WriteString(string(e.codes[sym]))
	}
	bits := buf.String()

	if e.tracer != nil {
		e.tracer.Trace(Event{Kind: EventEncode, Input: symbolsToString(symbols), Output: bits})
	}
	return bits, nil
}

// EncodeString encodes each rune of str as a Symbol.
func (e Encoder) EncodeString(str string) (string, error) {
	return e.Encode(stringToSymbols(str))
}

// Code returns the Code for a Symbol, and false if the Symbol is not in the
// alphabet.
func (e Encoder) Code(sym Symbol) (Code, bool) {
	hc, found := e.codes[sym]
	return hc, found
}

// Codes returns a copy of the code table.
func (e Encoder) Codes() map[Symbol]Code {
	out := make(map[Symbol]Code, len(e.codes))
	for sym, hc := range e.codes {
		out[sym] = hc
	}
	return out
}

// Symbols returns the alphabet in ascending order.
func (e Encoder) Symbols() []Symbol {
	out := make([]Symbol, 0, len(e.codes))
	for sym := range e.codes {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// Frequencies returns a copy of the frequency table used to build this
// Encoder.
func (e Encoder) Frequencies() Frequencies {
	out := make(Frequencies, len(e.freqs))
	for sym, w := range e.freqs {
		out[sym] = w
	}
	return out
}

// Tree returns the Huffman tree.  The Tree must not be modified.
func (e Encoder) Tree() *Tree {
	return e.tree
}

// NumSymbols is the size of the alphabet.
func (e Encoder) NumSymbols() int {
	return len(e.codes)
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for _, sym := range e.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%#v) = %s\n", sym, e.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (e Encoder) DebugString() string {
	var buf strings.Builder
	_, _ = e.Dump(&buf)
	return buf.String()
}

// String returns a one-line summary of this Encoder.
func (e Encoder) String() string {
	return fmt.Sprintf("(Huffman encoder with %d symbols, with coded lengths of %d .. %d bits)", len(e.codes), e.minSize, e.maxSize)
}

// GoString returns a Go expression that rebuilds this Encoder.
func (e Encoder) GoString() string {
	var buf strings.Builder
	buf.WriteString("NewEncoder(Frequencies{")
	for index, sym := range e.Symbols() {
		if index > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, "%#v:%d", sym, e.freqs[sym])
	}
	buf.WriteString("})")
	return buf.String()
}

// MarshalJSON encodes the frequency table as a JSON object whose keys are the
// Symbols as one-character strings.
func (e Encoder) MarshalJSON() ([]byte, error) {
	raw := make(map[string]uint64, len(e.freqs))
	for sym, w := range e.freqs {
		raw[sym.String()] = w
	}
	return json.Marshal(raw)
}

// UnmarshalJSON rebuilds this Encoder from the output of MarshalJSON.  A
// Tracer already attached to the Encoder is kept.
func (e *Encoder) UnmarshalJSON(data []byte) error {
	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	freqs := make(Frequencies, len(raw))
	for key, w := range raw {
		ch, size := utf8.DecodeRuneInString(key)
		if size != len(key) || (ch == utf8.RuneError && size <= 1) {
			return fmt.Errorf("%w: JSON key %q is not a single character", ErrInvalidSymbol, key)
		}
		freqs[Symbol(ch)] = w
	}
	return e.Init(freqs, WithTracer(e.tracer))
}

var (
	_ fmt.Stringer     = Encoder{}
	_ fmt.GoStringer   = Encoder{}
	_ json.Marshaler   = Encoder{}
	_ json.Unmarshaler = (*Encoder)(nil)
)

func (e Encoder) mustBeInitialized() {
	assert.Assertf(e.tree != nil, "Encoder used before Init")
}

func stringToSymbols(str string) []Symbol {
	symbols := make([]Symbol, 0, len(str))
	for _, ch := range str {
		symbols = append(symbols, Symbol(ch))
	}
	return symbols
}

func symbolsToString(symbols []Symbol) string {
	var buf strings.Builder
	buf.Grow(len(symbols))
	for _, sym := range symbols {
		buf.WriteRune(rune(sym))
	}
	return buf.String()
}
