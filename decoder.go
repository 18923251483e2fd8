package hufftree

import (
	"fmt"
)

// Decode decodes a string of '0' and '1' characters produced by Encode back
// into Symbols.  Each Symbol is found by walking the tree from the root, one
// bit per edge, until a leaf is reached.
//
// Decode returns an error wrapping ErrMalformedCode if bits contains any
// other character, or if it ends partway through a code.  No Symbols are
// returned on error.  Empty input decodes to an empty (non-nil) slice.
//
// For a one-symbol alphabet every '0' decodes to that Symbol and '1' is
// malformed.
//
func (e Encoder) Decode(bits string) ([]Symbol, error) {
	e.mustBeInitialized()

	if index := invalidBitIndex(bits); index >= 0 {
		return nil, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedCode, bits[index], index)
	}

	t := e.tree
	if t.Root().IsLeaf() {
		return e.decodeSingle(bits)
	}

	out := make([]Symbol, 0, len(bits)/int(e.maxSize)+1)
	index := t.root
	start := 0
	for offset := 0; offset < len(bits); offset++ {
		n := t.nodes[index]
		if bits[offset] == '0' {
			index = n.Left
		} else {
			index = n.Right
		}

		child := t.nodes[index]
		if e.tracer != nil {
			e.tracer.Trace(Event{Kind: EventDecodeStep, Node: child, Offset: offset})
		}
		if child.IsLeaf() {
			out = append(out, child.Symbol)
			if e.tracer != nil {
				e.tracer.Trace(Event{Kind: EventDecodeEmit, Node: child, Offset: offset})
			}
			index = t.root
			start = offset + 1
		}
	}

	if index != t.root {
		return nil, fmt.Errorf("%w: input ends %d bits into an incomplete code starting at offset %d", ErrMalformedCode, len(bits)-start, start)
	}

	e.traceDecode(bits, out)
	return out, nil
}

// DecodeString is like Decode, but returns the Symbols as a string.
func (e Encoder) DecodeString(bits string) (string, error) {
	symbols, err := e.Decode(bits)
	if err != nil {
		return "", err
	}
	return symbolsToString(symbols), nil
}

func (e Encoder) decodeSingle(bits string) ([]Symbol, error) {
	root := e.tree.Root()
	out := make([]Symbol, 0, len(bits))
	for offset := 0; offset < len(bits); offset++ {
		if bits[offset] != '0' {
			return nil, fmt.Errorf("%w: bit '1' at offset %d in a one-symbol alphabet", ErrMalformedCode, offset)
		}
		out = append(out, root.Symbol)
		if e.tracer != nil {
			e.tracer.Trace(Event{Kind: EventDecodeEmit, Node: root, Offset: offset})
		}
	}

	e.traceDecode(bits, out)
	return out, nil
}

func (e Encoder) traceDecode(bits string, symbols []Symbol) {
	if e.tracer != nil {
		e.tracer.Trace(Event{Kind: EventDecode, Input: bits, Output: symbolsToString(symbols)})
	}
}
