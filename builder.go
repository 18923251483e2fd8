package hufftree

import (
	"container/heap"
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/exp/slices"
)

// buildTree constructs the Huffman tree for freqs and assigns a Code to every
// node.  The caller must have validated freqs with checkFrequencies.
func buildTree(freqs Frequencies, tracer Tracer) *Tree {
	numSymbols := len(freqs)
	assert.Assertf(numSymbols > 0, "buildTree called with %d symbols", numSymbols)

	// Step 1: one leaf per Symbol, in Symbol order so that the sequence
	// numbers used for tie-breaking do not depend on map iteration order.

	symbols := make([]Symbol, 0, numSymbols)
	for sym := range freqs {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)

	t := &Tree{
		nodes:  make([]Node, 0, 2*numSymbols-1),
		labels: make(map[string]int, 2*numSymbols-1),
	}

	h := weightHeap{list: make([]heapItem, 0, numSymbols)}
	for _, sym := range symbols {
		index := t.appendNode(Node{
			Label:  sym.String(),
			Symbol: sym,
			Weight: freqs[sym],
			Left:   NoChild,
			Right:  NoChild,
		})
		h.list = append(h.list, heapItem{index: index, weight: freqs[sym], seq: uint(index)})
		if tracer != nil {
			tracer.Trace(Event{Kind: EventLeaf, Node: t.nodes[index]})
		}
	}
	h.Init()

	// Step 2: pop the two lightest nodes, merge them into a new synthetic
	// node labelled "n<k>", and push the merged node back.  The counter k
	// belongs to this call alone.

	var counter uint
	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		counter++
		index := t.appendNode(Node{
			Label:  syntheticLabel(counter),
			Symbol: InvalidSymbol,
			Weight: a.weight + b.weight,
			Left:   a.index,
			Right:  b.index,
		})
		heap.Push(&h, heapItem{index: index, weight: a.weight + b.weight, seq: uint(index)})
		if tracer != nil {
			tracer.Trace(Event{Kind: EventMerge, Node: t.nodes[index], Left: t.nodes[a.index], Right: t.nodes[b.index]})
		}
	}

	// Step 3: the last node standing is the root.  A lone leaf is also
	// registered under the current synthetic label, without advancing the
	// counter.

	root := heap.Pop(&h).(heapItem)
	t.root = root.index
	if numSymbols == 1 {
		t.labels[syntheticLabel(counter)] = t.root
	}

	assert.Assertf(t.Len() == 2*numSymbols-1, "tree has %d nodes, expected %d", t.Len(), 2*numSymbols-1)

	assignCodes(t)
	return t
}

// assignCodes walks the tree from the root and gives every child the Code of
// its parent plus '0' (left) or '1' (right).  The root keeps the empty Code.
func assignCodes(t *Tree) {
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// Only internal nodes are pushed, so the stack never grows deeper than
	// the longest Code.

	type stackItem struct {
		index int
		x     byte
	}

	stack := make([]stackItem, 0, log2uint(uint(t.Len())))

	processChild := func(parent int, child int, bit Code) {
		assert.Assertf(child != NoChild, "node %q has only one child", t.nodes[parent].Label)
		t.nodes[child].Code = t.nodes[parent].Code + bit
		if !t.nodes[child].IsLeaf() {
			stack = append(stack, stackItem{index: child})
		}
	}

	if t.nodes[t.root].IsLeaf() {
		return
	}

	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		n := t.nodes[top.index]
		switch x {
		case 0:
			processChild(top.index, n.Left, "0")
		case 1:
			processChild(top.index, n.Right, "1")
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// checkFrequencies rejects frequency tables that cannot produce a tree.
func checkFrequencies(freqs Frequencies) error {
	if len(freqs) == 0 {
		return ErrEmptyAlphabet
	}
	for sym, w := range freqs {
		if !sym.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidSymbol, int32(sym))
		}
		if w == 0 {
			return fmt.Errorf("%w: symbol %#v", ErrZeroWeight, sym)
		}
	}
	if _, ok := freqs.Total(); !ok {
		return ErrWeightOverflow
	}
	return nil
}

func syntheticLabel(k uint) string {
	return "n" + strconv.FormatUint(uint64(k), 10)
}

func (t *Tree) appendNode(n Node) int {
	index := len(t.nodes)
	t.nodes = append(t.nodes, n)
	t.labels[n.Label] = index
	return index
}

// type heapItem + type weightHeap {{{

type heapItem struct {
	index  int
	weight uint64
	seq    uint
}

type weightHeap struct {
	list []heapItem
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
