package hufftree

import (
	"fmt"
)

// NoChild is stored in Node.Left and Node.Right of a leaf.
const NoChild = -1

// Node is one node of a Tree.  A leaf stands for a Symbol of the alphabet; an
// internal node is a synthetic merge point with exactly two children.
type Node struct {
	// Label is the Symbol as a string for leaves, or "n<k>" for the k'th
	// merge node created while building the tree.
	Label string

	// Symbol is the leaf's Symbol, or InvalidSymbol for merge nodes.
	Symbol Symbol

	// Weight is the leaf's frequency, or the sum of both children's
	// weights for merge nodes.
	Weight uint64

	// Left and Right are indices into the owning Tree, or NoChild.
	Left  int
	Right int

	// Code is the path from the root to this node.  The root's Code is
	// empty.
	Code Code
}

// IsLeaf returns true iff this Node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoChild && n.Right == NoChild
}

// String returns a short programmer-readable form of this Node.
func (n Node) String() string {
	return fmt.Sprintf("Node(%q, %d)", n.Label, n.Weight)
}

// Tree is a full binary tree stored as an arena of Nodes addressed by index.
// A Tree is immutable once built.
type Tree struct {
	nodes  []Node
	labels map[string]int
	root   int
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// RootIndex returns the index of the root node.
func (t *Tree) RootIndex() int {
	return t.root
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.nodes[t.root]
}

// Node returns the node at the given index.  It panics if the index is out of
// range.
func (t *Tree) Node(index int) Node {
	return t.nodes[index]
}

// NumLeaves returns the number of leaves, i.e. the size of the alphabet.
func (t *Tree) NumLeaves() int {
	var count int
	for _, n := range t.nodes {
		if n.IsLeaf() {
			count++
		}
	}
	return count
}

// NumInternal returns the number of synthetic merge nodes.
func (t *Tree) NumInternal() int {
	return len(t.nodes) - t.NumLeaves()
}

// Lookup finds a node by its Label.  For a one-symbol alphabet the root is
// also reachable as "n0".
func (t *Tree) Lookup(label string) (Node, bool) {
	index, found := t.labels[label]
	if !found {
		return Node{}, false
	}
	return t.nodes[index], true
}

// Walk visits every node depth-first, parents before children and left
// subtrees before right subtrees.  Walk stops as soon as fn returns false.
func (t *Tree) Walk(fn func(index int, n Node) bool) {
	if len(t.nodes) == 0 {
		return
	}

	stack := make([]int, 0, 2*log2uint(uint(len(t.nodes))))
	stack = append(stack, t.root)
	for len(stack) != 0 {
		last := len(stack) - 1
		index := stack[last]
		stack = stack[:last]

		n := t.nodes[index]
		if !fn(index, n) {
			return
		}
		if !n.IsLeaf() {
			stack = append(stack, n.Right, n.Left)
		}
	}
}
