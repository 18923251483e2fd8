package hufftree

import (
	"math/rand"
	"testing"

	"github.com/icza/huffman"
)

func randomFrequencies(rng *rand.Rand, numSymbols int) Frequencies {
	freqs := make(Frequencies, numSymbols)
	for len(freqs) < numSymbols {
		sym := Symbol('!' + rng.Intn(500))
		freqs[sym] = uint64(1 + rng.Intn(1000))
	}
	return freqs
}

func testTables() map[string]Frequencies {
	rng := rand.New(rand.NewSource(42))
	return map[string]Frequencies{
		"classic":    freqClassic,
		"abra":       freqAbra,
		"spaces":     freqSpaces,
		"ties":       freqTies,
		"two":        {'x': 1, 'y': 100},
		"fibonacci":  {'a': 1, 'b': 1, 'c': 2, 'd': 3, 'e': 5, 'f': 8, 'g': 13, 'h': 21},
		"random-10":  randomFrequencies(rng, 10),
		"random-57":  randomFrequencies(rng, 57),
		"random-200": randomFrequencies(rng, 200),
	}
}

func TestTree_Shape(t *testing.T) {
	for name, freqs := range testTables() {
		t.Run(name, func(t *testing.T) {
			tree := makeTestEncoder(t, freqs).Tree()
			numSymbols := len(freqs)

			if tree.NumLeaves() != numSymbols {
				t.Errorf("expected %d leaves, got %d", numSymbols, tree.NumLeaves())
			}
			if tree.NumInternal() != numSymbols-1 {
				t.Errorf("expected %d internal nodes, got %d", numSymbols-1, tree.NumInternal())
			}
			if tree.Len() != 2*numSymbols-1 {
				t.Errorf("expected %d nodes, got %d", 2*numSymbols-1, tree.Len())
			}

			total, _ := freqs.Total()
			if root := tree.Root(); root.Weight != total {
				t.Errorf("expected root weight %d, got %d", total, root.Weight)
			}

			var visited int
			tree.Walk(func(index int, n Node) bool {
				visited++
				if n.IsLeaf() {
					if n.Weight != freqs[n.Symbol] {
						t.Errorf("leaf %v: expected weight %d", n, freqs[n.Symbol])
					}
					return true
				}
				if n.Left == NoChild || n.Right == NoChild {
					t.Errorf("node %v has only one child", n)
					return true
				}
				left, right := tree.Node(n.Left), tree.Node(n.Right)
				if n.Weight != left.Weight+right.Weight {
					t.Errorf("node %v: weight is not %d + %d", n, left.Weight, right.Weight)
				}
				if n.Symbol != InvalidSymbol {
					t.Errorf("internal node %v carries symbol %#v", n, n.Symbol)
				}
				if left.Code != n.Code+"0" || right.Code != n.Code+"1" {
					t.Errorf("node %v: children have codes %s and %s", n, left.Code, right.Code)
				}
				return true
			})
			if visited != tree.Len() {
				t.Errorf("Walk visited %d nodes, expected %d", visited, tree.Len())
			}
		})
	}
}

func TestTree_Labels(t *testing.T) {
	e := makeTestEncoder(t, freqClassic)
	tree := e.Tree()

	type testRow struct {
		label  string
		weight uint64
		code   Code
	}

	testData := [...]testRow{
		{label: "a", weight: 5, code: "1100"},
		{label: "f", weight: 45, code: "0"},
		{label: "n1", weight: 14, code: "110"},
		{label: "n2", weight: 25, code: "10"},
		{label: "n3", weight: 30, code: "11"},
		{label: "n4", weight: 55, code: "1"},
		{label: "n5", weight: 100, code: ""},
	}
	for _, row := range testData {
		t.Run(row.label, func(t *testing.T) {
			n, found := tree.Lookup(row.label)
			if !found {
				t.Fatalf("node %q not found", row.label)
			}
			if n.Weight != row.weight {
				t.Errorf("expected weight %d, got %d", row.weight, n.Weight)
			}
			if n.Code != row.code {
				t.Errorf("expected code %s, got %s", row.code, n.Code)
			}
		})
	}

	if _, found := tree.Lookup("n6"); found {
		t.Errorf("unexpected node n6")
	}
	if _, found := tree.Lookup("n0"); found {
		t.Errorf("unexpected node n0")
	}
	if tree.Root().Label != "n5" {
		t.Errorf("expected root n5, got %v", tree.Root())
	}
}

func TestTree_WalkOrder(t *testing.T) {
	tree := makeTestEncoder(t, freqClassic).Tree()

	var labels []string
	tree.Walk(func(_ int, n Node) bool {
		labels = append(labels, n.Label)
		return true
	})

	expect := []string{"n5", "f", "n4", "n2", "c", "d", "n3", "n1", "a", "b", "e"}
	if len(labels) != len(expect) {
		t.Fatalf("wrong order:\n\texpect: %v\n\tactual: %v", expect, labels)
	}
	for i := range expect {
		if labels[i] != expect[i] {
			t.Fatalf("wrong order:\n\texpect: %v\n\tactual: %v", expect, labels)
		}
	}

	var count int
	tree.Walk(func(_ int, n Node) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("expected Walk to stop after 3 nodes, visited %d", count)
	}
}

func TestTree_IndependentCounters(t *testing.T) {
	first := makeTestEncoder(t, freqAbra).Tree()
	second := makeTestEncoder(t, freqAbra).Tree()

	if first.Root().Label != "n4" || second.Root().Label != "n4" {
		t.Errorf("expected both roots to be n4, got %q and %q", first.Root().Label, second.Root().Label)
	}
}

// weightedLength is the total number of bits needed to encode every symbol as
// many times as its weight.
func weightedLength(freqs Frequencies, codes map[Symbol]Code) uint64 {
	var sum uint64
	for sym, w := range freqs {
		sum += w * uint64(codes[sym].Len())
	}
	return sum
}

func TestTree_Optimal(t *testing.T) {
	for name, freqs := range testTables() {
		t.Run(name, func(t *testing.T) {
			e := makeTestEncoder(t, freqs)

			leaves := make([]*huffman.Node, 0, len(freqs))
			bySymbol := make(map[Symbol]*huffman.Node, len(freqs))
			for sym, w := range freqs {
				leaf := &huffman.Node{Value: huffman.ValueType(sym), Count: int(w)}
				leaves = append(leaves, leaf)
				bySymbol[sym] = leaf
			}
			huffman.Build(leaves)

			var expect uint64
			for sym, leaf := range bySymbol {
				_, bits := leaf.Code()
				expect += freqs[sym] * uint64(bits)
			}

			actual := weightedLength(freqs, e.Codes())
			if expect != actual {
				t.Errorf("weighted code length is %d, reference builder gives %d", actual, expect)
			}
		})
	}
}
