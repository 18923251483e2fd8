// Package hufftree builds Huffman codes from symbol frequency tables and uses
// them to encode symbol sequences into strings of '0' and '1' characters and
// to decode them again.
//
// The tree is built greedily by repeatedly merging the two lightest nodes.
// Codes are the paths from the root to each leaf, with '0' for a left edge
// and '1' for a right edge, so no code is a prefix of another.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package hufftree
