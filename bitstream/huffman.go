// This file builds the static Huffman codebook used to encode/decode message
// bytes for protocols Dm66 and later (spec.md §4.1). The codebook is derived
// once, at package init, from a fixed byte-frequency table shared by all
// demos — there is no per-demo adaptation.

package bitstream

import "container/heap"

// staticByteFrequency is the fixed frequency table the codebook is built
// from. The exact distribution is not externally observable (only the
// encode/decode round-trip is), so a smoothly decreasing table is used:
// lower byte values (more common in practice: small deltas, ASCII text)
// get shorter codes.
var staticByteFrequency = func() [256]uint32 {
	var freq [256]uint32
	for i := range freq {
		// Monotonically decreasing, never zero (every byte must be codable).
		freq[i] = uint32(1<<20) / uint32(i+8)
	}
	return freq
}()

// huffNode is one node of the Huffman tree, either a leaf (symbol >= 0) or
// an internal node (left/right indices into the node table).
type huffNode struct {
	weight      uint64
	symbol      int // -1 for internal nodes
	left, right int // indices into the tree's node slice; -1 if none
}

// huffHeapItem/huffHeap implement a priority queue over node indices ordered
// by ascending weight, used to build the tree bottom-up.
type huffHeapItem struct {
	idx    int
	weight uint64
}

type huffHeap []huffHeapItem

func (h huffHeap) Len() int            { return len(h) }
func (h huffHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h huffHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(huffHeapItem)) }
func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// codebook is a built Huffman codebook: per-symbol (bits, length) for
// encoding, plus the tree for decoding.
type codebook struct {
	nodes []huffNode
	root  int

	// code[sym] and codeLen[sym] give the bit pattern (LSB-first, matching
	// Buffer.WriteBits) and its length for each byte value.
	code    [256]uint32
	codeLen [256]byte
}

// buildCodebook constructs a Huffman codebook from a frequency table; each
// symbol's code is its path in the built tree. Every symbol in [0,256) must have a strictly positive frequency.
func buildCodebook(freq [256]uint32) *codebook {
	cb := &codebook{}
	cb.nodes = make([]huffNode, 0, 511)

	h := make(huffHeap, 0, 256)
	for sym, f := range freq {
		idx := len(cb.nodes)
		cb.nodes = append(cb.nodes, huffNode{weight: uint64(f), symbol: sym, left: -1, right: -1})
		heap.Push(&h, huffHeapItem{idx: idx, weight: uint64(f)})
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(huffHeapItem)
		b := heap.Pop(&h).(huffHeapItem)
		idx := len(cb.nodes)
		cb.nodes = append(cb.nodes, huffNode{
			weight: a.weight + b.weight,
			symbol: -1,
			left:   a.idx,
			right:  b.idx,
		})
		heap.Push(&h, huffHeapItem{idx: idx, weight: a.weight + b.weight})
	}
	cb.root = heap.Pop(&h).(huffHeapItem).idx

	var walk func(idx int, code uint32, length byte)
	walk = func(idx int, code uint32, length byte) {
		n := &cb.nodes[idx]
		if n.symbol >= 0 {
			cb.code[n.symbol] = code
			cb.codeLen[n.symbol] = length
			return
		}
		walk(n.left, code, length+1)
		walk(n.right, code|(1<<length), length+1)
	}
	walk(cb.root, 0, 0)

	return cb
}

// staticCodebook is the single codebook shared by all demos of a Huffman-coded
// protocol (spec.md §4.1: "the same for all demos").
var staticCodebook = buildCodebook(staticByteFrequency)
