package wavelettrie

import (
	"github.com/AlexWan0/go-wavelettrie/bitvec"
	"github.com/hillbig/rsdic"
)

// succinct adapts an rsdic.RSDic to the bitmap a node needs.
type succinct struct {
	rs *rsdic.RSDic
}

func (s succinct) Len() uint64 {
	return s.rs.Num()
}

func (s succinct) Get(i uint64) (bool, bool) {
	if i >= s.rs.Num() {
		return false, false
	}
	return s.rs.Bit(i), true
}

func (s succinct) Rank(bit bool, pos uint64) uint64 {
	if pos > s.rs.Num() {
		panic(&bitvec.IndexError{Op: "rank", Index: pos, Len: s.rs.Num()})
	}
	return s.rs.Rank(pos, bit)
}

// Select is 1-origin like bitvec.BitVector.Select; rsdic counts from 0.
func (s succinct) Select(bit bool, k uint64) (uint64, bool) {
	total := s.rs.OneNum()
	if !bit {
		total = s.rs.ZeroNum()
	}
	if k == 0 || k > total {
		return 0, false
	}
	return s.rs.Select(k-1, bit), true
}

type staticNode = node[succinct]

// Static is a read-only wavelet trie whose positions are compressed
// rank/select dictionaries. Build one with Trie.Freeze.
type Static struct {
	root *staticNode
}

// Freeze returns a Static answering the same queries as t at this moment.
// Later changes to t are not reflected.
func (t *Trie) Freeze() *Static {
	return &Static{root: freeze(t.top())}
}

func freeze(n *dynNode) *staticNode {
	rs := rsdic.New()
	for i := uint64(0); i < n.positions.Len(); i++ {
		bit, _ := n.positions.Get(i)
		rs.PushBack(bit)
	}
	s := &staticNode{prefix: n.prefix.Copy(), positions: succinct{rs}}
	if n.left != nil {
		s.left = freeze(n.left)
	}
	if n.right != nil {
		s.right = freeze(n.right)
	}
	return s
}

// Len returns the number of occurrences stored.
func (s *Static) Len() uint64 {
	return s.root.positions.Len()
}

// Rank is Trie.Rank on the frozen trie.
func (s *Static) Rank(seq *bitvec.BitVector, index uint64) (uint64, bool) {
	if index > s.Len() {
		panic(&bitvec.IndexError{Op: "rank", Index: index, Len: s.Len()})
	}
	return s.root.rank(seq, index)
}

// Access is Trie.Access on the frozen trie.
func (s *Static) Access(index uint64) (*bitvec.BitVector, bool) {
	if index >= s.Len() {
		return nil, false
	}
	return s.root.access(index), true
}

// Select is Trie.Select on the frozen trie.
func (s *Static) Select(seq *bitvec.BitVector, k uint64) (uint64, bool) {
	return s.root.selectPos(seq, k, 0)
}

// AllocSize returns the bytes held by the positions dictionaries.
func (s *Static) AllocSize() int {
	size := 0
	s.root.walk(0, func(n *staticNode, _ int) {
		size += n.positions.rs.AllocSize()
	})
	return size
}
