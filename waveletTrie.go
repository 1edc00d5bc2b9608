// Package wavelettrie provides a wavelet trie: an indexed, compressed sequence
// of prefix-free bit strings supporting insertion at any position and
// rank/select/access queries without decompression.
//
// See R. Grossi, G. Ottaviano "The Wavelet Trie: Maintaining an Indexed
// Sequence of Strings in Compressed Space".
//
// Stored strings must be prefix-free. Text can be made so by appending a
// terminator, see FromText.
package wavelettrie

import (
	"github.com/AlexWan0/go-wavelettrie/bitvec"
	"go.uber.org/zap"
)

type dynNode = node[*bitvec.BitVector]

// Trie is a dynamic wavelet trie. It is not safe for concurrent use.
// The zero value is an empty Trie that does not log.
type Trie struct {
	root *dynNode
	log  *zap.Logger
}

func emptyNode() *dynNode {
	return &dynNode{prefix: bitvec.New(), positions: bitvec.New()}
}

func leafNode(value *bitvec.BitVector, count uint64) *dynNode {
	return &dynNode{prefix: value, positions: bitvec.FromElem(count, false)}
}

// New returns an empty Trie.
func New(opts ...Option) (*Trie, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Trie{root: emptyNode(), log: cfg.Logger}, nil
}

// top returns the root, making the zero value usable.
func (t *Trie) top() *dynNode {
	if t.root == nil {
		t.root = emptyNode()
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t.root
}

// Len returns the number of occurrences stored, duplicates included.
func (t *Trie) Len() uint64 {
	if t.root == nil {
		return 0
	}
	return t.root.positions.Len()
}

// Append inserts seq after the last occurrence.
func (t *Trie) Append(seq *bitvec.BitVector) error {
	return t.Insert(seq, t.Len())
}

// Insert inserts seq so that it becomes occurrence index.
// A PrefixConflictError is returned, and the trie left unchanged, if seq is a
// prefix of a stored sequence or the other way round.
func (t *Trie) Insert(seq *bitvec.BitVector, index uint64) error {
	if index > t.Len() {
		return &IndexError{Index: index, Len: t.Len()}
	}
	root, err := t.insert(t.top(), seq, index, 0)
	if err != nil {
		t.log.Debug("insert rejected", zap.Error(err), zap.Uint64("bits", seq.Len()))
		return err
	}
	t.root = root
	return nil
}

// insert returns the subtree that replaces n. The subtree is only modified
// once the insertion below it has succeeded.
func (t *Trie) insert(n *dynNode, seq *bitvec.BitVector, index uint64, depth int) (*dynNode, error) {
	leaf := n.isLeaf()
	switch {
	case leaf && n.positions.IsEmpty():
		return leafNode(seq.Copy(), 1), nil

	case seq.Len() < n.prefix.Len() && seq.IsPrefixOf(n.prefix):
		return n, &PrefixConflictError{Index: index, Depth: depth, Reason: SequenceIsPrefix}

	case seq.Equal(n.prefix):
		if !leaf {
			return n, &PrefixConflictError{Index: index, Depth: depth, Reason: SequenceIsPrefix}
		}
		n.positions.Insert(index, false)
		return n, nil

	case n.prefix.IsPrefixOf(seq):
		if leaf {
			return n, &PrefixConflictError{Index: index, Depth: depth, Reason: StoredIsPrefix}
		}
		bit, suffix := seq.DifferentSuffix(n.prefix.Len())
		c := n.child(bit)
		if c == nil {
			panic(&InvariantError{Depth: depth, Index: index})
		}
		// rank before index is unaffected by the bit inserted at index
		c, err := t.insert(c, suffix, n.positions.Rank(bit, index), depth+1)
		if err != nil {
			return n, err
		}
		n.positions.Insert(index, bit)
		n.setChild(bit, c)
		return n, nil
	}

	return t.split(n, seq, index, depth), nil
}

// split handles a sequence that diverges from n.prefix before either ends.
// n keeps its children and occurrences one level down, the new sequence
// becomes a leaf beside it.
func (t *Trie) split(n *dynNode, seq *bitvec.BitVector, index uint64, depth int) *dynNode {
	lcp := seq.LongestCommonPrefix(n.prefix)
	oldBit, oldSuffix := n.prefix.DifferentSuffix(lcp.Len())
	newBit, newSuffix := seq.DifferentSuffix(lcp.Len())

	pushed := &dynNode{
		prefix:    oldSuffix,
		positions: n.positions,
		left:      n.left,
		right:     n.right,
	}
	positions := bitvec.FromElem(n.positions.Len(), oldBit)
	positions.Insert(index, newBit)

	s := &dynNode{prefix: lcp, positions: positions}
	s.setChild(oldBit, pushed)
	s.setChild(newBit, leafNode(newSuffix, 1))

	t.log.Debug("split node",
		zap.Int("depth", depth),
		zap.Uint64("lcp", lcp.Len()),
		zap.Uint64("occurrences", positions.Len()))
	return s
}

// Rank returns how many of the first index occurrences equal seq or have seq
// as a prefix. ok is false if no stored sequence can match seq.
// Panics if index > Len().
func (t *Trie) Rank(seq *bitvec.BitVector, index uint64) (count uint64, ok bool) {
	if index > t.Len() {
		panic(&bitvec.IndexError{Op: "rank", Index: index, Len: t.Len()})
	}
	return t.top().rank(seq, index)
}

// Access returns the sequence stored as occurrence index.
func (t *Trie) Access(index uint64) (*bitvec.BitVector, bool) {
	if index >= t.Len() {
		return nil, false
	}
	return t.top().access(index), true
}

// Select returns the position of the k-th (1-origin) occurrence that equals
// seq or has seq as a prefix.
func (t *Trie) Select(seq *bitvec.BitVector, k uint64) (uint64, bool) {
	return t.top().selectPos(seq, k, 0)
}
