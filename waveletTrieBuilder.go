package wavelettrie

import (
	"github.com/AlexWan0/go-wavelettrie/bitvec"
	"go.uber.org/zap"
)

// Builder collects sequences and builds a Trie from them in one pass.
// A user calls PushBack()s followed by Build().
type Builder struct {
	seqs []*bitvec.BitVector
	opts []Option
}

// NewBuilder returns a Builder whose Trie is constructed with opts.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// PushBack adds seq as the next occurrence.
func (b *Builder) PushBack(seq *bitvec.BitVector) {
	b.seqs = append(b.seqs, seq)
}

// Build returns a Trie holding every sequence pushed so far, in order.
func (b *Builder) Build() (*Trie, error) {
	return FromSequences(b.seqs, b.opts...)
}

// FromSequences builds a Trie whose occurrences are seqs, in order.
// It fails with a PrefixConflictError if seqs is not prefix-free.
func FromSequences(seqs []*bitvec.BitVector, opts ...Option) (*Trie, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(seqs))
	for i := range ids {
		ids[i] = uint64(i)
	}
	root, err := build(seqs, ids, 0)
	if err != nil {
		t.log.Debug("build rejected", zap.Error(err))
		return nil, err
	}
	t.root = root
	t.log.Debug("built trie", zap.Int("sequences", len(seqs)))
	return t, nil
}

// build partitions seqs top-down: the common prefix stays in this node, the
// bit following it sends each sequence left or right. ids are the positions of
// seqs in the original batch, used in errors.
func build(seqs []*bitvec.BitVector, ids []uint64, depth int) (*dynNode, error) {
	if len(seqs) == 0 {
		return emptyNode(), nil
	}
	first := seqs[0]
	allEqual := true
	for _, seq := range seqs[1:] {
		if !seq.Equal(first) {
			allEqual = false
			break
		}
	}
	if allEqual {
		return leafNode(first.Copy(), uint64(len(seqs))), nil
	}

	prefix := first
	for _, seq := range seqs[1:] {
		prefix = prefix.LongestCommonPrefix(seq)
	}
	n := &dynNode{prefix: prefix, positions: bitvec.New()}

	var leftSeqs, rightSeqs []*bitvec.BitVector
	var leftIDs, rightIDs []uint64
	for i, seq := range seqs {
		if seq.Len() == prefix.Len() {
			return nil, &PrefixConflictError{Index: ids[i], Depth: depth, Reason: SequenceIsPrefix}
		}
		bit, suffix := seq.DifferentSuffix(prefix.Len())
		n.positions.Push(bit)
		if bit {
			rightSeqs = append(rightSeqs, suffix)
			rightIDs = append(rightIDs, ids[i])
		} else {
			leftSeqs = append(leftSeqs, suffix)
			leftIDs = append(leftIDs, ids[i])
		}
	}

	var err error
	if n.left, err = build(leftSeqs, leftIDs, depth+1); err != nil {
		return nil, err
	}
	if n.right, err = build(rightSeqs, rightIDs, depth+1); err != nil {
		return nil, err
	}
	return n, nil
}
