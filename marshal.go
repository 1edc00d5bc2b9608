package wavelettrie

import (
	"fmt"

	"github.com/AlexWan0/go-wavelettrie/bitvec"
	"github.com/ugorji/go/codec"
	"go.uber.org/zap"
)

const formatVersion = 1

// MarshalBinary encodes Trie into a binary form and returns the result.
// Nodes are written in pre-order as (internal, prefix, positions).
func (t *Trie) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(formatVersion)
	if err != nil {
		return
	}
	err = encodeNode(enc, t.top())
	return
}

func encodeNode(enc *codec.Encoder, n *dynNode) error {
	if err := enc.Encode(!n.isLeaf()); err != nil {
		return err
	}
	if err := n.prefix.EncodeTo(enc); err != nil {
		return err
	}
	if err := n.positions.EncodeTo(enc); err != nil {
		return err
	}
	if n.isLeaf() {
		return nil
	}
	if err := encodeNode(enc, n.left); err != nil {
		return err
	}
	return encodeNode(enc, n.right)
}

// UnmarshalBinary decodes Trie from a binary form generated MarshalBinary.
// The decoded structure is checked; malformed input yields ErrCorrupt.
func (t *Trie) UnmarshalBinary(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	version := 0
	if err := dec.Decode(&version); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if version != formatVersion {
		return fmt.Errorf("%w: unknown format version %d", ErrCorrupt, version)
	}
	root, err := decodeNode(dec, 0)
	if err != nil {
		return err
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	t.root = root
	return nil
}

func decodeNode(dec *codec.Decoder, depth int) (*dynNode, error) {
	var internal bool
	if err := dec.Decode(&internal); err != nil {
		return nil, fmt.Errorf("%w: depth %d: %v", ErrCorrupt, depth, err)
	}
	prefix, err := bitvec.DecodeFrom(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: depth %d prefix: %v", ErrCorrupt, depth, err)
	}
	positions, err := bitvec.DecodeFrom(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: depth %d positions: %v", ErrCorrupt, depth, err)
	}
	n := &dynNode{prefix: prefix, positions: positions}
	if !internal {
		if !positions.None() {
			return nil, fmt.Errorf("%w: depth %d: leaf with routing bits", ErrCorrupt, depth)
		}
		if depth == 0 && positions.IsEmpty() && !prefix.IsEmpty() {
			return nil, fmt.Errorf("%w: empty trie with a prefix", ErrCorrupt)
		}
		return n, nil
	}
	if n.left, err = decodeNode(dec, depth+1); err != nil {
		return nil, err
	}
	if n.right, err = decodeNode(dec, depth+1); err != nil {
		return nil, err
	}
	zeros := positions.Rank(false, positions.Len())
	if n.left.positions.Len() != zeros || n.right.positions.Len() != positions.Len()-zeros {
		return nil, fmt.Errorf("%w: depth %d: child counts do not match positions", ErrCorrupt, depth)
	}
	return n, nil
}
