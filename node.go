package wavelettrie

import "github.com/AlexWan0/go-wavelettrie/bitvec"

// bitmap is the rank/select surface a node's positions must offer.
// The dynamic trie uses *bitvec.BitVector, the frozen one an rsdic dictionary.
type bitmap interface {
	Len() uint64
	Get(i uint64) (bool, bool)
	Rank(bit bool, pos uint64) uint64
	Select(bit bool, k uint64) (uint64, bool)
}

// node is one level of the trie.
//
// Every occurrence routed through a node has prefix as its leading bits.
// positions holds one bit per occurrence: the bit following prefix, which selects
// the child it continues in. In a leaf the prefix is the whole remaining value and
// positions only counts occurrences (all bits zero).
// Either both children are set or neither is.
type node[B bitmap] struct {
	prefix    *bitvec.BitVector // α
	positions B                 // β
	left      *node[B]
	right     *node[B]
}

func (n *node[B]) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (n *node[B]) child(bit bool) *node[B] {
	if bit {
		return n.right
	}
	return n.left
}

func (n *node[B]) setChild(bit bool, c *node[B]) {
	if bit {
		n.right = c
	} else {
		n.left = c
	}
}

// rank counts the occurrences among the first index at this node
// that equal seq or start with it.
func (n *node[B]) rank(seq *bitvec.BitVector, index uint64) (uint64, bool) {
	for {
		switch {
		case seq.IsEmpty() || seq.Equal(n.prefix):
			return index, true
		case seq.Len() < n.prefix.Len():
			if seq.IsPrefixOf(n.prefix) {
				return index, true
			}
			return 0, false
		case !n.prefix.IsPrefixOf(seq):
			return 0, false
		}
		bit, suffix := seq.DifferentSuffix(n.prefix.Len())
		index = n.positions.Rank(bit, index)
		c := n.child(bit)
		if c == nil {
			// a leaf: the peeled value is all this branch holds
			return index, true
		}
		n, seq = c, suffix
	}
}

// access rebuilds the value of occurrence index.
func (n *node[B]) access(index uint64) *bitvec.BitVector {
	out := bitvec.New()
	for depth := 0; ; depth++ {
		out.Append(n.prefix.Copy())
		if n.isLeaf() {
			return out
		}
		bit, _ := n.positions.Get(index)
		out.Push(bit)
		index = n.positions.Rank(bit, index)
		c := n.child(bit)
		if c == nil {
			panic(&InvariantError{Depth: depth, Index: index})
		}
		n = c
	}
}

// selectPos returns the position of the k-th (1-origin) occurrence at this node
// that equals seq or starts with it.
func (n *node[B]) selectPos(seq *bitvec.BitVector, k uint64, depth int) (uint64, bool) {
	if seq.IsEmpty() || seq.IsPrefixOf(n.prefix) {
		if k == 0 || k > n.positions.Len() {
			return 0, false
		}
		return k - 1, true
	}
	if n.isLeaf() || !n.prefix.IsPrefixOf(seq) {
		return 0, false
	}
	bit, suffix := seq.DifferentSuffix(n.prefix.Len())
	c := n.child(bit)
	if c == nil {
		panic(&InvariantError{Depth: depth, Index: k})
	}
	pos, ok := c.selectPos(suffix, k, depth+1)
	if !ok {
		return 0, false
	}
	return n.positions.Select(bit, pos+1)
}

// walk visits the nodes in pre-order.
func (n *node[B]) walk(depth int, fn func(n *node[B], depth int)) {
	fn(n, depth)
	if n.left != nil {
		n.left.walk(depth+1, fn)
	}
	if n.right != nil {
		n.right.walk(depth+1, fn)
	}
}
