package wavelettrie

import "github.com/AlexWan0/go-wavelettrie/bitvec"

// Index is the query side shared by Trie and Static.
type Index interface {
	// Len returns the number of occurrences.
	Len() uint64

	// Rank counts occurrences among the first index that equal or start with seq.
	Rank(seq *bitvec.BitVector, index uint64) (uint64, bool)

	// Access returns occurrence index.
	Access(index uint64) (*bitvec.BitVector, bool)

	// Select returns the position of the k-th (1-origin) occurrence that
	// equals or starts with seq.
	Select(seq *bitvec.BitVector, k uint64) (uint64, bool)
}

var (
	_ Index = (*Trie)(nil)
	_ Index = (*Static)(nil)
)
