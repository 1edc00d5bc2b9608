package bitvec

import "math/bits"

// IsPrefixOf reports whether v is a prefix of other.
// An empty vector is a prefix of every vector, and every vector is a prefix of itself.
func (v *BitVector) IsPrefixOf(other *BitVector) bool {
	if v.num > other.num {
		return false
	}
	return v.commonLen(other) == v.num
}

// commonLen returns the length of the longest run on which v and other agree,
// bounded by the shorter of the two.
func (v *BitVector) commonLen(other *BitVector) uint64 {
	limit := min(v.num, other.num)
	for w := uint64(0); w<<wordShift < limit; w++ {
		if x := v.words[w] ^ other.words[w]; x != 0 {
			return min(w<<wordShift+uint64(bits.LeadingZeros64(x)), limit)
		}
	}
	return limit
}

// LongestCommonPrefix returns the <common prefix> part of
// <common prefix><different bit><different suffix> as used by the wavelet trie
// of Grossi and Ottaviano.
//
// Note that for identical vectors the whole vector is returned,
// not the vector minus its last bit.
func (v *BitVector) LongestCommonPrefix(other *BitVector) *BitVector {
	if v.Equal(other) {
		return v.Copy()
	}
	lcp := v.Copy()
	lcp.Truncate(v.commonLen(other))
	return lcp
}

// DifferentSuffix splits v after its first n bits: it returns B[n], the
// diverging bit, and a new vector holding B[n+1...num).
// Panics if n >= Len().
func (v *BitVector) DifferentSuffix(n uint64) (bool, *BitVector) {
	if n >= v.num {
		panic(&IndexError{Op: "different_suffix", Index: n, Len: v.num})
	}
	bit, _ := v.Get(n)
	return bit, v.Slice(n+1, v.num)
}

// Slice returns a new vector holding B[from...to).
// Panics unless from <= to <= Len().
func (v *BitVector) Slice(from, to uint64) *BitVector {
	if from > to || to > v.num {
		panic(&IndexError{Op: "slice", Index: to, Len: v.num})
	}
	n := to - from
	out := &BitVector{
		words: make([]uint64, wordsFor(n)),
		num:   n,
	}
	w, off := from>>wordShift, from&wordMask
	for i := range out.words {
		word := v.words[w+uint64(i)] << off
		if off != 0 && w+uint64(i)+1 < uint64(len(v.words)) {
			word |= v.words[w+uint64(i)+1] >> (wordBits - off)
		}
		out.words[i] = word
	}
	out.clearTail()
	return out
}
