// Package bitvec provides a growable bit vector
// supporting rank/select, arbitrary-position insert/delete
// and the prefix relations a wavelet trie is built from.
package bitvec

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/hideo55/go-popcount"
)

const (
	wordBits  = 64
	wordShift = 6
	wordMask  = wordBits - 1
	allOnes   = ^uint64(0)
)

// BitVector is a sequence of bits B[0...num).
//
// Bits are packed MSB-first into 64-bit words, so B[0] is the most significant
// bit of the first word. Bits of the last word beyond num are always zero.
//
// Insert and Delete shift the tail word by word and are O(num).
type BitVector struct {
	words []uint64
	num   uint64
}

// New returns an empty bit vector.
func New() *BitVector {
	return &BitVector{}
}

// FromElem returns a bit vector holding n copies of bit.
func FromElem(n uint64, bit bool) *BitVector {
	v := &BitVector{
		words: make([]uint64, wordsFor(n)),
		num:   n,
	}
	if bit {
		for i := range v.words {
			v.words[i] = allOnes
		}
		v.clearTail()
	}
	return v
}

// FromBytes returns a bit vector of 8*len(b) bits.
// Within each byte the most significant bit comes first.
func FromBytes(b []byte) *BitVector {
	n := uint64(len(b)) * 8
	v := &BitVector{
		words: make([]uint64, wordsFor(n)),
		num:   n,
	}
	for i, c := range b {
		v.words[i>>3] |= uint64(c) << (56 - 8*uint(i&7))
	}
	return v
}

// Parse reads a bit vector written as '0' and '1' runes.
// Underscores are skipped so long vectors can be grouped, e.g. "0101_1100".
func Parse(s string) (*BitVector, error) {
	v := New()
	for i, r := range s {
		switch r {
		case '0':
			v.Push(false)
		case '1':
			v.Push(true)
		case '_':
		default:
			return nil, fmt.Errorf("bitvec: invalid rune %q at offset %d", r, i)
		}
	}
	return v, nil
}

func wordsFor(n uint64) uint64 {
	return (n + wordMask) >> wordShift
}

// mask of the bit at pos within its word
func bitMask(pos uint64) uint64 {
	return uint64(1) << (wordMask - pos&wordMask)
}

// clearTail zeroes the unused bits of the last word.
func (v *BitVector) clearTail() {
	if rem := v.num & wordMask; rem != 0 {
		v.words[len(v.words)-1] &= ^(allOnes >> rem)
	}
}

// Len returns the number of bits.
func (v *BitVector) Len() uint64 {
	return v.num
}

// IsEmpty reports whether the vector holds no bits.
func (v *BitVector) IsEmpty() bool {
	return v.num == 0
}

// Get returns B[i]. ok is false if i is out of range.
func (v *BitVector) Get(i uint64) (bit bool, ok bool) {
	if i >= v.num {
		return false, false
	}
	return v.words[i>>wordShift]&bitMask(i) != 0, true
}

// Set assigns B[i] = bit. Panics if i >= Len().
func (v *BitVector) Set(i uint64, bit bool) {
	if i >= v.num {
		panic(&IndexError{Op: "set", Index: i, Len: v.num})
	}
	v.set(i, bit)
}

func (v *BitVector) set(i uint64, bit bool) {
	if bit {
		v.words[i>>wordShift] |= bitMask(i)
	} else {
		v.words[i>>wordShift] &^= bitMask(i)
	}
}

// Push appends bit at the end.
func (v *BitVector) Push(bit bool) {
	if v.num&wordMask == 0 {
		v.words = append(v.words, 0)
	}
	v.num++
	if bit {
		v.set(v.num-1, true)
	}
}

// Pop removes the last bit and returns it. ok is false if the vector is empty.
func (v *BitVector) Pop() (bit bool, ok bool) {
	if v.num == 0 {
		return false, false
	}
	bit, _ = v.Get(v.num - 1)
	v.Truncate(v.num - 1)
	return bit, true
}

// Insert puts bit at position i, shifting B[i...num) one position towards the end.
// Panics if i > Len().
func (v *BitVector) Insert(i uint64, bit bool) {
	if i > v.num {
		panic(&IndexError{Op: "insert", Index: i, Len: v.num})
	}
	v.Push(false)
	w := i >> wordShift
	for j := uint64(len(v.words)) - 1; j > w; j-- {
		v.words[j] = v.words[j]>>1 | v.words[j-1]<<wordMask
	}
	keep := allOnes >> (i & wordMask)
	word := v.words[w]
	v.words[w] = word&^keep | (word&keep)>>1
	v.set(i, bit)
}

// Delete removes B[i], shifting B[i+1...num) one position towards the beginning.
// Panics if i >= Len().
func (v *BitVector) Delete(i uint64) {
	if i >= v.num {
		panic(&IndexError{Op: "delete", Index: i, Len: v.num})
	}
	w := i >> wordShift
	last := uint64(len(v.words)) - 1
	keep := allOnes >> (i & wordMask)
	word := v.words[w]
	shifted := (word << 1) & keep
	if w < last {
		shifted |= v.words[w+1] >> wordMask
	}
	v.words[w] = word&^keep | shifted
	for j := w + 1; j <= last; j++ {
		v.words[j] <<= 1
		if j < last {
			v.words[j] |= v.words[j+1] >> wordMask
		}
	}
	v.Truncate(v.num - 1)
}

// Append concatenates other after v. other is consumed and left empty.
func (v *BitVector) Append(other *BitVector) {
	if other == nil {
		return
	}
	if other == v {
		other = v.Copy()
	}
	off := v.num & wordMask
	if off == 0 {
		v.words = append(v.words, other.words...)
	} else {
		for _, word := range other.words {
			v.words[len(v.words)-1] |= word >> off
			v.words = append(v.words, word<<(wordBits-off))
		}
	}
	v.num += other.num
	v.words = v.words[:wordsFor(v.num)]
	v.clearTail()
	other.words, other.num = nil, 0
}

// Truncate shortens the vector to n bits. It is a no-op if n >= Len().
func (v *BitVector) Truncate(n uint64) {
	if n >= v.num {
		return
	}
	v.num = n
	v.words = v.words[:wordsFor(n)]
	v.clearTail()
}

// Rank returns the number of bit's in B[0...pos). Panics if pos > Len().
func (v *BitVector) Rank(bit bool, pos uint64) uint64 {
	if pos > v.num {
		panic(&IndexError{Op: "rank", Index: pos, Len: v.num})
	}
	ones := uint64(0)
	full := pos >> wordShift
	for _, word := range v.words[:full] {
		ones += popcount.Count(word)
	}
	if rem := pos & wordMask; rem != 0 {
		ones += popcount.Count(v.words[full] & ^(allOnes >> rem))
	}
	if bit {
		return ones
	}
	return pos - ones
}

// Select returns the position of the k-th (1-origin) occurrence of bit.
// ok is false if k == 0 or fewer than k bit's exist.
func (v *BitVector) Select(bit bool, k uint64) (pos uint64, ok bool) {
	if k == 0 {
		return 0, false
	}
	for w, word := range v.words {
		if !bit {
			word = ^word
			if uint64(w) == uint64(len(v.words))-1 {
				if rem := v.num & wordMask; rem != 0 {
					word &= ^(allOnes >> rem)
				}
			}
		}
		cnt := popcount.Count(word)
		if cnt < k {
			k -= cnt
			continue
		}
		for ; ; k-- {
			lead := uint64(bits.LeadingZeros64(word))
			if k == 1 {
				return uint64(w)<<wordShift + lead, true
			}
			word &^= uint64(1) << (wordMask - lead)
		}
	}
	return 0, false
}

// All reports whether every bit is set. True for an empty vector.
func (v *BitVector) All() bool {
	return v.Rank(true, v.num) == v.num
}

// None reports whether no bit is set. True for an empty vector.
func (v *BitVector) None() bool {
	for _, word := range v.words {
		if word != 0 {
			return false
		}
	}
	return true
}

// SetNone clears every bit, keeping the length.
func (v *BitVector) SetNone() {
	for i := range v.words {
		v.words[i] = 0
	}
}

// ToBytes returns the bits packed MSB-first into ceil(Len()/8) bytes.
// Trailing pad bits are zero.
func (v *BitVector) ToBytes() []byte {
	out := make([]byte, (v.num+7)/8)
	for i := range out {
		out[i] = byte(v.words[i>>3] >> (56 - 8*uint(i&7)))
	}
	return out
}

// Copy returns a deep copy of v.
func (v *BitVector) Copy() *BitVector {
	words := make([]uint64, len(v.words))
	copy(words, v.words)
	return &BitVector{words: words, num: v.num}
}

// Equal reports whether v and other hold the same bits.
func (v *BitVector) Equal(other *BitVector) bool {
	if v.num != other.num {
		return false
	}
	for i, word := range v.words {
		if word != other.words[i] {
			return false
		}
	}
	return true
}

// String renders the bits as '0' and '1' runes.
func (v *BitVector) String() string {
	var sb strings.Builder
	sb.Grow(int(v.num))
	for i := uint64(0); i < v.num; i++ {
		if v.words[i>>wordShift]&bitMask(i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
