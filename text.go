package wavelettrie

import (
	"bytes"

	"github.com/AlexWan0/go-wavelettrie/bitvec"
)

// Terminator ends every sequence made by FromText.
const Terminator = 0x00

// FromText encodes s as its bytes followed by Terminator.
// The results are prefix-free as long as s holds no NUL byte.
func FromText(s string) *bitvec.BitVector {
	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	return bitvec.FromBytes(append(b, Terminator))
}

// TextOf reverses FromText. ok is false if v was not made by FromText.
func TextOf(v *bitvec.BitVector) (string, bool) {
	if v.Len()%8 != 0 {
		return "", false
	}
	b := v.ToBytes()
	if len(b) == 0 || b[len(b)-1] != Terminator || bytes.IndexByte(b[:len(b)-1], Terminator) >= 0 {
		return "", false
	}
	return string(b[:len(b)-1]), true
}

// TextPrefix encodes s without the terminator, for prefix rank and select queries.
func TextPrefix(s string) *bitvec.BitVector {
	return bitvec.FromBytes([]byte(s))
}
