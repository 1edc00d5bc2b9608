package bitvec

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes BitVector into a binary form and returns the result.
func (v *BitVector) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = v.encode(enc)
	return
}

// UnmarshalBinary decodes BitVector from a binary form generated MarshalBinary
func (v *BitVector) UnmarshalBinary(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	return v.decode(dec)
}

func (v *BitVector) encode(enc *codec.Encoder) error {
	if err := enc.Encode(v.num); err != nil {
		return err
	}
	return enc.Encode(v.ToBytes())
}

func (v *BitVector) decode(dec *codec.Decoder) error {
	var num uint64
	if err := dec.Decode(&num); err != nil {
		return err
	}
	var raw []byte
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	want := num / 8
	if num%8 != 0 {
		want++
	}
	if uint64(len(raw)) != want {
		return fmt.Errorf("bitvec: %d bytes cannot hold %d bits", len(raw), num)
	}
	*v = *FromBytes(raw)
	v.Truncate(num)
	return nil
}

// EncodeTo writes v to an existing encoder, so containers can embed vectors
// in their own stream.
func (v *BitVector) EncodeTo(enc *codec.Encoder) error {
	return v.encode(enc)
}

// DecodeFrom reads a vector written by EncodeTo.
func DecodeFrom(dec *codec.Decoder) (*BitVector, error) {
	v := New()
	if err := v.decode(dec); err != nil {
		return nil, err
	}
	return v, nil
}
