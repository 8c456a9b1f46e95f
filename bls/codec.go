// Package bls holds the fixed-size byte codecs for BLS12-381 scalars and G1 points.
//
// Encoding is total and deterministic. Decoding accepts untrusted input and returns
// either a valid value or a *serde.Error: DataLength when the input size is wrong,
// Parsing when the bytes are not a canonical encoding of a valid value.
package bls

const errDataLength = "incorrect data length"

// Codec converts values of V to and from their fixed-size byte encoding.
type Codec[V any] interface {
	// Size is the exact length of every encoding.
	Size() int
	Encode(v V) []byte
	Decode(data []byte) (V, error)
}
