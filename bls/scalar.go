package bls

import (
	"math/big"

	"github.com/NethermindEth/blsserde/serde"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ScalarSize is the length of the canonical Scalar encoding.
const ScalarSize = fr.Bytes

const errScalarParse = "couldn't parse Scalar bytes"

// Scalar is an element of the BLS12-381 scalar field.
type Scalar struct {
	val fr.Element
}

func NewScalar(element *fr.Element) *Scalar {
	return &Scalar{
		val: *element,
	}
}

// Impl returns the underlying field element type
func (z *Scalar) Impl() *fr.Element {
	return &z.val
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Scalar) SetUint64(v uint64) *Scalar {
	z.val.SetUint64(v)
	return z
}

// SetBigInt forwards the call to underlying field element implementation
func (z *Scalar) SetBigInt(v *big.Int) *Scalar {
	z.val.SetBigInt(v)
	return z
}

// SetString forwards the call to underlying field element implementation
func (z *Scalar) SetString(number string) (*Scalar, error) {
	_, err := z.val.SetString(number)
	return z, err
}

// SetRandom forwards the call to underlying field element implementation
func (z *Scalar) SetRandom() (*Scalar, error) {
	_, err := z.val.SetRandom()
	return z, err
}

// BigInt forwards the call to underlying field element implementation
func (z *Scalar) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// String forwards the call to underlying field element implementation
func (z *Scalar) String() string {
	return z.val.String()
}

// Equal forwards the call to underlying field element implementation
func (z *Scalar) Equal(x *Scalar) bool {
	return z.val.Equal(&x.val)
}

// IsZero forwards the call to underlying field element implementation
func (z *Scalar) IsZero() bool {
	return z.val.IsZero()
}

// Bytes returns the 32 byte little-endian canonical encoding.
func (z *Scalar) Bytes() [ScalarSize]byte {
	var buf [ScalarSize]byte
	fr.LittleEndian.PutElement(&buf, z.val)
	return buf
}

// SetBytesCanonical sets z from its canonical encoding. z is left untouched on error.
func (z *Scalar) SetBytesCanonical(data []byte) error {
	s, err := DecodeScalar(data)
	if err != nil {
		return err
	}
	*z = s
	return nil
}

// EncodeScalar returns the canonical encoding of s.
func EncodeScalar(s *Scalar) [ScalarSize]byte {
	return s.Bytes()
}

// DecodeScalar parses untrusted bytes into a Scalar. Inputs that are not exactly
// ScalarSize long fail with a DataLength error, values that are not below the field
// modulus fail with a Parsing error.
func DecodeScalar(data []byte) (Scalar, error) {
	if len(data) != ScalarSize {
		return Scalar{}, serde.NewDataLengthError(errDataLength)
	}
	var buf [ScalarSize]byte
	copy(buf[:], data)

	e, err := fr.LittleEndian.Element(&buf)
	if err != nil {
		return Scalar{}, serde.NewParsingError(errScalarParse)
	}
	return Scalar{val: e}, nil
}

// ScalarCodec is the Codec for Scalar values.
type ScalarCodec struct{}

var _ Codec[Scalar] = ScalarCodec{}

func (ScalarCodec) Size() int {
	return ScalarSize
}

func (ScalarCodec) Encode(s Scalar) []byte {
	b := s.Bytes()
	return b[:]
}

func (ScalarCodec) Decode(data []byte) (Scalar, error) {
	return DecodeScalar(data)
}
