package bls

import (
	"math/big"

	"github.com/NethermindEth/blsserde/serde"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1Size is the length of the compressed G1Affine encoding.
const G1Size = bls12381.SizeOfG1AffineCompressed

const errG1Parse = "couldn't parse G1Affine bytes"

// G1Affine is a point of the BLS12-381 G1 group in affine coordinates.
// The zero value is the point at infinity.
type G1Affine struct {
	val bls12381.G1Affine
}

func NewG1Affine(p *bls12381.G1Affine) *G1Affine {
	return &G1Affine{
		val: *p,
	}
}

// G1Generator returns the standard generator of G1.
func G1Generator() G1Affine {
	_, _, g1, _ := bls12381.Generators()
	return G1Affine{val: g1}
}

// Impl returns the underlying curve point type
func (p *G1Affine) Impl() *bls12381.G1Affine {
	return &p.val
}

// ScalarMultiplicationBase sets p to s times the G1 generator.
func (p *G1Affine) ScalarMultiplicationBase(s *Scalar) *G1Affine {
	g := G1Generator()
	p.val.ScalarMultiplication(&g.val, s.BigInt(new(big.Int)))
	return p
}

// Equal forwards the call to underlying curve point implementation
func (p *G1Affine) Equal(q *G1Affine) bool {
	return p.val.Equal(&q.val)
}

// IsInfinity forwards the call to underlying curve point implementation
func (p *G1Affine) IsInfinity() bool {
	return p.val.IsInfinity()
}

// String forwards the call to underlying curve point implementation
func (p *G1Affine) String() string {
	return p.val.String()
}

// Bytes returns the 48 byte compressed encoding.
func (p *G1Affine) Bytes() [G1Size]byte {
	return p.val.Bytes()
}

// SetBytesCanonical sets p from its compressed encoding. p is left untouched on error.
func (p *G1Affine) SetBytesCanonical(data []byte) error {
	q, err := DecodeG1Affine(data)
	if err != nil {
		return err
	}
	*p = q
	return nil
}

// EncodeG1Affine returns the compressed encoding of p.
func EncodeG1Affine(p *G1Affine) [G1Size]byte {
	return p.Bytes()
}

// DecodeG1Affine parses untrusted bytes into a G1 point. Inputs that are not
// exactly G1Size long fail with a DataLength error. Bad compression flags, points
// off the curve and points outside the prime order subgroup fail with a Parsing error.
func DecodeG1Affine(data []byte) (G1Affine, error) {
	if len(data) != G1Size {
		return G1Affine{}, serde.NewDataLengthError(errDataLength)
	}
	var buf [G1Size]byte
	copy(buf[:], data)

	var p G1Affine
	if _, err := p.val.SetBytes(buf[:]); err != nil {
		return G1Affine{}, serde.NewParsingError(errG1Parse)
	}
	return p, nil
}

// PointCodec is the Codec for G1Affine values.
type PointCodec struct{}

var _ Codec[G1Affine] = PointCodec{}

func (PointCodec) Size() int {
	return G1Size
}

func (PointCodec) Encode(p G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (PointCodec) Decode(data []byte) (G1Affine, error) {
	return DecodeG1Affine(data)
}
