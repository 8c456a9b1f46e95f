package bls

import (
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NethermindEth/blsserde/encoder"
	"github.com/NethermindEth/blsserde/serde"
	"github.com/fxamacker/cbor/v2"
)

var (
	_ encoding.BinaryMarshaler   = Scalar{}
	_ encoding.BinaryUnmarshaler = (*Scalar)(nil)
	_ cbor.Marshaler             = Scalar{}
	_ cbor.Unmarshaler           = (*Scalar)(nil)
	_ json.Marshaler             = Scalar{}
	_ json.Unmarshaler           = (*Scalar)(nil)

	_ encoding.BinaryMarshaler   = G1Affine{}
	_ encoding.BinaryUnmarshaler = (*G1Affine)(nil)
	_ cbor.Marshaler             = G1Affine{}
	_ cbor.Unmarshaler           = (*G1Affine)(nil)
	_ json.Marshaler             = G1Affine{}
	_ json.Unmarshaler           = (*G1Affine)(nil)
)

func (z Scalar) MarshalBinary() ([]byte, error) {
	b := z.Bytes()
	return b[:], nil
}

func (z *Scalar) UnmarshalBinary(data []byte) error {
	return z.SetBytesCanonical(data)
}

// MarshalCBOR writes the canonical encoding as a CBOR byte string.
func (z Scalar) MarshalCBOR() ([]byte, error) {
	b := z.Bytes()
	return marshalByteString(b[:])
}

// UnmarshalCBOR reads a CBOR byte string and decodes it with DecodeScalar.
func (z *Scalar) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalByteString(data)
	if err != nil {
		return err
	}
	s, err := DecodeScalar(b)
	if err != nil {
		return fmt.Errorf("couldn't deserialize Scalar bytes: %w", err)
	}
	*z = s
	return nil
}

// MarshalJSON writes the canonical encoding as a 0x prefixed hex string.
func (z Scalar) MarshalJSON() ([]byte, error) {
	b := z.Bytes()
	return marshalHexString(b[:])
}

// UnmarshalJSON accepts a hex string, with or without the 0x prefix.
func (z *Scalar) UnmarshalJSON(data []byte) error {
	b, err := unmarshalHexString(data)
	if err != nil {
		return err
	}
	s, err := DecodeScalar(b)
	if err != nil {
		return fmt.Errorf("couldn't deserialize Scalar bytes: %w", err)
	}
	*z = s
	return nil
}

func (p G1Affine) MarshalBinary() ([]byte, error) {
	b := p.Bytes()
	return b[:], nil
}

func (p *G1Affine) UnmarshalBinary(data []byte) error {
	return p.SetBytesCanonical(data)
}

// MarshalCBOR writes the compressed encoding as a CBOR byte string.
func (p G1Affine) MarshalCBOR() ([]byte, error) {
	b := p.Bytes()
	return marshalByteString(b[:])
}

// UnmarshalCBOR reads a CBOR byte string and decodes it with DecodeG1Affine.
func (p *G1Affine) UnmarshalCBOR(data []byte) error {
	b, err := unmarshalByteString(data)
	if err != nil {
		return err
	}
	q, err := DecodeG1Affine(b)
	if err != nil {
		return fmt.Errorf("couldn't deserialize G1Affine bytes: %w", err)
	}
	*p = q
	return nil
}

// MarshalJSON writes the compressed encoding as a 0x prefixed hex string.
func (p G1Affine) MarshalJSON() ([]byte, error) {
	b := p.Bytes()
	return marshalHexString(b[:])
}

// UnmarshalJSON accepts a hex string, with or without the 0x prefix.
func (p *G1Affine) UnmarshalJSON(data []byte) error {
	b, err := unmarshalHexString(data)
	if err != nil {
		return err
	}
	q, err := DecodeG1Affine(b)
	if err != nil {
		return fmt.Errorf("couldn't deserialize G1Affine bytes: %w", err)
	}
	*p = q
	return nil
}

func marshalByteString(b []byte) ([]byte, error) {
	data, err := encoder.Marshal(b)
	if err != nil {
		return nil, serde.FromMessage(err.Error())
	}
	return data, nil
}

func unmarshalByteString(data []byte) ([]byte, error) {
	var b []byte
	if err := encoder.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func marshalHexString(b []byte) ([]byte, error) {
	data, err := json.Marshal("0x" + hex.EncodeToString(b))
	if err != nil {
		return nil, serde.FromMessage(err.Error())
	}
	return data, nil
}

func unmarshalHexString(data []byte) ([]byte, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, serde.Wrap(err)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, serde.Wrap(err)
	}
	return b, nil
}
