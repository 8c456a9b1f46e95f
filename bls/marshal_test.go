package bls_test

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/NethermindEth/blsserde/bls"
	"github.com/NethermindEth/blsserde/encoder"
	"github.com/NethermindEth/blsserde/serde"
	"github.com/fxamacker/cbor/v2"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyShare struct {
	Index  uint64
	Secret bls.Scalar
	Public bls.G1Affine
}

func TestCBORByteString(t *testing.T) {
	one := new(bls.Scalar).SetUint64(1)
	data, err := encoder.Marshal(one)
	require.NoError(t, err)

	// major type 2 with a one byte length of 32
	expected := append([]byte{0x58, bls.ScalarSize, 0x01}, make([]byte, bls.ScalarSize-1)...)
	assert.Equal(t, expected, data)

	g := bls.G1Generator()
	data, err = encoder.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, "5830"+generatorCompressed, hex.EncodeToString(data))
}

func TestCBORSymmetry(t *testing.T) {
	encoder.TestSymmetry(t, randomScalar(t))
	encoder.TestSymmetry(t, randomPoint(t))
	encoder.TestSymmetry(t, keyShare{
		Index:  3,
		Secret: randomScalar(t),
		Public: randomPoint(t),
	})
}

func TestCBORPlainLibrary(t *testing.T) {
	in := keyShare{Index: 1, Secret: randomScalar(t), Public: randomPoint(t)}
	data, err := cbor.Marshal(in)
	require.NoError(t, err)

	var out keyShare
	require.NoError(t, cbor.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestCBORErrors(t *testing.T) {
	t.Run("codec errors keep their kind", func(t *testing.T) {
		short, err := encoder.Marshal([]byte{1, 2, 3})
		require.NoError(t, err)

		var s bls.Scalar
		err = encoder.Unmarshal(short, &s)
		assert.ErrorIs(t, err, serde.ErrDataLength)
		assert.True(t, strings.HasPrefix(err.Error(), "couldn't deserialize Scalar bytes: "))

		var p bls.G1Affine
		err = encoder.Unmarshal(short, &p)
		assert.ErrorIs(t, err, serde.ErrDataLength)
		assert.True(t, strings.HasPrefix(err.Error(), "couldn't deserialize G1Affine bytes: "))
	})

	t.Run("invalid values", func(t *testing.T) {
		bad, err := encoder.Marshal(make([]byte, bls.G1Size))
		require.NoError(t, err)

		var p bls.G1Affine
		assert.ErrorIs(t, encoder.Unmarshal(bad, &p), serde.ErrParsing)
	})

	t.Run("framework errors become messages", func(t *testing.T) {
		var s bls.Scalar
		err := encoder.Unmarshal([]byte{0x01}, &s)
		require.Error(t, err)
		assert.Equal(t, serde.Message, serde.KindOf(err))

		var p bls.G1Affine
		err = encoder.Unmarshal([]byte{0x58, bls.G1Size, 0x00}, &p)
		require.Error(t, err)
		assert.Equal(t, serde.Message, serde.KindOf(err))
	})
}

func TestJSON(t *testing.T) {
	one := new(bls.Scalar).SetUint64(1)
	data, err := json.Marshal(one)
	require.NoError(t, err)
	assert.Equal(t, `"0x01`+strings.Repeat("00", bls.ScalarSize-1)+`"`, string(data))

	var s bls.Scalar
	require.NoError(t, json.Unmarshal(data, &s))
	assert.True(t, s.Equal(one))

	g := bls.G1Generator()
	data, err = json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, `"0x`+generatorCompressed+`"`, string(data))

	var p bls.G1Affine
	require.NoError(t, json.Unmarshal([]byte(`"`+generatorCompressed+`"`), &p))
	assert.True(t, p.Equal(&g))

	t.Run("errors", func(t *testing.T) {
		var z bls.Scalar
		assert.Equal(t, serde.Message, serde.KindOf(json.Unmarshal([]byte(`"0xzz"`), &z)))
		assert.Equal(t, serde.Message, serde.KindOf(json.Unmarshal([]byte(`12`), &z)))
		assert.ErrorIs(t, json.Unmarshal([]byte(`"0x01"`), &z), serde.ErrDataLength)
		assert.ErrorIs(t, json.Unmarshal([]byte(`"0x`+strings.Repeat("ff", bls.ScalarSize)+`"`), &z), serde.ErrParsing)
	})
}

func TestCodecInterface(t *testing.T) {
	checkCodec(t, bls.ScalarCodec{}, randomScalar(t))
	checkCodec(t, bls.PointCodec{}, randomPoint(t))
}

func checkCodec[V any](t *testing.T, c bls.Codec[V], v V) {
	t.Helper()
	b := c.Encode(v)
	require.Len(t, b, c.Size())

	decoded, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, b, c.Encode(decoded))

	_, err = c.Decode(b[1:])
	assert.ErrorIs(t, err, serde.ErrDataLength)
}

func TestConcurrentDecode(t *testing.T) {
	s := randomScalar(t)
	p := randomPoint(t)
	sb, pb := s.Bytes(), p.Bytes()

	var wg conc.WaitGroup
	for range 32 {
		wg.Go(func() {
			for range 16 {
				ds, err := bls.DecodeScalar(sb[:])
				assert.NoError(t, err)
				assert.True(t, ds.Equal(&s))

				dp, err := bls.DecodeG1Affine(pb[:])
				assert.NoError(t, err)
				assert.True(t, dp.Equal(&p))

				data, err := encoder.Marshal(keyShare{Secret: s, Public: p})
				assert.NoError(t, err)
				var out keyShare
				assert.NoError(t, encoder.Unmarshal(data, &out))
			}
		})
	}
	wg.Wait()
}
