package encoder

import (
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/NethermindEth/blsserde/serde"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ts = cbor.NewTagSet()
	// https://www.iana.org/assignments/cbor-tags/cbor-tags.xhtml
	// 65536-15309735 	Unassigned
	tagNum  uint64 = 65536
	encMode cbor.EncMode
	decMode cbor.DecMode

	modesMu sync.RWMutex
)

var initialiseEncoder sync.Once

func initEncAndDecModes() {
	em, err := cbor.CanonicalEncOptions().EncModeWithTags(ts)
	if err != nil {
		panic(err)
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 10485760, // Set to a reasonably high value, 10MiB
	}.DecModeWithTags(ts)
	if err != nil {
		panic(err)
	}

	modesMu.Lock()
	encMode, decMode = em, dm
	modesMu.Unlock()
}

func modes() (cbor.EncMode, cbor.DecMode) {
	initialiseEncoder.Do(initEncAndDecModes)
	modesMu.RLock()
	defer modesMu.RUnlock()
	return encMode, decMode
}

// RegisterType makes rType encode as a tagged CBOR item. Values of rType must then
// carry the tag when they are decoded.
func RegisterType(rType reflect.Type) error {
	initialiseEncoder.Do(initEncAndDecModes)
	if err := ts.Add(
		cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
		rType,
		tagNum,
	); err != nil {
		return err
	}
	initEncAndDecModes()
	tagNum++
	return nil
}

// Marshal returns encoding of param v
func Marshal(v any) ([]byte, error) {
	em, _ := modes()
	return em.Marshal(v)
}

// Unmarshal decodes param v from []byte b
func Unmarshal(b []byte, v any) error {
	_, dm := modes()
	return serde.Wrap(dm.Unmarshal(b, v))
}

// UnmarshalFirst decodes the first CBOR data item into param v and returns the remaining bytes
func UnmarshalFirst(b []byte, v any) ([]byte, error) {
	_, dm := modes()
	rest, err := dm.UnmarshalFirst(b, v)
	return rest, serde.Wrap(err)
}

// TestSymmetry checks if a type can be marshalled and unmarshalled with no issues
func TestSymmetry(t *testing.T, value any) {
	t.Helper()
	cborBytes, err := Marshal(value)
	require.NoError(t, err)

	unmarshaled := reflect.New(reflect.TypeOf(value))
	err = Unmarshal(cborBytes, unmarshaled.Interface())
	require.NoError(t, err)
	assert.Equal(t, value, unmarshaled.Elem().Interface())
}

type Encoder interface {
	Encode(v any) error
}

// NewEncoder returns a new encoder that writes to w
func NewEncoder(w io.Writer) Encoder {
	em, _ := modes()
	return em.NewEncoder(w)
}

type Decoder interface {
	Decode(v any) error
}

type decoder struct {
	dec *cbor.Decoder
}

func (d decoder) Decode(v any) error {
	return serde.Wrap(d.dec.Decode(v))
}

// NewDecoder returns a new decoder that reads from r. Errors are reported with the
// serde error taxonomy.
func NewDecoder(r io.Reader) Decoder {
	_, dm := modes()
	return decoder{dec: dm.NewDecoder(r)}
}
