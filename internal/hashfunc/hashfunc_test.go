package hashfunc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuncRoundTrip(t *testing.T) {
	for _, f := range []Func{XxHash, Fnv, MurmurHash, Crc} {
		parsed, err := ParseFunc(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
}

func TestParseFuncUnknown(t *testing.T) {
	_, err := ParseFunc("not-a-hash")
	assert.Error(t, err)
}

func TestHashIsDeterministic(t *testing.T) {
	for _, f := range []Func{XxHash, Fnv, MurmurHash, Crc} {
		a := f.Hash([]byte("ACGTACGTACGT"))
		b := f.Hash([]byte("ACGTACGTACGT"))
		assert.Equal(t, a, b)
	}
}

func TestHashDistinguishesInputs(t *testing.T) {
	for _, f := range []Func{XxHash, Fnv, MurmurHash, Crc} {
		a := f.Hash([]byte("AAAA"))
		b := f.Hash([]byte("CCCC"))
		assert.NotEqual(t, a, b, "%s collided on trivial inputs", f)
	}
}
