package seqcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ACGT", "ACGT"},
		{"acgt", "ACGT"},
		{"ACGTN", "ACGTN"},
		{"ACGTxyz", "ACGTNNN"},
		{"$AGCT$", "NAGCTN"},
	}
	for _, c := range cases {
		got := Decode(Encode([]byte(c.in)))
		assert.Equal(t, c.want, string(got))
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	for _, s := range []string{"ACGT", "AAAA", "ACGTACGTACGT", "GATTACA"} {
		enc := Encode([]byte(s))
		rc := ReverseComplement(enc)
		rcrc := ReverseComplement(rc)
		require.Equal(t, enc, rcrc)
	}
}

func TestComplementTable(t *testing.T) {
	assert.Equal(t, T, ComplementTable[A])
	assert.Equal(t, A, ComplementTable[T])
	assert.Equal(t, G, ComplementTable[C])
	assert.Equal(t, C, ComplementTable[G])
	assert.Equal(t, Delimiter, ComplementTable[Delimiter])
}

func TestCodeToTwoBitProjection(t *testing.T) {
	assert.Equal(t, byte(0), CodeToTwoBit(A))
	assert.Equal(t, byte(1), CodeToTwoBit(C))
	assert.Equal(t, byte(2), CodeToTwoBit(G))
	assert.Equal(t, byte(3), CodeToTwoBit(T))
	for _, c := range []byte{A, C, G, T} {
		assert.Equal(t, c, TwoBitToCode(CodeToTwoBit(c)))
	}
}
