package index

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/tamago-go/internal/hashfunc"
)

func buildFromFasta(t *testing.T, seqs ...string) *Index {
	t.Helper()
	var fasta strings.Builder
	for _, s := range seqs {
		fasta.WriteString(">foo\n")
		fasta.WriteString(s)
		fasta.WriteString("\n")
	}
	idx, err := NewIndexBuilder(strings.NewReader(fasta.String())).Build()
	require.NoError(t, err)
	return idx
}

func seqIDsAt(idx *Index, positions ...int) []int {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = int(idx.SeqIDFromPos(p))
	}
	return out
}

func TestSeqIDFromPosSingleSequence(t *testing.T) {
	idx := buildFromFasta(t, "agctagt")
	assert.Equal(t, []int{0, 0, 0, 0, 0}, seqIDsAt(idx, 1, 3, 5, 7, 8))
}

func TestSeqIDFromPosTwoSequences(t *testing.T) {
	idx := buildFromFasta(t, "agct", "tgta")
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, seqIDsAt(idx, 1, 4, 5, 6, 9, 10))
}

func TestSeqIDFromPosThreeBoundaries(t *testing.T) {
	idx := buildFromFasta(t, "atcgggatatatggagagcttagag", "tttagagggttcttcgggatt")
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, seqIDsAt(idx, 1, 10, 25, 26, 27, 35, 47, 48))
}

func TestSeqIDFromPosOutOfBoundsLeft(t *testing.T) {
	idx := buildFromFasta(t, "agctagt")
	assert.Panics(t, func() { idx.SeqIDFromPos(0) })
}

func TestSeqIDFromPosOutOfBoundsRight(t *testing.T) {
	idx := buildFromFasta(t, "agctagt")
	assert.Panics(t, func() { idx.SeqIDFromPos(9) })
}

func TestBuildRejectsEmptyRecordID(t *testing.T) {
	_, err := NewIndexBuilder(strings.NewReader(">\nACGT\n")).Build()
	assert.Error(t, err)
}

func TestBuildTrimsNamesAtHeaderSeparator(t *testing.T) {
	idx, err := NewIndexBuilder(strings.NewReader(">chr1|extra info\nACGTACGT\n")).
		WithHeaderSep("|").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "chr1", string(idx.SeqName(0)))
}

func TestSerializeRoundTrip(t *testing.T) {
	idx := buildFromFasta(t, "ACGTACGGTTCAGCTAGCTAGGCATCGATCGATCG", "TTGGCCAATTGGCCAAGGTTCCAAGGTTCCAATTC")

	var buf bytes.Buffer
	require.NoError(t, idx.SaveTo(&buf))

	got, err := LoadIndexFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, idx.Arena, got.Arena)
	assert.Equal(t, idx.Ends, got.Ends)
	assert.Equal(t, idx.NameArena, got.NameArena)
	assert.Equal(t, idx.NameEnds, got.NameEnds)
	assert.Equal(t, idx.RankDict.Bits(), got.RankDict.Bits())
	assert.Equal(t, idx.RankDict.Counts(), got.RankDict.Counts())

	fixed, ok := got.SA.(*FixedLengthBuckets)
	require.True(t, ok)
	assert.Equal(t, 13, fixed.bucketWidth)
}

func TestSerializeRoundTripEveryVariant(t *testing.T) {
	cases := []SAOptions{
		{Kind: KindFixedLengthBuckets, FixedLengthWidth: 4},
		{Kind: KindVariableLengthBuckets, VariableLengthK: 4, VariableLengthF: 1.0},
		{Kind: KindHashing, HashingK: 4, HashingBits: 6, HashingFunc: hashfunc.XxHash},
		{Kind: KindFringed, FringedL: 2},
		{Kind: KindSaHash, SaHashK: 4, SaHashBits: 6, SaHashFunc: hashfunc.Crc},
	}

	for _, opts := range cases {
		var fasta strings.Builder
		fasta.WriteString(">ref\n")
		fasta.WriteString("ACGTACGGTTCAGCTAGCTAGGCATCGATCGATCGTAGCTAGCATCGATCGTAGCATGCATCGATG\n")

		idx, err := NewIndexBuilder(strings.NewReader(fasta.String())).WithSAOptions(opts).Build()
		require.NoError(t, err, "variant=%s", opts.Kind)

		var buf bytes.Buffer
		require.NoError(t, idx.SaveTo(&buf), "variant=%s", opts.Kind)

		got, err := LoadIndexFrom(&buf)
		require.NoError(t, err, "variant=%s", opts.Kind)
		assert.Equal(t, idx.SA.SizeBytes(), got.SA.SizeBytes(), "variant=%s", opts.Kind)
		assert.Equal(t, opts.Kind, got.SAOptions.Kind, "variant=%s", opts.Kind)
	}
}

func TestLoadIndexFromRejectsBadMagic(t *testing.T) {
	_, err := LoadIndexFrom(bytes.NewReader([]byte("not-an-index-file-at-all")))
	assert.Error(t, err)
}
