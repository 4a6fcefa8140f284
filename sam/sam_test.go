package sam

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/mapper"
)

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	idx, err := index.NewIndexBuilder(strings.NewReader(">chr1\nACGTACGTACGT\n>chr2\nTTGGCCAATTGG\n")).Build()
	require.NoError(t, err)
	return idx
}

func TestWriteHeader(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "tamago", "0.1.0", idx))

	out := buf.String()
	assert.Contains(t, out, "@HD\tVN:1.0\tSO:unknown\n")
	assert.Contains(t, out, "@SQ\tSN:chr1\tLN:12\tDS:T\n")
	assert.Contains(t, out, "@SQ\tSN:chr2\tLN:12\tDS:T\n")
	assert.Contains(t, out, "@PG\tID:tamago\tPN:tamago\tVN:0.1.0\n")
}

func TestWriteMappingSingleForward(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	m := mapper.SingleMapping{SeqID: 0, Pos: 2, Strand: mapper.Forward, Score: 7}

	require.NoError(t, WriteMappingSingle(&buf, idx, []byte("read1"), []byte("GTACGTAC"), m, false, &RCCache{}))

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	assert.Equal(t, "read1", fields[0])
	assert.Equal(t, "0", fields[1])
	assert.Equal(t, "chr1", fields[2])
	assert.Equal(t, "3", fields[3]) // 1-based
	assert.Equal(t, "8M", fields[5])
	assert.Equal(t, "GTACGTAC", fields[9])
	assert.Equal(t, "AS:i:7", fields[11])
}

func TestWriteMappingSingleReverseSetsFlagAndComplements(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	m := mapper.SingleMapping{SeqID: 1, Pos: 0, Strand: mapper.Reverse, Score: 0}

	require.NoError(t, WriteMappingSingle(&buf, idx, []byte("read2"), []byte("AACC"), m, false, &RCCache{}))

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	assert.Equal(t, "16", fields[1])
	assert.Equal(t, "GGTT", fields[9])
}

func TestWriteMappingSingleSecondarySetsFlag(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	m := mapper.SingleMapping{SeqID: 0, Pos: 0, Strand: mapper.Forward, Score: 0}

	require.NoError(t, WriteMappingSingle(&buf, idx, []byte("read3"), []byte("ACGT"), m, true, &RCCache{}))

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	assert.Equal(t, "256", fields[1])
}

func TestRCCacheComputesOnce(t *testing.T) {
	var c RCCache
	first := c.get([]byte("ACGT"))
	assert.Equal(t, "ACGT", string(first)) // reverse complement of ACGT is ACGT
	second := c.get([]byte("TTTT"))        // ignored: cache already set
	assert.Equal(t, string(first), string(second))
}

func TestWriteUnmapped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUnmapped(&buf, []byte("read4"), []byte("ACGTACGT")))

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	assert.Equal(t, "4", fields[1])
	assert.Equal(t, "*", fields[2])
	assert.Equal(t, "ACGTACGT", fields[9])
}
