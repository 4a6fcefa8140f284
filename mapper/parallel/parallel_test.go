package parallel

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/mapper"
)

func buildTestIndex(t *testing.T, ref string) *index.Index {
	t.Helper()
	idx, err := index.NewIndexBuilder(strings.NewReader(">ref0\n" + ref + "\n")).
		WithSAOptions(index.SAOptions{Kind: index.KindFixedLengthBuckets, FixedLengthWidth: 4}).
		Build()
	require.NoError(t, err)
	return idx
}

func TestRunMapsEveryRecordExactlyOnce(t *testing.T) {
	ref := "ACGTACGGTTCAGCTAGCTAGGCATCGATCGATCGTAGCTAGCATCGATCGTAGCATGCATCGATG"
	idx := buildTestIndex(t, ref)
	m := mapper.NewMapperBuilder(idx).SeedMinLen(20).Build()

	var query strings.Builder
	const n = 40
	for i := 0; i < n; i++ {
		query.WriteString(">q")
		query.WriteString(strconv.Itoa(i))
		query.WriteString("\n")
		query.WriteString(ref[10:40])
		query.WriteString("\n")
	}

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(query.String()), &out, m, Options{Workers: 4, ChunkBytes: 64})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, n)

	seen := make(map[string]bool)
	for _, line := range lines {
		name := strings.SplitN(line, "\t", 2)[0]
		seen[name] = true
	}
	assert.Len(t, seen, n)
}

func TestRunHandlesUnmappedQueries(t *testing.T) {
	idx := buildTestIndex(t, "ACGTACGGTTCAGCTAGCTAGGCATCGATCGATCGTAGCTAGCATCGATCGTAGCATGCATCGATG")
	m := mapper.NewMapperBuilder(idx).SeedMinLen(20).Build()

	query := ">miss1\n" + strings.Repeat("T", 30) + "\n>miss2\n" + strings.Repeat("T", 30) + "\n"
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), strings.NewReader(query), &out, m, Options{Workers: 2, ChunkBytes: 16}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		assert.Equal(t, "4", fields[1])
	}
}

func TestRunRespectsCanceledContext(t *testing.T) {
	idx := buildTestIndex(t, "ACGTACGTACGTACGTACGTACGTACGTACGT")
	m := mapper.NewMapperBuilder(idx).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, strings.NewReader(">q\nACGT\n"), &out, m, Options{Workers: 1, ChunkBytes: 1})
	assert.Error(t, err)
}
