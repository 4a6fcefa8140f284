package serial

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/mapper"
)

func TestRunWritesMappedAndUnmappedRecords(t *testing.T) {
	ref := "ACGTACGGTTCAGCTAGCTAGGCATCGATCGATCGTAGCTAGCATCGATCGTAGCATGCATCGATG"
	idx, err := index.NewIndexBuilder(strings.NewReader(">ref0\n" + ref + "\n")).
		WithSAOptions(index.SAOptions{Kind: index.KindFixedLengthBuckets, FixedLengthWidth: 4}).
		Build()
	require.NoError(t, err)

	m := mapper.NewMapperBuilder(idx).SeedMinLen(20).Build()

	query := ">hit\n" + ref[10:40] + "\n>miss\n" + strings.Repeat("T", 30) + "\n"
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), strings.NewReader(query), &out, m))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	hitFields := strings.Split(lines[0], "\t")
	assert.Equal(t, "hit", hitFields[0])
	assert.Equal(t, "ref0", hitFields[2])

	missFields := strings.Split(lines[1], "\t")
	assert.Equal(t, "miss", missFields[0])
	assert.Equal(t, "4", missFields[1])
}

func TestRunRespectsCanceledContext(t *testing.T) {
	idx, err := index.NewIndexBuilder(strings.NewReader(">ref0\nACGTACGTACGTACGTACGTACGTACGTACGT\n")).Build()
	require.NoError(t, err)
	m := mapper.NewMapperBuilder(idx).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = Run(ctx, strings.NewReader(">q\nACGT\n"), &out, m)
	assert.Error(t, err)
}
