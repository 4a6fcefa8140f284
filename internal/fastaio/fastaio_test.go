package fastaio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data))
	var out []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestReadsMultipleRecords(t *testing.T) {
	data := ">foo\nAGCT\n>bar\nTGTA\n"
	recs := readAll(t, data)
	require.Len(t, recs, 2)
	assert.Equal(t, "foo", recs[0].Name)
	assert.Equal(t, "AGCT", string(recs[0].Seq))
	assert.Equal(t, "bar", recs[1].Name)
	assert.Equal(t, "TGTA", string(recs[1].Seq))
}

func TestReadsMultilineSequence(t *testing.T) {
	data := ">foo\nAGCT\nTGTA\n"
	recs := readAll(t, data)
	require.Len(t, recs, 1)
	assert.Equal(t, "AGCTTGTA", string(recs[0].Seq))
}

func TestEmptyInputYieldsNoRecords(t *testing.T) {
	recs := readAll(t, "")
	assert.Empty(t, recs)
}

func TestExtractName(t *testing.T) {
	assert.Equal(t, []byte("foo"), ExtractName("foo|bar|baz", "|"))
	assert.Equal(t, []byte("foo"), ExtractName("fooabbarabbaz", "ab"))
	assert.Equal(t, []byte("foo"), ExtractName("foo", "|"))
	assert.Equal(t, []byte("foo bar"), ExtractName("foo bar", ""))
}
