package bitrank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func naiveRank(bits []bool, p int) uint64 {
	var c uint64
	for i := 0; i < p; i++ {
		if bits[i] {
			c++
		}
	}
	return c
}

func packBits(bits []bool) []uint64 {
	words := make([]uint64, (len(bits)+63)/64)
	for i, b := range bits {
		if b {
			words[i/64] |= uint64(1) << uint(i%64)
		}
	}
	return words
}

func TestRankMatchesNaivePopcount(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 63, 64, 65, 511, 512, 513, 4096, 10007} {
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = r.Intn(4) == 0
		}
		rd := NewRank9b(packBits(bits), n)
		for p := 1; p < n; p += 1 + r.Intn(7) {
			assert.Equal(t, naiveRank(bits, p), rd.Rank(p), "n=%d p=%d", n, p)
		}
	}
}

func TestRankAtSequenceEnds(t *testing.T) {
	// $AGCT$TGTA$ -> delimiters at positions 0, 5, 10 (length 11)
	bits := make([]bool, 11)
	bits[0] = true
	bits[5] = true
	bits[10] = true
	rd := NewRank9b(packBits(bits), 11)
	assert.Equal(t, uint64(1), rd.Rank(1))
	assert.Equal(t, uint64(1), rd.Rank(4))
	assert.Equal(t, uint64(2), rd.Rank(6))
	assert.Equal(t, uint64(2), rd.Rank(9))
}
