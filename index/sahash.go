package index

import (
	"bytes"

	"github.com/rpcpool/tamago-go/internal/hashfunc"
	"github.com/rpcpool/tamago-go/internal/sais"
)

// saHashLUTWidth is the width, in symbols, of the small dense lookup table
// that narrows an initial range of array before the open-addressed
// hashtable is consulted.
const saHashLUTWidth = 2

// SaHash is a two-level directory: a dense lookup table on the leading two
// symbols narrows the search to a contiguous range of array, then an
// open-addressed hash table on the full length-K prefix resolves to the
// sub-range of that array sharing the prefix exactly. See Grabowski &
// Raniszewski, "Compact and Hash Based Variants of the Suffix Array" (2017).
type SaHash struct {
	array     []uint32
	lut       [][2]uint32
	hashtable [][2]uint32
	k         int
	fn        hashfunc.Func
	mask      uint32
}

// NewSaHash builds a SaHash variant over text with prefix length K, an
// open-addressed hash table of 2^bits slots, and hash function fn.
func NewSaHash(text []byte, k, bits int, fn hashfunc.Func) *SaHash {
	if len(text) > int(^uint32(0))+1 {
		panic("index: text too large for a 32-bit suffix array")
	}

	sa := sais.Construct(text)

	lutLen := 1 << (2 * saHashLUTWidth)
	lutCounts := make([]uint32, lutLen)

	hashtableLen := 1 << bits
	mask := uint32(hashtableLen - 1)
	hashtable := make([][2]uint32, hashtableLen)
	for i := range hashtable {
		hashtable[i] = [2]uint32{sentinel32, sentinel32}
	}

	array := make([]uint32, 0, len(sa))
	var l uint32
	j := -1
	var prevSeq []byte

	for _, s := range sa {
		si := int(s)
		if si+k > len(text) {
			continue
		}
		seq := text[si : si+k]
		if hasDisqualifyingSymbol(seq) {
			continue
		}

		i := len(array)
		array = append(array, s)

		idx := reversedHash(seq[:saHashLUTWidth])
		lutCounts[idx]++

		if prevSeq != nil && bytes.Equal(seq, prevSeq) {
			continue
		}
		if j != -1 {
			hashtable[j] = [2]uint32{l, uint32(i)}
		}
		l = uint32(i)
		prevSeq = seq

		initJ := int(fn.Hash(seq) & mask)
		jj := initJ
		for hashtable[jj] != [2]uint32{sentinel32, sentinel32} {
			jj = (jj + 1) & int(mask)
			if jj == initJ {
				panic("index: sa-hash hashtable is full")
			}
		}
		j = jj
	}
	hashtable[j] = [2]uint32{l, uint32(len(array))}

	lut := make([][2]uint32, lutLen)
	var cum uint32
	for i, c := range lutCounts {
		lut[i] = [2]uint32{cum, cum + c}
		cum += c
	}
	if int(cum) != len(array) {
		panic("index: sa-hash lookup table miscounted")
	}

	return &SaHash{array: array, lut: lut, hashtable: hashtable, k: k, fn: fn, mask: mask}
}

func (v *SaHash) IndexToPos(i int) uint32 { return v.array[i] }

func (v *SaHash) ExtensionSearch(text, query []byte, minLen, maxHits int) (int, int, int, bool) {
	if minLen < v.k || minLen > len(query) {
		panic("index: extension search precondition violated")
	}

	idx := reversedHash(query[:saHashLUTWidth])
	lutBeg, lutEnd := v.lut[idx][0], v.lut[idx][1]
	if lutBeg >= lutEnd {
		return 0, 0, 0, false
	}

	prefix := query[:v.k]
	j := int(v.fn.Hash(prefix) & v.mask)
	var begin, end int
	for {
		pair := v.hashtable[j]
		if pair == [2]uint32{sentinel32, sentinel32} {
			return 0, 0, 0, false
		}
		l, r := pair[0], pair[1]
		if lutBeg <= l && l < lutEnd && bytes.Equal(text[v.array[l]:int(v.array[l])+v.k], prefix) {
			begin, end = int(l), int(r)
			break
		}
		j = (j + 1) & int(v.mask)
	}
	if begin == end {
		return 0, 0, 0, false
	}

	return extendFromBucket(v.array, text, query, begin, end, 0, minLen, maxHits)
}

func (v *SaHash) BucketSizeDistribution() map[int]int { return nil }

func (v *SaHash) SizeBytes() int {
	return 4*len(v.array) + 8*len(v.lut) + 8*len(v.hashtable)
}
