package index

import (
	"github.com/rpcpool/tamago-go/internal/hashfunc"
	"github.com/rpcpool/tamago-go/internal/sais"
)

// Hashing buckets suffix-array entries by a lossy hash of their length-K
// prefix, truncated to bits bits. Unlike FixedLengthBuckets, collisions
// within a bucket are possible, so ExtensionSearch must re-verify the full
// prefix from depth 0.
type Hashing struct {
	array   []uint32
	offsets []uint32
	k       int
	mask    uint32
	fn      hashfunc.Func
}

// NewHashing builds a Hashing variant over text with prefix length K,
// bucketed into 2^bits slots with hash function fn.
func NewHashing(text []byte, k, bits int, fn hashfunc.Func) *Hashing {
	if len(text) > int(^uint32(0))+1 {
		panic("index: text too large for a 32-bit suffix array")
	}

	sa := sais.Construct(text)

	hashtableLen := 1 << bits
	mask := uint32(hashtableLen - 1)
	counts := make([]uint32, hashtableLen)
	for i := 0; i+k <= len(text); i++ {
		seq := text[i : i+k]
		if hasDisqualifyingSymbol(seq) {
			continue
		}
		counts[fn.Hash(seq)&mask]++
	}

	offsets := make([]uint32, hashtableLen+1)
	var cumSum uint32
	for i, c := range counts {
		offsets[i] = cumSum
		cumSum += c
	}
	offsets[hashtableLen] = cumSum

	pos := append([]uint32(nil), offsets...)
	ssa := make([]uint32, cumSum)
	for _, s := range sa {
		si := int(s)
		if si+k > len(text) {
			continue
		}
		seq := text[si : si+k]
		if hasDisqualifyingSymbol(seq) {
			continue
		}
		idx := fn.Hash(seq) & mask
		ssa[pos[idx]] = s
		pos[idx]++
	}

	return &Hashing{array: ssa, offsets: offsets, k: k, mask: mask, fn: fn}
}

func (v *Hashing) IndexToPos(i int) uint32 { return v.array[i] }

func (v *Hashing) ExtensionSearch(text, query []byte, minLen, maxHits int) (int, int, int, bool) {
	if minLen < v.k || minLen > len(query) {
		panic("index: extension search precondition violated")
	}

	hash := v.fn.Hash(query[:v.k]) & v.mask
	begin := int(v.offsets[hash])
	end := int(v.offsets[hash+1])
	if begin == end {
		return 0, 0, 0, false
	}

	// Unlike the width-keyed variants, the bucket hash is lossy, so even
	// entries sharing this bucket may not share a true prefix of length k:
	// refine from depth 0, not depth k.
	return extendFromBucket(v.array, text, query, begin, end, 0, minLen, maxHits)
}

func (v *Hashing) BucketSizeDistribution() map[int]int {
	return bucketSizeDistribution(v.offsets)
}

func (v *Hashing) SizeBytes() int {
	return 4*len(v.array) + 4*len(v.offsets)
}
