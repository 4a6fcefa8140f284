package index

import (
	"github.com/rpcpool/tamago-go/internal/sais"
	"github.com/rpcpool/tamago-go/internal/seqcode"
)

// FixedLengthBuckets partitions suffix-array entries by the 2*W-bit,
// little-endian 2-bit hash of their length-W prefix. Buckets are
// contiguous, flat slices of array.
type FixedLengthBuckets struct {
	array       []uint32
	offsets     []uint32
	bucketWidth int
}

// NewFixedLengthBuckets builds a FixedLengthBuckets variant over text with
// the given prefix width W. W must satisfy 2*W < 64 so the hash fits in a
// machine word.
func NewFixedLengthBuckets(text []byte, bucketWidth int) *FixedLengthBuckets {
	if len(text) > int(^uint32(0))+1 {
		panic("index: text too large for a 32-bit suffix array")
	}
	if 2*bucketWidth >= 64 {
		panic("index: fixed bucket width too large for a machine word")
	}

	sa := sais.Construct(text)

	bucketsLen := 1 << (2 * bucketWidth)
	counts := make([]uint32, bucketsLen)
	for i := 0; i+bucketWidth <= len(text); i++ {
		window := text[i : i+bucketWidth]
		if hasDisqualifyingSymbol(window) {
			continue
		}
		counts[littleEndianHash(window)]++
	}

	offsets := make([]uint32, bucketsLen+1)
	var cumSum uint32
	for i, c := range counts {
		offsets[i] = cumSum
		cumSum += c
	}
	offsets[bucketsLen] = cumSum

	pos := append([]uint32(nil), offsets...)
	ssa := make([]uint32, cumSum)
	for _, s := range sa {
		si := int(s)
		if si+bucketWidth > len(text) {
			continue
		}
		window := text[si : si+bucketWidth]
		if hasDisqualifyingSymbol(window) {
			continue
		}
		idx := littleEndianHash(window)
		ssa[pos[idx]] = s
		pos[idx]++
	}

	return &FixedLengthBuckets{array: ssa, offsets: offsets, bucketWidth: bucketWidth}
}

// littleEndianHash computes the 2-bit-per-symbol hash of window with the
// first symbol in the lowest-order bits.
func littleEndianHash(window []byte) int {
	idx := 0
	for j, x := range window {
		idx |= int(seqcode.CodeToTwoBit(x)) << uint(2*j)
	}
	return idx
}

func (v *FixedLengthBuckets) IndexToPos(i int) uint32 { return v.array[i] }

func (v *FixedLengthBuckets) ExtensionSearch(text, query []byte, minLen, maxHits int) (int, int, int, bool) {
	if minLen < v.bucketWidth || minLen > len(query) {
		panic("index: extension search precondition violated")
	}

	idx := littleEndianHash(query[:v.bucketWidth])
	begin := int(v.offsets[idx])
	end := int(v.offsets[idx+1])

	return extendFromBucket(v.array, text, query, begin, end, v.bucketWidth, minLen, maxHits)
}

func (v *FixedLengthBuckets) BucketSizeDistribution() map[int]int {
	return bucketSizeDistribution(v.offsets)
}

func (v *FixedLengthBuckets) SizeBytes() int {
	return 4*len(v.array) + 4*len(v.offsets)
}
