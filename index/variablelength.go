package index

import (
	"math"
	"math/bits"

	"github.com/rpcpool/tamago-go/internal/sais"
	"github.com/rpcpool/tamago-go/internal/seqcode"
)

// VariableLengthBuckets primary-buckets suffix-array entries on the
// length-K prefix (reversed digit order), then sub-buckets each primary
// bucket by a secondary length chosen so that the expected bucket occupancy
// tracks a target fill factor F.
type VariableLengthBuckets struct {
	array   []uint32
	offsets []uint32
	buckets []uint32
	k       int
	f       float64
}

const sentinel32 = ^uint32(0)

// NewVariableLengthBuckets builds a VariableLengthBuckets variant over text
// with primary prefix length K and fill factor F.
func NewVariableLengthBuckets(text []byte, k int, f float64) *VariableLengthBuckets {
	if len(text) > int(^uint32(0))+1 {
		panic("index: text too large for a 32-bit suffix array")
	}

	sa := sais.Construct(text)

	offsetsLen := 1 << (2 * k)
	counts := make([]uint32, offsetsLen)
	for i := 0; i+k <= len(text); i++ {
		window := text[i : i+k]
		if hasDisqualifyingSymbol(window) {
			continue
		}
		counts[reversedHash(window)]++
	}

	offsets := make([]uint32, 0, offsetsLen+1)
	var bucketsLen uint32
	for _, count := range counts {
		w := secondaryWidth(count, f)
		offsets = append(offsets, bucketsLen)
		bucketsLen += uint32(1) << uint(2*w)
	}
	offsets = append(offsets, bucketsLen)

	ssa := make([]uint32, 0, len(sa))
	buckets := make([]uint32, bucketsLen, bucketsLen+1)
	for i := range buckets {
		buckets[i] = sentinel32
	}

	var prevBucket uint32
	for _, s := range sa {
		si := int(s)
		if si+k > len(text) {
			continue
		}
		seq := text[si : si+k]
		if hasDisqualifyingSymbol(seq) {
			continue
		}
		idx := reversedHash(seq)
		w := bits.TrailingZeros32(offsets[idx+1]-offsets[idx]) / 2
		if si+k+w > len(text) {
			continue
		}
		seq2 := text[si+k : si+k+w]
		if hasDisqualifyingSymbol(seq2) {
			continue
		}
		idx2 := reversedHash(seq2)
		if idx2 >= (1 << uint(2*w)) {
			panic("index: variable-length secondary index out of range")
		}
		j := offsets[idx] + uint32(idx2)
		if j < prevBucket {
			panic("index: variable-length bucket order violated")
		}
		if buckets[j] == sentinel32 {
			buckets[j] = uint32(len(ssa))
		}
		prevBucket = j
		ssa = append(ssa, s)
	}
	buckets = append(buckets, uint32(len(ssa)))

	for i := len(buckets) - 2; i >= 0; i-- {
		if buckets[i] == sentinel32 {
			buckets[i] = buckets[i+1]
		}
	}

	for i := 0; i+1 < len(offsets); i++ {
		if offsets[i] > offsets[i+1] {
			panic("index: variable-length offsets not monotone")
		}
	}
	for i := 0; i+1 < len(buckets); i++ {
		if buckets[i] > buckets[i+1] {
			panic("index: variable-length buckets not monotone")
		}
	}

	return &VariableLengthBuckets{array: ssa, offsets: offsets, buckets: buckets, k: k, f: f}
}

// secondaryWidth computes clamp(floor(log4(count*f)), 0, 31).
func secondaryWidth(count uint32, f float64) int {
	v := math.Log(float64(count)*f) / math.Log(4)
	v = math.Max(v, 0)
	w := int(v)
	if w > 31 {
		w = 31
	}
	return w
}

// reversedHash computes the 2-bit-per-symbol hash of window with the first
// symbol contributing the most-significant digit.
func reversedHash(window []byte) int {
	idx := 0
	n := len(window)
	for j := 0; j < n; j++ {
		x := window[n-1-j]
		idx |= int(seqcode.CodeToTwoBit(x)) << uint(2*j)
	}
	return idx
}

func (v *VariableLengthBuckets) IndexToPos(i int) uint32 { return v.array[i] }

func (v *VariableLengthBuckets) ExtensionSearch(text, query []byte, minLen, maxHits int) (int, int, int, bool) {
	if minLen < v.k || minLen > len(query) {
		panic("index: extension search precondition violated")
	}

	idx := reversedHash(query[:v.k])
	bucketBegin := v.offsets[idx]
	bucketEnd := v.offsets[idx+1]
	if bucketBegin == bucketEnd {
		return 0, 0, 0, false
	}

	w := bits.TrailingZeros32(bucketEnd-bucketBegin) / 2
	idx2 := reversedHash(query[v.k : v.k+w])

	begin := int(v.buckets[int(bucketBegin)+idx2])
	end := int(v.buckets[int(bucketBegin)+idx2+1])

	return extendFromBucket(v.array, text, query, begin, end, v.k+w, minLen, maxHits)
}

func (v *VariableLengthBuckets) BucketSizeDistribution() map[int]int {
	return bucketSizeDistribution(v.offsets)
}

func (v *VariableLengthBuckets) SizeBytes() int {
	return 4*len(v.array) + 4*len(v.offsets) + 4*len(v.buckets)
}
