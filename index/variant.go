package index

// Variant is the uniform contract every suffix-array prefix accelerator
// implements. All five concrete variants (FixedLengthBuckets,
// VariableLengthBuckets, Hashing, Fringed, SaHash) share this interface so
// the mapper and the CLI can treat them interchangeably.
type Variant interface {
	// IndexToPos returns the text position stored at slot i of the
	// variant's internal array.
	IndexToPos(i int) uint32

	// ExtensionSearch locates the slice of the internal array containing
	// every occurrence of query[:depth] in text, where depth is the
	// smallest value in [minLen, len(query)] whose slice size is
	// <= maxHits, or len(query) if no such depth exists. ok is false if
	// no suffix starts with query[:minLen], or if depth == len(query)
	// and the slice still exceeds maxHits.
	ExtensionSearch(text, query []byte, minLen, maxHits int) (begin, end, depth int, ok bool)

	// BucketSizeDistribution reports, for variants with a meaningful
	// primary bucketing, a histogram of bucket sizes. Variants without
	// one return nil.
	BucketSizeDistribution() map[int]int

	// SizeBytes reports the in-memory footprint of the variant's tables,
	// for diagnostics.
	SizeBytes() int
}

// extendFromBucket implements the common lookup skeleton shared by every
// variant once it has produced an initial [begin, end) bucket known to
// share a prefix of length initDepth with query:
//
//  1. If the bucket is empty, fail.
//  2. Refine via equalRange from initDepth up to minLen. If empty, fail.
//  3. While the range still exceeds maxHits and the query isn't exhausted,
//     extend one symbol at a time via equalRange.
//  4. Fail if maxHits is still exceeded once the whole query is consumed;
//     otherwise return the final range and depth.
func extendFromBucket(sa []uint32, text, query []byte, begin, end, initDepth, minLen, maxHits int) (int, int, int, bool) {
	if begin == end {
		return 0, 0, 0, false
	}

	equalRange(sa, text, initDepth, query[initDepth:minLen], &begin, &end)
	if begin == end {
		return 0, 0, 0, false
	}

	depth := minLen
	qLen := len(query)
	for depth < qLen && end-begin > maxHits {
		equalRange(sa, text, depth, query[depth:depth+1], &begin, &end)
		if begin == end {
			return 0, 0, 0, false
		}
		depth++
	}

	if depth == qLen && end-begin > maxHits {
		return 0, 0, 0, false
	}
	return begin, end, depth, true
}

// bucketSizeDistribution builds a size -> count histogram from a flat
// exclusive-prefix-sum offsets table, as used by FixedLengthBuckets,
// VariableLengthBuckets and Hashing.
func bucketSizeDistribution(offsets []uint32) map[int]int {
	m := make(map[int]int)
	for i := 0; i+1 < len(offsets); i++ {
		size := int(offsets[i+1] - offsets[i])
		m[size]++
	}
	return m
}

// hasDisqualifyingSymbol reports whether window contains a delimiter or an
// unknown-symbol code; such windows are excluded from every bucket/hashtable
// position.
func hasDisqualifyingSymbol(window []byte) bool {
	for _, x := range window {
		if x == 0 || x == 5 {
			return true
		}
	}
	return false
}
