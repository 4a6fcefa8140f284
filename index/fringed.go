package index

import (
	"sort"

	"github.com/rpcpool/tamago-go/internal/sais"
)

// Fringed splits the length-K prefix of each suffix into a length-L "left"
// part, used as a dense primary bucket key, and a length-16 "right" part,
// kept sorted within each primary bucket and located by binary search. Each
// primary bucket with r distinct right values begins with a packed header
// of r data-start pointers followed by the r sorted right values, then the
// grouped text positions themselves.
type Fringed struct {
	array   []uint32
	offsets []uint32
	k       int
	l       int
}

type fringedEntry struct {
	right uint32
	pos   uint32
}

// NewFringed builds a Fringed variant over text with left-part width L; the
// full prefix width is K = L + 16.
func NewFringed(text []byte, l int) *Fringed {
	if len(text) > int(^uint32(0))+1 {
		panic("index: text too large for a 32-bit suffix array")
	}
	k := l + 16

	sa := sais.Construct(text)

	offsetsLen := 1 << (2 * l)
	buckets := make([][]fringedEntry, offsetsLen)
	for _, s := range sa {
		si := int(s)
		if si+k > len(text) {
			continue
		}
		seq := text[si : si+k]
		if hasDisqualifyingSymbol(seq) {
			continue
		}
		left := littleEndianHash(seq[:l])
		right := uint32(littleEndianHash(seq[l:k]))
		buckets[left] = append(buckets[left], fringedEntry{right: right, pos: s})
	}
	for i := range buckets {
		sort.SliceStable(buckets[i], func(a, b int) bool {
			return buckets[i][a].right < buckets[i][b].right
		})
	}

	offsets := make([]uint32, offsetsLen+1)
	rightCounts := make([]int, offsetsLen)
	var total uint32
	for i, entries := range buckets {
		offsets[i] = total
		distinct := 0
		var prev uint32
		first := true
		for _, e := range entries {
			if first || e.right != prev {
				distinct++
				prev = e.right
				first = false
			}
		}
		rightCounts[i] = distinct
		total += uint32(len(entries) + 2*distinct)
	}
	offsets[offsetsLen] = total

	ssa := make([]uint32, total)
	for i, entries := range buckets {
		rc := rightCounts[i]
		if rc == 0 {
			continue
		}
		z := int(offsets[i])
		pos := z + 2*rc
		var prev uint32
		first := true
		for _, e := range entries {
			if first || e.right != prev {
				ssa[z] = uint32(pos)
				ssa[z+rc] = e.right
				z++
				prev = e.right
				first = false
			}
			ssa[pos] = e.pos
			pos++
		}
	}

	return &Fringed{array: ssa, offsets: offsets, k: k, l: l}
}

// IndexToPos returns the value at slot i of array. Bucket headers share
// array with the positions, so i must lie in a range returned by
// ExtensionSearch; no check is made.
func (v *Fringed) IndexToPos(i int) uint32 { return v.array[i] }

func (v *Fringed) ExtensionSearch(text, query []byte, minLen, maxHits int) (int, int, int, bool) {
	if minLen < v.k || minLen > len(query) {
		panic("index: extension search precondition violated")
	}

	left := littleEndianHash(query[:v.l])
	sectionBegin := int(v.offsets[left])
	sectionEnd := int(v.offsets[left+1])
	if sectionBegin == sectionEnd {
		return 0, 0, 0, false
	}

	headBegin := sectionBegin
	headEnd := int(v.array[sectionBegin])
	numRights := (headEnd - headBegin) / 2
	rightBegin := headBegin + numRights

	right := uint32(littleEndianHash(query[v.l:v.k]))
	idx, ok := searchSortedU32(v.array[rightBegin:headEnd], right)
	if !ok {
		return 0, 0, 0, false
	}

	begin := int(v.array[headBegin+idx])
	var end int
	if headBegin+idx+1 == rightBegin {
		end = sectionEnd
	} else {
		end = int(v.array[headBegin+idx+1])
	}

	return extendFromBucket(v.array, text, query, begin, end, v.k, minLen, maxHits)
}

// searchSortedU32 performs an exact binary search for x in a sorted slice,
// reporting the index and whether x was found.
func searchSortedU32(s []uint32, x uint32) (int, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= x })
	if i < len(s) && s[i] == x {
		return i, true
	}
	return 0, false
}

func (v *Fringed) BucketSizeDistribution() map[int]int { return nil }

func (v *Fringed) SizeBytes() int {
	return 4*len(v.array) + 4*len(v.offsets)
}
