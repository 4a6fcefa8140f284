package index

// textByteAt is a bounds-safe read of text, treating anything past the end
// of the arena as an implicit delimiter. Every suffix is guaranteed to hit a
// real delimiter byte at or before the last valid index, so this never
// changes observable behavior on well-formed input — it only guards against
// reading past the slice when that invariant is violated by a caller.
func textByteAt(text []byte, i int) byte {
	if i < len(text) {
		return text[i]
	}
	return 0
}

// equalRange narrows [*begin, *end) over sa to the subrange of suffix-array
// entries whose suffixes, read from textBase onward, equal query exactly.
// It is the shared hot path beneath every suffix-array variant: a
// single-pass binary search that tracks two independent "watermarks" (the
// deepest known-matching prefix length on the low side and on the high
// side) so that a comparison against the midpoint only re-examines
// characters not already known to match on whichever side the midpoint
// currently falls against. This is the classical Manber-Myers refinement.
//
// On a full match (the comparison reaches the end of query without a
// mismatch), the range is split into a lower_bound and upper_bound
// sub-search over the two halves, seeded with the respective watermark.
func equalRange(sa []uint32, text []byte, textBase int, query []byte, begin, end *int) {
	qLen := len(query)
	if qLen == 0 {
		return
	}
	depthLow, depthHigh := 0, 0
	b, e := *begin, *end

	for b < e {
		mid := b + (e-b)/2
		offset := int(sa[mid])

		var cur int
		if depthLow < depthHigh {
			cur = depthLow
		} else {
			cur = depthHigh
		}

		for {
			tb := textByteAt(text, textBase+offset+cur)
			qb := query[cur]
			if tb != qb {
				if tb < qb {
					b = mid + 1
					depthLow = cur
				} else {
					e = mid
					depthHigh = cur
				}
				break
			}
			cur++
			if cur == qLen {
				lo := lowerBound(sa, text, textBase, query, depthLow, b, mid)
				hi := upperBound(sa, text, textBase, query, depthHigh, mid+1, e)
				*begin, *end = lo, hi
				return
			}
		}
	}

	*begin, *end = b, e
}

// lowerBound finds the leftmost index in [begin, end) whose suffix is not
// less than query, given that every candidate in range is already known to
// match query for its first startDepth characters.
func lowerBound(sa []uint32, text []byte, textBase int, query []byte, startDepth, begin, end int) int {
	qLen := len(query)
	depth := startDepth

	for begin < end {
		mid := begin + (end-begin)/2
		offset := int(sa[mid])
		cur := depth

		for {
			tb := textByteAt(text, textBase+offset+cur)
			qb := query[cur]
			if tb < qb {
				begin = mid + 1
				depth = cur
				break
			}
			cur++
			if cur == qLen {
				end = mid
				break
			}
		}
	}

	return begin
}

// upperBound finds the leftmost index in [begin, end) whose suffix is
// strictly greater than query, given that every candidate in range is
// already known to match query for its first startDepth characters.
func upperBound(sa []uint32, text []byte, textBase int, query []byte, startDepth, begin, end int) int {
	qLen := len(query)
	depth := startDepth

	for begin < end {
		mid := begin + (end-begin)/2
		offset := int(sa[mid])
		cur := depth

		for {
			tb := textByteAt(text, textBase+offset+cur)
			qb := query[cur]
			if tb > qb {
				end = mid
				depth = cur
				break
			}
			cur++
			if cur == qLen {
				begin = mid + 1
				break
			}
		}
	}

	return end
}
