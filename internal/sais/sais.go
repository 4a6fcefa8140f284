// Package sais builds the suffix array of a byte text via prefix doubling
// (the classical Manber-Myers construction). It stands in for the external
// suffix-sorting collaborator the reference design delegates to; nothing
// about the suffix-array variants built on top of it depends on which
// sorting algorithm produced the permutation.
package sais

import "sort"

// Construct returns the suffix array of text: a permutation of [0, len(text))
// such that text[sa[i]:] < text[sa[i+1]:] lexicographically for all i.
func Construct(text []byte) []uint32 {
	n := len(text)
	if n == 0 {
		return []uint32{}
	}

	sa := make([]int, n)
	rank := make([]int, n)
	next := make([]int, n)
	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(text[i])
	}

	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}

	less := func(a, b, k int) bool {
		if rank[a] != rank[b] {
			return rank[a] < rank[b]
		}
		return rankAt(a, k) < rankAt(b, k)
	}

	for k := 1; k < n; k *= 2 {
		kk := k
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j], kk) })

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			next[sa[i]] = next[sa[i-1]]
			if less(sa[i-1], sa[i], kk) {
				next[sa[i]]++
			}
		}
		copy(rank, next)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	out := make([]uint32, n)
	for i, v := range sa {
		out[i] = uint32(v)
	}
	return out
}
