// Package mapper implements seed search over a reference index: for an
// encoded query it locates candidate anchors per (sequence, strand) by
// repeatedly delegating to the index's suffix-array variant.
package mapper

import (
	"fmt"
	"strings"

	"github.com/rpcpool/tamago-go/index"
)

// LibraryType describes the strand(s) a stranded sequencing protocol is
// expected to produce reads from.
type LibraryType uint8

const (
	Unstranded LibraryType = iota
	FirstStrand
	SecondStrand
)

// ParseLibraryType parses the CLI spelling of a library type.
func ParseLibraryType(s string) (LibraryType, error) {
	switch strings.ToLower(s) {
	case "fr-unstranded":
		return Unstranded, nil
	case "fr-firststrand":
		return FirstStrand, nil
	case "fr-secondstrand":
		return SecondStrand, nil
	default:
		return 0, fmt.Errorf("unknown library type %q; valid values are fr-unstranded, fr-firststrand, fr-secondstrand", s)
	}
}

// Strand identifies which orientation of the reference a seed matched.
type Strand uint8

const (
	Forward Strand = iota
	Reverse
)

func (s Strand) IsForward() bool { return s == Forward }
func (s Strand) IsReverse() bool { return s == Reverse }

func (s Strand) Opposite() Strand {
	if s == Forward {
		return Reverse
	}
	return Forward
}

// Anchor records that query[QueryPos:QueryPos+Len] matches the reference at
// RefPos exactly.
type Anchor struct {
	QueryPos int
	RefPos   int
	Len      int
}

// RefKey groups anchors by reference sequence and strand.
type RefKey struct {
	SeqID  index.SequenceID
	Strand Strand
}

// Mapper holds an index reference and immutable seeding configuration; it
// is safe for concurrent use by multiple goroutines since it never mutates
// shared state.
type Mapper struct {
	idx         *index.Index
	libraryType LibraryType
	seedMinLen  int
	seedMaxHits int
	sparsity    int
}

// MapperBuilder configures and constructs a Mapper.
type MapperBuilder struct {
	idx         *index.Index
	libraryType LibraryType
	seedMinLen  int
	seedMaxHits int
	sparsity    int
}

// NewMapperBuilder returns a builder seeded with the original
// implementation's defaults: unstranded, a 31-symbol minimum seed, at most
// 10 hits per seed, and no sparsity skipping.
func NewMapperBuilder(idx *index.Index) *MapperBuilder {
	return &MapperBuilder{
		idx:         idx,
		libraryType: Unstranded,
		seedMinLen:  31,
		seedMaxHits: 10,
		sparsity:    1,
	}
}

func (b *MapperBuilder) LibraryType(lt LibraryType) *MapperBuilder {
	b.libraryType = lt
	return b
}

func (b *MapperBuilder) SeedMinLen(n int) *MapperBuilder {
	b.seedMinLen = n
	return b
}

func (b *MapperBuilder) SeedMaxHits(n int) *MapperBuilder {
	b.seedMaxHits = n
	return b
}

func (b *MapperBuilder) Sparsity(n int) *MapperBuilder {
	b.sparsity = n
	return b
}

func (b *MapperBuilder) Build() *Mapper {
	return &Mapper{
		idx:         b.idx,
		libraryType: b.libraryType,
		seedMinLen:  b.seedMinLen,
		seedMaxHits: b.seedMaxHits,
		sparsity:    b.sparsity,
	}
}

// SearchAnchors seeds query and its reverse complement (whichever strands
// libraryType and isRead1 call for) at every sparsity-th offset, collecting
// anchors per (sequence, strand). A query shorter than the seed length
// contributes no anchors for that strand.
func (m *Mapper) SearchAnchors(query, rcQuery []byte, isRead1 bool) map[RefKey][]Anchor {
	refToAnchors := make(map[RefKey][]Anchor)

	seed := func(q []byte, strand Strand) {
		if len(q) < m.seedMinLen {
			return
		}
		for seedPos := 0; seedPos <= len(q)-m.seedMinLen; seedPos += m.sparsity {
			begin, end, depth, ok := m.idx.SA.ExtensionSearch(m.idx.Arena, q[seedPos:], m.seedMinLen, m.seedMaxHits)
			if !ok {
				continue
			}
			for i := begin; i < end; i++ {
				pos := m.idx.SA.IndexToPos(i)
				seqID := m.idx.SeqIDFromPos(int(pos))

				key := RefKey{SeqID: seqID, Strand: strand}
				refToAnchors[key] = append(refToAnchors[key], Anchor{
					QueryPos: seedPos,
					RefPos:   int(pos),
					Len:      depth,
				})
			}
		}
	}

	switch {
	case m.libraryType == Unstranded:
		seed(query, Forward)
		seed(rcQuery, Reverse)
	case (m.libraryType == FirstStrand && !isRead1) || (m.libraryType == SecondStrand && isRead1):
		seed(query, Forward)
	default: // (SecondStrand, !isRead1) || (FirstStrand, isRead1)
		seed(rcQuery, Reverse)
	}

	return refToAnchors
}

// Index returns the mapper's underlying reference index.
func (m *Mapper) Index() *index.Index { return m.idx }
