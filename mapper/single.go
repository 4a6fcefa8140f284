package mapper

import (
	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/internal/seqcode"
)

// SingleMapping is the reported placement of a single-end query.
type SingleMapping struct {
	SeqID  index.SequenceID
	Pos    int
	Strand Strand
	Score  int32
}

// MapSingle maps an encoded single-end query against the reference and
// returns every placement found. Mapping is deliberately naive: it takes
// the first anchor surfaced for each (sequence, strand) pair with no
// clustering or chaining, and reports it at a fixed zero score.
//
// TODO: decide whether a query shorter than the minimum seed length should
// be reported as unmapped (current behavior) or as a distinct "too short"
// outcome distinguishable from a real search miss.
func (m *Mapper) MapSingle(query []byte) []SingleMapping {
	if len(query) < m.seedMinLen {
		return nil
	}

	rcQuery := seqcode.ReverseComplement(query)

	// single-end reads are always treated as read 1.
	refToAnchors := m.SearchAnchors(query, rcQuery, true)

	mappings := make([]SingleMapping, 0, len(refToAnchors))
	for key, anchors := range refToAnchors {
		mappings = append(mappings, SingleMapping{
			SeqID:  key.SeqID,
			Pos:    anchors[0].RefPos,
			Strand: key.Strand,
			Score:  0,
		})
	}

	return mappings
}
