// Package sam writes SAM-format alignment records: a header block followed
// by one record per query, reporting either a placement or the unmapped
// sentinel.
package sam

import (
	"fmt"
	"io"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/mapper"
)

const (
	flagReverse   = 0x10
	flagSecondary = 0x100
	flagUnmapped  = 0x4
)

// WriteHeader writes the @HD, one @SQ per reference sequence, and a @PG
// line naming pg as the generating program.
func WriteHeader(w io.Writer, pg, version string, idx *index.Index) error {
	if _, err := io.WriteString(w, "@HD\tVN:1.0\tSO:unknown\n"); err != nil {
		return fmt.Errorf("sam: write header: %w", err)
	}

	for i := 0; i < idx.NumSeqs(); i++ {
		id := index.SequenceID(i)
		begin, end := idx.SeqRange(id)
		if _, err := fmt.Fprintf(w, "@SQ\tSN:%s\tLN:%d\tDS:T\n", idx.SeqName(id), end-begin); err != nil {
			return fmt.Errorf("sam: write @SQ: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "@PG\tID:%s\tPN:%s\tVN:%s\n", pg, pg, version); err != nil {
		return fmt.Errorf("sam: write @PG: %w", err)
	}
	return nil
}

// RCCache lazily memoizes the reverse complement of a query's decoded
// sequence, since a single query may be reported at multiple secondary
// placements on the same strand.
type RCCache struct {
	seq []byte
	set bool
}

var asciiComplement = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	t['A'], t['a'] = 'T', 'T'
	t['C'], t['c'] = 'G', 'G'
	t['G'], t['g'] = 'C', 'C'
	t['T'], t['t'] = 'A', 'A'
	return t
}()

func reverseComplementASCII(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, x := range seq {
		out[len(seq)-1-i] = asciiComplement[x]
	}
	return out
}

// get returns the reverse complement of decoded, building it on first use.
func (c *RCCache) get(decoded []byte) []byte {
	if !c.set {
		c.seq = reverseComplementASCII(decoded)
		c.set = true
	}
	return c.seq
}

// WriteMappingSingle writes one record for a mapped single-end query. decoded
// is the query's human-readable (A/C/G/T) forward-strand sequence; for a
// reverse-strand mapping, the record's SEQ field is its reverse complement,
// computed once and cached across secondary calls via cache.
func WriteMappingSingle(w io.Writer, idx *index.Index, qname, decoded []byte, m mapper.SingleMapping, secondary bool, cache *RCCache) error {
	rname := idx.SeqName(m.SeqID)

	flag := 0
	if m.Strand.IsReverse() {
		flag |= flagReverse
	}
	if secondary {
		flag |= flagSecondary
	}

	seq := decoded
	if m.Strand.IsReverse() {
		seq = cache.get(decoded)
	}

	if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t255\t%dM\t*\t0\t0\t%s\t*\tAS:i:%d\n",
		qname, flag, rname, m.Pos+1, len(seq), seq, m.Score); err != nil {
		return fmt.Errorf("sam: write mapping record: %w", err)
	}
	return nil
}

// WriteUnmapped writes the unmapped sentinel record for a query with no
// placement.
func WriteUnmapped(w io.Writer, qname, decoded []byte) error {
	if _, err := fmt.Fprintf(w, "%s\t%d\t*\t0\t255\t*\t*\t0\t0\t%s\t*\tAS:i:0\n", qname, flagUnmapped, decoded); err != nil {
		return fmt.Errorf("sam: write unmapped record: %w", err)
	}
	return nil
}
