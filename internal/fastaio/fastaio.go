// Package fastaio implements a minimal FASTA reader, standing in for the
// external sequence-file reader the reference design treats as an
// interface-only collaborator.
package fastaio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one (name, sequence) pair read from a FASTA file. Name is the
// raw header text following '>', with no trimming applied.
type Record struct {
	Name string
	Seq  []byte
}

// Reader reads FASTA records one at a time from an underlying stream.
type Reader struct {
	sc      *bufio.Scanner
	pending string
	hasMore bool
}

// NewReader wraps r as a FASTA reader.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)
	rd := &Reader{sc: sc}
	rd.fill()
	return rd
}

// fill advances to the next non-blank line, if any.
func (r *Reader) fill() {
	for r.sc.Scan() {
		line := r.sc.Text()
		if line != "" {
			r.pending = line
			r.hasMore = true
			return
		}
	}
	r.hasMore = false
}

// Read returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Read() (Record, error) {
	if !r.hasMore {
		return Record{}, io.EOF
	}
	if !strings.HasPrefix(r.pending, ">") {
		return Record{}, fmt.Errorf("fastaio: expected '>' header, got %q", r.pending)
	}
	name := strings.TrimPrefix(r.pending, ">")
	if name == "" {
		return Record{}, fmt.Errorf("fastaio: expecting id for record")
	}
	r.fill()

	var seq []byte
	for r.hasMore && !strings.HasPrefix(r.pending, ">") {
		seq = append(seq, []byte(r.pending)...)
		r.fill()
	}

	return Record{Name: name, Seq: seq}, nil
}

// ExtractName trims id at the first occurrence of sep, if sep is non-empty
// and present; otherwise id is returned unchanged.
func ExtractName(id string, sep string) []byte {
	if sep != "" {
		if pos := strings.Index(id, sep); pos >= 0 {
			return []byte(id[:pos])
		}
	}
	return []byte(id)
}
