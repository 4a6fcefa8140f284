// Package serial implements the single-threaded fallback for mapping a
// query FASTA against a reference index, used when --threads=1.
package serial

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rpcpool/tamago-go/internal/fastaio"
	"github.com/rpcpool/tamago-go/internal/seqcode"
	"github.com/rpcpool/tamago-go/mapper"
	"github.com/rpcpool/tamago-go/sam"
)

// chunkSize bounds how often the ctx.Done() check runs; processing
// happens one record at a time regardless.
const chunkSize = 256

// Run reads query records from r, maps each against m in sequence, and
// writes SAM mapping/unmapped records to w. ctx is checked every chunkSize
// records, not mid-record.
func Run(ctx context.Context, r io.Reader, w io.Writer, m *mapper.Mapper) error {
	reader := fastaio.NewReader(r)

	var buf bytes.Buffer
	var cache sam.RCCache

	n := 0
	for {
		if n%chunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("mapper/serial: canceled: %w", err)
			}
		}

		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("mapper/serial: read query record: %w", err)
		}
		n++

		qname := []byte(rec.Name)
		encoded := seqcode.Encode(rec.Seq)
		mappings := m.MapSingle(encoded)

		if len(mappings) == 0 {
			if err := sam.WriteUnmapped(w, qname, rec.Seq); err != nil {
				return err
			}
			continue
		}

		cache = sam.RCCache{}
		for i, mp := range mappings {
			buf.Reset()
			if err := sam.WriteMappingSingle(&buf, m.Index(), qname, rec.Seq, mp, i > 0, &cache); err != nil {
				return err
			}
			if _, err := w.Write(buf.Bytes()); err != nil {
				return fmt.Errorf("mapper/serial: write output: %w", err)
			}
		}
	}
}
