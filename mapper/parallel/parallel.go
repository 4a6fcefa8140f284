// Package parallel maps queries against a reference index using a bounded
// producer feeding a fixed-size worker pool, one fixed-size chunk of
// queries at a time.
package parallel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"github.com/rpcpool/tamago-go/internal/fastaio"
	"github.com/rpcpool/tamago-go/internal/seqcode"
	"github.com/rpcpool/tamago-go/mapper"
	"github.com/rpcpool/tamago-go/sam"
)

var log = logging.Logger("mapper/parallel")

// queryRecord is one (name, encoded sequence) pair pulled off the
// producer's chunk.
type queryRecord struct {
	name []byte
	seq  []byte
}

// Options configures a parallel mapping run.
type Options struct {
	// Workers is the number of goroutines mapping records concurrently
	// within a chunk. Values < 1 are treated as 1.
	Workers int
	// ChunkBytes is the approximate total encoded-sequence size, in
	// bytes, the producer accumulates into one chunk before handing it
	// to the worker pool. Values < 1 are treated as 1 (one record per
	// chunk).
	ChunkBytes int
}

// Run reads query records from r, maps each against idx via m, and writes
// SAM mapping/unmapped records to w. Chunks are read and flushed strictly
// in order; within a chunk, worker goroutines race to write their result
// to the shared output channel, so record order within a chunk is not
// preserved. ctx is checked at chunk boundaries: a cancellation is
// observed once the in-flight chunk finishes, never mid-record.
func Run(ctx context.Context, r io.Reader, w io.Writer, m *mapper.Mapper, opts Options) error {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	chunkBytes := opts.ChunkBytes
	if chunkBytes < 1 {
		chunkBytes = 1
	}

	reader := fastaio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("mapper/parallel: canceled: %w", err)
		}

		chunk, readErr := readChunk(reader, chunkBytes)
		if len(chunk) > 0 {
			if err := processChunk(m, w, chunk, workers); err != nil {
				return err
			}
			log.Debugw("flushed chunk", "records", len(chunk), "workers", workers)
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("mapper/parallel: read query record: %w", readErr)
		}
	}
}

// readChunk accumulates records until the sum of their sequence lengths
// reaches budget bytes, or the reader is exhausted. It always returns at
// least one record if the reader has any left, so a single huge record
// still makes progress. The returned error is io.EOF once the reader is
// drained, or any other read error; both may accompany a non-empty chunk.
func readChunk(reader *fastaio.Reader, budget int) ([]queryRecord, error) {
	var chunk []queryRecord
	var total int

	for total < budget {
		rec, err := reader.Read()
		if err != nil {
			return chunk, err
		}
		chunk = append(chunk, queryRecord{name: []byte(rec.Name), seq: rec.Seq})
		total += len(rec.Seq)
	}
	return chunk, nil
}

// processChunk maps every record in chunk concurrently across workers
// goroutines and writes their formatted output to w in whatever order the
// workers finish.
func processChunk(m *mapper.Mapper, w io.Writer, chunk []queryRecord, workers int) error {
	jobs := make(chan queryRecord, len(chunk))
	for _, rec := range chunk {
		jobs <- rec
	}
	close(jobs)

	results := make(chan []byte)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	if workers > len(chunk) {
		workers = len(chunk)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				buf, err := formatRecord(m, rec)
				if err != nil {
					errs <- err
					return
				}
				results <- buf
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var writeErr error
	for buf := range results {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(buf); err != nil {
			writeErr = fmt.Errorf("mapper/parallel: write output: %w", err)
		}
	}

	select {
	case err := <-errs:
		return err
	default:
	}
	return writeErr
}

// formatRecord maps one query record and renders its SAM line(s): the
// first placement is primary, any further placements are flagged
// secondary, and a query with no placement gets the unmapped sentinel.
func formatRecord(m *mapper.Mapper, rec queryRecord) ([]byte, error) {
	var buf bytes.Buffer

	encoded := seqcode.Encode(rec.seq)
	mappings := m.MapSingle(encoded)
	if len(mappings) == 0 {
		if err := sam.WriteUnmapped(&buf, rec.name, rec.seq); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var cache sam.RCCache
	for i, mp := range mappings {
		if err := sam.WriteMappingSingle(&buf, m.Index(), rec.name, rec.seq, mp, i > 0, &cache); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
