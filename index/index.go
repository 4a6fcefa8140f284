// Package index builds and serves the persistent reference index: an
// encoded reference arena, a rank dictionary mapping text positions to
// sequence ordinals, and one of five suffix-array prefix-accelerator
// variants.
package index

import (
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"

	"github.com/rpcpool/tamago-go/internal/bitrank"
	"github.com/rpcpool/tamago-go/internal/fastaio"
	"github.com/rpcpool/tamago-go/internal/seqcode"
)

var log = logging.Logger("index")

// delimiterByte is the raw ASCII byte pushed between reference sequences
// before the arena is encoded in place; seqcode.Encode maps it to
// seqcode.Delimiter.
const delimiterByte = '$'

// SequenceID identifies one reference sequence by its position in the
// order records were read from the reference file.
type SequenceID int

// Index is the read-only artifact produced by IndexBuilder.Build and
// consumed by the mapper. Arena is the encoded, delimiter-joined reference
// arena; Ends and NameEnds are parallel directories into Arena and
// NameArena respectively.
type Index struct {
	Arena     []byte
	Ends      []uint64
	RankDict  *bitrank.Rank9b
	NameArena []byte
	NameEnds  []uint64
	SA        Variant

	// SAOptions records the parameters the variant was built with, so
	// `stats` and re-indexing tooling can report them without type-switching
	// on SA.
	SAOptions SAOptions
}

// NumSeqs reports the number of reference sequences in the index.
func (idx *Index) NumSeqs() int {
	return len(idx.Ends) - 1
}

// SeqName returns the display name of sequence id, trimmed of its
// trailing newline.
func (idx *Index) SeqName(id SequenceID) []byte {
	return idx.NameArena[idx.NameEnds[id] : idx.NameEnds[id+1]-1]
}

// SeqRange returns the [begin, end) byte range of sequence id within Arena,
// excluding its closing delimiter.
func (idx *Index) SeqRange(id SequenceID) (int, int) {
	return int(idx.Ends[id]), int(idx.Ends[id+1] - 1)
}

// Seq returns the encoded bytes of sequence id.
func (idx *Index) Seq(id SequenceID) []byte {
	begin, end := idx.SeqRange(id)
	return idx.Arena[begin:end]
}

// SeqIDFromPos maps a global arena position to the sequence it belongs to.
// It panics on a position outside every sequence's range, mirroring the
// original implementation's assertion-based bounds check.
func (idx *Index) SeqIDFromPos(pos int) SequenceID {
	if pos < int(idx.Ends[0]) || pos >= len(idx.Arena) {
		panic("index: position out of bounds")
	}

	rank := idx.RankDict.Rank(pos)
	if rank < 1 {
		panic("index: rank invariant violated")
	}

	seqID := SequenceID(rank - 1)
	if int(seqID) >= idx.NumSeqs() {
		panic("index: rank invariant violated")
	}
	return seqID
}

// SizeBytes reports the index's total in-memory footprint, for the `stats`
// CLI subcommand.
func (idx *Index) SizeBytes() int {
	return len(idx.Arena) +
		8*len(idx.Ends) +
		idx.RankDict.SizeBytes() +
		len(idx.NameArena) +
		8*len(idx.NameEnds) +
		idx.SA.SizeBytes()
}

// IndexBuilder accumulates reference records and builds an Index.
type IndexBuilder struct {
	reader    *fastaio.Reader
	closer    io.Closer
	saOptions SAOptions
	headerSep string
}

// NewIndexBuilder builds from an already-open reader; the caller retains
// ownership and must close it.
func NewIndexBuilder(r io.Reader) *IndexBuilder {
	return &IndexBuilder{reader: fastaio.NewReader(r), saOptions: DefaultSAOptions()}
}

// NewIndexBuilderFromFile opens path and builds from it; Build closes the
// file whether it succeeds or fails.
func NewIndexBuilderFromFile(path string) (*IndexBuilder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("index: open reference file %q: %w", path, err)
	}
	b := NewIndexBuilder(f)
	b.closer = f
	return b, nil
}

// WithSAOptions selects and parameterizes the suffix-array variant to
// build; the default is FixedLengthBuckets(13), matching the original
// implementation's default.
func (b *IndexBuilder) WithSAOptions(opts SAOptions) *IndexBuilder {
	b.saOptions = opts
	return b
}

// WithHeaderSep sets the separator each record's header is trimmed at
// before being stored as its display name.
func (b *IndexBuilder) WithHeaderSep(sep string) *IndexBuilder {
	b.headerSep = sep
	return b
}

// Build reads every record from the underlying reader, assembles the
// delimiter-joined reference arena, and constructs the rank dictionary and
// the configured suffix-array variant over it.
func (b *IndexBuilder) Build() (*Index, error) {
	if b.closer != nil {
		defer b.closer.Close()
	}

	seq := []byte{delimiterByte}
	ends := []uint64{1}
	var nameArena []byte
	nameEnds := []uint64{0}

	for {
		rec, err := b.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("index: read reference record: %w", err)
		}

		seq = append(seq, rec.Seq...)
		seq = append(seq, delimiterByte)
		ends = append(ends, uint64(len(seq)))

		name := fastaio.ExtractName(rec.Name, b.headerSep)
		nameArena = append(nameArena, name...)
		nameArena = append(nameArena, '\n')
		nameEnds = append(nameEnds, uint64(len(nameArena)))
	}

	if len(seq) > int(^uint32(0))+1 {
		return nil, fmt.Errorf("index: reference arena of %d bytes exceeds the 2^32 suffix-array limit", len(seq))
	}

	seqcode.EncodeInPlace(seq)

	numWords := (len(seq) + 63) / 64
	bits := make([]uint64, numWords)
	for _, end := range ends {
		pos := end - 1
		bits[pos/64] |= uint64(1) << (pos % 64)
	}
	rankDict := bitrank.NewRank9b(bits, len(seq))

	sa := buildVariant(seq, b.saOptions)

	log.Infow("built index",
		"numSeqs", len(ends)-1,
		"arenaBytes", len(seq),
		"variant", b.saOptions.Kind.String(),
	)

	return &Index{
		Arena:     seq,
		Ends:      ends,
		RankDict:  rankDict,
		NameArena: nameArena,
		NameEnds:  nameEnds,
		SA:        sa,
		SAOptions: b.saOptions,
	}, nil
}
