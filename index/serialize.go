package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rpcpool/tamago-go/internal/bitrank"
	"github.com/rpcpool/tamago-go/internal/hashfunc"
)

// Binary framing: an 8-byte magic, a version byte, then the reference
// arena, end-offset list, rank-dictionary words and counts, name arena and
// name-end list, and finally a tagged union for the suffix-array variant —
// all integers little-endian. encoding/gob is deliberately not used: it
// can't express a byte-exact, versioned layout over huge flat []uint32
// arrays without per-element reflection overhead.
const (
	indexMagic   = "tamagoix"
	indexVersion = 1
)

type variantTag uint8

const (
	tagFixedLengthBuckets variantTag = iota
	tagVariableLengthBuckets
	tagHashing
	tagFringed
	tagSaHash
)

// binWriter accumulates a sticky error across writes so callers don't have
// to check it after every field.
type binWriter struct {
	w   *bufio.Writer
	err error
}

func (bw *binWriter) writeRaw(b []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(b)
}

func (bw *binWriter) writeUint8(v uint8) {
	if bw.err != nil {
		return
	}
	bw.err = bw.w.WriteByte(v)
}

func (bw *binWriter) writeUint32(v uint32) {
	if bw.err != nil {
		return
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, bw.err = bw.w.Write(buf[:])
}

func (bw *binWriter) writeUint64(v uint64) {
	if bw.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, bw.err = bw.w.Write(buf[:])
}

func (bw *binWriter) writeFloat64(v float64) {
	bw.writeUint64(math.Float64bits(v))
}

func (bw *binWriter) writeBytes(b []byte) {
	bw.writeUint64(uint64(len(b)))
	bw.writeRaw(b)
}

func (bw *binWriter) writeUint64Slice(s []uint64) {
	bw.writeUint64(uint64(len(s)))
	for _, v := range s {
		bw.writeUint64(v)
	}
}

func (bw *binWriter) writeUint32Slice(s []uint32) {
	bw.writeUint64(uint64(len(s)))
	for _, v := range s {
		bw.writeUint32(v)
	}
}

func (bw *binWriter) writePairSlice(s [][2]uint32) {
	bw.writeUint64(uint64(len(s)))
	for _, p := range s {
		bw.writeUint32(p[0])
		bw.writeUint32(p[1])
	}
}

// binReader is the read-side counterpart of binWriter.
type binReader struct {
	r   *bufio.Reader
	err error
}

func (br *binReader) readRaw(n int) []byte {
	if br.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, br.err = io.ReadFull(br.r, buf)
	return buf
}

func (br *binReader) readUint8() uint8 {
	if br.err != nil {
		return 0
	}
	b, err := br.r.ReadByte()
	br.err = err
	return b
}

func (br *binReader) readUint32() uint32 {
	buf := br.readRaw(4)
	if br.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}

func (br *binReader) readUint64() uint64 {
	buf := br.readRaw(8)
	if br.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf)
}

func (br *binReader) readFloat64() float64 {
	return math.Float64frombits(br.readUint64())
}

func (br *binReader) readBytes() []byte {
	n := br.readUint64()
	if br.err != nil {
		return nil
	}
	return br.readRaw(int(n))
}

func (br *binReader) readUint64Slice() []uint64 {
	n := br.readUint64()
	if br.err != nil {
		return nil
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = br.readUint64()
	}
	return out
}

func (br *binReader) readUint32Slice() []uint32 {
	n := br.readUint64()
	if br.err != nil {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = br.readUint32()
	}
	return out
}

func (br *binReader) readPairSlice() [][2]uint32 {
	n := br.readUint64()
	if br.err != nil {
		return nil
	}
	out := make([][2]uint32, n)
	for i := range out {
		out[i] = [2]uint32{br.readUint32(), br.readUint32()}
	}
	return out
}

func writeVariant(bw *binWriter, v Variant) {
	switch sa := v.(type) {
	case *FixedLengthBuckets:
		bw.writeUint8(uint8(tagFixedLengthBuckets))
		bw.writeUint32Slice(sa.array)
		bw.writeUint32Slice(sa.offsets)
		bw.writeUint64(uint64(sa.bucketWidth))
	case *VariableLengthBuckets:
		bw.writeUint8(uint8(tagVariableLengthBuckets))
		bw.writeUint32Slice(sa.array)
		bw.writeUint32Slice(sa.offsets)
		bw.writeUint32Slice(sa.buckets)
		bw.writeUint64(uint64(sa.k))
		bw.writeFloat64(sa.f)
	case *Hashing:
		bw.writeUint8(uint8(tagHashing))
		bw.writeUint32Slice(sa.array)
		bw.writeUint32Slice(sa.offsets)
		bw.writeUint64(uint64(sa.k))
		bw.writeUint32(sa.mask)
		bw.writeUint8(uint8(sa.fn))
	case *Fringed:
		bw.writeUint8(uint8(tagFringed))
		bw.writeUint32Slice(sa.array)
		bw.writeUint32Slice(sa.offsets)
		bw.writeUint64(uint64(sa.k))
		bw.writeUint64(uint64(sa.l))
	case *SaHash:
		bw.writeUint8(uint8(tagSaHash))
		bw.writeUint32Slice(sa.array)
		bw.writePairSlice(sa.lut)
		bw.writePairSlice(sa.hashtable)
		bw.writeUint64(uint64(sa.k))
		bw.writeUint8(uint8(sa.fn))
		bw.writeUint32(sa.mask)
	default:
		panic(fmt.Sprintf("index: unsupported suffix-array variant type %T", v))
	}
}

func readVariant(br *binReader) (Variant, SAOptions) {
	tag := variantTag(br.readUint8())
	if br.err != nil {
		return nil, SAOptions{}
	}

	switch tag {
	case tagFixedLengthBuckets:
		array := br.readUint32Slice()
		offsets := br.readUint32Slice()
		width := int(br.readUint64())
		return &FixedLengthBuckets{array: array, offsets: offsets, bucketWidth: width},
			SAOptions{Kind: KindFixedLengthBuckets, FixedLengthWidth: width}
	case tagVariableLengthBuckets:
		array := br.readUint32Slice()
		offsets := br.readUint32Slice()
		buckets := br.readUint32Slice()
		k := int(br.readUint64())
		f := br.readFloat64()
		return &VariableLengthBuckets{array: array, offsets: offsets, buckets: buckets, k: k, f: f},
			SAOptions{Kind: KindVariableLengthBuckets, VariableLengthK: k, VariableLengthF: f}
	case tagHashing:
		array := br.readUint32Slice()
		offsets := br.readUint32Slice()
		k := int(br.readUint64())
		mask := br.readUint32()
		fn := hashfunc.Func(br.readUint8())
		bits := 0
		for m := mask; m != 0; m >>= 1 {
			bits++
		}
		return &Hashing{array: array, offsets: offsets, k: k, mask: mask, fn: fn},
			SAOptions{Kind: KindHashing, HashingK: k, HashingBits: bits, HashingFunc: fn}
	case tagFringed:
		array := br.readUint32Slice()
		offsets := br.readUint32Slice()
		k := int(br.readUint64())
		l := int(br.readUint64())
		return &Fringed{array: array, offsets: offsets, k: k, l: l},
			SAOptions{Kind: KindFringed, FringedL: l}
	case tagSaHash:
		array := br.readUint32Slice()
		lut := br.readPairSlice()
		hashtable := br.readPairSlice()
		k := int(br.readUint64())
		fn := hashfunc.Func(br.readUint8())
		mask := br.readUint32()
		bits := 0
		for m := mask; m != 0; m >>= 1 {
			bits++
		}
		return &SaHash{array: array, lut: lut, hashtable: hashtable, k: k, fn: fn, mask: mask},
			SAOptions{Kind: KindSaHash, SaHashK: k, SaHashBits: bits, SaHashFunc: fn}
	default:
		if br.err == nil {
			br.err = fmt.Errorf("index: unknown suffix-array variant tag %d", tag)
		}
		return nil, SAOptions{}
	}
}

// SaveTo writes idx in the framing described above.
func (idx *Index) SaveTo(w io.Writer) error {
	bw := &binWriter{w: bufio.NewWriter(w)}

	bw.writeRaw([]byte(indexMagic))
	bw.writeUint8(indexVersion)
	bw.writeBytes(idx.Arena)
	bw.writeUint64Slice(idx.Ends)
	bw.writeUint64Slice(idx.RankDict.Bits())
	bw.writeUint64Slice(idx.RankDict.Counts())
	bw.writeBytes(idx.NameArena)
	bw.writeUint64Slice(idx.NameEnds)
	writeVariant(bw, idx.SA)

	if bw.err != nil {
		return fmt.Errorf("index: write: %w", bw.err)
	}
	if err := bw.w.Flush(); err != nil {
		return fmt.Errorf("index: flush: %w", err)
	}
	return nil
}

// SaveToFile serializes idx to a new file at path.
func (idx *Index) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("index: create %q: %w", path, err)
	}
	defer f.Close()

	if err := idx.SaveTo(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadIndexFrom reads an Index previously written by SaveTo.
func LoadIndexFrom(r io.Reader) (*Index, error) {
	br := &binReader{r: bufio.NewReader(r)}

	magic := br.readRaw(len(indexMagic))
	if br.err == nil && string(magic) != indexMagic {
		br.err = fmt.Errorf("not a tamago index file (bad magic)")
	}
	version := br.readUint8()
	if br.err == nil && version != indexVersion {
		br.err = fmt.Errorf("unsupported index file version %d", version)
	}

	arena := br.readBytes()
	ends := br.readUint64Slice()
	bits := br.readUint64Slice()
	counts := br.readUint64Slice()
	nameArena := br.readBytes()
	nameEnds := br.readUint64Slice()
	sa, saOptions := readVariant(br)

	if br.err != nil {
		return nil, fmt.Errorf("index: read: %w", br.err)
	}

	return &Index{
		Arena:     arena,
		Ends:      ends,
		RankDict:  bitrank.FromParts(bits, counts),
		NameArena: nameArena,
		NameEnds:  nameEnds,
		SA:        sa,
		SAOptions: saOptions,
	}, nil
}

// LoadIndexFromFile opens path and reads an Index from it.
func LoadIndexFromFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("index: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadIndexFrom(f)
}
