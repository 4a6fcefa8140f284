// Package hashfunc provides the pluggable 32-bit digests used by the
// Hashing and SaHash suffix-array variants to key their buckets/hashtables.
package hashfunc

import (
	"fmt"
	"hash/crc32"
	"hash/fnv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Func identifies one of the supported hash functions. It is stored in the
// index file as its one-byte numeric value so that a reader can reconstruct
// the exact digest used at build time.
type Func uint8

const (
	XxHash Func = iota
	Fnv
	MurmurHash
	Crc
)

// String renders the canonical lowercase name used on the CLI.
func (f Func) String() string {
	switch f {
	case XxHash:
		return "xxhash"
	case Fnv:
		return "fnv"
	case MurmurHash:
		return "murmur"
	case Crc:
		return "crc"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFunc parses the CLI/serialized name of a hash function.
func ParseFunc(s string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xxhash":
		return XxHash, nil
	case "fnv":
		return Fnv, nil
	case "murmur", "murmurhash":
		return MurmurHash, nil
	case "crc":
		return Crc, nil
	default:
		return 0, fmt.Errorf("unknown hash function %q", s)
	}
}

// Hash computes the 32-bit digest of x under f.
func (f Func) Hash(x []byte) uint32 {
	switch f {
	case XxHash:
		return uint32(xxhash.Sum64(x))
	case Fnv:
		h := fnv.New32a()
		h.Write(x)
		return h.Sum32()
	case MurmurHash:
		return murmur3Sum32(x)
	case Crc:
		return crc32.ChecksumIEEE(x)
	default:
		panic(fmt.Sprintf("hashfunc: unknown function %d", uint8(f)))
	}
}

// murmur3Sum32 computes MurmurHash3_x86_32 with a zero seed, per the
// published public-domain algorithm (no pack example vendors a MurmurHash3
// implementation, so this follows the reference mix directly).
func murmur3Sum32(data []byte) uint32 {
	const c1, c2 = 0xcc9e2d51, 0x1b873593
	var h uint32

	nblocks := len(data) / 4
	for i := 0; i < nblocks; i++ {
		k := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}

	tail := data[nblocks*4:]
	var k1 uint32
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= c1
		k1 = (k1 << 15) | (k1 >> 17)
		k1 *= c2
		h ^= k1
	}

	h ^= uint32(len(data))
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
