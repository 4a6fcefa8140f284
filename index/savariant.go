package index

import (
	"fmt"

	"github.com/rpcpool/tamago-go/internal/hashfunc"
)

// SAVariantKind selects which of the five suffix-array prefix accelerators
// to build.
type SAVariantKind uint8

const (
	KindFixedLengthBuckets SAVariantKind = iota
	KindVariableLengthBuckets
	KindHashing
	KindFringed
	KindSaHash
)

func (k SAVariantKind) String() string {
	switch k {
	case KindFixedLengthBuckets:
		return "fixed-length-buckets"
	case KindVariableLengthBuckets:
		return "variable-length-buckets"
	case KindHashing:
		return "hashing"
	case KindFringed:
		return "fringed"
	case KindSaHash:
		return "sa-hash"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// SAOptions parameterizes the suffix-array variant an IndexBuilder
// constructs. Only the fields relevant to Kind are consulted.
type SAOptions struct {
	Kind SAVariantKind

	FixedLengthWidth int // W

	VariableLengthK int     // K
	VariableLengthF float64 // F

	HashingK    int
	HashingBits int
	HashingFunc hashfunc.Func

	FringedL int

	SaHashK    int
	SaHashBits int
	SaHashFunc hashfunc.Func
}

// DefaultSAOptions returns FixedLengthBuckets(13), the original
// implementation's default when no variant is selected on the CLI.
func DefaultSAOptions() SAOptions {
	return SAOptions{Kind: KindFixedLengthBuckets, FixedLengthWidth: 13}
}

func buildVariant(text []byte, opts SAOptions) Variant {
	switch opts.Kind {
	case KindFixedLengthBuckets:
		return NewFixedLengthBuckets(text, opts.FixedLengthWidth)
	case KindVariableLengthBuckets:
		return NewVariableLengthBuckets(text, opts.VariableLengthK, opts.VariableLengthF)
	case KindHashing:
		return NewHashing(text, opts.HashingK, opts.HashingBits, opts.HashingFunc)
	case KindFringed:
		return NewFringed(text, opts.FringedL)
	case KindSaHash:
		return NewSaHash(text, opts.SaHashK, opts.SaHashBits, opts.SaHashFunc)
	default:
		panic(fmt.Sprintf("index: unknown suffix-array variant kind %d", uint8(opts.Kind)))
	}
}
