package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/internal/hashfunc"
)

func newCmdIndex() *cli.Command {
	return &cli.Command{
		Name:        "index",
		Usage:       "build a reference index from a FASTA file",
		Description: "Reads a FASTA reference and writes a binary tamago index built with the selected suffix-array variant.",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "reference", Aliases: []string{"r"}, Required: true, Usage: "path to the reference FASTA file"},
			&cli.PathFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "path to write the built index to"},
			&cli.StringFlag{Name: "header-sep", Usage: "trim each record's display name at the first occurrence of this separator"},
			&cli.StringFlag{Name: "variant", Value: "fixed-length-buckets", Usage: "suffix-array variant: fixed-length-buckets, variable-length-buckets, hashing, fringed, sa-hash"},

			&cli.IntFlag{Name: "fixed-length-width", Value: 13, Usage: "fixed-length-buckets: prefix width W"},

			&cli.IntFlag{Name: "variable-length-k", Value: 13, Usage: "variable-length-buckets: primary prefix width K"},
			&cli.Float64Flag{Name: "variable-length-f", Value: 1.0, Usage: "variable-length-buckets: secondary-width load factor F"},

			&cli.IntFlag{Name: "hashing-k", Value: 20, Usage: "hashing: prefix length K hashed per entry"},
			&cli.IntFlag{Name: "hashing-bits", Value: 24, Usage: "hashing: hashtable size as 2^bits slots"},
			&cli.StringFlag{Name: "hashing-func", Value: "xxhash", Usage: "hashing: hash function (xxhash, fnv, murmur, crc)"},

			&cli.IntFlag{Name: "fringed-l", Value: 8, Usage: "fringed: left-split width L (K = L+16)"},

			&cli.IntFlag{Name: "sahash-k", Value: 20, Usage: "sa-hash: prefix length K hashed per entry"},
			&cli.IntFlag{Name: "sahash-bits", Value: 24, Usage: "sa-hash: open-addressed table size as 2^bits slots"},
			&cli.StringFlag{Name: "sahash-func", Value: "xxhash", Usage: "sa-hash: hash function (xxhash, fnv, murmur, crc)"},
		},
		Action: runIndex,
	}
}

func runIndex(c *cli.Context) error {
	opts, err := saOptionsFromFlags(c)
	if err != nil {
		return err
	}

	builder, err := index.NewIndexBuilderFromFile(c.Path("reference"))
	if err != nil {
		return err
	}
	builder = builder.WithSAOptions(opts).WithHeaderSep(c.String("header-sep"))

	idx, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := idx.SaveToFile(c.Path("output")); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	log.Infow("index built",
		"numSeqs", idx.NumSeqs(),
		"sizeBytes", idx.SizeBytes(),
		"variant", opts.Kind.String(),
		"output", c.Path("output"),
	)
	return nil
}

func saOptionsFromFlags(c *cli.Context) (index.SAOptions, error) {
	switch c.String("variant") {
	case "fixed-length-buckets":
		return index.SAOptions{
			Kind:             index.KindFixedLengthBuckets,
			FixedLengthWidth: c.Int("fixed-length-width"),
		}, nil
	case "variable-length-buckets":
		return index.SAOptions{
			Kind:            index.KindVariableLengthBuckets,
			VariableLengthK: c.Int("variable-length-k"),
			VariableLengthF: c.Float64("variable-length-f"),
		}, nil
	case "hashing":
		fn, err := hashfunc.ParseFunc(c.String("hashing-func"))
		if err != nil {
			return index.SAOptions{}, err
		}
		return index.SAOptions{
			Kind:        index.KindHashing,
			HashingK:    c.Int("hashing-k"),
			HashingBits: c.Int("hashing-bits"),
			HashingFunc: fn,
		}, nil
	case "fringed":
		return index.SAOptions{
			Kind:     index.KindFringed,
			FringedL: c.Int("fringed-l"),
		}, nil
	case "sa-hash":
		fn, err := hashfunc.ParseFunc(c.String("sahash-func"))
		if err != nil {
			return index.SAOptions{}, err
		}
		return index.SAOptions{
			Kind:       index.KindSaHash,
			SaHashK:    c.Int("sahash-k"),
			SaHashBits: c.Int("sahash-bits"),
			SaHashFunc: fn,
		}, nil
	default:
		return index.SAOptions{}, fmt.Errorf("unknown suffix-array variant %q", c.String("variant"))
	}
}
