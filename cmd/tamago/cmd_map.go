package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/rpcpool/tamago-go/index"
	"github.com/rpcpool/tamago-go/mapper"
	"github.com/rpcpool/tamago-go/mapper/parallel"
	"github.com/rpcpool/tamago-go/mapper/serial"
	"github.com/rpcpool/tamago-go/sam"
)

func newCmdMap() *cli.Command {
	return &cli.Command{
		Name:        "map",
		Usage:       "map single-end reads against a reference index",
		Description: "Seeds each read in a query FASTA against a tamago index and writes SAM records to stdout or --output.",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "path to the tamago index file"},
			&cli.PathFlag{Name: "reads", Aliases: []string{"q"}, Required: true, Usage: "path to the query FASTA file"},
			&cli.PathFlag{Name: "output", Aliases: []string{"o"}, Usage: "path to write SAM output to (default: stdout)"},
			&cli.StringFlag{Name: "library-type", Value: "fr-unstranded", Usage: "fr-unstranded, fr-firststrand or fr-secondstrand"},
			&cli.IntFlag{Name: "seed-min-len", Value: 31, Usage: "minimum seed length"},
			&cli.IntFlag{Name: "seed-max-hits", Value: 10, Usage: "stop extending a seed once its hit count is at or below this"},
			&cli.IntFlag{Name: "sparsity", Value: 1, Usage: "seed every Nth query offset instead of every offset"},
			&cli.IntFlag{Name: "threads", Value: runtime.NumCPU(), Usage: "worker goroutines; 1 uses the serial code path"},
			&cli.IntFlag{Name: "chunk-size-mb", Value: 4, Usage: "approximate size, in MiB, of each chunk dispatched to the worker pool"},
		},
		Action: runMap,
	}
}

func runMap(c *cli.Context) error {
	idx, err := index.LoadIndexFromFile(c.Path("index"))
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	libType, err := mapper.ParseLibraryType(c.String("library-type"))
	if err != nil {
		return err
	}

	m := mapper.NewMapperBuilder(idx).
		LibraryType(libType).
		SeedMinLen(c.Int("seed-min-len")).
		SeedMaxHits(c.Int("seed-max-hits")).
		Sparsity(c.Int("sparsity")).
		Build()

	reads, err := os.Open(c.Path("reads"))
	if err != nil {
		return fmt.Errorf("open reads file: %w", err)
	}
	defer reads.Close()

	out := os.Stdout
	if outPath := c.Path("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := sam.WriteHeader(out, "tamago", gitCommitSHA, idx); err != nil {
		return err
	}

	threads := c.Int("threads")
	if threads <= 1 {
		return serial.Run(c.Context, reads, out, m)
	}

	chunkBytes := c.Int("chunk-size-mb") * 1024 * 1024
	return parallel.Run(c.Context, reads, out, m, parallel.Options{
		Workers:    threads,
		ChunkBytes: chunkBytes,
	})
}
