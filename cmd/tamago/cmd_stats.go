package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/rpcpool/tamago-go/index"
)

func newCmdStats() *cli.Command {
	return &cli.Command{
		Name:        "stats",
		Usage:       "report diagnostics about a built index",
		Description: "Prints summary sizing and, optionally, the suffix-array variant's bucket-size distribution.",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "path to the tamago index file"},
			&cli.StringFlag{Name: "show", Value: "summary", Usage: "summary or buckets"},
		},
		Action: runStats,
	}
}

func runStats(c *cli.Context) error {
	idx, err := index.LoadIndexFromFile(c.Path("index"))
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	switch c.String("show") {
	case "summary":
		printSummary(idx)
	case "buckets":
		printBucketDistribution(idx)
	default:
		return fmt.Errorf("unknown --show value %q (want summary or buckets)", c.String("show"))
	}
	return nil
}

func printSummary(idx *index.Index) {
	fmt.Printf("variant:       %s\n", idx.SAOptions.Kind)
	fmt.Printf("sequences:     %d\n", idx.NumSeqs())
	fmt.Printf("arena bytes:   %s\n", humanize.Bytes(uint64(len(idx.Arena))))
	fmt.Printf("total size:    %s\n", humanize.Bytes(uint64(idx.SizeBytes())))
}

func printBucketDistribution(idx *index.Index) {
	dist := idx.SA.BucketSizeDistribution()
	if dist == nil {
		fmt.Println("this variant does not expose a bucket-size distribution")
		return
	}

	sizes := make([]int, 0, len(dist))
	for size := range dist {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	for _, size := range sizes {
		fmt.Printf("%d\t%d\n", size, dist[size])
	}
}
