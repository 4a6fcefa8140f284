// Command tamago builds and queries tamago reference indexes: a suffix-
// array-backed seed search over a FASTA reference, with five selectable
// prefix-accelerator variants.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("tamago")

var gitCommitSHA = ""

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			log.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}

		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:        "tamago",
		Version:     gitCommitSHA,
		Description: "Build and query suffix-array read-mapping indexes over FASTA references.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logging.SetAllLoggers(logging.LevelDebug)
			} else {
				logging.SetAllLoggers(logging.LevelInfo)
			}
			return nil
		},
		Commands: []*cli.Command{
			newCmdIndex(),
			newCmdMap(),
			newCmdStats(),
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
