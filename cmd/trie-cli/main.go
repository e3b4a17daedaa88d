package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := &cli.Command{
		Name:      "trie-cli",
		Version:   version,
		Usage:     "load key/value datasets into a prefix trie and query them",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config file",
			},
			&cli.StringSliceFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "dataset file to load (.tsv or .yaml), may be repeated",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "key decomposition: runes, bytes or segments",
			},
			&cli.StringFlag{
				Name:  "separator",
				Usage: "segment separator used with --mode=segments",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			statsCommand(),
			getCommand(),
			prefixCommand(),
			removeCommand(),
		},
	}
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
