package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/config"
	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/index"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "show node and value counts of the loaded datasets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			idx, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			printStats(cmd.Root().Writer, idx.Stats())
			return nil
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print the value stored under a key",
		ArgsUsage: "<key>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("get expects exactly one key")
			}
			idx, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			value, err := idx.Get(cmd.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, value)
			return nil
		},
	}
}

func prefixCommand() *cli.Command {
	return &cli.Command{
		Name:      "prefix",
		Usage:     "list every entry whose key starts with a prefix",
		ArgsUsage: "[prefix]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			idx, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			w := cmd.Root().Writer
			for _, e := range idx.Prefix(cmd.Args().First()) {
				fmt.Fprintf(w, "%s\t%s\n", e.Key, e.Value)
			}
			return nil
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove keys from the loaded datasets and show the resulting stats",
		ArgsUsage: "<key>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errors.New("remove expects at least one key")
			}
			idx, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			before := idx.Stats()
			idx.Remove(cmd.Args().Slice()...)
			after := idx.Stats()

			log.Info().
				Int("nodes_pruned", before.Nodes-after.Nodes).
				Int("values_removed", before.Values-after.Values).
				Msg("Removed keys")
			printStats(cmd.Root().Writer, after)
			return nil
		},
	}
}

// loadIndex resolves configuration from the config file and root flags,
// sets up logging and loads every dataset file into a fresh index.
func loadIndex(ctx context.Context, cmd *cli.Command) (index.Index, error) {
	root := cmd.Root()

	cfg, err := config.LoadConfig(root.String("config"))
	if err != nil {
		return nil, err
	}
	if root.IsSet("mode") {
		cfg.Keys.Mode = root.String("mode")
	}
	if root.IsSet("separator") {
		cfg.Keys.Separator = root.String("separator")
	}
	if root.IsSet("log-level") {
		cfg.Log.Level = root.String("log-level")
	}
	cfg.Dataset.Files = append(cfg.Dataset.Files, root.StringSlice("data")...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Log, root.ErrWriter)
	if err != nil {
		return nil, err
	}
	log.Logger = logger

	idx, err := index.New(cfg.Keys, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	n, err := idx.Load(ctx, cfg.Dataset.Workers, cfg.Dataset.Files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	log.Debug().
		Int("files", len(cfg.Dataset.Files)).
		Int("entries", n).
		Dur("duration", time.Since(start)).
		Msg("Loaded datasets")

	return idx, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func printStats(w io.Writer, s index.Stats) {
	fmt.Fprintf(w, "nodes:    %d\n", s.Nodes)
	fmt.Fprintf(w, "values:   %d\n", s.Values)
	fmt.Fprintf(w, "fanout:   %d\n", s.Fanout)
	fmt.Fprintf(w, "max path: %d\n", s.MaxPath)
}
