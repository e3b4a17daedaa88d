// Package dataset reads key/value fixtures and feeds them into an index.
//
// Two formats are understood, chosen by file extension:
//   - .yaml / .yml: a flat mapping of key to value
//   - anything else: one entry per line, key and value separated by a tab;
//     a line without a tab stores the key as its own value. Blank lines and
//     lines starting with '#' are skipped.
package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Entry is one key/value pair read from a dataset file
type Entry struct {
	Key   string
	Value string
}

// Sink receives loaded entries. Implementations must be safe for
// concurrent use when Load runs with more than one worker.
type Sink interface {
	Add(key string, value string)
}

// ReadFile reads all entries from path
func ReadFile(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		return readLines(path)
	}
}

func readYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m yaml.MapSlice
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(m))
	for _, item := range m {
		entries = append(entries, Entry{
			Key:   fmt.Sprint(item.Key),
			Value: fmt.Sprint(item.Value),
		})
	}
	return entries, nil
}

func readLines(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "\t")
		if !found {
			value = key
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s at line %d: %w", path, lineNo, err)
	}
	return entries, nil
}

// Load reads every file in paths and adds its entries to sink, using up to
// workers goroutines. It returns the number of entries added.
func Load(ctx context.Context, sink Sink, workers int, paths ...string) (int, error) {
	if workers <= 0 {
		workers = 1
	}

	counts := make([]int, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries, err := ReadFile(path)
			if err != nil {
				return err
			}
			for _, e := range entries {
				sink.Add(e.Key, e.Value)
			}
			counts[i] = len(entries)
			log.Debug().Str("path", path).Int("entries", len(entries)).Msg("Loaded dataset file")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}
