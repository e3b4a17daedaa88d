// Package index is a string-keyed prefix index built on internal/trie. The
// key decomposition (runes, bytes or path segments) is chosen from config.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/config"
	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/dataset"
	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/keybits"
	"github.com/kumarlokesh/sysd/exercises/prefix-trie/internal/trie"
)

// Stats summarizes the index contents
type Stats struct {
	Nodes   int
	Values  int
	Fanout  int
	MaxPath int
}

// Index stores string values under string keys
type Index interface {
	Add(key, value string)
	Get(key string) (string, error)
	Lookup(key string) (string, bool)
	Remove(keys ...string)
	// Prefix returns every entry whose key starts with prefix, sorted by key
	Prefix(prefix string) []dataset.Entry
	Load(ctx context.Context, workers int, paths ...string) (int, error)
	Stats() Stats
	Clear()
}

// New creates an empty index for the given key configuration
func New(cfg config.KeysConfig, logger zerolog.Logger) (Index, error) {
	switch cfg.Mode {
	case config.ModeRunes:
		return newKeyed[rune](keybits.Runes, func(bits []rune) string { return string(bits) }, logger)
	case config.ModeBytes:
		return newKeyed[byte](keybits.Bytes, func(bits []byte) string { return string(bits) }, logger)
	case config.ModeSegments:
		sep := cfg.Separator
		return newKeyed[string](keybits.Segments(sep), func(bits []string) string { return strings.Join(bits, sep) }, logger)
	default:
		return nil, fmt.Errorf("unknown keys mode: %q", cfg.Mode)
	}
}

type keyedIndex[B comparable] struct {
	tr   *trie.Trie[string, B, string]
	join func([]B) string
}

func newKeyed[B comparable](decompose trie.Decomposer[string, B], join func([]B) string, logger zerolog.Logger) (*keyedIndex[B], error) {
	tr, err := trie.New[string, B, string](decompose, trie.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &keyedIndex[B]{tr: tr, join: join}, nil
}

func (x *keyedIndex[B]) Add(key, value string) {
	x.tr.Add(key, value)
}

func (x *keyedIndex[B]) Get(key string) (string, error) {
	return x.tr.Get(key)
}

func (x *keyedIndex[B]) Lookup(key string) (string, bool) {
	return x.tr.TryGetValue(key)
}

func (x *keyedIndex[B]) Remove(keys ...string) {
	for _, k := range keys {
		x.tr.Remove(k)
	}
}

func (x *keyedIndex[B]) Prefix(prefix string) []dataset.Entry {
	var entries []dataset.Entry
	x.tr.Walk(prefix, func(path []B, value string) bool {
		entries = append(entries, dataset.Entry{Key: x.join(path), Value: value})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func (x *keyedIndex[B]) Load(ctx context.Context, workers int, paths ...string) (int, error) {
	return dataset.Load(ctx, x.tr, workers, paths...)
}

func (x *keyedIndex[B]) Stats() Stats {
	root := x.tr.Root()
	s := Stats{
		Values: len(x.tr.Values()),
		Fanout: root.ChildCount(),
	}
	for _, n := range root.Descendants() {
		s.Nodes++
		if n.IsLeaf() {
			if depth := len(n.Path()); depth > s.MaxPath {
				s.MaxPath = depth
			}
		}
	}
	return s
}

func (x *keyedIndex[B]) Clear() {
	x.tr.Clear()
}
