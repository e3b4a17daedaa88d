package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSink struct {
	mu sync.Mutex
	m  map[string]string
}

func newMapSink() *mapSink {
	return &mapSink{m: make(map[string]string)}
}

func (s *mapSink) Add(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile_Lines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.tsv", "# comment\napple\tfruit\n\nbanana\n")

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Key: "apple", Value: "fruit"},
		{Key: "banana", Value: "banana"},
	}, entries)
}

func TestReadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.yaml", "test: short\ntesting: long\ncount: 3\n")

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Key: "test", Value: "short"},
		{Key: "testing", Value: "long"},
		{Key: "count", Value: "3"},
	}, entries)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yml", "key: [unterminated\n")
	_, err = ReadFile(bad)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tsv", "a\t1\nb\t2\n")
	b := writeFile(t, dir, "b.yaml", "c: \"3\"\n")

	sink := newMapSink()
	n, err := Load(context.Background(), sink, 2, a, b)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, sink.m)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), newMapSink(), 0, filepath.Join(t.TempDir(), "nope.tsv"))
	assert.Error(t, err)
}
