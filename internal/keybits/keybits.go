// Package keybits provides decomposers for common key types.
package keybits

import "strings"

// Runes splits a string into its runes.
func Runes(key string) []rune {
	return []rune(key)
}

// Bytes splits a string into its bytes.
func Bytes(key string) []byte {
	return []byte(key)
}

// Segments returns a decomposer that splits path-like keys on sep,
// dropping empty segments so "/a//b/" and "a/b" map to the same path.
func Segments(sep string) func(key string) []string {
	return func(key string) []string {
		parts := strings.Split(key, sep)
		segments := parts[:0]
		for _, p := range parts {
			if p != "" {
				segments = append(segments, p)
			}
		}
		return segments
	}
}

// Prefix wraps decompose so that at most n key bits are produced. It is
// meant for partial-key lookups, e.g. finding the node for the first four
// characters of a longer key.
func Prefix[K any, B comparable](n int, decompose func(K) []B) func(K) []B {
	return func(key K) []B {
		bits := decompose(key)
		if n < 0 {
			return bits[:0]
		}
		if len(bits) > n {
			return bits[:n]
		}
		return bits
	}
}
