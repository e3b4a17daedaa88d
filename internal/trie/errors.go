package trie

import "errors"

var (
	// ErrInvalidArgument is returned for a missing decomposer or a negative trim depth
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrKeyNotFound is returned by Get when no node exists for the key
	ErrKeyNotFound = errors.New("key not found")
)
