// Package trie implements a generic, concurrency-safe prefix tree.
//
// Keys of any type K are split into ordered key bits of type B by a
// caller-supplied Decomposer. Each bit selects one edge from a node to a
// child, and values of type V may be stored on any node except the root.
// Removing a key prunes the branch nodes it leaves without values or
// children.
package trie

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Decomposer splits a key into the ordered key bits used to walk the trie.
// It must be deterministic.
type Decomposer[K any, B comparable] func(key K) []B

// Trie maps keys to values through a tree of Nodes
type Trie[K any, B comparable, V any] struct {
	root      *Node[B, V]
	decompose Decomposer[K, B]
	logger    zerolog.Logger
}

// New creates an empty trie that decomposes keys with decompose.
func New[K any, B comparable, V any](decompose Decomposer[K, B], opts ...Option) (*Trie[K, B, V], error) {
	if decompose == nil {
		return nil, fmt.Errorf("nil decomposer: %w", ErrInvalidArgument)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var zero B
	return &Trie[K, B, V]{
		root:      newNode[B, V](nil, zero),
		decompose: decompose,
		logger:    o.logger,
	}, nil
}

// Root returns the root node. It is the same node for the trie's lifetime.
func (t *Trie[K, B, V]) Root() *Node[B, V] {
	return t.root
}

// Add stores value under key, overwriting any previous value.
func (t *Trie[K, B, V]) Add(key K, value V) {
	t.MoveToNode(key).SetValue(value)
}

// Set is equivalent to Add.
func (t *Trie[K, B, V]) Set(key K, value V) {
	t.Add(key, value)
}

// MoveToNode returns the node for key, creating the path to it as needed.
func (t *Trie[K, B, V]) MoveToNode(key K) *Node[B, V] {
	node := t.root
	for _, bit := range t.decompose(key) {
		node = node.GetOrCreateChild(bit)
	}
	return node
}

// Remove clears the value stored under key and detaches every node on the
// path that is left with neither a value nor children. Removing an absent
// key does nothing.
func (t *Trie[K, B, V]) Remove(key K) {
	node, ok := t.Find(key)
	if !ok {
		return
	}
	node.ClearValue()

	pruned := 0
	for cur := node; !cur.IsRoot(); cur = cur.parent {
		if !cur.parent.removeDeadChild(cur.bit, cur) {
			break
		}
		pruned++
	}

	if pruned > 0 {
		t.logger.Debug().
			Int("pruned", pruned).
			Interface("path", node.Path()).
			Msg("Pruned dead branch")
	}
}

// Find returns the node for key without creating anything.
func (t *Trie[K, B, V]) Find(key K) (*Node[B, V], bool) {
	return t.FindBits(t.decompose(key))
}

// FindWith looks key up using decompose instead of the trie's own
// decomposer, which allows partial-key queries such as matching on a
// prefix of the key. A nil decompose falls back to the trie's decomposer.
func (t *Trie[K, B, V]) FindWith(key K, decompose Decomposer[K, B]) (*Node[B, V], bool) {
	if decompose == nil {
		return t.Find(key)
	}
	return t.FindBits(decompose(key))
}

// FindBits walks bits from the root and returns the node reached.
func (t *Trie[K, B, V]) FindBits(bits []B) (*Node[B, V], bool) {
	node := t.root
	for _, bit := range bits {
		child, ok := node.TryGetChild(bit)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// TryGetValue returns the value stored under key. ok is false when the
// path does not exist or its last node holds no value.
func (t *Trie[K, B, V]) TryGetValue(key K) (value V, ok bool) {
	node, found := t.Find(key)
	if !found {
		return value, false
	}
	return node.Value()
}

// Contains reports whether a value is stored under key.
func (t *Trie[K, B, V]) Contains(key K) bool {
	_, ok := t.TryGetValue(key)
	return ok
}

// Get returns the value stored under key. It fails with ErrKeyNotFound
// only when no node exists for key; a node that exists without a value
// yields the zero value.
func (t *Trie[K, B, V]) Get(key K) (V, error) {
	node, ok := t.Find(key)
	if !ok {
		var zero V
		return zero, fmt.Errorf("get %v: %w", key, ErrKeyNotFound)
	}
	v, _ := node.Value()
	return v, nil
}

// Count returns the number of nodes in the trie, excluding the root.
func (t *Trie[K, B, V]) Count() int {
	return t.root.DescendantCount()
}

// Values returns a snapshot of every stored value, excluding any value
// stored on the root.
func (t *Trie[K, B, V]) Values() []V {
	return t.root.Values()
}

// ValuesWithPrefix returns the values stored under key and every key that
// extends it.
func (t *Trie[K, B, V]) ValuesWithPrefix(key K) []V {
	node, ok := t.Find(key)
	if !ok {
		return nil
	}
	return node.Values()
}

// Walk calls fn with the key bits and value of every valued node under
// key, depth-first, until fn returns false.
func (t *Trie[K, B, V]) Walk(key K, fn WalkFunc[B, V]) {
	node, ok := t.Find(key)
	if !ok {
		return
	}
	node.Walk(fn)
}

// Clear removes every value and node. The root node itself is kept.
func (t *Trie[K, B, V]) Clear() {
	t.root.Clear()
	t.logger.Debug().Msg("Cleared trie")
}
