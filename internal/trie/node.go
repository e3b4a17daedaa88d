package trie

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Node represents one position in the trie.
//
// Locking: mu guards children only. A goroutine never holds a child's mu
// while holding an ancestor's, so recursive traversals snapshot the
// children under the lock and recurse after releasing it.
type Node[B comparable, V any] struct {
	// bit is the key bit that leads from parent to this node (unused on the root)
	bit B

	// parent is a lookup edge for upward pruning, never an ownership edge
	parent *Node[B, V]

	// value is nil when the node holds no value
	value atomic.Pointer[V]

	mu       sync.Mutex
	children map[B]*Node[B, V]
}

// newNode creates a detached node reached from parent through bit
func newNode[B comparable, V any](parent *Node[B, V], bit B) *Node[B, V] {
	return &Node[B, V]{
		bit:    bit,
		parent: parent,
	}
}

// Bit returns the key bit leading to this node. The zero value on the root.
func (n *Node[B, V]) Bit() B {
	return n.bit
}

// Parent returns the parent node, nil for the root.
func (n *Node[B, V]) Parent() *Node[B, V] {
	return n.parent
}

// IsRoot reports whether n has no parent.
func (n *Node[B, V]) IsRoot() bool {
	return n.parent == nil
}

// Path returns the key bits from the root down to n.
func (n *Node[B, V]) Path() []B {
	depth := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		depth++
	}
	path := make([]B, depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		depth--
		path[depth] = cur.bit
	}
	return path
}

// Value returns the stored value and whether one is present.
func (n *Node[B, V]) Value() (V, bool) {
	if p := n.value.Load(); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// HasValue reports whether a value is stored on n.
func (n *Node[B, V]) HasValue() bool {
	return n.value.Load() != nil
}

// SetValue stores v on n, replacing any previous value.
func (n *Node[B, V]) SetValue(v V) {
	n.value.Store(&v)
}

// ClearValue removes the value without touching children.
func (n *Node[B, V]) ClearValue() {
	n.value.Store(nil)
}

// ChildCount returns the number of immediate children.
func (n *Node[B, V]) ChildCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}

// IsLeaf reports whether n has no children.
func (n *Node[B, V]) IsLeaf() bool {
	return n.ChildCount() == 0
}

// isDead reports whether n holds neither a value nor children.
func (n *Node[B, V]) isDead() bool {
	return !n.HasValue() && n.IsLeaf()
}

// Child returns the child reached through bit, or nil.
func (n *Node[B, V]) Child(bit B) *Node[B, V] {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.children[bit]
}

// TryGetChild returns the child reached through bit and whether it exists.
func (n *Node[B, V]) TryGetChild(bit B) (*Node[B, V], bool) {
	child := n.Child(bit)
	return child, child != nil
}

// GetOrCreateChild returns the child for bit, creating and attaching it
// first if it does not exist.
func (n *Node[B, V]) GetOrCreateChild(bit B) *Node[B, V] {
	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.children[bit]; ok {
		return child
	}
	if n.children == nil {
		n.children = make(map[B]*Node[B, V])
	}
	child := newNode(n, bit)
	n.children[bit] = child
	return child
}

// RemoveChild detaches the child for bit together with its subtree.
func (n *Node[B, V]) RemoveChild(bit B) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.children, bit)
}

// removeDeadChild detaches child from n if it is still attached under bit
// and still holds no value and no children. It reports whether the child
// was removed.
func (n *Node[B, V]) removeDeadChild(bit B, child *Node[B, V]) bool {
	if !child.isDead() {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.children[bit] != child || child.HasValue() {
		return false
	}
	delete(n.children, bit)
	return true
}

// Clear removes the value and every child.
func (n *Node[B, V]) Clear() {
	n.ClearValue()

	n.mu.Lock()
	n.children = nil
	n.mu.Unlock()
}

// Trim removes every node deeper than depth levels below n. Trim(0)
// removes all immediate children, Trim(1) all grandchildren, and so on.
func (n *Node[B, V]) Trim(depth int) error {
	if depth < 0 {
		return fmt.Errorf("trim depth %d: %w", depth, ErrInvalidArgument)
	}
	n.trim(depth)
	return nil
}

func (n *Node[B, V]) trim(depth int) {
	if depth == 0 {
		n.mu.Lock()
		n.children = nil
		n.mu.Unlock()
		return
	}
	for _, child := range n.Children() {
		child.trim(depth - 1)
	}
}

// Children returns a snapshot of the immediate children in no particular order.
func (n *Node[B, V]) Children() []*Node[B, V] {
	n.mu.Lock()
	defer n.mu.Unlock()

	children := make([]*Node[B, V], 0, len(n.children))
	for _, child := range n.children {
		children = append(children, child)
	}
	return children
}

// Descendants returns a snapshot of every node below n at any depth,
// parents before their children.
func (n *Node[B, V]) Descendants() []*Node[B, V] {
	var result []*Node[B, V]
	n.collectDescendants(&result)
	return result
}

func (n *Node[B, V]) collectDescendants(result *[]*Node[B, V]) {
	for _, child := range n.Children() {
		*result = append(*result, child)
		child.collectDescendants(result)
	}
}

// DescendantCount returns the number of nodes below n, excluding n.
func (n *Node[B, V]) DescendantCount() int {
	count := 0
	for _, child := range n.Children() {
		count += 1 + child.DescendantCount()
	}
	return count
}

// Values returns a snapshot of every value stored on n and its
// descendants. The root's own value is never included.
func (n *Node[B, V]) Values() []V {
	var values []V
	if !n.IsRoot() {
		if v, ok := n.Value(); ok {
			values = append(values, v)
		}
	}
	for _, d := range n.Descendants() {
		if v, ok := d.Value(); ok {
			values = append(values, v)
		}
	}
	return values
}

// WalkFunc is called for each valued node visited by Walk. Returning
// false stops the walk.
type WalkFunc[B comparable, V any] func(path []B, value V) bool

// Walk visits n and its descendants depth-first and calls fn for every
// node holding a value, skipping the root's own value. It reports
// whether the walk ran to completion.
func (n *Node[B, V]) Walk(fn WalkFunc[B, V]) bool {
	if !n.IsRoot() {
		if v, ok := n.Value(); ok && !fn(n.Path(), v) {
			return false
		}
	}
	for _, child := range n.Children() {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
