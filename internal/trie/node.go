// Package trie implements the two prefix trees used by the forwarding
// engine. Both trees keep their nodes in an arena and address them by index,
// so a node refers to its parent and children without owning pointers.
package trie

import (
	"errors"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/alphabet"
)

var (
	// ErrCapacityExceeded is returned when a mutation needs more nodes than
	// the trie was configured to hold. The trie is left unchanged.
	ErrCapacityExceeded = errors.New("trie: node capacity exceeded")

	// ErrInvalidKey is returned for empty keys or keys containing symbols
	// outside the alphabet.
	ErrInvalidKey = errors.New("trie: invalid key")
)

// nodeID addresses a node inside an arena. The root is always 0, and since
// the root is never anybody's child, 0 also marks an empty child slot.
type nodeID int32

const rootID nodeID = 0

// payload is the data a node carries. A node whose payload is empty and
// which has no children is removed from the tree.
type payload interface {
	empty() bool
}

// node is a single trie node
type node[V payload] struct {
	parent   nodeID
	symbol   int8
	fanout   int8
	children [alphabet.Radix]nodeID
	value    V
}

// arena stores every node of one trie. Released slots are recycled through
// the free list.
type arena[V payload] struct {
	nodes []node[V]
	free  []nodeID

	// limit caps the number of non-root nodes alive at once; 0 means no cap.
	limit int
}

func newArena[V payload](limit int) *arena[V] {
	return &arena[V]{
		nodes: make([]node[V], 1, 64),
		limit: limit,
	}
}

// size returns the number of live non-root nodes.
func (a *arena[V]) size() int {
	return len(a.nodes) - len(a.free) - 1
}

// at returns the node stored at id. The pointer is only valid until the next
// allocation.
func (a *arena[V]) at(id nodeID) *node[V] {
	return &a.nodes[id]
}

// alloc creates a child of parent under the given symbol rank.
func (a *arena[V]) alloc(parent nodeID, sym int) (nodeID, error) {
	if a.limit > 0 && a.size() >= a.limit {
		return 0, ErrCapacityExceeded
	}

	fresh := node[V]{parent: parent, symbol: int8(sym)}
	var id nodeID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[id] = fresh
	} else {
		id = nodeID(len(a.nodes))
		a.nodes = append(a.nodes, fresh)
	}

	p := &a.nodes[parent]
	p.children[sym] = id
	p.fanout++
	return id, nil
}

// release unlinks id from its parent and returns the slot to the free list.
func (a *arena[V]) release(id nodeID) {
	n := &a.nodes[id]
	p := &a.nodes[n.parent]
	p.children[n.symbol] = 0
	p.fanout--

	a.nodes[id] = node[V]{}
	a.free = append(a.free, id)
}

// find returns the node at the end of key's path, or false if the path does
// not exist or key contains a symbol outside the alphabet.
func (a *arena[V]) find(key string) (nodeID, bool) {
	id := rootID
	for i := 0; i < len(key); i++ {
		sym, ok := alphabet.Index(key[i])
		if !ok {
			return 0, false
		}
		next := a.nodes[id].children[sym]
		if next == 0 {
			return 0, false
		}
		id = next
	}
	return id, true
}

// path returns the node for key, creating any missing nodes along the way.
// If a node cannot be allocated, the nodes created by this call are released
// before the error is returned.
func (a *arena[V]) path(key string) (nodeID, error) {
	if key == "" {
		return 0, ErrInvalidKey
	}
	for i := 0; i < len(key); i++ {
		if _, ok := alphabet.Index(key[i]); !ok {
			return 0, ErrInvalidKey
		}
	}

	id := rootID
	for i := 0; i < len(key); i++ {
		sym, _ := alphabet.Index(key[i])
		if next := a.nodes[id].children[sym]; next != 0 {
			id = next
			continue
		}
		next, err := a.alloc(id, sym)
		if err != nil {
			a.prune(id)
			return 0, err
		}
		id = next
	}
	return id, nil
}

// prune releases id and then each ancestor for as long as the current node
// is a data-free leaf. The root is never released.
func (a *arena[V]) prune(id nodeID) {
	for id != rootID {
		n := &a.nodes[id]
		if n.fanout > 0 || !n.value.empty() {
			return
		}
		parent := n.parent
		a.release(id)
		id = parent
	}
}

// removeSubtree deletes top and all of its descendants bottom-up. key is the
// path of top; it seeds a buffer that grows on every descent and shrinks on
// every backtrack, so visit always receives the full path of the node whose
// non-empty payload it is given. visit runs before the node is released. The
// return value is the number of visited payloads.
func (a *arena[V]) removeSubtree(top nodeID, key string, visit func(key string, v *V)) int {
	buf := make([]byte, len(key), len(key)+16)
	copy(buf, key)

	visited := 0
	id := top
	for {
		n := &a.nodes[id]
		if n.fanout > 0 {
			sym := firstChild(n)
			buf = append(buf, alphabet.Symbol(sym))
			id = n.children[sym]
			continue
		}

		if !n.value.empty() {
			visited++
			if visit != nil {
				visit(string(buf), &n.value)
			}
		}

		if id == top {
			if top == rootID {
				a.nodes[rootID].value = *new(V)
			} else {
				parent := n.parent
				a.release(top)
				a.prune(parent)
			}
			return visited
		}

		parent := n.parent
		a.release(id)
		buf = buf[:len(buf)-1]
		id = parent
	}
}

// each calls fn for every non-empty payload below id in pre-order, visiting
// children by symbol rank. Traversal stops when fn returns false.
func (a *arena[V]) each(id nodeID, buf []byte, fn func(key string, v *V) bool) bool {
	n := &a.nodes[id]
	if !n.value.empty() {
		if !fn(string(buf), &n.value) {
			return false
		}
	}
	for sym, child := range n.children {
		if child == 0 {
			continue
		}
		if !a.each(child, append(buf, alphabet.Symbol(sym)), fn) {
			return false
		}
	}
	return true
}

func firstChild[V payload](n *node[V]) int {
	for sym, child := range n.children {
		if child != 0 {
			return sym
		}
	}
	return -1
}
