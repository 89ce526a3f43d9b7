package trie

import (
	"fmt"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/alphabet"
)

// sources is the payload of a backward node: the set of source prefixes
// currently forwarded to the node's path. pos indexes items so an entry can
// be removed in constant time by swapping it with the last one.
type sources struct {
	items []string
	pos   map[string]int
}

func (s sources) empty() bool { return len(s.items) == 0 }

func (s *sources) add(source string) bool {
	if _, ok := s.pos[source]; ok {
		return false
	}
	if s.pos == nil {
		s.pos = make(map[string]int)
	}
	s.pos[source] = len(s.items)
	s.items = append(s.items, source)
	return true
}

func (s *sources) remove(source string) bool {
	i, ok := s.pos[source]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	moved := s.items[last]
	s.items[i] = moved
	s.pos[moved] = i
	s.items[last] = ""
	s.items = s.items[:last]
	delete(s.pos, source)

	if len(s.items) == 0 {
		s.items, s.pos = nil, nil
	}
	return true
}

// Backward indexes forwarding rules by destination prefix.
type Backward struct {
	nodes   *arena[sources]
	prune   bool
	entries int
}

// NewBackward creates an empty backward trie. capacity limits the number of
// nodes besides the root; 0 means unlimited. When prune is false, nodes left
// empty by RemoveEntry stay in place until Compact is called on their path.
func NewBackward(capacity int, prune bool) *Backward {
	return &Backward{
		nodes: newArena[sources](capacity),
		prune: prune,
	}
}

// AddEntry records that source is forwarded to destination. Adding an entry
// that already exists is a no-op.
func (b *Backward) AddEntry(source, destination string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidKey)
	}
	id, err := b.nodes.path(destination)
	if err != nil {
		return fmt.Errorf("failed to insert %q: %w", destination, err)
	}
	if b.nodes.at(id).value.add(source) {
		b.entries++
	}
	return nil
}

// RemoveEntry deletes source from the set kept for destination and reports
// whether it was present.
func (b *Backward) RemoveEntry(destination, source string) bool {
	id, ok := b.nodes.find(destination)
	if !ok || id == rootID {
		return false
	}
	if !b.nodes.at(id).value.remove(source) {
		return false
	}
	b.entries--
	if b.prune {
		b.nodes.prune(id)
	}
	return true
}

// Compact releases the node for destination and its ancestors if they hold
// no entries and have no children.
func (b *Backward) Compact(destination string) {
	id, ok := b.nodes.find(destination)
	if !ok {
		return
	}
	b.nodes.prune(id)
}

// Walk follows number through the trie and calls fn for every node on the
// path that holds entries. depth is the length of the node's path. fn must
// not modify or retain the slice.
func (b *Backward) Walk(number string, fn func(depth int, sources []string)) {
	id := rootID
	for i := 0; i < len(number); i++ {
		sym, ok := alphabet.Index(number[i])
		if !ok {
			return
		}
		next := b.nodes.at(id).children[sym]
		if next == 0 {
			return
		}
		id = next
		if n := b.nodes.at(id); !n.value.empty() {
			fn(i+1, n.value.items)
		}
	}
}

// Sources returns a copy of the sources forwarded to exactly destination.
func (b *Backward) Sources(destination string) []string {
	id, ok := b.nodes.find(destination)
	if !ok {
		return nil
	}
	items := b.nodes.at(id).value.items
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Len returns the number of entries.
func (b *Backward) Len() int {
	return b.entries
}

// Nodes returns the number of nodes besides the root.
func (b *Backward) Nodes() int {
	return b.nodes.size()
}
