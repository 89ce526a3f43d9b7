package trie

import (
	"fmt"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/alphabet"
)

// rule is the payload of a forward node: the destination prefix that
// replaces the node's path, or "" if no rule ends here.
type rule struct {
	destination string
}

func (r rule) empty() bool { return r.destination == "" }

// Forward stores forwarding rules keyed by source prefix.
type Forward struct {
	nodes *arena[rule]
	rules int
}

// NewForward creates an empty forward trie. capacity limits the number of
// nodes besides the root; 0 means unlimited.
func NewForward(capacity int) *Forward {
	return &Forward{nodes: newArena[rule](capacity)}
}

// Set installs the rule source -> destination and returns the destination
// it replaced, or "" if source had no rule.
func (f *Forward) Set(source, destination string) (string, error) {
	if destination == "" {
		return "", fmt.Errorf("%w: empty destination", ErrInvalidKey)
	}
	id, err := f.nodes.path(source)
	if err != nil {
		return "", fmt.Errorf("failed to insert %q: %w", source, err)
	}

	n := f.nodes.at(id)
	previous := n.value.destination
	n.value.destination = destination
	if previous == "" {
		f.rules++
	}
	return previous, nil
}

// Unset removes the rule for exactly source, pruning nodes that become
// empty. It returns the removed destination.
func (f *Forward) Unset(source string) (string, bool) {
	id, ok := f.nodes.find(source)
	if !ok || id == rootID {
		return "", false
	}
	n := f.nodes.at(id)
	previous := n.value.destination
	if previous == "" {
		return "", false
	}
	n.value.destination = ""
	f.rules--
	f.nodes.prune(id)
	return previous, true
}

// Lookup returns the destination of the rule for exactly source.
func (f *Forward) Lookup(source string) (string, bool) {
	id, ok := f.nodes.find(source)
	if !ok {
		return "", false
	}
	d := f.nodes.at(id).value.destination
	return d, d != ""
}

// LongestPrefixMatch returns the destination of the deepest rule whose
// source is a prefix of number, along with the length of that source.
func (f *Forward) LongestPrefixMatch(number string) (destination string, depth int, ok bool) {
	id := rootID
	for i := 0; i < len(number); i++ {
		sym, valid := alphabet.Index(number[i])
		if !valid {
			break
		}
		next := f.nodes.at(id).children[sym]
		if next == 0 {
			break
		}
		id = next
		if d := f.nodes.at(id).value.destination; d != "" {
			destination, depth, ok = d, i+1, true
		}
	}
	return destination, depth, ok
}

// RemoveSubtree deletes every rule whose source starts with prefix. visit,
// if non-nil, is called with each removed rule before its node is released.
// It returns the number of removed rules.
func (f *Forward) RemoveSubtree(prefix string, visit func(source, destination string)) int {
	if prefix == "" {
		return 0
	}
	id, ok := f.nodes.find(prefix)
	if !ok {
		return 0
	}

	removed := f.nodes.removeSubtree(id, prefix, func(key string, r *rule) {
		if visit != nil {
			visit(key, r.destination)
		}
	})
	f.rules -= removed
	return removed
}

// Walk calls fn for every rule ordered by source. Walk stops early when fn
// returns false.
func (f *Forward) Walk(fn func(source, destination string) bool) {
	f.nodes.each(rootID, nil, func(key string, r *rule) bool {
		return fn(key, r.destination)
	})
}

// Len returns the number of rules.
func (f *Forward) Len() int {
	return f.rules
}

// Nodes returns the number of nodes besides the root.
func (f *Forward) Nodes() int {
	return f.nodes.size()
}
