package phonefwd

import (
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/alphabet"
)

// Numbers is an ordered sequence of phone numbers returned by a query. It
// is owned by the caller and is not affected by later engine mutations.
type Numbers struct {
	items []string
}

func newNumbers(items ...string) *Numbers {
	return &Numbers{items: items}
}

// Size returns the number of elements. A nil *Numbers is empty.
func (n *Numbers) Size() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

// At returns the element at idx, or false if idx is out of range.
func (n *Numbers) At(idx int) (string, bool) {
	if idx < 0 || idx >= n.Size() {
		return "", false
	}
	return n.items[idx], true
}

// Slice returns a copy of the elements.
func (n *Numbers) Slice() []string {
	out := make([]string, n.Size())
	if n != nil {
		copy(out, n.items)
	}
	return out
}

func (n *Numbers) String() string {
	if n == nil {
		return "[]"
	}
	return "[" + strings.Join(n.items, " ") + "]"
}

// numberSet keeps distinct numbers sorted by alphabet rank.
type numberSet struct {
	inner *redblacktree.Tree
}

func newNumberSet() *numberSet {
	return &numberSet{
		inner: redblacktree.NewWith(compareNumbers),
	}
}

func compareNumbers(a, b interface{}) int {
	return alphabet.Compare(a.(string), b.(string))
}

func (s *numberSet) Add(number string) {
	s.inner.Put(number, nil)
}

func (s *numberSet) Size() int {
	return s.inner.Size()
}

func (s *numberSet) Values() []string {
	values := make([]string, 0, s.inner.Size())
	for _, v := range s.inner.Keys() {
		values = append(values, v.(string))
	}
	return values
}
