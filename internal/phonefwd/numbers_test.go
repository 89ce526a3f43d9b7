package phonefwd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumbers_At(t *testing.T) {
	n := newNumbers("12", "3")

	assert.Equal(t, 2, n.Size())

	tests := []struct {
		idx    int
		want   string
		wantOK bool
	}{
		{idx: 0, want: "12", wantOK: true},
		{idx: 1, want: "3", wantOK: true},
		{idx: 2, wantOK: false},
		{idx: -1, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := n.At(tt.idx)
		assert.Equal(t, tt.wantOK, ok, "index %d", tt.idx)
		assert.Equal(t, tt.want, got, "index %d", tt.idx)
	}
}

func TestNumbers_Nil(t *testing.T) {
	var n *Numbers

	assert.Zero(t, n.Size())
	_, ok := n.At(0)
	assert.False(t, ok)
	assert.Empty(t, n.Slice())
	assert.Equal(t, "[]", n.String())
}

func TestNumbers_String(t *testing.T) {
	assert.Equal(t, "[1 2*]", newNumbers("1", "2*").String())
	assert.Equal(t, "[]", newNumbers().String())
}

func TestNumberSet_DeduplicatesAndSorts(t *testing.T) {
	s := newNumberSet()
	for _, n := range []string{"#", "12", "1", "*", "12", "9", "1#", "1*"} {
		s.Add(n)
	}

	assert.Equal(t, 7, s.Size())
	assert.Equal(t, []string{"1", "12", "1*", "1#", "9", "*", "#"}, s.Values())
}
