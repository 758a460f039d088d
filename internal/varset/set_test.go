package varset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromIndices(t *testing.T) {
	tests := []struct {
		name  string
		idx   []uint
		value bool
		len   uint
		bits  string
	}{
		{name: "empty", idx: nil, value: true, len: 0, bits: ""},
		{name: "empty complement", idx: []uint{}, value: false, len: 0, bits: ""},
		{name: "set", idx: []uint{0, 3}, value: true, len: 4, bits: "1001"},
		{name: "complement", idx: []uint{0, 3}, value: false, len: 4, bits: "0110"},
		{name: "unordered", idx: []uint{5, 1}, value: true, len: 6, bits: "010001"},
		{name: "duplicates", idx: []uint{2, 2}, value: true, len: 3, bits: "001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromIndices(tt.idx, tt.value)
			assert.Equal(t, tt.len, s.Len())
			assert.Equal(t, tt.bits, s.Bits())
		})
	}
}

func TestUnion_SizedToLonger(t *testing.T) {
	a := FromIndices([]uint{1}, true)
	b := FromIndices([]uint{4}, true)

	u := Union(a, b)
	assert.Equal(t, uint(5), u.Len())
	assert.Equal(t, []uint{1, 4}, u.Indices())

	assert.Equal(t, []uint{1}, a.Indices(), "operands are untouched")
	assert.Equal(t, []uint{4}, b.Indices(), "operands are untouched")
}

func TestDifference(t *testing.T) {
	a := FromIndices([]uint{0, 1, 2}, true)
	b := FromIndices([]uint{1, 6}, true)

	d := Difference(a, b)
	assert.Equal(t, []uint{0, 2}, d.Indices())
	assert.Equal(t, uint(7), d.Len())

	d = Difference(b, a)
	assert.Equal(t, []uint{6}, d.Indices())
	assert.Equal(t, uint(7), d.Len())

	assert.True(t, Difference(a, a).Empty())
}

func TestEqual_ZeroExtends(t *testing.T) {
	a := FromIndices([]uint{2}, true)
	b := New(64).Set(2)

	assert.True(t, Equal(a, b))
	assert.True(t, Equal(b, a))
	assert.True(t, Equal(New(0), New(10)))
	assert.False(t, Equal(a, b.Clone().Set(40)))
}

func TestInPlaceUnion(t *testing.T) {
	s := New(0)
	s.InPlaceUnion(FromIndices([]uint{3}, true))
	s.InPlaceUnion(FromIndices([]uint{1}, true))
	assert.Equal(t, []uint{1, 3}, s.Indices())
	assert.Equal(t, uint(4), s.Len())
}

func TestGrow(t *testing.T) {
	s := FromIndices([]uint{1}, true)
	s.Grow(10)
	assert.Equal(t, uint(10), s.Len())
	assert.Equal(t, []uint{1}, s.Indices())

	s.Grow(3)
	assert.Equal(t, uint(10), s.Len(), "never shrinks")
}

func TestClone_Independent(t *testing.T) {
	s := FromIndices([]uint{0}, true)
	c := s.Clone()
	c.Set(5)
	assert.False(t, s.Test(5))
	assert.True(t, c.Test(5))
}

func TestSubsetOf(t *testing.T) {
	small := FromIndices([]uint{1}, true)
	big := FromIndices([]uint{1, 2}, true)
	require.True(t, small.SubsetOf(big))
	require.False(t, big.SubsetOf(small))
	require.True(t, New(0).SubsetOf(small))
}

func TestString(t *testing.T) {
	assert.Equal(t, "{1,3}", FromIndices([]uint{3, 1}, true).String())
	assert.Equal(t, "{}", New(4).String())
}
