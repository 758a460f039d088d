// Package varset provides the dense, growable bit vectors used to hold sets
// of variable indices.
//
// A Set wraps a *bitset.BitSet. Its length (Len) is the number of addressable
// bits and only ever grows; bits past the length read as zero. The binary
// operations Union and Difference are pure and size their result to the
// longer operand, so sets built at different points of an analysis can be
// combined freely.
package varset

import (
	"strings"

	"github.com/willf/bitset"
)

// Set is a growable set of non-negative indices.
type Set struct {
	bits *bitset.BitSet
}

// New returns an empty set with room for n indices.
func New(n uint) *Set {
	return &Set{bits: bitset.New(n)}
}

// FromIndices builds a set of length max(idx)+1.
//
// Listed positions get value and every other position gets !value, so
// FromIndices(idx, false) is the complement of FromIndices(idx, true) within
// that length. An empty idx yields an empty set.
func FromIndices(idx []uint, value bool) *Set {
	if len(idx) == 0 {
		return New(0)
	}

	var n uint
	for _, i := range idx {
		if i+1 > n {
			n = i + 1
		}
	}

	s := New(n)
	if !value {
		for i := uint(0); i < n; i++ {
			s.bits.Set(i)
		}
	}
	for _, i := range idx {
		if value {
			s.bits.Set(i)
		} else {
			s.bits.Clear(i)
		}
	}
	return s
}

// =============================================================================
// Mutation
// =============================================================================

// Set adds i, growing the set if needed.
func (s *Set) Set(i uint) *Set {
	s.bits.Set(i)
	return s
}

// Grow extends the set to at least n bits. Existing bits are unchanged.
func (s *Set) Grow(n uint) *Set {
	if n > s.bits.Len() {
		s.bits.Set(n - 1)
		s.bits.Clear(n - 1)
	}
	return s
}

// InPlaceUnion adds every element of o to s.
func (s *Set) InPlaceUnion(o *Set) {
	s.bits.InPlaceUnion(o.bits)
}

// =============================================================================
// Queries
// =============================================================================

// Test reports whether i is in the set.
func (s *Set) Test(i uint) bool {
	return s.bits.Test(i)
}

// Len returns the number of addressable bits.
func (s *Set) Len() uint {
	return s.bits.Len()
}

// Count returns the number of elements.
func (s *Set) Count() uint {
	return s.bits.Count()
}

// Empty reports whether the set has no elements.
func (s *Set) Empty() bool {
	return s.bits.Count() == 0
}

// Indices returns the elements in increasing order.
func (s *Set) Indices() []uint {
	ret := make([]uint, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		ret = append(ret, i)
	}
	return ret
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

// SubsetOf reports whether every element of s is also in o.
func (s *Set) SubsetOf(o *Set) bool {
	return Difference(s, o).Empty()
}

// Bits renders the set as one '0' or '1' per addressable bit, lowest first.
func (s *Set) Bits() string {
	var buf strings.Builder
	for i := uint(0); i < s.bits.Len(); i++ {
		if s.bits.Test(i) {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}

func (s *Set) String() string {
	return s.bits.String()
}

// =============================================================================
// Algebra
// =============================================================================

// Union returns a ∪ b, sized to the longer operand.
func Union(a, b *Set) *Set {
	return &Set{bits: a.bits.Union(b.bits)}
}

// Difference returns a ∩ ¬b, sized to the longer operand.
func Difference(a, b *Set) *Set {
	ret := &Set{bits: a.bits.Difference(b.bits)}
	return ret.Grow(b.Len())
}

// Equal reports whether a and b hold the same elements. The shorter set is
// treated as zero-extended.
func Equal(a, b *Set) bool {
	return a.bits.SymmetricDifference(b.bits).Count() == 0
}
