package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpyw/livevar/internal/ir"
)

func TestRegistry_FirstSight(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, uint(0), r.IndexOf(ir.ValueID(7)))
	assert.Equal(t, uint(1), r.IndexOf(ir.ValueID(3)))
	assert.Equal(t, uint(0), r.IndexOf(ir.ValueID(7)))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(ir.ValueID(1))
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len(), "lookup never assigns")

	r.IndexOf(ir.ValueID(1))
	i, ok := r.Lookup(ir.ValueID(1))
	assert.True(t, ok)
	assert.Equal(t, uint(0), i)
}

func TestRegistry_Variable(t *testing.T) {
	r := NewRegistry()
	r.IndexOf(ir.ValueID(5))

	v, ok := r.Variable(0)
	assert.True(t, ok)
	assert.Equal(t, ir.ValueID(5), v)

	v, ok = r.Variable(1)
	assert.False(t, ok)
	assert.Equal(t, ir.NoValue, v)
}

func TestRegistry_Injective(t *testing.T) {
	r := NewRegistry()
	seen := make(map[uint]ir.ValueID)
	for i := 0; i < 200; i++ {
		v := ir.ValueID((i * 37) % 101)
		idx := r.IndexOf(v)
		if prev, ok := seen[idx]; ok {
			assert.Equal(t, prev, v, "index %d shared", idx)
		}
		seen[idx] = v
	}
	assert.Equal(t, 101, r.Len())
}
