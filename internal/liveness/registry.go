package liveness

import (
	"github.com/mpyw/livevar/internal/ir"
)

// Registry assigns dense bit indices to variables in order of first sight.
//
// Indices start at zero, are never reused, and are only meaningful within the
// analysis run that produced them.
type Registry struct {
	index map[ir.ValueID]uint
	vars  []ir.ValueID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[ir.ValueID]uint)}
}

// IndexOf returns the index of v, assigning the next free one on first sight.
func (r *Registry) IndexOf(v ir.ValueID) uint {
	if i, ok := r.index[v]; ok {
		return i
	}
	i := uint(len(r.vars))
	r.index[v] = i
	r.vars = append(r.vars, v)
	return i
}

// Lookup returns the index of v without assigning one.
func (r *Registry) Lookup(v ir.ValueID) (uint, bool) {
	i, ok := r.index[v]
	return i, ok
}

// Variable maps an index back to its variable.
func (r *Registry) Variable(i uint) (ir.ValueID, bool) {
	if i >= uint(len(r.vars)) {
		return ir.NoValue, false
	}
	return r.vars[i], true
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	return len(r.vars)
}
