package liveness

import (
	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/opts"
	"github.com/mpyw/livevar/internal/varset"
)

// Result is the outcome of one analysis run. Accessors return copies; the
// result itself is never recomputed.
type Result struct {
	fn     *ir.Func
	reg    *Registry
	instrs map[ir.InstrID]UseDef
	blocks map[ir.BlockID]UseDef
	io     map[ir.BlockID]InOut
	sweeps int
	order  opts.Order
}

// Func returns the analyzed function.
func (r *Result) Func() *ir.Func {
	return r.fn
}

// Registry returns the variable index registry of the run.
func (r *Result) Registry() *Registry {
	return r.reg
}

// Sweeps returns the number of solver sweeps, the final unchanged one
// included.
func (r *Result) Sweeps() int {
	return r.sweeps
}

// Order returns the block visit order the solver used.
func (r *Result) Order() opts.Order {
	return r.order
}

// BlockUseDef returns the USE and DEF sets of block b.
func (r *Result) BlockUseDef(b ir.BlockID) (UseDef, bool) {
	ud, ok := r.blocks[b]
	if !ok {
		return UseDef{}, false
	}
	return ud.clone(), true
}

// BlockInOut returns the IN and OUT sets of block b.
func (r *Result) BlockInOut(b ir.BlockID) (InOut, bool) {
	io, ok := r.io[b]
	if !ok {
		return InOut{}, false
	}
	return io.clone(), true
}

// InstrUseDef returns the USE and DEF sets of instruction i.
func (r *Result) InstrUseDef(i ir.InstrID) (UseDef, bool) {
	ud, ok := r.instrs[i]
	if !ok {
		return UseDef{}, false
	}
	return ud.clone(), true
}

// Variable maps a bit index back to its value, or nil if the index is
// unknown.
func (r *Result) Variable(idx uint) *ir.Value {
	v, ok := r.reg.Variable(idx)
	if !ok {
		return nil
	}
	return r.fn.Value(v)
}

// Variables translates every member of set into a value handle, in index
// order. Unknown indices are skipped.
func (r *Result) Variables(set *varset.Set) []ir.ValueID {
	if set == nil {
		return nil
	}
	var ret []ir.ValueID
	for _, i := range set.Indices() {
		if v, ok := r.reg.Variable(i); ok {
			ret = append(ret, v)
		}
	}
	return ret
}

// LiveIn returns the variables live on entry to b.
func (r *Result) LiveIn(b ir.BlockID) []ir.ValueID {
	io, ok := r.io[b]
	if !ok {
		return nil
	}
	return r.Variables(io.In)
}

// LiveOut returns the variables live on exit from b.
func (r *Result) LiveOut(b ir.BlockID) []ir.ValueID {
	io, ok := r.io[b]
	if !ok {
		return nil
	}
	return r.Variables(io.Out)
}
