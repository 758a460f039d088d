// Package liveness computes live variables for an ir.Func.
//
// The analysis is the classic backward may-be-live problem. Every variable
// seen in the function gets a dense index (Registry); each instruction and
// block gets USE and DEF sets over those indices; the solver then sweeps the
// blocks until
//
//	OUT(b) = seed(b) ∪ ⋃ IN(s)  for s in succ(b)
//	IN(b)  = USE(b) ∪ (OUT(b) − DEF(b))
//
// holds everywhere. Join points contribute no USE to their own block. Each
// incoming value is instead seeded into the OUT set of the predecessor it
// flows from, so it is live only along that edge.
//
// Constants and labels never appear in any set.
package liveness

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/opts"
)

// InvariantViolation is the error reported for malformed input and the
// panic value raised when the solver fails to converge.
type InvariantViolation = ir.InvariantViolation

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithOrder selects the block visit order of the solver.
//
// The fixed point is the same for every order. The default is
// opts.Postorder, which lets a backward problem see the fresh IN sets of
// successors within the same sweep. Postorder is the fast order for liveness:
// reverse postorder is the one that suits forward problems. It can be
// changed with the LIVEVAR_ORDER environment variable.
func WithOrder(o opts.Order) Option {
	return func(op *opts.Options) { op.Order = o }
}

// WithSweepLimit caps the number of solver sweeps. Exceeding the cap panics
// with *InvariantViolation.
//
// Set this option to "0" to derive the cap from the function size, which is
// the default.
func WithSweepLimit(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("livevar: invalid sweep limit: %d", n))
	}
	return func(op *opts.Options) { op.SweepLimit = n }
}

// Analyze runs the liveness analysis on fn.
//
// fn is verified first and a structural problem is returned as
// *InvariantViolation. fn is not modified.
func Analyze(fn *ir.Func, options ...Option) (*Result, error) {
	if err := fn.Verify(); err != nil {
		return nil, err
	}

	o := opts.GetDefaultOptions()
	for _, opt := range options {
		opt(&o)
	}

	reg := NewRegistry()
	ud := buildUseDef(fn, reg)

	order := visitOrder(fn, o.Order)
	s := newSolver(fn, order, ud, uint(reg.Len()), o.SweepBound(fn.NumBlocks(), reg.Len()))
	sweeps := s.Run()

	res := &Result{
		fn:     fn,
		reg:    reg,
		instrs: ud.instrs,
		blocks: ud.blocks,
		io:     make(map[ir.BlockID]InOut, len(order)),
		sweeps: sweeps,
		order:  o.Order,
	}
	for _, id := range order {
		res.io[id], _ = s.InOut(id)
	}
	return res, nil
}

// visitOrder returns every live block of fn exactly once. Blocks unreachable
// from the entry follow the reachable ones in layout order.
func visitOrder(fn *ir.Func, o opts.Order) []ir.BlockID {
	var ids []ir.BlockID
	switch o {
	case opts.ReversePostorder:
		ids = fn.ReversePostorder()
	case opts.Layout:
		return fn.Layout()
	default:
		ids = fn.Postorder()
	}

	seen := mapset.NewThreadUnsafeSet(ids...)
	for _, id := range fn.Layout() {
		if !seen.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
