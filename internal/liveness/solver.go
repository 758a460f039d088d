package liveness

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/varset"
)

// State is the state of a Solver.
type State uint8

const (
	// Iterating means at least one more sweep is needed.
	Iterating State = iota

	// Converged means the last sweep changed nothing.
	Converged
)

func (s State) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// InOut holds the live-in and live-out sets of a block.
type InOut struct {
	In  *varset.Set
	Out *varset.Set
}

func (io InOut) clone() InOut {
	return InOut{In: io.In.Clone(), Out: io.Out.Clone()}
}

// Solver iterates the backward liveness equations
//
//	OUT(b) = OUT(b) ∪ ⋃ IN(s)  for s in succ(b)
//	IN(b)  = USE(b) ∪ (OUT(b) − DEF(b))
//
// over a fixed block order until a sweep changes nothing.
type Solver struct {
	fn     *ir.Func
	order  []ir.BlockID
	blocks map[ir.BlockID]UseDef
	io     map[ir.BlockID]*InOut
	state  State
	sweeps int
	limit  int
}

func newSolver(fn *ir.Func, order []ir.BlockID, ud *useDefs, n uint, limit int) *Solver {
	s := &Solver{
		fn:     fn,
		order:  order,
		blocks: ud.blocks,
		io:     make(map[ir.BlockID]*InOut, len(order)),
		state:  Iterating,
		limit:  limit,
	}
	for _, id := range order {
		out := varset.New(n)
		if seed, ok := ud.seeds[id]; ok {
			out = seed.Clone()
		}
		s.io[id] = &InOut{In: varset.New(n), Out: out}
	}
	return s
}

// State returns the current state.
func (s *Solver) State() State {
	return s.state
}

// Sweeps returns the number of sweeps performed so far.
func (s *Solver) Sweeps() int {
	return s.sweeps
}

// InOut returns the current sets of block b. The sets are shared with the
// solver and must not be modified.
func (s *Solver) InOut(b ir.BlockID) (InOut, bool) {
	io, ok := s.io[b]
	if !ok {
		return InOut{}, false
	}
	return *io, true
}

// Sweep visits every block once and reports whether any set changed. A
// sweep without changes moves the solver to Converged, after which Sweep is
// a no-op.
//
// Sweep panics with *ir.InvariantViolation when the sweep limit is exceeded.
func (s *Solver) Sweep() bool {
	if s.state == Converged {
		return false
	}
	if s.sweeps++; s.sweeps > s.limit {
		panic(s.diverged())
	}

	changed := false
	for _, id := range s.order {
		io := s.io[id]

		out := io.Out.Clone()
		for _, succ := range s.fn.Block(id).Succs {
			out.InPlaceUnion(s.io[succ].In)
		}
		if !varset.Equal(out, io.Out) {
			io.Out = out
			changed = true
		}

		ud := s.blocks[id]
		in := varset.Union(ud.Use, varset.Difference(io.Out, ud.Def))
		if !varset.Equal(in, io.In) {
			io.In = in
			changed = true
		}
	}

	if !changed {
		s.state = Converged
	}
	return changed
}

// Run sweeps until the solver converges and returns the number of sweeps.
func (s *Solver) Run() int {
	for s.Sweep() {
	}
	return s.sweeps
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func (s *Solver) diverged() *ir.InvariantViolation {
	type sets struct {
		In  []uint
		Out []uint
	}
	dump := make(map[string]sets, len(s.io))
	for id, io := range s.io {
		dump[fmt.Sprintf("%d:%s", id, s.fn.Block(id).Name)] = sets{In: io.In.Indices(), Out: io.Out.Indices()}
	}
	return &ir.InvariantViolation{
		Func:   s.fn.Name,
		Reason: fmt.Sprintf("no fixed point after %d sweeps\n%s", s.limit, dumpConfig.Sdump(dump)),
	}
}
