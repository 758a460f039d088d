// Package ssaconv lowers go/ssa functions into the arena IR consumed by the
// liveness engine.
//
// # Value classification
//
//	ssa value                         ir kind
//	────────────────────────────────  ─────────
//	*ssa.Parameter, *ssa.FreeVar      KindVar
//	value instructions (t0, t1, ...)  KindVar
//	*ssa.Const                        KindConst
//	*ssa.Function, *ssa.Global,       KindConst (link-time addresses)
//	*ssa.Builtin
//	jump / if targets                 KindLabel
//
// A value instruction whose type is the empty tuple (a call to a function
// without results) is lowered as an instruction without a result.
package ssaconv

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livevar/internal/ir"
)

// =============================================================================
// Mapping
//
// Mapping records which ssa entity each ir handle was lowered from, so that
// results expressed in ir handles can be reported against the original
// function.
// =============================================================================

// Mapping links the handles of a lowered function to the ssa entities they
// came from.
type Mapping struct {
	values    map[ssa.Value]ir.ValueID
	blocks    map[*ssa.BasicBlock]ir.BlockID
	ssaValues map[ir.ValueID]ssa.Value
	ssaBlocks map[ir.BlockID]*ssa.BasicBlock
}

func newMapping() *Mapping {
	return &Mapping{
		values:    make(map[ssa.Value]ir.ValueID),
		blocks:    make(map[*ssa.BasicBlock]ir.BlockID),
		ssaValues: make(map[ir.ValueID]ssa.Value),
		ssaBlocks: make(map[ir.BlockID]*ssa.BasicBlock),
	}
}

// Value returns the handle v was lowered to.
func (m *Mapping) Value(v ssa.Value) (ir.ValueID, bool) {
	id, ok := m.values[v]
	return id, ok
}

// Block returns the handle b was lowered to.
func (m *Mapping) Block(b *ssa.BasicBlock) (ir.BlockID, bool) {
	id, ok := m.blocks[b]
	return id, ok
}

// SSAValue returns the ssa value behind id. Interned constants map back to
// the first ssa value seen with that literal.
func (m *Mapping) SSAValue(id ir.ValueID) (ssa.Value, bool) {
	v, ok := m.ssaValues[id]
	return v, ok
}

// SSABlock returns the ssa block behind id.
func (m *Mapping) SSABlock(id ir.BlockID) (*ssa.BasicBlock, bool) {
	b, ok := m.ssaBlocks[id]
	return b, ok
}

// =============================================================================
// Lowering
// =============================================================================

// Lower converts fn into an ir.Func.
//
// Blocks keep the order of fn.Blocks (the recover block included) and are
// named "<index>.<comment>", e.g. "0.entry" or "3.for.body". Functions
// without a body are rejected.
func Lower(fn *ssa.Function) (*ir.Func, *Mapping, error) {
	if len(fn.Blocks) == 0 {
		return nil, nil, errors.Errorf("lower %s: function has no body", fn.String())
	}

	l := &lowerer{
		b: ir.NewBuilder(fn.String()),
		m: newMapping(),
	}

	for _, blk := range fn.Blocks {
		id := l.b.Block(fmt.Sprintf("%d.%s", blk.Index, blk.Comment))
		l.m.blocks[blk] = id
		l.m.ssaBlocks[id] = blk
	}
	for _, p := range fn.Params {
		l.value(p)
	}
	for _, fv := range fn.FreeVars {
		l.value(fv)
	}
	for _, blk := range fn.Blocks {
		for _, s := range blk.Succs {
			l.b.Edge(l.m.blocks[blk], l.m.blocks[s])
		}
	}
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instrs {
			l.instr(blk, instr)
		}
	}

	out, err := l.b.Build()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "lower %s", fn.String())
	}
	return out, l.m, nil
}

type lowerer struct {
	b *ir.Builder
	m *Mapping
}

func (l *lowerer) value(v ssa.Value) ir.ValueID {
	if id, ok := l.m.values[v]; ok {
		return id
	}

	var id ir.ValueID
	switch v := v.(type) {
	case *ssa.Const:
		id = l.b.Const(v.String())
	case *ssa.Function, *ssa.Global, *ssa.Builtin:
		id = l.b.Const(v.Name())
	default:
		id = l.b.Value(v.Name())
	}

	l.m.values[v] = id
	if _, ok := l.m.ssaValues[id]; !ok {
		l.m.ssaValues[id] = v
	}
	return id
}

func (l *lowerer) instr(blk *ssa.BasicBlock, instr ssa.Instruction) {
	id := l.m.blocks[blk]

	switch instr := instr.(type) {
	case *ssa.DebugRef:
		// source mapping only, reads nothing at run time
		return

	case *ssa.Phi:
		in := make([]ir.Incoming, len(instr.Edges))
		for i, e := range instr.Edges {
			in[i] = ir.Incoming{Pred: l.m.blocks[blk.Preds[i]], Value: l.value(e)}
		}
		l.b.Phi(id, l.value(instr), in...)
		return
	}

	var args []ir.ValueID
	for _, op := range instr.Operands(nil) {
		if op == nil || *op == nil {
			continue
		}
		args = append(args, l.value(*op))
	}

	// branch targets become label operands
	switch instr.(type) {
	case *ssa.Jump, *ssa.If:
		for _, s := range blk.Succs {
			args = append(args, l.b.Label(l.m.blocks[s]))
		}
	}

	result := ir.NoValue
	if v, ok := instr.(ssa.Value); ok && !isVoid(v.Type()) {
		result = l.value(v)
	}
	l.b.Instr(id, opName(instr), result, args...)
}

func isVoid(t types.Type) bool {
	tup, ok := t.(*types.Tuple)
	return ok && tup.Len() == 0
}

// opName returns the lower-cased ssa instruction type, e.g. "binop".
func opName(instr ssa.Instruction) string {
	name := fmt.Sprintf("%T", instr)
	return strings.ToLower(strings.TrimPrefix(name, "*ssa."))
}
