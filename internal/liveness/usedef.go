package liveness

import (
	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/varset"
)

// UseDef is a pair of USE and DEF sets, for either an instruction or a block.
type UseDef struct {
	Use *varset.Set
	Def *varset.Set
}

func (u UseDef) clone() UseDef {
	return UseDef{Use: u.Use.Clone(), Def: u.Def.Clone()}
}

type useDefs struct {
	instrs map[ir.InstrID]UseDef
	blocks map[ir.BlockID]UseDef

	// seeds are the initial OUT sets contributed by join points: a value
	// flowing into a join point along the edge p→b is live out of p.
	seeds map[ir.BlockID]*varset.Set
}

// buildUseDef walks every block once, instructions in program order.
func buildUseDef(fn *ir.Func, reg *Registry) *useDefs {
	ud := &useDefs{
		instrs: make(map[ir.InstrID]UseDef),
		blocks: make(map[ir.BlockID]UseDef),
		seeds:  make(map[ir.BlockID]*varset.Set),
	}

	for _, b := range fn.Blocks() {
		use := varset.New(0)
		def := varset.New(0)

		for _, id := range b.Instrs {
			ins := fn.Instr(id)

			switch {
			case ins.IsJoin():
				for _, in := range ins.Incoming {
					if !fn.Value(in.Value).IsVariable() {
						continue
					}
					seed, ok := ud.seeds[in.Pred]
					if !ok {
						seed = varset.New(0)
						ud.seeds[in.Pred] = seed
					}
					seed.Set(reg.IndexOf(in.Value))
				}
				idef := defSet(fn, reg, ins)
				def.InPlaceUnion(idef)
				ud.instrs[id] = UseDef{Use: varset.New(0), Def: idef}

			default:
				iuse := useSet(fn, reg, ins)
				use.InPlaceUnion(varset.Difference(iuse, def))
				idef := defSet(fn, reg, ins)
				def.InPlaceUnion(idef)
				ud.instrs[id] = UseDef{Use: iuse, Def: idef}
			}
		}

		ud.blocks[b.ID] = UseDef{Use: use, Def: def}
	}

	// give every set the same length so bit strings line up
	n := uint(reg.Len())
	for _, u := range ud.instrs {
		u.Use.Grow(n)
		u.Def.Grow(n)
	}
	for _, u := range ud.blocks {
		u.Use.Grow(n)
		u.Def.Grow(n)
	}
	for _, s := range ud.seeds {
		s.Grow(n)
	}
	return ud
}

func useSet(fn *ir.Func, reg *Registry, ins *ir.Instr) *varset.Set {
	var idx []uint
	for _, a := range ins.Args {
		if fn.Value(a).IsVariable() {
			idx = append(idx, reg.IndexOf(a))
		}
	}
	return varset.FromIndices(idx, true)
}

func defSet(fn *ir.Func, reg *Registry, ins *ir.Instr) *varset.Set {
	if !ins.HasResult() || !fn.Value(ins.Result).IsVariable() {
		return varset.New(0)
	}
	return varset.FromIndices([]uint{reg.IndexOf(ins.Result)}, true)
}
