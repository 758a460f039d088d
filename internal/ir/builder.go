package ir

// Builder assembles a Func.
//
// The first block created is the entry block. Values may be created before
// the instruction defining them (Value), which lets callers emit join points
// that refer to definitions further down the layout.
//
//	b := ir.NewBuilder("f")
//	entry := b.Block("entry")
//	x := b.Def(entry, "x", "copy", b.Const("1"))
//	b.Return(entry, x)
//	fn, err := b.Build()
type Builder struct {
	fn     *Func
	labels map[BlockID]ValueID
	consts map[string]ValueID
}

// NewBuilder starts a new function.
func NewBuilder(name string) *Builder {
	return &Builder{
		fn:     &Func{Name: name, entry: NoBlock},
		labels: make(map[BlockID]ValueID),
		consts: make(map[string]ValueID),
	}
}

// Block appends a new empty block to the layout.
func (b *Builder) Block(name string) BlockID {
	id := BlockID(len(b.fn.blocks))
	b.fn.blocks = append(b.fn.blocks, &Block{ID: id, Name: name})
	b.fn.layout = append(b.fn.layout, id)
	if b.fn.entry == NoBlock {
		b.fn.entry = id
	}
	return id
}

// Param creates a variable with no defining instruction.
func (b *Builder) Param(name string) ValueID {
	return b.newValue(KindVar, name, NoBlock)
}

// Value creates a variable to be bound later as an instruction result.
func (b *Builder) Value(name string) ValueID {
	return b.newValue(KindVar, name, NoBlock)
}

// Const returns the constant with the given literal, creating it on first use.
func (b *Builder) Const(lit string) ValueID {
	if v, ok := b.consts[lit]; ok {
		return v
	}
	v := b.newValue(KindConst, lit, NoBlock)
	b.consts[lit] = v
	return v
}

// Label returns the label value naming blk.
func (b *Builder) Label(blk BlockID) ValueID {
	if v, ok := b.labels[blk]; ok {
		return v
	}
	name := ""
	if bb := b.fn.Block(blk); bb != nil {
		name = bb.Name
	}
	v := b.newValue(KindLabel, name, blk)
	b.labels[blk] = v
	return v
}

// Instr appends an instruction to blk. result may be NoValue.
func (b *Builder) Instr(blk BlockID, op string, result ValueID, args ...ValueID) InstrID {
	ins := &Instr{
		ID:     InstrID(len(b.fn.instrs)),
		Op:     op,
		Block:  blk,
		Args:   args,
		Result: result,
	}
	return b.append(ins)
}

// Def creates a named variable defined by a new instruction in blk.
func (b *Builder) Def(blk BlockID, name string, op string, args ...ValueID) ValueID {
	v := b.Value(name)
	b.Instr(blk, op, v, args...)
	return v
}

// Phi appends a join point defining result to blk. The incoming list is
// copied.
func (b *Builder) Phi(blk BlockID, result ValueID, in ...Incoming) InstrID {
	ins := &Instr{
		ID:       InstrID(len(b.fn.instrs)),
		Op:       OpPhi,
		Block:    blk,
		Result:   result,
		Incoming: append([]Incoming(nil), in...),
	}
	return b.append(ins)
}

// Edge records a control-flow edge without emitting an instruction.
func (b *Builder) Edge(from BlockID, to BlockID) {
	if f := b.fn.Block(from); f != nil {
		f.Succs = append(f.Succs, to)
	}
	if t := b.fn.Block(to); t != nil {
		t.Preds = append(t.Preds, from)
	}
}

// Jump terminates from with an unconditional branch to to.
func (b *Builder) Jump(from BlockID, to BlockID) InstrID {
	b.Edge(from, to)
	return b.Instr(from, OpBr, NoValue, b.Label(to))
}

// Branch terminates from with a two-way branch on cond.
func (b *Builder) Branch(from BlockID, cond ValueID, then BlockID, els BlockID) InstrID {
	b.Edge(from, then)
	b.Edge(from, els)
	return b.Instr(from, OpCondBr, NoValue, cond, b.Label(then), b.Label(els))
}

// Return terminates blk with a return of vals.
func (b *Builder) Return(blk BlockID, vals ...ValueID) InstrID {
	return b.Instr(blk, OpRet, NoValue, vals...)
}

// Build verifies and returns the function.
func (b *Builder) Build() (*Func, error) {
	if err := b.fn.Verify(); err != nil {
		return nil, err
	}
	return b.fn, nil
}

// Func returns the function under construction without verifying it.
func (b *Builder) Func() *Func {
	return b.fn
}

func (b *Builder) newValue(kind ValueKind, name string, target BlockID) ValueID {
	id := ValueID(len(b.fn.values))
	b.fn.values = append(b.fn.values, &Value{
		ID:     id,
		Kind:   kind,
		Name:   name,
		Def:    NoInstr,
		Target: target,
	})
	return id
}

func (b *Builder) append(ins *Instr) InstrID {
	b.fn.instrs = append(b.fn.instrs, ins)
	if blk := b.fn.Block(ins.Block); blk != nil {
		blk.Instrs = append(blk.Instrs, ins.ID)
	}
	if v := b.fn.Value(ins.Result); v != nil {
		v.Def = ins.ID
	}
	return ins.ID
}
