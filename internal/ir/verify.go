package ir

// Verify checks the structural contract of f:
//
//   - the entry block exists and is live
//   - every edge points at a live block of f, and Succs/Preds mirror each other
//   - every operand and result handle is in range
//   - every join point has at least one incoming value, each from a
//     predecessor of its block
//
// The first violation found is returned as *InvariantViolation.
func (f *Func) Verify() error {
	entry := f.Block(f.entry)
	if entry == nil || entry.removed {
		return violation(f, nil, "missing entry block")
	}

	for _, b := range f.Blocks() {
		for _, s := range b.Succs {
			succ := f.Block(s)
			if succ == nil || succ.removed {
				return violation(f, b, "successor %d is not a block of the function", s)
			}
			if !containsBlock(succ.Preds, b.ID) {
				return violation(f, b, "successor %s does not list it as predecessor", succ.Name)
			}
		}
		for _, p := range b.Preds {
			pred := f.Block(p)
			if pred == nil || pred.removed {
				return violation(f, b, "predecessor %d is not a block of the function", p)
			}
			if !containsBlock(pred.Succs, b.ID) {
				return violation(f, b, "predecessor %s does not list it as successor", pred.Name)
			}
		}
		for _, id := range b.Instrs {
			if err := f.verifyInstr(b, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Func) verifyInstr(b *Block, id InstrID) error {
	ins := f.Instr(id)
	if ins == nil {
		return violation(f, b, "instruction %d out of range", id)
	}
	if ins.Result != NoValue && f.Value(ins.Result) == nil {
		return violation(f, b, "%s: result %d out of range", ins.Op, ins.Result)
	}
	for _, a := range ins.Args {
		if f.Value(a) == nil {
			return violation(f, b, "%s: operand %d out of range", ins.Op, a)
		}
	}
	if !ins.IsJoin() {
		return nil
	}
	if len(ins.Incoming) == 0 {
		return violation(f, b, "join point without incoming values")
	}
	for _, in := range ins.Incoming {
		if f.Value(in.Value) == nil {
			return violation(f, b, "join point: incoming value %d out of range", in.Value)
		}
		if !containsBlock(b.Preds, in.Pred) {
			name := "?"
			if p := f.Block(in.Pred); p != nil {
				name = p.Name
			}
			return violation(f, b, "join point: incoming block %s is not a predecessor", name)
		}
	}
	return nil
}

func containsBlock(list []BlockID, id BlockID) bool {
	for _, b := range list {
		if b == id {
			return true
		}
	}
	return false
}
