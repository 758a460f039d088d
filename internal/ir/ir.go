// Package ir is the in-memory procedure representation consumed by the
// liveness engine.
//
// A Func owns three arenas (blocks, instructions and values) and every
// cross reference is an integer handle into one of them. Handles are stable
// for the lifetime of the Func, including after unreachable blocks have been
// trimmed, so they can be used as map keys wherever identity matters.
//
//	Func
//	 ├── blocks  []*Block   BlockID  → Block{Instrs, Succs, Preds}
//	 ├── instrs  []*Instr   InstrID  → Instr{Op, Args, Result, Incoming}
//	 └── values  []*Value   ValueID  → Value{Kind, Name, Def}
//
// Functions are assembled with a Builder, or lowered from go/ssa by the
// ssaconv package.
package ir

// =============================================================================
// Handles
// =============================================================================

// BlockID identifies a basic block within its Func.
type BlockID int

// InstrID identifies an instruction within its Func.
type InstrID int

// ValueID identifies a value within its Func.
type ValueID int

const (
	// NoBlock is the zero handle for "no block".
	NoBlock BlockID = -1

	// NoInstr is the zero handle for "no instruction".
	NoInstr InstrID = -1

	// NoValue marks instructions that produce no value.
	NoValue ValueID = -1
)

// =============================================================================
// Values
// =============================================================================

// ValueKind classifies a value for the purpose of liveness.
type ValueKind uint8

const (
	// KindVar is a variable: a parameter, free variable or instruction result.
	KindVar ValueKind = iota

	// KindConst is a compile-time (or link-time) constant.
	KindConst

	// KindLabel denotes a basic block as a branch target.
	KindLabel
)

func (k ValueKind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindConst:
		return "const"
	case KindLabel:
		return "label"
	default:
		return "invalid"
	}
}

// Value is anything an instruction can read or define.
type Value struct {
	ID   ValueID
	Kind ValueKind
	Name string

	// Def is the defining instruction, or NoInstr for parameters,
	// constants and labels.
	Def InstrID

	// Target is the block a KindLabel value refers to.
	Target BlockID
}

// IsVariable reports whether v can carry liveness.
func (v *Value) IsVariable() bool {
	return v.Kind == KindVar
}

// =============================================================================
// Instructions
// =============================================================================

// Well-known opcodes. Any other string is an ordinary instruction.
const (
	OpPhi    = "phi"
	OpBr     = "br"
	OpCondBr = "condbr"
	OpRet    = "ret"
)

// Incoming is one (predecessor, value) pair of a join-point instruction.
type Incoming struct {
	Pred  BlockID
	Value ValueID
}

// Instr is a single instruction.
//
// Join points (Op == OpPhi) carry their operands in Incoming and leave Args
// empty; every other instruction reads Args in order.
type Instr struct {
	ID       InstrID
	Op       string
	Block    BlockID
	Args     []ValueID
	Result   ValueID
	Incoming []Incoming
}

// IsJoin reports whether the instruction selects its value by predecessor.
func (i *Instr) IsJoin() bool {
	return i.Op == OpPhi
}

// HasResult reports whether the instruction defines a value.
func (i *Instr) HasResult() bool {
	return i.Result != NoValue
}

// =============================================================================
// Blocks
// =============================================================================

// Block is a basic block.
type Block struct {
	ID     BlockID
	Name   string
	Instrs []InstrID
	Succs  []BlockID
	Preds  []BlockID

	removed bool
}

// Removed reports whether the block has been trimmed from its function.
func (b *Block) Removed() bool {
	return b.removed
}

// =============================================================================
// Functions
// =============================================================================

// Func is a procedure: an entry block plus every block in layout order.
type Func struct {
	Name string

	entry  BlockID
	layout []BlockID
	blocks []*Block
	instrs []*Instr
	values []*Value
}

// Entry returns the entry block.
func (f *Func) Entry() *Block {
	return f.Block(f.entry)
}

// Blocks returns the live blocks in layout order.
func (f *Func) Blocks() []*Block {
	ret := make([]*Block, 0, len(f.layout))
	for _, id := range f.layout {
		ret = append(ret, f.blocks[id])
	}
	return ret
}

// Block returns the block with the given handle, or nil if out of range.
func (f *Func) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.blocks) {
		return nil
	}
	return f.blocks[id]
}

// Instr returns the instruction with the given handle, or nil if out of range.
func (f *Func) Instr(id InstrID) *Instr {
	if id < 0 || int(id) >= len(f.instrs) {
		return nil
	}
	return f.instrs[id]
}

// Value returns the value with the given handle, or nil if out of range.
func (f *Func) Value(id ValueID) *Value {
	if id < 0 || int(id) >= len(f.values) {
		return nil
	}
	return f.values[id]
}

// NumBlocks returns the number of live blocks.
func (f *Func) NumBlocks() int {
	return len(f.layout)
}

// NumValues returns the size of the value arena.
func (f *Func) NumValues() int {
	return len(f.values)
}

// BlockByName returns the first live block with the given name.
func (f *Func) BlockByName(name string) *Block {
	for _, id := range f.layout {
		if f.blocks[id].Name == name {
			return f.blocks[id]
		}
	}
	return nil
}

// ValueByName returns the first value with the given name.
func (f *Func) ValueByName(name string) *Value {
	for _, v := range f.values {
		if v.Name == name {
			return v
		}
	}
	return nil
}
