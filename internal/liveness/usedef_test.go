package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/livevar/internal/ir"
)

func TestBuildUseDef_LocalDefHidesUse(t *testing.T) {
	b := ir.NewBuilder("f")
	entry := b.Block("entry")
	a := b.Param("a")
	x := b.Def(entry, "x", "add", a, b.Const("1"))
	y := b.Def(entry, "y", "mul", x, a)
	b.Return(entry, y)
	fn, err := b.Build()
	require.NoError(t, err)

	reg := NewRegistry()
	ud := buildUseDef(fn, reg)

	blk := ud.blocks[entry]
	assert.Equal(t, []ir.ValueID{a}, vars(reg, blk.Use.Indices()))
	assert.Equal(t, []ir.ValueID{x, y}, vars(reg, blk.Def.Indices()))

	// registration follows first sight: uses before the def
	assert.Equal(t, []ir.ValueID{a, x, y}, vars(reg, []uint{0, 1, 2}))

	for _, u := range ud.blocks {
		assert.Equal(t, uint(reg.Len()), u.Use.Len())
		assert.Equal(t, uint(reg.Len()), u.Def.Len())
	}
}

func TestBuildUseDef_InstrSets(t *testing.T) {
	b := ir.NewBuilder("f")
	entry := b.Block("entry")
	exit := b.Block("exit")
	a := b.Param("a")
	x := b.Def(entry, "x", "neg", a)
	br := b.Jump(entry, exit)
	ret := b.Return(exit, x, b.Const("0"))
	fn, err := b.Build()
	require.NoError(t, err)

	reg := NewRegistry()
	ud := buildUseDef(fn, reg)

	def := ud.instrs[fn.Value(x).Def]
	assert.Equal(t, []ir.ValueID{a}, vars(reg, def.Use.Indices()))
	assert.Equal(t, []ir.ValueID{x}, vars(reg, def.Def.Indices()))

	assert.True(t, ud.instrs[br].Use.Empty(), "labels are never used")
	assert.True(t, ud.instrs[br].Def.Empty())
	assert.Equal(t, []ir.ValueID{x}, vars(reg, ud.instrs[ret].Use.Indices()), "constants are never used")
}

func TestBuildUseDef_JoinSeedsPredecessors(t *testing.T) {
	b := ir.NewBuilder("f")
	entry := b.Block("entry")
	left := b.Block("left")
	right := b.Block("right")
	join := b.Block("join")

	c := b.Param("c")
	b.Branch(entry, c, left, right)
	x := b.Def(left, "x", "copy", c)
	b.Jump(left, join)
	b.Jump(right, join)
	z := b.Value("z")
	phi := b.Phi(join, z, ir.Incoming{Pred: left, Value: x}, ir.Incoming{Pred: right, Value: b.Const("0")})
	b.Return(join, z)
	fn, err := b.Build()
	require.NoError(t, err)

	reg := NewRegistry()
	ud := buildUseDef(fn, reg)

	assert.Equal(t, []ir.ValueID{x}, vars(reg, ud.seeds[left].Indices()))
	assert.NotContains(t, ud.seeds, right, "constant incoming seeds nothing")

	assert.True(t, ud.instrs[phi].Use.Empty())
	assert.Equal(t, []ir.ValueID{z}, vars(reg, ud.instrs[phi].Def.Indices()))

	blk := ud.blocks[join]
	assert.True(t, blk.Use.Empty(), "ret z reads the join result defined above it")
	assert.Equal(t, []ir.ValueID{z}, vars(reg, blk.Def.Indices()))
}

func TestBuildUseDef_EmptyBlock(t *testing.T) {
	b := ir.NewBuilder("f")
	entry := b.Block("entry")
	fn, err := b.Build()
	require.NoError(t, err)

	ud := buildUseDef(fn, NewRegistry())
	require.Contains(t, ud.blocks, entry)
	assert.True(t, ud.blocks[entry].Use.Empty())
	assert.True(t, ud.blocks[entry].Def.Empty())
}

func vars(reg *Registry, idx []uint) []ir.ValueID {
	ret := make([]ir.ValueID, 0, len(idx))
	for _, i := range idx {
		v, _ := reg.Variable(i)
		ret = append(ret, v)
	}
	return ret
}
