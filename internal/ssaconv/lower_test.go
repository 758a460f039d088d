package ssaconv

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/liveness"
)

const src = `package p

func add(a, b int) int {
	x := a + b
	return x * a
}

func sum(n int) int {
	s := 0
	for i := 0; i < n; i++ {
		s += i
	}
	return s
}

func answer() int { return 42 }

func noop() {}

func callNoop() { noop() }

func external() int

func closure(a int) func() int {
	return func() int { return a }
}
`

func buildPackage(t *testing.T) *ssa.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	pkg, _, err := ssautil.BuildPackage(
		&types.Config{Importer: importer.Default()},
		fset,
		types.NewPackage("p", ""),
		[]*ast.File{f},
		ssa.SanityCheckFunctions,
	)
	require.NoError(t, err)
	return pkg
}

func lower(t *testing.T, fn *ssa.Function) (*ir.Func, *Mapping, *liveness.Result) {
	t.Helper()
	out, m, err := Lower(fn)
	require.NoError(t, err)
	res, err := liveness.Analyze(out)
	require.NoError(t, err)
	return out, m, res
}

func valueNames(fn *ir.Func, ids []ir.ValueID) []string {
	ret := []string{}
	for _, id := range ids {
		ret = append(ret, fn.Value(id).Name)
	}
	return ret
}

func TestLower_StraightLine(t *testing.T) {
	pkg := buildPackage(t)
	fn, m, res := lower(t, pkg.Func("add"))

	require.Equal(t, 1, fn.NumBlocks())
	entry := fn.Entry()
	assert.Equal(t, "0.entry", entry.Name)
	assert.ElementsMatch(t, []string{"a", "b"}, valueNames(fn, res.LiveIn(entry.ID)))
	assert.Empty(t, res.LiveOut(entry.ID))

	blk, ok := m.SSABlock(entry.ID)
	require.True(t, ok)
	assert.Same(t, pkg.Func("add").Blocks[0], blk)

	a := pkg.Func("add").Params[0]
	id, ok := m.Value(a)
	require.True(t, ok)
	back, ok := m.SSAValue(id)
	require.True(t, ok)
	assert.Equal(t, a, back)
}

func TestLower_LoopPhis(t *testing.T) {
	pkg := buildPackage(t)
	ssaFn := pkg.Func("sum")
	fn, m, res := lower(t, ssaFn)

	var phis int
	for _, blk := range ssaFn.Blocks {
		for _, instr := range blk.Instrs {
			phi, ok := instr.(*ssa.Phi)
			if !ok {
				continue
			}
			phis++

			id, ok := m.Value(phi)
			require.True(t, ok)
			v := fn.Value(id)
			assert.Equal(t, ir.KindVar, v.Kind)

			ins := fn.Instr(v.Def)
			require.NotNil(t, ins)
			assert.True(t, ins.IsJoin())
			require.Len(t, ins.Incoming, len(phi.Edges))
			for i, in := range ins.Incoming {
				want, _ := m.Block(blk.Preds[i])
				assert.Equal(t, want, in.Pred)
			}
		}
	}
	assert.Equal(t, 2, phis, "s and i")

	entry := fn.Entry()
	assert.Equal(t, []string{"n"}, valueNames(fn, res.LiveIn(entry.ID)))
	assert.Contains(t, valueNames(fn, res.LiveOut(entry.ID)), "n")
}

func TestLower_ConstantsAreNotVariables(t *testing.T) {
	pkg := buildPackage(t)
	fn, _, res := lower(t, pkg.Func("answer"))

	assert.Equal(t, 0, res.Registry().Len())
	ret := fn.Instr(fn.Entry().Instrs[len(fn.Entry().Instrs)-1])
	assert.Equal(t, "return", ret.Op)
	require.Len(t, ret.Args, 1)
	assert.Equal(t, ir.KindConst, fn.Value(ret.Args[0]).Kind)
}

func TestLower_VoidCall(t *testing.T) {
	pkg := buildPackage(t)
	fn, _, res := lower(t, pkg.Func("callNoop"))

	var call *ir.Instr
	for _, id := range fn.Entry().Instrs {
		if ins := fn.Instr(id); ins.Op == "call" {
			call = ins
		}
	}
	require.NotNil(t, call)
	assert.False(t, call.HasResult())
	require.Len(t, call.Args, 1)
	assert.Equal(t, ir.KindConst, fn.Value(call.Args[0]).Kind, "callee is a link-time constant")
	assert.Equal(t, 0, res.Registry().Len())
}

func TestLower_FreeVar(t *testing.T) {
	pkg := buildPackage(t)
	outer := pkg.Func("closure")
	require.Len(t, outer.AnonFuncs, 1)
	fn, _, res := lower(t, outer.AnonFuncs[0])

	assert.Equal(t, []string{"a"}, valueNames(fn, res.LiveIn(fn.Entry().ID)))
}

func TestLower_NoBody(t *testing.T) {
	pkg := buildPackage(t)
	_, _, err := Lower(pkg.Func("external"))
	assert.ErrorContains(t, err, "function has no body")
}

func TestLower_BranchLabels(t *testing.T) {
	pkg := buildPackage(t)
	fn, _, _ := lower(t, pkg.Func("sum"))

	var labels int
	for _, blk := range fn.Blocks() {
		for _, id := range blk.Instrs {
			ins := fn.Instr(id)
			if ins.Op != "jump" && ins.Op != "if" {
				continue
			}
			for _, a := range ins.Args {
				if v := fn.Value(a); v.Kind == ir.KindLabel {
					labels++
					assert.Contains(t, blk.Succs, v.Target)
				}
			}
		}
	}
	assert.NotZero(t, labels)
}
