// Package report renders liveness results as text.
//
// The block listing mirrors the classic dump of a live-variable pass:
//
//	+++++++++++++++ USE-DEF values ++++++++++++++++
//	entry:
//		USE { a }
//		DEF { x y }
//
//	+++++++++++++++ IN-OUT values ++++++++++++++++
//	entry:
//		IN { a }
//		OUT { }
//
// A block without sets prints "\t<empty>" instead of the two lines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/liveness"
	"github.com/mpyw/livevar/internal/varset"
)

// Painter decorates headers. It has the shape of fmt.Sprintf so that
// color.SprintfFunc results can be used directly.
type Painter func(format string, a ...any) string

// Plain is the undecorated Painter.
var Plain Painter = fmt.Sprintf

// Options controls rendering.
type Options struct {
	Painter Painter

	// Body prints the instructions of each block in place of its name.
	Body bool

	// Instrs prints per-instruction USE and DEF bit strings before each
	// block.
	Instrs bool
}

func (o Options) paint(format string, a ...any) string {
	if o.Painter == nil {
		return Plain(format, a...)
	}
	return o.Painter(format, a...)
}

// =============================================================================
// Block listings
// =============================================================================

// Function writes the USE-DEF listing followed by the IN-OUT listing.
func Function(w io.Writer, res *liveness.Result, o Options) error {
	var buf strings.Builder

	buf.WriteString(o.paint("+++++++++++++++ USE-DEF values ++++++++++++++++") + "\n")
	writePairs(&buf, res, o, "USE", "DEF", func(b ir.BlockID) (*varset.Set, *varset.Set, bool) {
		ud, ok := res.BlockUseDef(b)
		return ud.Use, ud.Def, ok
	})
	buf.WriteString("\n")

	buf.WriteString(o.paint("+++++++++++++++ IN-OUT values ++++++++++++++++") + "\n")
	writeInOut(&buf, res, o)

	_, err := io.WriteString(w, buf.String())
	return err
}

// UseDef writes the USE and DEF sets of every block in layout order.
func UseDef(w io.Writer, res *liveness.Result, o Options) error {
	var buf strings.Builder
	writePairs(&buf, res, o, "USE", "DEF", func(b ir.BlockID) (*varset.Set, *varset.Set, bool) {
		ud, ok := res.BlockUseDef(b)
		return ud.Use, ud.Def, ok
	})
	_, err := io.WriteString(w, buf.String())
	return err
}

// InOut writes the IN and OUT sets of every block in layout order.
func InOut(w io.Writer, res *liveness.Result, o Options) error {
	var buf strings.Builder
	writeInOut(&buf, res, o)
	_, err := io.WriteString(w, buf.String())
	return err
}

func writeInOut(buf *strings.Builder, res *liveness.Result, o Options) {
	writePairs(buf, res, o, "IN", "OUT", func(b ir.BlockID) (*varset.Set, *varset.Set, bool) {
		sets, ok := res.BlockInOut(b)
		return sets.In, sets.Out, ok
	})
}

func writePairs(
	buf *strings.Builder,
	res *liveness.Result,
	o Options,
	first, second string,
	get func(ir.BlockID) (*varset.Set, *varset.Set, bool),
) {
	fn := res.Func()
	for _, b := range fn.Blocks() {
		if o.Instrs {
			writeInstrs(buf, res, b)
		}

		if o.Body {
			writeBody(buf, fn, b, o)
		} else {
			buf.WriteString(o.paint("%s:", b.Name) + "\n")
		}

		s1, s2, ok := get(b.ID)
		if !ok {
			buf.WriteString("\t<empty>\n")
			continue
		}
		fmt.Fprintf(buf, "\t%s %s\n", first, SetString(res, s1))
		fmt.Fprintf(buf, "\t%s %s\n\n", second, SetString(res, s2))
	}
}

func writeBody(buf *strings.Builder, fn *ir.Func, b *ir.Block, o Options) {
	buf.WriteString(o.paint("%s:", b.Name) + "\n")
	for _, id := range b.Instrs {
		fmt.Fprintf(buf, "  %s\n", fn.Format(id))
	}
}

// =============================================================================
// Per-instruction sets
// =============================================================================

// Instrs writes every instruction followed by its USE and DEF bit strings,
// one character per registered variable.
func Instrs(w io.Writer, res *liveness.Result) error {
	var buf strings.Builder
	for _, b := range res.Func().Blocks() {
		writeInstrs(&buf, res, b)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

func writeInstrs(buf *strings.Builder, res *liveness.Result, b *ir.Block) {
	fn := res.Func()
	for _, id := range b.Instrs {
		fmt.Fprintf(buf, "%s\n", fn.Format(id))
		ud, ok := res.InstrUseDef(id)
		if !ok {
			buf.WriteString("Use: \nDef: \n")
			continue
		}
		fmt.Fprintf(buf, "Use: %s\n", ud.Use.Bits())
		fmt.Fprintf(buf, "Def: %s\n", ud.Def.Bits())
	}
}

// =============================================================================
// Sets
// =============================================================================

// SetString renders set as "{ x y }", each member followed by a space.
func SetString(res *liveness.Result, set *varset.Set) string {
	var buf strings.Builder
	buf.WriteString("{ ")
	fn := res.Func()
	for _, id := range res.Variables(set) {
		buf.WriteString(fn.Operand(id))
		buf.WriteByte(' ')
	}
	buf.WriteString("}")
	return buf.String()
}
