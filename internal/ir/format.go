package ir

import (
	"fmt"
	"io"
	"strings"
)

// Operand returns how v appears as an operand: constants as their literal,
// labels as the target block name, everything else by name (or %N when the
// value is anonymous).
func (f *Func) Operand(id ValueID) string {
	v := f.Value(id)
	switch {
	case v == nil:
		return "<nil>"
	case v.Kind == KindLabel:
		return "label " + v.Name
	case v.Name != "":
		return v.Name
	default:
		return fmt.Sprintf("%%%d", v.ID)
	}
}

// Format returns the textual form of one instruction without numbering.
func (f *Func) Format(id InstrID) string {
	ins := f.Instr(id)
	if ins == nil {
		return "<nil>"
	}

	var ops []string
	if ins.IsJoin() {
		for _, in := range ins.Incoming {
			name := "?"
			if b := f.Block(in.Pred); b != nil {
				name = b.Name
			}
			ops = append(ops, fmt.Sprintf("[%s: %s]", name, f.Operand(in.Value)))
		}
	} else {
		for _, a := range ins.Args {
			ops = append(ops, f.Operand(a))
		}
	}

	body := ins.Op
	if len(ops) != 0 {
		body += "\t" + strings.Join(ops, ", ")
	}
	if ins.HasResult() {
		return f.Operand(ins.Result) + " = " + body
	}
	return body
}

// Fprint writes a human readable listing of f to w.
//
//	FUNCTION f
//
//	BASIC BLOCK entry:
//	%1	x = copy	1
//	%2	ret	x
//
// Instructions are numbered from 1 across the whole function.
func Fprint(w io.Writer, f *Func) error {
	var buf strings.Builder
	n := 1

	fmt.Fprintf(&buf, "FUNCTION %s\n\n", f.Name)
	for _, b := range f.Blocks() {
		fmt.Fprintf(&buf, "BASIC BLOCK %s:\n", b.Name)
		for _, i := range b.Instrs {
			fmt.Fprintf(&buf, "%%%d\t%s\n", n, f.Format(i))
			n++
		}
		buf.WriteString("\n")
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
