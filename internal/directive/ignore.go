package directive

import (
	"go/ast"
	"go/token"
	"sort"
)

type ignoreEntry struct {
	pos  token.Pos
	used bool
}

// Ignores tracks the ignore directives of one file and which of them have
// suppressed a report.
type Ignores struct {
	file  bool
	lines map[int]*ignoreEntry       // directive line → entry
	funcs map[token.Pos]*ignoreEntry // function name position → doc directive
}

// Scan collects the ignore directives of file.
//
// Directives inside the package doc comment make the whole file ignored and
// are never reported as unused.
func Scan(fset *token.FileSet, file *ast.File) *Ignores {
	ig := &Ignores{
		lines: make(map[int]*ignoreEntry),
		funcs: make(map[token.Pos]*ignoreEntry),
	}

	for _, cg := range file.Comments {
		if cg == file.Doc {
			for _, c := range cg.List {
				if IsIgnoreDirective(c.Text) {
					ig.file = true
				}
			}
			continue
		}
		for _, c := range cg.List {
			if IsIgnoreDirective(c.Text) {
				ig.lines[fset.Position(c.Pos()).Line] = &ignoreEntry{pos: c.Pos()}
			}
		}
	}

	// Doc comments may run over several lines, so the directive is not
	// necessarily adjacent to the name. Use Name.Pos() to match ssa's fn.Pos().
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if !IsIgnoreDirective(c.Text) {
				continue
			}
			if e, ok := ig.lines[fset.Position(c.Pos()).Line]; ok {
				ig.funcs[fd.Name.Pos()] = e
			}
			break
		}
	}
	return ig
}

// Suppressed reports whether the function positioned at pos, on the given
// line, should not be reported. A matching directive is marked used.
func (ig *Ignores) Suppressed(pos token.Pos, line int) bool {
	if ig == nil {
		return false
	}
	if ig.file {
		return true
	}
	if e, ok := ig.funcs[pos]; ok {
		e.used = true
		return true
	}
	if e, ok := ig.lines[line]; ok {
		e.used = true
		return true
	}
	if e, ok := ig.lines[line-1]; ok {
		e.used = true
		return true
	}
	return false
}

// Unused returns the positions of directives that suppressed nothing, in
// source order.
func (ig *Ignores) Unused() []token.Pos {
	if ig == nil {
		return nil
	}
	var ret []token.Pos
	for _, e := range ig.lines {
		if !e.used {
			ret = append(ret, e.pos)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
