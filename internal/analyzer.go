// Package internal connects the go/analysis driver to the liveness engine.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────────────┐
//	│                         Analysis Flow                                    │
//	│                                                                          │
//	│   analyzer.go (public)                                                   │
//	│        │                                                                 │
//	│        ▼                                                                 │
//	│   internal/analyzer.go   ◀── You are here                                │
//	│   ┌─────────────────────────────────────────────────────────────────┐   │
//	│   │  RunSSA()                                                       │   │
//	│   │    │                                                            │   │
//	│   │    ├── Skip excluded files                                      │   │
//	│   │    ├── Lower each function (ssaconv.Lower)                      │   │
//	│   │    ├── Solve liveness (liveness.Analyze)                        │   │
//	│   │    ├── Dump sets for functions matching the debug filter        │   │
//	│   │    ├── Report live-in at entry unless //livevar:ignore'd        │   │
//	│   │    └── Report unused //livevar:ignore directives                │   │
//	│   └─────────────────────────────────────────────────────────────────┘   │
//	│        │                                                                 │
//	│        ▼                                                                 │
//	│   internal/ssaconv, internal/liveness, internal/report,                  │
//	│   internal/directive                                                     │
//	└─────────────────────────────────────────────────────────────────────────┘
package internal

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livevar/internal/directive"
	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/liveness"
	"github.com/mpyw/livevar/internal/opts"
	"github.com/mpyw/livevar/internal/report"
	"github.com/mpyw/livevar/internal/ssaconv"
)

// =============================================================================
// Configuration
// =============================================================================

// Config carries the analyzer flags into RunSSA.
type Config struct {
	SkipFiles   map[string]bool // Files excluded from analysis (generated code)
	DebugFilter string          // Regexp over fn.String() selecting functions to dump
	Order       opts.Order      // Solver visit order
	Instrs      bool            // Include per-instruction sets in dumps
	Report      bool            // Report variables live-in at entry
	Debug       io.Writer       // Dump destination, os.Stderr when nil

	// Ignores holds the //livevar:ignore directives of each analyzed file,
	// keyed by filename. Only consulted when Report is set.
	Ignores map[string]*directive.Ignores
}

func (c Config) options() []liveness.Option {
	return []liveness.Option{liveness.WithOrder(c.Order)}
}

// =============================================================================
// Results
// =============================================================================

// Function is the liveness of one ssa function.
type Function struct {
	SSA     *ssa.Function
	IR      *ir.Func
	Mapping *ssaconv.Mapping
	Result  *liveness.Result
}

// LiveIn returns the ssa values live on entry to b.
func (f *Function) LiveIn(b *ssa.BasicBlock) []ssa.Value {
	id, ok := f.Mapping.Block(b)
	if !ok {
		return nil
	}
	return f.values(f.Result.LiveIn(id))
}

// LiveOut returns the ssa values live on exit from b.
func (f *Function) LiveOut(b *ssa.BasicBlock) []ssa.Value {
	id, ok := f.Mapping.Block(b)
	if !ok {
		return nil
	}
	return f.values(f.Result.LiveOut(id))
}

func (f *Function) values(ids []ir.ValueID) []ssa.Value {
	ret := make([]ssa.Value, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.Mapping.SSAValue(id); ok {
			ret = append(ret, v)
		}
	}
	return ret
}

// Result holds the liveness of every analyzed function of a package.
type Result struct {
	Funcs []*Function

	byFunc map[*ssa.Function]*Function
}

// Func returns the liveness of fn.
func (r *Result) Func(fn *ssa.Function) (*Function, bool) {
	f, ok := r.byFunc[fn]
	return f, ok
}

// AnalyzeFunction lowers fn and solves its liveness.
func AnalyzeFunction(fn *ssa.Function, cfg Config) (*Function, error) {
	lowered, m, err := ssaconv.Lower(fn)
	if err != nil {
		return nil, err
	}
	res, err := liveness.Analyze(lowered, cfg.options()...)
	if err != nil {
		return nil, err
	}
	return &Function{SSA: fn, IR: lowered, Mapping: m, Result: res}, nil
}

// =============================================================================
// Entry Point
// =============================================================================

// RunSSA computes liveness for every source function of the package.
//
// Processing flow for each function:
//  1. Skip if file is excluded (generated files, etc.)
//  2. Lower to ir and solve
//  3. Dump the sets if the function matches the debug filter
//  4. Report variables live-in at entry if enabled and not ignored
//
// With Report set, ignore directives that suppressed nothing are reported
// once every function has been processed.
func RunSSA(pass *analysis.Pass, ssaInfo *buildssa.SSA, cfg Config) *Result {
	// Compile debug filter regex if provided
	var debugFilterRegex *regexp.Regexp
	if cfg.DebugFilter != "" {
		var err error
		debugFilterRegex, err = regexp.Compile(cfg.DebugFilter)
		if err != nil {
			// Report regex error but continue analysis without debug mode
			pass.Reportf(token.NoPos, "invalid debug filter regex: %v", err)
			debugFilterRegex = nil
		}
	}

	out := cfg.Debug
	if out == nil {
		out = os.Stderr
	}

	ret := &Result{byFunc: make(map[*ssa.Function]*Function)}
	for _, fn := range ssaInfo.SrcFuncs {
		pos := fn.Pos()
		if !pos.IsValid() {
			continue
		}

		// Skip functions in excluded files
		if cfg.SkipFiles[pass.Fset.Position(pos).Filename] {
			continue
		}

		f, err := AnalyzeFunction(fn, cfg)
		if err != nil {
			pass.Reportf(pos, "liveness: %v", err)
			continue
		}
		ret.Funcs = append(ret.Funcs, f)
		ret.byFunc[fn] = f

		if debugFilterRegex != nil && debugFilterRegex.MatchString(fn.String()) {
			dump(out, f, cfg)
		}
		if cfg.Report {
			reportEntry(pass, f, cfg.Ignores)
		}
	}

	if cfg.Report {
		for _, pos := range unusedIgnores(cfg.Ignores) {
			pass.Reportf(pos, "unused livevar:ignore directive")
		}
	}
	return ret
}

// unusedIgnores lists the directives that suppressed nothing, ordered by
// filename and then by position.
func unusedIgnores(ignores map[string]*directive.Ignores) []token.Pos {
	files := maps.Keys(ignores)
	slices.Sort(files)

	var ret []token.Pos
	for _, name := range files {
		ret = append(ret, ignores[name].Unused()...)
	}
	return ret
}

func dump(w io.Writer, f *Function, cfg Config) {
	fmt.Fprintf(w, "\n=== Liveness for %s (%d sweeps, %s) ===\n", f.SSA.String(), f.Result.Sweeps(), f.Result.Order())
	_ = ir.Fprint(w, f.IR)
	_ = report.Function(w, f.Result, report.Options{Instrs: cfg.Instrs})
}

// reportEntry reports the variables a function needs on entry. Only
// parameters and free variables can appear there.
func reportEntry(pass *analysis.Pass, f *Function, ignores map[string]*directive.Ignores) {
	live := f.LiveIn(f.SSA.Blocks[0])
	if len(live) == 0 {
		return
	}
	pos := pass.Fset.Position(f.SSA.Pos())
	if ignores[pos.Filename].Suppressed(f.SSA.Pos(), pos.Line) {
		return
	}
	names := make([]string, len(live))
	for i, v := range live {
		names[i] = v.Name()
	}
	pass.Reportf(f.SSA.Pos(), "live-in at entry of %s: %s", f.SSA.Name(), strings.Join(names, " "))
}
