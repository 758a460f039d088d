// Package livevar computes live variables for every function of a Go
// package.
//
// A variable is live at a point if its current value may still be read on
// some path before being overwritten. The analyzer lowers each function's
// SSA form and solves the backward liveness equations per basic block,
// producing USE, DEF, IN and OUT sets. Other analyzers can depend on it and
// read the sets through Result; run standalone, it can dump the sets or
// report what each function needs live on entry.
package livevar

import (
	"go/ast"
	"reflect"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"github.com/mpyw/livevar/internal"
	"github.com/mpyw/livevar/internal/directive"
	"github.com/mpyw/livevar/internal/opts"
)

// Result is the value Analyzer produces for each package.
type Result = internal.Result

// Function is the liveness of one ssa function.
type Function = internal.Function

var (
	funcFilter string
	visitOrder = opts.DefaultOrder
	dumpInstrs bool
	reportLive bool
)

// Analyzer computes per-block live variables for every source function.
var Analyzer = &analysis.Analyzer{
	Name:       "livevar",
	Doc:        "computes live variables for every function",
	Requires:   []*analysis.Analyzer{buildssa.Analyzer},
	Run:        run,
	ResultType: reflect.TypeOf((*Result)(nil)),
}

func init() {
	Analyzer.Flags.StringVar(&funcFilter, "func", "", "regexp selecting functions whose sets are dumped to stderr")
	Analyzer.Flags.Var(&visitOrder, "order", "block visit order of the solver: postorder, rpo or layout")
	Analyzer.Flags.BoolVar(&dumpInstrs, "insts", false, "include per-instruction USE/DEF bit strings in dumps")
	Analyzer.Flags.BoolVar(&reportLive, "report", false, "report the variables live on entry to each function")
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	skipFiles := buildSkipFiles(pass)
	cfg := internal.Config{
		SkipFiles:   skipFiles,
		DebugFilter: funcFilter,
		Order:       visitOrder,
		Instrs:      dumpInstrs,
		Report:      reportLive,
	}
	if reportLive {
		cfg.Ignores = buildIgnores(pass, skipFiles)
	}
	return internal.RunSSA(pass, ssaInfo, cfg), nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnores scans the ignore directives of every file that is analyzed.
func buildIgnores(pass *analysis.Pass, skipFiles map[string]bool) map[string]*directive.Ignores {
	ret := make(map[string]*directive.Ignores)
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ret[filename] = directive.Scan(pass.Fset, file)
	}
	return ret
}
