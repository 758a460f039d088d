package main

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/mpyw/livevar/internal/ir"
	"github.com/mpyw/livevar/internal/liveness"
	"github.com/mpyw/livevar/internal/opts"
	"github.com/mpyw/livevar/internal/report"
	"github.com/mpyw/livevar/internal/ssaconv"
)

// config is the parsed command line.
type config struct {
	filter *regexp.Regexp
	order  opts.Order
	trim   bool
	pretty bool
	body   bool
	insts  bool
	table  bool
	raw    bool
	paint  report.Painter
}

func parseConfig(ctx *cli.Context) (*config, error) {
	cfg := &config{
		trim:   ctx.Bool(trimFlag.Name),
		pretty: ctx.Bool(prettyFlag.Name),
		body:   ctx.Bool(bodyFlag.Name),
		insts:  ctx.Bool(instsFlag.Name),
		table:  ctx.Bool(tableFlag.Name),
		raw:    ctx.Bool(rawFlag.Name),
		paint:  report.Plain,
	}

	order, err := opts.ParseOrder(ctx.String(orderFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "--order")
	}
	cfg.order = order

	if expr := ctx.String(funcFlag.Name); expr != "" {
		cfg.filter, err = regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrap(err, "--func")
		}
	}

	if ctx.Bool(colorFlag.Name) {
		color.NoColor = false
	}
	if !color.NoColor {
		cfg.paint = color.New(color.FgCyan, color.Bold).SprintfFunc()
	}
	return cfg, nil
}

func dumpAction(ctx *cli.Context) error {
	logger := newLogger(ctx.Bool(verboseFlag.Name))

	cfg, err := parseConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errors.New("no packages given")
	}

	funcs, err := load(ctx.Args().Slice())
	if err != nil {
		return err
	}
	logger.Debug("loaded packages", "funcs", len(funcs))

	for _, fn := range funcs {
		if cfg.filter != nil && !cfg.filter.MatchString(fn.String()) {
			continue
		}
		if err := dumpFunc(os.Stdout, logger, cfg, fn); err != nil {
			logger.Warn("skipped function", "func", fn.String(), "err", err)
		}
	}
	return nil
}

// load builds SSA for the packages matching patterns and returns their
// source functions sorted by position.
func load(patterns []string) ([]*ssa.Function, error) {
	pcfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "load packages")
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.New("packages contain errors")
	}

	prog, ssaPkgs := ssautil.Packages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	own := make(map[*ssa.Package]bool)
	for _, p := range ssaPkgs {
		if p != nil {
			own[p] = true
		}
	}

	var funcs []*ssa.Function
	for fn := range ssautil.AllFunctions(prog) {
		if fn.Synthetic != "" || len(fn.Blocks) == 0 || !own[fn.Pkg] {
			continue
		}
		funcs = append(funcs, fn)
	}
	sortFuncs(prog.Fset, funcs)
	return funcs, nil
}

func sortFuncs(fset *token.FileSet, funcs []*ssa.Function) {
	sort.Slice(funcs, func(i, j int) bool {
		pi, pj := fset.Position(funcs[i].Pos()), fset.Position(funcs[j].Pos())
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Offset != pj.Offset {
			return pi.Offset < pj.Offset
		}
		return funcs[i].String() < funcs[j].String()
	})
}

// dumpFunc lowers, optionally trims, solves and prints one function.
func dumpFunc(w io.Writer, logger *slog.Logger, cfg *config, fn *ssa.Function) error {
	lowered, _, err := ssaconv.Lower(fn)
	if err != nil {
		return err
	}

	if cfg.trim {
		for _, id := range ir.Trim(lowered) {
			logger.Info("block was not visited, removed", "func", lowered.Name, "block", lowered.Block(id).Name)
		}
	}

	res, err := liveness.Analyze(lowered, liveness.WithOrder(cfg.order))
	if err != nil {
		return errors.Wrapf(err, "analyze %s", lowered.Name)
	}
	logger.Debug("analyzed function",
		"func", lowered.Name,
		"blocks", lowered.NumBlocks(),
		"vars", res.Registry().Len(),
		"sweeps", res.Sweeps(),
		"order", res.Order().String(),
	)

	fmt.Fprintln(w, cfg.paint("=== %s ===", lowered.Name))
	if cfg.pretty {
		if err := ir.Fprint(w, lowered); err != nil {
			return err
		}
	}

	switch {
	case cfg.raw:
		rawDump(w, res)
		return nil
	case cfg.table:
		return report.Table(w, res)
	}
	return report.Function(w, res, report.Options{Painter: cfg.paint, Body: cfg.body, Instrs: cfg.insts})
}

var rawConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

type rawSets struct {
	Use, Def, In, Out []uint
}

func rawDump(w io.Writer, res *liveness.Result) {
	sets := make(map[string]rawSets)
	for _, b := range res.Func().Blocks() {
		var r rawSets
		if ud, ok := res.BlockUseDef(b.ID); ok {
			r.Use, r.Def = ud.Use.Indices(), ud.Def.Indices()
		}
		if inout, ok := res.BlockInOut(b.ID); ok {
			r.In, r.Out = inout.In.Indices(), inout.Out.Indices()
		}
		sets[b.Name] = r
	}
	rawConfig.Fdump(w, sets)
}
