// Command livedump prints the live-variable sets of Go functions.
//
// Usage:
//
//	livedump [flags] <packages>
//
// Examples:
//
//	livedump ./...                          # USE/DEF and IN/OUT of every function
//	livedump --func 'Parse$' --insts ./pkg  # per-instruction bit strings too
//	livedump --trim --pretty ./pkg          # drop dead blocks, print the IR
//	livedump --table ./...                  # one summary table per function
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"
)

var (
	funcFlag = &cli.StringFlag{
		Name:  "func",
		Usage: "regexp selecting functions by their full name",
	}
	orderFlag = &cli.StringFlag{
		Name:  "order",
		Usage: "block visit order of the solver: postorder, rpo or layout",
		Value: "postorder",
	}
	trimFlag = &cli.BoolFlag{
		Name:  "trim",
		Usage: "remove blocks unreachable from the entry before solving",
	}
	prettyFlag = &cli.BoolFlag{
		Name:  "pretty",
		Usage: "print the lowered IR of each function",
	}
	bodyFlag = &cli.BoolFlag{
		Name:  "body",
		Usage: "print block bodies instead of block names in set listings",
	}
	instsFlag = &cli.BoolFlag{
		Name:  "insts",
		Usage: "print per-instruction USE/DEF bit strings",
	}
	tableFlag = &cli.BoolFlag{
		Name:  "table",
		Usage: "print a summary table instead of set listings",
	}
	rawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "dump the raw IN/OUT indices per block",
	}
	colorFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "colour headers even when stdout is not a terminal",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log every analyzed function",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "livedump",
		Usage:     "print live-variable sets of Go functions",
		ArgsUsage: "<packages>",
		Flags: []cli.Flag{
			funcFlag,
			orderFlag,
			trimFlag,
			prettyFlag,
			bodyFlag,
			instsFlag,
			tableFlag,
			rawFlag,
			colorFlag,
			verboseFlag,
		},
		Action: dumpAction,
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "livedump:", err)
		os.Exit(1)
	}
}
