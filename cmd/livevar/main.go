// Command livevar computes live variables for Go functions.
//
// Usage:
//
//	livevar -report ./...
//	livevar -func 'pkg\.Func$' -insts ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which livevar) -livevar.report ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/livevar"
)

func main() {
	singlechecker.Main(livevar.Analyzer)
}
