package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mpyw/livevar/internal/liveness"
)

// Table writes a per-block summary with the size of every set and the
// live-in variables.
func Table(w io.Writer, res *liveness.Result) error {
	var rows [][]string
	fn := res.Func()
	for _, b := range fn.Blocks() {
		row := []string{b.Name, "-", "-", "-", "-", ""}
		if ud, ok := res.BlockUseDef(b.ID); ok {
			row[1] = strconv.FormatUint(uint64(ud.Use.Count()), 10)
			row[2] = strconv.FormatUint(uint64(ud.Def.Count()), 10)
		}
		if sets, ok := res.BlockInOut(b.ID); ok {
			row[3] = strconv.FormatUint(uint64(sets.In.Count()), 10)
			row[4] = strconv.FormatUint(uint64(sets.Out.Count()), 10)
		}
		var live []string
		for _, v := range res.LiveIn(b.ID) {
			live = append(live, fn.Operand(v))
		}
		row[5] = strings.Join(live, " ")
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Block", "Use", "Def", "In", "Out", "Live In"})
	table.SetFooter([]string{fn.Name, "", "", "", "sweeps", strconv.Itoa(res.Sweeps())})
	table.AppendBulk(rows)
	table.Render()
	return nil
}
