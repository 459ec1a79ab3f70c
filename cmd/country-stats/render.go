package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"country-stats/internal/view"
)

const title = "Country Statistics for English Speaking Programmer"

func render(out io.Writer, vm *view.ViewModel) {
	cur := vm.Current()
	f := vm.Formatter()

	color.New(color.FgCyan, color.Bold).Fprintln(out, title)
	if cur.Query != "" {
		fmt.Fprintf(out, "Search: %q\n", cur.Query)
	}

	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(headers(cur.Sort))
	table.SetColumnAlignment(alignments())

	if len(cur.Rows) == 0 {
		empty := make([]string, len(view.Columns))
		empty[0] = "No data"
		table.Append(empty)
	}
	for _, row := range cur.Rows {
		cells := make([]string, len(view.Columns))
		for i, col := range view.Columns {
			cells[i] = f.Cell(row, col)
		}
		table.Append(cells)
	}
	table.Render()

	fmt.Fprintf(out, "Page %d of %d · %s rows\n",
		cur.Page.Page, cur.PageCount, f.Format(cur.Total, view.KindNumber))
}

func headers(sort view.SortSpec) []string {
	out := view.Labels()
	for i, col := range view.Columns {
		if col.Key != sort.Key {
			continue
		}
		if sort.Dir == view.Desc {
			out[i] += " ▼"
		} else {
			out[i] += " ▲"
		}
	}
	return out
}

func alignments() []int {
	out := make([]int, len(view.Columns))
	for i, col := range view.Columns {
		if col.Align == view.AlignRight {
			out[i] = tablewriter.ALIGN_RIGHT
		} else {
			out[i] = tablewriter.ALIGN_LEFT
		}
	}
	return out
}
