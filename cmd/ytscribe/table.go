package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"ytscribe/batch"
	"ytscribe/youtube"
)

const maxTitleWidth = 60

// newTableWriter returns a table writer styled for the current output:
// rounded borders on a terminal, plain ASCII when piped.
func newTableWriter() table.Writer {
	tw := table.NewWriter()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	return tw
}

// renderItems renders an enumerated playlist.
func renderItems(items []youtube.PlaylistItem) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"#", "VIDEO ID", "TITLE"})
	for i, item := range items {
		tw.AppendRow(table.Row{i + 1, item.ID, truncate(item.Title, maxTitleWidth)})
	}
	return tw.Render()
}

// renderSummary renders the end-of-run report.
func renderSummary(report *batch.Report) string {
	tw := newTableWriter()
	tw.SetTitle(fmt.Sprintf("run %s", report.RunID))
	tw.AppendHeader(table.Row{"OUTCOME", "COUNT"})
	tw.AppendRow(table.Row{"saved", report.Saved})
	tw.AppendRow(table.Row{"skipped (already saved)", report.Skipped})
	tw.AppendRow(table.Row{"no transcript", report.Empty})
	tw.AppendFooter(table.Row{"total", report.Total})
	return tw.Render()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
