// Package output renders client-facing tabular summaries (transfer
// results, directory pick summaries) with tablewriter, the same
// dependency the teacher's internal/cli/output package wraps.
package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by types that can render themselves as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// PrintTable writes data as a borderless, left-aligned table to w —
// the same style the teacher's CLI uses for its own summaries.
func PrintTable(w io.Writer, data TableRenderer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(data.Headers())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range data.Rows() {
		table.Append(row)
	}
	table.Render()
	return nil
}

// TransferSummary renders as a single-row table describing one completed
// upload or download: the action, the two endpoints, and size/duration.
type TransferSummary struct {
	Action   string
	Source   string
	Target   string
	Bytes    int
	Duration string
}

func (s TransferSummary) Headers() []string {
	return []string{"action", "source", "target", "bytes", "duration"}
}

func (s TransferSummary) Rows() [][]string {
	return [][]string{{
		s.Action, s.Source, s.Target, strconv.Itoa(s.Bytes), s.Duration,
	}}
}
