package table

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// MissingText is how missing cells are displayed by Print.
const MissingText = "NULL"

// DisplayRows formats up to maxRows rows of t for display, missing cells as
// MissingText. A non-positive maxRows returns every row.
func (t *Table) DisplayRows(maxRows int) [][]string {
	n := t.RowCount()
	if maxRows > 0 && maxRows < n {
		n = maxRows
	}
	out := make([][]string, 0, n)
	row := t.Row()
	for i := 0; i < n; i++ {
		row.Next()
		cells := make([]string, t.ColumnCount())
		for c := range cells {
			if row.IsMissing(c) {
				cells[c] = MissingText
			} else {
				cells[c] = row.Format(c)
			}
		}
		out = append(out, cells)
	}
	return out
}

// Print renders up to maxRows rows of t as an aligned text table. A
// non-positive maxRows prints every row.
func (t *Table) Print(w io.Writer, maxRows int) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(t.ColumnNames())
	tw.AppendBulk(t.DisplayRows(maxRows))
	tw.Render()
}

func (t *Table) String() string {
	var b strings.Builder
	t.Print(&b, 0)
	return b.String()
}
