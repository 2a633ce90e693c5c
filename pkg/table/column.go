package table

import (
	"joinframe/pkg/selection"
	"joinframe/pkg/types"
)

// Column is a named, homogeneous sequence of cells of one concrete kind.
// Every cell is either a value or missing.
type Column interface {
	Name() string
	SetName(name string)
	Type() types.Type
	Size() int

	IsMissing(row int) bool
	AppendMissing()
	SetMissing(row int)

	// AppendText parses s in the column's textual form and appends it.
	// The empty string appends a missing cell.
	AppendText(s string) error

	// AppendCell appends row of src, which must have the same kind.
	AppendCell(src Column, row int)

	// CompareRows orders row i of this column against row j of other,
	// which must have the same kind. Missing cells sort first.
	CompareRows(i int, other Column, j int) int

	// IsNotIn selects the rows whose value does not occur in other.
	// Missing cells are always selected.
	IsNotIn(other Column) *selection.Selection

	// Format renders one cell; missing cells render as the empty string.
	Format(row int) string

	// EmptyCopy returns a column with the same name and kind and no rows.
	EmptyCopy() Column
	Copy() Column
	// Permute returns a copy whose i-th row is row order[i] of this column.
	Permute(order []int) Column
}
