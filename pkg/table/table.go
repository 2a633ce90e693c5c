// Package table provides the in-memory, column-oriented tables that joins
// read from and write into.
//
// A Table is an ordered set of uniquely named columns of equal length. Column
// names are matched case-insensitively, both for lookup and for uniqueness.
// Tables are mutable (columns and rows can be appended, columns removed or
// renamed) but every derived table (SortOn, Copy, EmptyCopy) is a fresh value
// that never aliases the source columns.
package table

import (
	"slices"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"joinframe/pkg/dberror"
)

type Table struct {
	name    string
	columns []Column
}

// New creates a table from the given columns. Columns must have unique names
// and equal sizes.
func New(name string, columns ...Column) (*Table, error) {
	t := &Table{name: name}
	if err := t.AddColumns(columns...); err != nil {
		return nil, err
	}
	return t, nil
}

// MustNew is New for statically known schemas; it panics on error.
func MustNew(name string, columns ...Column) *Table {
	t, err := New(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string        { return t.name }
func (t *Table) SetName(name string) { t.name = name }
func (t *Table) ColumnCount() int    { return len(t.columns) }

func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Size()
}

func (t *Table) Column(i int) Column {
	return t.columns[i]
}

// Columns returns the table's columns in order. The slice is a copy; the
// columns are not.
func (t *Table) Columns() []Column {
	return slices.Clone(t.columns)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// ColumnIndex returns the position of the column called name, ignoring case.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.columns {
		if strings.EqualFold(c.Name(), name) {
			return i, nil
		}
	}
	return -1, dberror.ColumnNotFound(t.name, name)
}

func (t *Table) ContainsColumn(name string) bool {
	_, err := t.ColumnIndex(name)
	return err == nil
}

// AddColumns appends columns to the table.
func (t *Table) AddColumns(columns ...Column) error {
	for _, c := range columns {
		if c == nil {
			return errors.Newf("table %q: nil column", t.name)
		}
		if t.ContainsColumn(c.Name()) {
			return errors.Newf("table %q already contains a column named %q", t.name, c.Name())
		}
		if len(t.columns) > 0 && c.Size() != t.RowCount() {
			return errors.Newf("table %q: column %q has %d rows, expected %d",
				t.name, c.Name(), c.Size(), t.RowCount())
		}
		t.columns = append(t.columns, c)
	}
	return nil
}

// RemoveColumns drops the columns at the given positions. Out-of-range
// positions are ignored.
func (t *Table) RemoveColumns(indexes ...int) {
	if len(indexes) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		drop[i] = struct{}{}
	}
	kept := t.columns[:0:0]
	for i, c := range t.columns {
		if _, ok := drop[i]; !ok {
			kept = append(kept, c)
		}
	}
	t.columns = kept
}

// AppendRow appends a row whose cells are all missing and returns its
// position.
func (t *Table) AppendRow() int {
	for _, c := range t.columns {
		c.AppendMissing()
	}
	return t.RowCount() - 1
}

// Append concatenates the rows of other onto t. Both tables must have the
// same column kinds in the same order; names are not compared.
func (t *Table) Append(other *Table) error {
	if other.ColumnCount() != t.ColumnCount() {
		return errors.Newf("cannot append table %q with %d columns to table %q with %d columns",
			other.name, other.ColumnCount(), t.name, t.ColumnCount())
	}
	for i, c := range t.columns {
		if oc := other.columns[i]; oc.Type() != c.Type() {
			return errors.Newf("cannot append column %q (%s) to column %q (%s)",
				oc.Name(), oc.Type(), c.Name(), c.Type())
		}
	}
	for i, c := range t.columns {
		src := other.columns[i]
		for r := 0; r < src.Size(); r++ {
			c.AppendCell(src, r)
		}
	}
	return nil
}

// EmptyCopy returns a table with the same schema and no rows.
func (t *Table) EmptyCopy() *Table {
	cp := &Table{name: t.name, columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		cp.columns[i] = c.EmptyCopy()
	}
	return cp
}

func (t *Table) Copy() *Table {
	cp := &Table{name: t.name, columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		cp.columns[i] = c.Copy()
	}
	return cp
}

// SortOn returns a copy of t sorted ascending on the given column positions,
// the first being the primary key. The sort is stable: rows with equal keys
// keep their original relative order.
func (t *Table) SortOn(indexes ...int) *Table {
	order := make([]int, t.RowCount())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		for _, c := range indexes {
			col := t.columns[c]
			if cmp := col.CompareRows(order[a], col, order[b]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	sorted := &Table{name: t.name, columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		sorted.columns[i] = c.Permute(order)
	}
	return sorted
}

// Row returns a cursor positioned before the first row.
func (t *Table) Row() *Row {
	return &Row{table: t, pos: -1}
}

// RowAt returns a cursor positioned at row pos.
func (t *Table) RowAt(pos int) *Row {
	return &Row{table: t, pos: pos}
}
