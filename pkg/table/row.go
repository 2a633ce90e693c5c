package table

import (
	"github.com/cockroachdb/errors"

	"joinframe/pkg/types"
)

// Row is a movable cursor over the rows of a Table. Cell accessors address
// columns by position and panic when the column does not hold the requested
// kind, the same way an out-of-range index would.
type Row struct {
	table *Table
	pos   int
}

func (r *Row) Table() *Table    { return r.table }
func (r *Row) Position() int    { return r.pos }
func (r *Row) ColumnCount() int { return r.table.ColumnCount() }
func (r *Row) HasNext() bool    { return r.pos+1 < r.table.RowCount() }
func (r *Row) Next()            { r.pos++ }
func (r *Row) At(pos int)       { r.pos = pos }

func (r *Row) IsMissing(col int) bool {
	return r.table.columns[col].IsMissing(r.pos)
}

func (r *Row) SetMissing(col int) {
	r.table.columns[col].SetMissing(r.pos)
}

// ColumnType returns the declared kind of the column at position col.
func (r *Row) ColumnType(col int) types.Type {
	return r.table.columns[col].Type()
}

func cell[T comparable](r *Row, col int, want types.Type) *Vector[T] {
	v, ok := r.table.columns[col].(*Vector[T])
	if !ok || v.kind.typ != want {
		c := r.table.columns[col]
		panic(errors.AssertionFailedf("column %d (%q) is %s, not %s", col, c.Name(), c.Type(), want))
	}
	return v
}

func (r *Row) GetShort(col int) int16       { return cell[int16](r, col, types.ShortType).Get(r.pos) }
func (r *Row) SetShort(col int, v int16)    { cell[int16](r, col, types.ShortType).Set(r.pos, v) }
func (r *Row) GetInt(col int) int32         { return cell[int32](r, col, types.IntType).Get(r.pos) }
func (r *Row) SetInt(col int, v int32)      { cell[int32](r, col, types.IntType).Set(r.pos, v) }
func (r *Row) GetLong(col int) int64        { return cell[int64](r, col, types.LongType).Get(r.pos) }
func (r *Row) SetLong(col int, v int64)     { cell[int64](r, col, types.LongType).Set(r.pos, v) }
func (r *Row) GetFloat(col int) float32     { return cell[float32](r, col, types.FloatType).Get(r.pos) }
func (r *Row) SetFloat(col int, v float32)  { cell[float32](r, col, types.FloatType).Set(r.pos, v) }
func (r *Row) GetDouble(col int) float64    { return cell[float64](r, col, types.DoubleType).Get(r.pos) }
func (r *Row) SetDouble(col int, v float64) { cell[float64](r, col, types.DoubleType).Set(r.pos, v) }
func (r *Row) GetBoolean(col int) bool      { return cell[bool](r, col, types.BooleanType).Get(r.pos) }
func (r *Row) SetBoolean(col int, v bool)   { cell[bool](r, col, types.BooleanType).Set(r.pos, v) }
func (r *Row) GetString(col int) string     { return cell[string](r, col, types.StringType).Get(r.pos) }
func (r *Row) SetString(col int, v string)  { cell[string](r, col, types.StringType).Set(r.pos, v) }
func (r *Row) GetText(col int) string       { return cell[string](r, col, types.TextType).Get(r.pos) }
func (r *Row) SetText(col int, v string)    { cell[string](r, col, types.TextType).Set(r.pos, v) }

// Temporal cells are exchanged in their packed form; see package types.

func (r *Row) GetPackedDate(col int) int32 {
	return cell[int32](r, col, types.LocalDateType).Get(r.pos)
}

func (r *Row) SetPackedDate(col int, v int32) {
	cell[int32](r, col, types.LocalDateType).Set(r.pos, v)
}

func (r *Row) GetPackedTime(col int) int32 {
	return cell[int32](r, col, types.LocalTimeType).Get(r.pos)
}

func (r *Row) SetPackedTime(col int, v int32) {
	cell[int32](r, col, types.LocalTimeType).Set(r.pos, v)
}

func (r *Row) GetPackedDateTime(col int) int64 {
	return cell[int64](r, col, types.LocalDateTimeType).Get(r.pos)
}

func (r *Row) SetPackedDateTime(col int, v int64) {
	cell[int64](r, col, types.LocalDateTimeType).Set(r.pos, v)
}

func (r *Row) GetPackedInstant(col int) int64 {
	return cell[int64](r, col, types.InstantType).Get(r.pos)
}

func (r *Row) SetPackedInstant(col int, v int64) {
	cell[int64](r, col, types.InstantType).Set(r.pos, v)
}

// Format renders the cell at col; missing cells render as the empty string.
func (r *Row) Format(col int) string {
	return r.table.columns[col].Format(r.pos)
}
