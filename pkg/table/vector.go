package table

import (
	"strconv"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"joinframe/pkg/dberror"
	"joinframe/pkg/selection"
	"joinframe/pkg/types"
)

// kind binds a column type to its native Go representation.
type kind[T comparable] struct {
	typ     types.Type
	compare func(a, b T) int
	parse   func(string) (T, error)
	format  func(T) string
}

var (
	shortKind = &kind[int16]{
		typ:     types.ShortType,
		compare: types.CompareOrdered[int16],
		parse:   types.ParseShort,
		format:  func(v int16) string { return strconv.FormatInt(int64(v), 10) },
	}
	intKind = &kind[int32]{
		typ:     types.IntType,
		compare: types.CompareOrdered[int32],
		parse:   types.ParseInt,
		format:  func(v int32) string { return strconv.FormatInt(int64(v), 10) },
	}
	longKind = &kind[int64]{
		typ:     types.LongType,
		compare: types.CompareOrdered[int64],
		parse:   types.ParseLong,
		format:  func(v int64) string { return strconv.FormatInt(v, 10) },
	}
	floatKind = &kind[float32]{
		typ:     types.FloatType,
		compare: types.CompareOrdered[float32],
		parse:   types.ParseFloat,
		format:  func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
	}
	doubleKind = &kind[float64]{
		typ:     types.DoubleType,
		compare: types.CompareOrdered[float64],
		parse:   types.ParseDouble,
		format:  func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	}
	booleanKind = &kind[bool]{
		typ:     types.BooleanType,
		compare: types.CompareBool,
		parse:   types.ParseBoolean,
		format:  strconv.FormatBool,
	}
	stringKind = &kind[string]{
		typ:     types.StringType,
		compare: types.CompareOrdered[string],
		parse:   func(s string) (string, error) { return s, nil },
		format:  func(s string) string { return s },
	}
	textKind = &kind[string]{
		typ:     types.TextType,
		compare: types.CompareOrdered[string],
		parse:   func(s string) (string, error) { return s, nil },
		format:  func(s string) string { return s },
	}
	dateKind = &kind[int32]{
		typ:     types.LocalDateType,
		compare: types.CompareOrdered[int32],
		parse:   types.ParseDate,
		format:  types.FormatDate,
	}
	timeKind = &kind[int32]{
		typ:     types.LocalTimeType,
		compare: types.CompareOrdered[int32],
		parse:   types.ParseTime,
		format:  types.FormatTime,
	}
	dateTimeKind = &kind[int64]{
		typ:     types.LocalDateTimeType,
		compare: types.CompareOrdered[int64],
		parse:   types.ParseDateTime,
		format:  types.FormatDateTime,
	}
	instantKind = &kind[int64]{
		typ:     types.InstantType,
		compare: types.CompareOrdered[int64],
		parse:   types.ParseInstant,
		format:  types.FormatInstant,
	}
)

// Vector is the Column implementation for every kind. The kind decides how
// values are ordered, parsed and printed; T is the native representation.
type Vector[T comparable] struct {
	name    string
	kind    *kind[T]
	data    []T
	missing *bitset.BitSet
}

func newVector[T comparable](name string, k *kind[T], values []T) *Vector[T] {
	data := make([]T, len(values))
	copy(data, values)
	return &Vector[T]{
		name:    name,
		kind:    k,
		data:    data,
		missing: bitset.New(0),
	}
}

func NewShortColumn(name string, values ...int16) *Vector[int16] {
	return newVector(name, shortKind, values)
}

func NewIntColumn(name string, values ...int32) *Vector[int32] {
	return newVector(name, intKind, values)
}

func NewLongColumn(name string, values ...int64) *Vector[int64] {
	return newVector(name, longKind, values)
}

func NewFloatColumn(name string, values ...float32) *Vector[float32] {
	return newVector(name, floatKind, values)
}

func NewDoubleColumn(name string, values ...float64) *Vector[float64] {
	return newVector(name, doubleKind, values)
}

func NewBooleanColumn(name string, values ...bool) *Vector[bool] {
	return newVector(name, booleanKind, values)
}

func NewStringColumn(name string, values ...string) *Vector[string] {
	return newVector(name, stringKind, values)
}

func NewTextColumn(name string, values ...string) *Vector[string] {
	return newVector(name, textKind, values)
}

func NewDateColumn(name string, values ...time.Time) *Vector[int32] {
	return newVector(name, dateKind, packAll(values, types.PackDate))
}

func NewTimeColumn(name string, values ...time.Time) *Vector[int32] {
	return newVector(name, timeKind, packAll(values, types.PackTime))
}

func NewDateTimeColumn(name string, values ...time.Time) *Vector[int64] {
	return newVector(name, dateTimeKind, packAll(values, types.PackDateTime))
}

func NewInstantColumn(name string, values ...time.Time) *Vector[int64] {
	return newVector(name, instantKind, packAll(values, types.PackInstant))
}

func packAll[T any](values []time.Time, pack func(time.Time) T) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = pack(v)
	}
	return out
}

// NewColumn creates an empty column of the given kind.
func NewColumn(name string, typ types.Type) (Column, error) {
	switch typ {
	case types.ShortType:
		return NewShortColumn(name), nil
	case types.IntType:
		return NewIntColumn(name), nil
	case types.LongType:
		return NewLongColumn(name), nil
	case types.FloatType:
		return NewFloatColumn(name), nil
	case types.DoubleType:
		return NewDoubleColumn(name), nil
	case types.BooleanType:
		return NewBooleanColumn(name), nil
	case types.StringType:
		return NewStringColumn(name), nil
	case types.TextType:
		return NewTextColumn(name), nil
	case types.LocalDateType:
		return NewDateColumn(name), nil
	case types.LocalTimeType:
		return NewTimeColumn(name), nil
	case types.LocalDateTimeType:
		return NewDateTimeColumn(name), nil
	case types.InstantType:
		return NewInstantColumn(name), nil
	default:
		return nil, dberror.UnsupportedType("NewColumn", typ.String())
	}
}

func (v *Vector[T]) Name() string        { return v.name }
func (v *Vector[T]) SetName(name string) { v.name = name }
func (v *Vector[T]) Type() types.Type    { return v.kind.typ }
func (v *Vector[T]) Size() int           { return len(v.data) }

// Get returns the native value at row. The result is the zero value when the
// cell is missing.
func (v *Vector[T]) Get(row int) T {
	return v.data[row]
}

// Set stores value at row, clearing any missing mark.
func (v *Vector[T]) Set(row int, value T) {
	v.data[row] = value
	v.missing.Clear(uint(row))
}

func (v *Vector[T]) Append(value T) {
	v.data = append(v.data, value)
}

func (v *Vector[T]) IsMissing(row int) bool {
	return v.missing.Test(uint(row))
}

func (v *Vector[T]) AppendMissing() {
	var zero T
	v.data = append(v.data, zero)
	v.missing.Set(uint(len(v.data) - 1))
}

func (v *Vector[T]) SetMissing(row int) {
	var zero T
	v.data[row] = zero
	v.missing.Set(uint(row))
}

func (v *Vector[T]) AppendText(s string) error {
	if s == "" {
		v.AppendMissing()
		return nil
	}
	value, err := v.kind.parse(s)
	if err != nil {
		return errors.Wrapf(err, "column %q row %d", v.name, len(v.data))
	}
	v.Append(value)
	return nil
}

func (v *Vector[T]) AppendCell(src Column, row int) {
	s := v.sameKind(src)
	if s.IsMissing(row) {
		v.AppendMissing()
		return
	}
	v.Append(s.data[row])
}

func (v *Vector[T]) CompareRows(i int, other Column, j int) int {
	o := v.sameKind(other)
	mi, mj := v.IsMissing(i), o.IsMissing(j)
	switch {
	case mi && mj:
		return 0
	case mi:
		return -1
	case mj:
		return 1
	}
	return v.kind.compare(v.data[i], o.data[j])
}

func (v *Vector[T]) IsNotIn(other Column) *selection.Selection {
	o := v.sameKind(other)
	present := make(map[T]struct{}, len(o.data))
	for j, value := range o.data {
		if !o.IsMissing(j) {
			present[value] = struct{}{}
		}
	}

	sel := selection.New()
	for i, value := range v.data {
		if v.IsMissing(i) {
			sel.Add(i)
			continue
		}
		if _, ok := present[value]; !ok {
			sel.Add(i)
		}
	}
	return sel
}

func (v *Vector[T]) Format(row int) string {
	if v.IsMissing(row) {
		return ""
	}
	return v.kind.format(v.data[row])
}

func (v *Vector[T]) EmptyCopy() Column {
	return newVector[T](v.name, v.kind, nil)
}

func (v *Vector[T]) Copy() Column {
	c := newVector(v.name, v.kind, v.data)
	c.missing = v.missing.Clone()
	return c
}

func (v *Vector[T]) Permute(order []int) Column {
	c := &Vector[T]{
		name:    v.name,
		kind:    v.kind,
		data:    make([]T, len(order)),
		missing: bitset.New(uint(len(order))),
	}
	for i, src := range order {
		c.data[i] = v.data[src]
		if v.IsMissing(src) {
			c.missing.Set(uint(i))
		}
	}
	return c
}

// sameKind asserts that other holds the same kind as v. Pairing columns of
// different kinds is rejected during join validation, so reaching the panic
// is a programming error.
func (v *Vector[T]) sameKind(other Column) *Vector[T] {
	o, ok := other.(*Vector[T])
	if !ok || o.kind.typ != v.kind.typ {
		panic(errors.AssertionFailedf("column %q (%s) used with column %q (%s)",
			v.name, v.kind.typ, other.Name(), other.Type()))
	}
	return o
}
