package join

import (
	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
	"joinframe/pkg/types"
)

// cellCopier copies one non-missing cell in the native representation of its
// kind. Temporal kinds move as packed integers and are never re-parsed.
type cellCopier func(dst *table.Row, dstCol int, src *table.Row, srcCol int)

var cellCopiers = map[types.Type]cellCopier{
	types.ShortType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetShort(dc, s.GetShort(sc))
	},
	types.IntType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetInt(dc, s.GetInt(sc))
	},
	types.LongType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetLong(dc, s.GetLong(sc))
	},
	types.FloatType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetFloat(dc, s.GetFloat(sc))
	},
	types.DoubleType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetDouble(dc, s.GetDouble(sc))
	},
	types.BooleanType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetBoolean(dc, s.GetBoolean(sc))
	},
	types.StringType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetString(dc, s.GetString(sc))
	},
	types.TextType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetText(dc, s.GetText(sc))
	},
	types.LocalDateType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetPackedDate(dc, s.GetPackedDate(sc))
	},
	types.LocalTimeType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetPackedTime(dc, s.GetPackedTime(sc))
	},
	types.LocalDateTimeType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetPackedDateTime(dc, s.GetPackedDateTime(sc))
	},
	types.InstantType: func(d *table.Row, dc int, s *table.Row, sc int) {
		d.SetPackedInstant(dc, s.GetPackedInstant(sc))
	},
}

func copierFor(t types.Type) (cellCopier, error) {
	c, ok := cellCopiers[t]
	if !ok {
		return nil, dberror.UnsupportedType("materialize", t.String())
	}
	return c, nil
}

// rowMaterializer holds one copier per destination column, chosen once from
// the column's declared kind.
type rowMaterializer struct {
	copiers []cellCopier
}

func newRowMaterializer(dest *table.Table) (*rowMaterializer, error) {
	m := &rowMaterializer{copiers: make([]cellCopier, dest.ColumnCount())}
	for c := range m.copiers {
		copier, err := copierFor(dest.Column(c).Type())
		if err != nil {
			return nil, err
		}
		m.copiers[c] = copier
	}
	return m, nil
}

// copyCell copies src[srcCol] into dst[dstCol], preserving missing cells.
func (m *rowMaterializer) copyCell(dst *table.Row, dstCol int, src *table.Row, srcCol int) {
	if src.IsMissing(srcCol) {
		dst.SetMissing(dstCol)
		return
	}
	m.copiers[dstCol](dst, dstCol, src, srcCol)
}
