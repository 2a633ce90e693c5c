package join

import (
	"github.com/cockroachdb/errors"

	"joinframe/pkg/selection"
	"joinframe/pkg/table"
)

// mergeExecutor runs the sort-merge scan of one pairwise join.
//
// Both inputs are working copies sorted on their join keys, each with a
// record-id column appended as its last column. Matched pairs are written to
// the schema's destination table; the outer join types then add the rows of
// one or both sides whose record id never made it into the matched output.
type mergeExecutor struct {
	schema *joinSchema
	left   *table.Table
	right  *table.Table
	cmp    *rowComparator
	mat    *rowMaterializer
}

func (m *mergeExecutor) run(kind JoinType) error {
	m.mergeMatches()

	switch kind {
	case Inner:
		return nil
	case LeftOuter:
		m.appendUnmatchedLeft(m.unmatchedLeft())
		return nil
	case RightOuter:
		m.appendUnmatchedRight(m.schema.dest, m.unmatchedRight(), false)
		return nil
	case FullOuter:
		unmatchedLeft, unmatchedRight := m.unmatchedLeft(), m.unmatchedRight()
		m.appendUnmatchedLeft(unmatchedLeft)

		staged := m.schema.dest.EmptyCopy()
		m.appendUnmatchedRight(staged, unmatchedRight, true)
		return m.schema.dest.Append(staged)
	default:
		return errors.AssertionFailedf("unknown join type %d", kind)
	}
}

// mergeMatches is the sort-merge core. l and r are cursor positions into the
// sorted left and right tables; mark is the right position where the current
// run of equal keys starts, or -1 when no run is open. Every left row of a run
// replays the right side from mark, which yields the full cross product of
// duplicate keys without an index.
func (m *mergeExecutor) mergeMatches() {
	leftRow, rightRow := m.left.Row(), m.right.Row()
	nl, nr := m.left.RowCount(), m.right.RowCount()

	l, r, mark := 0, 0, -1
	for l < nl {
		leftRow.At(l)
		if mark < 0 {
			if r >= nr {
				break
			}
			rightRow.At(r)
			switch c := m.cmp.compare(leftRow, rightRow); {
			case c < 0:
				l++
				continue
			case c > 0:
				r++
				continue
			}
			if m.cmp.hasMissingKey(leftRow) {
				l++
				continue
			}
			mark = r
		}

		if r < nr {
			rightRow.At(r)
			if m.cmp.compare(leftRow, rightRow) == 0 {
				m.emit(leftRow, rightRow)
				r++
				continue
			}
		}

		// The run is exhausted for this left row: rewind and move on.
		r, mark = mark, -1
		l++
	}
}

func (m *mergeExecutor) emit(left, right *table.Row) {
	dest := m.schema.dest
	d := dest.RowAt(dest.AppendRow())
	m.copyLeft(d, left)
	m.copyRight(d, right)
}

func (m *mergeExecutor) copyLeft(d, src *table.Row) {
	for c := 0; c < m.schema.leftWidth; c++ {
		if !m.schema.ignored(c) {
			m.mat.copyCell(d, c, src, c)
		}
	}
}

func (m *mergeExecutor) copyRight(d, src *table.Row) {
	for c := 0; c < m.schema.rightWidth; c++ {
		dc := m.schema.leftWidth + c
		if !m.schema.ignored(dc) {
			m.mat.copyCell(d, dc, src, c)
		}
	}
}

// unmatchedLeft selects the left working rows whose record id is absent from
// the matched output.
func (m *mergeExecutor) unmatchedLeft() *selection.Selection {
	ids := m.left.Column(m.schema.leftRecordID)
	return ids.IsNotIn(m.schema.dest.Column(m.schema.leftRecordID))
}

func (m *mergeExecutor) unmatchedRight() *selection.Selection {
	ids := m.right.Column(m.schema.rightWidth - 1)
	return ids.IsNotIn(m.schema.dest.Column(m.schema.rightRecordID))
}

// appendUnmatchedLeft adds one destination row per selected left row with
// every right-hand cell missing.
func (m *mergeExecutor) appendUnmatchedLeft(rows *selection.Selection) {
	dest := m.schema.dest
	src := m.left.Row()
	rows.ForEach(func(pos int) {
		src.At(pos)
		m.copyLeft(dest.RowAt(dest.AppendRow()), src)
	})
}

// appendUnmatchedRight adds one row to target per selected right row with
// every left-hand cell missing. For a full outer join the right key values are
// also written into the left key columns, so the surviving key column is
// populated whichever side the row came from.
func (m *mergeExecutor) appendUnmatchedRight(target *table.Table, rows *selection.Selection, fillLeftKeys bool) {
	src := m.right.Row()
	rows.ForEach(func(pos int) {
		src.At(pos)
		d := target.RowAt(target.AppendRow())
		m.copyRight(d, src)
		if fillLeftKeys {
			for _, p := range m.cmp.pairs {
				m.mat.copyCell(d, p.left, src, p.right)
			}
		}
	})
}
