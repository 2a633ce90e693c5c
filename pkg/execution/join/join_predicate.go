package join

import (
	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
	"joinframe/pkg/types"
	"joinframe/pkg/utils/functools"
)

// columnIndexPair pairs a left join column with its right partner.
type columnIndexPair struct {
	typ   types.Type
	left  int
	right int
}

// rowComparator orders a row of the left table against a row of the right
// table by the join keys, the first pair being the primary key and later pairs
// breaking ties. Each pair uses the natural ordering of its column kind, the
// same ordering Table.SortOn uses, so sorted inputs and the merge scan agree.
type rowComparator struct {
	pairs []columnIndexPair
}

// newRowComparator validates the pairing of leftIdx and rightIdx and builds
// the comparator. Paired columns must be of identical kinds.
func newRowComparator(left *table.Table, leftIdx []int, right *table.Table, rightIdx []int) (*rowComparator, error) {
	if len(leftIdx) != len(rightIdx) {
		return nil, dberror.JoinColumnCountMismatch(columnNames(left, leftIdx), columnNames(right, rightIdx))
	}

	pairs := make([]columnIndexPair, len(leftIdx))
	for i := range leftIdx {
		lc, rc := left.Column(leftIdx[i]), right.Column(rightIdx[i])
		if lc.Type() != rc.Type() {
			return nil, dberror.JoinTypeMismatch(lc.Name(), lc.Type().String(), rc.Name(), rc.Type().String())
		}
		pairs[i] = columnIndexPair{typ: lc.Type(), left: leftIdx[i], right: rightIdx[i]}
	}
	return &rowComparator{pairs: pairs}, nil
}

func (c *rowComparator) compare(left, right *table.Row) int {
	lt, rt := left.Table(), right.Table()
	for _, p := range c.pairs {
		if v := lt.Column(p.left).CompareRows(left.Position(), rt.Column(p.right), right.Position()); v != 0 {
			return v
		}
	}
	return 0
}

// hasMissingKey reports whether any left join-key cell of row is missing.
// Such rows never match.
func (c *rowComparator) hasMissingKey(left *table.Row) bool {
	for _, p := range c.pairs {
		if left.IsMissing(p.left) {
			return true
		}
	}
	return false
}

func (c *rowComparator) leftIndexes() []int {
	return functools.Map(c.pairs, func(p columnIndexPair) int { return p.left })
}

func (c *rowComparator) rightIndexes() []int {
	return functools.Map(c.pairs, func(p columnIndexPair) int { return p.right })
}

func columnNames(t *table.Table, idx []int) []string {
	return functools.Map(idx, func(c int) string { return t.Column(c).Name() })
}
