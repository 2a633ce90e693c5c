package join

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
)

func TestRowComparator(t *testing.T) {
	left := table.MustNew("L",
		table.NewStringColumn("a", "x", "x", "y"),
		table.NewIntColumn("b", 1, 2, 1),
	)
	right := table.MustNew("R",
		table.NewIntColumn("b", 2),
		table.NewStringColumn("a", "x"),
	)

	cmp, err := newRowComparator(left, []int{0, 1}, right, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, cmp.leftIndexes())
	assert.Equal(t, []int{1, 0}, cmp.rightIndexes())

	r := right.RowAt(0)
	assert.Equal(t, -1, cmp.compare(left.RowAt(0), r))
	assert.Equal(t, 0, cmp.compare(left.RowAt(1), r))
	assert.Equal(t, 1, cmp.compare(left.RowAt(2), r))

	left.Column(1).SetMissing(0)
	assert.True(t, cmp.hasMissingKey(left.RowAt(0)))
	assert.False(t, cmp.hasMissingKey(left.RowAt(1)))
	assert.Equal(t, -1, cmp.compare(left.RowAt(0), r))

	_, err = newRowComparator(left, []int{0}, right, []int{0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrTypeMismatch))

	_, err = newRowComparator(left, []int{0, 1}, right, []int{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrConfiguration))
}
