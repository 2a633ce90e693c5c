package join

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
)

func schemaFor(t *testing.T, kind JoinType, opts Options, aliases *aliasCounter) (*joinSchema, error) {
	t.Helper()
	left := table.MustNew("L",
		table.NewIntColumn("id", 1),
		table.NewStringColumn("name", "a"),
	)
	right := table.MustNew("R",
		table.NewIntColumn("id", 1),
		table.NewStringColumn("name", "b"),
		table.NewDoubleColumn("price", 2),
	)
	cmp, err := newRowComparator(left, []int{0}, right, []int{0})
	require.NoError(t, err)
	return buildSchema(left, right, kind, cmp, opts, aliases)
}

func TestBuildSchema_Layout(t *testing.T) {
	aliases := &aliasCounter{next: firstTableAlias}
	s, err := schemaFor(t, Inner, Options{AllowDuplicateColumnNames: true}, aliases)
	require.NoError(t, err)

	assert.Equal(t, 3, s.leftWidth)
	assert.Equal(t, 4, s.rightWidth)
	assert.Equal(t, 2, s.leftRecordID)
	assert.Equal(t, 6, s.rightRecordID)
	assert.Equal(t, []string{
		"id", "name", leftRecordIDName,
		"Placeholder_0", "T2.name", "price", rightRecordIDName,
	}, s.dest.ColumnNames())

	assert.True(t, s.ignored(3))
	assert.False(t, s.ignored(0))
	assert.Equal(t, 1, s.droppedPlaceholders())
	assert.Equal(t, 3, aliases.next)

	assert.Equal(t, []string{"id", "name", "T2.name", "price"}, s.finish().ColumnNames())
}

func TestBuildSchema_RightOuterPlaceholders(t *testing.T) {
	s, err := schemaFor(t, RightOuter, Options{AllowDuplicateColumnNames: true}, &aliasCounter{next: firstTableAlias})
	require.NoError(t, err)

	assert.True(t, s.ignored(0))
	assert.False(t, s.ignored(3))
	assert.Equal(t, []string{"name", "id", "T2.name", "price"}, s.finish().ColumnNames())
}

func TestBuildSchema_KeepAllKeys(t *testing.T) {
	aliases := &aliasCounter{next: 5}
	s, err := schemaFor(t, FullOuter,
		Options{AllowDuplicateColumnNames: true, KeepAllJoinKeyColumns: true}, aliases)
	require.NoError(t, err)

	assert.False(t, s.ignored(3))
	assert.Zero(t, s.droppedPlaceholders())
	// One alias covers every renamed column of the join.
	assert.Equal(t, []string{"id", "name", "T5.id", "T5.name", "price"}, s.finish().ColumnNames())
	assert.Equal(t, 6, aliases.next)
}

func TestBuildSchema_Collision(t *testing.T) {
	aliases := &aliasCounter{next: firstTableAlias}
	_, err := schemaFor(t, Inner, Options{}, aliases)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrNameCollision))
	assert.Contains(t, err.Error(), `"name"`)
}

func TestBuildSchema_NoAliasWithoutCollision(t *testing.T) {
	left := table.MustNew("L", table.NewIntColumn("id"), table.NewStringColumn("a"))
	right := table.MustNew("R", table.NewIntColumn("id"), table.NewStringColumn("b"))
	cmp, err := newRowComparator(left, []int{0}, right, []int{0})
	require.NoError(t, err)

	aliases := &aliasCounter{next: firstTableAlias}
	s, err := buildSchema(left, right, LeftOuter, cmp, Options{}, aliases)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "a", "b"}, s.finish().ColumnNames())
	assert.Equal(t, firstTableAlias, aliases.next)
}

func TestBuildSchema_AliasTakenWithoutCollision(t *testing.T) {
	left := table.MustNew("L", table.NewIntColumn("id"), table.NewStringColumn("a"))
	right := table.MustNew("R", table.NewIntColumn("id"), table.NewStringColumn("b"))
	cmp, err := newRowComparator(left, []int{0}, right, []int{0})
	require.NoError(t, err)

	aliases := &aliasCounter{next: firstTableAlias}
	s, err := buildSchema(left, right, Inner, cmp, Options{AllowDuplicateColumnNames: true}, aliases)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "a", "b"}, s.finish().ColumnNames())
	assert.Equal(t, firstTableAlias+1, aliases.next)
}

func TestRecordIDName(t *testing.T) {
	plain := table.MustNew("p", table.NewIntColumn("id"))
	assert.Equal(t, leftRecordIDName, recordIDName(leftRecordIDName, plain))

	clash := table.MustNew("c",
		table.NewIntColumn(strings.ToUpper(leftRecordIDName)),
		table.NewIntColumn(leftRecordIDName+"_1"),
	)
	assert.Equal(t, leftRecordIDName+"_2", recordIDName(leftRecordIDName, plain, clash))
}
