package join

import (
	"joinframe/pkg/dberror"
	"joinframe/pkg/logging"
	"joinframe/pkg/table"
	"joinframe/pkg/utils/functools"
)

// Joiner joins a base table with one or more other tables on a fixed list of
// join-column names using a sort-merge join.
//
// The base table and the other inputs are never modified; every join returns
// a new table. A Joiner numbers the aliases it uses for renamed columns (T2,
// T3, ...) across all of its joins, so it is not safe for concurrent use.
// Every join run with AllowDuplicateColumnNames takes the next alias, even
// when none of its columns needed renaming.
type Joiner struct {
	table       *table.Table
	joinColumns []string
	joinIndexes []int
	aliases     aliasCounter
}

// NewJoiner prepares joins of t on the named columns. Names are matched
// case-insensitively. At least one column is required.
func NewJoiner(t *table.Table, columns ...string) (*Joiner, error) {
	if len(columns) == 0 {
		return nil, dberror.NoJoinColumns(t.Name())
	}
	idx, err := resolveIndexes(t, columns)
	if err != nil {
		return nil, err
	}
	return &Joiner{
		table:       t,
		joinColumns: append([]string(nil), columns...),
		joinIndexes: idx,
		aliases:     aliasCounter{next: firstTableAlias},
	}, nil
}

// JoinColumns returns the names the base table is joined on.
func (j *Joiner) JoinColumns() []string {
	return append([]string(nil), j.joinColumns...)
}

// Inner returns the rows of the base table and other whose join keys are
// equal. With no otherColumns, other is joined on the base column names.
func (j *Joiner) Inner(other *table.Table, opts Options, otherColumns ...string) (*table.Table, error) {
	return j.Join(Inner, other, opts, otherColumns...)
}

// LeftOuter is Inner plus every base row without a match, its right-hand
// cells missing.
func (j *Joiner) LeftOuter(other *table.Table, opts Options, otherColumns ...string) (*table.Table, error) {
	return j.Join(LeftOuter, other, opts, otherColumns...)
}

// RightOuter is Inner plus every row of other without a match, its left-hand
// cells missing. The join-key columns of other are the ones retained.
func (j *Joiner) RightOuter(other *table.Table, opts Options, otherColumns ...string) (*table.Table, error) {
	return j.Join(RightOuter, other, opts, otherColumns...)
}

// FullOuter is Inner plus the unmatched rows of both sides.
func (j *Joiner) FullOuter(other *table.Table, opts Options, otherColumns ...string) (*table.Table, error) {
	return j.Join(FullOuter, other, opts, otherColumns...)
}

// InnerAll joins the base table with each of tables in turn, every table
// joined on the base join-column names.
func (j *Joiner) InnerAll(opts Options, tables ...*table.Table) (*table.Table, error) {
	return j.joinAll(Inner, opts, tables)
}

func (j *Joiner) LeftOuterAll(opts Options, tables ...*table.Table) (*table.Table, error) {
	return j.joinAll(LeftOuter, opts, tables)
}

func (j *Joiner) RightOuterAll(opts Options, tables ...*table.Table) (*table.Table, error) {
	return j.joinAll(RightOuter, opts, tables)
}

func (j *Joiner) FullOuterAll(opts Options, tables ...*table.Table) (*table.Table, error) {
	return j.joinAll(FullOuter, opts, tables)
}

// Join performs one join of the given kind.
func (j *Joiner) Join(kind JoinType, other *table.Table, opts Options, otherColumns ...string) (*table.Table, error) {
	if len(otherColumns) == 0 {
		otherColumns = j.joinColumns
	}
	return j.joinPair(kind, j.table, j.joinIndexes, other, otherColumns, opts)
}

func (j *Joiner) joinAll(kind JoinType, opts Options, tables []*table.Table) (*table.Table, error) {
	steps := make([]Step, len(tables))
	for i, t := range tables {
		steps[i] = Step{Type: kind, Table: t, Options: opts}
	}
	return j.Chain(steps...)
}

// Chain runs the steps left to right, each joining the running result with the
// step's table. The base join-column names are looked up again on every
// intermediate result, so they must survive each step. With no steps Chain
// returns a copy of the base table.
func (j *Joiner) Chain(steps ...Step) (*table.Table, error) {
	if len(steps) == 0 {
		return j.table.Copy(), nil
	}

	result, leftIdx := j.table, j.joinIndexes
	for i, step := range steps {
		if i > 0 {
			idx, err := resolveIndexes(result, j.joinColumns)
			if err != nil {
				return nil, err
			}
			leftIdx = idx
		}
		cols := step.Columns
		if len(cols) == 0 {
			cols = j.joinColumns
		}
		next, err := j.joinPair(step.Type, result, leftIdx, step.Table, cols, step.Options)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

func (j *Joiner) joinPair(kind JoinType, left *table.Table, leftIdx []int, right *table.Table, rightColumns []string, opts Options) (*table.Table, error) {
	log := logging.WithJoin(kind.String(), len(leftIdx))

	if len(rightColumns) != len(leftIdx) {
		err := dberror.JoinColumnCountMismatch(columnNames(left, leftIdx), rightColumns)
		log.Debug("join rejected", "error", err)
		return nil, err
	}
	rightIdx, err := resolveIndexes(right, rightColumns)
	if err != nil {
		log.Debug("join rejected", "error", err)
		return nil, err
	}
	cmp, err := newRowComparator(left, leftIdx, right, rightIdx)
	if err != nil {
		log.Debug("join rejected", "error", err)
		return nil, err
	}
	schema, err := buildSchema(left, right, kind, cmp, opts, &j.aliases)
	if err != nil {
		log.Debug("join rejected", "error", err)
		return nil, err
	}
	mat, err := newRowMaterializer(schema.dest)
	if err != nil {
		return nil, err
	}

	log.Debug("join started",
		"left", left.Name(), "left_rows", left.RowCount(),
		"right", right.Name(), "right_rows", right.RowCount())

	if left.RowCount() == 0 && (kind == Inner || kind == LeftOuter) {
		return schema.finish(), nil
	}

	leftWorking, err := withRecordIDs(left.SortOn(leftIdx...), schema.leftIDName)
	if err != nil {
		return nil, err
	}
	rightWorking, err := withRecordIDs(right.SortOn(rightIdx...), schema.rightIDName)
	if err != nil {
		return nil, err
	}

	exec := &mergeExecutor{schema: schema, left: leftWorking, right: rightWorking, cmp: cmp, mat: mat}
	if err := exec.run(kind); err != nil {
		return nil, dberror.Wrap(err, "JOIN_EXECUTION", kind.String(), "merge")
	}

	result := schema.finish()
	log.Debug("join finished",
		"rows", result.RowCount(), "columns", result.ColumnCount(),
		"placeholders_dropped", schema.droppedPlaceholders())
	return result, nil
}

func resolveIndexes(t *table.Table, names []string) ([]int, error) {
	return functools.MapWithError(names, t.ColumnIndex)
}

// withRecordIDs appends a column numbering the rows of the sorted working copy
// t. The ids let the outer joins find rows that never matched.
func withRecordIDs(t *table.Table, name string) (*table.Table, error) {
	ids := make([]int64, t.RowCount())
	for i := range ids {
		ids[i] = int64(i)
	}
	if err := t.AddColumns(table.NewLongColumn(name, ids...)); err != nil {
		return nil, dberror.Wrap(err, "JOIN_RECORD_ID", "add record ids", "join")
	}
	return t, nil
}
