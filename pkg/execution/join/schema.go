package join

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
)

const (
	tableAliasPrefix  = "T"
	firstTableAlias   = 2
	placeholderPrefix = "Placeholder_"
	leftRecordIDName  = "__left_record_id"
	rightRecordIDName = "__right_record_id"
)

// recordIDName returns base, or base with the first numeric suffix that makes
// it unused in every input.
func recordIDName(base string, inputs ...*table.Table) string {
	name := base
	for n := 1; ; n++ {
		taken := false
		for _, t := range inputs {
			if t.ContainsColumn(name) {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// aliasCounter hands out the table aliases used to prefix renamed right-hand
// columns. It belongs to a single Joiner.
type aliasCounter struct {
	next int
}

func (a *aliasCounter) take() string {
	alias := fmt.Sprintf("%s%d", tableAliasPrefix, a.next)
	a.next++
	return alias
}

// joinSchema is the destination layout of one pairwise join:
//
//	[left columns..., left record id, right columns..., right record id]
//
// Placeholders are destination positions holding a duplicate of a join key;
// they are dropped by finish unless all key columns are kept.
type joinSchema struct {
	dest          *table.Table
	leftWidth     int
	rightWidth    int
	placeholders  *bitset.BitSet
	keepAllKeys   bool
	leftRecordID  int
	rightRecordID int
	leftIDName    string
	rightIDName   string
}

// buildSchema creates the empty destination table for joining left and right
// on the given key positions. It fails on a name collision before any row is
// read.
func buildSchema(left, right *table.Table, kind JoinType, cmp *rowComparator, opts Options, aliases *aliasCounter) (*joinSchema, error) {
	s := &joinSchema{
		leftWidth:    left.ColumnCount() + 1,
		rightWidth:   right.ColumnCount() + 1,
		placeholders: bitset.New(0),
		keepAllKeys:  opts.KeepAllJoinKeyColumns,
		leftIDName:   recordIDName(leftRecordIDName, left, right),
		rightIDName:  recordIDName(rightRecordIDName, left, right),
	}
	s.leftRecordID = s.leftWidth - 1
	s.rightRecordID = s.leftWidth + s.rightWidth - 1

	cols := make([]table.Column, 0, s.leftWidth+s.rightWidth)
	for _, c := range left.Columns() {
		cols = append(cols, c.EmptyCopy())
	}
	cols = append(cols, table.NewLongColumn(s.leftIDName))
	for _, c := range right.Columns() {
		cols = append(cols, c.EmptyCopy())
	}
	cols = append(cols, table.NewLongColumn(s.rightIDName))

	// Placeholders are marked and renamed first so that the alias pass below
	// never sees a join column that is about to be dropped.
	if kind == RightOuter {
		for _, k := range cmp.leftIndexes() {
			s.placeholders.Set(uint(k))
		}
	} else {
		for _, k := range cmp.rightIndexes() {
			s.placeholders.Set(uint(s.leftWidth + k))
		}
	}
	if !s.keepAllKeys {
		n := 0
		for i, ok := s.placeholders.NextSet(0); ok; i, ok = s.placeholders.NextSet(i + 1) {
			cols[i].SetName(fmt.Sprintf("%s%d", placeholderPrefix, n))
			n++
		}
	}

	if err := s.resolveCollisions(cols, cmp, opts, aliases); err != nil {
		return nil, err
	}

	dest, err := table.New(left.Name(), cols...)
	if err != nil {
		return nil, dberror.Wrap(err, "JOIN_SCHEMA", kind.String(), "schema")
	}
	s.dest = dest
	return s, nil
}

// resolveCollisions renames or rejects right-hand columns whose lower-cased
// name already exists on the left. Right join-key columns that survive (they
// are only kept when all keys are retained or on a right outer join) are always
// renamed; other columns are renamed only when duplicates are allowed.
//
// A join that allows duplicates takes the next alias whether or not anything
// collides, so the alias numbers a join's position in the Joiner's sequence.
// Otherwise an alias is taken only for a surviving key that collides.
func (s *joinSchema) resolveCollisions(cols []table.Column, cmp *rowComparator, opts Options, aliases *aliasCounter) error {
	leftNames := make(map[string]struct{}, s.leftWidth)
	for _, c := range cols[:s.leftWidth] {
		leftNames[strings.ToLower(c.Name())] = struct{}{}
	}
	rightKeys := make(map[int]struct{}, len(cmp.pairs))
	for _, k := range cmp.rightIndexes() {
		rightKeys[s.leftWidth+k] = struct{}{}
	}

	alias := ""
	if opts.AllowDuplicateColumnNames {
		alias = aliases.take()
	}
	for c := s.leftWidth; c < s.rightRecordID; c++ {
		name := cols[c].Name()
		if _, dup := leftNames[strings.ToLower(name)]; !dup {
			continue
		}
		if _, isKey := rightKeys[c]; !isKey && !opts.AllowDuplicateColumnNames {
			return dberror.DuplicateColumnName(name)
		}
		if alias == "" {
			alias = aliases.take()
		}
		cols[c].SetName(alias + "." + name)
	}
	return nil
}

// ignored reports whether destination column c is a placeholder that is not
// going to be kept, so the merge does not need to fill it.
func (s *joinSchema) ignored(c int) bool {
	return !s.keepAllKeys && s.placeholders.Test(uint(c))
}

func (s *joinSchema) droppedPlaceholders() int {
	if s.keepAllKeys {
		return 0
	}
	return int(s.placeholders.Count())
}

// finish drops the record-id columns and, unless all keys are kept, the
// placeholder columns, and returns the destination table.
func (s *joinSchema) finish() *table.Table {
	drop := []int{s.leftRecordID, s.rightRecordID}
	if !s.keepAllKeys {
		for i, ok := s.placeholders.NextSet(0); ok; i, ok = s.placeholders.NextSet(i + 1) {
			drop = append(drop, int(i))
		}
	}
	s.dest.RemoveColumns(drop...)
	return s.dest
}
