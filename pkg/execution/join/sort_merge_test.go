package join

import (
	"fmt"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinframe/pkg/table"
)

// missingKey marks a generated key that is stored as a missing cell.
const missingKey = -1

// keyed builds a table whose "k" column holds keys and whose rowColumn
// records each row's original position.
func keyed(name, rowColumn string, keys []int32) *table.Table {
	rows := make([]int64, len(keys))
	for i := range rows {
		rows[i] = int64(i)
	}
	t := table.MustNew(name,
		table.NewIntColumn("k", keys...),
		table.NewLongColumn(rowColumn, rows...),
	)
	for i, k := range keys {
		if k == missingKey {
			t.Column(0).SetMissing(i)
		}
	}
	return t
}

// nestedLoop is the reference join: it compares every left key with every
// right key and reports the matched pairs plus the unmatched rows of each side
// as "l/r" strings, "-" standing for the absent side.
func nestedLoop(kind JoinType, left, right []int32) []string {
	var out []string
	leftMatched := make([]bool, len(left))
	rightMatched := make([]bool, len(right))
	for i, lk := range left {
		for j, rk := range right {
			if lk != missingKey && lk == rk {
				out = append(out, fmt.Sprintf("%d/%d", i, j))
				leftMatched[i], rightMatched[j] = true, true
			}
		}
	}
	if kind == LeftOuter || kind == FullOuter {
		for i, ok := range leftMatched {
			if !ok {
				out = append(out, fmt.Sprintf("%d/-", i))
			}
		}
	}
	if kind == RightOuter || kind == FullOuter {
		for j, ok := range rightMatched {
			if !ok {
				out = append(out, fmt.Sprintf("-/%d", j))
			}
		}
	}
	sort.Strings(out)
	return out
}

func pairsOf(result *table.Table) []string {
	li, _ := result.ColumnIndex("lrow")
	ri, _ := result.ColumnIndex("rrow")
	out := make([]string, 0, result.RowCount())
	row := result.Row()
	for row.HasNext() {
		row.Next()
		l, r := "-", "-"
		if !row.IsMissing(li) {
			l = row.Format(li)
		}
		if !row.IsMissing(ri) {
			r = row.Format(ri)
		}
		out = append(out, l+"/"+r)
	}
	sort.Strings(out)
	return out
}

func TestSortMerge_MatchesNestedLoop(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	keys := gen.SliceOf(gen.Int32Range(missingKey, 5))

	for _, kind := range []JoinType{Inner, LeftOuter, RightOuter, FullOuter} {
		properties.Property(kind.String()+" equals nested loop", prop.ForAll(
			func(left, right []int32) bool {
				j, err := NewJoiner(keyed("L", "lrow", left), "k")
				if err != nil {
					return false
				}
				result, err := j.Join(kind, keyed("R", "rrow", right), Options{})
				if err != nil {
					return false
				}
				got, want := pairsOf(result), nestedLoop(kind, left, right)
				if len(got) != len(want) {
					return false
				}
				for i := range got {
					if got[i] != want[i] {
						return false
					}
				}
				return true
			},
			keys, keys,
		))
	}

	properties.Property("full outer key column is never missing for non-missing input keys", prop.ForAll(
		func(left, right []int32) bool {
			j, err := NewJoiner(keyed("L", "lrow", left), "k")
			if err != nil {
				return false
			}
			result, err := j.FullOuter(keyed("R", "rrow", right), Options{})
			if err != nil {
				return false
			}
			want := 0
			for _, k := range append(append([]int32(nil), left...), right...) {
				if k == missingKey {
					want++
				}
			}
			missing := 0
			for r := 0; r < result.RowCount(); r++ {
				if result.Column(0).IsMissing(r) {
					missing++
				}
			}
			return missing == want
		},
		keys, keys,
	))

	properties.TestingRun(t)
}

func TestMergeExecutor_DuplicateRunsReplay(t *testing.T) {
	left := keyed("L", "lrow", []int32{1, 1, 1, 2})
	right := keyed("R", "rrow", []int32{1, 1, 2, 2})

	j, err := NewJoiner(left, "k")
	require.NoError(t, err)
	result, err := j.Inner(right, Options{})
	require.NoError(t, err)

	// 3x2 for key 1, 1x2 for key 2, in sorted left order with right replayed.
	assert.Equal(t, []string{"k", "lrow", "rrow"}, result.ColumnNames())
	assert.Equal(t, [][]string{
		{"1", "0", "0"}, {"1", "0", "1"},
		{"1", "1", "0"}, {"1", "1", "1"},
		{"1", "2", "0"}, {"1", "2", "1"},
		{"2", "3", "2"}, {"2", "3", "3"},
	}, rowsOf(result))
}

func TestMergeExecutor_InterleavedKeys(t *testing.T) {
	left := keyed("L", "lrow", []int32{5, 1, 3, 7})
	right := keyed("R", "rrow", []int32{2, 3, 6, 7, 7})

	j, err := NewJoiner(left, "k")
	require.NoError(t, err)
	result, err := j.FullOuter(right, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"3", "2", "1"},
		{"7", "3", "3"},
		{"7", "3", "4"},
		{"1", "1", "NULL"},
		{"5", "0", "NULL"},
		{"2", "NULL", "0"},
		{"6", "NULL", "2"},
	}, rowsOf(result))
}
