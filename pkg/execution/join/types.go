package join

import (
	"strings"

	"github.com/cockroachdb/errors"

	"joinframe/pkg/table"
)

// JoinType selects which unmatched rows, if any, survive a join.
type JoinType int

const (
	Inner JoinType = iota
	LeftOuter
	RightOuter
	FullOuter
)

func (t JoinType) String() string {
	switch t {
	case Inner:
		return "INNER"
	case LeftOuter:
		return "LEFT_OUTER"
	case RightOuter:
		return "RIGHT_OUTER"
	case FullOuter:
		return "FULL_OUTER"
	default:
		return "UNKNOWN"
	}
}

// ParseJoinType accepts the canonical names as well as the short forms
// "inner", "left", "right", "full" and "outer", ignoring case.
func ParseJoinType(s string) (JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner", "":
		return Inner, nil
	case "left", "left_outer", "leftouter":
		return LeftOuter, nil
	case "right", "right_outer", "rightouter":
		return RightOuter, nil
	case "full", "full_outer", "fullouter", "outer":
		return FullOuter, nil
	default:
		return Inner, errors.Newf("unknown join type %q", s)
	}
}

// Options control naming in the joined table. The zero value rejects
// duplicate column names and keeps only the left join-key columns.
type Options struct {
	// AllowDuplicateColumnNames renames right-hand columns whose name already
	// exists on the left to "<alias>.<name>" instead of failing.
	AllowDuplicateColumnNames bool

	// KeepAllJoinKeyColumns retains the join-key columns of both sides under
	// their own names. A right-hand key whose name is already used on the left
	// still has to be unique, so it is prefixed with the join's alias
	// ("T2.id"), even when AllowDuplicateColumnNames is false.
	KeepAllJoinKeyColumns bool
}

// Step is one pairwise join in a chain. The running result is the left side;
// Table is the right side. An empty Columns joins on the same names as the
// Joiner's base columns.
type Step struct {
	Type    JoinType
	Table   *table.Table
	Columns []string
	Options Options
}
