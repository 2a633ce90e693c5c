package dberror

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// JoinColumnCountMismatch reports partner join columns whose count differs
// from the base table's.
func JoinColumnCountMismatch(left, right []string) error {
	return New(CategoryConfiguration, "JOIN_COLUMN_COUNT_MISMATCH",
		"cannot join using a different number of columns on each table").
		WithDetail("%v and %v", left, right).
		WithHint("pass one partner join column per base join column").
		Err()
}

// NoJoinColumns reports a join without any key column.
func NoJoinColumns(table string) error {
	return New(CategoryConfiguration, "NO_JOIN_COLUMNS",
		"at least one join column is required").
		WithDetail("table %q", table).
		Err()
}

// ColumnNotFound reports a column name that does not exist in a table. It is
// a configuration error that can also be matched with ErrColumnNotFound.
func ColumnNotFound(table, column string) error {
	err := New(CategoryConfiguration, "COLUMN_NOT_FOUND", "column not found").
		WithDetail("%q in table %q", column, table).
		Err()
	return errors.Mark(err, ErrColumnNotFound)
}

// JoinTypeMismatch reports paired join columns of different kinds.
func JoinTypeMismatch(leftColumn, leftType, rightColumn, rightType string) error {
	return New(CategoryTypeMismatch, "JOIN_TYPE_MISMATCH",
		"cannot join using different column types").
		WithDetail("%s (%s) and %s (%s)", leftColumn, leftType, rightColumn, rightType).
		Err()
}

// DuplicateColumnName reports an output column name present on both sides.
func DuplicateColumnName(column string) error {
	return New(CategoryNameCollision, "DUPLICATE_COLUMN_NAME",
		"column name appears in both tables").
		WithDetail("%q", column).
		WithHint("allow duplicate column names to prefix the right-hand column with its table alias").
		Err()
}

// UnsupportedType reports a column kind the named operation cannot handle.
func UnsupportedType(operation, typeName string) error {
	return New(CategoryUnsupported, "UNSUPPORTED_COLUMN_TYPE",
		fmt.Sprintf("unsupported column type %s", typeName)).
		In(operation, "").
		Err()
}
