package logging

import "log/slog"

// WithTable creates a logger with table context.
//
// Example:
//
//	log := logging.WithTable("orders")
//	log.Info("loaded", "rows", n)
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

// WithComponent creates a logger with component/subsystem context.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithJoin creates a logger describing one pairwise join.
func WithJoin(joinType string, keyCount int) *slog.Logger {
	return GetLogger().With("component", "join", "join_type", joinType, "join_columns", keyCount)
}

// WithError creates a logger with error context.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
