// Package logging provides the process-wide structured logger for joinframe.
//
// The package wraps [log/slog] and exposes a single global logger that is
// configured once and retrieved with GetLogger. Library packages never build
// their own slog.Logger; the CLI decides level, format and destination.
//
// # Initialisation
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, Format: "json"}); err != nil {
//	    return err
//	}
//
// If GetLogger is called before Init, a default INFO logger writing text to
// stderr is created lazily, so library code is safe to log at any time.
//
// # Context helpers
//
//	log := logging.WithComponent("join")  // adds component field
//	log := logging.WithTable(name)        // adds table field
//	log := logging.WithJoin("left", 2)    // adds join_type and join_columns
package logging
