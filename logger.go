package folio

import (
	"log/slog"

	"github.com/tsawler/folio/internal/logging"
)

// SetLogger directs the library's diagnostics to l. The default logger
// discards everything; a nil logger is ignored. The logger is shared
// process-wide across conversions.
//
// Example:
//
//	folio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger the library currently writes to.
func Logger() *slog.Logger {
	return logging.Get()
}
