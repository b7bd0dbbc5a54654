package testhelpers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/fitplan/internal/logging"
)

// NewLogger creates a debug level logger writing text records to logSink, usually a [Writer].
// Context attributes are included like in the server.
func NewLogger(logSink io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))
}

// NewTestLogger is NewLogger writing to the log of t.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewLogger(NewWriter(t))
}
