package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Structured, levelled logging for the runner and its
 *		collaborators.
 *
 * Description:	charmbracelet/log gives every collaborator leveled,
 *		structured fields instead of raw console writes.
 *
 *------------------------------------------------------------------*/

import (
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the narrow logging surface the pipeline depends on, so tests
// can substitute a no-op or recording implementation without dragging in
// charmbracelet/log.
type Logger interface {
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}

// NewLogger builds a charmbracelet/log logger writing to w at the given
// level name ("debug", "info", "warn", "error"); unrecognised level names
// fall back to "info".
func NewLogger(w io.Writer, level string) Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
	})

	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}

// NopLogger discards every message; used by tests and by callers that
// don't want logging.
type NopLogger struct{}

func (NopLogger) Info(interface{}, ...interface{})  {}
func (NopLogger) Warn(interface{}, ...interface{})  {}
func (NopLogger) Error(interface{}, ...interface{}) {}
func (NopLogger) Debug(interface{}, ...interface{}) {}
