package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled lines stamped "15:04:05.00" to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a render took once its artifacts are written.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time under "took", rounded to
// the millisecond.
func (s stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

// withLogger attaches the request-scoped logger built by the serve middleware.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// ctxLogger returns the logger attached to ctx, or fallback.
func ctxLogger(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return fallback
}
