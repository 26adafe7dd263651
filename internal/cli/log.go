package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger every command shares. Conversion warnings
// (skipped diagram elements, degraded property values) are reported at
// warn level, so the level filter is the one knob users have for them.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// conversionWarnf adapts the context logger into the warning hook the
// converter accepts, so every skipped or degraded element surfaces as one
// CLI warning line.
func conversionWarnf(ctx context.Context) func(format string, args ...any) {
	logger := loggerFromContext(ctx)
	return func(format string, args ...any) {
		logger.Warnf(format, args...)
	}
}

// stage times one phase of a conversion (decode, encode, render) and
// reports the elapsed duration with its completion message. Single
// goroutine use only.
type stage struct {
	logger *log.Logger
	begun  time.Time
}

// startStage begins timing a conversion phase.
func startStage(l *log.Logger) *stage {
	return &stage{logger: l, begun: time.Now()}
}

// done reports the phase result, e.g. "Imported 12 nodes (34ms)".
func (s *stage) done(msg string) {
	s.logger.Infof("%s (%s)", msg, time.Since(s.begun).Round(time.Millisecond))
}

// ctxKey keeps this package's context keys from colliding with anyone
// else's.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches a logger to ctx for the duration of a command.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command's logger, or log.Default() when
// the context was built outside the CLI (tests, direct calls).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
