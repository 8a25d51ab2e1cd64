package calculation

import (
	"fmt"
	"log"
)

// Logger is the logging interface used by the engine and its callers.
// The default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StdLogger writes level-prefixed lines ("[INFO] ...") to a standard library
// logger. Debug lines are dropped unless Verbose is set.
type StdLogger struct {
	Out     *log.Logger
	Verbose bool
}

// NewStdLogger wraps out. A nil out uses the standard logger.
func NewStdLogger(out *log.Logger, verbose bool) *StdLogger {
	if out == nil {
		out = log.Default()
	}
	return &StdLogger{Out: out, Verbose: verbose}
}

func (l *StdLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.print("DEBUG", format, args...)
	}
}

func (l *StdLogger) Infof(format string, args ...any)  { l.print("INFO", format, args...) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.print("WARN", format, args...) }
func (l *StdLogger) Errorf(format string, args ...any) { l.print("ERROR", format, args...) }

func (l *StdLogger) print(level, format string, args ...any) {
	l.Out.Output(3, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...)))
}
