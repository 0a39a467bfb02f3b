package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// CharmLogger prefixes every line with the component name.
type CharmLogger struct{ l *log.Logger }

// NewLogger writes human-readable lines to w. Debug enables the renderer's
// per-frame lines, which are logged at debug level.
func NewLogger(w io.Writer, debug bool) CharmLogger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return CharmLogger{l: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})}
}

// NewFileLogger is meant for the debug file stdio is redirected to.
func NewFileLogger(w io.Writer) CharmLogger {
	return CharmLogger{l: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
		Formatter:       log.LogfmtFormatter,
	})}
}

func (c CharmLogger) Infof(component string, format string, args ...interface{}) {
	c.l.WithPrefix(component).Infof(format, args...)
}

func (c CharmLogger) Errorf(component string, format string, args ...interface{}) {
	c.l.WithPrefix(component).Errorf(format, args...)
}

// Debugf is not part of Logger; callers find it with a type assertion.
func (c CharmLogger) Debugf(component string, format string, args ...interface{}) {
	c.l.WithPrefix(component).Debugf(format, args...)
}
