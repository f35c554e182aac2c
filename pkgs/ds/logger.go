package ds

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger is the seam the engine's tasks log through. Passing one in at
// construction time (rather than calling the logrus package directly, the
// way the rest of this module's ancestry does) keeps the engine testable
// without a process-wide logger singleton.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// logrusLogger adapts a logrus.FieldLogger, tagging every line with a
// session id so overlapping Station instances (e.g. in tests) stay
// distinguishable in shared log output.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a Logger backed by logrus, stamped with a fresh
// session correlation id.
func NewLogrusLogger(base *logrus.Logger) Logger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &logrusLogger{entry: base.WithField("session", uuid.NewString())}
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// nopLogger discards everything; it is the default Logger until one is
// installed via WithLogger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
