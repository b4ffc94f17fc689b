package ulogger

import (
	"fmt"
	"sync/atomic"
)

// TestingT is the part of testing.T the error logger needs.
type TestingT interface {
	Logf(format string, args ...any)
}

type helper interface {
	Helper()
}

// ErrorTestLogger drops debug, info and warn lines and writes errors and fatals to the
// test log, so a failing test shows what the code under test complained about.
type ErrorTestLogger struct {
	t        TestingT
	finished atomic.Bool
}

func NewErrorTestLogger(t TestingT) *ErrorTestLogger {
	return &ErrorTestLogger{t: t}
}

// Shutdown stops all output. Call it before the test returns when goroutines may still log.
func (l *ErrorTestLogger) Shutdown() {
	l.finished.Store(true)
}

func (l *ErrorTestLogger) LogLevel() int {
	return levelError
}

func (l *ErrorTestLogger) SetLogLevel(string) {}

func (l *ErrorTestLogger) New(string, ...Option) Logger {
	return l
}

func (l *ErrorTestLogger) Duplicate(...Option) Logger {
	return l
}

func (l *ErrorTestLogger) Debugf(string, ...interface{}) {}

func (l *ErrorTestLogger) Infof(string, ...interface{}) {}

func (l *ErrorTestLogger) Warnf(string, ...interface{}) {}

func (l *ErrorTestLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// Fatalf only logs, the test decides whether that is a failure.
func (l *ErrorTestLogger) Fatalf(format string, args ...interface{}) {
	l.log("FATAL", format, args...)
}

func (l *ErrorTestLogger) log(level, format string, args ...interface{}) {
	if l.finished.Load() {
		return
	}

	if h, ok := l.t.(helper); ok {
		h.Helper()
	}

	l.t.Logf("%s %s", level, fmt.Sprintf(format, args...))
}
