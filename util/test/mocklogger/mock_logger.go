// Package mocklogger provides a ulogger.Logger that records every line for assertions.
package mocklogger

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dashbook/dashbook/ulogger"
)

type entry struct {
	method string
	line   string
}

type MockLogger struct {
	mu      sync.Mutex
	entries []entry
}

func NewTestLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) LogLevel() int {
	return 0
}

func (l *MockLogger) SetLogLevel(_ string) {}

// New shares the recorder, so lines from derived loggers are visible to the test.
func (l *MockLogger) New(_ string, _ ...ulogger.Option) ulogger.Logger {
	return l
}

func (l *MockLogger) Duplicate(_ ...ulogger.Option) ulogger.Logger {
	return l
}

func (l *MockLogger) Debugf(format string, args ...interface{}) {
	l.record("Debugf", format, args)
}

func (l *MockLogger) Infof(format string, args ...interface{}) {
	l.record("Infof", format, args)
}

func (l *MockLogger) Warnf(format string, args ...interface{}) {
	l.record("Warnf", format, args)
}

func (l *MockLogger) Errorf(format string, args ...interface{}) {
	l.record("Errorf", format, args)
}

func (l *MockLogger) Fatalf(format string, args ...interface{}) {
	l.record("Fatalf", format, args)
}

func (l *MockLogger) record(method, format string, args []interface{}) {
	line := fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.entries = append(l.entries, entry{method: method, line: line})
	l.mu.Unlock()
}

// Lines returns the formatted lines logged through method, in order.
func (l *MockLogger) Lines(method string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]string, 0)

	for _, e := range l.entries {
		if e.method == method {
			lines = append(lines, e.line)
		}
	}

	return lines
}

func (l *MockLogger) AssertNumberOfCalls(t *testing.T, method string, expected int) {
	t.Helper()

	if actual := len(l.Lines(method)); actual != expected {
		t.Errorf("expected %d calls to %s, got %d", expected, method, actual)
	}
}

// AssertLogged fails unless some line logged through method contains substr.
func (l *MockLogger) AssertLogged(t *testing.T, method, substr string) {
	t.Helper()

	for _, line := range l.Lines(method) {
		if strings.Contains(line, substr) {
			return
		}
	}

	t.Errorf("no %s line containing %q, got %v", method, substr, l.Lines(method))
}

func (l *MockLogger) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
