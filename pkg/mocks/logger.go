package mocks

import (
	"fmt"
	"sync"

	"github.com/user/lcpweight/pkg/ports"
)

// LogRecord is one message captured by Logger.
type LogRecord struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// Logger is a ports.Logger that records formatted, untranslated messages.
type Logger struct {
	mu        *sync.Mutex
	records   *[]LogRecord
	component string
}

// NewLogger creates a new recording Logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, records: &[]LogRecord{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args) }

// WithComponent returns a Logger sharing the same record buffer.
func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: m.mu, records: m.records, component: component}
}

// Records returns every captured message.
func (m *Logger) Records() []LogRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogRecord, len(*m.records))
	copy(out, *m.records)
	return out
}

// Messages returns the captured messages at level.
func (m *Logger) Messages(level ports.LogLevel) []string {
	var out []string
	for _, r := range m.Records() {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

func (m *Logger) record(level ports.LogLevel, msg string, args []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.records = append(*m.records, LogRecord{
		Level:     level,
		Component: m.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

var _ ports.Logger = (*Logger)(nil)
