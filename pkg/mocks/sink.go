package mocks

import (
	"image"
	"sync"

	"github.com/user/lcpweight/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Entries    map[ports.EntryKind][]byte
	ReportJSON []byte
	Chart      image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Entries: make(map[ports.EntryKind][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveEntriesJSON(kind ports.EntryKind, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[kind] = data
	return nil
}

func (m *DebugSink) SaveReportJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportJSON = data
	return nil
}

func (m *DebugSink) SaveChart(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Chart = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
