// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/lcpweight/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool { return false }

func (s *Sink) SaveEntriesJSON(kind ports.EntryKind, data []byte) error { return nil }
func (s *Sink) SaveReportJSON(data []byte) error                        { return nil }
func (s *Sink) SaveChart(img image.Image) error                         { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
