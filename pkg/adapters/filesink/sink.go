// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/lcpweight/pkg/ports"
)

// Sink saves debug output to files under a base directory:
//
//	entries/<kind>.json  raw entries observed per kind
//	report.json          the assembled report or its error payload
//	chart.png            the rendered breakdown chart
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveEntriesJSON saves the raw entries observed for one kind.
func (s *Sink) SaveEntriesJSON(kind ports.EntryKind, data []byte) error {
	dir := filepath.Join(s.baseDir, "entries")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, string(kind)+".json"), data)
}

// SaveReportJSON saves the assembled report.
func (s *Sink) SaveReportJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "report.json"), data)
}

// SaveChart saves the rendered breakdown chart as PNG.
func (s *Sink) SaveChart(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "chart.png"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
