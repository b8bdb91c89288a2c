// Package export writes weight reports to structured text artifacts.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

// DefaultFilename is used when no filename is given.
const DefaultFilename = "lcp-report.json"

// Format is an artifact encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from the filename extension. Anything other
// than .yaml or .yml is JSON.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Exported describes a written artifact.
type Exported struct {
	Filename string             `json:"filename" yaml:"filename"`
	Report   *perf.WeightReport `json:"report" yaml:"report"`
}

// Exporter writes reports through a FileSystem.
type Exporter struct {
	fs ports.FileSystem
}

// New creates an Exporter.
func New(fs ports.FileSystem) *Exporter {
	return &Exporter{fs: fs}
}

// Export writes the report in result to filename. A result without a
// report is refused with its error and nothing is written.
func (e *Exporter) Export(filename string, result perf.Result) (*Exported, error) {
	if !result.OK() {
		return nil, result.Err
	}
	if filename == "" {
		filename = DefaultFilename
	}

	data, err := Encode(result.Report, FormatFor(filename))
	if err != nil {
		return nil, err
	}
	if err := e.fs.WriteFile(filename, data); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return &Exported{Filename: filename, Report: result.Report}, nil
}

// Encode serializes report with two-space indentation.
func Encode(report *perf.WeightReport, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}
}

// Decode parses an artifact written by Encode.
func Decode(data []byte, format Format) (*perf.WeightReport, error) {
	var report perf.WeightReport
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}
	return &report, nil
}

// Load reads and decodes an artifact, picking the format from its name.
func Load(fs ports.FileSystem, filename string) (*perf.WeightReport, error) {
	data, err := fs.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Decode(data, FormatFor(filename))
}
