package ports

import (
	"image"
)

// DebugSink receives intermediate artefacts of an analysis run.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveEntriesJSON saves the raw entries observed for one kind.
	SaveEntriesJSON(kind EntryKind, data []byte) error

	// SaveReportJSON saves the assembled report (or its error payload).
	SaveReportJSON(data []byte) error

	// SaveChart saves the rendered breakdown chart.
	SaveChart(img image.Image) error
}
