package summarizer

import (
	"time"

	"github.com/user/lcpweight/pkg/perf"
)

// Summary contains everything reported about one analysis run.
type Summary struct {
	GeneratedAt time.Time

	Page     PageInfo
	Capture  CaptureInfo
	Settings Settings

	// Report is nil when the page produced no paint candidate.
	Report *perf.WeightReport
}

// PageInfo contains information about the analyzed page.
type PageInfo struct {
	Title string
	URL   string
}

// CaptureInfo describes how the capture ended.
type CaptureInfo struct {
	DurationMs int
	TimedOut   bool
	TimeoutSec int
}

// Settings contains the capture configuration.
type Settings struct {
	Preset        string
	ViewportWidth int

	// Network throttling (bytes/sec, 0 = unlimited)
	LatencyMs     int
	DownloadSpeed int
	UploadSpeed   int

	// CPU throttling (1.0 = no throttling)
	CPUThrottling float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithPage sets page information.
func (b *Builder) WithPage(title, url string) *Builder {
	b.summary.Page = PageInfo{Title: title, URL: url}
	return b
}

// WithDuration sets how long the capture ran.
func (b *Builder) WithDuration(durationMs int) *Builder {
	b.summary.Capture.DurationMs = durationMs
	return b
}

// WithTimeout records whether the capture hit its timeout.
func (b *Builder) WithTimeout(timedOut bool, timeoutSec int) *Builder {
	b.summary.Capture.TimedOut = timedOut
	b.summary.Capture.TimeoutSec = timeoutSec
	return b
}

// WithSettings sets capture settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResult sets the report from an analysis result. A no-data result
// leaves Report nil.
func (b *Builder) WithResult(result perf.Result) *Builder {
	if result.OK() {
		b.summary.Report = result.Report
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
