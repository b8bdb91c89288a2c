package pipeline

import (
	"image"
	"image/color"

	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains parameters for analyzing one page load.
type CaptureInput struct {
	URL               string
	ViewportWidth     int
	ViewportHeight    int
	TimeoutMs         int // Upper bound for the whole capture (default: 30000)
	SettleMs          int // Time to keep observing after the load event (default: 1000)
	PollIntervalMs    int // Interval between telemetry drains (default: 100)
	NetworkConditions ports.NetworkConditions
	CPUThrottling     float64
	Headers           map[string]string
	IgnoreHTTPSErrors bool
	ProxyServer       string
	LongTaskLimit     int // Attribution groups in the report (default: 5)
}

// DefaultCaptureInput returns CaptureInput with default values.
func DefaultCaptureInput() CaptureInput {
	return CaptureInput{
		ViewportWidth:  1280,
		ViewportHeight: 800,
		TimeoutMs:      30000,
		SettleMs:       1000,
		PollIntervalMs: 100,
		LongTaskLimit:  5,
	}
}

// CaptureResult contains the outcome of a capture.
type CaptureResult struct {
	// Result holds the report, or perf.ErrNoLCPEntry when the page never
	// produced a paint candidate.
	Result   perf.Result
	PageInfo ports.PageInfo

	// Entries holds the raw entries per kind, for debug output.
	Entries map[ports.EntryKind][]ports.Entry

	// Loaded reports whether the load event fired before the timeout.
	Loaded     bool
	DurationMs int
}

// =============================================================================
// Chart Stage Types
// =============================================================================

// ChartInput contains parameters for rendering the breakdown chart.
type ChartInput struct {
	Report *perf.WeightReport
	Title  string
	Width  int // Canvas width (default: 640)
	Height int // Canvas height (default: 240)
	Theme  ChartTheme
}

// ChartTheme contains chart styling.
type ChartTheme struct {
	Background  color.Color
	Text        color.Color
	Muted       color.Color
	Network     color.Color
	JSBlocking  color.Color
	RenderDelay color.Color
	Idle        color.Color
	FontPath    string // Empty selects the built-in bitmap face
	FontSize    float64
}

// DefaultChartTheme returns the default chart colors.
func DefaultChartTheme() ChartTheme {
	return ChartTheme{
		Background:  color.White,
		Text:        color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		Muted:       color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff},
		Network:     color.RGBA{R: 0x66, G: 0xb3, B: 0xff, A: 0xff},
		JSBlocking:  color.RGBA{R: 0xff, G: 0x8c, B: 0x66, A: 0xff},
		RenderDelay: color.RGBA{R: 0x6e, G: 0xdc, B: 0x9e, A: 0xff},
		Idle:        color.RGBA{R: 0xcf, G: 0xcf, B: 0xcf, A: 0xff},
		FontSize:    13,
	}
}

// DefaultChartInput returns ChartInput with default values.
func DefaultChartInput() ChartInput {
	return ChartInput{
		Width:  640,
		Height: 240,
		Theme:  DefaultChartTheme(),
	}
}

// ChartResult contains the rendered chart.
type ChartResult struct {
	Image image.Image
	PNG   []byte
}
