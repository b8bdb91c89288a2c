// Package chart implements the breakdown chart stage. It draws the LCP
// phases as a stacked bar, the page-load timeline and a legend.
package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/pipeline"
	"github.com/user/lcpweight/pkg/ports"
)

// ErrNoReport is returned when the input carries no report.
var ErrNoReport = errors.New("no report to chart")

const (
	padding    = 20
	barTop     = 44
	barHeight  = 36
	axisTop    = 108
	labelRow   = 14
	legendTop  = 170
	legendRow  = 26
	swatchSize = 12
)

// Stage renders a report as an image.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new chart stage.
func New(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("chart"),
	}
}

// Segment is one phase of the stacked bar.
type Segment struct {
	Label   string
	Value   float64
	Percent float64
	Color   color.Color
}

// Segments returns the bar segments in drawing order.
func Segments(report *perf.WeightReport, theme pipeline.ChartTheme) []Segment {
	w, p := report.Weights, report.Percentages
	return []Segment{
		{"Network", w.NetworkTime, p.Network, theme.Network},
		{"JS blocking", w.JSBlockingTime, p.JSBlocking, theme.JSBlocking},
		{"Render delay", w.RenderDelay, p.RenderDelay, theme.RenderDelay},
		{"Idle", w.Idle, p.Idle, theme.Idle},
	}
}

// Widths splits width among segments in proportion to their values. The
// phases are approximations and may explain more than the LCP time, so
// the scale is the larger of the LCP time and their sum.
func Widths(segments []Segment, lcpTime float64, width int) []int {
	var sum float64
	for _, s := range segments {
		sum += s.Value
	}
	scale := math.Max(lcpTime, sum)

	widths := make([]int, len(segments))
	if scale <= 0 {
		return widths
	}
	used := 0
	for i, s := range segments {
		widths[i] = int(math.Round(s.Value / scale * float64(width)))
		used += widths[i]
	}
	if used > width {
		widths[len(widths)-1] -= used - width
		if widths[len(widths)-1] < 0 {
			widths[len(widths)-1] = 0
		}
	}
	return widths
}

// Execute draws the chart.
func (s *Stage) Execute(ctx context.Context, input pipeline.ChartInput) (pipeline.ChartResult, error) {
	result := pipeline.ChartResult{}
	if input.Report == nil {
		return result, ErrNoReport
	}

	defaults := pipeline.DefaultChartInput()
	if input.Width <= 0 {
		input.Width = defaults.Width
	}
	if input.Height <= 0 {
		input.Height = defaults.Height
	}
	if input.Theme.Background == nil {
		input.Theme = defaults.Theme
	}

	s.logger.Debug("Rendering chart: %dx%d", input.Width, input.Height)

	report := input.Report
	theme := input.Theme
	canvas := s.renderer.CreateCanvas(input.Width, input.Height, theme.Background)

	text := ports.TextStyle{FontSize: theme.FontSize, FontPath: theme.FontPath, Color: theme.Text}
	muted := text
	muted.Color = theme.Muted

	title := input.Title
	if title == "" {
		title = "Largest Contentful Paint"
	}
	canvas.DrawText(title, padding, 24, text)
	right := text
	right.Align = ports.AlignRight
	canvas.DrawText("LCP "+perf.FormatMs(report.LCPTime), input.Width-padding, 24, right)

	// Stacked bar
	barWidth := input.Width - 2*padding
	segments := Segments(report, theme)
	canvas.DrawRect(padding, barTop, barWidth, barHeight, theme.Idle)
	x := padding
	for i, w := range Widths(segments, report.LCPTime, barWidth) {
		if w <= 0 {
			continue
		}
		canvas.DrawRect(x, barTop, w, barHeight, segments[i].Color)
		x += w
	}

	// Timeline axis
	s.drawTimeline(canvas, report, input.Width, muted)

	// Legend
	colWidth := barWidth / 2
	for i, seg := range segments {
		lx := padding + (i%2)*colWidth
		ly := legendTop + (i/2)*legendRow
		canvas.DrawRoundedRect(lx, ly-swatchSize/2, swatchSize, swatchSize, 2, seg.Color)
		label := fmt.Sprintf("%s  %s (%s)", seg.Label, perf.FormatMs(seg.Value), perf.FormatPercent(seg.Percent))
		canvas.DrawText(label, lx+swatchSize+8, ly, text)
	}

	result.Image = canvas.ToImage()

	data, err := s.renderer.EncodeImage(result.Image, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("encode chart: %w", err)
	}
	result.PNG = data

	if s.sink.Enabled() {
		if err := s.sink.SaveChart(result.Image); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}

	return result, nil
}

func (s *Stage) drawTimeline(canvas ports.Canvas, report *perf.WeightReport, width int, style ports.TextStyle) {
	left, right := padding, width-padding
	canvas.DrawLine(left, axisTop, right, axisTop, style.Color, 1)

	span := report.LCPTime
	for _, ev := range report.Timeline {
		span = math.Max(span, ev.Time)
	}
	if span <= 0 {
		span = 1
	}

	for i, ev := range report.Timeline {
		x := left + int(math.Round(ev.Time/span*float64(right-left)))
		canvas.DrawLine(x, axisTop-5, x, axisTop+5, style.Color, 1)

		label := style
		switch {
		case x-left < 60:
			label.Align = ports.AlignLeft
		case right-x < 60:
			label.Align = ports.AlignRight
		default:
			label.Align = ports.AlignCenter
		}
		// Alternate rows so neighbouring labels do not collide.
		y := axisTop + labelRow + (i%2)*labelRow
		canvas.DrawText(fmt.Sprintf("%s %s", ev.Label, perf.FormatMs(ev.Time)), x, y, label)
	}
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult] = (*Stage)(nil)
