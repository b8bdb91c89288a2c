// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/lcpweight/pkg/export"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/pipeline"
	"github.com/user/lcpweight/pkg/ports"
	"github.com/user/lcpweight/pkg/summarizer"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	URL    string
	Preset string

	// Outputs. An empty ChartPath or SummaryPath disables that output.
	ReportPath  string
	ChartPath   string
	SummaryPath string

	// Capture
	ViewportWidth     int
	ViewportHeight    int
	TimeoutMs         int
	SettleMs          int
	PollIntervalMs    int
	NetworkConditions ports.NetworkConditions
	CPUThrottling     float64
	Headers           map[string]string
	LongTaskLimit     int

	// Browser options
	IgnoreHTTPSErrors bool
	ProxyServer       string

	// Chart
	ChartWidth  int
	ChartHeight int
	ChartTheme  pipeline.ChartTheme
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	capture := pipeline.DefaultCaptureInput()
	chart := pipeline.DefaultChartInput()
	return Config{
		ReportPath: export.DefaultFilename,

		ViewportWidth:  capture.ViewportWidth,
		ViewportHeight: capture.ViewportHeight,
		TimeoutMs:      capture.TimeoutMs,
		SettleMs:       capture.SettleMs,
		PollIntervalMs: capture.PollIntervalMs,
		CPUThrottling:  1.0,
		LongTaskLimit:  capture.LongTaskLimit,

		ChartWidth:  chart.Width,
		ChartHeight: chart.Height,
		ChartTheme:  chart.Theme,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	chartStage   pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult]
	formatter    summarizer.Formatter
	fs           ports.FileSystem
	store        ports.ReportStore
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator. store may be nil to disable history.
func New(
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	chartStage pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult],
	formatter summarizer.Formatter,
	fs ports.FileSystem,
	store ports.ReportStore,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		captureStage: captureStage,
		chartStage:   chartStage,
		formatter:    formatter,
		fs:           fs,
		store:        store,
		sink:         sink,
		logger:       logger,
	}
}

// RunResult contains the outcome of a pipeline run.
type RunResult struct {
	// Result holds the report or perf.ErrNoLCPEntry.
	Result   perf.Result
	PageInfo ports.PageInfo

	DurationMs int
	TimedOut   bool
	TimeoutSec int

	// Paths of the files written; empty when skipped.
	ReportPath  string
	ChartPath   string
	SummaryPath string

	// StoredID is the history id, or 0 when not stored.
	StoredID int64
}

// Run executes the complete pipeline. A page without a paint candidate is
// not an error: the run completes with RunResult.Result carrying
// perf.ErrNoLCPEntry and only the summary is written.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Analyzing %s", config.URL)

	// 1. Capture
	capture, err := o.captureStage.Execute(ctx, o.buildCaptureInput(config))
	if err != nil {
		o.logger.Error("Failed to capture page: %v", err)
		return RunResult{}, fmt.Errorf("capture stage: %w", err)
	}

	result := RunResult{
		Result:     capture.Result,
		PageInfo:   capture.PageInfo,
		DurationMs: capture.DurationMs,
		TimedOut:   !capture.Loaded,
		TimeoutSec: config.TimeoutMs / 1000,
	}
	if result.Result.OK() {
		o.logger.Info("LCP at %s", perf.FormatMs(result.Result.Report.LCPTime))
	}

	// Save report debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(capture.Result, "", "  "); err == nil {
			o.sink.SaveReportJSON(data)
		}
	}

	// 2. Export
	exported, err := export.New(o.fs).Export(config.ReportPath, capture.Result)
	switch {
	case errors.Is(err, perf.ErrNoLCPEntry):
		o.logger.Warn("Skipping report export: %v", err)
	case err != nil:
		o.logger.Error("Failed to export report: %v", err)
		return result, fmt.Errorf("export report: %w", err)
	default:
		result.ReportPath = exported.Filename
		o.logger.Info("Report written to %s", exported.Filename)
	}

	// 3. Chart (optional)
	if config.ChartPath != "" && capture.Result.OK() {
		if err := o.writeChart(ctx, config, capture); err != nil {
			o.logger.Error("Failed to render chart: %v", err)
			return result, err
		}
		result.ChartPath = config.ChartPath
		o.logger.Info("Chart written to %s", config.ChartPath)
	}

	// 4. Summary (optional)
	if config.SummaryPath != "" && o.formatter != nil {
		summary := o.buildSummary(config, result)
		if err := summarizer.NewWriter(o.formatter, o.fs).Write(config.SummaryPath, summary); err != nil {
			o.logger.Error("Failed to write summary: %v", err)
			return result, err
		}
		result.SummaryPath = config.SummaryPath
		o.logger.Info("Summary written to %s", config.SummaryPath)
	}

	// 5. History (optional)
	if o.store != nil && capture.Result.OK() {
		id, err := o.saveHistory(ctx, config, capture.Result.Report)
		if err != nil {
			o.logger.Error("Failed to store report: %v", err)
			return result, err
		}
		result.StoredID = id
		o.logger.Debug("Report stored with id %d", id)
	}

	o.logger.Info("Analysis completed")
	return result, nil
}

func (o *Orchestrator) buildCaptureInput(config Config) pipeline.CaptureInput {
	return pipeline.CaptureInput{
		URL:               config.URL,
		ViewportWidth:     config.ViewportWidth,
		ViewportHeight:    config.ViewportHeight,
		TimeoutMs:         config.TimeoutMs,
		SettleMs:          config.SettleMs,
		PollIntervalMs:    config.PollIntervalMs,
		NetworkConditions: config.NetworkConditions,
		CPUThrottling:     config.CPUThrottling,
		Headers:           config.Headers,
		IgnoreHTTPSErrors: config.IgnoreHTTPSErrors,
		ProxyServer:       config.ProxyServer,
		LongTaskLimit:     config.LongTaskLimit,
	}
}

func (o *Orchestrator) writeChart(ctx context.Context, config Config, capture pipeline.CaptureResult) error {
	input := pipeline.DefaultChartInput()
	input.Report = capture.Result.Report
	input.Title = capture.PageInfo.Title
	if config.ChartWidth > 0 {
		input.Width = config.ChartWidth
	}
	if config.ChartHeight > 0 {
		input.Height = config.ChartHeight
	}
	if config.ChartTheme.Background != nil {
		input.Theme = config.ChartTheme
	}

	chart, err := o.chartStage.Execute(ctx, input)
	if err != nil {
		return fmt.Errorf("chart stage: %w", err)
	}
	if err := o.fs.WriteFile(config.ChartPath, chart.PNG); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func (o *Orchestrator) buildSummary(config Config, result RunResult) *summarizer.Summary {
	pageURL := result.PageInfo.URL
	if pageURL == "" {
		pageURL = config.URL
	}
	return summarizer.NewBuilder().
		WithPage(result.PageInfo.Title, pageURL).
		WithDuration(result.DurationMs).
		WithTimeout(result.TimedOut, result.TimeoutSec).
		WithSettings(summarizer.Settings{
			Preset:        config.Preset,
			ViewportWidth: config.ViewportWidth,
			LatencyMs:     config.NetworkConditions.LatencyMs,
			DownloadSpeed: config.NetworkConditions.DownloadSpeed,
			UploadSpeed:   config.NetworkConditions.UploadSpeed,
			CPUThrottling: config.CPUThrottling,
		}).
		WithResult(result.Result).
		Build()
}

func (o *Orchestrator) saveHistory(ctx context.Context, config Config, report *perf.WeightReport) (int64, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	id, err := o.store.Save(ctx, ports.StoredReport{
		URL:        config.URL,
		CapturedAt: time.Now().UTC(),
		LCPTime:    report.LCPTime,
		Payload:    payload,
	})
	if err != nil {
		return 0, fmt.Errorf("save report: %w", err)
	}
	return id, nil
}
