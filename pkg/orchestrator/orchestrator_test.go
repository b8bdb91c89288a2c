package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/user/lcpweight/pkg/adapters/logger"
	"github.com/user/lcpweight/pkg/mocks"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/pipeline"
	"github.com/user/lcpweight/pkg/ports"
	"github.com/user/lcpweight/pkg/summarizer"
)

func sampleReport() *perf.WeightReport {
	return &perf.WeightReport{
		LCPTime:     2000,
		Weights:     perf.Weights{NetworkTime: 700, JSBlockingTime: 100, RenderDelay: 700, Idle: 500},
		Percentages: perf.Percentages{Network: 35, JSBlocking: 5, RenderDelay: 35, Idle: 25},
		LongTasks:   []perf.LongTaskGroup{},
		Timeline:    []perf.TimelineEvent{{Label: "LCP", Time: 2000}},
	}
}

// captureStage returns a fixed capture result and records its input.
func captureStage(result pipeline.CaptureResult, err error, got *pipeline.CaptureInput) pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult] {
	return pipeline.StageFunc[pipeline.CaptureInput, pipeline.CaptureResult](
		func(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
			if got != nil {
				*got = input
			}
			return result, err
		},
	)
}

// chartStage counts calls and returns a tiny PNG payload.
func chartStage(calls *int) pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult] {
	return pipeline.StageFunc[pipeline.ChartInput, pipeline.ChartResult](
		func(ctx context.Context, input pipeline.ChartInput) (pipeline.ChartResult, error) {
			*calls++
			return pipeline.ChartResult{
				Image: image.NewRGBA(image.Rect(0, 0, input.Width, input.Height)),
				PNG:   []byte{0x89, 'P', 'N', 'G'},
			}, nil
		},
	)
}

func okCapture() pipeline.CaptureResult {
	return pipeline.CaptureResult{
		Result:     perf.NewResult(sampleReport(), nil),
		PageInfo:   ports.PageInfo{Title: "Test Page", URL: "https://example.com/"},
		Loaded:     true,
		DurationMs: 2400,
	}
}

func TestOrchestrator_Run(t *testing.T) {
	var input pipeline.CaptureInput
	var chartCalls int
	fs := mocks.NewFileSystem()
	store := mocks.NewReportStore()

	orch := New(
		captureStage(okCapture(), nil, &input),
		chartStage(&chartCalls),
		summarizer.NewMarkdownFormatter(),
		fs,
		store,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"
	config.ChartPath = "chart.png"
	config.SummaryPath = "summary.md"
	config.CPUThrottling = 4

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if input.URL != config.URL || input.CPUThrottling != 4 || input.LongTaskLimit != 5 {
		t.Errorf("unexpected capture input: %+v", input)
	}
	if chartCalls != 1 {
		t.Errorf("expected chart stage to run once, got %d", chartCalls)
	}

	written := fs.Written()
	want := []string{"lcp-report.json", "chart.png", "summary.md"}
	if len(written) != len(want) {
		t.Fatalf("expected writes %v, got %v", want, written)
	}
	for i, path := range want {
		if written[i] != path {
			t.Errorf("write %d: expected %s, got %s", i, path, written[i])
		}
	}

	data, _ := fs.GetFile("lcp-report.json")
	var report perf.WeightReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if report.LCPTime != 2000 {
		t.Errorf("expected lcpTime 2000, got %v", report.LCPTime)
	}

	md, _ := fs.GetFile("summary.md")
	if !strings.Contains(string(md), "Test Page") {
		t.Errorf("expected summary to mention page title:\n%s", md)
	}

	if result.StoredID != 1 || result.ReportPath != "lcp-report.json" || result.TimedOut {
		t.Errorf("unexpected run result: %+v", result)
	}
	stored, err := store.List(context.Background(), config.URL, 0)
	if err != nil || len(stored) != 1 || stored[0].LCPTime != 2000 {
		t.Errorf("expected one stored report, got %+v (%v)", stored, err)
	}
}

func TestOrchestrator_Run_NoData(t *testing.T) {
	var chartCalls int
	fs := mocks.NewFileSystem()
	store := mocks.NewReportStore()

	capture := okCapture()
	capture.Result = perf.NewResult(nil, perf.ErrNoLCPEntry)
	capture.Loaded = false

	orch := New(
		captureStage(capture, nil, nil),
		chartStage(&chartCalls),
		summarizer.NewMarkdownFormatter(),
		fs,
		store,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"
	config.ChartPath = "chart.png"
	config.SummaryPath = "summary.md"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("no-data run should not fail: %v", err)
	}
	if !errors.Is(result.Result.Err, perf.ErrNoLCPEntry) {
		t.Errorf("expected ErrNoLCPEntry in result, got %v", result.Result.Err)
	}
	if !result.TimedOut {
		t.Error("expected run to be marked as timed out")
	}
	if chartCalls != 0 {
		t.Error("expected chart stage to be skipped")
	}
	if _, ok := fs.GetFile("lcp-report.json"); ok {
		t.Error("expected no report file for a no-data result")
	}
	if _, ok := fs.GetFile("summary.md"); !ok {
		t.Error("expected summary to be written")
	}
	if stored, _ := store.List(context.Background(), "", 0); len(stored) != 0 {
		t.Errorf("expected nothing stored, got %d", len(stored))
	}
}

func TestOrchestrator_Run_OptionalOutputsDisabled(t *testing.T) {
	var chartCalls int
	fs := mocks.NewFileSystem()

	orch := New(
		captureStage(okCapture(), nil, nil),
		chartStage(&chartCalls),
		nil,
		fs,
		nil,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"
	config.ReportPath = "out/report.yaml"
	config.SummaryPath = "summary.md"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chartCalls != 0 {
		t.Error("expected chart stage to be skipped without a chart path")
	}
	files := fs.GetAllFiles()
	if len(files) != 1 {
		t.Errorf("expected only the report, got %d files", len(files))
	}
	data := string(files["out/report.yaml"])
	if !strings.Contains(data, "lcpTime: 2000") {
		t.Errorf("expected YAML report, got:\n%s", data)
	}
	if result.StoredID != 0 || result.SummaryPath != "" {
		t.Errorf("unexpected run result: %+v", result)
	}
}

func TestOrchestrator_Run_CaptureError(t *testing.T) {
	var chartCalls int
	fs := mocks.NewFileSystem()
	boom := errors.New("browser crashed")

	orch := New(
		captureStage(pipeline.CaptureResult{}, boom, nil),
		chartStage(&chartCalls),
		summarizer.NewMarkdownFormatter(),
		fs,
		nil,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"

	_, err := orch.Run(context.Background(), config)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected nothing written after a failed capture")
	}
}

func TestOrchestrator_Run_StoreError(t *testing.T) {
	var chartCalls int
	store := mocks.NewReportStore()
	store.SaveFunc = func(ctx context.Context, report ports.StoredReport) (int64, error) {
		return 0, errors.New("disk full")
	}

	orch := New(
		captureStage(okCapture(), nil, nil),
		chartStage(&chartCalls),
		nil,
		mocks.NewFileSystem(),
		store,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"

	if _, err := orch.Run(context.Background(), config); err == nil || !strings.Contains(err.Error(), "save report") {
		t.Errorf("expected save report error, got %v", err)
	}
}

func TestOrchestrator_Run_ChartWriteError(t *testing.T) {
	var chartCalls int
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		if path == "chart.png" {
			return errors.New("read-only")
		}
		return nil
	}

	orch := New(
		captureStage(okCapture(), nil, nil),
		chartStage(&chartCalls),
		nil,
		fs,
		nil,
		mocks.NewDebugSink(false),
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"
	config.ChartPath = "chart.png"

	result, err := orch.Run(context.Background(), config)
	if err == nil || !strings.Contains(err.Error(), "write chart") {
		t.Fatalf("expected write chart error, got %v", err)
	}
	if result.ReportPath != "lcp-report.json" || result.ChartPath != "" {
		t.Errorf("unexpected run result: %+v", result)
	}
}

func TestOrchestrator_Run_WithDebugSink(t *testing.T) {
	var chartCalls int
	sink := mocks.NewDebugSink(true)

	orch := New(
		captureStage(okCapture(), nil, nil),
		chartStage(&chartCalls),
		nil,
		mocks.NewFileSystem(),
		nil,
		sink,
		logger.NewNoop(),
	)

	config := DefaultConfig()
	config.URL = "https://example.com/"

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(sink.ReportJSON), `"lcpTime": 2000`) {
		t.Errorf("expected report JSON in debug sink, got %s", sink.ReportJSON)
	}
}
