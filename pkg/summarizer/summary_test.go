package summarizer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/lcpweight/pkg/mocks"
	"github.com/user/lcpweight/pkg/perf"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithPage("Test Title", "https://example.com").
		WithDuration(3200).
		WithTimeout(true, 30).
		WithSettings(Settings{Preset: "desktop"}).
		WithResult(perf.NewResult(workedReport(), nil)).
		Build()

	if summary.Page.Title != "Test Title" || summary.Page.URL != "https://example.com" {
		t.Errorf("unexpected page: %+v", summary.Page)
	}
	if summary.Capture != (CaptureInfo{DurationMs: 3200, TimedOut: true, TimeoutSec: 30}) {
		t.Errorf("unexpected capture info: %+v", summary.Capture)
	}
	if summary.Settings.Preset != "desktop" {
		t.Errorf("unexpected settings: %+v", summary.Settings)
	}
	if summary.Report == nil || summary.Report.LCPTime != 2000 {
		t.Errorf("unexpected report: %+v", summary.Report)
	}
}

func TestBuilder_WithNoDataResult(t *testing.T) {
	summary := NewBuilder().
		WithResult(perf.NewResult(nil, perf.ErrNoLCPEntry)).
		Build()

	if summary.Report != nil {
		t.Error("expected no report for a no-data result")
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "# " + s.Page.Title }), fs)

	path := filepath.Join("out", "summary.md")
	if err := w.Write(path, &Summary{Page: PageInfo{Title: "Hello"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile(path)
	if !ok || string(data) != "# Hello" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("disk full") }
	w := NewWriter(NewMarkdownFormatter(), fs)

	err := w.Write("summary.md", NewSummary())
	if err == nil || !strings.Contains(err.Error(), "write summary") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}
