package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/lcpweight/pkg/perf"
)

func strptr(s string) *string { return &s }

func workedReport() *perf.WeightReport {
	return &perf.WeightReport{
		LCPTime: 2000,
		Candidate: &perf.CandidateInfo{
			URL:     strptr("https://example.com/hero.jpg"),
			TagName: strptr("IMG"),
			ID:      strptr("hero"),
			Size:    120000,
		},
		Resource: &perf.ResourceInfo{
			Name:          "https://example.com/hero.jpg",
			InitiatorType: "img",
			TransferSize:  48 * 1024,
			FetchStart:    500,
			ResponseEnd:   1200,
		},
		Weights:     perf.Weights{NetworkTime: 700, JSBlockingTime: 100, RenderDelay: 700, Idle: 500},
		Percentages: perf.Percentages{Network: 35, JSBlocking: 5, RenderDelay: 35, Idle: 25},
		LongTasks:   []perf.LongTaskGroup{{Name: "https://cdn.example.com/app.js", Duration: 100}},
		Timeline: []perf.TimelineEvent{
			{Label: "Navigation Start", Time: 0},
			{Label: "LCP", Time: 2000},
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Page:        PageInfo{Title: "Test Page", URL: "https://example.com"},
		Settings: Settings{
			Preset:        "mobile",
			ViewportWidth: 375,
			LatencyMs:     150,
			DownloadSpeed: 1310720,
			UploadSpeed:   655360,
			CPUThrottling: 4.0,
		},
		Report: workedReport(),
	}

	result := formatter.Format(summary)

	checks := []string{
		"# LCP Weight Summary",
		"Test Page",
		"| LCP | 2,000 ms |",
		"| Network | 700 ms | 35.0% |",
		"| JS blocking | 100 ms | 5.0% |",
		"| Render delay | 700 ms | 35.0% |",
		"| Idle | 500 ms | 25.0% |",
		"| Tag | IMG |",
		"| Transfer Size | 48 KB |",
		"500 ms → 1,200 ms",
		"| https://cdn.example.com/app.js | 100 ms |",
		"| Preset | mobile |",
		"| CPU Throttling | 4.0x |",
		"2024-01-15 10:30:00 UTC",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_NoData(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(&Summary{
		GeneratedAt: time.Now(),
		Page:        PageInfo{Title: "Blank", URL: "https://example.com/blank"},
	})

	if !strings.Contains(result, "No LCP entry recorded yet.") {
		t.Error("expected the no-data message")
	}
	if strings.Contains(result, "## Breakdown") {
		t.Error("expected no breakdown without a report")
	}
	if strings.Contains(result, "## Settings") {
		t.Error("expected empty settings to be omitted")
	}
}

func TestMarkdownFormatter_Format_NoLongTasks(t *testing.T) {
	report := workedReport()
	report.LongTasks = nil

	result := NewMarkdownFormatter().Format(&Summary{Report: report})

	if !strings.Contains(result, "_None recorded._") {
		t.Error("expected placeholder for empty long task list")
	}
}

func TestMarkdownFormatter_Format_EscapesPipes(t *testing.T) {
	report := workedReport()
	report.Candidate.Text = strptr("a | b")

	result := NewMarkdownFormatter().Format(&Summary{Report: report})

	if !strings.Contains(result, `a \| b`) {
		t.Error("expected pipe in cell to be escaped")
	}
}

func TestMarkdownFormatter_WithTimeout(t *testing.T) {
	result := NewMarkdownFormatter().Format(&Summary{
		Page:    PageInfo{Title: "Slow", URL: "https://example.com"},
		Capture: CaptureInfo{TimedOut: true, TimeoutSec: 30},
		Report:  workedReport(),
	})

	if !strings.Contains(result, "Timeout (30s)") {
		t.Error("expected timeout row")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"LCP Weight Summary":         "LCP 内訳サマリー",
			"Page Title":                 "ページタイトル",
			"No LCP entry recorded yet.": "LCP エントリがまだ記録されていません。",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))
	result := formatter.Format(&Summary{Page: PageInfo{Title: "Test", URL: "https://example.com"}})

	for _, want := range []string{"LCP 内訳サマリー", "ページタイトル", "LCP エントリがまだ記録されていません。"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(&Summary{Page: PageInfo{Title: "Test", URL: "https://example.com"}})

	if !strings.Contains(result, "Generated by lcpweight v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}
