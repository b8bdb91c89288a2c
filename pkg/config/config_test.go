package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcpweight.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Output != "lcp-report.json" {
		t.Errorf("expected default output lcp-report.json, got %q", cfg.Output)
	}
	if cfg.ViewportWidth != 1280 || cfg.TimeoutMs != 30000 || cfg.LongTaskLimit != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
url: https://example.com/
chart: chart.png
timeout_ms: 15000
network:
  latency_ms: 40
headers:
  X-Test: "1"
chart_style:
  theme:
    network_color: "#112233"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.URL != "https://example.com/" || cfg.Chart != "chart.png" {
		t.Errorf("unexpected io settings: %+v", cfg)
	}
	if cfg.TimeoutMs != 15000 || cfg.Network.LatencyMs != 40 {
		t.Errorf("unexpected capture settings: %+v", cfg)
	}
	if cfg.Headers["X-Test"] != "1" {
		t.Errorf("expected header, got %v", cfg.Headers)
	}
	// Untouched keys keep their defaults.
	if cfg.SettleMs != 1000 || cfg.Engine != EngineChrome {
		t.Errorf("expected defaults for unset keys, got settle=%d engine=%q", cfg.SettleMs, cfg.Engine)
	}

	theme := cfg.ChartStyle.ChartTheme()
	if theme.Network != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}) {
		t.Errorf("expected configured network color, got %v", theme.Network)
	}
}

func TestLoadFromFile_PresetThenOverrides(t *testing.T) {
	path := writeConfig(t, `
preset: mobile
cpu_throttling: 6
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.ViewportWidth != 412 || cfg.Network.LatencyMs != 150 {
		t.Errorf("expected mobile preset values, got %+v", cfg)
	}
	if cfg.CPUThrottling != 6 {
		t.Errorf("expected explicit cpu_throttling to win, got %v", cfg.CPUThrottling)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "url: [unclosed"},
		{"unknown preset", "preset: tablet"},
		{"unknown engine", "engine: firefox"},
		{"negative timeout", "timeout_ms: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
		ok   bool
	}{
		{"#ff8c66", color.RGBA{R: 0xff, G: 0x8c, B: 0x66, A: 255}, true},
		{"66B3FF", color.RGBA{R: 0x66, G: 0xb3, B: 0xff, A: 255}, true},
		{"#abc", color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 255}, true},
		{"#12345", nil, false},
		{"#zzzzzz", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := PresetMobile.Apply(Defaults())
	cfg.URL = "https://example.com/"
	cfg.Summary = "summary.md"

	oc := cfg.ToOrchestratorConfig()
	if oc.URL != cfg.URL || oc.SummaryPath != "summary.md" || oc.ReportPath != "lcp-report.json" {
		t.Errorf("unexpected paths: %+v", oc)
	}
	if oc.Preset != "mobile" || oc.CPUThrottling != 4 {
		t.Errorf("unexpected preset settings: %+v", oc)
	}
	if oc.NetworkConditions.DownloadSpeed != MbpsToBytes(1.6) {
		t.Errorf("unexpected download speed %d", oc.NetworkConditions.DownloadSpeed)
	}
	if oc.ChartTheme.Background == nil {
		t.Error("expected chart theme to be populated")
	}
}
