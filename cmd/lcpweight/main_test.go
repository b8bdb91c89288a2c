package main

import (
	"testing"

	"github.com/user/lcpweight/pkg/config"
)

func ptr[T any](v T) *T { return &v }

func TestAnalyzeCmd_BuildConfig_Defaults(t *testing.T) {
	cmd := &AnalyzeCmd{URL: "https://example.com/"}
	cfg := cmd.buildConfig(config.Defaults())

	if cfg.URL != "https://example.com/" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Output != "lcp-report.json" {
		t.Errorf("Output = %q, want lcp-report.json", cfg.Output)
	}
	if cfg.Engine != config.EngineChrome || !cfg.Headless {
		t.Errorf("unexpected browser settings: engine=%q headless=%v", cfg.Engine, cfg.Headless)
	}
	if cfg.Chart != "" || cfg.Summary != "" || cfg.History != "" {
		t.Errorf("optional outputs should be disabled: %+v", cfg)
	}
}

func TestAnalyzeCmd_BuildConfig_PresetThenFlags(t *testing.T) {
	cmd := &AnalyzeCmd{
		URL:           "https://example.com/",
		Preset:        ptr("mobile"),
		CPUThrottling: ptr(2.0),
		LatencyMs:     ptr(40),
		Output:        ptr("out.yaml"),
		Chart:         ptr("chart.png"),
		Engine:        ptr("playwright"),
		NoHeadless:    true,
		Header:        map[string]string{"X-Test": "1"},
	}
	cfg := cmd.buildConfig(config.Defaults())

	if cfg.Preset != "mobile" || cfg.ViewportWidth != 412 {
		t.Errorf("expected mobile preset, got preset=%q width=%d", cfg.Preset, cfg.ViewportWidth)
	}
	if cfg.CPUThrottling != 2.0 {
		t.Errorf("flag should override preset CPU throttling, got %v", cfg.CPUThrottling)
	}
	if cfg.Network.LatencyMs != 40 || cfg.Network.DownloadSpeed != config.MbpsToBytes(1.6) {
		t.Errorf("unexpected network settings: %+v", cfg.Network)
	}
	if cfg.Output != "out.yaml" || cfg.Chart != "chart.png" {
		t.Errorf("unexpected outputs: output=%q chart=%q", cfg.Output, cfg.Chart)
	}
	if cfg.Engine != config.EnginePlaywright || cfg.Headless {
		t.Errorf("unexpected browser settings: engine=%q headless=%v", cfg.Engine, cfg.Headless)
	}
	if cfg.Headers["X-Test"] != "1" {
		t.Errorf("expected header to be set, got %v", cfg.Headers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should be valid: %v", err)
	}
}

func TestAnalyzeCmd_BuildConfig_ClampsViewport(t *testing.T) {
	cmd := &AnalyzeCmd{URL: "https://example.com/", ViewportWidth: ptr(100)}
	cfg := cmd.buildConfig(config.Defaults())
	if cfg.ViewportWidth != 320 {
		t.Errorf("ViewportWidth = %d, want 320", cfg.ViewportWidth)
	}
}
