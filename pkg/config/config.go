// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/lcpweight/pkg/export"
	"github.com/user/lcpweight/pkg/orchestrator"
	"github.com/user/lcpweight/pkg/pipeline"
	"github.com/user/lcpweight/pkg/ports"
)

// Config represents the full configuration for lcpweight.
type Config struct {
	Preset string `yaml:"preset"`

	// Input/Output
	URL     string `yaml:"url"`
	Output  string `yaml:"output"`
	Chart   string `yaml:"chart"`
	Summary string `yaml:"summary"`
	History string `yaml:"history"` // SQLite database path, empty disables history

	// Browser
	Engine            string            `yaml:"engine"` // chrome or playwright
	ChromePath        string            `yaml:"chrome_path"`
	Headless          bool              `yaml:"headless"`
	UserAgent         string            `yaml:"user_agent"`
	Headers           map[string]string `yaml:"headers"`
	IgnoreHTTPSErrors bool              `yaml:"ignore_https_errors"`
	ProxyServer       string            `yaml:"proxy_server"`

	// Capture
	ViewportWidth  int           `yaml:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height"`
	TimeoutMs      int           `yaml:"timeout_ms"`
	SettleMs       int           `yaml:"settle_ms"`
	PollIntervalMs int           `yaml:"poll_interval_ms"`
	Network        NetworkConfig `yaml:"network"`
	CPUThrottling  float64       `yaml:"cpu_throttling"`
	LongTaskLimit  int           `yaml:"long_task_limit"`

	ChartStyle ChartConfig  `yaml:"chart_style"`
	Server     ServerConfig `yaml:"server"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// NetworkConfig represents network throttling settings.
type NetworkConfig struct {
	LatencyMs     int  `yaml:"latency_ms"`
	DownloadSpeed int  `yaml:"download_speed"` // bytes/sec, 0 = unlimited
	UploadSpeed   int  `yaml:"upload_speed"`   // bytes/sec, 0 = unlimited
	Offline       bool `yaml:"offline"`
}

// ChartConfig represents chart size and colors.
type ChartConfig struct {
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	FontPath string      `yaml:"font_path"`
	FontSize float64     `yaml:"font_size"`
	Theme    ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds hex colors; empty values keep the default.
type ThemeConfig struct {
	BackgroundColor  string `yaml:"background_color"`
	TextColor        string `yaml:"text_color"`
	MutedColor       string `yaml:"muted_color"`
	NetworkColor     string `yaml:"network_color"`
	JSBlockingColor  string `yaml:"js_blocking_color"`
	RenderDelayColor string `yaml:"render_delay_color"`
	IdleColor        string `yaml:"idle_color"`
}

// ServerConfig configures the beacon collector.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	LongTaskLimit int    `yaml:"long_task_limit"`
	SessionTTLSec int    `yaml:"session_ttl_sec"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	capture := pipeline.DefaultCaptureInput()
	chart := pipeline.DefaultChartInput()

	cfg := Config{
		Preset: string(PresetDesktop),
		Output: export.DefaultFilename,

		Engine:   EngineChrome,
		Headless: true,

		ViewportWidth:  capture.ViewportWidth,
		ViewportHeight: capture.ViewportHeight,
		TimeoutMs:      capture.TimeoutMs,
		SettleMs:       capture.SettleMs,
		PollIntervalMs: capture.PollIntervalMs,
		CPUThrottling:  1.0,
		LongTaskLimit:  capture.LongTaskLimit,

		ChartStyle: ChartConfig{
			Width:    chart.Width,
			Height:   chart.Height,
			FontSize: chart.Theme.FontSize,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			LongTaskLimit: capture.LongTaskLimit,
			SessionTTLSec: 600,
		},

		DebugDir: "./debug",
	}
	return cfg
}

// Browser engines.
const (
	EngineChrome     = "chrome"
	EnginePlaywright = "playwright"
)

// LoadFromFile loads configuration from a YAML file over Defaults. When the
// file names a preset, the preset is applied first and explicit keys in the
// file win.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var probe struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if probe.Preset != "" {
		preset, err := ParsePreset(probe.Preset)
		if err != nil {
			return cfg, err
		}
		cfg = preset.Apply(cfg)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would make a run meaningless.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineChrome, EnginePlaywright:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	if c.CPUThrottling < 1 {
		return fmt.Errorf("cpu_throttling must be at least 1, got %g", c.CPUThrottling)
	}
	if c.LongTaskLimit < 1 {
		return fmt.Errorf("long_task_limit must be at least 1, got %d", c.LongTaskLimit)
	}
	return nil
}

// ParseColor parses a #rrggbb or #rgb hex color. It returns ok=false for
// anything else.
func ParseColor(hex string) (color.Color, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [6]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, ok := hexValue(hex[i])
			if !ok {
				return nil, false
			}
			v[2*i], v[2*i+1] = d, d
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, ok := hexValue(hex[i])
			if !ok {
				return nil, false
			}
			v[i] = d
		}
	default:
		return nil, false
	}

	return color.RGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 255}, true
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ChartTheme converts the configured colors over the default theme.
func (c ChartConfig) ChartTheme() pipeline.ChartTheme {
	theme := pipeline.DefaultChartTheme()
	set := func(dst *color.Color, hex string) {
		if col, ok := ParseColor(hex); ok {
			*dst = col
		}
	}
	set(&theme.Background, c.Theme.BackgroundColor)
	set(&theme.Text, c.Theme.TextColor)
	set(&theme.Muted, c.Theme.MutedColor)
	set(&theme.Network, c.Theme.NetworkColor)
	set(&theme.JSBlocking, c.Theme.JSBlockingColor)
	set(&theme.RenderDelay, c.Theme.RenderDelayColor)
	set(&theme.Idle, c.Theme.IdleColor)
	theme.FontPath = c.FontPath
	if c.FontSize > 0 {
		theme.FontSize = c.FontSize
	}
	return theme
}

// BrowserOptions returns the launch options for the configured browser.
func (c Config) BrowserOptions() ports.BrowserOptions {
	return ports.BrowserOptions{
		Headless:          c.Headless,
		ChromePath:        c.ChromePath,
		UserAgent:         c.UserAgent,
		Headers:           c.Headers,
		IgnoreHTTPSErrors: c.IgnoreHTTPSErrors,
		ProxyServer:       c.ProxyServer,
		Incognito:         true,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		URL:    c.URL,
		Preset: c.Preset,

		ReportPath:  c.Output,
		ChartPath:   c.Chart,
		SummaryPath: c.Summary,

		ViewportWidth:  c.ViewportWidth,
		ViewportHeight: c.ViewportHeight,
		TimeoutMs:      c.TimeoutMs,
		SettleMs:       c.SettleMs,
		PollIntervalMs: c.PollIntervalMs,
		NetworkConditions: ports.NetworkConditions{
			LatencyMs:     c.Network.LatencyMs,
			DownloadSpeed: c.Network.DownloadSpeed,
			UploadSpeed:   c.Network.UploadSpeed,
			Offline:       c.Network.Offline,
		},
		CPUThrottling: c.CPUThrottling,
		Headers:       c.Headers,
		LongTaskLimit: c.LongTaskLimit,

		IgnoreHTTPSErrors: c.IgnoreHTTPSErrors,
		ProxyServer:       c.ProxyServer,

		ChartWidth:  c.ChartStyle.Width,
		ChartHeight: c.ChartStyle.Height,
		ChartTheme:  c.ChartStyle.ChartTheme(),
	}
}
