package config

import (
	"fmt"
	"strings"
)

// Preset names a set of capture conditions.
type Preset string

const (
	PresetDesktop Preset = "desktop"
	PresetMobile  Preset = "mobile"
)

// ParsePreset validates a preset name.
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(strings.ToLower(name)); p {
	case PresetDesktop, PresetMobile:
		return p, nil
	default:
		return "", fmt.Errorf("unknown preset %q (want desktop or mobile)", name)
	}
}

// Apply overwrites the viewport and throttling settings of cfg with the
// preset's values.
func (p Preset) Apply(cfg Config) Config {
	cfg.Preset = string(p)
	switch p {
	case PresetMobile:
		// Slow 4G on a mid-range phone.
		cfg.ViewportWidth = 412
		cfg.ViewportHeight = 823
		cfg.Network = NetworkConfig{
			LatencyMs:     150,
			DownloadSpeed: MbpsToBytes(1.6),
			UploadSpeed:   MbpsToBytes(0.75),
		}
		cfg.CPUThrottling = 4.0
	default:
		cfg.ViewportWidth = 1280
		cfg.ViewportHeight = 800
		cfg.Network = NetworkConfig{}
		cfg.CPUThrottling = 1.0
	}
	return cfg
}

// MbpsToBytes converts megabits per second to bytes per second.
// Uses 1024 as the base (1 Mbps = 1024 * 1024 / 8 bytes/sec).
func MbpsToBytes(mbps float64) int {
	return int(mbps * 1024 * 1024 / 8)
}
