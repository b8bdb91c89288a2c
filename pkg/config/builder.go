package config

// Minimum viewport width accepted by the builder.
const minViewportWidth = 320

// Builder applies command-line overrides on top of a base Config.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder starting from base.
func NewBuilder(base Config) *Builder {
	return &Builder{config: base}
}

// Build returns the final Config, applying constraints.
func (b *Builder) Build() Config {
	cfg := b.config

	if cfg.ViewportWidth < minViewportWidth {
		cfg.ViewportWidth = minViewportWidth
	}
	if cfg.CPUThrottling < 1 {
		cfg.CPUThrottling = 1
	}
	if cfg.LongTaskLimit < 1 {
		cfg.LongTaskLimit = 1
	}

	return cfg
}

// WithPreset applies a preset. Overrides set afterwards win.
func (b *Builder) WithPreset(p Preset) *Builder {
	b.config = p.Apply(b.config)
	return b
}

// WithURL sets the page to analyze.
func (b *Builder) WithURL(url string) *Builder {
	b.config.URL = url
	return b
}

// WithOutput sets the report path.
func (b *Builder) WithOutput(path string) *Builder {
	b.config.Output = path
	return b
}

// WithChart sets the chart path.
func (b *Builder) WithChart(path string) *Builder {
	b.config.Chart = path
	return b
}

// WithSummary sets the Markdown summary path.
func (b *Builder) WithSummary(path string) *Builder {
	b.config.Summary = path
	return b
}

// WithHistory sets the history database path.
func (b *Builder) WithHistory(path string) *Builder {
	b.config.History = path
	return b
}

// WithEngine selects the browser engine.
func (b *Builder) WithEngine(engine string) *Builder {
	b.config.Engine = engine
	return b
}

// WithChromePath sets the browser executable.
func (b *Builder) WithChromePath(path string) *Builder {
	b.config.ChromePath = path
	return b
}

// WithHeadless toggles headless mode.
func (b *Builder) WithHeadless(headless bool) *Builder {
	b.config.Headless = headless
	return b
}

// WithViewport sets the browser viewport. Zero values are ignored.
func (b *Builder) WithViewport(width, height int) *Builder {
	if width > 0 {
		b.config.ViewportWidth = width
	}
	if height > 0 {
		b.config.ViewportHeight = height
	}
	return b
}

// WithTimeoutSec sets the capture timeout in seconds.
func (b *Builder) WithTimeoutSec(sec int) *Builder {
	b.config.TimeoutMs = sec * 1000
	return b
}

// WithSettleMs sets how long to keep observing after the load event.
func (b *Builder) WithSettleMs(ms int) *Builder {
	b.config.SettleMs = ms
	return b
}

// WithLatencyMs sets the added network latency.
func (b *Builder) WithLatencyMs(ms int) *Builder {
	b.config.Network.LatencyMs = ms
	return b
}

// WithDownloadSpeed sets the download speed limit in bytes/sec.
// Use 0 for unlimited.
func (b *Builder) WithDownloadSpeed(bytesPerSec int) *Builder {
	b.config.Network.DownloadSpeed = bytesPerSec
	return b
}

// WithUploadSpeed sets the upload speed limit in bytes/sec.
// Use 0 for unlimited.
func (b *Builder) WithUploadSpeed(bytesPerSec int) *Builder {
	b.config.Network.UploadSpeed = bytesPerSec
	return b
}

// WithCPUThrottling sets the CPU slowdown factor.
// 1.0 = no throttling, 4.0 = 4x slower.
func (b *Builder) WithCPUThrottling(factor float64) *Builder {
	b.config.CPUThrottling = factor
	return b
}

// WithLongTaskLimit sets the number of attribution groups in the report.
func (b *Builder) WithLongTaskLimit(n int) *Builder {
	b.config.LongTaskLimit = n
	return b
}

// WithHeaders merges extra request headers.
func (b *Builder) WithHeaders(headers map[string]string) *Builder {
	if len(headers) == 0 {
		return b
	}
	merged := make(map[string]string, len(b.config.Headers)+len(headers))
	for k, v := range b.config.Headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	b.config.Headers = merged
	return b
}

// WithUserAgent overrides the browser user agent.
func (b *Builder) WithUserAgent(ua string) *Builder {
	b.config.UserAgent = ua
	return b
}

// WithIgnoreHTTPSErrors enables ignoring HTTPS certificate errors.
func (b *Builder) WithIgnoreHTTPSErrors(ignore bool) *Builder {
	b.config.IgnoreHTTPSErrors = ignore
	return b
}

// WithProxyServer sets the HTTP proxy server.
func (b *Builder) WithProxyServer(proxy string) *Builder {
	b.config.ProxyServer = proxy
	return b
}

// WithDebug enables debug artefacts in dir.
func (b *Builder) WithDebug(enabled bool, dir string) *Builder {
	b.config.Debug = enabled
	if dir != "" {
		b.config.DebugDir = dir
	}
	return b
}
