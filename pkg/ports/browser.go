// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// Browser abstracts a page-loading browser that also acts as a telemetry source.
type Browser interface {
	TelemetrySource

	// Launch starts the browser with the given options and installs the
	// performance observer bootstrap for subsequently loaded documents.
	Launch(ctx context.Context, opts BrowserOptions) error

	// Navigate loads the specified URL and returns once navigation committed.
	Navigate(url string) error

	// SetNetworkConditions configures network throttling.
	SetNetworkConditions(conditions NetworkConditions) error

	// SetCPUThrottling sets CPU throttling rate (e.g., 4.0 means 4x slower).
	SetCPUThrottling(rate float64) error

	// Poll drains newly observed entries and hands them to subscribers
	// synchronously, on the calling goroutine.
	// loaded reports whether the page's load event has fired.
	Poll(ctx context.Context) (loaded bool, err error)

	// GetPageInfo retrieves information about the current page.
	GetPageInfo() (*PageInfo, error)

	// Close shuts down the browser.
	Close() error
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	Headers           map[string]string
	WindowWidth       int
	WindowHeight      int
	IgnoreHTTPSErrors bool
	ProxyServer       string // e.g. "http://proxy:8080"
	Incognito         bool
}

// NetworkConditions defines network throttling parameters.
type NetworkConditions struct {
	LatencyMs     int  // Network latency in milliseconds
	DownloadSpeed int  // Download speed in bytes/sec
	UploadSpeed   int  // Upload speed in bytes/sec
	Offline       bool // Whether to simulate offline mode
}

// PageInfo contains information about the current page.
type PageInfo struct {
	Title string
	URL   string
}
