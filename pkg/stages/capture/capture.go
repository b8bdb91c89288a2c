// Package capture implements the page analysis stage: it loads a page in a
// browser and assembles the LCP weight report from what the page observed.
package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/lcpweight/pkg/analyzer"
	"github.com/user/lcpweight/pkg/pipeline"
	"github.com/user/lcpweight/pkg/ports"
)

// Stage captures one page load.
type Stage struct {
	browser     ports.Browser
	sink        ports.DebugSink
	logger      ports.Logger
	browserOpts ports.BrowserOptions
}

// New creates a new capture stage.
func New(browser ports.Browser, sink ports.DebugSink, logger ports.Logger, opts ports.BrowserOptions) *Stage {
	return &Stage{
		browser:     browser,
		sink:        sink,
		logger:      logger.WithComponent("capture"),
		browserOpts: opts,
	}
}

// minWindowWidth is the minimum window width for Chrome headless mode.
const minWindowWidth = 500

// Execute loads input.URL and returns the report once the page has loaded
// and settled, or when the timeout expires. A page that never produced a
// paint candidate yields a no-data result, not an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	defaults := pipeline.DefaultCaptureInput()
	if input.TimeoutMs <= 0 {
		input.TimeoutMs = defaults.TimeoutMs
	}
	if input.SettleMs < 0 {
		input.SettleMs = 0
	}
	if input.PollIntervalMs <= 0 {
		input.PollIntervalMs = defaults.PollIntervalMs
	}

	result := pipeline.CaptureResult{}

	opts := s.browserOpts
	if len(input.Headers) > 0 {
		opts.Headers = input.Headers
	}
	opts.WindowWidth = max(input.ViewportWidth, minWindowWidth)
	opts.WindowHeight = input.ViewportHeight
	opts.IgnoreHTTPSErrors = input.IgnoreHTTPSErrors
	opts.ProxyServer = input.ProxyServer

	s.logger.Debug("Launching browser")
	if err := s.browser.Launch(ctx, opts); err != nil {
		return result, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		s.browser.Close()
		s.logger.Debug("Browser closed")
	}()

	if input.NetworkConditions != (ports.NetworkConditions{}) {
		s.logger.Debug("Setting network conditions: %d ms latency, %d bps down, %d bps up",
			input.NetworkConditions.LatencyMs,
			input.NetworkConditions.DownloadSpeed,
			input.NetworkConditions.UploadSpeed)
		if err := s.browser.SetNetworkConditions(input.NetworkConditions); err != nil {
			return result, fmt.Errorf("set network conditions: %w", err)
		}
	}
	if input.CPUThrottling > 1 {
		s.logger.Debug("Setting CPU throttling: %.1fx slowdown", input.CPUThrottling)
		if err := s.browser.SetCPUThrottling(input.CPUThrottling); err != nil {
			return result, fmt.Errorf("set CPU throttling: %w", err)
		}
	}

	a := analyzer.New(s.browser, s.logger, analyzer.Options{LongTaskLimit: input.LongTaskLimit})
	defer a.Close()

	captureCtx, cancel := context.WithTimeout(ctx, time.Duration(input.TimeoutMs)*time.Millisecond)
	defer cancel()

	s.logger.Debug("Navigating to %s", input.URL)
	start := time.Now()
	if err := s.browser.Navigate(input.URL); err != nil {
		return result, fmt.Errorf("navigate: %w", err)
	}

	loaded, err := s.observe(captureCtx, time.Duration(input.PollIntervalMs)*time.Millisecond,
		time.Duration(input.SettleMs)*time.Millisecond)
	if err != nil {
		return result, err
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if !loaded {
		s.logger.Warn("Capture timed out after %d ms, using entries observed so far", input.TimeoutMs)
	}

	result.Loaded = loaded
	result.DurationMs = int(time.Since(start).Milliseconds())
	result.Result = a.Result()
	if !result.Result.OK() {
		s.logger.Warn("No LCP entry recorded for %s", input.URL)
	} else {
		s.logger.Debug("Recorded %d long tasks", len(a.LongTasks()))
	}

	pageInfo, err := s.browser.GetPageInfo()
	if err != nil {
		return result, fmt.Errorf("get page info: %w", err)
	}
	result.PageInfo = *pageInfo

	result.Entries = s.collectEntries()
	if s.sink.Enabled() {
		s.saveEntries(result.Entries)
	}

	s.logger.Debug("Capture completed in %d ms", result.DurationMs)
	return result, nil
}

// observe polls the browser until the load event has fired and the settle
// window has passed, or ctx expires. The final drain always happens so that
// entries queued just before the deadline are delivered.
func (s *Stage) observe(ctx context.Context, interval, settle time.Duration) (bool, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var loadedAt time.Time
	for {
		loaded, err := s.browser.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.drain()
				return !loadedAt.IsZero(), nil
			}
			return false, fmt.Errorf("poll telemetry: %w", err)
		}
		if loaded && loadedAt.IsZero() {
			loadedAt = time.Now()
			s.logger.Debug("Load event fired, settling for %d ms", settle.Milliseconds())
		}
		if !loadedAt.IsZero() && time.Since(loadedAt) >= settle {
			return true, nil
		}

		select {
		case <-ctx.Done():
			s.drain()
			return !loadedAt.IsZero(), nil
		case <-ticker.C:
		}
	}
}

func (s *Stage) drain() {
	drainCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := s.browser.Poll(drainCtx); err != nil {
		s.logger.Debug("Final drain failed: %v", err)
	}
}

func (s *Stage) collectEntries() map[ports.EntryKind][]ports.Entry {
	entries := make(map[ports.EntryKind][]ports.Entry, len(ports.AllKinds))
	for _, kind := range ports.AllKinds {
		list, err := s.browser.Entries(kind)
		if err != nil {
			if !errors.Is(err, ports.ErrKindUnsupported) {
				s.logger.Debug("Buffered %s entries unavailable: %v", kind, err)
			}
			continue
		}
		entries[kind] = list
	}
	return entries
}

func (s *Stage) saveEntries(entries map[ports.EntryKind][]ports.Entry) {
	for _, kind := range ports.AllKinds {
		list, ok := entries[kind]
		if !ok {
			continue
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			continue
		}
		if err := s.sink.SaveEntriesJSON(kind, data); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult] = (*Stage)(nil)
