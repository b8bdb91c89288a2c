// Package playwrightbrowser provides a browser implementation using
// playwright-go. It drives Playwright's own Chromium build, so it works on
// hosts without a system Chrome.
package playwrightbrowser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/adapters/pagescript"
	"github.com/user/lcpweight/pkg/ports"
)

// Browser implements ports.Browser using Playwright.
// Like chromebrowser, entries reach subscribers only inside Poll.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	cdp     playwright.CDPSession

	telemetry *memsource.Source
	logger    ports.Logger
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{
		telemetry: memsource.New(),
		logger:    logger.WithComponent("playwright"),
	}
}

// Launch starts Chromium through Playwright, installing it when missing.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	pw, err := playwright.Run(&playwright.RunOptions{Browsers: []string{"chromium"}})
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	b.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}
	if opts.ProxyServer != "" {
		launchOpts.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}

	b.browser, err = pw.Chromium.Launch(launchOpts)
	if err != nil {
		return fmt.Errorf("launch chromium: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(opts.IgnoreHTTPSErrors),
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if len(opts.Headers) > 0 {
		contextOpts.ExtraHttpHeaders = opts.Headers
	}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		contextOpts.Viewport = &playwright.Size{Width: opts.WindowWidth, Height: opts.WindowHeight}
	}

	bctx, err := b.browser.NewContext(contextOpts)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	if b.page, err = bctx.NewPage(); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if b.cdp, err = bctx.NewCDPSession(b.page); err != nil {
		return fmt.Errorf("open cdp session: %w", err)
	}

	var supported []string
	if err := b.evaluate(pagescript.SupportedTypes, &supported); err != nil {
		return fmt.Errorf("probe entry types: %w", err)
	}
	unsupported := pagescript.Unsupported(supported)
	for _, kind := range unsupported {
		b.logger.Warn("Browser does not support %s entries", kind)
	}
	b.telemetry = memsource.New(memsource.WithUnsupported(unsupported...))

	if err := b.page.AddInitScript(playwright.Script{Content: playwright.String(pagescript.Bootstrap)}); err != nil {
		return fmt.Errorf("install observers: %w", err)
	}
	return nil
}

// Navigate loads the specified URL and waits for the load event.
func (b *Browser) Navigate(url string) error {
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// SetNetworkConditions configures network throttling over CDP.
func (b *Browser) SetNetworkConditions(conditions ports.NetworkConditions) error {
	if _, err := b.cdp.Send("Network.enable", nil); err != nil {
		return fmt.Errorf("enable network: %w", err)
	}
	_, err := b.cdp.Send("Network.emulateNetworkConditions", map[string]interface{}{
		"offline":            conditions.Offline,
		"latency":            conditions.LatencyMs,
		"downloadThroughput": conditions.DownloadSpeed,
		"uploadThroughput":   conditions.UploadSpeed,
	})
	if err != nil {
		return fmt.Errorf("emulate network conditions: %w", err)
	}
	return nil
}

// SetCPUThrottling sets CPU throttling rate over CDP.
func (b *Browser) SetCPUThrottling(rate float64) error {
	if _, err := b.cdp.Send("Emulation.setCPUThrottlingRate", map[string]interface{}{"rate": rate}); err != nil {
		return fmt.Errorf("set cpu throttling: %w", err)
	}
	return nil
}

// Poll drains the page queue and delivers the entries to subscribers.
func (b *Browser) Poll(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var batch pagescript.Batch
	if err := b.evaluate(pagescript.Drain, &batch); err != nil {
		return false, fmt.Errorf("drain entries: %w", err)
	}
	if len(batch.Entries) > 0 {
		b.logger.Debug("Drained %d entries", len(batch.Entries))
		b.telemetry.Push(batch.Entries...)
	}
	return batch.Loaded, nil
}

// Subscribe implements ports.TelemetrySource.
func (b *Browser) Subscribe(kind ports.EntryKind, buffered bool, deliver ports.DeliverFunc) (ports.CancelFunc, error) {
	return b.telemetry.Subscribe(kind, buffered, deliver)
}

// Entries implements ports.TelemetrySource.
func (b *Browser) Entries(kind ports.EntryKind) ([]ports.Entry, error) {
	if _, err := b.telemetry.Entries(kind); err != nil || !pagescript.Queryable(kind) || b.page == nil {
		return b.telemetry.Entries(kind)
	}

	var entries []ports.Entry
	if err := b.evaluate(pagescript.Query(kind), &entries); err != nil {
		return nil, fmt.Errorf("query %s entries: %w", kind, err)
	}
	return entries, nil
}

// GetPageInfo retrieves information about the current page.
func (b *Browser) GetPageInfo() (*ports.PageInfo, error) {
	title, err := b.page.Title()
	if err != nil {
		return nil, fmt.Errorf("get page info: %w", err)
	}
	return &ports.PageInfo{Title: title, URL: b.page.URL()}, nil
}

// Close shuts down the browser and the Playwright driver.
func (b *Browser) Close() error {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			b.logger.Debug("Failed to close browser: %v", err)
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			return fmt.Errorf("stop playwright: %w", err)
		}
	}
	return nil
}

// evaluate runs expr in the page and decodes its JSON-compatible result.
func (b *Browser) evaluate(expr string, out interface{}) error {
	v, err := b.page.Evaluate(expr)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return json.Unmarshal(data, out)
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)
