// Package chromebrowser provides a browser implementation using chromedp.
package chromebrowser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/adapters/pagescript"
	"github.com/user/lcpweight/pkg/ports"
)

// Browser implements ports.Browser using chromedp.
//
// Observed entries are queued inside the page and only reach subscribers
// when Poll drains them, so delivery always happens on the goroutine that
// calls Poll. Subscribe after Launch.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	telemetry *memsource.Source
	logger    ports.Logger
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{
		telemetry: memsource.New(),
		logger:    logger.WithComponent("chrome"),
	}
}

// Launch starts the browser, probes the supported entry kinds and installs
// the observer bootstrap for every document loaded afterwards.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		b.logger.Info("Chrome not found, installing Chromium")
		installed, err := InstallChromium()
		if err != nil {
			return fmt.Errorf("chrome not found: install Chrome/Chromium, set CHROME_PATH or use --chrome-path: %w", err)
		}
		chromePath = installed
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.Incognito {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("incognito", true))
	}
	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		chromedpOpts = append(chromedpOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}
	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}
	if opts.ProxyServer != "" {
		chromedpOpts = append(chromedpOpts, chromedp.ProxyServer(opts.ProxyServer))
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	var supported []string
	if err := chromedp.Run(b.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.Evaluate(pagescript.SupportedTypes, &supported),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(pagescript.Bootstrap).Do(ctx)
			return err
		}),
	); err != nil {
		return fmt.Errorf("install observers: %w", err)
	}

	unsupported := pagescript.Unsupported(supported)
	for _, kind := range unsupported {
		b.logger.Warn("Browser does not support %s entries", kind)
	}
	b.telemetry = memsource.New(memsource.WithUnsupported(unsupported...))

	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		if err := chromedp.Run(b.ctx, network.Enable(), network.SetExtraHTTPHeaders(headers)); err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
	}

	return nil
}

// Navigate loads the specified URL.
func (b *Browser) Navigate(url string) error {
	if err := chromedp.Run(b.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// SetNetworkConditions configures network throttling.
func (b *Browser) SetNetworkConditions(conditions ports.NetworkConditions) error {
	return chromedp.Run(b.ctx,
		network.Enable(),
		network.EmulateNetworkConditions(
			conditions.Offline,
			float64(conditions.LatencyMs),
			float64(conditions.DownloadSpeed),
			float64(conditions.UploadSpeed),
		),
	)
}

// SetCPUThrottling sets CPU throttling rate.
func (b *Browser) SetCPUThrottling(rate float64) error {
	return chromedp.Run(b.ctx, emulation.SetCPUThrottlingRate(rate))
}

// Poll drains the page queue and delivers the entries to subscribers.
func (b *Browser) Poll(ctx context.Context) (bool, error) {
	runCtx, cancel := context.WithTimeout(b.ctx, 5*time.Second)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var batch pagescript.Batch
	if err := chromedp.Run(runCtx, chromedp.Evaluate(pagescript.Drain, &batch)); err != nil {
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

// Entries implements ports.TelemetrySource. Navigation and resource timings
// are read from the page's performance timeline; other kinds come from what
// Poll has drained.
func (b *Browser) Entries(kind ports.EntryKind) ([]ports.Entry, error) {
	drained, err := b.telemetry.Entries(kind)
	if err != nil || !pagescript.Queryable(kind) || b.ctx == nil {
		return drained, err
	}

	var entries []ports.Entry
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(pagescript.Query(kind), &entries)); err != nil {
		return nil, fmt.Errorf("query %s entries: %w", kind, err)
	}
	return entries, nil
}

// GetPageInfo retrieves information about the current page.
func (b *Browser) GetPageInfo() (*ports.PageInfo, error) {
	var title, url string
	if err := chromedp.Run(b.ctx, chromedp.Title(&title), chromedp.Location(&url)); err != nil {
		return nil, fmt.Errorf("get page info: %w", err)
	}
	return &ports.PageInfo{Title: title, URL: url}, nil
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)
