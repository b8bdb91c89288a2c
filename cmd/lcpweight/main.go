// Package main provides the CLI entry point for lcpweight.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/lcpweight/pkg/adapters/chromebrowser"
	"github.com/user/lcpweight/pkg/adapters/filesink"
	"github.com/user/lcpweight/pkg/adapters/ggrenderer"
	"github.com/user/lcpweight/pkg/adapters/logger"
	"github.com/user/lcpweight/pkg/adapters/nullsink"
	"github.com/user/lcpweight/pkg/adapters/osfilesystem"
	"github.com/user/lcpweight/pkg/adapters/playwrightbrowser"
	"github.com/user/lcpweight/pkg/adapters/sqlitestore"
	"github.com/user/lcpweight/pkg/analyzer"
	"github.com/user/lcpweight/pkg/config"
	"github.com/user/lcpweight/pkg/orchestrator"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
	"github.com/user/lcpweight/pkg/server"
	"github.com/user/lcpweight/pkg/stages/capture"
	"github.com/user/lcpweight/pkg/stages/chart"
	"github.com/user/lcpweight/pkg/summarizer"
)

// Globals are flags shared by all commands.
type Globals struct {
	Config   string `short:"C" type:"existingfile" help:"YAML configuration file."`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Globals

	Analyze AnalyzeCmd `cmd:"" help:"Load a page in a browser and break down its LCP time."`
	Serve   ServeCmd   `cmd:"" help:"Collect performance entries posted by pages and report per session."`
	History HistoryCmd `cmd:"" help:"List stored reports."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("lcpweight"),
		kong.Description(l10n.T("Break down Largest Contentful Paint into network, script and render time.")),
		kong.UsageOnError(),
		kong.ValueFormatter(func(value *kong.Value) string {
			return l10n.T(kong.DefaultHelpValueFormatter(value))
		}),
		kong.Bind(&cli.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Logger creates the logger selected by the global flags.
func (g *Globals) Logger() ports.Logger {
	if g.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(g.LogLevel))
}

// LoadConfig returns the configuration file contents over the defaults.
func (g *Globals) LoadConfig() (config.Config, error) {
	if g.Config == "" {
		return config.Defaults(), nil
	}
	return config.LoadFromFile(g.Config)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// AnalyzeCmd defines the analyze subcommand.
type AnalyzeCmd struct {
	URL string `arg:"" help:"URL of the page to analyze."`

	// Output
	Output  *string `short:"o" help:"Report file path (.json, .yaml or .yml; default: lcp-report.json)."`
	Chart   *string `help:"Write a breakdown chart (PNG) to this path."`
	Summary *string `short:"s" help:"Write a Markdown summary to this path."`
	History *string `help:"Store the report in this SQLite database."`
	JSON    bool    `short:"j" help:"Print the report (or its error payload) to stdout as JSON."`

	// Preset
	Preset *string `short:"p" enum:"desktop,mobile" help:"Device preset (desktop, mobile)."`

	// Capture
	ViewportWidth  *int     `help:"Browser viewport width."`
	ViewportHeight *int     `help:"Browser viewport height."`
	TimeoutSec     *int     `short:"t" help:"Capture timeout in seconds."`
	SettleMs       *int     `help:"Time to keep observing after the load event, in milliseconds."`
	LongTasks      *int     `help:"Number of long task groups in the report."`
	LatencyMs      *int     `help:"Added network latency in milliseconds."`
	DownloadMbps   *float64 `help:"Download speed in Mbps (0 = unlimited)."`
	UploadMbps     *float64 `help:"Upload speed in Mbps (0 = unlimited)."`
	CPUThrottling  *float64 `help:"CPU slowdown factor (1.0 = no throttling, 4.0 = 4x slower)."`

	// Browser
	Engine            *string           `short:"e" enum:"chrome,playwright" help:"Browser engine (chrome, playwright)."`
	NoHeadless        bool              `help:"Run browser in non-headless mode."`
	ChromePath        string            `help:"Path to Chrome executable."`
	UserAgent         string            `help:"Override the browser user agent."`
	Header            map[string]string `short:"H" help:"Extra request header (repeatable, Name=Value)."`
	IgnoreHTTPSErrors bool              `help:"Ignore HTTPS certificate errors."`
	ProxyServer       string            `help:"HTTP proxy server (e.g., http://proxy:8080)."`

	// Debug
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `help:"Directory for debug output."`
}

// Run executes the analyze command.
func (cmd *AnalyzeCmd) Run(globals *Globals) error {
	log := globals.Logger()

	base, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	cfg := cmd.buildConfig(base)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var browser ports.Browser
	if cfg.Engine == config.EnginePlaywright {
		browser = playwrightbrowser.New(log)
	} else {
		browser = chromebrowser.New(log)
	}

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	var store ports.ReportStore
	if cfg.History != "" {
		s, err := sqlitestore.Open(cfg.History)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	// Create stages
	captureStage := capture.New(browser, sink, log, cfg.BrowserOptions())
	chartStage := chart.New(renderer, sink, log)
	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)

	orch := orchestrator.New(captureStage, chartStage, formatter, fs, store, sink, log)

	log.Info("Analyzing %s (%s preset)...", cfg.URL, cfg.Preset)
	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	if cmd.JSON {
		data, err := json.MarshalIndent(result.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(data))
	}

	if !result.Result.OK() {
		log.Warn("No LCP entry recorded for %s", cfg.URL)
		return nil
	}

	w := result.Result.Report.Weights
	log.Info("LCP %s: network %s, JS blocking %s, render delay %s, idle %s",
		perf.FormatMs(result.Result.Report.LCPTime),
		perf.FormatMs(w.NetworkTime), perf.FormatMs(w.JSBlockingTime),
		perf.FormatMs(w.RenderDelay), perf.FormatMs(w.Idle))
	if result.ReportPath != "" {
		log.Info("Output saved to %s", result.ReportPath)
	}
	if result.SummaryPath != "" {
		log.Info("Summary saved to %s", result.SummaryPath)
	}
	return nil
}

// buildConfig applies the preset and flag overrides over base.
func (cmd *AnalyzeCmd) buildConfig(base config.Config) config.Config {
	builder := config.NewBuilder(base).WithURL(cmd.URL)

	if cmd.Preset != nil {
		// Enum validation has already rejected unknown names.
		preset, _ := config.ParsePreset(*cmd.Preset)
		builder.WithPreset(preset)
	}

	if cmd.Output != nil {
		builder.WithOutput(*cmd.Output)
	}
	if cmd.Chart != nil {
		builder.WithChart(*cmd.Chart)
	}
	if cmd.Summary != nil {
		builder.WithSummary(*cmd.Summary)
	}
	if cmd.History != nil {
		builder.WithHistory(*cmd.History)
	}

	width, height := 0, 0
	if cmd.ViewportWidth != nil {
		width = *cmd.ViewportWidth
	}
	if cmd.ViewportHeight != nil {
		height = *cmd.ViewportHeight
	}
	builder.WithViewport(width, height)

	if cmd.TimeoutSec != nil {
		builder.WithTimeoutSec(*cmd.TimeoutSec)
	}
	if cmd.SettleMs != nil {
		builder.WithSettleMs(*cmd.SettleMs)
	}
	if cmd.LongTasks != nil {
		builder.WithLongTaskLimit(*cmd.LongTasks)
	}
	if cmd.LatencyMs != nil {
		builder.WithLatencyMs(*cmd.LatencyMs)
	}
	if cmd.DownloadMbps != nil {
		builder.WithDownloadSpeed(config.MbpsToBytes(*cmd.DownloadMbps))
	}
	if cmd.UploadMbps != nil {
		builder.WithUploadSpeed(config.MbpsToBytes(*cmd.UploadMbps))
	}
	if cmd.CPUThrottling != nil {
		builder.WithCPUThrottling(*cmd.CPUThrottling)
	}

	if cmd.Engine != nil {
		builder.WithEngine(*cmd.Engine)
	}
	if cmd.NoHeadless {
		builder.WithHeadless(false)
	}
	if cmd.ChromePath != "" {
		builder.WithChromePath(cmd.ChromePath)
	}
	if cmd.UserAgent != "" {
		builder.WithUserAgent(cmd.UserAgent)
	}
	builder.WithHeaders(cmd.Header)
	if cmd.IgnoreHTTPSErrors {
		builder.WithIgnoreHTTPSErrors(true)
	}
	if cmd.ProxyServer != "" {
		builder.WithProxyServer(cmd.ProxyServer)
	}
	if cmd.Debug {
		builder.WithDebug(true, cmd.DebugDir)
	}

	return builder.Build()
}

// ServeCmd defines the serve subcommand.
type ServeCmd struct {
	Addr       string `short:"a" help:"Listen address (default: :8080)."`
	PublicURL  string `help:"Base URL pages use to reach this server."`
	History    string `help:"Store closed sessions in this SQLite database."`
	LongTasks  int    `help:"Number of long task groups in each report."`
	SessionTTL int    `help:"Seconds an idle session is kept."`
}

// Run executes the serve command.
func (cmd *ServeCmd) Run(globals *Globals) error {
	log := globals.Logger()

	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	if cmd.LongTasks > 0 {
		cfg.Server.LongTaskLimit = cmd.LongTasks
	}
	if cmd.SessionTTL > 0 {
		cfg.Server.SessionTTLSec = cmd.SessionTTL
	}
	if cmd.History != "" {
		cfg.History = cmd.History
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	var store ports.ReportStore
	if cfg.History != "" {
		s, err := sqlitestore.Open(cfg.History)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	sessions := server.NewManager(log, analyzer.Options{LongTaskLimit: cfg.Server.LongTaskLimit}, 0)
	srv := server.New(sessions, store, log, server.Options{
		Version:    version,
		PublicURL:  cmd.PublicURL,
		SessionTTL: time.Duration(cfg.Server.SessionTTLSec) * time.Second,
	})
	return srv.Start(ctx, cfg.Server.Addr)
}

// HistoryCmd defines the history subcommand.
type HistoryCmd struct {
	Database string `arg:"" help:"SQLite database written by analyze --history or serve --history."`
	URL      string `short:"u" help:"Only list reports for this URL."`
	Limit    int    `short:"n" default:"20" help:"Maximum number of reports to list."`
	ID       int64  `help:"Print the stored report with this id as JSON."`
}

// Run executes the history command.
func (cmd *HistoryCmd) Run(globals *Globals) error {
	store, err := sqlitestore.Open(cmd.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if cmd.ID > 0 {
		stored, err := store.Get(ctx, cmd.ID)
		if errors.Is(err, ports.ErrReportNotFound) {
			return fmt.Errorf("%s", l10n.F("No report with id %d", cmd.ID))
		}
		if err != nil {
			return err
		}
		var report perf.WeightReport
		if err := json.Unmarshal(stored.Payload, &report); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		data, err := json.MarshalIndent(&report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	reports, err := store.List(ctx, cmd.URL, cmd.Limit)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println(l10n.T("No reports stored."))
		return nil
	}
	for _, r := range reports {
		fmt.Printf("%6d  %s  %10s  %s\n", r.ID, r.CapturedAt.Local().Format("2006-01-02 15:04:05"),
			perf.FormatMs(r.LCPTime), r.URL)
	}
	return nil
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("lcpweight version %s", version))
	return nil
}
