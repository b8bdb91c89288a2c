package summarizer

import (
	"fmt"
	"strings"

	"github.com/user/lcpweight/pkg/perf"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("LCP Weight Summary"))

	b.WriteString(table(t("Item"), t("Value")))
	row(&b, t("Page Title"), s.Page.Title)
	row(&b, "URL", s.Page.URL)
	if s.Report != nil {
		row(&b, "LCP", perf.FormatMs(s.Report.LCPTime))
	}
	if s.Capture.TimedOut {
		row(&b, t("Load Complete"), fmt.Sprintf("%s (%ds)", t("Timeout"), s.Capture.TimeoutSec))
	}
	row(&b, t("Generated At"), s.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("\n")

	if s.Report == nil {
		fmt.Fprintf(&b, "> %s\n\n", t(perf.ErrNoLCPEntry.Error()))
	} else {
		f.writeReport(&b, s.Report)
	}

	f.writeSettings(&b, s.Settings)

	b.WriteString("---\n\n")
	footer := t("Generated by lcpweight")
	if f.version != "" {
		footer += " " + f.version
	}
	b.WriteString(footer + "\n")
	return b.String()
}

func (f *MarkdownFormatter) writeReport(b *strings.Builder, r *perf.WeightReport) {
	t := f.translate

	fmt.Fprintf(b, "## %s\n\n", t("Breakdown"))
	b.WriteString(table(t("Phase"), t("Time"), t("Share")))
	row(b, t("Network"), perf.FormatMs(r.Weights.NetworkTime), perf.FormatPercent(r.Percentages.Network))
	row(b, t("JS blocking"), perf.FormatMs(r.Weights.JSBlockingTime), perf.FormatPercent(r.Percentages.JSBlocking))
	row(b, t("Render delay"), perf.FormatMs(r.Weights.RenderDelay), perf.FormatPercent(r.Percentages.RenderDelay))
	row(b, t("Idle"), perf.FormatMs(r.Weights.Idle), perf.FormatPercent(r.Percentages.Idle))
	b.WriteString("\n")

	if c := r.Candidate; c != nil {
		fmt.Fprintf(b, "## %s\n\n", t("LCP Element"))
		b.WriteString(table(t("Item"), t("Value")))
		row(b, t("Tag"), deref(c.TagName))
		if c.ID != nil {
			row(b, "ID", *c.ID)
		}
		if c.ClassList != nil {
			row(b, t("Classes"), *c.ClassList)
		}
		if c.URL != nil {
			row(b, "URL", *c.URL)
		}
		if c.Text != nil {
			row(b, t("Text"), *c.Text)
		}
		row(b, t("Size"), fmt.Sprintf("%.0f px²", c.Size))
		b.WriteString("\n")
	}

	if res := r.Resource; res != nil {
		fmt.Fprintf(b, "## %s\n\n", t("LCP Resource"))
		b.WriteString(table(t("Item"), t("Value")))
		row(b, t("Initiator"), res.InitiatorType)
		row(b, t("Transfer Size"), perf.FormatBytes(res.TransferSize))
		row(b, t("Fetch"), fmt.Sprintf("%s → %s", perf.FormatMs(res.FetchStart), perf.FormatMs(res.ResponseEnd)))
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "## %s\n\n", t("Long Tasks before LCP"))
	if len(r.LongTasks) == 0 {
		fmt.Fprintf(b, "_%s_\n\n", t("None recorded."))
	} else {
		b.WriteString(table(t("Source"), t("Duration")))
		for _, g := range r.LongTasks {
			row(b, g.Name, perf.FormatMs(g.Duration))
		}
		b.WriteString("\n")
	}

	if len(r.Timeline) > 0 {
		fmt.Fprintf(b, "## %s\n\n", t("Timeline"))
		b.WriteString(table(t("Event"), t("Time")))
		for _, ev := range r.Timeline {
			row(b, t(ev.Label), perf.FormatMs(ev.Time))
		}
		b.WriteString("\n")
	}
}

func (f *MarkdownFormatter) writeSettings(b *strings.Builder, s Settings) {
	if s == (Settings{}) {
		return
	}
	t := f.translate

	fmt.Fprintf(b, "## %s\n\n", t("Settings"))
	b.WriteString(table(t("Item"), t("Value")))
	if s.Preset != "" {
		row(b, t("Preset"), s.Preset)
	}
	if s.ViewportWidth > 0 {
		row(b, t("Viewport Width"), fmt.Sprintf("%d px", s.ViewportWidth))
	}
	if s.DownloadSpeed > 0 || s.UploadSpeed > 0 || s.LatencyMs > 0 {
		row(b, t("Network"), fmt.Sprintf("↓ %s/s ↑ %s/s, %d ms",
			perf.FormatBytes(int64(s.DownloadSpeed)), perf.FormatBytes(int64(s.UploadSpeed)), s.LatencyMs))
	}
	if s.CPUThrottling > 1 {
		row(b, t("CPU Throttling"), fmt.Sprintf("%.1fx", s.CPUThrottling))
	}
	b.WriteString("\n")
}

func table(headers ...string) string {
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	return "| " + strings.Join(headers, " | ") + " |\n|" + strings.Join(sep, "|") + "|\n"
}

func row(b *strings.Builder, cells ...string) {
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(c, "|", "\\|")
	}
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func deref(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}
