// Package analyzer assembles LCP weight reports from live page-load telemetry.
package analyzer

import (
	"errors"

	"github.com/user/lcpweight/pkg/decompose"
	"github.com/user/lcpweight/pkg/ledger"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
	"github.com/user/lcpweight/pkg/resolver"
	"github.com/user/lcpweight/pkg/timeline"
)

// DefaultTextLimit is the maximum length of the candidate's text excerpt.
const DefaultTextLimit = 60

// Options tunes report assembly.
type Options struct {
	LongTaskLimit int // Attribution groups listed in the report (default: 5)
	TextLimit     int // Candidate text excerpt length (default: 60)
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		LongTaskLimit: ledger.DefaultTopLimit,
		TextLimit:     DefaultTextLimit,
	}
}

// Analyzer owns the long task ledger and the paint candidate slot for one
// page. Telemetry is pushed into it by the source's subscriptions; reports
// are pulled with Report.
//
// An Analyzer is not safe for concurrent use. Sources must deliver on the
// goroutine that calls Report, or callers must serialize access.
type Analyzer struct {
	source   ports.TelemetrySource
	logger   ports.Logger
	opts     Options
	ledger   *ledger.Ledger
	resolver *resolver.Resolver
	cancels  []ports.CancelFunc
}

// New creates an Analyzer and subscribes it to source. Subscriptions that
// fail are logged as warnings and the analyzer continues without that kind.
func New(source ports.TelemetrySource, logger ports.Logger, opts Options) *Analyzer {
	if opts.LongTaskLimit <= 0 {
		opts.LongTaskLimit = ledger.DefaultTopLimit
	}
	if opts.TextLimit <= 0 {
		opts.TextLimit = DefaultTextLimit
	}

	log := logger.WithComponent("analyzer")
	a := &Analyzer{
		source:   source,
		logger:   log,
		opts:     opts,
		ledger:   ledger.New(),
		resolver: resolver.New(source, log),
	}

	a.subscribe(ports.KindLongTask, a.onLongTasks)
	a.subscribe(ports.KindLCP, a.resolver.Observe)
	return a
}

func (a *Analyzer) subscribe(kind ports.EntryKind, deliver ports.DeliverFunc) {
	cancel, err := a.source.Subscribe(kind, true, deliver)
	if err != nil {
		a.logger.Warn("%s observer unavailable: %v", kind, err)
		return
	}
	a.cancels = append(a.cancels, cancel)
}

func (a *Analyzer) onLongTasks(entries []ports.Entry) {
	for _, e := range entries {
		a.ledger.Append(perf.TimingRecordFromEntry(e))
	}
	a.logger.Debug("Recorded %d long tasks (%d total)", len(entries), a.ledger.Len())
}

// Report assembles a report from the telemetry observed so far. It returns
// perf.ErrNoLCPEntry when no paint candidate exists yet.
func (a *Analyzer) Report() (*perf.WeightReport, error) {
	candidate, ok := a.resolver.Current()
	if !ok {
		return nil, perf.ErrNoLCPEntry
	}

	lcpTime := candidate.EffectiveTime()
	nav := a.navigation()
	res := a.resolver.MatchResource(candidate)

	breakdown := decompose.Decompose(decompose.Input{
		LCPTime:    lcpTime,
		Navigation: nav,
		Resource:   res,
		Ledger:     a.ledger,
	})

	return &perf.WeightReport{
		LCPTime:     lcpTime,
		Candidate:   SimplifyCandidate(candidate, a.opts.TextLimit),
		Resource:    SimplifyResource(res),
		Weights:     breakdown.Weights,
		Percentages: breakdown.Percentages,
		LongTasks:   a.ledger.TopAttributed(lcpTime, a.opts.LongTaskLimit),
		Timeline:    timeline.Build(lcpTime, nav, res),
	}, nil
}

// Result is Report wrapped for serialization.
func (a *Analyzer) Result() perf.Result {
	return perf.NewResult(a.Report())
}

// HasCandidate reports whether a paint candidate has been observed.
func (a *Analyzer) HasCandidate() bool {
	_, ok := a.resolver.Current()
	return ok
}

// LongTasks returns the long tasks recorded so far.
func (a *Analyzer) LongTasks() []perf.TimingRecord {
	return a.ledger.Records()
}

// Close cancels all subscriptions. Reports can still be assembled from the
// telemetry observed before Close.
func (a *Analyzer) Close() {
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
}

func (a *Analyzer) navigation() *perf.NavigationRecord {
	entries, err := a.source.Entries(ports.KindNavigation)
	if err != nil {
		if !errors.Is(err, ports.ErrKindUnsupported) {
			a.logger.Warn("Failed to query %s entries: %v", ports.KindNavigation, err)
		}
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	nav := perf.NavigationRecordFromEntry(entries[0])
	return &nav
}
