// Package resolver tracks the authoritative largest-contentful-paint
// candidate and matches it to its network resource.
package resolver

import (
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

// Resolver holds the most recently delivered paint candidate.
// It is not safe for concurrent use.
type Resolver struct {
	source  ports.TelemetrySource
	logger  ports.Logger
	current *perf.PaintCandidate
}

// New creates a Resolver that falls back to source for buffered candidates
// and resource timings.
func New(source ports.TelemetrySource, logger ports.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: logger,
	}
}

// Observe replaces the current candidate with the last one in entries.
// Earlier candidates are superseded, regardless of their size.
func (r *Resolver) Observe(entries []ports.Entry) {
	if len(entries) == 0 {
		return
	}
	candidate := perf.PaintCandidateFromEntry(entries[len(entries)-1])
	r.current = &candidate
}

// Current returns the live candidate, or the last buffered one if none was
// delivered live. ok is false when neither exists.
func (r *Resolver) Current() (perf.PaintCandidate, bool) {
	if r.current != nil {
		return *r.current, true
	}

	entries, err := r.source.Entries(ports.KindLCP)
	if err != nil {
		r.logger.Debug("Buffered %s entries unavailable: %v", ports.KindLCP, err)
		return perf.PaintCandidate{}, false
	}
	if len(entries) == 0 {
		return perf.PaintCandidate{}, false
	}
	return perf.PaintCandidateFromEntry(entries[len(entries)-1]), true
}

// MatchResource returns the resource whose name equals the candidate URL.
// When several match, the one with the latest ResponseEnd wins; the first
// of those wins on a tie. It returns nil for inline candidates or when no
// record matches.
func (r *Resolver) MatchResource(candidate perf.PaintCandidate) *perf.ResourceRecord {
	if candidate.URL == "" {
		return nil
	}

	entries, err := r.source.Entries(ports.KindResource)
	if err != nil {
		r.logger.Debug("Buffered %s entries unavailable: %v", ports.KindResource, err)
		return nil
	}

	var match *perf.ResourceRecord
	for _, e := range entries {
		if e.Name != candidate.URL {
			continue
		}
		rec := perf.ResourceRecordFromEntry(e)
		if match == nil || rec.ResponseEnd > match.ResponseEnd {
			match = &rec
		}
	}
	return match
}
