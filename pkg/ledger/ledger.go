// Package ledger records main-thread long tasks and answers blocking-time
// queries against a paint time.
package ledger

import (
	"sort"

	"github.com/user/lcpweight/pkg/perf"
)

// DefaultTopLimit is the number of attribution groups returned by default.
const DefaultTopLimit = 5

// Ledger is an append-only record of long tasks. The zero value is ready to
// use. It is not safe for concurrent use.
type Ledger struct {
	records []perf.TimingRecord
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records a long task.
func (l *Ledger) Append(records ...perf.TimingRecord) {
	l.records = append(l.records, records...)
}

// Len returns the number of recorded tasks.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of the recorded tasks in arrival order.
func (l *Ledger) Records() []perf.TimingRecord {
	out := make([]perf.TimingRecord, len(l.records))
	copy(out, l.records)
	return out
}

// SumBefore returns the total duration of tasks starting strictly before cutoff.
func (l *Ledger) SumBefore(cutoff float64) float64 {
	var sum float64
	for _, r := range l.records {
		if r.StartTime < cutoff {
			sum += r.Duration
		}
	}
	return sum
}

// TopAttributed groups tasks starting before cutoff by attribution key and
// returns at most limit groups by descending total duration. Groups with
// equal totals keep the order in which their key was first seen.
// A non-positive limit selects DefaultTopLimit.
func (l *Ledger) TopAttributed(cutoff float64, limit int) []perf.LongTaskGroup {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	groups := make([]perf.LongTaskGroup, 0)
	index := make(map[string]int)
	for _, r := range l.records {
		if r.StartTime >= cutoff {
			continue
		}
		key := r.AttributionKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, perf.LongTaskGroup{Name: key})
		}
		groups[i].Duration += r.Duration
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Duration > groups[b].Duration
	})

	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}
