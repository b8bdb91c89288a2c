// Package timeline orders the key instants of a page load.
package timeline

import (
	"sort"

	"github.com/user/lcpweight/pkg/perf"
)

// Event labels.
const (
	LabelNavigationStart = "Navigation Start"
	LabelResponseEnd     = "Response End"
	LabelLCPFetchStart   = "LCP Fetch Start"
	LabelLCPResponseEnd  = "LCP Response End"
	LabelLCP             = "LCP"
)

// Build returns the page-load instants sorted by time. Events with equal
// times keep their construction order: navigation, resource, then LCP.
func Build(lcpTime float64, nav *perf.NavigationRecord, res *perf.ResourceRecord) []perf.TimelineEvent {
	events := make([]perf.TimelineEvent, 0, 5)
	if nav != nil {
		events = append(events,
			perf.TimelineEvent{Label: LabelNavigationStart, Time: 0},
			perf.TimelineEvent{Label: LabelResponseEnd, Time: nav.ResponseEnd},
		)
	}
	if res != nil {
		events = append(events,
			perf.TimelineEvent{Label: LabelLCPFetchStart, Time: res.FetchStart},
			perf.TimelineEvent{Label: LabelLCPResponseEnd, Time: res.ResponseEnd},
		)
	}
	events = append(events, perf.TimelineEvent{Label: LabelLCP, Time: lcpTime})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events
}
