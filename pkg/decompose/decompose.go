// Package decompose splits an LCP time into network, script blocking, render
// delay and idle phases.
//
// The phases are an additive approximation: network fetch and script
// execution can overlap in a real page load, but each phase is counted as a
// separate contribution to the LCP budget. Every phase is clamped at zero, so
// the phases may under-explain the LCP time but never push a percentage
// below zero.
package decompose

import (
	"math"

	"github.com/user/lcpweight/pkg/perf"
)

// BlockingLedger reports the main-thread blocking time before a cutoff.
type BlockingLedger interface {
	SumBefore(cutoff float64) float64
}

// Input holds everything the decomposition depends on.
// Navigation and Resource are optional.
type Input struct {
	LCPTime    float64
	Navigation *perf.NavigationRecord
	Resource   *perf.ResourceRecord
	Ledger     BlockingLedger
}

// Result is the phase breakdown and its normalized percentages.
type Result struct {
	Weights     perf.Weights
	Percentages perf.Percentages
}

// Decompose computes the phase breakdown.
func Decompose(in Input) Result {
	lcpTime := in.LCPTime

	var networkTime float64
	if in.Resource != nil {
		networkTime = math.Max(0, in.Resource.ResponseEnd-in.Resource.FetchStart)
	}

	var jsBlockingTime float64
	if in.Ledger != nil {
		jsBlockingTime = in.Ledger.SumBefore(lcpTime)
	}

	renderDelay := math.Max(0, lcpTime-BaseReady(in.Navigation, in.Resource)-jsBlockingTime)

	w := perf.Weights{
		NetworkTime:    networkTime,
		JSBlockingTime: jsBlockingTime,
		RenderDelay:    renderDelay,
	}
	w.Idle = math.Max(0, lcpTime-w.Explained())

	total := lcpTime
	if total == 0 {
		total = w.Explained()
	}
	if total == 0 {
		total = 1
	}

	return Result{
		Weights: w,
		Percentages: perf.Percentages{
			Network:     percent(w.NetworkTime, total),
			JSBlocking:  percent(w.JSBlockingTime, total),
			RenderDelay: percent(w.RenderDelay, total),
			Idle:        percent(w.Idle, total),
		},
	}
}

// BaseReady returns the instant the paint's inputs were ready: the LCP
// resource's response end, else the document's response end, else 0.
func BaseReady(nav *perf.NavigationRecord, res *perf.ResourceRecord) float64 {
	switch {
	case res != nil:
		return res.ResponseEnd
	case nav != nil:
		return nav.ResponseEnd
	default:
		return 0
	}
}

func percent(value, total float64) float64 {
	p := value / total * 100
	return math.Min(100, math.Max(0, p))
}
