// Package perf defines the timing records consumed by the analyzer and the
// weight report it produces.
//
// All times are milliseconds relative to navigation start, as reported by the
// browser's high resolution clock.
package perf

// =============================================================================
// Telemetry Records
// =============================================================================

// Attribution names the script or container blamed for a long task.
type Attribution struct {
	Name          string `json:"name,omitempty"`
	ContainerName string `json:"containerName,omitempty"`
}

// TimingRecord is one main-thread long task.
type TimingRecord struct {
	StartTime   float64       `json:"startTime"`
	Duration    float64       `json:"duration"`
	Attribution []Attribution `json:"attribution,omitempty"`
}

// AttributionKey returns the grouping key for the record: the first
// attribution's name, else its container name, else "unknown".
func (r TimingRecord) AttributionKey() string {
	if len(r.Attribution) == 0 {
		return UnknownAttribution
	}
	first := r.Attribution[0]
	if first.Name != "" {
		return first.Name
	}
	if first.ContainerName != "" {
		return first.ContainerName
	}
	return UnknownAttribution
}

// UnknownAttribution is the key for long tasks without usable attribution.
const UnknownAttribution = "unknown"

// ResourceRecord is the timing of one fetched sub-resource.
type ResourceRecord struct {
	Name            string
	InitiatorType   string
	StartTime       float64
	FetchStart      float64
	ResponseStart   float64
	ResponseEnd     float64
	TransferSize    int64
	EncodedBodySize int64
	DecodedBodySize int64
	Duration        float64
}

// NavigationRecord is the timing of the top-level document load.
type NavigationRecord struct {
	ResponseStart    float64
	ResponseEnd      float64
	DOMContentLoaded float64
	LoadEventEnd     float64
}

// ElementInfo describes the element painted by a candidate.
type ElementInfo struct {
	TagName     string
	ID          string
	ClassName   string
	TextContent string
}

// PaintCandidate is one largest-contentful-paint report. Later candidates
// supersede earlier ones.
type PaintCandidate struct {
	URL        string
	Size       float64
	StartTime  float64
	RenderTime float64
	LoadTime   float64
	Element    *ElementInfo
}

// EffectiveTime returns the first non-zero of StartTime, RenderTime and
// LoadTime, or 0.
func (c PaintCandidate) EffectiveTime() float64 {
	switch {
	case c.StartTime != 0:
		return c.StartTime
	case c.RenderTime != 0:
		return c.RenderTime
	default:
		return c.LoadTime
	}
}

// =============================================================================
// Report
// =============================================================================

// Weights is the phase breakdown of the LCP time, in milliseconds.
type Weights struct {
	NetworkTime    float64 `json:"networkTime" yaml:"networkTime" msgpack:"networkTime"`
	JSBlockingTime float64 `json:"jsBlockingTime" yaml:"jsBlockingTime" msgpack:"jsBlockingTime"`
	RenderDelay    float64 `json:"renderDelay" yaml:"renderDelay" msgpack:"renderDelay"`
	Idle           float64 `json:"idle" yaml:"idle" msgpack:"idle"`
}

// Explained returns the sum of the three attributed phases.
func (w Weights) Explained() float64 {
	return w.NetworkTime + w.JSBlockingTime + w.RenderDelay
}

// Percentages expresses each phase as a share of the LCP time.
type Percentages struct {
	Network     float64 `json:"network" yaml:"network" msgpack:"network"`
	JSBlocking  float64 `json:"jsBlocking" yaml:"jsBlocking" msgpack:"jsBlocking"`
	RenderDelay float64 `json:"renderDelay" yaml:"renderDelay" msgpack:"renderDelay"`
	Idle        float64 `json:"idle" yaml:"idle" msgpack:"idle"`
}

// LongTaskGroup is the blocking time summed for one attribution key.
type LongTaskGroup struct {
	Name     string  `json:"name" yaml:"name" msgpack:"name"`
	Duration float64 `json:"duration" yaml:"duration" msgpack:"duration"`
}

// TimelineEvent is a named instant on the page-load timeline.
type TimelineEvent struct {
	Label string  `json:"label" yaml:"label" msgpack:"label"`
	Time  float64 `json:"time" yaml:"time" msgpack:"time"`
}

// CandidateInfo is the simplified descriptor of the LCP candidate.
// Nil pointers serialize as null.
type CandidateInfo struct {
	URL        *string `json:"url" yaml:"url" msgpack:"url"`
	TagName    *string `json:"tagName" yaml:"tagName" msgpack:"tagName"`
	Size       float64 `json:"size" yaml:"size" msgpack:"size"`
	StartTime  float64 `json:"startTime" yaml:"startTime" msgpack:"startTime"`
	RenderTime float64 `json:"renderTime" yaml:"renderTime" msgpack:"renderTime"`
	LoadTime   float64 `json:"loadTime" yaml:"loadTime" msgpack:"loadTime"`
	ID         *string `json:"id" yaml:"id" msgpack:"id"`
	ClassList  *string `json:"classList" yaml:"classList" msgpack:"classList"`
	Text       *string `json:"text" yaml:"text" msgpack:"text"`
}

// ResourceInfo is the simplified descriptor of the LCP resource.
type ResourceInfo struct {
	Name            string  `json:"name" yaml:"name" msgpack:"name"`
	InitiatorType   string  `json:"initiatorType" yaml:"initiatorType" msgpack:"initiatorType"`
	TransferSize    int64   `json:"transferSize" yaml:"transferSize" msgpack:"transferSize"`
	EncodedBodySize int64   `json:"encodedBodySize" yaml:"encodedBodySize" msgpack:"encodedBodySize"`
	DecodedBodySize int64   `json:"decodedBodySize" yaml:"decodedBodySize" msgpack:"decodedBodySize"`
	StartTime       float64 `json:"startTime" yaml:"startTime" msgpack:"startTime"`
	FetchStart      float64 `json:"fetchStart" yaml:"fetchStart" msgpack:"fetchStart"`
	ResponseStart   float64 `json:"responseStart" yaml:"responseStart" msgpack:"responseStart"`
	ResponseEnd     float64 `json:"responseEnd" yaml:"responseEnd" msgpack:"responseEnd"`
	Duration        float64 `json:"duration" yaml:"duration" msgpack:"duration"`
}

// WeightReport is the full LCP decomposition. It is built fresh for every
// query and never modified afterwards.
type WeightReport struct {
	LCPTime     float64         `json:"lcpTime" yaml:"lcpTime" msgpack:"lcpTime"`
	Candidate   *CandidateInfo  `json:"lcpEntry" yaml:"lcpEntry" msgpack:"lcpEntry"`
	Resource    *ResourceInfo   `json:"resource" yaml:"resource" msgpack:"resource"`
	Weights     Weights         `json:"weights" yaml:"weights" msgpack:"weights"`
	Percentages Percentages     `json:"percentages" yaml:"percentages" msgpack:"percentages"`
	LongTasks   []LongTaskGroup `json:"longTasks" yaml:"longTasks" msgpack:"longTasks"`
	Timeline    []TimelineEvent `json:"timeline" yaml:"timeline" msgpack:"timeline"`
}
