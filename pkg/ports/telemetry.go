package ports

import "errors"

// EntryKind names a PerformanceObserver entry type.
type EntryKind string

const (
	KindLongTask   EntryKind = "longtask"
	KindLCP        EntryKind = "largest-contentful-paint"
	KindNavigation EntryKind = "navigation"
	KindResource   EntryKind = "resource"
)

// AllKinds lists every entry kind the analyzer consumes.
var AllKinds = []EntryKind{KindLongTask, KindLCP, KindNavigation, KindResource}

// ErrKindUnsupported is returned by Subscribe and Entries when the host
// cannot observe the requested entry kind.
var ErrKindUnsupported = errors.New("entry kind not supported")

// Entry is a raw performance entry as serialized by the browser's toJSON.
// Only the fields relevant to the entry's kind are populated.
type Entry struct {
	Name      string    `json:"name"`
	EntryType EntryKind `json:"entryType"`
	StartTime float64   `json:"startTime"`
	Duration  float64   `json:"duration"`

	// longtask
	Attribution []EntryAttribution `json:"attribution,omitempty"`

	// largest-contentful-paint
	URL        string        `json:"url,omitempty"`
	Size       float64       `json:"size,omitempty"`
	RenderTime float64       `json:"renderTime,omitempty"`
	LoadTime   float64       `json:"loadTime,omitempty"`
	Element    *EntryElement `json:"element,omitempty"`

	// resource and navigation
	InitiatorType   string  `json:"initiatorType,omitempty"`
	FetchStart      float64 `json:"fetchStart,omitempty"`
	ResponseStart   float64 `json:"responseStart,omitempty"`
	ResponseEnd     float64 `json:"responseEnd,omitempty"`
	TransferSize    int64   `json:"transferSize,omitempty"`
	EncodedBodySize int64   `json:"encodedBodySize,omitempty"`
	DecodedBodySize int64   `json:"decodedBodySize,omitempty"`

	// navigation only
	DOMContentLoadedEventEnd float64 `json:"domContentLoadedEventEnd,omitempty"`
	LoadEventEnd             float64 `json:"loadEventEnd,omitempty"`
}

// EntryAttribution is one TaskAttributionTiming of a long task.
type EntryAttribution struct {
	Name          string `json:"name,omitempty"`
	ContainerName string `json:"containerName,omitempty"`
	ContainerType string `json:"containerType,omitempty"`
	ContainerSrc  string `json:"containerSrc,omitempty"`
}

// EntryElement describes the DOM element behind a paint candidate.
// The browser-side bootstrap captures it since DOM nodes do not serialize.
type EntryElement struct {
	TagName     string `json:"tagName,omitempty"`
	ID          string `json:"id,omitempty"`
	ClassName   string `json:"className,omitempty"`
	TextContent string `json:"textContent,omitempty"`
}

// DeliverFunc receives a batch of entries pushed by a TelemetrySource.
type DeliverFunc func(entries []Entry)

// CancelFunc stops a subscription. Calling it more than once is a no-op.
type CancelFunc func()

// TelemetrySource abstracts the host that produces performance entries.
type TelemetrySource interface {
	// Subscribe registers deliver for entries of kind. When buffered is true
	// entries recorded before the call are delivered first.
	// Returns ErrKindUnsupported (possibly wrapped) if the kind cannot be observed.
	Subscribe(kind EntryKind, buffered bool, deliver DeliverFunc) (CancelFunc, error)

	// Entries returns a one-shot snapshot of the buffered entries of kind.
	Entries(kind EntryKind) ([]Entry, error)
}
