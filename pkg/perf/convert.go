package perf

import "github.com/user/lcpweight/pkg/ports"

// TimingRecordFromEntry converts a longtask entry.
func TimingRecordFromEntry(e ports.Entry) TimingRecord {
	rec := TimingRecord{
		StartTime: e.StartTime,
		Duration:  e.Duration,
	}
	if len(e.Attribution) > 0 {
		rec.Attribution = make([]Attribution, len(e.Attribution))
		for i, a := range e.Attribution {
			rec.Attribution[i] = Attribution{Name: a.Name, ContainerName: a.ContainerName}
		}
	}
	return rec
}

// PaintCandidateFromEntry converts a largest-contentful-paint entry.
func PaintCandidateFromEntry(e ports.Entry) PaintCandidate {
	c := PaintCandidate{
		URL:        e.URL,
		Size:       e.Size,
		StartTime:  e.StartTime,
		RenderTime: e.RenderTime,
		LoadTime:   e.LoadTime,
	}
	if e.Element != nil {
		c.Element = &ElementInfo{
			TagName:     e.Element.TagName,
			ID:          e.Element.ID,
			ClassName:   e.Element.ClassName,
			TextContent: e.Element.TextContent,
		}
	}
	return c
}

// ResourceRecordFromEntry converts a resource entry.
func ResourceRecordFromEntry(e ports.Entry) ResourceRecord {
	return ResourceRecord{
		Name:            e.Name,
		InitiatorType:   e.InitiatorType,
		StartTime:       e.StartTime,
		FetchStart:      e.FetchStart,
		ResponseStart:   e.ResponseStart,
		ResponseEnd:     e.ResponseEnd,
		TransferSize:    e.TransferSize,
		EncodedBodySize: e.EncodedBodySize,
		DecodedBodySize: e.DecodedBodySize,
		Duration:        e.Duration,
	}
}

// NavigationRecordFromEntry converts a navigation entry.
func NavigationRecordFromEntry(e ports.Entry) NavigationRecord {
	return NavigationRecord{
		ResponseStart:    e.ResponseStart,
		ResponseEnd:      e.ResponseEnd,
		DOMContentLoaded: e.DOMContentLoadedEventEnd,
		LoadEventEnd:     e.LoadEventEnd,
	}
}
