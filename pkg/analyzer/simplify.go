package analyzer

import (
	"strings"

	"github.com/user/lcpweight/pkg/perf"
)

const ellipsis = "..."

// SimplifyCandidate builds the report descriptor for a paint candidate.
// Empty strings become nil. Non-empty element text is trimmed and truncated
// to textLimit characters, so whitespace-only text becomes "".
func SimplifyCandidate(c perf.PaintCandidate, textLimit int) *perf.CandidateInfo {
	info := &perf.CandidateInfo{
		URL:        optional(c.URL),
		Size:       c.Size,
		StartTime:  c.StartTime,
		RenderTime: c.RenderTime,
		LoadTime:   c.LoadTime,
	}
	if el := c.Element; el != nil {
		info.TagName = optional(el.TagName)
		info.ID = optional(el.ID)
		info.ClassList = optional(el.ClassName)
		if el.TextContent != "" {
			text := Truncate(strings.TrimSpace(el.TextContent), textLimit)
			info.Text = &text
		}
	}
	return info
}

// SimplifyResource builds the report descriptor for the LCP resource.
func SimplifyResource(r *perf.ResourceRecord) *perf.ResourceInfo {
	if r == nil {
		return nil
	}
	return &perf.ResourceInfo{
		Name:            r.Name,
		InitiatorType:   r.InitiatorType,
		TransferSize:    r.TransferSize,
		EncodedBodySize: r.EncodedBodySize,
		DecodedBodySize: r.DecodedBodySize,
		StartTime:       r.StartTime,
		FetchStart:      r.FetchStart,
		ResponseStart:   r.ResponseStart,
		ResponseEnd:     r.ResponseEnd,
		Duration:        r.Duration,
	}
}

// Truncate shortens s to at most limit characters, replacing the tail with
// "..." when it had to cut. Characters are runes, not UTF-16 code units, so
// text outside the Basic Multilingual Plane is cut later than in a browser.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
