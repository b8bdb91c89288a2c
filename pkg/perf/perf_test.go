package perf

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestPaintCandidate_EffectiveTime(t *testing.T) {
	tests := []struct {
		name      string
		candidate PaintCandidate
		want      float64
	}{
		{"start time wins", PaintCandidate{StartTime: 100, RenderTime: 200, LoadTime: 300}, 100},
		{"render time when start is zero", PaintCandidate{RenderTime: 200, LoadTime: 300}, 200},
		{"load time when start and render are zero", PaintCandidate{LoadTime: 300}, 300},
		{"zero when nothing is set", PaintCandidate{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.candidate.EffectiveTime(); got != tt.want {
				t.Errorf("EffectiveTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimingRecord_AttributionKey(t *testing.T) {
	tests := []struct {
		name   string
		record TimingRecord
		want   string
	}{
		{"no attribution", TimingRecord{}, "unknown"},
		{"name", TimingRecord{Attribution: []Attribution{{Name: "self", ContainerName: "iframe"}}}, "self"},
		{"container fallback", TimingRecord{Attribution: []Attribution{{ContainerName: "ads-frame"}}}, "ads-frame"},
		{"empty first attribution", TimingRecord{Attribution: []Attribution{{}, {Name: "second"}}}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.AttributionKey(); got != tt.want {
				t.Errorf("AttributionKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_MarshalJSON_NoData(t *testing.T) {
	data, err := json.Marshal(NewResult(nil, ErrNoLCPEntry))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"error":"No LCP entry recorded yet."}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestResult_RoundTrip(t *testing.T) {
	url := "https://example.com/hero.jpg"
	original := NewResult(&WeightReport{
		LCPTime:   2000,
		Candidate: &CandidateInfo{URL: &url, Size: 5000, StartTime: 2000},
		Weights:   Weights{NetworkTime: 700, JSBlockingTime: 100, RenderDelay: 700, Idle: 500},
		LongTasks: []LongTaskGroup{{Name: "unknown", Duration: 100}},
		Timeline:  []TimelineEvent{{Label: "LCP", Time: 2000}},
	}, nil)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.OK() {
		t.Fatalf("expected decoded result to carry a report, got err %v", decoded.Err)
	}
	if decoded.Report.Weights != original.Report.Weights {
		t.Errorf("weights = %+v, want %+v", decoded.Report.Weights, original.Report.Weights)
	}
	if decoded.Report.Candidate.TagName != nil {
		t.Errorf("expected nil tagName, got %q", *decoded.Report.Candidate.TagName)
	}

	var noData Result
	if err := json.Unmarshal([]byte(`{"error":"No LCP entry recorded yet."}`), &noData); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !errors.Is(noData.Err, ErrNoLCPEntry) {
		t.Errorf("expected ErrNoLCPEntry, got %v", noData.Err)
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 ms"},
		{999.4, "999 ms"},
		{1234.5, "1,235 ms"},
		{1234567, "1,234,567 ms"},
		{-1500, "-1,500 ms"},
		{math.NaN(), "—"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMs(tt.in); got != tt.want {
				t.Errorf("FormatMs(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "—"},
		{5, "5.0 B"},
		{10, "10 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{20 * 1024, "20 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{5 * 1024 * 1024 * 1024, "5120 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.in); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
