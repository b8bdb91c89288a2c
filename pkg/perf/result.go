package perf

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoLCPEntry is returned when no paint candidate has been observed, live
// or buffered. It is the only domain error of the analyzer.
var ErrNoLCPEntry = errors.New("No LCP entry recorded yet.")

// ErrorPayload is the wire form of a report that could not be produced.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error" msgpack:"error"`
}

// Result is either a report or the reason there is none. Its serialized form
// is the report itself, or exactly {"error": "..."}.
type Result struct {
	Report *WeightReport
	Err    error
}

// NewResult wraps the return values of an analyzer query.
func NewResult(report *WeightReport, err error) Result {
	return Result{Report: report, Err: err}
}

// OK reports whether the result carries a report.
func (r Result) OK() bool {
	return r.Err == nil && r.Report != nil
}

// Payload returns the value to serialize: *WeightReport or ErrorPayload.
func (r Result) Payload() interface{} {
	if r.OK() {
		return r.Report
	}
	return r.errorPayload()
}

func (r Result) errorPayload() ErrorPayload {
	if r.Err == nil {
		return ErrorPayload{Error: ErrNoLCPEntry.Error()}
	}
	return ErrorPayload{Error: r.Err.Error()}
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Payload())
}

// UnmarshalJSON implements json.Unmarshaler. A payload with a non-empty
// "error" field decodes into Err; anything else into Report.
func (r *Result) UnmarshalJSON(data []byte) error {
	var probe ErrorPayload
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	if probe.Error != "" {
		r.Report = nil
		if probe.Error == ErrNoLCPEntry.Error() {
			r.Err = ErrNoLCPEntry
		} else {
			r.Err = errors.New(probe.Error)
		}
		return nil
	}

	var report WeightReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("decode report: %w", err)
	}
	r.Report = &report
	r.Err = nil
	return nil
}
