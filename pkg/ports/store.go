package ports

import (
	"context"
	"errors"
	"time"
)

// ErrReportNotFound is returned by ReportStore.Get for an unknown id.
var ErrReportNotFound = errors.New("report not found")

// StoredReport is one persisted analysis run.
type StoredReport struct {
	ID         int64
	URL        string
	CapturedAt time.Time
	LCPTime    float64
	// Payload is the JSON encoding of the report.
	Payload []byte
}

// ReportStore persists analysis results for later comparison.
type ReportStore interface {
	Save(ctx context.Context, report StoredReport) (int64, error)

	// List returns the most recent reports for url, newest first.
	// An empty url lists reports for all pages.
	List(ctx context.Context, url string, limit int) ([]StoredReport, error)

	Get(ctx context.Context, id int64) (*StoredReport, error)

	Close() error
}
