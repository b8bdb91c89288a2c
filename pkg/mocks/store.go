package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/lcpweight/pkg/ports"
)

// ReportStore is an in-memory implementation of ports.ReportStore.
type ReportStore struct {
	mu      sync.Mutex
	reports []ports.StoredReport

	SaveFunc func(ctx context.Context, report ports.StoredReport) (int64, error)
	Closed   bool
}

// NewReportStore creates an empty mock ReportStore.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (m *ReportStore) Save(ctx context.Context, report ports.StoredReport) (int64, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = int64(len(m.reports) + 1)
	m.reports = append(m.reports, report)
	return report.ID, nil
}

func (m *ReportStore) List(ctx context.Context, url string, limit int) ([]ports.StoredReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.StoredReport
	for i := len(m.reports) - 1; i >= 0; i-- {
		if url != "" && m.reports[i].URL != url {
			continue
		}
		out = append(out, m.reports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *ReportStore) Get(ctx context.Context, id int64) (*ports.StoredReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ID == id {
			r := m.reports[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("report %d: %w", id, ports.ErrReportNotFound)
}

func (m *ReportStore) Close() error {
	m.Closed = true
	return nil
}

var _ ports.ReportStore = (*ReportStore)(nil)
