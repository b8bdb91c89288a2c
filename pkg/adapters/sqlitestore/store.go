// Package sqlitestore persists analysis results in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/user/lcpweight/pkg/ports"
	_ "modernc.org/sqlite" // CGO-free SQLite
)

const schema = `
CREATE TABLE IF NOT EXISTS reports(
  id           INTEGER PRIMARY KEY,
  ts_utc       INTEGER NOT NULL,
  ts_iso       TEXT    NOT NULL,
  url          TEXT    NOT NULL,
  lcp_time     REAL    NOT NULL,
  payload_json TEXT    NOT NULL CHECK (json_valid(payload_json))
);
CREATE INDEX IF NOT EXISTS idx_reports_url_ts ON reports(url, ts_utc);
`

// Store implements ports.ReportStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Save implements ports.ReportStore.
func (s *Store) Save(ctx context.Context, r ports.StoredReport) (int64, error) {
	if r.URL == "" {
		return 0, fmt.Errorf("save report: url cannot be empty")
	}
	if r.CapturedAt.IsZero() {
		r.CapturedAt = time.Now()
	}
	at := r.CapturedAt.UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reports(ts_utc, ts_iso, url, lcp_time, payload_json) VALUES(?,?,?,?,json(?))`,
		at.UnixMilli(), at.Format(time.RFC3339Nano), r.URL, r.LCPTime, string(r.Payload))
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read report id: %w", err)
	}
	return id, nil
}

// List implements ports.ReportStore.
func (s *Store) List(ctx context.Context, url string, limit int) ([]ports.StoredReport, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT id, ts_utc, url, lcp_time, payload_json FROM reports`
	args := []interface{}{}
	if url != "" {
		query += ` WHERE url = ?`
		args = append(args, url)
	}
	query += ` ORDER BY ts_utc DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []ports.StoredReport
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// Get implements ports.ReportStore.
func (s *Store) Get(ctx context.Context, id int64) (*ports.StoredReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, ts_utc, url, lcp_time, payload_json FROM reports WHERE id = ?`, id)
	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d: %w", id, ports.ErrReportNotFound)
	}
	return r, err
}

// Close implements ports.ReportStore.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(row scanner) (*ports.StoredReport, error) {
	var (
		r       ports.StoredReport
		tsUTC   int64
		payload string
	)
	if err := row.Scan(&r.ID, &tsUTC, &r.URL, &r.LCPTime, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	r.CapturedAt = time.UnixMilli(tsUTC).UTC()
	r.Payload = []byte(payload)
	return &r, nil
}

// Ensure Store implements ports.ReportStore
var _ ports.ReportStore = (*Store)(nil)
