package server

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/adapters/pagescript"
	"github.com/user/lcpweight/pkg/analyzer"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrTooManySessions is returned when the session limit is reached.
var ErrTooManySessions = errors.New("too many sessions")

// DefaultMaxSessions limits concurrent beacon sessions.
const DefaultMaxSessions = 1000

// SessionInfo describes a beacon session.
type SessionInfo struct {
	ID          string    `json:"id" msgpack:"id"`
	URL         string    `json:"url" msgpack:"url"`
	UserAgent   string    `json:"userAgent,omitempty" msgpack:"userAgent,omitempty"`
	CreatedAt   time.Time `json:"createdAt" msgpack:"createdAt"`
	LastSeen    time.Time `json:"lastSeen" msgpack:"lastSeen"`
	Entries     int       `json:"entries" msgpack:"entries"`
	Unsupported []string  `json:"unsupported,omitempty" msgpack:"unsupported,omitempty"`
}

type session struct {
	info     SessionInfo
	source   *memsource.Source
	analyzer *analyzer.Analyzer
}

// Manager holds one analyzer per beacon session. Each session owns its own
// telemetry source, so sessions never observe each other's entries.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	opts     analyzer.Options
	max      int
	logger   ports.Logger
	now      func() time.Time
}

// NewManager creates a Manager. max <= 0 selects DefaultMaxSessions.
func NewManager(logger ports.Logger, opts analyzer.Options, max int) *Manager {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Manager{
		sessions: make(map[string]*session),
		opts:     opts,
		max:      max,
		logger:   logger.WithComponent("sessions"),
		now:      time.Now,
	}
}

// Create starts a session for a page. supported lists the entry types the
// page can observe; an empty list assumes all kinds are observable.
func (m *Manager) Create(url, userAgent string, supported []string) (SessionInfo, error) {
	var opts []memsource.Option
	var unsupported []string
	if len(supported) > 0 {
		missing := pagescript.Unsupported(supported)
		for _, kind := range missing {
			unsupported = append(unsupported, string(kind))
		}
		opts = append(opts, memsource.WithUnsupported(missing...))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.max {
		return SessionInfo{}, ErrTooManySessions
	}

	now := m.now()
	src := memsource.New(opts...)
	s := &session{
		info: SessionInfo{
			ID:          uuid.New().String(),
			URL:         url,
			UserAgent:   userAgent,
			CreatedAt:   now,
			LastSeen:    now,
			Unsupported: unsupported,
		},
		source:   src,
		analyzer: analyzer.New(src, m.logger, m.opts),
	}
	m.sessions[s.info.ID] = s

	m.logger.Debug("Session %s started for %s", s.info.ID, url)
	return s.info, nil
}

// Push delivers entries to the session's analyzer and returns the total
// number of entries received so far.
func (m *Manager) Push(id string, entries []ports.Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return 0, fmt.Errorf("push %s: %w", id, ErrSessionNotFound)
	}
	s.source.Push(entries...)
	s.info.Entries += len(entries)
	s.info.LastSeen = m.now()
	return s.info.Entries, nil
}

// Result assembles the session's current report.
func (m *Manager) Result(id string) (perf.Result, SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return perf.Result{}, SessionInfo{}, fmt.Errorf("report %s: %w", id, ErrSessionNotFound)
	}
	return s.analyzer.Result(), s.info, nil
}

// Close ends a session and returns its final result.
func (m *Manager) Close(id string) (perf.Result, SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return perf.Result{}, SessionInfo{}, fmt.Errorf("close %s: %w", id, ErrSessionNotFound)
	}
	result := s.analyzer.Result()
	m.removeLocked(id)
	return result, s.info, nil
}

// List returns all sessions, most recently seen first.
func (m *Manager) List() []SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastSeen.After(out[j].LastSeen)
	})
	return out
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cleanup removes sessions idle for longer than maxAge and returns how many
// were removed.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, s := range m.sessions {
		if s.info.LastSeen.Before(cutoff) {
			m.removeLocked(id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("Removed %d idle sessions", removed)
	}
	return removed
}

func (m *Manager) removeLocked(id string) {
	if s, ok := m.sessions[id]; ok {
		s.analyzer.Close()
		delete(m.sessions, id)
	}
}
