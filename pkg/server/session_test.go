package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lcpweight/pkg/adapters/logger"
	"github.com/user/lcpweight/pkg/analyzer"
	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

func workedExample() []ports.Entry {
	return []ports.Entry{
		{EntryType: ports.KindNavigation, Name: "https://example.com/", ResponseEnd: 1250},
		{EntryType: ports.KindResource, Name: "https://example.com/hero.jpg", InitiatorType: "img", FetchStart: 500, ResponseEnd: 1200},
		{EntryType: ports.KindLongTask, StartTime: 1300, Duration: 100},
		{EntryType: ports.KindLCP, StartTime: 2000, URL: "https://example.com/hero.jpg"},
	}
}

func newTestManager(max int) *Manager {
	return NewManager(logger.NewNoop(), analyzer.DefaultOptions(), max)
}

func TestManager_PushAndResult(t *testing.T) {
	m := newTestManager(0)
	info, err := m.Create("https://example.com/", "test", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)

	total, err := m.Push(info.ID, workedExample())
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	result, got, err := m.Result(info.ID)
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, perf.Weights{NetworkTime: 700, JSBlockingTime: 100, RenderDelay: 700, Idle: 500}, result.Report.Weights)
	assert.Equal(t, 4, got.Entries)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := newTestManager(0)
	a, err := m.Create("https://a.example/", "", nil)
	require.NoError(t, err)
	b, err := m.Create("https://b.example/", "", nil)
	require.NoError(t, err)

	_, err = m.Push(a.ID, workedExample())
	require.NoError(t, err)

	result, _, err := m.Result(b.ID)
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, perf.ErrNoLCPEntry)
}

func TestManager_UnsupportedKinds(t *testing.T) {
	m := newTestManager(0)
	info, err := m.Create("https://example.com/", "", []string{"largest-contentful-paint", "navigation", "resource"})
	require.NoError(t, err)
	assert.Equal(t, []string{"longtask"}, info.Unsupported)

	_, err = m.Push(info.ID, workedExample())
	require.NoError(t, err)

	result, _, err := m.Result(info.ID)
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Zero(t, result.Report.Weights.JSBlockingTime)
}

func TestManager_UnknownSession(t *testing.T) {
	m := newTestManager(0)

	_, err := m.Push("missing", nil)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	_, _, err = m.Result("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, _, err = m.Close("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Limit(t *testing.T) {
	m := newTestManager(1)
	_, err := m.Create("https://example.com/", "", nil)
	require.NoError(t, err)

	_, err = m.Create("https://example.com/", "", nil)
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestManager_CloseAndCleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(0)
	m.now = func() time.Time { return now }

	stale, err := m.Create("https://stale.example/", "", nil)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	fresh, err := m.Create("https://fresh.example/", "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Cleanup(2*time.Minute))
	_, _, err = m.Result(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Push(fresh.ID, workedExample())
	require.NoError(t, err)
	result, info, err := m.Close(fresh.ID)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "https://fresh.example/", info.URL)
	assert.Equal(t, 0, m.Len())
}
