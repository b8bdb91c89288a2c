package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lcpweight/pkg/ports"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	id, err := s.Save(ctx, ports.StoredReport{
		URL:        "https://example.com/",
		CapturedAt: at,
		LCPTime:    2000,
		Payload:    []byte(`{"lcpTime":2000}`),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", got.URL)
	assert.Equal(t, 2000.0, got.LCPTime)
	assert.True(t, at.Equal(got.CapturedAt))
	assert.JSONEq(t, `{"lcpTime":2000}`, string(got.Payload))
}

func TestStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ports.ErrReportNotFound)
}

func TestStore_RejectsInvalidPayload(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Save(context.Background(), ports.StoredReport{URL: "https://example.com/", Payload: []byte("not json")})
	assert.Error(t, err)

	_, err = s.Save(context.Background(), ports.StoredReport{Payload: []byte(`{}`)})
	assert.Error(t, err)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, url := range []string{"https://a.example/", "https://b.example/", "https://a.example/", "https://a.example/"} {
		_, err := s.Save(ctx, ports.StoredReport{
			URL:        url,
			CapturedAt: base.Add(time.Duration(i) * time.Minute),
			LCPTime:    float64(1000 + i),
			Payload:    []byte(`{}`),
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	aOnly, err := s.List(ctx, "https://a.example/", 2)
	require.NoError(t, err)
	require.Len(t, aOnly, 2)
	assert.Equal(t, 1003.0, aOnly[0].LCPTime)
	assert.Equal(t, 1002.0, aOnly[1].LCPTime)
}
