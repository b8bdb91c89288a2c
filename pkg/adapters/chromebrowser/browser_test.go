package chromebrowser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/user/lcpweight/pkg/adapters/logger"
	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/ports"
)

const testPage = `<!doctype html>
<html><body>
<h1 id="headline">Largest text on the page</h1>
<script>
  const end = performance.now() + 120;
  while (performance.now() < end) {}
</script>
</body></html>`

func launchOrSkip(t *testing.T) *Browser {
	t.Helper()
	if os.Getenv("LCPWEIGHT_E2E") == "" {
		t.Skip("set LCPWEIGHT_E2E=1 to run browser tests")
	}
	chromePath := ResolveChromePath("")
	if chromePath == "" {
		t.Skip("Chrome not installed")
	}

	b := New(logger.NewNoop())
	if err := b.Launch(context.Background(), ports.BrowserOptions{ChromePath: chromePath, Headless: true}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBrowser_ObservesPaintAndLongTasks(t *testing.T) {
	b := launchOrSkip(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	var paints, tasks int
	if _, err := b.Subscribe(ports.KindLCP, true, func(e []ports.Entry) { paints += len(e) }); err != nil {
		t.Fatalf("subscribe lcp: %v", err)
	}
	if _, err := b.Subscribe(ports.KindLongTask, true, func(e []ports.Entry) { tasks += len(e) }); err != nil {
		t.Fatalf("subscribe longtask: %v", err)
	}

	if err := b.Navigate(srv.URL); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && paints == 0 {
		if _, err := b.Poll(context.Background()); err != nil {
			t.Fatalf("poll: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	if paints == 0 {
		t.Error("expected at least one paint candidate")
	}
	if tasks == 0 {
		t.Error("expected the busy loop to be reported as a long task")
	}

	nav, err := b.Entries(ports.KindNavigation)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(nav) != 1 || nav[0].ResponseEnd <= 0 {
		t.Errorf("unexpected navigation entries: %+v", nav)
	}
}

func TestBrowser_EntriesFromDrainedTelemetry(t *testing.T) {
	b := New(logger.NewNoop())
	b.telemetry.Push(
		ports.Entry{EntryType: ports.KindLongTask, StartTime: 100, Duration: 80},
		ports.Entry{EntryType: ports.KindResource, Name: "https://example.com/a.png", ResponseEnd: 900},
	)

	tasks, err := b.Entries(ports.KindLongTask)
	if err != nil || len(tasks) != 1 || tasks[0].Duration != 80 {
		t.Errorf("unexpected long tasks: %+v (%v)", tasks, err)
	}

	// Without a page, queryable kinds fall back to what was drained.
	resources, err := b.Entries(ports.KindResource)
	if err != nil || len(resources) != 1 || resources[0].ResponseEnd != 900 {
		t.Errorf("unexpected resources: %+v (%v)", resources, err)
	}
}

func TestBrowser_EntriesUnsupportedKind(t *testing.T) {
	b := New(logger.NewNoop())
	b.telemetry = memsource.New(memsource.WithUnsupported(ports.KindLongTask))

	entries, err := b.Entries(ports.KindLongTask)
	if !errors.Is(err, ports.ErrKindUnsupported) {
		t.Errorf("expected ErrKindUnsupported, got %v", err)
	}
	if entries != nil {
		t.Errorf("expected no entries, got %+v", entries)
	}
}
