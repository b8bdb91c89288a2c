package resolver

import (
	"testing"

	"github.com/user/lcpweight/pkg/adapters/logger"
	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/ports"
)

func lcp(start, size float64, url string) ports.Entry {
	return ports.Entry{EntryType: ports.KindLCP, StartTime: start, Size: size, URL: url}
}

func resource(name string, fetchStart, responseEnd float64) ports.Entry {
	return ports.Entry{EntryType: ports.KindResource, Name: name, FetchStart: fetchStart, ResponseEnd: responseEnd}
}

func TestResolver_LastCandidateWins(t *testing.T) {
	r := New(memsource.New(), logger.NewNoop())

	r.Observe([]ports.Entry{lcp(800, 90000, "https://example.com/big.jpg")})
	r.Observe([]ports.Entry{lcp(1200, 4000, "https://example.com/small.jpg")})

	got, ok := r.Current()
	if !ok {
		t.Fatal("expected a candidate")
	}
	if got.URL != "https://example.com/small.jpg" {
		t.Errorf("expected the last candidate to win, got %q (size %v)", got.URL, got.Size)
	}
}

func TestResolver_LastOfBatchWins(t *testing.T) {
	r := New(memsource.New(), logger.NewNoop())

	r.Observe([]ports.Entry{
		lcp(500, 100, "first"),
		lcp(900, 50, "second"),
	})
	r.Observe(nil)

	got, _ := r.Current()
	if got.URL != "second" {
		t.Errorf("expected last entry of the batch, got %q", got.URL)
	}
}

func TestResolver_FallsBackToBufferedEntries(t *testing.T) {
	src := memsource.New()
	src.Push(lcp(700, 10, "a"), lcp(1100, 5, "b"))
	r := New(src, logger.NewNoop())

	got, ok := r.Current()
	if !ok {
		t.Fatal("expected buffered candidate")
	}
	if got.URL != "b" {
		t.Errorf("expected last buffered candidate, got %q", got.URL)
	}
}

func TestResolver_NoCandidate(t *testing.T) {
	tests := []struct {
		name   string
		source *memsource.Source
	}{
		{"empty source", memsource.New()},
		{"lcp unsupported", memsource.New(memsource.WithUnsupported(ports.KindLCP))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.source, logger.NewNoop())
			if _, ok := r.Current(); ok {
				t.Error("expected no candidate")
			}
		})
	}
}

func TestResolver_MatchResource(t *testing.T) {
	const hero = "https://example.com/hero.jpg"

	src := memsource.New()
	src.Push(
		resource("https://example.com/app.js", 10, 300),
		resource(hero, 100, 900),
		resource(hero, 950, 1400),
		resource(hero, 1000, 1400),
		resource(hero, 200, 1200),
	)
	r := New(src, logger.NewNoop())

	tests := []struct {
		name        string
		url         string
		wantNil     bool
		wantFetch   float64
		wantRespEnd float64
	}{
		{"latest responseEnd, first on tie", hero, false, 950, 1400},
		{"inline candidate", "", true, 0, 0},
		{"no matching record", "https://example.com/other.png", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Observe([]ports.Entry{lcp(1500, 100, tt.url)})
			c, _ := r.Current()
			got := r.MatchResource(c)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a match")
			}
			if got.FetchStart != tt.wantFetch || got.ResponseEnd != tt.wantRespEnd {
				t.Errorf("got fetchStart=%v responseEnd=%v, want %v/%v",
					got.FetchStart, got.ResponseEnd, tt.wantFetch, tt.wantRespEnd)
			}
		})
	}
}

func TestResolver_MatchResource_ResourcesUnavailable(t *testing.T) {
	src := memsource.New(memsource.WithUnsupported(ports.KindResource))
	r := New(src, logger.NewNoop())

	r.Observe([]ports.Entry{lcp(1000, 1, "https://example.com/a.png")})
	c, _ := r.Current()
	if got := r.MatchResource(c); got != nil {
		t.Errorf("expected nil when resources are unavailable, got %+v", got)
	}
}
