// Package memsource provides an in-memory telemetry source fed by Push.
//
// It backs beacon sessions, where a page posts its own performance entries,
// and stands in for a browser in tests.
package memsource

import (
	"fmt"

	"github.com/user/lcpweight/pkg/ports"
)

// Source implements ports.TelemetrySource over entries pushed by the caller.
// Delivery happens synchronously inside Push. Source is not safe for
// concurrent use; callers serialize access.
type Source struct {
	buffered    map[ports.EntryKind][]ports.Entry
	subscribers map[ports.EntryKind][]*subscription
	unsupported map[ports.EntryKind]bool
	nextID      int
}

type subscription struct {
	id      int
	deliver ports.DeliverFunc
}

// Option configures a Source.
type Option func(*Source)

// WithUnsupported makes Subscribe and Entries fail for the given kinds,
// mimicking a host without those observers.
func WithUnsupported(kinds ...ports.EntryKind) Option {
	return func(s *Source) {
		for _, k := range kinds {
			s.unsupported[k] = true
		}
	}
}

// New creates an empty Source.
func New(opts ...Option) *Source {
	s := &Source{
		buffered:    make(map[ports.EntryKind][]ports.Entry),
		subscribers: make(map[ports.EntryKind][]*subscription),
		unsupported: make(map[ports.EntryKind]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push records entries and delivers them to subscribers of their kind.
// Entries of unsupported kinds are dropped. Entries are delivered one batch
// per kind, in first-seen kind order.
func (s *Source) Push(entries ...ports.Entry) {
	var order []ports.EntryKind
	batches := make(map[ports.EntryKind][]ports.Entry)
	for _, e := range entries {
		if s.unsupported[e.EntryType] {
			continue
		}
		if _, ok := batches[e.EntryType]; !ok {
			order = append(order, e.EntryType)
		}
		batches[e.EntryType] = append(batches[e.EntryType], e)
	}

	for _, kind := range order {
		batch := batches[kind]
		s.buffered[kind] = append(s.buffered[kind], batch...)
		for _, sub := range s.subscribers[kind] {
			sub.deliver(clone(batch))
		}
	}
}

// Subscribe implements ports.TelemetrySource.
func (s *Source) Subscribe(kind ports.EntryKind, buffered bool, deliver ports.DeliverFunc) (ports.CancelFunc, error) {
	if s.unsupported[kind] {
		return nil, fmt.Errorf("subscribe %s: %w", kind, ports.ErrKindUnsupported)
	}

	s.nextID++
	sub := &subscription{id: s.nextID, deliver: deliver}
	s.subscribers[kind] = append(s.subscribers[kind], sub)

	if buffered && len(s.buffered[kind]) > 0 {
		deliver(clone(s.buffered[kind]))
	}

	return func() { s.unsubscribe(kind, sub.id) }, nil
}

// Entries implements ports.TelemetrySource.
func (s *Source) Entries(kind ports.EntryKind) ([]ports.Entry, error) {
	if s.unsupported[kind] {
		return nil, fmt.Errorf("query %s: %w", kind, ports.ErrKindUnsupported)
	}
	return clone(s.buffered[kind]), nil
}

// Subscribers returns the number of live subscriptions for kind.
func (s *Source) Subscribers(kind ports.EntryKind) int {
	return len(s.subscribers[kind])
}

func (s *Source) unsubscribe(kind ports.EntryKind, id int) {
	subs := s.subscribers[kind]
	for i, sub := range subs {
		if sub.id == id {
			s.subscribers[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func clone(entries []ports.Entry) []ports.Entry {
	out := make([]ports.Entry, len(entries))
	copy(out, entries)
	return out
}

// Ensure Source implements ports.TelemetrySource
var _ ports.TelemetrySource = (*Source)(nil)
