// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/lcpweight/pkg/adapters/memsource"
	"github.com/user/lcpweight/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
// Telemetry calls fall through to an in-memory source, so PollFunc can feed
// entries with b.Telemetry.Push.
type Browser struct {
	Telemetry *memsource.Source

	LaunchFunc               func(ctx context.Context, opts ports.BrowserOptions) error
	NavigateFunc             func(url string) error
	SetNetworkConditionsFunc func(conditions ports.NetworkConditions) error
	SetCPUThrottlingFunc     func(rate float64) error
	PollFunc                 func(ctx context.Context) (bool, error)
	GetPageInfoFunc          func() (*ports.PageInfo, error)
	CloseFunc                func() error

	// Recorded calls for verification
	LaunchOptions ports.BrowserOptions
	NavigatedURL  string
	PollCalls     int
	Closed        bool
}

// NewBrowser creates a mock Browser backed by a fresh in-memory source.
func NewBrowser(opts ...memsource.Option) *Browser {
	return &Browser{Telemetry: memsource.New(opts...)}
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	m.LaunchOptions = opts
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) Navigate(url string) error {
	m.NavigatedURL = url
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Browser) SetNetworkConditions(conditions ports.NetworkConditions) error {
	if m.SetNetworkConditionsFunc != nil {
		return m.SetNetworkConditionsFunc(conditions)
	}
	return nil
}

func (m *Browser) SetCPUThrottling(rate float64) error {
	if m.SetCPUThrottlingFunc != nil {
		return m.SetCPUThrottlingFunc(rate)
	}
	return nil
}

func (m *Browser) Poll(ctx context.Context) (bool, error) {
	m.PollCalls++
	if m.PollFunc != nil {
		return m.PollFunc(ctx)
	}
	return true, nil
}

func (m *Browser) GetPageInfo() (*ports.PageInfo, error) {
	if m.GetPageInfoFunc != nil {
		return m.GetPageInfoFunc()
	}
	return &ports.PageInfo{Title: "Test Page", URL: m.NavigatedURL}, nil
}

func (m *Browser) Close() error {
	m.Closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *Browser) Subscribe(kind ports.EntryKind, buffered bool, deliver ports.DeliverFunc) (ports.CancelFunc, error) {
	return m.Telemetry.Subscribe(kind, buffered, deliver)
}

func (m *Browser) Entries(kind ports.EntryKind) ([]ports.Entry, error) {
	return m.Telemetry.Entries(kind)
}

var _ ports.Browser = (*Browser)(nil)
