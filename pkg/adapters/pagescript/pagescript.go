// Package pagescript holds the in-page performance observer bootstrap shared
// by the browser adapters, and decodes what it reports.
//
// The bootstrap runs before any page script. It observes every supported
// entry kind with buffered replay and queues serialized entries on window.
// Adapters drain the queue with Drain and feed the result to subscribers.
package pagescript

import (
	"fmt"

	"github.com/user/lcpweight/pkg/ports"
)

// Bootstrap installs the observers. It is idempotent per document.
const Bootstrap = `(() => {
  if (window.__lcpweight) return;
  const state = { queue: [], supported: [], loaded: false };
  window.__lcpweight = state;

  const kinds = ['longtask', 'largest-contentful-paint', 'navigation', 'resource'];
  const available = (typeof PerformanceObserver !== 'undefined' && PerformanceObserver.supportedEntryTypes) || [];
  const text = (s) => (s || '').replace(/^\s+(?=\S)/, '').slice(0, 200);

  const serialize = (e) => {
    const out = { name: e.name || '', entryType: e.entryType, startTime: e.startTime || 0, duration: e.duration || 0 };
    switch (e.entryType) {
    case 'longtask':
      out.attribution = Array.from(e.attribution || []).map((a) => ({
        name: a.name || '',
        containerName: a.containerName || '',
        containerType: a.containerType || '',
        containerSrc: a.containerSrc || '',
      }));
      break;
    case 'largest-contentful-paint':
      out.url = e.url || '';
      out.size = e.size || 0;
      out.renderTime = e.renderTime || 0;
      out.loadTime = e.loadTime || 0;
      if (e.element) {
        out.element = {
          tagName: e.element.tagName || '',
          id: e.element.id || '',
          className: typeof e.element.className === 'string' ? e.element.className : '',
          textContent: text(e.element.textContent),
        };
      }
      break;
    case 'navigation':
      out.domContentLoadedEventEnd = e.domContentLoadedEventEnd || 0;
      out.loadEventEnd = e.loadEventEnd || 0;
      // fallthrough
    case 'resource':
      out.initiatorType = e.initiatorType || '';
      out.fetchStart = e.fetchStart || 0;
      out.responseStart = e.responseStart || 0;
      out.responseEnd = e.responseEnd || 0;
      out.transferSize = e.transferSize || 0;
      out.encodedBodySize = e.encodedBodySize || 0;
      out.decodedBodySize = e.decodedBodySize || 0;
      break;
    }
    return out;
  };
  state.serialize = serialize;

  for (const kind of kinds) {
    if (!available.includes(kind)) continue;
    try {
      new PerformanceObserver((list) => {
        for (const e of list.getEntries()) state.queue.push(serialize(e));
      }).observe({ type: kind, buffered: true });
      state.supported.push(kind);
    } catch (err) {}
  }
  addEventListener('load', () => { state.loaded = true; });
})();`

// Drain empties the page queue and returns a Batch.
const Drain = `(() => {
  const s = window.__lcpweight;
  const complete = document.readyState === 'complete';
  if (!s) return { installed: false, loaded: complete, supported: [], entries: [] };
  return { installed: true, loaded: s.loaded || complete, supported: s.supported, entries: s.queue.splice(0) };
})()`

// SupportedTypes evaluates to the host's supported entry types.
const SupportedTypes = `(typeof PerformanceObserver !== 'undefined' && PerformanceObserver.supportedEntryTypes)
  ? Array.from(PerformanceObserver.supportedEntryTypes) : []`

// Batch is the result of evaluating Drain.
type Batch struct {
	Installed bool          `json:"installed"`
	Loaded    bool          `json:"loaded"`
	Supported []string      `json:"supported"`
	Entries   []ports.Entry `json:"entries"`
}

// Query returns an expression that evaluates to the host's buffered entries
// of kind, serialized like observed entries.
func Query(kind ports.EntryKind) string {
	return fmt.Sprintf(`(() => {
  const s = window.__lcpweight;
  return s ? performance.getEntriesByType(%q).map(s.serialize) : [];
})()`, string(kind))
}

// Queryable reports whether kind can be read back with Query.
// Paint candidates and long tasks only reach the page through observers.
func Queryable(kind ports.EntryKind) bool {
	return kind == ports.KindNavigation || kind == ports.KindResource
}

// Unsupported returns the kinds missing from the host's supported types.
func Unsupported(supported []string) []ports.EntryKind {
	have := make(map[string]bool, len(supported))
	for _, s := range supported {
		have[s] = true
	}
	var missing []ports.EntryKind
	for _, kind := range ports.AllKinds {
		if !have[string(kind)] {
			missing = append(missing, kind)
		}
	}
	return missing
}
