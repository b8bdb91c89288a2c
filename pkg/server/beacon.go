package server

import (
	"fmt"

	"github.com/user/lcpweight/pkg/adapters/pagescript"
)

// flushIntervalMs is how often the beacon posts queued entries.
const flushIntervalMs = 1000

// BeaconScript returns the client script served at /lcpweight.js. It
// installs the observer bootstrap, opens a session at endpoint and posts
// queued entries until the page is hidden.
func BeaconScript(endpoint string) string {
	return pagescript.Bootstrap + fmt.Sprintf(`
(() => {
  const endpoint = %q;
  const state = window.__lcpweight;
  if (!state || state.beacon) return;
  state.beacon = true;
  let id = null;
  const json = { 'Content-Type': 'application/json' };
  const flush = () => {
    if (!id || state.queue.length === 0) return;
    const url = endpoint + '/api/sessions/' + id + '/entries';
    const body = JSON.stringify(state.queue.splice(0));
    if (document.visibilityState === 'hidden' && navigator.sendBeacon) {
      navigator.sendBeacon(url, new Blob([body], { type: 'application/json' }));
    } else {
      fetch(url, { method: 'POST', headers: json, body, keepalive: true }).catch(() => {});
    }
  };
  fetch(endpoint + '/api/sessions', {
    method: 'POST',
    headers: json,
    body: JSON.stringify({ url: location.href, userAgent: navigator.userAgent, supported: state.supported }),
  }).then((r) => r.json()).then((s) => { id = s.id; state.session = id; flush(); }).catch(() => {});
  setInterval(flush, %d);
  addEventListener('visibilitychange', flush);
  addEventListener('pagehide', flush);
})();
`, endpoint, flushIntervalMs)
}
