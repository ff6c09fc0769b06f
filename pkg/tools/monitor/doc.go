// Package monitor exposes the browser event aggregator as protocol tools.
//
// Seven tools operate on a single shared browser.Monitor:
//
//   - open_browser: open (or re-navigate) the monitored page
//   - get_console_logs: snapshot captured console messages
//   - get_network_requests: snapshot captured network requests
//   - close_browser: tear the session down (idempotent)
//   - clear_logs: discard captured history without closing
//   - configure_network_capture: adjust what network traffic is recorded
//   - get_network_capture_config: read the current capture configuration
//
// Each tool parses its JSON arguments, validates them, delegates to the
// monitor, and formats a plain-data result. Session-state preconditions are
// enforced by the monitor; tools translate nothing and retry nothing.
package monitor
