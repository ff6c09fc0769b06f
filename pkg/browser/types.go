package browser

import (
	"time"
)

// SessionState describes where a session is in its lifecycle.
type SessionState int

const (
	// StateClosed means no browser resources are held.
	StateClosed SessionState = iota

	// StateOpening means the browser is launching or the initial navigation
	// is in flight.
	StateOpening

	// StateOpen means the page is loaded and events are being captured.
	StateOpen

	// StateClosing means teardown is in progress.
	StateClosing
)

// String returns the lowercase state name.
func (s SessionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Severity classifies a console entry.
type Severity string

const (
	SeverityLog   Severity = "log"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
	SeverityDebug Severity = "debug"
)

// SourceLocation identifies where in the page a console message originated.
type SourceLocation struct {
	URL    string `json:"url,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// ConsoleEntry is one captured console message. Entries are immutable once
// appended; Count is only ever set on snapshot copies when adjacent duplicates
// are coalesced.
type ConsoleEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Severity  Severity        `json:"severity"`
	Text      string          `json:"text"`
	Location  *SourceLocation `json:"location,omitempty"`

	// Count is the number of adjacent identical messages this entry
	// represents. Zero or one means a single occurrence.
	Count int `json:"count,omitempty"`
}

// NetworkResponse holds the response half of a network entry. It is attached
// exactly once, when the matching response event arrives.
type NetworkResponse struct {
	Status     int               `json:"status"`
	StatusText string            `json:"status_text,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`

	// Duration is the wall-clock time between the request and response
	// events, in milliseconds.
	Duration float64 `json:"duration_ms,omitempty"`
}

// NetworkEntry is one captured request. Response is nil while the request is
// pending and set exactly once when the response arrives; no other field
// changes after append.
type NetworkEntry struct {
	RequestID    string            `json:"request_id"`
	Timestamp    time.Time         `json:"timestamp"`
	Method       string            `json:"method"`
	URL          string            `json:"url"`
	ResourceType string            `json:"resource_type,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	PostData     string            `json:"post_data,omitempty"`
	Response     *NetworkResponse  `json:"response,omitempty"`
}

// Pending reports whether the response has not arrived yet.
func (e *NetworkEntry) Pending() bool {
	return e.Response == nil
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// Viewport sets the initial viewport size.
	Viewport *Viewport

	// NavigationTimeout bounds how long Open and Navigate wait for the page.
	NavigationTimeout time.Duration

	// WaitUntil specifies when navigation is considered complete:
	// "load", "domcontentloaded" or "networkidle".
	WaitUntil string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session options and buffer capacities.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultWaitUntil         = "networkidle"
	DefaultViewportWidth     = 1280
	DefaultViewportHeight    = 720
	DefaultMaxConsoleEntries = 5000
	DefaultMaxNetworkEntries = 2000
)
