package browser

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// ListenerBridge subscribes to a page's console and network event streams and
// appends translated entries to the session's EventBuffer. It is the explicit
// subscription handle owned by the session: Attach registers the listeners,
// Detach stops delivery.
//
// playwright-go's page interface offers no public listener removal, so Detach
// flips a flag that makes every handler drop its event; the callbacks
// themselves are disposed with the page when the session closes.
type ListenerBridge struct {
	buffer   *EventBuffer
	filter   *CaptureFilter
	detached atomic.Bool

	mu       sync.Mutex
	requests map[any]pendingRequest
}

// pendingRequest links an engine request object to the buffer entry it
// produced, so the response callback can complete the right entry.
type pendingRequest struct {
	id      string
	started time.Time
}

// NewListenerBridge creates a bridge that appends to the given buffer,
// filtered by the given capture filter.
func NewListenerBridge(buffer *EventBuffer, filter *CaptureFilter) *ListenerBridge {
	return &ListenerBridge{
		buffer:   buffer,
		filter:   filter,
		requests: make(map[any]pendingRequest),
	}
}

// Attach registers exactly one console listener and one request/response
// listener pair on the page.
func (b *ListenerBridge) Attach(page playwright.Page) error {
	if page == nil {
		return ErrListenerAttach
	}

	page.OnConsole(b.handleConsole)
	page.OnRequest(b.handleRequest)
	page.OnResponse(b.handleResponse)
	return nil
}

// Detach stops event delivery. Events arriving after Detach are dropped.
// Idempotent.
func (b *ListenerBridge) Detach() {
	b.detached.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = make(map[any]pendingRequest)
}

func (b *ListenerBridge) handleConsole(msg playwright.ConsoleMessage) {
	var loc *SourceLocation
	if l := msg.Location(); l != nil && (l.URL != "" || l.LineNumber != 0) {
		loc = &SourceLocation{
			URL:    l.URL,
			Line:   l.LineNumber,
			Column: l.ColumnNumber,
		}
	}

	b.recordConsole(msg.Type(), msg.Text(), loc)
}

func (b *ListenerBridge) handleRequest(req playwright.Request) {
	postData := ""
	if b.filter.CapturePostData() {
		if data, err := req.PostData(); err == nil {
			postData = data
		}
	}
	b.recordRequest(req, req.Method(), req.URL(), req.ResourceType(), req.Headers(), postData)
}

func (b *ListenerBridge) handleResponse(resp playwright.Response) {
	b.recordResponse(resp.Request(), resp.Status(), resp.StatusText(), resp.Headers())
}

// recordConsole translates an engine console message into a buffer entry.
// Entries are appended in delivery order, never reordered.
func (b *ListenerBridge) recordConsole(msgType, text string, loc *SourceLocation) {
	if b.detached.Load() {
		return
	}

	b.buffer.AppendConsole(ConsoleEntry{
		Timestamp: time.Now(),
		Severity:  severityFromConsoleType(msgType),
		Text:      text,
		Location:  loc,
	})
}

// recordRequest appends a pending network entry and remembers the engine
// request object so the response callback can find it again.
func (b *ListenerBridge) recordRequest(key any, method, url, resourceType string, headers map[string]string, postData string) {
	if b.detached.Load() {
		return
	}
	if !b.filter.ShouldCapture(url, resourceType) {
		return
	}

	entry := NetworkEntry{
		RequestID:    uuid.NewString(),
		Timestamp:    time.Now(),
		Method:       method,
		URL:          url,
		ResourceType: resourceType,
		Headers:      headers,
		PostData:     postData,
	}

	b.mu.Lock()
	b.requests[key] = pendingRequest{id: entry.RequestID, started: entry.Timestamp}
	b.mu.Unlock()

	b.buffer.AppendNetwork(entry)
}

// recordResponse completes the entry whose request produced key. A response
// whose request was never captured (filtered out, or emitted before the
// listeners attached) is dropped.
func (b *ListenerBridge) recordResponse(key any, status int, statusText string, headers map[string]string) {
	if b.detached.Load() {
		return
	}

	b.mu.Lock()
	pending, ok := b.requests[key]
	if ok {
		delete(b.requests, key)
	}
	b.mu.Unlock()

	if !ok {
		return
	}

	now := time.Now()
	b.buffer.CompleteNetwork(pending.id, NetworkResponse{
		Status:     status,
		StatusText: statusText,
		Headers:    headers,
		Timestamp:  now,
		Duration:   float64(now.Sub(pending.started)) / float64(time.Millisecond),
	})
}

// severityFromConsoleType maps Playwright console message types to entry
// severities. Playwright reports warnings as "warning"; unrecognized types
// collapse to "log".
func severityFromConsoleType(msgType string) Severity {
	switch msgType {
	case "debug":
		return SeverityDebug
	case "info":
		return SeverityInfo
	case "warning", "warn":
		return SeverityWarn
	case "error":
		return SeverityError
	case "log":
		return SeverityLog
	default:
		return SeverityLog
	}
}
