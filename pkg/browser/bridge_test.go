package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge(t *testing.T, cfg CaptureConfig) (*ListenerBridge, *EventBuffer) {
	t.Helper()
	filter, err := NewCaptureFilter(cfg)
	require.NoError(t, err)
	buffer := NewEventBuffer(0, 0)
	return NewListenerBridge(buffer, filter), buffer
}

func TestSeverityFromConsoleType(t *testing.T) {
	tests := []struct {
		msgType string
		want    Severity
	}{
		{"log", SeverityLog},
		{"info", SeverityInfo},
		{"warning", SeverityWarn},
		{"warn", SeverityWarn},
		{"error", SeverityError},
		{"debug", SeverityDebug},
		{"trace", SeverityLog},
		{"", SeverityLog},
	}

	for _, tt := range tests {
		t.Run(tt.msgType, func(t *testing.T) {
			assert.Equal(t, tt.want, severityFromConsoleType(tt.msgType))
		})
	}
}

func TestListenerBridge_RecordConsole(t *testing.T) {
	bridge, buffer := newTestBridge(t, DefaultCaptureConfig())

	bridge.recordConsole("log", "hello", nil)
	bridge.recordConsole("error", "boom", &SourceLocation{URL: "https://example.test/app.js", Line: 42})

	entries := buffer.SnapshotConsole(0)
	require.Len(t, entries, 2)
	assert.Equal(t, SeverityLog, entries[0].Severity)
	assert.Equal(t, "hello", entries[0].Text)
	assert.Nil(t, entries[0].Location)
	assert.Equal(t, SeverityError, entries[1].Severity)
	require.NotNil(t, entries[1].Location)
	assert.Equal(t, 42, entries[1].Location.Line)
}

func TestListenerBridge_RequestResponseCorrelation(t *testing.T) {
	bridge, buffer := newTestBridge(t, DefaultCaptureConfig())

	key := "engine-request-1"
	bridge.recordRequest(key, "GET", "https://example.test/api", "xhr", map[string]string{"accept": "application/json"}, "")

	entries := buffer.SnapshotNetwork(0)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Pending())
	requestID := entries[0].RequestID
	assert.NotEmpty(t, requestID)

	bridge.recordResponse(key, 200, "OK", map[string]string{"content-type": "application/json"})

	entries = buffer.SnapshotNetwork(0)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Response)
	assert.Equal(t, 200, entries[0].Response.Status)
	assert.Equal(t, "OK", entries[0].Response.StatusText)
	assert.Equal(t, requestID, entries[0].RequestID)
	assert.GreaterOrEqual(t, entries[0].Response.Duration, 0.0)
}

func TestListenerBridge_UnmatchedResponseDropped(t *testing.T) {
	bridge, buffer := newTestBridge(t, DefaultCaptureConfig())

	// Response for a request emitted before the listeners attached.
	bridge.recordResponse("never-seen", 200, "OK", nil)

	assert.Empty(t, buffer.SnapshotNetwork(0))
}

func TestListenerBridge_ResponseForSameKeyOnlyOnce(t *testing.T) {
	bridge, buffer := newTestBridge(t, DefaultCaptureConfig())

	key := "engine-request-1"
	bridge.recordRequest(key, "GET", "https://example.test/", "document", nil, "")
	bridge.recordResponse(key, 301, "Moved Permanently", nil)
	bridge.recordResponse(key, 200, "OK", nil)

	entries := buffer.SnapshotNetwork(0)
	require.Len(t, entries, 1)
	assert.Equal(t, 301, entries[0].Response.Status)
}

func TestListenerBridge_FilterApplied(t *testing.T) {
	bridge, buffer := newTestBridge(t, CaptureConfig{
		Enabled:      true,
		ExcludeTypes: []string{"image"},
	})

	bridge.recordRequest("r1", "GET", "https://example.test/logo.png", "image", nil, "")
	bridge.recordRequest("r2", "GET", "https://example.test/api", "xhr", nil, "")

	// The filtered request's response must also be dropped.
	bridge.recordResponse("r1", 200, "OK", nil)

	entries := buffer.SnapshotNetwork(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.test/api", entries[0].URL)
}

func TestListenerBridge_DetachStopsDelivery(t *testing.T) {
	bridge, buffer := newTestBridge(t, DefaultCaptureConfig())

	bridge.recordConsole("log", "before detach", nil)
	bridge.recordRequest("r1", "GET", "https://example.test/", "document", nil, "")

	bridge.Detach()

	bridge.recordConsole("log", "after detach", nil)
	bridge.recordRequest("r2", "GET", "https://example.test/late", "xhr", nil, "")
	bridge.recordResponse("r1", 200, "OK", nil)

	require.Len(t, buffer.SnapshotConsole(0), 1)
	entries := buffer.SnapshotNetwork(0)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Pending())
}

func TestListenerBridge_DetachIdempotent(t *testing.T) {
	bridge, _ := newTestBridge(t, DefaultCaptureConfig())
	bridge.Detach()
	bridge.Detach()
}

func TestListenerBridge_AttachNilPage(t *testing.T) {
	bridge, _ := newTestBridge(t, DefaultCaptureConfig())
	err := bridge.Attach(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListenerAttach)
}
