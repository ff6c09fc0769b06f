package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/logging"
)

func newTestMonitor(t *testing.T) *Monitor {
	t.Helper()
	monitor, err := NewMonitor(MonitorOptions{Capture: DefaultCaptureConfig()}, logging.NewNop())
	require.NoError(t, err)
	return monitor
}

func TestNewMonitor_DefaultCaps(t *testing.T) {
	monitor := newTestMonitor(t)
	assert.Equal(t, DefaultMaxConsoleEntries, monitor.opts.MaxConsoleEntries)
	assert.Equal(t, DefaultMaxNetworkEntries, monitor.opts.MaxNetworkEntries)
}

func TestNewMonitor_InvalidCapture(t *testing.T) {
	_, err := NewMonitor(MonitorOptions{
		Capture: CaptureConfig{Enabled: true, IncludePatterns: []string{"[unclosed"}},
	}, logging.NewNop())
	require.Error(t, err)
}

func TestMonitor_QueriesBeforeOpenFailNotOpen(t *testing.T) {
	monitor := newTestMonitor(t)

	_, err := monitor.ConsoleLogs(0, true)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.Equal(t, "NotOpenError", Kind(err))

	_, err = monitor.NetworkRequests(0)
	assert.ErrorIs(t, err, ErrNotOpen)

	err = monitor.ClearLogs()
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestMonitor_CloseIdempotent(t *testing.T) {
	monitor := newTestMonitor(t)

	monitor.Close()
	monitor.Close()
	assert.Equal(t, StateClosed, monitor.State())
	assert.Empty(t, monitor.CurrentURL())
}

func TestMonitor_ConfigureCapture(t *testing.T) {
	monitor := newTestMonitor(t)

	cfg := monitor.CaptureConfig()
	assert.True(t, cfg.Enabled)

	cfg.Enabled = false
	cfg.ExcludeTypes = []string{"image"}
	require.NoError(t, monitor.ConfigureCapture(cfg))

	got := monitor.CaptureConfig()
	assert.False(t, got.Enabled)
	assert.Equal(t, []string{"image"}, got.ExcludeTypes)
}

func TestMonitor_ConfigureCaptureInvalidPattern(t *testing.T) {
	monitor := newTestMonitor(t)

	cfg := monitor.CaptureConfig()
	cfg.IncludePatterns = []string{"[unclosed"}
	err := monitor.ConfigureCapture(cfg)
	require.Error(t, err)

	// Previous configuration untouched.
	assert.Empty(t, monitor.CaptureConfig().IncludePatterns)
}

func TestMonitor_ShutdownWithoutInitialize(t *testing.T) {
	monitor := newTestMonitor(t)
	monitor.Shutdown()
	assert.Equal(t, StateClosed, monitor.State())
}

func TestSession_InitialState(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)
	session := NewSession(SessionOptions{}, filter, NewEventBuffer(0, 0), logging.NewNop())

	assert.Equal(t, StateClosed, session.State())
	assert.Empty(t, session.CurrentURL())
}

func TestSession_Defaults(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)
	session := NewSession(SessionOptions{}, filter, NewEventBuffer(0, 0), logging.NewNop())

	assert.Equal(t, DefaultNavigationTimeout, session.opts.NavigationTimeout)
	assert.Equal(t, DefaultWaitUntil, session.opts.WaitUntil)
	require.NotNil(t, session.opts.Viewport)
	assert.Equal(t, DefaultViewportWidth, session.opts.Viewport.Width)
}

func TestSession_NavigateWhenClosed(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)
	session := NewSession(SessionOptions{}, filter, NewEventBuffer(0, 0), logging.NewNop())

	err = session.Navigate(context.Background(), "https://example.test/")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestSession_CloseWhenClosedIsNoop(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)
	session := NewSession(SessionOptions{}, filter, NewEventBuffer(0, 0), logging.NewNop())

	session.Close()
	session.Close()
	assert.Equal(t, StateClosed, session.State())
}

func TestSession_OpenWithCancelledContext(t *testing.T) {
	filter, err := NewCaptureFilter(DefaultCaptureConfig())
	require.NoError(t, err)
	session := NewSession(SessionOptions{}, filter, NewEventBuffer(0, 0), logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = session.Open(ctx, nil, "https://example.test/")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)
	assert.Equal(t, StateClosed, session.State())
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "opening", StateOpening.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closing", StateClosing.String())
	assert.Equal(t, "unknown", SessionState(99).String())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "AlreadyOpenError", Kind(ErrAlreadyOpen))
	assert.Equal(t, "NotOpenError", Kind(ErrNotOpen))
	assert.Equal(t, "NavigationError", Kind(ErrNavigation))
	assert.Equal(t, "ListenerAttachError", Kind(ErrListenerAttach))
	assert.Equal(t, "InternalError", Kind(assert.AnError))
}
