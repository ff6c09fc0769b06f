package browser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/logging"
)

// MonitorOptions configures the monitor and the sessions it creates.
type MonitorOptions struct {
	// Session defaults applied to every open.
	Session SessionOptions

	// Capture is the initial network capture configuration.
	Capture CaptureConfig

	// MaxConsoleEntries and MaxNetworkEntries cap the per-session buffers.
	// Zero means the package defaults; negative means unbounded.
	MaxConsoleEntries int
	MaxNetworkEntries int

	// SkipInstall skips the Playwright driver/browser installation step.
	SkipInstall bool
}

// OpenResult reports the outcome of an Open call.
type OpenResult struct {
	URL        string       `json:"url"`
	State      SessionState `json:"-"`
	StateName  string       `json:"state"`
	Navigated  bool         `json:"navigated"`
	FreshStart bool         `json:"fresh_start"`
}

// Monitor is the facade the tool layer talks to. It holds the Playwright
// driver and an explicit, swappable reference to at most one active session;
// the single-session constraint lives here rather than in hidden globals.
//
// Tool operations arrive sequentially (the protocol layer handles one request
// at a time), but page event callbacks interleave freely with them; the
// buffer's locking covers that interleaving, so the monitor itself only
// guards the session reference and driver.
type Monitor struct {
	mu sync.Mutex

	opts    MonitorOptions
	filter  *CaptureFilter
	logger  *logging.Logger
	pw      *playwright.Playwright
	session *Session

	initialized bool
}

// NewMonitor creates a monitor with no active session. Returns an error only
// if the capture configuration is invalid.
func NewMonitor(opts MonitorOptions, logger *logging.Logger) (*Monitor, error) {
	if opts.MaxConsoleEntries == 0 {
		opts.MaxConsoleEntries = DefaultMaxConsoleEntries
	}
	if opts.MaxNetworkEntries == 0 {
		opts.MaxNetworkEntries = DefaultMaxNetworkEntries
	}

	filter, err := NewCaptureFilter(opts.Capture)
	if err != nil {
		return nil, err
	}

	return &Monitor{
		opts:   opts,
		filter: filter,
		logger: logger,
	}, nil
}

// initializeLocked starts the Playwright driver on first use. Must be called
// with mu held.
func (m *Monitor) initializeLocked() error {
	if m.initialized {
		return nil
	}

	// Driver output is discarded so it cannot leak onto the MCP transport.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if !m.opts.SkipInstall {
		if err := playwright.Install(runOpts); err != nil {
			return fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	m.logger.Infof("playwright driver started")
	return nil
}

// Open opens the monitored page at url. With no active session it launches a
// fresh browser; with a session already open it navigates in place and
// preserves the captured history, so repeated open calls are cheap and
// lossless. An explicit ClearLogs resets the buffer when fresh state is
// wanted.
//
// headless overrides the configured default when non-nil.
func (m *Monitor) Open(ctx context.Context, url string, headless *bool) (*OpenResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.session.State() == StateOpen {
		if err := m.session.Navigate(ctx, url); err != nil {
			return nil, err
		}
		return &OpenResult{
			URL:       m.session.CurrentURL(),
			State:     StateOpen,
			StateName: StateOpen.String(),
			Navigated: true,
		}, nil
	}

	if err := m.initializeLocked(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	opts := m.opts.Session
	if headless != nil {
		opts.Headless = *headless
	}

	buffer := NewEventBuffer(m.opts.MaxConsoleEntries, m.opts.MaxNetworkEntries)
	session := NewSession(opts, m.filter, buffer, m.logger)
	if err := session.Open(ctx, m.pw, url); err != nil {
		return nil, err
	}

	m.session = session
	return &OpenResult{
		URL:        session.CurrentURL(),
		State:      StateOpen,
		StateName:  StateOpen.String(),
		FreshStart: true,
	}, nil
}

// ConsoleLogs returns the captured console entries in emission order. When
// lastN is positive only the most recent lastN are returned; when dedupe is
// set, adjacent identical messages coalesce into one entry with a count.
// Fails with ErrNotOpen if no session is open.
func (m *Monitor) ConsoleLogs(lastN int, dedupe bool) ([]ConsoleEntry, error) {
	session, err := m.openSession()
	if err != nil {
		return nil, err
	}

	if dedupe {
		// Coalesce over the full buffer, then trim, so a run of duplicates
		// counts as one entry against lastN.
		entries := CoalesceConsole(session.Buffer().SnapshotConsole(0))
		if lastN > 0 && len(entries) > lastN {
			entries = entries[len(entries)-lastN:]
		}
		return entries, nil
	}
	return session.Buffer().SnapshotConsole(lastN), nil
}

// NetworkRequests returns the captured network entries in arrival order,
// pending ones included. Fails with ErrNotOpen if no session is open.
func (m *Monitor) NetworkRequests(lastN int) ([]NetworkEntry, error) {
	session, err := m.openSession()
	if err != nil {
		return nil, err
	}
	return session.Buffer().SnapshotNetwork(lastN), nil
}

// ClearLogs discards all captured entries for the open session.
func (m *Monitor) ClearLogs() error {
	session, err := m.openSession()
	if err != nil {
		return err
	}
	session.Buffer().Clear()
	m.logger.Infof("buffers cleared")
	return nil
}

// Close closes the active session, if any. Idempotent and never fails.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return
	}
	m.session.Close()
	m.session = nil
}

// State returns the lifecycle state of the active session, or StateClosed
// when there is none.
func (m *Monitor) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return StateClosed
	}
	return m.session.State()
}

// CurrentURL returns the active session's URL, or empty when closed.
func (m *Monitor) CurrentURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return ""
	}
	return m.session.CurrentURL()
}

// ConfigureCapture replaces the network capture configuration. Applies to the
// running session immediately and to future sessions. Fails only if a URL
// pattern does not compile.
func (m *Monitor) ConfigureCapture(cfg CaptureConfig) error {
	if err := m.filter.Update(cfg); err != nil {
		return err
	}
	m.logger.Infof("network capture reconfigured: enabled=%v include=%d exclude=%d", cfg.Enabled, len(cfg.IncludePatterns), len(cfg.ExcludePatterns))
	return nil
}

// CaptureConfig returns the current network capture configuration.
func (m *Monitor) CaptureConfig() CaptureConfig {
	return m.filter.Config()
}

// Shutdown closes the session and stops the Playwright driver. Called once at
// process exit.
func (m *Monitor) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	if m.initialized && m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			m.logger.Warnf("stopping playwright: %v", err)
		}
		m.pw = nil
		m.initialized = false
	}
}

// openSession returns the active session if it is Open.
func (m *Monitor) openSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.State() != StateOpen {
		return nil, fmt.Errorf("%w: call open_browser first", ErrNotOpen)
	}
	return m.session, nil
}
