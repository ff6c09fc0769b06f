package browser

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/lijiahao10086/playwright-monitoring-mcp/pkg/logging"
)

// Session owns one browser instance, one page, and the EventBuffer its
// listeners append to. Lifecycle operations are serialized by the session
// mutex, so a Close issued while an Open is in flight waits for the open
// (bounded by the navigation timeout) and then tears everything down.
type Session struct {
	mu sync.Mutex

	state atomic.Int32

	opts   SessionOptions
	filter *CaptureFilter
	logger *logging.Logger

	buffer *EventBuffer
	bridge *ListenerBridge

	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page

	currentURL string
	createdAt  time.Time
}

// NewSession creates a session in state Closed. The buffer and capture filter
// are owned by the caller's facade and outlive individual open/close cycles
// only through it; each session gets a fresh buffer.
func NewSession(opts SessionOptions, filter *CaptureFilter, buffer *EventBuffer, logger *logging.Logger) *Session {
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultNavigationTimeout
	}
	if opts.WaitUntil == "" {
		opts.WaitUntil = DefaultWaitUntil
	}

	return &Session{
		opts:      opts,
		filter:    filter,
		logger:    logger,
		buffer:    buffer,
		createdAt: time.Now(),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

func (s *Session) setState(state SessionState) {
	s.state.Store(int32(state))
}

// Buffer returns the session's event buffer.
func (s *Session) Buffer() *EventBuffer {
	return s.buffer
}

// CurrentURL returns the URL of the page after the last successful
// navigation, or empty if none has completed.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentURL
}

// Open launches a browser from the given driver, attaches the listener
// bridge, and navigates to url. Valid only from state Closed. On any failure
// after launch the partially opened resources are torn down before the error
// is returned, leaving the session Closed.
func (s *Session) Open(ctx context.Context, pw *playwright.Playwright, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	if state := s.State(); state != StateClosed {
		return fmt.Errorf("%w (state %s)", ErrAlreadyOpen, state)
	}
	s.setState(StateOpening)

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.opts.Headless),
	})
	if err != nil {
		s.setState(StateClosed)
		return fmt.Errorf("%w: launching browser: %v", ErrNavigation, err)
	}
	s.browser = browser

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.opts.Viewport.Width,
			Height: s.opts.Viewport.Height,
		},
	})
	if err != nil {
		s.teardownLocked()
		return fmt.Errorf("%w: creating context: %v", ErrNavigation, err)
	}
	s.browserContext = browserContext

	page, err := browserContext.NewPage()
	if err != nil {
		s.teardownLocked()
		return fmt.Errorf("%w: creating page: %v", ErrNavigation, err)
	}
	s.page = page
	page.SetDefaultTimeout(float64(s.opts.NavigationTimeout.Milliseconds()))

	// Listeners attach before navigation so the initial page load is
	// captured too.
	s.bridge = NewListenerBridge(s.buffer, s.filter)
	if err := s.bridge.Attach(page); err != nil {
		s.teardownLocked()
		return fmt.Errorf("%w: %v", ErrListenerAttach, err)
	}

	if err := s.gotoLocked(url); err != nil {
		s.teardownLocked()
		return err
	}

	s.setState(StateOpen)
	s.logger.Infof("session open: %s", s.currentURL)
	return nil
}

// Navigate loads url in the already-open page. The buffer is preserved:
// navigation traffic lands in it like any other activity.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	if state := s.State(); state != StateOpen {
		return fmt.Errorf("%w (state %s)", ErrNotOpen, state)
	}

	if err := s.gotoLocked(url); err != nil {
		return err
	}
	s.logger.Infof("navigated: %s", s.currentURL)
	return nil
}

// gotoLocked drives the page to url, must be called with mu held.
func (s *Session) gotoLocked(url string) error {
	waitUntil := playwright.WaitUntilState(s.opts.WaitUntil)
	timeout := float64(s.opts.NavigationTimeout.Milliseconds())

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: &waitUntil,
		Timeout:   &timeout,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	s.currentURL = s.page.URL()
	return nil
}

// Close detaches the listener bridge, releases the browser, and discards the
// buffer contents. Idempotent and never fails: teardown faults are logged and
// swallowed so cleanup is never blocked by a secondary fault.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() == StateClosed {
		return
	}
	s.setState(StateClosing)

	consoleEvicted, networkEvicted := s.buffer.Evicted()
	if consoleEvicted > 0 || networkEvicted > 0 {
		s.logger.Infof("buffer evicted %d console / %d network entries over session lifetime", consoleEvicted, networkEvicted)
	}

	s.teardownLocked()
	s.buffer.Clear()
	s.logger.Infof("session closed")
}

// teardownLocked releases engine resources in page-context-browser order,
// leaving the session Closed. Must be called with mu held.
func (s *Session) teardownLocked() {
	if s.bridge != nil {
		s.bridge.Detach()
		s.bridge = nil
	}
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.logger.Warnf("closing page: %v", err)
		}
		s.page = nil
	}
	if s.browserContext != nil {
		if err := s.browserContext.Close(); err != nil {
			s.logger.Warnf("closing context: %v", err)
		}
		s.browserContext = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Warnf("closing browser: %v", err)
		}
		s.browser = nil
	}
	s.currentURL = ""
	s.setState(StateClosed)
}
