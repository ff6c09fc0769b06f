package browser

import (
	"errors"
)

// Sentinel errors for the session state machine. Callers match with
// errors.Is; the protocol layer maps them to structured kinds via Kind.
var (
	// ErrAlreadyOpen is returned when open is invoked while the session is
	// mid-transition and cannot accept a new open.
	ErrAlreadyOpen = errors.New("browser session already open")

	// ErrNotOpen is returned by query operations when no session is open.
	ErrNotOpen = errors.New("no browser session open")

	// ErrNavigation is returned when the target URL is unreachable, invalid,
	// or navigation timed out.
	ErrNavigation = errors.New("navigation failed")

	// ErrListenerAttach is returned when page listeners could not be
	// registered. It is fatal to open and triggers session teardown.
	ErrListenerAttach = errors.New("failed to attach page listeners")
)

// Kind maps an error to its structured kind name for protocol serialization.
// Unrecognized errors report as "InternalError".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyOpen):
		return "AlreadyOpenError"
	case errors.Is(err, ErrNotOpen):
		return "NotOpenError"
	case errors.Is(err, ErrNavigation):
		return "NavigationError"
	case errors.Is(err, ErrListenerAttach):
		return "ListenerAttachError"
	default:
		return "InternalError"
	}
}
