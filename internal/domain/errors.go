package domain

import "errors"

// Domain errors represent error conditions in the bridge domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMalformedFrame is reported when a frame decodes to zero durations.
	ErrMalformedFrame = errors.New("irbridge: malformed frame")

	// ErrTransmitFailed is returned when the IR hardware rejects or cannot
	// complete a transmission. The frame's output is lost; it is never fatal.
	ErrTransmitFailed = errors.New("irbridge: transmit failed")

	// ErrLinkUnavailable is returned when the wireless link cannot be activated.
	ErrLinkUnavailable = errors.New("irbridge: link unavailable")

	// ErrQueueClosed is returned when a frame is submitted after shutdown began.
	ErrQueueClosed = errors.New("irbridge: transmit queue closed")

	// ErrAlreadyRunning is returned when Run() is called on a running bridge.
	ErrAlreadyRunning = errors.New("irbridge: already running")

	// ErrNotRunning is returned when a lifecycle transition needs a running bridge.
	ErrNotRunning = errors.New("irbridge: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("irbridge: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("irbridge: invalid configuration")
)
