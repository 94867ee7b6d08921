package ports

import "context"

// LinkEventKind classifies a link event.
type LinkEventKind int

const (
	// DataReceived means the peer delivered bytes to us.
	DataReceived LinkEventKind = iota
	// DataSent means bytes we queued have been sent to the peer.
	DataSent
)

// String returns a human-readable representation of the kind.
func (k LinkEventKind) String() string {
	switch k {
	case DataReceived:
		return "DataReceived"
	case DataSent:
		return "DataSent"
	default:
		return "Unknown"
	}
}

// LinkEvent is one notification from the wireless link.
// Buffer is only valid for the duration of the callback.
type LinkEvent struct {
	Kind   LinkEventKind
	Buffer []byte
}

// ReceiveCallback is invoked by the link for every event, from the link's own
// goroutine. Events are delivered one at a time, in arrival order.
type ReceiveCallback func(ev LinkEvent)

// ConnectionCallback is invoked when a peer connects or disconnects.
type ConnectionCallback func(connected bool)

// Link is the wireless serial link subsystem.
type Link interface {
	// Open brings up the radio and the serial service.
	// Returns an error wrapping domain.ErrLinkUnavailable when the link
	// cannot be activated.
	Open(ctx context.Context) error

	// StartAdvertising makes the bridge discoverable.
	StartAdvertising() error

	// RegisterReceiveCallback installs cb. Writes larger than bufferSizeHint
	// bytes are delivered as consecutive chunks of at most that size.
	RegisterReceiveCallback(bufferSizeHint int, cb ReceiveCallback) error

	// UnregisterReceiveCallback removes the callback. When it returns, no
	// callback invocation is in progress and none will start.
	UnregisterReceiveCallback()

	// SetConnectionCallback installs the connect/disconnect observer.
	SetConnectionCallback(cb ConnectionCallback)

	// Close stops advertising and releases the link.
	Close() error
}

// LinkProbe checks whether the link subsystem is usable before Open.
type LinkProbe interface {
	// Check returns nil if the radio is present and powered.
	Check(ctx context.Context) error
}
