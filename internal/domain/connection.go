package domain

import "sync/atomic"

// ConnectionState tracks whether a peer is connected over the wireless link.
// It is written from the link's callback context and read from the display
// loop, so every access goes through atomics.
type ConnectionState struct {
	connected atomic.Bool
}

// Set records the new connection status and reports whether it changed.
func (c *ConnectionState) Set(connected bool) bool {
	return c.connected.Swap(connected) != connected
}

// Connected returns the current connection status.
func (c *ConnectionState) Connected() bool {
	return c.connected.Load()
}

// String returns "connected" or "not connected".
func (c *ConnectionState) String() string {
	if c.Connected() {
		return "connected"
	}
	return "not connected"
}
