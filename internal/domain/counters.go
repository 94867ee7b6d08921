package domain

import "sync/atomic"

// Counters accumulates frame statistics. Safe for concurrent use.
type Counters struct {
	framesReceived    atomic.Uint64
	framesMalformed   atomic.Uint64
	framesTransmitted atomic.Uint64
	transmitFailures  atomic.Uint64
	bytesReceived     atomic.Uint64
}

// Stats is a point-in-time copy of Counters.
type Stats struct {
	FramesReceived    uint64 `json:"frames_received"`
	FramesMalformed   uint64 `json:"frames_malformed"`
	FramesTransmitted uint64 `json:"frames_transmitted"`
	TransmitFailures  uint64 `json:"transmit_failures"`
	BytesReceived     uint64 `json:"bytes_received"`
}

// FrameReceived counts one inbound frame of n bytes.
func (c *Counters) FrameReceived(n int) {
	c.framesReceived.Add(1)
	c.bytesReceived.Add(uint64(n))
}

// FrameMalformed counts a frame that decoded to nothing.
func (c *Counters) FrameMalformed() {
	c.framesMalformed.Add(1)
}

// FrameTransmitted counts a completed transmission.
func (c *Counters) FrameTransmitted() {
	c.framesTransmitted.Add(1)
}

// TransmitFailed counts a transmission lost to a hardware fault.
func (c *Counters) TransmitFailed() {
	c.transmitFailures.Add(1)
}

// Snapshot returns the current values.
func (c *Counters) Snapshot() Stats {
	return Stats{
		FramesReceived:    c.framesReceived.Load(),
		FramesMalformed:   c.framesMalformed.Load(),
		FramesTransmitted: c.framesTransmitted.Load(),
		TransmitFailures:  c.transmitFailures.Load(),
		BytesReceived:     c.bytesReceived.Load(),
	}
}
