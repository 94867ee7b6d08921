package ports

import "context"

// RawTransmitter is the platform's carrier-modulated IR transmit primitive.
type RawTransmitter interface {
	// TransmitRaw emits durations (microseconds, alternating mark/space) on a
	// carrier of carrierHz with the given duty cycle in (0, 1). It blocks until
	// the whole signal has been emitted. extended selects raw variable-timing
	// mode rather than a named remote protocol.
	//
	// Callers must never pass an empty slice and must not call TransmitRaw
	// concurrently.
	TransmitRaw(durations []uint16, extended bool, carrierHz uint32, dutyCycle float64) error

	// Close releases the transmitter. No TransmitRaw may be in flight.
	Close() error
}

// DeviceWatcher reports presence changes of the transmitter device.
type DeviceWatcher interface {
	// Watch blocks until ctx is done, calling fn from its own goroutine
	// whenever the device appears or disappears.
	Watch(ctx context.Context, fn func(present bool)) error
}
