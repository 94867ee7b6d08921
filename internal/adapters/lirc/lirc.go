// Package lirc drives a Linux LIRC transmitter (/dev/lircN) in pulse mode.
package lirc

import (
	"encoding/binary"
	"time"
)

// ioctl requests and feature bits from <linux/lirc.h>.
const (
	lircGetFeatures      = 0x80046900
	lircSetSendMode      = 0x40046911
	lircSetSendCarrier   = 0x40046913
	lircSetSendDutyCycle = 0x40046915

	lircModePulse = 0x00000002

	lircCanSendPulse        = lircModePulse
	lircCanSetSendCarrier   = 0x00000100
	lircCanSetSendDutyCycle = 0x00000200
)

// DefaultDevice is the transmitter node used when none is configured.
const DefaultDevice = "/dev/lirc0"

// device is an open LIRC character device.
type device interface {
	Features() (uint32, error)
	SetInt(req uint, value int) error
	Write(p []byte) (int, error)
	Close() error
}

// encodePulses converts alternating mark/space durations into the pulse
// payload LIRC expects: native-endian uint32 microseconds, starting and
// ending with a mark. A trailing space cannot be written, so it is returned
// as a gap for the caller to wait out.
func encodePulses(durations []uint16) ([]byte, time.Duration) {
	n := len(durations)
	var gap time.Duration
	if n > 0 && n%2 == 0 {
		gap = time.Duration(durations[n-1]) * time.Microsecond
		n--
	}

	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		binary.NativeEndian.PutUint32(buf[4*i:], uint32(durations[i]))
	}
	return buf, gap
}

// dutyPercent converts a 0..1 duty cycle into the percentage LIRC takes.
func dutyPercent(duty float64) int {
	p := int(duty*100 + 0.5)
	switch {
	case p < 1:
		return 1
	case p > 99:
		return 99
	default:
		return p
	}
}
