package lirc

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/irbridge/internal/ports"
)

// ErrExtendedRequired is returned for non-extended transmissions, which LIRC
// has no equivalent for.
var ErrExtendedRequired = errors.New("lirc: only extended timing is supported")

// Transmitter implements ports.RawTransmitter. The device is opened on first
// use and reopened after any I/O failure, so a replugged dongle recovers
// without a restart.
type Transmitter struct {
	path   string
	logger ports.Logger

	open  func(path string) (device, error)
	sleep func(time.Duration)

	mu       sync.Mutex
	dev      device
	features uint32
	carrier  uint32
	duty     int
}

// NewTransmitter creates a transmitter for the device node at path.
func NewTransmitter(path string, logger ports.Logger) *Transmitter {
	if path == "" {
		path = DefaultDevice
	}
	return &Transmitter{
		path:   path,
		logger: logger,
		open:   openDevice,
		sleep:  time.Sleep,
	}
}

// TransmitRaw emits durations with the given carrier and blocks until the
// whole sequence, including a trailing space, has elapsed.
func (t *Transmitter) TransmitRaw(durations []uint16, extended bool, carrierHz uint32, dutyCycle float64) error {
	if !extended {
		return ErrExtendedRequired
	}
	if len(durations) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureOpen(); err != nil {
		return err
	}
	if err := t.configure(carrierHz, dutyCycle); err != nil {
		t.resetLocked()
		return err
	}

	payload, gap := encodePulses(durations)
	if _, err := t.dev.Write(payload); err != nil {
		t.resetLocked()
		return fmt.Errorf("write %s: %w", t.path, err)
	}
	if gap > 0 {
		t.sleep(gap)
	}
	return nil
}

func (t *Transmitter) ensureOpen() error {
	if t.dev != nil {
		return nil
	}

	dev, err := t.open(t.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", t.path, err)
	}
	features, err := dev.Features()
	if err != nil {
		dev.Close()
		return fmt.Errorf("query %s features: %w", t.path, err)
	}
	if features&lircCanSendPulse == 0 {
		dev.Close()
		return fmt.Errorf("%s cannot send pulses (features 0x%x)", t.path, features)
	}
	if err := dev.SetInt(lircSetSendMode, lircModePulse); err != nil {
		dev.Close()
		return fmt.Errorf("set %s send mode: %w", t.path, err)
	}

	t.dev = dev
	t.features = features
	t.carrier = 0
	t.duty = 0
	t.logger.Info("ir transmitter opened", ports.String("device", t.path))
	return nil
}

// configure applies carrier and duty cycle when they differ from the last
// values sent to the device. Unsupported settings are skipped.
func (t *Transmitter) configure(carrierHz uint32, dutyCycle float64) error {
	if t.features&lircCanSetSendCarrier != 0 && t.carrier != carrierHz {
		if err := t.dev.SetInt(lircSetSendCarrier, int(carrierHz)); err != nil {
			return fmt.Errorf("set carrier %d Hz: %w", carrierHz, err)
		}
		t.carrier = carrierHz
	}

	duty := dutyPercent(dutyCycle)
	if t.features&lircCanSetSendDutyCycle != 0 && t.duty != duty {
		if err := t.dev.SetInt(lircSetSendDutyCycle, duty); err != nil {
			return fmt.Errorf("set duty cycle %d%%: %w", duty, err)
		}
		t.duty = duty
	}
	return nil
}

func (t *Transmitter) resetLocked() {
	if t.dev == nil {
		return
	}
	if err := t.dev.Close(); err != nil {
		t.logger.Debug("close after failure", ports.Err(err))
	}
	t.dev = nil
}

// Close releases the device. A later TransmitRaw reopens it.
func (t *Transmitter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dev == nil {
		return nil
	}
	err := t.dev.Close()
	t.dev = nil
	return err
}

var _ ports.RawTransmitter = (*Transmitter)(nil)
