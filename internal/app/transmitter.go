package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// Fixed carrier parameters used for every transmission.
const (
	CarrierHz    uint32  = 38000
	DutyCycle    float64 = 0.33
	ExtendedMode         = true
)

// Transmitter wraps the raw transmit primitive with the fixed carrier
// parameters. At most one transmission is in flight at any time.
type Transmitter struct {
	mu       sync.Mutex
	raw      ports.RawTransmitter
	logger   ports.Logger
	counters *domain.Counters
}

// NewTransmitter creates a transmitter over raw. counters may be nil.
func NewTransmitter(raw ports.RawTransmitter, logger ports.Logger, counters *domain.Counters) *Transmitter {
	if counters == nil {
		counters = &domain.Counters{}
	}
	return &Transmitter{
		raw:      raw,
		logger:   logger,
		counters: counters,
	}
}

// Transmit emits seq and blocks until the hardware has finished.
// An empty sequence is a no-op and never reaches the hardware.
// Hardware faults are returned wrapped in domain.ErrTransmitFailed.
func (t *Transmitter) Transmit(seq domain.DurationSequence) error {
	if seq.Empty() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	if err := t.raw.TransmitRaw(seq, ExtendedMode, CarrierHz, DutyCycle); err != nil {
		t.counters.TransmitFailed()
		return fmt.Errorf("%w: %w", domain.ErrTransmitFailed, err)
	}
	t.counters.FrameTransmitted()

	t.logger.Debug("transmitted",
		ports.Int("durations", len(seq)),
		ports.Uint64("signal_us", seq.Total()),
		ports.Duration("took", time.Since(start)),
	)
	return nil
}
