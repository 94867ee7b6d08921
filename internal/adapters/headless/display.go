// Package headless is a display for running without a terminal, e.g. under
// systemd. Popups are written to the log and back is requested through Back.
package headless

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

const postBuffer = 16

// Display implements ports.Display.
type Display struct {
	logger         ports.Logger
	statusInterval time.Duration

	events chan uint32
	back   chan struct{}

	mu      sync.Mutex
	popup   ports.Popup
	running bool
}

// New creates a headless display. A positive statusInterval logs the status
// bar periodically.
func New(logger ports.Logger, statusInterval time.Duration) *Display {
	return &Display{
		logger:         logger,
		statusInterval: statusInterval,
		events:         make(chan uint32, postBuffer),
		back:           make(chan struct{}, 1),
	}
}

func (d *Display) ShowPopup(p ports.Popup) {
	d.mu.Lock()
	d.popup = p
	d.mu.Unlock()
	d.logger.Info("popup",
		ports.String("header", p.Header.Text),
		ports.String("icon", p.Icon.Name),
		ports.String("text", p.Body.Text),
	)
}

func (d *Display) ResetPopup() {
	d.mu.Lock()
	d.popup = ports.Popup{}
	d.mu.Unlock()
}

// Popup returns the current popup.
func (d *Display) Popup() ports.Popup {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.popup
}

// Post queues event for the dispatch loop. Events are dropped when the loop
// is not running or is too far behind.
func (d *Display) Post(event uint32) {
	d.mu.Lock()
	running := d.running
	d.mu.Unlock()
	if !running {
		return
	}
	select {
	case d.events <- event:
	default:
		d.logger.Debug("dispatch event dropped", ports.Int("event", int(event)))
	}
}

// Back requests a back event, as a key press would.
func (d *Display) Back() {
	select {
	case d.back <- struct{}{}:
	default:
	}
}

// Run dispatches events to h until it declines a back event or ctx is done.
func (d *Display) Run(ctx context.Context, h ports.DispatchHandler, status ports.StatusSource) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	d.running = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	var tick <-chan time.Time
	if d.statusInterval > 0 && status != nil {
		ticker := time.NewTicker(d.statusInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-d.events:
			h.HandleCustom(ev)
			if status != nil {
				d.logStatus(status.Status())
			}
		case <-d.back:
			if !h.HandleBack() {
				return nil
			}
		case <-tick:
			d.logStatus(status.Status())
		}
	}
}

func (d *Display) logStatus(s ports.Status) {
	d.logger.Info("status",
		ports.Bool("link_available", s.LinkAvailable),
		ports.Bool("connected", s.Connected),
		ports.Bool("transmitter", s.TransmitterUp),
		ports.Uint64("frames_sent", s.FramesSent),
		ports.Uint64("transmit_errors", s.TransmitErrors),
	)
}

// Close is a no-op; there is no output to release.
func (d *Display) Close() error { return nil }

var _ ports.Display = (*Display)(nil)
