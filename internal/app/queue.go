package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// DefaultQueueDepth is a single slot: the link callback blocks while one
// frame is waiting behind the one being transmitted.
const DefaultQueueDepth = 1

// TransmitQueue hands decoded sequences from the link callback to one
// dedicated transmitter goroutine. Sequences are transmitted one at a time
// in submission order. Submit blocks while the queue is full, which pushes
// back on the link instead of dropping frames.
type TransmitQueue struct {
	tx     *Transmitter
	logger ports.Logger

	jobs chan domain.DurationSequence
	quit chan struct{}
	done chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewTransmitQueue creates a queue holding up to depth pending sequences.
func NewTransmitQueue(tx *Transmitter, depth int, logger ports.Logger) *TransmitQueue {
	if depth < 1 {
		depth = DefaultQueueDepth
	}
	return &TransmitQueue{
		tx:     tx,
		logger: logger,
		jobs:   make(chan domain.DurationSequence, depth),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the transmitter goroutine. Calling it more than once is a no-op.
func (q *TransmitQueue) Start() {
	q.startOnce.Do(func() {
		go q.run()
	})
}

// Submit enqueues seq. Empty sequences are ignored. It returns
// domain.ErrQueueClosed after Close, or ctx.Err() if ctx ends while waiting
// for a free slot.
func (q *TransmitQueue) Submit(ctx context.Context, seq domain.DurationSequence) error {
	if seq.Empty() {
		return nil
	}

	select {
	case <-q.quit:
		return domain.ErrQueueClosed
	default:
	}

	select {
	case q.jobs <- seq:
		return nil
	case <-q.quit:
		return domain.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting frames, transmits what is already queued and waits
// for the transmitter goroutine to exit. Returns domain.ErrShutdownTimeout if
// that takes longer than timeout.
//
// Producers must be stopped before Close; a Submit racing with Close may be
// accepted and never transmitted.
func (q *TransmitQueue) Close(timeout time.Duration) error {
	q.closeOnce.Do(func() {
		close(q.quit)
	})
	q.Start() // drain even if never started

	select {
	case <-q.done:
		return nil
	case <-time.After(timeout):
		q.logger.Warn("transmit queue did not drain", ports.Duration("timeout", timeout))
		return domain.ErrShutdownTimeout
	}
}

func (q *TransmitQueue) run() {
	defer close(q.done)

	for {
		select {
		case seq := <-q.jobs:
			q.transmit(seq)
		case <-q.quit:
			for {
				select {
				case seq := <-q.jobs:
					q.transmit(seq)
				default:
					return
				}
			}
		}
	}
}

func (q *TransmitQueue) transmit(seq domain.DurationSequence) {
	if err := q.tx.Transmit(seq); err != nil {
		q.logger.Warn("transmission lost",
			ports.Err(err),
			ports.Int("durations", len(seq)),
		)
	}
}
