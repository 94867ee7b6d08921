package app

import (
	"context"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// FrameSink accepts decoded sequences for transmission.
type FrameSink interface {
	Submit(ctx context.Context, seq domain.DurationSequence) error
}

// ReceiveHandler is invoked for every link event. Each DataReceived event is
// one self-contained transaction: decode, then hand off for transmission.
type ReceiveHandler struct {
	sink     FrameSink
	logger   ports.Logger
	counters *domain.Counters
}

// NewReceiveHandler creates a handler feeding sink. counters may be nil.
func NewReceiveHandler(sink FrameSink, logger ports.Logger, counters *domain.Counters) *ReceiveHandler {
	if counters == nil {
		counters = &domain.Counters{}
	}
	return &ReceiveHandler{
		sink:     sink,
		logger:   logger,
		counters: counters,
	}
}

// HandleEvent classifies ev and processes it to completion. ev.Buffer is not
// retained after HandleEvent returns.
func (h *ReceiveHandler) HandleEvent(ctx context.Context, ev ports.LinkEvent) {
	switch ev.Kind {
	case ports.DataReceived:
		h.receive(ctx, ev.Buffer)
	case ports.DataSent:
		h.logger.Debug("data sent",
			ports.Int("size", len(ev.Buffer)),
			ports.Hex("data", ev.Buffer),
		)
	default:
		h.logger.Warn("unknown link event", ports.Int("kind", int(ev.Kind)))
	}
}

func (h *ReceiveHandler) receive(ctx context.Context, buf []byte) {
	frame := domain.RawFrame{Bytes: buf}
	h.counters.FrameReceived(frame.Len())

	h.logger.Debug("data received",
		ports.Int("size", frame.Len()),
		ports.Hex("data", buf),
	)

	seq := domain.Decode(frame)
	if seq.Empty() {
		h.counters.FrameMalformed()
		h.logger.Warn("skipping frame",
			ports.Err(domain.ErrMalformedFrame),
			ports.Int("size", frame.Len()),
		)
		return
	}

	h.logger.Debug("decoded",
		ports.Int("durations", len(seq)),
		ports.Any("us", seq),
	)

	if err := h.sink.Submit(ctx, seq); err != nil {
		h.logger.Warn("frame dropped",
			ports.Err(err),
			ports.Int("durations", len(seq)),
		)
	}
}
