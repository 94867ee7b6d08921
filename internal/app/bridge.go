package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
	"github.com/bft-labs/irbridge/internal/ports"
)

// DefaultBufferSize is the receive buffer size hint registered with the link.
const DefaultBufferSize = 128

// BridgeConfig holds the coordinator's tunables.
type BridgeConfig struct {
	// BufferSize is the receive buffer size hint passed to the link.
	BufferSize int

	// QueueDepth is the number of decoded frames that may wait behind the
	// one being transmitted.
	QueueDepth int

	// ShutdownTimeout bounds each teardown wait.
	ShutdownTimeout time.Duration
}

// DefaultBridgeConfig returns a BridgeConfig with default values.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		BufferSize:      DefaultBufferSize,
		QueueDepth:      DefaultQueueDepth,
		ShutdownTimeout: ShutdownTimeout,
	}
}

// Deps are the platform collaborators the bridge owns for one run.
type Deps struct {
	Link        ports.Link
	Transmitter ports.RawTransmitter
	Display     ports.Display
	Logger      ports.Logger
	Probe       ports.LinkProbe     // optional
	Watcher     ports.DeviceWatcher // optional
	Observer    StateObserver       // optional
}

// Snapshot is a point-in-time view of the bridge for status reporting.
type Snapshot struct {
	SessionID          string       `json:"session_id"`
	StartedAt          time.Time    `json:"started_at"`
	State              string       `json:"state"`
	Connected          bool         `json:"connected"`
	LinkAvailable      bool         `json:"link_available"`
	TransmitterPresent bool         `json:"transmitter_present"`
	Stats              domain.Stats `json:"stats"`
}

// Bridge is the app coordinator. It owns the link subscription, the
// transmitter, the scene manager and the display for the length of Run, and
// releases them in reverse order of acquisition.
type Bridge struct {
	cfg       BridgeConfig
	deps      Deps
	logger    ports.Logger
	lifecycle *lifecycle

	counters  domain.Counters
	conn      domain.ConnectionState
	linkUp    atomic.Bool
	txPresent atomic.Bool

	mu      sync.RWMutex
	session domain.Session
}

// NewBridge validates deps and creates a stopped bridge.
func NewBridge(cfg BridgeConfig, deps Deps) (*Bridge, error) {
	if deps.Link == nil || deps.Transmitter == nil || deps.Display == nil {
		return nil, fmt.Errorf("%w: link, transmitter and display are required", domain.ErrInvalidConfig)
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", domain.ErrInvalidConfig)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = ShutdownTimeout
	}

	return &Bridge{
		cfg:       cfg,
		deps:      deps,
		logger:    deps.Logger,
		lifecycle: newLifecycle(deps.Logger, deps.Observer),
	}, nil
}

// Run brings the bridge up, blocks in the display's dispatch loop until the
// user leaves or ctx is done, then tears everything down. A link that cannot
// be activated is not an error: the bridge runs in degraded mode and says so
// on the display.
func (b *Bridge) Run(ctx context.Context) (err error) {
	if err := b.lifecycle.begin("run requested"); err != nil {
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := domain.NewSession()
	b.mu.Lock()
	b.session = session
	b.mu.Unlock()
	b.logger.Info("bridge starting", ports.String("session", session.ID))

	tx := NewTransmitter(b.deps.Transmitter, b.logger, &b.counters)
	queue := NewTransmitQueue(tx, b.cfg.QueueDepth, b.logger)
	scenes := NewSceneManager(b.deps.Display, b.logger, map[SceneID]Scene{
		SceneBridgingActive:  newBridgingScene(session),
		SceneLinkUnavailable: linkUnavailableScene{},
	})

	// Presence stays unknown until the watcher reports.
	b.txPresent.Store(false)

	var linkUp bool
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("bridge panic", ports.String("panic", fmt.Sprint(r)))
			err = fmt.Errorf("bridge panic: %v", r)
		}
		if tdErr := b.teardown(cancel, linkUp, queue, scenes); tdErr != nil && err == nil {
			err = tdErr
		}
		if err != nil {
			_ = b.lifecycle.moveTo(StateCrashed, err.Error())
		} else {
			_ = b.lifecycle.moveTo(StateStopped, "graceful shutdown")
		}
	}()

	queue.Start()

	handler := NewReceiveHandler(queue, b.logger, &b.counters)
	linkUp = b.openLink(runCtx, handler)
	b.linkUp.Store(linkUp)

	if b.deps.Watcher != nil {
		b.lifecycle.spawn(func() {
			if err := b.deps.Watcher.Watch(runCtx, b.onTransmitterPresence); err != nil && !errors.Is(err, context.Canceled) {
				b.logger.Warn("transmitter watcher stopped", ports.Err(err))
			}
		})
	}

	first := SceneBridgingActive
	if !linkUp {
		first = SceneLinkUnavailable
	}
	if err := scenes.Next(first); err != nil {
		return err
	}

	if err := b.lifecycle.moveTo(StateRunning, "dispatch loop starting"); err != nil {
		return err
	}

	if err := b.deps.Display.Run(runCtx, scenes, b); err != nil {
		b.logger.Error("dispatch loop failed", ports.Err(err))
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// openLink probes, opens and subscribes to the link. It returns false, with
// the reason logged, when the link is unavailable.
func (b *Bridge) openLink(ctx context.Context, handler *ReceiveHandler) bool {
	if b.deps.Probe != nil {
		if err := b.deps.Probe.Check(ctx); err != nil {
			b.logger.Warn("please enable bluetooth and restart", ports.Err(err))
			return false
		}
	}

	if err := b.deps.Link.Open(ctx); err != nil {
		b.logger.Warn("link open failed", ports.Err(err))
		return false
	}

	b.deps.Link.SetConnectionCallback(b.onConnection)
	err := b.deps.Link.RegisterReceiveCallback(b.cfg.BufferSize, func(ev ports.LinkEvent) {
		handler.HandleEvent(ctx, ev)
	})
	if err != nil {
		b.logger.Warn("link subscription failed", ports.Err(err))
		b.deps.Link.SetConnectionCallback(nil)
		return false
	}

	if err := b.deps.Link.StartAdvertising(); err != nil {
		b.logger.Warn("advertising failed", ports.Err(err))
		b.deps.Link.UnregisterReceiveCallback()
		b.deps.Link.SetConnectionCallback(nil)
		return false
	}

	b.logger.Info("link ready", ports.Int("buffer_size", b.cfg.BufferSize))
	return true
}

// teardown releases resources in reverse order of acquisition. The receive
// callback is gone before the queue drains, and the queue has drained before
// the transmitter is closed.
func (b *Bridge) teardown(cancel context.CancelFunc, linkUp bool, queue *TransmitQueue, scenes *SceneManager) error {
	if b.lifecycle.winding() {
		_ = b.lifecycle.moveTo(StateStopping, "dispatch loop ended")
	}

	var errs []error

	if linkUp {
		b.deps.Link.UnregisterReceiveCallback()
		b.deps.Link.SetConnectionCallback(nil)
	}

	if err := queue.Close(b.cfg.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("transmit queue: %w", err))
	}

	if err := b.deps.Display.Close(); err != nil {
		errs = append(errs, fmt.Errorf("display close: %w", err))
	}

	scenes.Stop()

	cancel()
	if err := b.lifecycle.drain(b.cfg.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	}

	if err := b.deps.Transmitter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("transmitter close: %w", err))
	}

	if err := b.deps.Link.Close(); err != nil {
		errs = append(errs, fmt.Errorf("link close: %w", err))
	}

	stats := b.counters.Snapshot()
	b.logger.Info("bridge stopped",
		ports.Uint64("frames_received", stats.FramesReceived),
		ports.Uint64("frames_transmitted", stats.FramesTransmitted),
		ports.Uint64("transmit_failures", stats.TransmitFailures),
	)

	return errors.Join(errs...)
}

// onConnection runs in the link's context. It only touches the atomic flag
// and hands the change to the dispatch loop.
func (b *Bridge) onConnection(connected bool) {
	if !b.conn.Set(connected) {
		return
	}
	b.logger.Info("link connection changed", ports.Bool("connected", connected))
	b.deps.Display.Post(EventConnectionChanged)
}

func (b *Bridge) onTransmitterPresence(present bool) {
	if b.txPresent.Swap(present) == present {
		return
	}
	if present {
		b.logger.Info("transmitter device present")
	} else {
		b.logger.Warn("transmitter device removed")
	}
	b.deps.Display.Post(EventTransmitterChanged)
}

// Status implements ports.StatusSource.
func (b *Bridge) Status() ports.Status {
	stats := b.counters.Snapshot()
	return ports.Status{
		Connected:      b.conn.Connected(),
		LinkAvailable:  b.linkUp.Load(),
		TransmitterUp:  b.txPresent.Load(),
		FramesSent:     stats.FramesTransmitted,
		TransmitErrors: stats.TransmitFailures,
	}
}

// State returns the lifecycle state.
func (b *Bridge) State() State {
	return b.lifecycle.State()
}

// Snapshot returns the current status of the bridge.
// Safe to call concurrently from any goroutine.
func (b *Bridge) Snapshot() Snapshot {
	b.mu.RLock()
	session := b.session
	b.mu.RUnlock()

	return Snapshot{
		SessionID:          session.ID,
		StartedAt:          session.StartedAt,
		State:              b.lifecycle.State().String(),
		Connected:          b.conn.Connected(),
		LinkAvailable:      b.linkUp.Load(),
		TransmitterPresent: b.txPresent.Load(),
		Stats:              b.counters.Snapshot(),
	}
}

var _ ports.StatusSource = (*Bridge)(nil)
