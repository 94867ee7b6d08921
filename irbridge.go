// Package irbridge forwards infrared timing frames received over Bluetooth LE
// to a local IR transmitter.
//
// Example usage:
//
//	cfg := irbridge.DefaultConfig()
//	cfg.Display = "headless"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := irbridge.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package irbridge

import (
	"context"
	"sync"

	"github.com/bft-labs/irbridge/internal/adapters/ble"
	"github.com/bft-labs/irbridge/internal/adapters/bluez"
	"github.com/bft-labs/irbridge/internal/adapters/headless"
	"github.com/bft-labs/irbridge/internal/adapters/httpstatus"
	"github.com/bft-labs/irbridge/internal/adapters/lirc"
	"github.com/bft-labs/irbridge/internal/adapters/tui"
	"github.com/bft-labs/irbridge/internal/app"
	"github.com/bft-labs/irbridge/internal/cliconfig"
	"github.com/bft-labs/irbridge/internal/ports"
	"github.com/bft-labs/irbridge/pkg/log"
)

// Config holds the bridge configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Snapshot is a point-in-time view of a running bridge.
type Snapshot = app.Snapshot

// State is the bridge lifecycle state.
type State = app.State

// EventHandler receives lifecycle state changes.
type EventHandler = app.StateObserver

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for lifecycle state changes.
func WithEventHandler(h EventHandler) Option {
	return func(o *options) {
		o.eventHandler = h
	}
}

// Run validates cfg, brings the bridge up on the platform Bluetooth adapter
// and LIRC device, and blocks until the user leaves or ctx is done.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	o := options{logger: log.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	bridge, err := app.NewBridge(bridgeConfig(cfg), newDeps(cfg, o))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if cfg.StatusAddr != "" {
		srv := httpstatus.New(cfg.StatusAddr, bridge, o.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(runCtx); err != nil {
				o.logger.Error("status server failed", ports.Err(err))
			}
		}()
	}

	err = bridge.Run(runCtx)
	cancel()
	wg.Wait()
	return err
}

func bridgeConfig(cfg Config) app.BridgeConfig {
	return app.BridgeConfig{
		BufferSize:      cfg.BufferSize,
		QueueDepth:      cfg.QueueDepth,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
}

// newDeps builds the platform adapters selected by cfg.
func newDeps(cfg Config, o options) app.Deps {
	deps := app.Deps{
		Link:        ble.NewLink(ble.Config{LocalName: cfg.DeviceName}, o.logger),
		Transmitter: lirc.NewTransmitter(cfg.LIRCDevice, o.logger),
		Watcher:     lirc.NewWatcher(cfg.LIRCDevice, o.logger),
		Logger:      o.logger,
		Observer:    o.eventHandler,
	}
	if !cfg.SkipProbe {
		deps.Probe = bluez.NewProbe(cfg.HCI, o.logger)
	}

	switch cfg.Display {
	case cliconfig.DisplayHeadless:
		deps.Display = headless.New(o.logger, cfg.StatusInterval)
	default:
		deps.Display = tui.New()
	}
	return deps
}
