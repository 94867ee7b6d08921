package irbridge

import (
	"context"
	"testing"
	"time"

	"github.com/bft-labs/irbridge/internal/adapters/bluez"
	"github.com/bft-labs/irbridge/internal/adapters/headless"
	"github.com/bft-labs/irbridge/internal/adapters/tui"
	"github.com/bft-labs/irbridge/internal/cliconfig"
	"github.com/bft-labs/irbridge/pkg/log"
)

func TestNewDeps_SelectsAdapters(t *testing.T) {
	cfg := DefaultConfig()
	deps := newDeps(cfg, options{logger: log.Discard})

	if _, ok := deps.Display.(*tui.Display); !ok {
		t.Errorf("Display = %T, want *tui.Display", deps.Display)
	}
	if _, ok := deps.Probe.(*bluez.Probe); !ok {
		t.Errorf("Probe = %T, want *bluez.Probe", deps.Probe)
	}
	if deps.Link == nil || deps.Transmitter == nil || deps.Watcher == nil {
		t.Error("link, transmitter and watcher must be set")
	}
}

func TestNewDeps_HeadlessWithoutProbe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display = cliconfig.DisplayHeadless
	cfg.SkipProbe = true
	deps := newDeps(cfg, options{logger: log.Discard})

	if _, ok := deps.Display.(*headless.Display); !ok {
		t.Errorf("Display = %T, want *headless.Display", deps.Display)
	}
	if deps.Probe != nil {
		t.Errorf("Probe = %T, want nil", deps.Probe)
	}
}

func TestBridgeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BufferSize = 64
	cfg.QueueDepth = 3
	cfg.ShutdownTimeout = time.Second

	bc := bridgeConfig(cfg)
	if bc.BufferSize != 64 || bc.QueueDepth != 3 || bc.ShutdownTimeout != time.Second {
		t.Errorf("bridgeConfig = %+v", bc)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display = "lcd"
	if err := Run(context.Background(), cfg); err == nil {
		t.Error("Run() expected error for invalid config")
	}
}
