package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DeviceName != "IR Bridge" {
		t.Errorf("DeviceName = %v, want IR Bridge", cfg.DeviceName)
	}
	if cfg.BufferSize != 128 {
		t.Errorf("BufferSize = %v, want 128", cfg.BufferSize)
	}
	if cfg.QueueDepth != 1 {
		t.Errorf("QueueDepth = %v, want 1", cfg.QueueDepth)
	}
	if cfg.LIRCDevice != "/dev/lirc0" {
		t.Errorf("LIRCDevice = %v, want /dev/lirc0", cfg.LIRCDevice)
	}
	if cfg.Display != DisplayTUI {
		t.Errorf("Display = %v, want tui", cfg.Display)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func(mut func(*Config)) Config {
		c := DefaultConfig()
		if mut != nil {
			mut(&c)
		}
		return c
	}

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"defaults", valid(nil), false},
		{"headless", valid(func(c *Config) { c.Display = "headless" }), false},
		{"display is case-insensitive", valid(func(c *Config) { c.Display = " TUI " }), false},
		{"empty device name", valid(func(c *Config) { c.DeviceName = "  " }), true},
		{"empty lirc device", valid(func(c *Config) { c.LIRCDevice = "" }), true},
		{"zero buffer size", valid(func(c *Config) { c.BufferSize = 0 }), true},
		{"zero queue depth", valid(func(c *Config) { c.QueueDepth = 0 }), true},
		{"zero shutdown timeout", valid(func(c *Config) { c.ShutdownTimeout = 0 }), true},
		{"unknown display", valid(func(c *Config) { c.Display = "lcd" }), true},
		{"bad log level", valid(func(c *Config) { c.LogLevel = "verbose" }), true},
		{"empty log level", valid(func(c *Config) { c.LogLevel = "" }), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	t.Run("tui logs to file", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		if cfg.LogFile != DefaultLogFile() {
			t.Errorf("LogFile = %q, want %q", cfg.LogFile, DefaultLogFile())
		}
	})

	t.Run("headless logs to stderr", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Display = DisplayHeadless
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		if cfg.LogFile != "" {
			t.Errorf("LogFile = %q, want empty", cfg.LogFile)
		}
	})

	t.Run("explicit log file kept", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogFile = "/var/log/irbridge.log"
		_ = cfg.Validate()
		if cfg.LogFile != "/var/log/irbridge.log" {
			t.Errorf("LogFile = %q", cfg.LogFile)
		}
	})

	t.Run("hci defaulted", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.HCI = ""
		_ = cfg.Validate()
		if cfg.HCI != DefaultHCI {
			t.Errorf("HCI = %q, want %q", cfg.HCI, DefaultHCI)
		}
	})

	t.Run("display normalized", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Display = " Headless"
		_ = cfg.Validate()
		if cfg.Display != DisplayHeadless {
			t.Errorf("Display = %q, want headless", cfg.Display)
		}
	})
}
