package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Display modes.
const (
	DisplayTUI      = "tui"
	DisplayHeadless = "headless"
)

// Defaults.
const (
	DefaultDeviceName      = "IR Bridge"
	DefaultHCI             = "hci0"
	DefaultBufferSize      = 128
	DefaultLIRCDevice      = "/dev/lirc0"
	DefaultQueueDepth      = 1
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultStatusInterval  = time.Minute
)

// Config holds CLI configuration for irbridge.
type Config struct {
	DeviceName string
	HCI        string
	SkipProbe  bool

	BufferSize int
	QueueDepth int
	LIRCDevice string

	Display        string
	StatusAddr     string
	StatusInterval time.Duration

	LogLevel string
	LogFile  string

	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DeviceName:      DefaultDeviceName,
		HCI:             DefaultHCI,
		BufferSize:      DefaultBufferSize,
		QueueDepth:      DefaultQueueDepth,
		LIRCDevice:      DefaultLIRCDevice,
		Display:         DisplayTUI,
		StatusInterval:  DefaultStatusInterval,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// DefaultLogFile is where logs go while the terminal display owns stderr.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "irbridge.log")
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.DeviceName = strings.TrimSpace(c.DeviceName)
	if c.DeviceName == "" {
		return fmt.Errorf("device-name is required")
	}
	if c.HCI == "" {
		c.HCI = DefaultHCI
	}
	if c.LIRCDevice == "" {
		return fmt.Errorf("lirc-device is required")
	}

	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive")
	}
	if c.QueueDepth <= 0 {
		return fmt.Errorf("queue depth must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	c.Display = strings.ToLower(strings.TrimSpace(c.Display))
	switch c.Display {
	case DisplayTUI:
		if c.LogFile == "" {
			c.LogFile = DefaultLogFile()
		}
	case DisplayHeadless:
	default:
		return fmt.Errorf("display must be %q or %q, got %q", DisplayTUI, DisplayHeadless, c.Display)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
