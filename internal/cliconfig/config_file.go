package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	DeviceName      string `toml:"device_name"`
	HCI             string `toml:"hci"`
	SkipProbe       *bool  `toml:"skip_probe"`
	BufferSize      int    `toml:"buffer_size"`
	QueueDepth      int    `toml:"queue_depth"`
	LIRCDevice      string `toml:"lirc_device"`
	Display         string `toml:"display"`
	StatusAddr      string `toml:"status_addr"`
	StatusInterval  string `toml:"status_interval"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.irbridge/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".irbridge", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device-name", fc.DeviceName, &cfg.DeviceName)
	s.setString("hci", fc.HCI, &cfg.HCI)
	s.setString("lirc-device", fc.LIRCDevice, &cfg.LIRCDevice)
	s.setString("display", fc.Display, &cfg.Display)
	s.setString("status-addr", fc.StatusAddr, &cfg.StatusAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	s.setInt("buffer-size", fc.BufferSize, &cfg.BufferSize)
	s.setInt("queue-depth", fc.QueueDepth, &cfg.QueueDepth)

	if err := s.setDuration("status-interval", fc.StatusInterval, &cfg.StatusInterval); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("skip-probe", fc.SkipProbe, &cfg.SkipProbe)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
