package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (IRBRIDGE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device-name", os.Getenv("IRBRIDGE_DEVICE_NAME"), &cfg.DeviceName)
	s.setString("hci", os.Getenv("IRBRIDGE_HCI"), &cfg.HCI)
	s.setString("lirc-device", os.Getenv("IRBRIDGE_LIRC_DEVICE"), &cfg.LIRCDevice)
	s.setString("display", os.Getenv("IRBRIDGE_DISPLAY"), &cfg.Display)
	s.setString("status-addr", os.Getenv("IRBRIDGE_STATUS_ADDR"), &cfg.StatusAddr)
	s.setString("log-level", os.Getenv("IRBRIDGE_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("IRBRIDGE_LOG_FILE"), &cfg.LogFile)

	if err := s.setIntFromString("buffer-size", os.Getenv("IRBRIDGE_BUFFER_SIZE"), &cfg.BufferSize); err != nil {
		return err
	}
	if err := s.setIntFromString("queue-depth", os.Getenv("IRBRIDGE_QUEUE_DEPTH"), &cfg.QueueDepth); err != nil {
		return err
	}

	if err := s.setDuration("status-interval", os.Getenv("IRBRIDGE_STATUS_INTERVAL"), &cfg.StatusInterval); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("IRBRIDGE_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("skip-probe", os.Getenv("IRBRIDGE_SKIP_PROBE"), &cfg.SkipProbe)

	return nil
}
