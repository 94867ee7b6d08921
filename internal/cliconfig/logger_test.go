package cliconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatalf("NewLogger() = %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("NewLogger() expected error for invalid level")
	}
}

func TestOpenLogOutput(t *testing.T) {
	t.Run("stderr when unset", func(t *testing.T) {
		w, closeFn, err := OpenLogOutput(Config{})
		if err != nil {
			t.Fatalf("OpenLogOutput() = %v", err)
		}
		if w != os.Stderr {
			t.Error("want stderr")
		}
		if err := closeFn(); err != nil {
			t.Errorf("close = %v", err)
		}
	})

	t.Run("file when set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "irbridge.log")
		w, closeFn, err := OpenLogOutput(Config{LogFile: path})
		if err != nil {
			t.Fatalf("OpenLogOutput() = %v", err)
		}
		logger, _ := NewLogger(w, "info")
		logger.Info().Msg("to file")
		if err := closeFn(); err != nil {
			t.Fatalf("close = %v", err)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(b), "to file") {
			t.Errorf("log file = %q", b)
		}
	})

	t.Run("error for bad path", func(t *testing.T) {
		_, _, err := OpenLogOutput(Config{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
		if err == nil {
			t.Error("OpenLogOutput() expected error")
		}
	})
}
