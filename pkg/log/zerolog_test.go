package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithLogger(zerolog.New(&buf))

	l.Info("frame",
		String("kind", "DataReceived"),
		Int("size", 12),
		Bool("ok", true),
		Duration("took", 2*time.Millisecond),
		Hex("data", []byte{0x18, 0x44, 0x0a}),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{
		`"kind":"DataReceived"`,
		`"size":12`,
		`"ok":true`,
		`"data":"18 44 0A"`,
		`"error":"boom"`,
		`"message":"frame"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestZerologAdapter_DisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Debug("hidden", Hex("data", []byte{1, 2, 3}))

	if buf.Len() != 0 {
		t.Errorf("debug output written at info level: %s", buf.String())
	}
}

func TestHexBytes_String(t *testing.T) {
	if got := HexBytes(nil).String(); got != "" {
		t.Errorf("HexBytes(nil) = %q, want empty", got)
	}
	if got := HexBytes([]byte{0xAA, 0x0B}).String(); got != "AA 0B" {
		t.Errorf("HexBytes = %q, want %q", got, "AA 0B")
	}
}
