// Package log provides a logging abstraction for irbridge components.
//
// This package defines a Logger interface that can be implemented by any
// logging library. A zerolog adapter and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Debug("frame received", log.Int("size", len(buf)), log.Hex("data", buf))
//
// Use the no-op logger in tests:
//
//	logger := log.Discard
package log
