// Package telemetry wraps zap for the installer's internal diagnostic
// logging. This is distinct from the caller-observable event protocol in
// internal/events: telemetry is for operators reading logs, events are for
// a program driving the installer.
package telemetry

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin facade over *zap.Logger so call sites depend on this
// package rather than importing zap directly, the same way retryablehttp
// stays isolated behind internal/download.
type Logger struct {
	z *zap.Logger
}

// NewProduction returns a Logger backed by zap's JSON production config.
func NewProduction() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewDevelopment returns a Logger backed by zap's human-readable console config.
func NewDevelopment() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewNop returns a Logger that discards everything, the default for tests
// and for callers who don't want diagnostic output.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// With returns a child Logger with the given structured fields attached to
// every subsequent entry.
func (l *Logger) With(fields ...zapcore.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...zapcore.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zapcore.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zapcore.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zapcore.Field) { l.z.Error(msg, fields...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }

// ByteSize formats a byte count the way progress logging wants it
// (e.g. "14 MB"), reusing go-humanize the same way internal/download
// formats transfer totals.
func ByteSize(n int64) string {
	return humanize.Bytes(uint64(n))
}

// HumanBytesField is a convenience zap field for a byte count, logged as a
// human-readable string only (e.g. "1.0 kB"); the raw integer is not
// included.
func HumanBytesField(key string, n int64) zapcore.Field {
	return zap.String(key, ByteSize(n))
}
