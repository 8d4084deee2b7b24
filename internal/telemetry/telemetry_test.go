package telemetry

import "testing"

func TestNewNopDoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Info("hello", HumanBytesField("size", 1024))
	l.With(HumanBytesField("size", 2048)).Debug("child")
	if err := l.Sync(); err != nil {
		// zap's Nop logger can return a sync error on some platforms (e.g.
		// stderr being a non-syncable pipe); that's fine here, just observe it.
		t.Logf("Sync returned: %v", err)
	}
}

func TestByteSize(t *testing.T) {
	if got := ByteSize(1024); got != "1.0 kB" {
		t.Errorf("ByteSize(1024) = %q", got)
	}
}
