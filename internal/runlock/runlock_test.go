package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"otctl/internal/runlock"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "otctl.lock")

	first := runlock.New(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	second := runlock.New(path)
	if err := second.Acquire(); !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("double Release should be a no-op, got %v", err)
	}
}

func TestWithReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otctl.lock")
	sentinel := errors.New("inner")

	err := runlock.With(path, func() error {
		if err := runlock.New(path).Acquire(); !errors.Is(err, runlock.ErrHeld) {
			t.Fatalf("expected lock held inside With, got %v", err)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected inner error, got %v", err)
	}

	l := runlock.New(path)
	if err := l.Acquire(); err != nil {
		t.Fatalf("lock should be free after With, got %v", err)
	}
	_ = l.Release()
}
