package store

import (
	"fmt"

	"github.com/gofrs/flock"

	"pitcount/internal/config"
)

// Lock is the workspace lock held for the duration of a mutating command.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the workspace lock without blocking. A held lock means
// another pitcount command is already running against this workspace.
func AcquireLock(cfg *config.Config) (*Lock, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	fl := flock.New(cfg.LockPath())
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another pitcount command is running (lock held at %s)", cfg.LockPath())
	}
	return &Lock{fl: fl}, nil
}

// Release drops the workspace lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
