package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// Snapshotter hands out the current physics tunables. Every call returns a
// complete value; callers read it once per computation.
type Snapshotter interface {
	Snapshot() *Physics
}

// Store publishes immutable Physics snapshots. Readers on any goroutine see
// either the old or the new value, never a mix of both.
type Store struct {
	current  atomic.Pointer[Physics]
	version  atomic.Uint64
	overlays []func(*Physics)
}

// NewStore publishes p. The overlays are applied to every physics section
// read by Reload, so a preset chosen at startup survives a hot reload.
func NewStore(p Physics, overlays ...func(*Physics)) *Store {
	s := &Store{overlays: overlays}
	s.current.Store(&p)
	return s
}

func (s *Store) Snapshot() *Physics {
	return s.current.Load()
}

// Version counts successful updates, starting at zero.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Update validates p and publishes a copy of it.
func (s *Store) Update(p Physics) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.current.Store(&p)
	s.version.Add(1)
	return nil
}

// Reload reads the physics section of a config file, applies the store's
// overlays and publishes the result.
func (s *Store) Reload(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	p := cfg.Physics
	for _, apply := range s.overlays {
		apply(&p)
	}
	return s.Update(p)
}

// Watch polls path every interval and reloads it whenever its modification
// time differs from the last one seen. since is the modification time of the
// file the current snapshot came from; take it before loading the file so an
// edit made in between is reloaded on the first tick. A failed reload is
// logged and the previous snapshot stays live. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, path string, since time.Time, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %v", interval)
	}

	lastMod := since
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("config watch stat failed", "path", path, "error", err)
			continue
		}
		if info.ModTime().Equal(lastMod) {
			continue
		}
		lastMod = info.ModTime()

		if err := s.Reload(path); err != nil {
			logger.Warn("config reload rejected", "path", path, "error", err)
			continue
		}
		logger.Info("config reloaded", "path", path, "version", s.Version())
	}
}

// Static wraps a fixed Physics value as a Snapshotter.
type Static Physics

func (s *Static) Snapshot() *Physics {
	return (*Physics)(s)
}
