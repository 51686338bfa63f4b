package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Physics.Timestep <= 0 {
		t.Error("timestep should be positive")
	}
	if cfg.Sim.FrameRate <= 0 {
		t.Error("frame rate should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPhysics_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Physics)
		field  string
	}{
		{"zero timestep", func(p *Physics) { p.Timestep = 0 }, "timestep"},
		{"zero event expiry", func(p *Physics) { p.EventExpiryCount = 0 }, "event_expiry_count"},
		{"zero sample expiry", func(p *Physics) { p.SampleExpiryCount = 0 }, "sample_expiry_count"},
		{"zero mass", func(p *Physics) { p.ContentMass = 0 }, "content_mass"},
		{"damping above one", func(p *Physics) { p.BounceDamping = 1.5 }, "bounce_damping"},
		{"sub-linear friction", func(p *Physics) { p.FrictionExponent = 0.5 }, "friction_exponent"},
		{"zero discriminant", func(p *Physics) { p.AccelDiscriminant = 0 }, "accel_discriminant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPhysics()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollsim.yaml")

	cfg := DefaultConfig()
	cfg.Physics.FlingBoost = 1.7
	cfg.Sim.FrameRate = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Physics.FlingBoost != 1.7 {
		t.Errorf("expected fling boost 1.7, got %f", loaded.Physics.FlingBoost)
	}
	if loaded.Sim.FrameRate != 120 {
		t.Errorf("expected frame rate 120, got %d", loaded.Sim.FrameRate)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  fling_boost: 2.0\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Physics.FlingBoost != 2.0 {
		t.Errorf("expected fling boost 2.0, got %f", cfg.Physics.FlingBoost)
	}
	if cfg.Physics.Timestep != DefaultTimestep {
		t.Errorf("expected default timestep, got %f", cfg.Physics.Timestep)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty config should load defaults: %v", err)
	}
	if cfg.Physics != DefaultPhysics() {
		t.Error("expected default physics")
	}
}

func TestParse_DocumentMarkers(t *testing.T) {
	cfg, err := Parse([]byte("---\nphysics:\n  fling_boost: 2.0\n"))
	if err != nil {
		t.Fatalf("a single marked document should parse: %v", err)
	}
	if cfg.Physics.FlingBoost != 2.0 {
		t.Errorf("expected fling boost 2.0, got %f", cfg.Physics.FlingBoost)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "physics:\n  timestepp: 0.1\n"},
		{"invalid value", "physics:\n  timestep: -1\n"},
		{"trailing document", "logging:\n  level: info\n---\nlogging:\n  level: debug\n"},
		{"trailing scalar document", "logging:\n  level: info\n---\nhello\n"},
		{"zero frame rate", "sim:\n  frame_rate: 0\n"},
		{"unknown source", "sim:\n  source: trackball\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset("snappy")
	if !ok {
		t.Fatal("expected preset")
	}
	if p.FrictionCoefficient != 0.0003 {
		t.Errorf("expected friction 0.0003, got %f", p.FrictionCoefficient)
	}
	if p.Timestep != DefaultTimestep {
		t.Error("preset should start from defaults")
	}

	for _, name := range ListPresets() {
		p, _ := GetPreset(name)
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset")
	}
}

func TestStore_Update(t *testing.T) {
	s := NewStore(DefaultPhysics())
	before := s.Snapshot()

	p := DefaultPhysics()
	p.FlingBoost = 3
	if err := s.Update(p); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if s.Snapshot().FlingBoost != 3 {
		t.Errorf("expected new snapshot, got boost %f", s.Snapshot().FlingBoost)
	}
	if before.FlingBoost != DefaultFlingBoost {
		t.Error("previous snapshot must not change")
	}
	if s.Version() != 1 {
		t.Errorf("expected version 1, got %d", s.Version())
	}

	p.Timestep = 0
	if err := s.Update(p); err == nil {
		t.Error("expected invalid update to fail")
	}
	if s.Snapshot().Timestep != DefaultTimestep {
		t.Error("rejected update must keep the previous snapshot")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore(DefaultPhysics())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := s.Snapshot()
				if snap.PreAccelScale != snap.PostAccelScale*10 {
					t.Error("torn snapshot")
					return
				}
			}
		}()
	}

	for j := 0; j < 100; j++ {
		p := DefaultPhysics()
		p.PostAccelScale = float64(j + 1)
		p.PreAccelScale = p.PostAccelScale * 10
		if err := s.Update(p); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}
	wg.Wait()
}

func watchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForBoost(t *testing.T, s *Store, want float64) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for s.Snapshot().FlingBoost != want {
		select {
		case <-deadline:
			t.Fatalf("watch did not reload the config, boost is %f", s.Snapshot().FlingBoost)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollsim.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	s := NewStore(DefaultPhysics())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, path, info.ModTime(), 5*time.Millisecond, watchLogger())
	}()

	cfg := DefaultConfig()
	cfg.Physics.FlingBoost = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	waitForBoost(t, s, 2.5)

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStore_WatchPicksUpEditBeforeStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollsim.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	// edited after the snapshot was taken but before the watch started
	cfg := DefaultConfig()
	cfg.Physics.FlingBoost = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	s := NewStore(DefaultPhysics())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Watch(ctx, path, info.ModTime(), 5*time.Millisecond, watchLogger())

	waitForBoost(t, s, 2.5)
	if s.Version() != 1 {
		t.Errorf("expected one reload, got version %d", s.Version())
	}
}

func TestStore_WatchRejectsInterval(t *testing.T) {
	s := NewStore(DefaultPhysics())
	if err := s.Watch(context.Background(), "unused.yaml", time.Time{}, 0, watchLogger()); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestStore_ReloadKeepsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollsim.yaml")
	cfg := DefaultConfig()
	cfg.Physics.FlingBoost = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snappy, _ := GetPreset("snappy")
	s := NewStore(snappy, Presets["snappy"])
	if err := s.Reload(path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	got := s.Snapshot()
	if got.FrictionCoefficient != snappy.FrictionCoefficient {
		t.Errorf("preset friction lost on reload: got %f, want %f", got.FrictionCoefficient, snappy.FrictionCoefficient)
	}
	if got.FlingBoost != snappy.FlingBoost {
		t.Errorf("preset should win over the file: got boost %f, want %f", got.FlingBoost, snappy.FlingBoost)
	}

	plain := NewStore(DefaultPhysics())
	if err := plain.Reload(path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if plain.Snapshot().FlingBoost != 2.5 {
		t.Errorf("expected the file's boost 2.5, got %f", plain.Snapshot().FlingBoost)
	}
}

func TestStatic(t *testing.T) {
	p := DefaultPhysics()
	p.FlingBoost = 9
	snap := (*Static)(&p).Snapshot()
	if snap.FlingBoost != 9 {
		t.Errorf("expected boost 9, got %f", snap.FlingBoost)
	}
}
