package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected embedded YAML to equal Default(), got %+v", cfg)
	}
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := "seed: 42\ngravity:\n  base_ms: 500\nmusic:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || cfg.Gravity.BaseMS != 500 || cfg.Music.Enabled {
		t.Fatalf("expected overrides applied, got %+v", cfg)
	}
	if cfg.Gravity.MinMS != 100 || cfg.Input.DebounceSamples != 3 {
		t.Fatalf("expected untouched keys to keep defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gravity: [1, 2"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("input:\n  sample_ms: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "failed to read"},
		{"syntax", bad, "failed to parse"},
		{"invalid", invalid, "sample_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Gravity.MinMS = 0
	cfg.Music.Volume = 150
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"min_ms", "volume"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	r := cfg.Rules()
	if r.GravityInterval(0) != 800*time.Millisecond || r.GravityInterval(20) != 100*time.Millisecond {
		t.Fatalf("unexpected gravity curve %+v", r)
	}
	s := cfg.Sampler()
	if s.Debounce != 3 || s.RepeatDelay != 34 || s.RepeatRate != 10 {
		t.Fatalf("unexpected sampler config %+v", s)
	}

	cfg.Input.RepeatDelayMS = 0
	if s := cfg.Sampler(); s.RepeatDelay != 0 || s.RepeatRate != 0 {
		t.Fatalf("expected repeat disabled, got %+v", s)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	b, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), "debounce_samples: 3") {
		t.Fatalf("expected yaml keys, got:\n%s", b)
	}
}
