package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Screen.Width != 640 || cfg.Screen.Height != 480 {
		t.Errorf("screen = %dx%d, want 640x480", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Derived.VelocityLimit != 25 {
		t.Errorf("derived velocity limit = %v, want 25", cfg.Derived.VelocityLimit)
	}
	if cfg.Rockets.MutationChance != 0.1 {
		t.Errorf("mutation chance = %v, want 0.1", cfg.Rockets.MutationChance)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("rockets:\n  mutation_chance: 0.5\ngrid:\n  rows: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Rockets.MutationChance != 0.5 {
		t.Errorf("mutation chance = %v, want 0.5", cfg.Rockets.MutationChance)
	}
	if cfg.Grid.Rows != 4 {
		t.Errorf("rows = %d, want 4", cfg.Grid.Rows)
	}
	// Untouched fields keep their defaults
	if cfg.Grid.Columns != 10 {
		t.Errorf("columns = %d, want default 10", cfg.Grid.Columns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero mass", func(c *Config) { c.Bouncy.MassMin = 0 }},
		{"tiny grid", func(c *Config) { c.Grid.Columns = 1 }},
		{"no velocity limit", func(c *Config) { c.Physics.VelocityLimit = 0 }},
		{"friction adds energy", func(c *Config) { c.Boundary.WallFriction = 1.2 }},
		{"single rocket", func(c *Config) { c.Rockets.Population = 1 }},
		{"mutation above one", func(c *Config) { c.Rockets.MutationChance = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Walker.Step = 3

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Walker.Step != 3 {
		t.Errorf("walker step = %v, want 3", loaded.Walker.Step)
	}
}
