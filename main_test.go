package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/noc/game"
)

func TestRunRejectsBadSetupBeforeProfiling(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown scenario", []string{"-headless", "-scenario", "boids"}, game.ErrUnknownScenario},
		{"missing config", []string{"-headless", "-config", "does-not-exist.yaml"}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			err := run(append(tt.args, "-cpuprofile", dir))
			if !errors.Is(err, tt.want) {
				t.Fatalf("run error = %v, want %v", err, tt.want)
			}
			if _, err := os.Stat(filepath.Join(dir, "cpu.pprof")); !os.IsNotExist(err) {
				t.Errorf("profile written for a run that never started: %v", err)
			}
		})
	}
}

func TestRunHeadlessWritesProfile(t *testing.T) {
	dir := t.TempDir()
	args := []string{"-headless", "-scenario", "walker", "-seed", "1", "-max-ticks", "5", "-cpuprofile", dir}
	if err := run(args); err != nil {
		t.Fatalf("run: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		t.Fatalf("profile missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("profile is empty")
	}
}
