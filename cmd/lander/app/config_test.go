package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkarpov/precision-landing/internal/guidance"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
settings:
  logLevel: debug
vehicle:
  name: test-craft
  sim:
    latitude: -0.5
    longitude: -75.0
    altitude: 12000
guidance:
  targetLatitude: -0.096944
  targetLongitude: -74.5575
  missTolerance: 0.1
storage:
  dataDirectory: /tmp/flights
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Settings.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", config.Settings.LogLevel)
	}
	if config.Vehicle.Name != "test-craft" {
		t.Errorf("expected vehicle name 'test-craft', got %q", config.Vehicle.Name)
	}
	if config.Vehicle.Type != VehicleSim {
		t.Errorf("expected default vehicle type %q, got %q", VehicleSim, config.Vehicle.Type)
	}
	if config.Vehicle.Sim == nil || config.Vehicle.Sim.Altitude != 12000 {
		t.Errorf("unexpected sim config: %+v", config.Vehicle.Sim)
	}
	if config.Guidance.TargetLatitude != -0.096944 {
		t.Errorf("expected target latitude -0.096944, got %v", config.Guidance.TargetLatitude)
	}
	if config.Storage.DataDirectory != "/tmp/flights" {
		t.Errorf("expected data directory '/tmp/flights', got %q", config.Storage.DataDirectory)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
vehicle:
  name: test-craft
`))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Settings.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %q", config.Settings.LogLevel)
	}
	if config.Vehicle.Type != VehicleSim {
		t.Errorf("expected default vehicle type %q, got %q", VehicleSim, config.Vehicle.Type)
	}
}

func TestLoadConfig_RequiresVehicleName(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `
settings:
  logLevel: info
`)); err == nil {
		t.Fatal("expected error for missing vehicle name")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "vehicle: [")); err == nil {
		t.Fatal("expected error for malformed configuration")
	}
}

func TestGuidanceConfig_ToGuidance(t *testing.T) {
	g := GuidanceConfig{
		TargetLatitude:  -0.096944,
		TargetLongitude: -74.5575,
		BiasLatitude:    0.01,
		MissTolerance:   0.1,
		MaxAttempts:     5,
	}

	cfg := g.ToGuidance()

	if cfg.TargetLatitude != -0.096944 || cfg.TargetLongitude != -74.5575 {
		t.Errorf("unexpected target: (%v, %v)", cfg.TargetLatitude, cfg.TargetLongitude)
	}
	if cfg.BiasLatitude != 0.01 {
		t.Errorf("expected bias latitude 0.01, got %v", cfg.BiasLatitude)
	}
	if cfg.MissTolerance != 0.1 {
		t.Errorf("expected miss tolerance 0.1, got %v", cfg.MissTolerance)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.MaxAttempts)
	}

	// Everything not set keeps its default.
	def := guidance.DefaultConfig()
	if cfg.BodyRadius != def.BodyRadius {
		t.Errorf("expected default body radius %v, got %v", def.BodyRadius, cfg.BodyRadius)
	}
	if cfg.StagingAltitude != def.StagingAltitude {
		t.Errorf("expected default staging altitude %v, got %v", def.StagingAltitude, cfg.StagingAltitude)
	}
	if cfg.MaxRecoveryBurns != def.MaxRecoveryBurns {
		t.Errorf("expected default recovery burns %v, got %v", def.MaxRecoveryBurns, cfg.MaxRecoveryBurns)
	}
}
