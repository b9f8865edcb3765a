package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarpov/precision-landing/internal/guidance"
	"github.com/mkarpov/precision-landing/internal/vehicle/sim"
)

const VehicleSim = "sim"

// Config represents the main application configuration.
type Config struct {
	Settings Settings       `yaml:"settings"`
	Vehicle  VehicleConfig  `yaml:"vehicle"`
	Guidance GuidanceConfig `yaml:"guidance"`
	Storage  StorageConfig  `yaml:"storage"`
}

// Settings represents global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// VehicleConfig selects and configures the vehicle binding.
type VehicleConfig struct {
	Name string      `yaml:"name"`
	Type string      `yaml:"type"`
	Sim  *sim.Config `yaml:"sim"`
}

// GuidanceConfig is the tunable subset of the guidance loop exposed in the
// configuration file; everything not listed here keeps its default.
type GuidanceConfig struct {
	TargetLatitude  float64 `yaml:"targetLatitude"`
	TargetLongitude float64 `yaml:"targetLongitude"`
	BiasLatitude    float64 `yaml:"biasLatitude"`
	BiasLongitude   float64 `yaml:"biasLongitude"`

	BodyRadius      float64 `yaml:"bodyRadius"`
	TargetAltitude  float64 `yaml:"targetAltitude"`
	StagingAltitude float64 `yaml:"stagingAltitude"`

	MissTolerance  float64 `yaml:"missTolerance"`
	ApproachWindow float64 `yaml:"approachWindow"`

	MaxAttempts      int `yaml:"maxAttempts"`
	MaxRecoveryBurns int `yaml:"maxRecoveryBurns"`
}

// StorageConfig represents flight recorder settings.
type StorageConfig struct {
	DataDirectory string `yaml:"dataDirectory"`
}

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Config{
		Settings: Settings{LogLevel: "info"},
		Vehicle:  VehicleConfig{Type: VehicleSim},
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if config.Vehicle.Name == "" {
		return nil, fmt.Errorf("vehicle name is required")
	}

	return &config, nil
}

// ToGuidance folds the configured overrides into the guidance defaults.
func (g *GuidanceConfig) ToGuidance() guidance.Config {
	cfg := guidance.DefaultConfig()

	cfg.TargetLatitude = g.TargetLatitude
	cfg.TargetLongitude = g.TargetLongitude
	cfg.BiasLatitude = g.BiasLatitude
	cfg.BiasLongitude = g.BiasLongitude

	if g.BodyRadius > 0 {
		cfg.BodyRadius = g.BodyRadius
	}
	if g.TargetAltitude > 0 {
		cfg.TargetAltitude = g.TargetAltitude
	}
	if g.StagingAltitude > 0 {
		cfg.StagingAltitude = g.StagingAltitude
	}
	if g.MissTolerance > 0 {
		cfg.MissTolerance = g.MissTolerance
	}
	if g.ApproachWindow > 0 {
		cfg.ApproachWindow = g.ApproachWindow
	}
	if g.MaxAttempts > 0 {
		cfg.MaxAttempts = g.MaxAttempts
	}
	if g.MaxRecoveryBurns > 0 {
		cfg.MaxRecoveryBurns = g.MaxRecoveryBurns
	}

	return cfg
}
