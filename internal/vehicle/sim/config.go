package sim

import "fmt"

// Config is the initial condition of the simulated vehicle. Values are in
// degrees, meters, m/s and kilograms.
type Config struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Altitude  float64 `yaml:"altitude"`

	// VerticalSpeed is the initial altitude rate; negative means descending.
	VerticalSpeed float64 `yaml:"verticalSpeed"`

	// OmegaLat and OmegaLon are the initial angular drift rates, deg/s.
	OmegaLat float64 `yaml:"omegaLat"`
	OmegaLon float64 `yaml:"omegaLon"`

	Mass   float64 `yaml:"mass"`
	Thrust float64 `yaml:"thrust"`

	// Gravity is the surface gravitational acceleration, m/s^2.
	Gravity float64 `yaml:"gravity"`

	// BodyRadius converts tangential acceleration to angular rate, meters.
	BodyRadius float64 `yaml:"bodyRadius"`

	// AlignRate is how fast the attitude-hold system closes pointing error,
	// deg/s.
	AlignRate float64 `yaml:"alignRate"`
}

// DefaultConfig returns a craft on a steep Kerbin descent.
func DefaultConfig() *Config {
	return &Config{
		Latitude:      -0.5,
		Longitude:     -75.0,
		Altitude:      12000,
		VerticalSpeed: -80,
		Mass:          5000,
		Thrust:        120000,
		Gravity:       9.81,
		BodyRadius:    600000,
		AlignRate:     15,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Mass <= 0:
		return fmt.Errorf("mass must be positive, got %f", c.Mass)
	case c.BodyRadius <= 0:
		return fmt.Errorf("body radius must be positive, got %f", c.BodyRadius)
	case c.AlignRate <= 0:
		return fmt.Errorf("align rate must be positive, got %f", c.AlignRate)
	case c.Thrust < 0:
		return fmt.Errorf("thrust must not be negative, got %f", c.Thrust)
	}
	return nil
}
