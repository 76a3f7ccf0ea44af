// Package config defines the YAML run configuration: surface family and
// parameters, physics constants, and the horizontal domain. Invalid
// configurations fail here, before a simulation starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
	"github.com/shardul-317/slidesim/internal/surface"
)

const (
	DefaultGravity = 9.81
	DefaultMass    = 1.0
	DefaultMu      = 0.3
	DefaultV0      = 3.0
	DefaultDx      = 0.01
	DefaultXMin    = -4.0
	DefaultXMax    = 5.0
)

type Config struct {
	Surface SurfaceConfig `yaml:"surface"`
	Physics PhysicsConfig `yaml:"physics"`
	Domain  DomainConfig  `yaml:"domain"`
}

type SurfaceConfig struct {
	Family    string  `yaml:"family"`
	Radius    float64 `yaml:"radius"`
	SemiMajor float64 `yaml:"semi_major"`
	SemiMinor float64 `yaml:"semi_minor"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Expr      string  `yaml:"expr"`
}

type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
	Mass    float64 `yaml:"mass"`
	Mu      float64 `yaml:"mu"`
	MuExpr  string  `yaml:"mu_expr"`
	X0      float64 `yaml:"x0"`
	V0      float64 `yaml:"v0"`
}

type DomainConfig struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	Dx   float64 `yaml:"dx"`
}

func DefaultConfig() *Config {
	return &Config{
		Surface: SurfaceConfig{
			Family:    "track",
			Radius:    5.0,
			SemiMajor: 3.0,
			SemiMinor: 2.0,
			Amplitude: 1.0,
			Frequency: 1.0,
		},
		Physics: PhysicsConfig{
			Gravity: DefaultGravity,
			Mass:    DefaultMass,
			Mu:      DefaultMu,
			X0:      DefaultXMin,
			V0:      DefaultV0,
		},
		Domain: DomainConfig{
			XMin: DefaultXMin,
			XMax: DefaultXMax,
			Dx:   DefaultDx,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSurface constructs the configured surface family. Unknown
// families and unparseable expressions are configuration-time errors.
func (c *Config) BuildSurface() (surface.Surface, error) {
	switch c.Surface.Family {
	case "track":
		t := surface.NewTrack()
		if c.Surface.Amplitude != 0 {
			t.Amplitude = c.Surface.Amplitude
		}
		if c.Surface.Frequency != 0 {
			t.Frequency = c.Surface.Frequency
		}
		return t, nil
	case "circle":
		if c.Surface.Radius <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %f", c.Surface.Radius)
		}
		return surface.NewCircle(c.Surface.Radius), nil
	case "ellipse":
		if c.Surface.SemiMajor <= 0 || c.Surface.SemiMinor <= 0 {
			return nil, fmt.Errorf("ellipse semi-axes must be positive, got a=%f b=%f",
				c.Surface.SemiMajor, c.Surface.SemiMinor)
		}
		return surface.NewEllipse(c.Surface.SemiMajor, c.Surface.SemiMinor), nil
	case "expr":
		return surface.NewExpr(c.Surface.Expr)
	default:
		return nil, fmt.Errorf("unknown surface family: %q", c.Surface.Family)
	}
}

// BuildParams assembles the stepper parameters. An mu_expr expression
// takes precedence over the constant coefficient.
func (c *Config) BuildParams() (physics.Params, error) {
	p := physics.Params{
		Gravity: c.Physics.Gravity,
		Mass:    c.Physics.Mass,
		Dx:      c.Domain.Dx,
	}

	if c.Physics.MuExpr != "" {
		fn, err := surface.Compile(c.Physics.MuExpr)
		if err != nil {
			return physics.Params{}, fmt.Errorf("friction expression: %w", err)
		}
		p.Mu = physics.MuFunc(fn)
	} else {
		if c.Physics.Mu < 0 {
			return physics.Params{}, fmt.Errorf("friction coefficient must be non-negative, got %f", c.Physics.Mu)
		}
		p.Mu = physics.ConstantMu(c.Physics.Mu)
	}

	if err := p.Validate(); err != nil {
		return physics.Params{}, err
	}
	return p, nil
}

func (c *Config) BuildDomain() (sim.Domain, error) {
	d := sim.Domain{XMin: c.Domain.XMin, XMax: c.Domain.XMax}
	if err := d.Validate(); err != nil {
		return sim.Domain{}, err
	}
	return d, nil
}
