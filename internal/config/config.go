// Package config loads and saves simulation configuration as YAML and
// carries the built-in scene presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/geom"
	"github.com/san-kum/ballsim/internal/phys"
	"github.com/san-kum/ballsim/internal/scene"
)

const (
	DefaultDt           = 1e-3
	DefaultDuration     = 5.0
	DefaultPasses       = 3
	DefaultRestitution  = 0.95
	DefaultBorderRadius = 0.85
	DefaultSubdivisions = 5
	DefaultBallRadius   = 0.04
)

type BallConfig struct {
	Radius float64    `yaml:"radius"`
	Pos    [3]float64 `yaml:"pos"`
	Vel    [3]float64 `yaml:"vel,omitempty"`
	Color  [4]float64 `yaml:"color"`
}

type BorderConfig struct {
	Radius       float64    `yaml:"radius"`
	Center       [3]float64 `yaml:"center"`
	Subdivisions int        `yaml:"subdivisions"`
}

type Config struct {
	Dt             float64      `yaml:"dt"`
	Duration       float64      `yaml:"duration"`
	Passes         int          `yaml:"passes"`
	Restitution    float64      `yaml:"restitution"`
	Gravity        [3]float64   `yaml:"gravity"`
	PenetrationTol float64      `yaml:"penetration_tol,omitempty"`
	Border         BorderConfig `yaml:"border"`
	Balls          []BallConfig `yaml:"balls"`
}

// DefaultConfig reproduces the original demo scene: one ball dropped from
// near the top of the boundary and one resting at the center.
func DefaultConfig() *Config {
	return &Config{
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Passes:      DefaultPasses,
		Restitution: DefaultRestitution,
		Gravity:     [3]float64{0, -9.8, 0},
		Border: BorderConfig{
			Radius:       DefaultBorderRadius,
			Subdivisions: DefaultSubdivisions,
		},
		Balls: []BallConfig{
			{Radius: DefaultBallRadius, Pos: [3]float64{0, 0.75, 0}, Color: [4]float64{1, 1, 0, 1}},
			{Radius: DefaultBallRadius, Pos: [3]float64{0, 0, 0}, Color: [4]float64{1, 0, 0, 1}},
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
		return nil, err
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

// PhysConfig maps the file-level settings onto the world configuration.
func (c *Config) PhysConfig() phys.Config {
	return phys.Config{
		Gravity:        vec(c.Gravity),
		BorderCenter:   vec(c.Border.Center),
		BorderRadius:   c.Border.Radius,
		Restitution:    c.Restitution,
		Passes:         c.Passes,
		PenetrationTol: c.PenetrationTol,
	}
}

// BuildScene constructs the scene the config describes: border decoration
// first, then every ball in declaration order (creation order pairs balls
// with their meshes, so it is load-bearing).
func (c *Config) BuildScene() (*scene.Scene, error) {
	sc := scene.New(c.PhysConfig())
	if err := sc.CreateBorder(c.Border.Radius, c.Border.Subdivisions, vec(c.Border.Center)); err != nil {
		return nil, fmt.Errorf("border: %w", err)
	}
	for i, ball := range c.Balls {
		handle, err := sc.AddBall(ball.Radius, vec(ball.Pos), geom.Color{
			R: ball.Color[0], G: ball.Color[1], B: ball.Color[2], A: ball.Color[3],
		})
		if err != nil {
			return nil, fmt.Errorf("ball %d: %w", i, err)
		}
		sc.World().Body(handle).Vel = vec(ball.Vel)
	}
	return sc, nil
}

func vec(a [3]float64) phys.Vec3 {
	return phys.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
