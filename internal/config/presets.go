package config

import (
	"math"
	"sort"
)

// Presets are the built-in scenes selectable with --preset.
var Presets = map[string]func() *Config{
	"demo": DefaultConfig,
	"duet": duet,
	"rain": rain,
	"pile": pile,
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// duet: two equal balls approaching head-on along x with gravity off, for
// eyeballing the elastic exchange of the pair resolver.
func duet() *Config {
	cfg := DefaultConfig()
	cfg.Gravity = [3]float64{}
	cfg.Balls = []BallConfig{
		{Radius: DefaultBallRadius, Pos: [3]float64{-0.3, 0, 0}, Vel: [3]float64{1, 0, 0}, Color: [4]float64{1, 1, 0, 1}},
		{Radius: DefaultBallRadius, Pos: [3]float64{0.3, 0, 0}, Vel: [3]float64{-1, 0, 0}, Color: [4]float64{1, 0, 0, 1}},
	}
	return cfg
}

// rain: a ring of balls released near the top of the boundary.
func rain() *Config {
	cfg := DefaultConfig()
	cfg.Balls = cfg.Balls[:0]
	const n = 12
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / n
		cfg.Balls = append(cfg.Balls, BallConfig{
			Radius: DefaultBallRadius,
			Pos:    [3]float64{0.3 * math.Cos(angle), 0.6, 0.3 * math.Sin(angle)},
			Color:  [4]float64{0.3 + 0.7*float64(i)/n, 0.4, 1 - 0.7*float64(i)/n, 1},
		})
	}
	return cfg
}

// pile: a loose vertical stack that settles at the bottom, exercising the
// relaxation loop under sustained simultaneous contacts.
func pile() *Config {
	cfg := DefaultConfig()
	cfg.Balls = cfg.Balls[:0]
	for i := 0; i < 6; i++ {
		cfg.Balls = append(cfg.Balls, BallConfig{
			Radius: DefaultBallRadius,
			Pos:    [3]float64{0.01 * float64(i%2), -0.5 + 0.1*float64(i), 0},
			Color:  [4]float64{0.9, 0.9, 0.9, 1},
		})
	}
	return cfg
}
