package config

import "github.com/okalex/rebound"

var Presets = map[string]*Config{
	"default": {
		Tension: rebound.DefaultOrigamiConfig.Tension, Friction: rebound.DefaultOrigamiConfig.Friction,
		From: 0, To: 1,
	},
	"gentle": {
		Tension: 120, Friction: 14,
		From: 0, To: 1,
	},
	"wobbly": {
		Tension: 180, Friction: 12,
		From: 0, To: 1,
	},
	"stiff": {
		Tension: 210, Friction: 20,
		From: 0, To: 1,
	},
	"slow": {
		Tension: 280, Friction: 60,
		From: 0, To: 1,
	},
	"bouncy": {
		Bounciness: 20, Speed: 12,
		From: 0, To: 1,
	},
	"coasting": {
		Tension: rebound.CoastingConfigWithOrigamiFriction(7).Tension,
		Friction: rebound.CoastingConfigWithOrigamiFriction(7).Friction,
		From:     0, To: 0, Velocity: 50,
	},
}

func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Tension = preset.Tension
	cfg.Friction = preset.Friction
	cfg.OrigamiTension = preset.OrigamiTension
	cfg.OrigamiFriction = preset.OrigamiFriction
	cfg.Bounciness = preset.Bounciness
	cfg.Speed = preset.Speed
	cfg.From = preset.From
	cfg.To = preset.To
	cfg.Velocity = preset.Velocity
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
