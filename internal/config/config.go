package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 6.0
	DefaultVelocity = 1.0
	DefaultAccel    = 2.0
	DefaultDistance = 5.0
	DefaultMass     = 1.0
	DefaultKvp      = 50.0
)

// Config is one full simulation run: the discrete clock, the motion profile,
// the controller and the plant. Each section carries the semantic version it
// was written against; building rejects records from a different major
// version.
type Config struct {
	Time       TimeConfig       `yaml:"time" json:"time"`
	Profile    ProfileConfig    `yaml:"profile" json:"profile"`
	Controller ControllerConfig `yaml:"controller" json:"controller"`
	Plant      PlantConfig      `yaml:"plant" json:"plant"`
}

type TimeConfig struct {
	Version  string  `yaml:"version,omitempty" json:"version,omitempty"`
	Dt       float64 `yaml:"delta_t_s" json:"delta_t_s"`
	Duration float64 `yaml:"duration_s" json:"duration_s"`
}

type ProfileConfig struct {
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Type    string `yaml:"type" json:"type"` // trapezoidal | impulse

	MaxVelocity  float64 `yaml:"max_velocity,omitempty" json:"max_velocity,omitempty"`
	Acceleration float64 `yaml:"acceleration,omitempty" json:"acceleration,omitempty"`
	Distance     float64 `yaml:"distance,omitempty" json:"distance,omitempty"`

	ImpulseVel   float64 `yaml:"impulse_vel,omitempty" json:"impulse_vel,omitempty"`
	ImpulsePos   float64 `yaml:"impulse_pos,omitempty" json:"impulse_pos,omitempty"`
	ImpulseSteps int     `yaml:"impulse_steps,omitempty" json:"impulse_steps,omitempty"`
}

type ControllerConfig struct {
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Type    string `yaml:"type" json:"type"` // pid | step | impulse | none

	Kvp float64 `yaml:"kvp,omitempty" json:"kvp,omitempty"`
	Kvi float64 `yaml:"kvi,omitempty" json:"kvi,omitempty"`
	Kvd float64 `yaml:"kvd,omitempty" json:"kvd,omitempty"`
	Kpp float64 `yaml:"kpp,omitempty" json:"kpp,omitempty"`
	Kpi float64 `yaml:"kpi,omitempty" json:"kpi,omitempty"`
	Kpd float64 `yaml:"kpd,omitempty" json:"kpd,omitempty"`

	Force   float64 `yaml:"force,omitempty" json:"force,omitempty"`
	DelayS  float64 `yaml:"delay_s,omitempty" json:"delay_s,omitempty"`
	OnTicks int     `yaml:"on_ticks,omitempty" json:"on_ticks,omitempty"`
}

type PlantConfig struct {
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty"` // point_mass | mds

	Mass float64 `yaml:"mass" json:"mass"`

	Damper          float64 `yaml:"damper,omitempty" json:"damper,omitempty"`
	Spring          float64 `yaml:"spring,omitempty" json:"spring,omitempty"`
	BalancePos      float64 `yaml:"balance_pos,omitempty" json:"balance_pos,omitempty"`
	StaticFriction  float64 `yaml:"static_friction,omitempty" json:"static_friction,omitempty"`
	KineticFriction float64 `yaml:"kinetic_friction,omitempty" json:"kinetic_friction,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Time: TimeConfig{
			Version:  TimeVersion,
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
		Profile: ProfileConfig{
			Version:      ProfileVersion,
			Type:         "trapezoidal",
			MaxVelocity:  DefaultVelocity,
			Acceleration: DefaultAccel,
			Distance:     DefaultDistance,
		},
		Controller: ControllerConfig{
			Version: ControllerVersion,
			Type:    "pid",
			Kvp:     DefaultKvp,
		},
		Plant: PlantConfig{
			Version: PlantVersion,
			Type:    "point_mass",
			Mass:    DefaultMass,
		},
	}
}

// Load reads a run configuration, dispatching on the file extension: .json
// parses as JSON, everything else as YAML. Missing fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
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
