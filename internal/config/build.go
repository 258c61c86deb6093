package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/san-kum/motionsim/internal/control"
	"github.com/san-kum/motionsim/internal/motion"
	"github.com/san-kum/motionsim/internal/plant"
	"github.com/san-kum/motionsim/internal/profile"
	"github.com/san-kum/motionsim/internal/timeseq"
)

// Versions each section of a Config is written against. A stored record is
// accepted when its major version matches; minor and patch drift is fine
// (older records just miss the newer optional fields).
const (
	TimeVersion       = "0.3.0"
	ProfileVersion    = "0.1.0"
	ControllerVersion = "0.2.0"
	PlantVersion      = "0.2.0"
)

// ErrIncompatibleVersion indicates a config record from a different major
// version than this build supports.
var ErrIncompatibleVersion = errors.New("config: incompatible record version")

// VersionError carries which section failed the compatibility check and the
// two versions involved.
type VersionError struct {
	Section   string
	Supported string
	Got       string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("config: %s record version %s incompatible with supported %s",
		e.Section, e.Got, e.Supported)
}

func (e *VersionError) Unwrap() error { return ErrIncompatibleVersion }

// checkVersion rejects records whose major version differs from the
// supported one. An empty version means the record was written in place and
// is taken as current.
func checkVersion(section, supported, got string) error {
	if got == "" {
		return nil
	}
	sup, err := semver.NewVersion(supported)
	if err != nil {
		return fmt.Errorf("config: bad supported %s version %q: %w", section, supported, err)
	}
	rec, err := semver.NewVersion(got)
	if err != nil {
		return fmt.Errorf("config: bad %s record version %q: %w", section, got, err)
	}
	if rec.Major() != sup.Major() {
		return &VersionError{Section: section, Supported: supported, Got: got}
	}
	return nil
}

// BuildClock validates the time section and constructs the sequencer.
func (c *Config) BuildClock() (*timeseq.DiscreteTime, error) {
	if err := checkVersion("time", TimeVersion, c.Time.Version); err != nil {
		return nil, err
	}
	return timeseq.New(c.Time.Dt, c.Time.Duration)
}

// BuildProfile validates the profile section and constructs the profile.
func (c *Config) BuildProfile() (motion.Profile, error) {
	if err := checkVersion("profile", ProfileVersion, c.Profile.Version); err != nil {
		return nil, err
	}
	switch c.Profile.Type {
	case "trapezoidal":
		return profile.NewTrapezoid(c.Profile.MaxVelocity, c.Profile.Acceleration, c.Profile.Distance)
	case "impulse":
		return profile.NewImpulse(c.Profile.ImpulseVel, c.Profile.ImpulsePos, c.Profile.ImpulseSteps), nil
	default:
		return nil, fmt.Errorf("config: unknown profile type %q", c.Profile.Type)
	}
}

// BuildController validates the controller section and constructs the
// controller. Gains are not range-checked: a negative gain is a tuning
// mistake, not a configuration error.
func (c *Config) BuildController() (motion.Controller, error) {
	if err := checkVersion("controller", ControllerVersion, c.Controller.Version); err != nil {
		return nil, err
	}
	switch c.Controller.Type {
	case "pid":
		return control.NewPID(control.Gains{
			Kvp: c.Controller.Kvp,
			Kvi: c.Controller.Kvi,
			Kvd: c.Controller.Kvd,
			Kpp: c.Controller.Kpp,
			Kpi: c.Controller.Kpi,
			Kpd: c.Controller.Kpd,
		}), nil
	case "step":
		return control.NewStep(c.Controller.Force, c.Controller.DelayS), nil
	case "impulse":
		return control.NewImpulse(c.Controller.Force, c.Controller.DelayS, c.Controller.OnTicks), nil
	case "none":
		return control.NewNone(), nil
	default:
		return nil, fmt.Errorf("config: unknown controller type %q", c.Controller.Type)
	}
}

// BuildPlant validates the plant section and constructs the plant. An empty
// type means a bare point mass.
func (c *Config) BuildPlant() (motion.Plant, error) {
	if err := checkVersion("plant", PlantVersion, c.Plant.Version); err != nil {
		return nil, err
	}
	switch c.Plant.Type {
	case "", "point_mass":
		return plant.NewPointMass(c.Plant.Mass)
	case "mds":
		return plant.NewMassDamperSpring(plant.MDSParams{
			Mass:            c.Plant.Mass,
			Damper:          c.Plant.Damper,
			Spring:          c.Plant.Spring,
			BalancePos:      c.Plant.BalancePos,
			StaticFriction:  c.Plant.StaticFriction,
			KineticFriction: c.Plant.KineticFriction,
		})
	default:
		return nil, fmt.Errorf("config: unknown plant type %q", c.Plant.Type)
	}
}

// BuildFlow constructs all four components fail-fast and wires them into a
// run-ready flow.
func (c *Config) BuildFlow() (*motion.Flow, error) {
	clock, err := c.BuildClock()
	if err != nil {
		return nil, err
	}
	prof, err := c.BuildProfile()
	if err != nil {
		return nil, err
	}
	ctrl, err := c.BuildController()
	if err != nil {
		return nil, err
	}
	pl, err := c.BuildPlant()
	if err != nil {
		return nil, err
	}
	return motion.NewFlow(clock, prof, ctrl, pl), nil
}
