package config

// Presets are named starting points for common tuning checks.
var Presets = map[string]*Config{
	"smooth": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 8.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "trapezoidal", MaxVelocity: 1, Acceleration: 2, Distance: 5},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "pid", Kvp: 50, Kpp: 40},
		Plant:      PlantConfig{Version: PlantVersion, Type: "point_mass", Mass: 1},
	},
	"aggressive": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 4.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "trapezoidal", MaxVelocity: 3, Acceleration: 10, Distance: 5},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "pid", Kvp: 120, Kvi: 5, Kpp: 200},
		Plant:      PlantConfig{Version: PlantVersion, Type: "point_mass", Mass: 1},
	},
	"short-move": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 2.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "trapezoidal", MaxVelocity: 1, Acceleration: 2, Distance: 0.2},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "pid", Kvp: 50, Kpp: 40},
		Plant:      PlantConfig{Version: PlantVersion, Type: "point_mass", Mass: 1},
	},
	"heavy-load": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 10.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "trapezoidal", MaxVelocity: 0.5, Acceleration: 1, Distance: 3},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "pid", Kvp: 400, Kvi: 20, Kpp: 300},
		Plant:      PlantConfig{Version: PlantVersion, Type: "point_mass", Mass: 10},
	},
	"step-response": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 3.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "impulse", ImpulseVel: 0, ImpulsePos: 0, ImpulseSteps: 0},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "step", Force: 1, DelayS: 0.5},
		Plant:      PlantConfig{Version: PlantVersion, Type: "point_mass", Mass: 1},
	},
	"mds-settle": {
		Time:       TimeConfig{Version: TimeVersion, Dt: 0.001, Duration: 8.0},
		Profile:    ProfileConfig{Version: ProfileVersion, Type: "trapezoidal", MaxVelocity: 1, Acceleration: 2, Distance: 5},
		Controller: ControllerConfig{Version: ControllerVersion, Type: "pid", Kvp: 80, Kvi: 10, Kpp: 60},
		Plant: PlantConfig{Version: PlantVersion, Type: "mds", Mass: 1,
			Damper: 2, Spring: 5, KineticFriction: 0.1, StaticFriction: 0.15},
	},
}

// GetPreset returns a copy of the named preset, so callers can override
// fields without touching the shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
