// Package automation scripts batches of runs: YAML scenarios executed in
// order and parameter sweeps fanned out across goroutines.
package automation

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/motionsim/internal/config"
	"github.com/san-kum/motionsim/internal/metrics"
	"github.com/san-kum/motionsim/internal/motion"
)

// Scenario defines a scripted run sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Sections left empty keep the
// defaults of the named preset, or the global defaults when no preset is
// given.
type ScenarioStep struct {
	Preset string             `yaml:"preset,omitempty"`
	Config *config.Config     `yaml:"config,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
	SaveAs string             `yaml:"save_as,omitempty"`
}

// StepResult pairs a scenario step with its run outcome and the resolved
// configuration it ran with.
type StepResult struct {
	Step   int
	SaveAs string
	Config *config.Config
	Result *motion.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// stepConfig resolves the effective config for one step.
func stepConfig(step ScenarioStep) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Config != nil:
		cfg = step.Config
	case step.Preset != "":
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("automation: unknown preset %q", step.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	for name, val := range step.Params {
		if err := ApplyParam(cfg, name, val); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario, in order.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		flow, err := cfg.BuildFlow()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		AttachStandardMetrics(flow, cfg)

		result, err := flow.Execute(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: i + 1, SaveAs: step.SaveAs, Config: cfg, Result: result})
	}

	return results, nil
}

// AttachStandardMetrics wires the usual run quality metrics onto a flow.
func AttachStandardMetrics(flow *motion.Flow, cfg *config.Config) {
	flow.AddMetric(metrics.NewVelocityTracking())
	flow.AddMetric(metrics.NewPositionTracking())
	flow.AddMetric(metrics.NewControlEffort())
	flow.AddMetric(metrics.NewOvershoot(cfg.Profile.Distance))
	flow.AddMetric(metrics.NewSettlingTime(0.01))
}

// ApplyParam overrides one named scalar in a run configuration. The names
// match the config file keys.
func ApplyParam(cfg *config.Config, name string, val float64) error {
	switch name {
	case "delta_t_s":
		cfg.Time.Dt = val
	case "duration_s":
		cfg.Time.Duration = val
	case "max_velocity":
		cfg.Profile.MaxVelocity = val
	case "acceleration":
		cfg.Profile.Acceleration = val
	case "distance":
		cfg.Profile.Distance = val
	case "kvp":
		cfg.Controller.Kvp = val
	case "kvi":
		cfg.Controller.Kvi = val
	case "kvd":
		cfg.Controller.Kvd = val
	case "kpp":
		cfg.Controller.Kpp = val
	case "kpi":
		cfg.Controller.Kpi = val
	case "kpd":
		cfg.Controller.Kpd = val
	case "force":
		cfg.Controller.Force = val
	case "mass":
		cfg.Plant.Mass = val
	case "damper":
		cfg.Plant.Damper = val
	case "spring":
		cfg.Plant.Spring = val
	default:
		return fmt.Errorf("automation: unknown parameter %q", name)
	}
	return nil
}

// ParameterSweep runs the same configuration across a range of values of
// one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the outcome of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	FinalPos   float64
	FinalVel   float64
	Err        error
}

// RunSweep executes all sweep points. Points are independent runs, so they
// execute concurrently; each individual run still steps sequentially.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("automation: sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			paramVal := sweep.ParamMin + float64(idx)*paramStep
			results[idx].ParamValue = paramVal

			cfg := *sweep.Base
			if err := ApplyParam(&cfg, sweep.ParamName, paramVal); err != nil {
				results[idx].Err = err
				return
			}

			flow, err := cfg.BuildFlow()
			if err != nil {
				results[idx].Err = err
				return
			}
			AttachStandardMetrics(flow, &cfg)

			result, err := flow.Execute(ctx)
			if err != nil {
				results[idx].Err = err
				return
			}

			results[idx].Metrics = result.Metrics
			if n := len(result.Records); n > 0 {
				last := result.Records[n-1]
				results[idx].FinalPos = last.ObjPos
				results[idx].FinalVel = last.ObjVel
			}
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}
