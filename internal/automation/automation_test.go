package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/motionsim/internal/config"
)

func TestApplyParam(t *testing.T) {
	cfg := config.DefaultConfig()

	if err := ApplyParam(cfg, "kvp", 12.5); err != nil {
		t.Fatalf("ApplyParam(kvp): %v", err)
	}
	if cfg.Controller.Kvp != 12.5 {
		t.Errorf("kvp = %v, want 12.5", cfg.Controller.Kvp)
	}

	if err := ApplyParam(cfg, "mass", 3.0); err != nil {
		t.Fatalf("ApplyParam(mass): %v", err)
	}
	if cfg.Plant.Mass != 3.0 {
		t.Errorf("mass = %v, want 3.0", cfg.Plant.Mass)
	}

	if err := ApplyParam(cfg, "bogus", 1.0); err == nil {
		t.Error("ApplyParam(bogus) succeeded, want error")
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Time.Dt = 0.01
	base.Time.Duration = 2.0

	sweep := &ParameterSweep{
		Base:      base,
		ParamName: "kvp",
		ParamMin:  10,
		ParamMax:  30,
		NumSteps:  3,
	}

	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].ParamValue != 10 || results[2].ParamValue != 30 {
		t.Errorf("param values = %v, %v; want 10, 30", results[0].ParamValue, results[2].ParamValue)
	}
	for i, r := range results {
		if r.Metrics == nil {
			t.Errorf("result %d has no metrics", i)
		}
		if _, ok := r.Metrics["pos_tracking_rms"]; !ok {
			t.Errorf("result %d missing pos_tracking_rms", i)
		}
	}
	// the base config must not be touched by the sweep
	if base.Controller.Kvp != config.DefaultKvp {
		t.Errorf("base kvp mutated to %v", base.Controller.Kvp)
	}
}

func TestRunSweep_TooFewSteps(t *testing.T) {
	sweep := &ParameterSweep{Base: config.DefaultConfig(), ParamName: "kvp", NumSteps: 1}
	if _, err := RunSweep(context.Background(), sweep); err == nil {
		t.Error("RunSweep with 1 step succeeded, want error")
	}
}

func TestScenario(t *testing.T) {
	yml := `name: smoke
description: two short runs
steps:
  - preset: short-move
    save_as: first
  - params:
      duration_s: 1.0
      kvp: 20
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if scenario.Name != "smoke" || len(scenario.Steps) != 2 {
		t.Fatalf("scenario = %q with %d steps", scenario.Name, len(scenario.Steps))
	}

	results, err := RunScenario(context.Background(), scenario)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].SaveAs != "first" {
		t.Errorf("save_as = %q, want first", results[0].SaveAs)
	}
	for i, r := range results {
		if r.Result == nil || len(r.Result.Records) == 0 {
			t.Errorf("step %d produced no records", i+1)
		}
	}
}

func TestRunScenario_UnknownPreset(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{Preset: "nope"}}}
	if _, err := RunScenario(context.Background(), scenario); err == nil {
		t.Error("unknown preset succeeded, want error")
	}
}
