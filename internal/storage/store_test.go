package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/motionsim/internal/motion"
)

func sampleResult() *motion.Result {
	return &motion.Result{
		Records: []motion.Record{
			{Time: 0, CmdVel: 0, CmdPos: 0, Force: 0, ObjVel: 0, ObjPos: 0},
			{Time: 0.1, CmdVel: 0.2, CmdPos: 0.01, Force: 10, ObjAcc: 10, ObjVel: 1, ObjPos: 0.1},
			{Time: 0.2, CmdVel: 0.4, CmdPos: 0.04, Force: -3, ObjAcc: -3, ObjVel: 0.7, ObjPos: 0.17},
		},
		Metrics:    map[string]float64{"vel_tracking_rms": 0.42},
		StepsTaken: 3,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("trapezoidal", "pid", "point_mass", 0.1, 0.2, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Profile != "trapezoidal" || meta.Controller != "pid" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Metrics["vel_tracking_rms"] != 0.42 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if math.Abs(records[1].Force-10) > 1e-9 {
		t.Errorf("force = %g, want 10", records[1].Force)
	}
	if math.Abs(records[2].ObjPos-0.17) > 1e-6 {
		t.Errorf("obj pos = %g, want 0.17", records[2].ObjPos)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save("trapezoidal", "pid", "point_mass", 0.1, 0.2, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestList_MissingDir(t *testing.T) {
	st := New("/nonexistent/motionsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Error("expected empty list")
	}
}

func TestExportJSONFile(t *testing.T) {
	result := sampleResult()
	meta := &RunMetadata{ID: "x_2", Profile: "impulse", Controller: "none", Dt: 0.1, Duration: 0.2, Metrics: result.Metrics}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSONFile(path, meta, result.Records); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != "x_2" || data.Profile != "impulse" {
		t.Errorf("id = %q, profile = %q", data.ID, data.Profile)
	}
	if len(data.CmdVel) != 3 || data.CmdVel[2] != 0.4 {
		t.Errorf("cmd_vel = %v", data.CmdVel)
	}
}

func TestExportJSON(t *testing.T) {
	result := sampleResult()
	meta := &RunMetadata{ID: "x_1", Profile: "trapezoidal", Dt: 0.1, Duration: 0.2, Metrics: result.Metrics}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result.Records); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Steps != 3 {
		t.Errorf("steps = %d, want 3", data.Steps)
	}
	if len(data.ObjPos) != 3 || data.ObjPos[2] != 0.17 {
		t.Errorf("obj_pos = %v", data.ObjPos)
	}
}
