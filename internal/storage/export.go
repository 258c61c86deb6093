package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/motionsim/internal/motion"
)

// ExportData is the flat JSON shape of one run, column-oriented so it can be
// fed straight into any tabular or time-series tool.
type ExportData struct {
	ID         string             `json:"id"`
	Profile    string             `json:"profile"`
	Controller string             `json:"controller"`
	Plant      string             `json:"plant"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	TimeS      []float64          `json:"time_s"`
	CmdVel     []float64          `json:"cmd_vel"`
	CmdPos     []float64          `json:"cmd_pos"`
	Force      []float64          `json:"force"`
	ObjVel     []float64          `json:"obj_vel"`
	ObjPos     []float64          `json:"obj_pos"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExport(meta *RunMetadata, records []motion.Record) ExportData {
	data := ExportData{
		ID:         meta.ID,
		Profile:    meta.Profile,
		Controller: meta.Controller,
		Plant:      meta.Plant,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(records),
		TimeS:      make([]float64, len(records)),
		CmdVel:     make([]float64, len(records)),
		CmdPos:     make([]float64, len(records)),
		Force:      make([]float64, len(records)),
		ObjVel:     make([]float64, len(records)),
		ObjPos:     make([]float64, len(records)),
		Metrics:    meta.Metrics,
	}
	for i, rec := range records {
		data.TimeS[i] = rec.Time
		data.CmdVel[i] = rec.CmdVel
		data.CmdPos[i] = rec.CmdPos
		data.Force[i] = rec.Force
		data.ObjVel[i] = rec.ObjVel
		data.ObjPos[i] = rec.ObjPos
	}
	return data
}

func ExportJSON(w io.Writer, meta *RunMetadata, records []motion.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(meta, records))
}

func ExportJSONFile(path string, meta *RunMetadata, records []motion.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, records)
}
