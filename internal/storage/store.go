package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/motionsim/internal/motion"
)

// Columns of records.csv, in file order.
var columns = []string{"time_s", "cmd_vel", "cmd_pos", "force", "obj_acc", "obj_vel", "obj_pos"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Profile    string             `json:"profile"`
	Controller string             `json:"controller"`
	Plant      string             `json:"plant"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run into its own directory: metadata.json plus the full
// record series as records.csv. Returns the generated run id.
func (s *Store) Save(profile, controller, plantType string, dt, duration float64, result *motion.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", profile, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Profile:    profile,
		Controller: controller,
		Plant:      plantType,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "records.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return "", err
	}
	for _, rec := range result.Records {
		row := []string{
			strconv.FormatFloat(rec.Time, 'f', 6, 64),
			strconv.FormatFloat(rec.CmdVel, 'f', 6, 64),
			strconv.FormatFloat(rec.CmdPos, 'f', 6, 64),
			strconv.FormatFloat(rec.Force, 'f', 6, 64),
			strconv.FormatFloat(rec.ObjAcc, 'f', 6, 64),
			strconv.FormatFloat(rec.ObjVel, 'f', 6, 64),
			strconv.FormatFloat(rec.ObjPos, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRecords reads a run's record series back from records.csv.
func (s *Store) LoadRecords(runID string) ([]motion.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "records.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []motion.Record{}, nil
	}

	records := make([]motion.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(columns) {
			continue
		}
		vals := make([]float64, len(columns))
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		records = append(records, motion.Record{
			Time:   vals[0],
			CmdVel: vals[1],
			CmdPos: vals[2],
			Force:  vals[3],
			ObjAcc: vals[4],
			ObjVel: vals[5],
			ObjPos: vals[6],
		})
	}

	return records, nil
}
