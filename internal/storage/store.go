// Package storage persists run outputs: per-run metadata, the diagnostic
// velocity trace, and restart/visualization checkpoints.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/flapsim/internal/diagnostics"
)

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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Bodies    []string           `json:"bodies"`
	Advances  int                `json:"advances"`
	FinalTime float64            `json:"final_time"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is one run's output directory. It doubles as the driver's restart
// and visualization writers: restarts overwrite a single checkpoint file,
// visualization dumps append to an index of emitted frames.
type Run struct {
	id  string
	dir string
}

// NewRun creates a fresh run directory named after the label and the
// current unix time.
func (s *Store) NewRun(label string) (*Run, error) {
	id := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Run{id: id, dir: dir}, nil
}

func (r *Run) ID() string  { return r.id }
func (r *Run) Dir() string { return r.dir }

type restartCheckpoint struct {
	Step int     `json:"step"`
	Time float64 `json:"time"`
}

// WriteRestart saves the latest checkpoint, replacing any previous one.
func (r *Run) WriteRestart(step int, t float64) error {
	f, err := os.Create(filepath.Join(r.dir, "restart.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(restartCheckpoint{Step: step, Time: t})
}

// WriteViz appends the dump step to the visualization index.
func (r *Run) WriteViz(step int, t float64) error {
	f, err := os.OpenFile(filepath.Join(r.dir, "viz_index.csv"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d,%s\n", step, strconv.FormatFloat(t, 'f', 6, 64))
	return err
}

// Finalize writes the run metadata and the diagnostic trace.
func (r *Run) Finalize(meta RunMetadata, samples []diagnostics.Sample, bodyNames []string) error {
	meta.ID = r.id
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(r.dir, "trace.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(samples) == 0 {
		return nil
	}

	header := []string{"step", "time"}
	for bi, name := range bodyNames {
		if bi >= len(samples[0].Velocities) {
			break
		}
		for ci := range samples[0].Velocities[bi] {
			header = append(header, fmt.Sprintf("%s_v%d", name, ci))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.Time, 'f', 6, 64),
		}
		for _, vel := range s.Velocities {
			for _, v := range vel {
				row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadTrace reads the trace back as column headers, times, and one row of
// velocity components per sample.
func (s *Store) LoadTrace(runID string) ([]string, []float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, []float64{}, [][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		row := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, err
			}
			row = append(row, v)
		}
		times = append(times, t)
		rows = append(rows, row)
	}

	return header, times, rows, nil
}
