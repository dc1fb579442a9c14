package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/okalex/rebound/internal/trace"
)

// Store persists spring runs on disk, one directory per run holding a
// metadata.json and a samples.csv.
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
	ID                string        `json:"id"`
	Preset            string        `json:"preset,omitempty"`
	Timestamp         time.Time     `json:"timestamp"`
	Tension           float64       `json:"tension"`
	Friction          float64       `json:"friction"`
	From              float64       `json:"from"`
	To                float64       `json:"to"`
	Velocity          float64       `json:"velocity"`
	TimestepMillis    float64       `json:"timestep_ms"`
	OvershootClamping bool          `json:"overshoot_clamping"`
	Summary           trace.Summary `json:"summary"`
}

func (s *Store) Save(meta RunMetadata, samples []trace.Sample) (string, error) {
	runID := fmt.Sprintf("spring_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time_ms", "position", "velocity"}); err != nil {
		return "", err
	}
	for _, sample := range samples {
		row := []string{
			strconv.FormatFloat(sample.TimeMillis, 'f', 6, 64),
			strconv.FormatFloat(sample.Position, 'f', 6, 64),
			strconv.FormatFloat(sample.Velocity, 'f', 6, 64),
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]trace.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []trace.Sample{}, nil
	}

	samples := make([]trace.Sample, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		pos, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		vel, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		samples = append(samples, trace.Sample{TimeMillis: t, Position: pos, Velocity: vel})
	}

	return samples, nil
}
