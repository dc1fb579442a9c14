package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/okalex/rebound/internal/storage"
	"github.com/okalex/rebound/internal/trace"
)

type ExportData struct {
	Meta     storage.RunMetadata `json:"meta"`
	Steps    int                 `json:"steps"`
	TimesMs  []float64           `json:"times_ms"`
	Position []float64           `json:"position"`
	Velocity []float64           `json:"velocity"`
}

func buildExportData(meta storage.RunMetadata, samples []trace.Sample) ExportData {
	data := ExportData{
		Meta:     meta,
		Steps:    len(samples),
		TimesMs:  make([]float64, len(samples)),
		Position: make([]float64, len(samples)),
		Velocity: make([]float64, len(samples)),
	}
	for i, s := range samples {
		data.TimesMs[i] = s.TimeMillis
		data.Position[i] = s.Position
		data.Velocity[i] = s.Velocity
	}
	return data
}

func ExportJSON(path string, meta storage.RunMetadata, samples []trace.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExportData(meta, samples))
}

func ExportJSONStdout(meta storage.RunMetadata, samples []trace.Sample) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExportData(meta, samples))
}

func ExportCSV(w io.Writer, samples []trace.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time_ms", "position", "velocity"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.TimeMillis, 'f', 6, 64),
			strconv.FormatFloat(s.Position, 'f', 6, 64),
			strconv.FormatFloat(s.Velocity, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
