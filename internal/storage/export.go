package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
)

type ExportData struct {
	Scene    string             `json:"scene"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []dynamo.Frame     `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
	Stats    physics.Stats      `json:"stats"`
}

func NewExport(scene string, dt, duration float64, result *dynamo.Result) ExportData {
	return ExportData{
		Scene:    scene,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Frames:   result.Frames,
		Metrics:  result.Metrics,
		Stats:    result.Stats,
	}
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
