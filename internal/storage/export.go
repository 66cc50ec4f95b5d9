package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballsim/internal/sim"
)

type ExportData struct {
	ID       string             `json:"id"`
	Scene    string             `json:"scene"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][]sim.BodyState  `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run (metadata plus trajectory) as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames [][]sim.BodyState, times []float64) error {
	data := ExportData{
		ID:       meta.ID,
		Scene:    meta.Scene,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Times:    times,
		Frames:   frames,
		Metrics:  meta.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
