// Package storage records completed runs on disk for later listing,
// plotting and export: one directory per run with metadata.json and a
// frames.csv of per-body trajectories.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/phys"
	"github.com/san-kum/ballsim/internal/sim"
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
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Passes      int                `json:"passes"`
	Restitution float64            `json:"restitution"`
	Bodies      int                `json:"bodies"`
	Steps       int                `json:"steps"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one completed run under a fresh run ID and returns it.
func (s *Store) Save(sceneName string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", sceneName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := 0
	if len(result.Frames) > 0 {
		bodies = len(result.Frames[0])
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       sceneName,
		Timestamp:   time.Now(),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Passes:      cfg.Passes,
		Restitution: cfg.Restitution,
		Bodies:      bodies,
		Steps:       result.StepsTaken,
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < bodies; i++ {
		header = append(header,
			fmt.Sprintf("px%d", i), fmt.Sprintf("py%d", i), fmt.Sprintf("pz%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+bodies*6)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, bs := range frame {
			for _, v := range [6]float64{bs.Pos.X, bs.Pos.Y, bs.Pos.Z, bs.Vel.X, bs.Vel.Y, bs.Vel.Z} {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
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

// LoadFrames reads back the recorded trajectory: one frame of body states
// per sampled time.
func (s *Store) LoadFrames(runID string) ([][]sim.BodyState, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]sim.BodyState{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([][]sim.BodyState, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 7 || (len(record)-1)%6 != 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		bodies := (len(record) - 1) / 6
		frame := make([]sim.BodyState, 0, bodies)
		ok := true
		for b := 0; b < bodies; b++ {
			var vals [6]float64
			for k := 0; k < 6; k++ {
				v, err := strconv.ParseFloat(record[1+b*6+k], 64)
				if err != nil {
					ok = false
					break
				}
				vals[k] = v
			}
			if !ok {
				break
			}
			frame = append(frame, sim.BodyState{
				Pos: phys.Vec3{X: vals[0], Y: vals[1], Z: vals[2]},
				Vel: phys.Vec3{X: vals[3], Y: vals[4], Z: vals[5]},
			})
		}
		if !ok {
			continue
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return frames, times, nil
}
