package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	sceneFile    = "scene.yaml"
)

var framesHeader = []string{"step", "time", "body", "name", "shape", "static", "mass", "x", "y", "vx", "vy"}

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
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
	Stats     physics.Stats      `json:"stats"`
}

// Sample is one body in one recorded frame.
type Sample struct {
	Step     int
	Time     float64
	Body     string
	Name     string
	Shape    string
	Static   bool
	Mass     float64
	Position vmath.Vector2D
	Velocity vmath.Vector2D
}

// Save writes a run directory with metadata.json, frames.csv and the
// expanded scene.yaml, and returns the run ID.
func (s *Store) Save(meta RunMetadata, scene *config.Config, result *dynamo.Result) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	}
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Frames = len(result.Frames)
	meta.Metrics = result.Metrics
	meta.Stats = result.Stats

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if scene != nil {
		if err := config.Save(filepath.Join(runDir, sceneFile), scene); err != nil {
			return "", fmt.Errorf("write scene: %w", err)
		}
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}

	for _, fr := range frames {
		for _, b := range fr.Bodies {
			row := []string{
				strconv.Itoa(fr.Step),
				formatFloat(fr.Time),
				b.Handle.String(),
				b.Name,
				b.Shape.String(),
				strconv.FormatBool(b.Static),
				formatFloat(b.Mass),
				formatFloat(b.Position.X),
				formatFloat(b.Position.Y),
				formatFloat(b.Velocity.X),
				formatFloat(b.Velocity.Y),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadScene reads back the expanded scene a run was recorded from.
func (s *Store) LoadScene(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, sceneFile))
}

// LoadSamples reads frames.csv. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(framesHeader) {
			continue
		}
		smp, err := parseSample(rec)
		if err != nil {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseSample(rec []string) (Sample, error) {
	step, err := strconv.Atoi(rec[0])
	if err != nil {
		return Sample{}, err
	}
	static, err := strconv.ParseBool(rec[5])
	if err != nil {
		return Sample{}, err
	}

	var nums [6]float64
	for i, col := range []int{1, 6, 7, 8, 9, 10} {
		if nums[i], err = strconv.ParseFloat(rec[col], 64); err != nil {
			return Sample{}, err
		}
	}

	return Sample{
		Step:     step,
		Time:     nums[0],
		Body:     rec[2],
		Name:     rec[3],
		Shape:    rec[4],
		Static:   static,
		Mass:     nums[1],
		Position: vmath.Vec(nums[2], nums[3]),
		Velocity: vmath.Vec(nums[4], nums[5]),
	}, nil
}
