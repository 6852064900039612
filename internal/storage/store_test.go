package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/vmath"
)

func runFalling(t *testing.T) *dynamo.Result {
	t.Helper()
	w, err := physics.New(physics.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	w.MustAddBody(physics.StaticBox(vmath.Vec(0, -1), 20, 2))
	ball := physics.Circle(vmath.Vec(0, 5), 0.5, 2)
	ball.Name = "ball"
	w.MustAddBody(ball)

	cfg := dynamo.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 0.5
	result, err := dynamo.New(w).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	result.Metrics["energy"] = 1.5
	return result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := runFalling(t)
	runID, err := st.Save(RunMetadata{Scene: "test", Seed: 42, Dt: 0.1, Duration: 0.5}, config.DefaultConfig(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "test" {
		t.Errorf("expected scene 'test', got '%s'", meta.Scene)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}
	if meta.Steps != 5 || meta.Frames != 6 {
		t.Errorf("expected 5 steps and 6 frames, got %d and %d", meta.Steps, meta.Frames)
	}
	if meta.Stats.Steps != 5 {
		t.Errorf("expected stats for 5 steps, got %+v", meta.Stats)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 12 {
		t.Errorf("expected 12 samples, got %d", len(samples))
	}
	if samples[1].Name != "ball" || samples[1].Shape != "circle" || samples[1].Mass != 2 {
		t.Errorf("unexpected sample %+v", samples[1])
	}
	if !samples[0].Static || samples[1].Static {
		t.Errorf("static flags not preserved: %+v %+v", samples[0], samples[1])
	}

	scene, err := st.LoadScene(runID)
	if err != nil {
		t.Fatalf("load scene failed: %v", err)
	}
	if scene.Scene != "stack" {
		t.Errorf("expected scene stack, got %s", scene.Scene)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	result := runFalling(t)
	if _, err := st.Save(RunMetadata{Scene: "a"}, nil, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{Scene: "b"}, nil, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Scene != "a" || runs[1].Scene != "b" {
		t.Errorf("expected runs ordered a, b; got %s, %s", runs[0].Scene, runs[1].Scene)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(RunMetadata{Scene: "test"}, config.DefaultConfig(), runFalling(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, framesFile, sceneFile} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestSeries(t *testing.T) {
	samples := []Sample{
		{Step: 0, Time: 0, Name: "floor", Static: true, Mass: 0},
		{Step: 0, Time: 0, Name: "a", Mass: 2, Position: vmath.Vec(0, 3), Velocity: vmath.Vec(1, 0)},
		{Step: 0, Time: 0, Name: "b", Mass: 1, Velocity: vmath.Vec(0, 2)},
		{Step: 1, Time: 0.1, Name: "a", Mass: 2, Position: vmath.Vec(0, 2), Velocity: vmath.Vec(0, 0)},
		{Step: 1, Time: 0.1, Name: "b", Mass: 1, Velocity: vmath.Vec(0, 1)},
	}

	ts, ys, err := Series(samples, "a", "y")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 2 || ys[0] != 3 || ys[1] != 2 || ts[1] != 0.1 {
		t.Errorf("unexpected y series %v %v", ts, ys)
	}

	_, ke, err := Series(samples, "", "ke")
	if err != nil {
		t.Fatal(err)
	}
	// ½·2·1 + ½·1·4, then ½·1·1
	if math.Abs(ke[0]-3) > 1e-12 || math.Abs(ke[1]-0.5) > 1e-12 {
		t.Errorf("unexpected ke series %v", ke)
	}

	if _, _, err := Series(samples, "a", "jerk"); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, _, err := Series(samples, "nobody", "x"); err == nil {
		t.Error("expected error for unknown body")
	}
}

func TestWriteJSON(t *testing.T) {
	result := runFalling(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewExport("test", 0.1, 0.5, result)); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Scene  string `json:"scene"`
		Steps  int    `json:"steps"`
		Frames []struct {
			Bodies []struct {
				Handle string
				Shape  string
			}
		} `json:"frames"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Scene != "test" || decoded.Steps != 5 {
		t.Errorf("unexpected export header %+v", decoded)
	}
	if got := decoded.Frames[0].Bodies[1]; got.Shape != "circle" || got.Handle != "body#1.1" {
		t.Errorf("unexpected body encoding %+v", got)
	}
}
