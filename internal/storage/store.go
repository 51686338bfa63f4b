// Package storage keeps recorded runs on disk, one directory per run holding
// metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/scrollsim/internal/gesture"
	"github.com/san-kum/scrollsim/internal/scrollview"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"time", "x", "y", "vx", "vy", "animating"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Script        string             `json:"script"`
	Source        string             `json:"source"`
	Timestamp     time.Time          `json:"timestamp"`
	FrameRate     int                `json:"frame_rate"`
	DurationMs    float64            `json:"duration_ms"`
	Frames        int                `json:"frames"`
	Integrator    string             `json:"integrator"`
	PhysicsPreset string             `json:"physics_preset"`
	Geometry      gesture.Geometry   `json:"geometry"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes result as a new run and returns its id.
func (s *Store) Save(result *gesture.Result, integrator, physicsPreset string) (string, error) {
	ts := s.now()
	runID, runDir, err := s.allocate(result.Script, ts)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Script:        result.Script,
		Source:        result.Source,
		Timestamp:     ts,
		FrameRate:     result.FrameRate,
		DurationMs:    result.DurationMs,
		Frames:        len(result.Frames),
		Integrator:    integrator,
		PhysicsPreset: physicsPreset,
		Geometry:      result.Geometry,
		Metrics:       result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

// allocate creates a fresh run directory. Runs of the same script saved
// within one second get a numeric suffix.
func (s *Store) allocate(script string, ts time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s_%d", script, ts.Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s-%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeFrames(path string, frames []gesture.Frame) error {
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
		row := []string{
			strconv.FormatFloat(fr.Time, 'f', 3, 64),
			strconv.FormatFloat(fr.Position.X, 'f', 6, 64),
			strconv.FormatFloat(fr.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(fr.Velocity.X, 'f', 6, 64),
			strconv.FormatFloat(fr.Velocity.Y, 'f', 6, 64),
			strconv.FormatBool(fr.Animating),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

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

// LoadFrames reads the recorded frames of a run.
func (s *Store) LoadFrames(runID string) ([]gesture.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []gesture.Frame{}, nil
	}

	frames := make([]gesture.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [5]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		animating, err := strconv.ParseBool(record[5])
		if err != nil {
			return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
		}

		frames = append(frames, gesture.Frame{
			Time:      vals[0],
			Position:  scrollview.AxisVector{X: vals[1], Y: vals[2]},
			Velocity:  scrollview.AxisVector{X: vals[3], Y: vals[4]},
			Animating: animating,
		})
	}

	return frames, nil
}

// LoadResult rebuilds the result of a stored run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *gesture.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}

	return meta, &gesture.Result{
		Script:     meta.Script,
		Source:     meta.Source,
		FrameRate:  meta.FrameRate,
		DurationMs: meta.DurationMs,
		Geometry:   meta.Geometry,
		Frames:     frames,
		Metrics:    meta.Metrics,
	}, nil
}

// CopyFrames streams the raw frames.csv of a run to w.
func (s *Store) CopyFrames(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
