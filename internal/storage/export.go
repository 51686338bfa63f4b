package storage

import (
	"encoding/json"
	"io"
)

type ExportFrame struct {
	Time      float64 `json:"t"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Animating bool    `json:"animating"`
}

type ExportData struct {
	RunMetadata
	Trajectory []ExportFrame `json:"trajectory"`
}

// ExportJSON writes the metadata and every frame of a run as one JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Trajectory:  make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Trajectory[i] = ExportFrame{
			Time:      f.Time,
			X:         f.Position.X,
			Y:         f.Position.Y,
			VX:        f.Velocity.X,
			VY:        f.Velocity.Y,
			Animating: f.Animating,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportMetadata writes only metadata.json of a run.
func (s *Store) ExportMetadata(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
