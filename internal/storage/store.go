// Package storage persists completed runs under a data directory, one
// subdirectory per run holding metadata.json and steps.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
	"github.com/shardul-317/slidesim/internal/surface"
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

// RunSummary mirrors sim.Summary with a JSON-safe liftoff field (NaN is
// not representable in JSON; absent means contact never broke).
type RunSummary struct {
	InitialEnergy  float64  `json:"initial_energy"`
	FinalEnergy    float64  `json:"final_energy"`
	FrictionWork   float64  `json:"friction_work"`
	LiftoffX       *float64 `json:"liftoff_x,omitempty"`
	MaxEnergyError float64  `json:"max_energy_error"`
	Steps          int      `json:"steps"`
	FinalPhase     string   `json:"final_phase"`
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Family        string             `json:"family"`
	SurfaceParams map[string]float64 `json:"surface_params,omitempty"`
	SurfaceExpr   string             `json:"surface_expr,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Dx            float64            `json:"dx"`
	XMin          float64            `json:"xmin"`
	XMax          float64            `json:"xmax"`
	V0            float64            `json:"v0"`
	Friction      string             `json:"friction"`
	Summary       RunSummary         `json:"summary"`
	Metrics       map[string]float64 `json:"metrics"`
}

// BuildSurface reconstructs the surface a saved run was produced on.
func (m *RunMetadata) BuildSurface() (surface.Surface, error) {
	switch m.Family {
	case "track":
		t := surface.NewTrack()
		if a, ok := m.SurfaceParams["amplitude"]; ok {
			t.Amplitude = a
		}
		if f, ok := m.SurfaceParams["frequency"]; ok {
			t.Frequency = f
		}
		return t, nil
	case "circle":
		return surface.NewCircle(m.SurfaceParams["radius"]), nil
	case "ellipse":
		return surface.NewEllipse(m.SurfaceParams["semi_major"], m.SurfaceParams["semi_minor"]), nil
	case "expr":
		return surface.NewExpr(m.SurfaceExpr)
	default:
		return nil, fmt.Errorf("unknown surface family: %q", m.Family)
	}
}

func summaryJSON(s sim.Summary) RunSummary {
	out := RunSummary{
		InitialEnergy:  s.InitialEnergy,
		FinalEnergy:    s.FinalEnergy,
		FrictionWork:   s.FrictionWork,
		MaxEnergyError: s.MaxEnergyError,
		Steps:          s.Steps,
		FinalPhase:     s.FinalPhase,
	}
	if !math.IsNaN(s.LiftoffX) {
		x := s.LiftoffX
		out.LiftoffX = &x
	}
	return out
}

var csvHeader = []string{
	"x", "v", "y", "ke", "pe", "w",
	"normal", "n_gravity", "n_centripetal", "accel", "phase",
}

// Save writes a run's metadata and per-step samples, returning the
// generated run id.
func (s *Store) Save(surf surface.Surface, dx, xmin, xmax, v0 float64, friction string, result *sim.Result) (string, error) {
	family := surf.Name()
	runID := fmt.Sprintf("%s_%d", family, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metrics := make(map[string]float64, len(result.Metrics))
	for k, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			metrics[k] = v
		}
	}

	meta := RunMetadata{
		ID:        runID,
		Family:    family,
		Timestamp: time.Now(),
		Dx:        dx,
		XMin:      xmin,
		XMax:      xmax,
		V0:        v0,
		Friction:  friction,
		Summary:   summaryJSON(result.Summary),
		Metrics:   metrics,
	}
	if d, ok := surf.(surface.Describable); ok {
		meta.SurfaceParams = d.Params()
	}
	if e, ok := surf.(*surface.Expr); ok {
		meta.SurfaceExpr = e.Source()
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

	csvFile, err := os.Create(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range result.Steps {
		row := []string{
			ff(r.X), ff(r.V), ff(r.Y), ff(r.KE), ff(r.PE), ff(r.W),
			ff(r.Normal), ff(r.NormalGravity), ff(r.NormalCentripetal),
			ff(r.Accel), r.Phase.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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

// LoadSteps reads back the per-step samples of a saved run.
func (s *Store) LoadSteps(runID string) ([]physics.StepResult, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
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
		return []physics.StepResult{}, nil
	}

	steps := make([]physics.StepResult, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			continue
		}
		vals := make([]float64, len(csvHeader)-1)
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		steps = append(steps, physics.StepResult{
			X: vals[0], V: vals[1], Y: vals[2],
			KE: vals[3], PE: vals[4], W: vals[5],
			Normal: vals[6], NormalGravity: vals[7], NormalCentripetal: vals[8],
			Accel: vals[9],
			Phase: parsePhase(rec[10]),
		})
	}
	return steps, nil
}

func parsePhase(s string) physics.Phase {
	switch s {
	case "projectile":
		return physics.PhaseProjectile
	case "stopped":
		return physics.PhaseStopped
	default:
		return physics.PhaseContact
	}
}

// ExportJSON writes a run's metadata and samples as one JSON document.
func ExportJSON(w *json.Encoder, meta *RunMetadata, steps []physics.StepResult) error {
	doc := struct {
		Meta  *RunMetadata         `json:"meta"`
		Steps []physics.StepResult `json:"steps"`
	}{meta, steps}
	return w.Encode(doc)
}
