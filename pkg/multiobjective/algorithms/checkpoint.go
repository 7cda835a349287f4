package algorithms

import (
	"fmt"
	"os"
	"strconv"

	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// checkpointVersion guards against layout drift between releases.
const checkpointVersion = 1

type checkpointFile struct {
	Version     int                    `json:"version"`
	Algorithm   string                 `json:"algorithm"`
	Mode        UpdateMode             `json:"mode"`
	Generation  int                    `json:"generation"`
	Evaluations int                    `json:"evaluations"`
	RNGState    []byte                 `json:"rngState"`
	Population  []checkpointIndividual `json:"population"`
}

type checkpointIndividual struct {
	Variables  []float64 `json:"variables"`
	Objectives []float64 `json:"objectives,omitempty"`
	Valid      bool      `json:"valid"`
	Rank       int       `json:"rank"`
	// Distance is formatted with strconv so infinite crowding distances
	// survive the trip; JSON numbers cannot encode +Inf.
	Distance string `json:"distance"`
}

// SaveCheckpoint persists the run state (generation and evaluation
// counters, RNG state, update mode, and the full annotated population) so
// a fresh run can resume deterministically from it.
func (m *MODE) SaveCheckpoint(path string) error {
	rngState, err := m.pcg.MarshalBinary()
	if err != nil {
		return &CheckpointError{Path: path, Err: err}
	}

	cp := checkpointFile{
		Version:     checkpointVersion,
		Algorithm:   Name,
		Mode:        m.cfg.Mode,
		Generation:  m.generation,
		Evaluations: m.evaluations,
		RNGState:    rngState,
		Population:  make([]checkpointIndividual, len(m.pop)),
	}
	for i, ind := range m.pop {
		cp.Population[i] = checkpointIndividual{
			Variables:  ind.Variables,
			Objectives: ind.Objectives,
			Valid:      ind.Valid,
			Rank:       ind.Rank,
			Distance:   strconv.FormatFloat(ind.Distance, 'g', -1, 64),
		}
	}

	data, err := yaml.Marshal(cp)
	if err != nil {
		return &CheckpointError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &CheckpointError{Path: path, Err: err}
	}
	return nil
}

// ResumeMODE builds a run from cfg and the persisted state at path. The
// checkpoint must match the configured population size, dimension,
// objective count and update mode (an unset cfg.Mode adopts the
// checkpoint's); any mismatch or corruption yields a *CheckpointError and
// leaves the file untouched. The returned run continues exactly where the
// checkpointed one left off.
func ResumeMODE(cfg Config, path string) (*MODE, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CheckpointError{Path: path, Err: err}
	}
	var cp checkpointFile
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return nil, &CheckpointError{Path: path, Err: err}
	}

	if cp.Version != checkpointVersion {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("unsupported checkpoint version %d", cp.Version)}
	}
	if cp.Algorithm != Name {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("checkpoint written by %q, want %q", cp.Algorithm, Name)}
	}
	if cfg.Mode == "" {
		cfg.Mode = cp.Mode
	} else if cfg.Mode != cp.Mode {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("update mode %q does not match checkpointed %q", cfg.Mode, cp.Mode)}
	}

	m, err := NewMODE(cfg)
	if err != nil {
		return nil, err
	}
	if len(cp.Population) != m.cfg.PopSize {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("checkpointed population size %d, configured %d", len(cp.Population), m.cfg.PopSize)}
	}

	pop := make([]framework.Individual, len(cp.Population))
	for i, ind := range cp.Population {
		if len(ind.Variables) != len(m.cfg.Bounds) {
			return nil, &CheckpointError{Path: path, Err: fmt.Errorf("individual %d has dimension %d, configured %d", i, len(ind.Variables), len(m.cfg.Bounds))}
		}
		if ind.Valid && len(ind.Objectives) != m.cfg.NumObjectives {
			return nil, &CheckpointError{Path: path, Err: fmt.Errorf("individual %d has %d objectives, configured %d", i, len(ind.Objectives), m.cfg.NumObjectives)}
		}
		distance, err := strconv.ParseFloat(ind.Distance, 64)
		if err != nil {
			return nil, &CheckpointError{Path: path, Err: fmt.Errorf("individual %d has malformed crowding distance %q", i, ind.Distance)}
		}
		pop[i] = framework.Individual{
			Variables:  ind.Variables,
			Objectives: ind.Objectives,
			Valid:      ind.Valid,
			Rank:       ind.Rank,
			Distance:   distance,
		}
	}

	if err := m.pcg.UnmarshalBinary(cp.RNGState); err != nil {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("restoring RNG state: %w", err)}
	}
	m.pop = pop
	m.generation = cp.Generation
	m.evaluations = cp.Evaluations
	return m, nil
}
