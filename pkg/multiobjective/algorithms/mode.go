package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

const (
	Name = "MODE"

	defaultF              = 0.5
	defaultCR             = 0.9
	defaultMaxFailureRate = 0.5
	defaultDrainTimeout   = 30 * time.Second
)

// RunState is the lifecycle state of a run. Stopped and Failed are final.
type RunState int

const (
	StateInitialized RunState = iota
	StateRunning
	StateStopped
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Config holds everything a run needs. Zero values for F, CR, Workers,
// MaxFailureRate and DrainTimeout select the documented defaults; at least
// one of MaxEvaluations and MaxGenerations must be set.
type Config struct {
	// Fitness maps a decision vector to the objective vector. It may be
	// slow and is invoked concurrently from the worker pool.
	Fitness framework.FitnessFunc
	// Bounds gives the box constraint per decision variable and fixes the
	// problem dimension.
	Bounds []framework.Bounds
	// NumObjectives is the length of the objective vector, at least 2.
	NumObjectives int
	// PopSize is the fixed population size N, at least 4.
	PopSize int
	// Mode selects the survivor-selection strategy, UpdateDE by default.
	Mode UpdateMode

	// F is the differential weight applied to the donor difference.
	F float64
	// CR is the per-coordinate crossover probability.
	CR float64

	// Workers bounds the evaluation pool; defaults to runtime.NumCPU().
	Workers int
	// MaxFailureRate is the per-batch failed fraction above which the
	// fitness function is declared unusable.
	MaxFailureRate float64
	// DrainTimeout bounds the wait for in-flight evaluations after
	// cancellation.
	DrainTimeout time.Duration

	// MaxEvaluations stops the run once this many evaluations were
	// attempted; 0 disables the budget.
	MaxEvaluations int
	// MaxGenerations stops the run after this many generations; 0
	// disables the limit.
	MaxGenerations int

	// Seed initializes the run's RNG. Runs with equal configs and seeds
	// are reproducible.
	Seed uint64
}

// Result is the outcome of a finished run: the final Pareto front and the
// run statistics.
type Result struct {
	Front       []framework.Individual
	Generations int
	Evaluations int
	FrontSize   int
}

// MODE is multi-objective differential evolution: DE/best/1/bin variation
// where the whole Pareto front plays the role of "best", combined with
// rank-and-crowding survivor selection over the merged parent+offspring
// pool. Fitness evaluation is the only concurrent part; ranking,
// variation and selection run on the coordinating goroutine between
// generations, so results are independent of evaluation completion order.
type MODE struct {
	cfg  Config
	pcg  *rand.PCG
	rng  *rand.Rand
	disp *dispatcher

	state       RunState
	pop         []framework.Individual
	generation  int
	evaluations int
}

// NewMODE validates the configuration and prepares a run in state
// Initialized. A *ConfigError is returned for any invalid field; the run
// never starts in that case.
func NewMODE(cfg Config) (*MODE, error) {
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	pcg := rand.NewPCG(cfg.Seed, cfg.Seed)
	return &MODE{
		cfg: cfg,
		pcg: pcg,
		rng: rand.New(pcg),
		disp: &dispatcher{
			fitness:        cfg.Fitness,
			numObjectives:  cfg.NumObjectives,
			workers:        cfg.Workers,
			maxFailureRate: cfg.MaxFailureRate,
			drainTimeout:   cfg.DrainTimeout,
		},
		state: StateInitialized,
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = UpdateDE
	}
	if cfg.F == 0 {
		cfg.F = defaultF
	}
	if cfg.CR == 0 {
		cfg.CR = defaultCR
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MaxFailureRate == 0 {
		cfg.MaxFailureRate = defaultMaxFailureRate
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = defaultDrainTimeout
	}
}

func validate(cfg Config) error {
	if cfg.Fitness == nil {
		return &ConfigError{Field: "Fitness", Reason: "fitness callable must not be nil"}
	}
	if len(cfg.Bounds) == 0 {
		return &ConfigError{Field: "Bounds", Reason: "at least one decision variable required"}
	}
	for i, b := range cfg.Bounds {
		if b.L > b.H {
			return &ConfigError{Field: fmt.Sprintf("Bounds[%d]", i), Reason: fmt.Sprintf("lower bound %g above upper bound %g", b.L, b.H)}
		}
	}
	if cfg.NumObjectives < 2 {
		return &ConfigError{Field: "NumObjectives", Reason: "a multi-objective run needs at least 2 objectives"}
	}
	if cfg.PopSize < 4 {
		return &ConfigError{Field: "PopSize", Reason: "differential mutation needs a base and two donors besides the target, so at least 4"}
	}
	if cfg.Mode != UpdateDE && cfg.Mode != UpdateNSGA2 {
		return &ConfigError{Field: "Mode", Reason: fmt.Sprintf("unknown update mode %q", cfg.Mode)}
	}
	if cfg.F <= 0 || cfg.F > 2 {
		return &ConfigError{Field: "F", Reason: "differential weight must be in (0, 2]"}
	}
	if cfg.CR <= 0 || cfg.CR > 1 {
		return &ConfigError{Field: "CR", Reason: "crossover probability must be in (0, 1]"}
	}
	if cfg.Workers < 1 {
		return &ConfigError{Field: "Workers", Reason: "worker pool size must be positive"}
	}
	if cfg.MaxFailureRate < 0 || cfg.MaxFailureRate > 1 {
		return &ConfigError{Field: "MaxFailureRate", Reason: "failure-rate ceiling must be in [0, 1]"}
	}
	if cfg.DrainTimeout < 0 {
		return &ConfigError{Field: "DrainTimeout", Reason: "drain timeout must not be negative"}
	}
	if cfg.MaxEvaluations <= 0 && cfg.MaxGenerations <= 0 {
		return &ConfigError{Field: "MaxEvaluations", Reason: "either an evaluation budget or a generation limit is required"}
	}
	return nil
}

// State returns the current lifecycle state.
func (m *MODE) State() RunState { return m.state }

// Generation returns the generation counter.
func (m *MODE) Generation() int { return m.generation }

// Evaluations returns the cumulative count of attempted evaluations.
func (m *MODE) Evaluations() int { return m.evaluations }

// Population returns a deep copy of the current population.
func (m *MODE) Population() []framework.Individual {
	out := make([]framework.Individual, len(m.pop))
	for i := range m.pop {
		out[i] = m.pop[i].Clone()
	}
	return out
}

// Optimize drives generations until the evaluation budget or generation
// limit is reached, then returns the final Pareto front and statistics.
// Context cancellation stops the run cleanly (state Stopped) with the
// front found so far; an unusable fitness function moves the run to
// Failed and returns the dispatch error.
func (m *MODE) Optimize(ctx context.Context) (*Result, error) {
	logger := klog.FromContext(ctx)
	if m.state == StateStopped || m.state == StateFailed {
		return nil, fmt.Errorf("run already finished in state %s", m.state)
	}
	logger.V(4).Info("starting optimization",
		"algorithm", Name, "mode", m.cfg.Mode, "popSize", m.cfg.PopSize,
		"dim", len(m.cfg.Bounds), "objectives", m.cfg.NumObjectives, "workers", m.cfg.Workers)

	if m.pop == nil {
		if err := m.initialize(ctx); err != nil {
			if isCancellation(err) {
				m.state = StateStopped
				return m.result(), nil
			}
			m.state = StateFailed
			return nil, err
		}
	}
	m.state = StateRunning

	for !m.done() {
		if err := m.step(ctx); err != nil {
			if isCancellation(err) {
				logger.V(4).Info("run cancelled", "generation", m.generation, "evaluations", m.evaluations)
				m.state = StateStopped
				return m.result(), nil
			}
			m.state = StateFailed
			return nil, err
		}
		logger.V(4).Info("generation complete",
			"generation", m.generation, "evaluations", m.evaluations, "frontSize", len(frontZero(m.pop)))
	}

	m.state = StateStopped
	return m.result(), nil
}

// initialize seeds the population uniformly within bounds and evaluates
// it, then assigns the initial ranks and crowding distances.
func (m *MODE) initialize(ctx context.Context) error {
	m.pop = make([]framework.Individual, m.cfg.PopSize)
	batch := make([][]float64, m.cfg.PopSize)
	for i := range m.pop {
		vars := make([]float64, len(m.cfg.Bounds))
		for j, b := range m.cfg.Bounds {
			vars[j] = b.L + m.rng.Float64()*(b.H-b.L)
		}
		m.pop[i] = framework.Individual{Variables: vars}
		batch[i] = vars
	}

	results, err := m.disp.evaluateBatch(ctx, batch)
	m.evaluations += len(batch)
	for i, r := range results {
		m.pop[i].Objectives = r.objectives
		m.pop[i].Valid = r.err == nil
	}
	m.rank()
	return err
}

// step runs one full generation: variation, repair, parallel evaluation,
// merge, and survivor selection. The population is replaced wholesale at
// the end; nothing mutates it while evaluations are in flight.
func (m *MODE) step(ctx context.Context) error {
	front := frontZero(m.pop)
	batch := make([][]float64, len(m.pop))
	for i := range m.pop {
		batch[i] = offspring(m.rng, m.pop, front, i, m.cfg.F, m.cfg.CR, m.cfg.Bounds)
	}

	results, err := m.disp.evaluateBatch(ctx, batch)
	m.evaluations += len(batch)
	if err != nil {
		return err
	}

	pool := make([]framework.Individual, 0, 2*len(m.pop))
	pool = append(pool, m.pop...)
	for i, r := range results {
		pool = append(pool, framework.Individual{
			Variables:  batch[i],
			Objectives: r.objectives,
			Valid:      r.err == nil,
		})
	}

	m.pop = selectSurvivors(pool, m.cfg.PopSize, m.cfg.Mode)
	m.generation++
	return nil
}

func (m *MODE) rank() {
	fronts := framework.NonDominatedSort(m.pop)
	for _, front := range fronts {
		framework.CrowdingDistance(m.pop, front)
	}
}

func (m *MODE) done() bool {
	if m.cfg.MaxEvaluations > 0 && m.evaluations >= m.cfg.MaxEvaluations {
		return true
	}
	return m.cfg.MaxGenerations > 0 && m.generation >= m.cfg.MaxGenerations
}

func (m *MODE) result() *Result {
	front := paretoFront(m.pop)
	return &Result{
		Front:       front,
		Generations: m.generation,
		Evaluations: m.evaluations,
		FrontSize:   len(front),
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
