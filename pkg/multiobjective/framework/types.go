package framework

// Individual represents a solution in the population: a point in decision
// space together with its image in objective space and the annotations
// assigned by ranking.
type Individual struct {
	Variables  []float64
	Objectives []float64

	// Valid is false when the fitness callable failed for this individual.
	// Invalid individuals carry no usable objective vector; they are
	// excluded from ranking and only survive selection when the pool runs
	// out of valid members.
	Valid bool

	// Rank is the dominance front index, 0 being the Pareto front. It is
	// undefined until NonDominatedSort has run on the individual's pool.
	Rank int

	// Distance is the crowding distance within the individual's front. It
	// is undefined until CrowdingDistance has run on that front.
	Distance float64
}

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	out := ind
	out.Variables = make([]float64, len(ind.Variables))
	copy(out.Variables, ind.Variables)
	if ind.Objectives != nil {
		out.Objectives = make([]float64, len(ind.Objectives))
		copy(out.Objectives, ind.Objectives)
	}
	return out
}

// Bounds is the box constraint for one decision variable.
type Bounds struct {
	L float64
	H float64
}

// ObjectiveFunc maps a decision vector to a single objective value.
// All objectives are minimized.
type ObjectiveFunc func([]float64) float64

// FitnessFunc maps a decision vector to the full objective vector, or
// reports failure. The callable may be slow and may be invoked
// concurrently; it must not retain the input slice.
type FitnessFunc func([]float64) ([]float64, error)

// FitnessOf combines per-objective functions into a FitnessFunc that
// never fails. Benchmark problems expose objectives this way.
func FitnessOf(funcs ...ObjectiveFunc) FitnessFunc {
	return func(x []float64) ([]float64, error) {
		objs := make([]float64, len(funcs))
		for i, f := range funcs {
			objs[i] = f(x)
		}
		return objs, nil
	}
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective
// space. As an example, for a problem with 2 objective functions f1 and
// f2, a point in the objective space could be [f1(x'), f2(x')], for the
// input of x'.
type ObjectiveSpacePoint []float64

// Problem describes the contract a specific multi-objective problem needs
// to implement.
type Problem interface {
	Name() string

	Bounds() []Bounds
	ObjectiveFuncs() []ObjectiveFunc

	// TrueParetoFront is optional due to the difficulty of finding the
	// true front in some types of problems. When there isn't a way to
	// find the true front, just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}
