package benchmarks

import (
	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// Schaffer is the single-variable Schaffer N.1 problem: f1 = x²,
// f2 = (x−2)². The Pareto set is x ∈ [0, 2], giving the front
// f2 = (√f1 − 2)². Small enough to converge in a handful of generations,
// which makes it a convenient smoke test.
type Schaffer struct {
	limit float64
}

// NewSchaffer bounds the single decision variable to [-limit, limit].
func NewSchaffer(limit float64) *Schaffer {
	return &Schaffer{
		limit,
	}
}

func (p *Schaffer) Name() string {
	return "SchafferN1"
}

func (p *Schaffer) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		p.f1, p.f2,
	}
}

func (p *Schaffer) f1(x []float64) float64 {
	return x[0] * x[0]
}

func (p *Schaffer) f2(x []float64) float64 {
	return (x[0] - 2) * (x[0] - 2)
}

func (p *Schaffer) Bounds() []framework.Bounds {
	return []framework.Bounds{
		{L: -p.limit, H: p.limit},
	}
}

// TrueParetoFront samples the Pareto set x ∈ [0, 2] uniformly.
func (p *Schaffer) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := 2 * float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x * x, (x - 2) * (x - 2),
		}
	}
	return points
}

var _ framework.Problem = (*Schaffer)(nil)
var _ framework.Problem = (*ZDT1)(nil)
