package algorithms

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

func TestRepair(t *testing.T) {
	bounds := []framework.Bounds{{L: 0, H: 1}}
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside untouched", 0.4, 0.4},
		{"on lower bound", 0, 0},
		{"on upper bound", 1, 1},
		{"reflect off upper", 1.2, 0.8},
		{"reflect off lower", -0.3, 0.3},
		{"overshoot upper clamps", 2.5, 1},
		{"overshoot lower clamps", -1.7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := []float64{tt.in}
			repair(x, bounds)
			assert.Equal(t, tt.want, x[0])
		})
	}
}

func variationPopulation(rng *rand.Rand, n, dim int) []framework.Individual {
	pop := make([]framework.Individual, n)
	for i := range pop {
		vars := make([]float64, dim)
		for j := range vars {
			vars[j] = rng.Float64()
		}
		pop[i] = framework.Individual{Variables: vars, Valid: true}
	}
	return pop
}

func TestOffspringStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	dim := 5
	bounds := make([]framework.Bounds, dim)
	for i := range bounds {
		bounds[i] = framework.Bounds{L: -1, H: 1}
	}
	pop := variationPopulation(rng, 10, dim)
	front := []int{0, 3, 7}

	for target := 0; target < len(pop); target++ {
		trial := offspring(rng, pop, front, target, 0.9, 0.9, bounds)
		require.Len(t, trial, dim)
		for j, v := range trial {
			assert.GreaterOrEqual(t, v, bounds[j].L, "target %d coordinate %d", target, j)
			assert.LessOrEqual(t, v, bounds[j].H, "target %d coordinate %d", target, j)
		}
	}
}

// A front holding only the target must fall back to the whole population
// for the base vector instead of erroring out.
func TestOffspringDegenerateFront(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	bounds := []framework.Bounds{{L: 0, H: 1}, {L: 0, H: 1}}
	pop := variationPopulation(rng, 6, 2)

	trial := offspring(rng, pop, []int{2}, 2, 0.5, 0.9, bounds)
	require.Len(t, trial, 2)

	trial = offspring(rng, pop, nil, 0, 0.5, 0.9, bounds)
	require.Len(t, trial, 2)
}

// With a vanishing crossover probability only the forced coordinate can
// differ from the target vector.
func TestOffspringCrossoverKeepsTargetCoordinates(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	dim := 8
	bounds := make([]framework.Bounds, dim)
	for i := range bounds {
		bounds[i] = framework.Bounds{L: 0, H: 10}
	}
	pop := variationPopulation(rng, 8, dim)

	trial := offspring(rng, pop, []int{0, 1}, 4, 0.5, 1e-12, bounds)
	same := 0
	for j := range trial {
		if trial[j] == pop[4].Variables[j] {
			same++
		}
	}
	assert.GreaterOrEqual(t, same, dim-1)
}

func TestPickDonorsDistinct(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	for i := 0; i < 200; i++ {
		r1, r2 := pickDonors(rng, 4, 1, 2)
		assert.NotEqual(t, r1, r2)
		assert.NotContains(t, []int{1, 2}, r1)
		assert.NotContains(t, []int{1, 2}, r2)
	}
}

func TestPickBaseExcludesTarget(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	front := []int{0, 1, 2}
	for i := 0; i < 200; i++ {
		base := pickBase(rng, 10, front, 1)
		assert.NotEqual(t, 1, base)
		assert.Contains(t, []int{0, 2}, base)
	}
}
