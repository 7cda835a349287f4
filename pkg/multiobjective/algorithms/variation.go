package algorithms

import (
	"math/rand/v2"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// repair maps a candidate decision vector back into its box bounds. A
// coordinate past a bound is reflected inside by the amount it overshot;
// when the reflection itself leaves the box it is clamped to the violated
// bound. Reflection avoids piling repaired points onto the boundary.
func repair(x []float64, bounds []framework.Bounds) {
	for i, b := range bounds {
		switch {
		case x[i] < b.L:
			if r := b.L + (b.L - x[i]); r <= b.H {
				x[i] = r
			} else {
				x[i] = b.L
			}
		case x[i] > b.H:
			if r := b.H - (x[i] - b.H); r >= b.L {
				x[i] = r
			} else {
				x[i] = b.H
			}
		}
	}
}

// offspring builds one trial vector for the target individual:
// differential mutation around a base drawn from the current Pareto front,
// then binomial crossover with the target at probability cr with one
// forced coordinate. The Pareto front generates the offspring; when rank 0
// holds nothing besides the target, the base falls back to the whole
// population, which only reduces step diversity, never errors.
func offspring(rng *rand.Rand, pop []framework.Individual, frontZero []int, target int, f, cr float64, bounds []framework.Bounds) []float64 {
	base := pickBase(rng, len(pop), frontZero, target)
	r1, r2 := pickDonors(rng, len(pop), target, base)

	dim := len(pop[target].Variables)
	trial := make([]float64, dim)
	jrand := rng.IntN(dim)
	for j := 0; j < dim; j++ {
		if j == jrand || rng.Float64() < cr {
			trial[j] = pop[base].Variables[j] + f*(pop[r1].Variables[j]-pop[r2].Variables[j])
		} else {
			trial[j] = pop[target].Variables[j]
		}
	}
	repair(trial, bounds)
	return trial
}

// pickBase draws the mutation base uniformly from the rank-0 members,
// excluding the target itself.
func pickBase(rng *rand.Rand, n int, frontZero []int, target int) int {
	candidates := make([]int, 0, len(frontZero))
	for _, i := range frontZero {
		if i != target {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := 0; i < n; i++ {
			if i != target {
				candidates = append(candidates, i)
			}
		}
	}
	return candidates[rng.IntN(len(candidates))]
}

// pickDonors draws two distinct difference donors from the whole
// population, excluding the target and the base.
func pickDonors(rng *rand.Rand, n, target, base int) (int, int) {
	r1 := target
	for r1 == target || r1 == base {
		r1 = rng.IntN(n)
	}
	r2 := target
	for r2 == target || r2 == base || r2 == r1 {
		r2 = rng.IntN(n)
	}
	return r1, r2
}
