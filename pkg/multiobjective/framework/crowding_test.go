package framework

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staircaseFront(objectives [][]float64) ([]Individual, []int) {
	pop := make([]Individual, len(objectives))
	front := make([]int, len(objectives))
	for i, o := range objectives {
		pop[i] = Individual{Objectives: o, Valid: true, Rank: 0}
		front[i] = i
	}
	return pop, front
}

func TestCrowdingDistanceExtremesInfinite(t *testing.T) {
	pop, front := staircaseFront([][]float64{{0, 4}, {1, 2}, {2, 1}, {4, 0}})
	CrowdingDistance(pop, front)

	assert.True(t, math.IsInf(pop[0].Distance, 1))
	assert.True(t, math.IsInf(pop[3].Distance, 1))
	assert.False(t, math.IsInf(pop[1].Distance, 1))
	assert.False(t, math.IsInf(pop[2].Distance, 1))
}

func TestCrowdingDistanceInteriorValues(t *testing.T) {
	// Both objectives span [0,4]. On f1, (1,2) sits between 0 and 2 and
	// (2,1) between 1 and 4; on f2 the roles mirror. Each interior point
	// therefore accumulates 2/4 + 3/4.
	pop, front := staircaseFront([][]float64{{0, 4}, {1, 2}, {2, 1}, {4, 0}})
	CrowdingDistance(pop, front)

	assert.InDelta(t, 1.25, pop[1].Distance, 1e-12)
	assert.InDelta(t, 1.25, pop[2].Distance, 1e-12)
}

func TestCrowdingDistanceSmallFronts(t *testing.T) {
	pop, front := staircaseFront([][]float64{{1, 5}, {5, 1}})
	CrowdingDistance(pop, front)
	for _, i := range front {
		assert.True(t, math.IsInf(pop[i].Distance, 1), "member %d of a 2-front must be infinite", i)
	}

	pop, front = staircaseFront([][]float64{{3, 3}})
	CrowdingDistance(pop, front)
	assert.True(t, math.IsInf(pop[0].Distance, 1))

	CrowdingDistance(nil, nil)
}

func TestCrowdingDistanceZeroRange(t *testing.T) {
	// f1 is constant across the front: its contribution must be zero, not
	// a division by zero. f2 still marks extremes.
	pop, front := staircaseFront([][]float64{{2, 0}, {2, 1}, {2, 2}, {2, 4}})
	CrowdingDistance(pop, front)

	require.True(t, math.IsInf(pop[0].Distance, 1))
	require.True(t, math.IsInf(pop[3].Distance, 1))
	assert.InDelta(t, 0.5, pop[1].Distance, 1e-12)
	assert.InDelta(t, 0.75, pop[2].Distance, 1e-12)
}

func TestCrowdingDistanceAllIdentical(t *testing.T) {
	pop, front := staircaseFront([][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}})
	CrowdingDistance(pop, front)

	// Tie-break on pool index decides which duplicates count as extremes;
	// two independent runs must agree.
	first := make([]float64, len(pop))
	for i := range pop {
		first[i] = pop[i].Distance
	}
	CrowdingDistance(pop, front)
	for i := range pop {
		assert.Equal(t, first[i], pop[i].Distance)
	}
	assert.True(t, math.IsInf(pop[0].Distance, 1))
	assert.True(t, math.IsInf(pop[3].Distance, 1))
}
