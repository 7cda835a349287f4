package algorithms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

func poolFromObjectives(objectives [][]float64) []framework.Individual {
	pool := make([]framework.Individual, len(objectives))
	for i, o := range objectives {
		pool[i] = framework.Individual{
			Variables:  []float64{float64(i)},
			Objectives: o,
			Valid:      o != nil,
		}
	}
	return pool
}

// Two-member Pareto front plus a four-member staircase one rank down.
// Truncating to 4 must keep the front plus the two crowding extremes of
// the second rank, under both update strategies.
func TestSelectSurvivorsTruncatesByCrowding(t *testing.T) {
	objectives := [][]float64{
		{0, 1}, {1, 0}, // rank 0
		{2, 10}, {3, 6}, {4, 5}, {10, 2}, // rank 1, extremes at indices 2 and 5
	}

	for _, mode := range []UpdateMode{UpdateDE, UpdateNSGA2} {
		t.Run(string(mode), func(t *testing.T) {
			pool := poolFromObjectives(objectives)
			next := selectSurvivors(pool, 4, mode)
			require.Len(t, next, 4)

			got := map[float64]bool{}
			for _, ind := range next {
				got[ind.Variables[0]] = true
			}
			assert.Equal(t, map[float64]bool{0: true, 1: true, 2: true, 5: true}, got)
		})
	}
}

func TestSelectSurvivorsFixedSize(t *testing.T) {
	objectives := [][]float64{
		{1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1},
		{2, 6}, {3, 5}, {6, 2}, {5, 5}, {6, 6},
	}
	for _, mode := range []UpdateMode{UpdateDE, UpdateNSGA2} {
		for _, n := range []int{4, 7, 10} {
			pool := poolFromObjectives(objectives)
			next := selectSurvivors(pool, n, mode)
			assert.Len(t, next, n, "mode %s n %d", mode, n)
		}
	}
}

func TestSelectSurvivorsDoesNotMutateInputVectors(t *testing.T) {
	objectives := [][]float64{
		{1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1}, {5, 5},
	}
	pool := poolFromObjectives(objectives)
	var snapshot [][]float64
	for _, ind := range pool {
		snapshot = append(snapshot, append([]float64{}, ind.Objectives...))
	}

	next := selectSurvivors(pool, 3, UpdateNSGA2)

	for i := range pool {
		if diff := cmp.Diff(snapshot[i], pool[i].Objectives); diff != "" {
			t.Errorf("pool member %d objectives mutated:\n%s", i, diff)
		}
	}

	// Survivors are copies; writing through them must not anger the pool.
	next[0].Variables[0] = -99
	assert.NotEqual(t, -99.0, pool[0].Variables[0])
}

// Invalid individuals fill remaining slots only when the valid ones run
// out, in pool-index order.
func TestSelectSurvivorsPadsWithInvalid(t *testing.T) {
	objectives := [][]float64{
		{1, 2}, nil, {2, 1}, nil, nil,
	}
	for _, mode := range []UpdateMode{UpdateDE, UpdateNSGA2} {
		t.Run(string(mode), func(t *testing.T) {
			pool := poolFromObjectives(objectives)
			next := selectSurvivors(pool, 4, mode)
			require.Len(t, next, 4)

			validCount := 0
			invalidVars := []float64{}
			for _, ind := range next {
				if ind.Valid {
					validCount++
				} else {
					invalidVars = append(invalidVars, ind.Variables[0])
				}
			}
			assert.Equal(t, 2, validCount)
			assert.Equal(t, []float64{1, 3}, invalidVars)
		})
	}
}

func TestSelectSurvivorsKeepsWholeParetoFront(t *testing.T) {
	// Five mutually non-dominating points and five dominated ones; with
	// n=5 the survivors must be exactly the front.
	objectives := [][]float64{
		{1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1},
		{6, 6}, {7, 7}, {8, 8}, {9, 9}, {10, 10},
	}
	for _, mode := range []UpdateMode{UpdateDE, UpdateNSGA2} {
		pool := poolFromObjectives(objectives)
		next := selectSurvivors(pool, 5, mode)
		for _, ind := range next {
			assert.Equal(t, 0, ind.Rank, "mode %s", mode)
		}
	}
}

func TestFrontZero(t *testing.T) {
	pop := []framework.Individual{
		{Valid: true, Rank: 0},
		{Valid: true, Rank: 1},
		{Valid: false, Rank: 0},
		{Valid: true, Rank: 0},
	}
	assert.Equal(t, []int{0, 3}, frontZero(pop))
}
