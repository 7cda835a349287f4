package algorithms

import (
	"sort"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// UpdateMode selects the survivor-selection strategy that reduces the
// merged parent+offspring pool back to a fixed-size population.
type UpdateMode string

const (
	// UpdateDE keeps the first N of the merged pool under a single stable
	// sort by (rank ascending, crowding distance descending).
	UpdateDE UpdateMode = "de"
	// UpdateNSGA2 fills the next population front by front and truncates
	// the overflowing front by crowding distance, the classic NSGA-II
	// survivor selection. It can differ from UpdateDE at front boundaries
	// when crowding distances are very close.
	UpdateNSGA2 UpdateMode = "nsga2"
)

// selectSurvivors ranks and crowds the merged pool, then reduces it to
// exactly n individuals under the chosen mode. The pool is annotated in
// place (Rank, Distance) but its membership and vectors are untouched; the
// returned population holds deep copies. Invalid individuals are retained
// only when fewer than n valid ones exist, picked by pool index for
// determinism.
func selectSurvivors(pool []framework.Individual, n int, mode UpdateMode) []framework.Individual {
	fronts := framework.NonDominatedSort(pool)
	for _, front := range fronts {
		framework.CrowdingDistance(pool, front)
	}

	var picked []int
	if mode == UpdateNSGA2 {
		picked = pickByFronts(pool, fronts, n)
	} else {
		picked = pickBySort(pool, n)
	}

	next := make([]framework.Individual, len(picked))
	for i, idx := range picked {
		next[i] = pool[idx].Clone()
	}
	return next
}

// pickBySort is the DE-style update: one stable sort over the whole pool
// by (valid, rank, crowding distance, pool index), never ancestor versus
// offspring comparisons.
func pickBySort(pool []framework.Individual, n int) []int {
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := &pool[order[x]], &pool[order[y]]
		if a.Valid != b.Valid {
			return a.Valid
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		return order[x] < order[y]
	})
	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

// pickByFronts is the NSGA-II-style update: whole fronts are taken in rank
// order and the first overflowing front is truncated by crowding distance.
func pickByFronts(pool []framework.Individual, fronts [][]int, n int) []int {
	picked := make([]int, 0, n)
	for _, front := range fronts {
		if len(picked)+len(front) <= n {
			picked = append(picked, front...)
			continue
		}
		partial := make([]int, len(front))
		copy(partial, front)
		sort.SliceStable(partial, func(x, y int) bool {
			dx, dy := pool[partial[x]].Distance, pool[partial[y]].Distance
			if dx != dy {
				return dx > dy
			}
			return partial[x] < partial[y]
		})
		picked = append(picked, partial[:n-len(picked)]...)
		break
	}

	// Too few valid individuals: pad with invalid ones in index order so
	// the population size stays fixed.
	if len(picked) < n {
		for i := range pool {
			if !pool[i].Valid {
				picked = append(picked, i)
				if len(picked) == n {
					break
				}
			}
		}
	}
	return picked
}

// frontZero lists the indices of the current Pareto front (valid members
// with rank 0).
func frontZero(pop []framework.Individual) []int {
	front := []int{}
	for i := range pop {
		if pop[i].Valid && pop[i].Rank == 0 {
			front = append(front, i)
		}
	}
	return front
}

// paretoFront extracts clones of the valid rank-0 members.
func paretoFront(pop []framework.Individual) []framework.Individual {
	var front []framework.Individual
	for _, i := range frontZero(pop) {
		front = append(front, pop[i].Clone())
	}
	return front
}
