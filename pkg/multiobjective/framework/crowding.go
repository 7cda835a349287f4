package framework

import (
	"math"
	"sort"
)

// CrowdingDistance calculates crowding distance for the members of one
// front, given as indices into pop, and writes it to Distance. Per
// objective, the front is ordered by that objective's value; the two
// extremes receive an infinite contribution so boundary points always
// survive truncation, and interior members receive the gap between their
// neighbors normalized by the objective's range across the front. A front
// of size two or less is all extremes. Ordering ties break on pool index,
// keeping the result deterministic.
func CrowdingDistance(pop []Individual, front []int) {
	for _, i := range front {
		pop[i].Distance = 0
	}
	if len(front) == 0 {
		return
	}
	if len(front) <= 2 {
		for _, i := range front {
			pop[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(pop[front[0]].Objectives)
	order := make([]int, len(front))

	for m := 0; m < numObjectives; m++ {
		copy(order, front)
		sort.Slice(order, func(x, y int) bool {
			ox, oy := pop[order[x]].Objectives[m], pop[order[y]].Objectives[m]
			if ox != oy {
				return ox < oy
			}
			return order[x] < order[y]
		})

		first, last := order[0], order[len(order)-1]
		pop[first].Distance = math.Inf(1)
		pop[last].Distance = math.Inf(1)

		objectiveRange := pop[last].Objectives[m] - pop[first].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		for i := 1; i < len(order)-1; i++ {
			lower := pop[order[i-1]].Objectives[m]
			upper := pop[order[i+1]].Objectives[m]
			pop[order[i]].Distance += (upper - lower) / objectiveRange
		}
	}
}
