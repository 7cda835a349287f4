package framework

import "sort"

// Dominates checks if individual a dominates individual b: a is no worse
// than b in every objective and strictly better in at least one.
func Dominates(a, b Individual) bool {
	better := false
	for i := 0; i < len(a.Objectives); i++ {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the valid members of pop into dominance
// fronts. The returned fronts hold indices into pop, front 0 (the Pareto
// front) first, and every ranked individual gets its front index written
// to Rank. Invalid individuals are not ranked; their Rank is set one past
// the last front.
//
// The implementation is the efficient non-dominated sort with binary
// search: the pool is pre-sorted lexicographically by objective values, so
// an individual can only be dominated by individuals placed before it, and
// its front is located by binary search over the fronts built so far
// rather than by pairwise domination counting. Individuals with identical
// objective vectors never dominate each other and always share a front.
// Output is deterministic for a fixed input: ties in the presort break on
// original pool index.
func NonDominatedSort(pop []Individual) [][]int {
	order := make([]int, 0, len(pop))
	for i := range pop {
		if pop[i].Valid {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(x, y int) bool {
		a, b := pop[order[x]].Objectives, pop[order[y]].Objectives
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return order[x] < order[y]
	})

	var fronts [][]int
	for _, idx := range order {
		// A front either contains a dominator of pop[idx] or it does not,
		// and dominators in front k imply dominators in every front below
		// k (front construction plus transitivity), so the candidate
		// fronts are binary-searchable.
		lo, hi := 0, len(fronts)
		for lo < hi {
			mid := (lo + hi) / 2
			if frontDominates(pop, fronts[mid], idx) {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo == len(fronts) {
			fronts = append(fronts, []int{idx})
		} else {
			fronts[lo] = append(fronts[lo], idx)
		}
		pop[idx].Rank = lo
	}

	for i := range pop {
		if !pop[i].Valid {
			pop[i].Rank = len(fronts)
		}
	}
	return fronts
}

// frontDominates reports whether any member of front dominates pop[idx].
// Members are scanned newest first: under the lexicographic processing
// order the most recently inserted members are the likeliest dominators.
func frontDominates(pop []Individual, front []int, idx int) bool {
	for i := len(front) - 1; i >= 0; i-- {
		if Dominates(pop[front[i]], pop[idx]) {
			return true
		}
	}
	return false
}
