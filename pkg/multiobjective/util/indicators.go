package util

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// InvertedGenerationalDistance is the mean euclidean distance from each
// reference-front point to its nearest member of the found front. Lower is
// better; zero means the reference front is fully covered. Infinite when
// either front is empty.
func InvertedGenerationalDistance(front, reference []framework.ObjectiveSpacePoint) float64 {
	if len(front) == 0 || len(reference) == 0 {
		return math.Inf(1)
	}

	distances := make([]float64, len(reference))
	for i, ref := range reference {
		nearest := math.Inf(1)
		for _, p := range front {
			if d := floats.Distance(ref, p, 2); d < nearest {
				nearest = d
			}
		}
		distances[i] = nearest
	}
	return stat.Mean(distances, nil)
}

// Spread measures how unevenly a 2-objective front is distributed: the
// standard deviation of the euclidean gaps between neighbors when the
// front is ordered by the first objective. Zero for perfectly uniform
// spacing or for fronts too small to have interior gaps.
func Spread(front []framework.ObjectiveSpacePoint) float64 {
	if len(front) < 3 {
		return 0
	}

	ordered := make([]framework.ObjectiveSpacePoint, len(front))
	copy(ordered, front)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i][0] != ordered[j][0] {
			return ordered[i][0] < ordered[j][0]
		}
		return ordered[i][1] < ordered[j][1]
	})

	gaps := make([]float64, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		gaps[i-1] = floats.Distance(ordered[i-1], ordered[i], 2)
	}
	return stat.StdDev(gaps, nil)
}

// FrontPoints projects a slice of individuals onto objective space.
func FrontPoints(front []framework.Individual) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(front))
	for i := range front {
		points[i] = framework.ObjectiveSpacePoint(front[i].Objectives)
	}
	return points
}
