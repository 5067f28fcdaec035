package tsp

import (
	"math"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
)

// NearestNeighborTour. greedy closed tour from position 0: always move to the closest unvisited
// position (strictly smaller distance wins, so the lowest index wins ties), then return to 0.
// O(n^2). callers guarantee n >= 1.
func NearestNeighborTour(m *da.DistanceMatrix) (float64, []int) {
	n := m.Size()
	current := 0
	path := make([]int, 0, n+1)
	path = append(path, current)
	visited := make([]bool, n)
	visited[current] = true
	totalCost := 0.0

	for len(path) < n {
		last := path[len(path)-1]
		nearest := -1
		minDist := math.Inf(1)

		for v := 0; v < n; v++ {
			if visited[v] {
				continue
			}
			if m.At(last, v) < minDist {
				minDist = m.At(last, v)
				nearest = v
			}
		}

		if nearest == -1 {
			break
		}
		totalCost += minDist
		path = append(path, nearest)
		visited[nearest] = true
	}

	totalCost += m.At(path[len(path)-1], current)
	path = append(path, current)
	return totalCost, path
}
