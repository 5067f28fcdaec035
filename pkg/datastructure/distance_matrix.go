package datastructure

import (
	"github.com/lintang-b-s/TourPlanner/pkg/geo"
)

// DistanceMatrix. dense n x n great-circle distances in km, indexed by position in the point slice
// it was built from (not by point id).
type DistanceMatrix struct {
	n int
	w []float64 // row major: w[i*n+j]
}

// NewDistanceMatrix. haversine distance for every ordered pair i != j, zero diagonal. O(n^2).
func NewDistanceMatrix(points []Point) *DistanceMatrix {
	n := len(points)
	m := &DistanceMatrix{
		n: n,
		w: make([]float64, n*n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			m.w[i*n+j] = geo.CalculateHaversineDistance(points[i].lat, points[i].lon,
				points[j].lat, points[j].lon)
		}
	}
	return m
}

// NewDistanceMatrixFromRows. copies a square matrix given as rows, used for synthetic instances.
func NewDistanceMatrixFromRows(rows [][]float64) *DistanceMatrix {
	n := len(rows)
	m := &DistanceMatrix{
		n: n,
		w: make([]float64, n*n),
	}
	for i := 0; i < n; i++ {
		copy(m.w[i*n:(i+1)*n], rows[i])
	}
	return m
}

func (m *DistanceMatrix) Size() int {
	return m.n
}

func (m *DistanceMatrix) At(i, j int) float64 {
	return m.w[i*m.n+j]
}

func (m *DistanceMatrix) IsSymmetric() bool {
	for i := 0; i < m.n; i++ {
		if m.w[i*m.n+i] != 0 {
			return false
		}
		for j := i + 1; j < m.n; j++ {
			if m.w[i*m.n+j] != m.w[j*m.n+i] {
				return false
			}
		}
	}
	return true
}
