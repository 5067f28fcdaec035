package tsp

import (
	"context"
	"math"
	"testing"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func unitSquare() *da.DistanceMatrix {
	d := math.Sqrt2
	return da.NewDistanceMatrixFromRows([][]float64{
		{0, 1, d, 1},
		{1, 0, 1, d},
		{d, 1, 0, 1},
		{1, d, 1, 0},
	})
}

func randomPoints(seed uint64, n int) []da.Point {
	rd := rand.New(rand.NewSource(seed))
	points := make([]da.Point, n)
	for i := 0; i < n; i++ {
		lat := -25.50 + rd.Float64()*0.15
		lon := -49.35 + rd.Float64()*0.15
		points[i] = da.NewPoint(int64(i+1), string(rune('A'+i)), lat, lon, "Parque", 4.5, 100, 0, 60)
	}
	return points
}

func TestSolveMatrixSquare(t *testing.T) {
	s := NewSolver(Options{})
	snap, err := s.SolveMatrix(context.Background(), unitSquare())
	require.NoError(t, err)

	assert.InDelta(t, 4.0, snap.Cost, 1e-12)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, snap.Path)
	assert.False(t, snap.Partial)
}

func TestSolveGeographicSquare(t *testing.T) {
	points := []da.Point{
		da.NewPoint(1, "A", 0, 0, "", 0, 0, 0, 0),
		da.NewPoint(2, "B", 0, 1, "", 0, 0, 0, 0),
		da.NewPoint(3, "C", 1, 1, "", 0, 0, 0, 0),
		da.NewPoint(4, "D", 1, 0, "", 0, 0, 0, 0),
	}
	m := da.NewDistanceMatrix(points)

	res, err := NewSolver(Options{}).Solve("square", points)
	require.NoError(t, err)

	perimeter := da.TourCost(m, []int{0, 1, 2, 3, 0})
	crossing := da.TourCost(m, []int{0, 2, 1, 3, 0})
	assert.InDelta(t, perimeter, res.Cost, 1e-9)
	assert.Less(t, res.Cost, crossing)
	assert.Equal(t, 0, res.Path[0])
	assert.Equal(t, 0, res.Path[len(res.Path)-1])
	assert.Len(t, res.PathNames, 5)
	assert.Equal(t, "A", res.PathNames[0])
	assert.Equal(t, "A", res.PathNames[4])
	assert.Equal(t, "C", res.PathNames[2])
}

func TestSolveTwoPoints(t *testing.T) {
	points := randomPoints(7, 2)
	d := da.NewDistanceMatrix(points).At(0, 1)

	res, err := NewSolver(Options{}).Solve("pair", points)
	require.NoError(t, err)

	assert.InDelta(t, 2*d, res.Cost, 1e-12)
	assert.Equal(t, []int{0, 1, 0}, res.Path)
	assert.Equal(t, int64(2), res.NodesExpanded)
	assert.Equal(t, int64(0), res.PruningCount)
}

func TestSolveInsufficientPoints(t *testing.T) {
	s := NewSolver(Options{})

	_, err := s.Solve("empty", nil)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = s.Solve("single", randomPoints(1, 1))
	require.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestSolveMatchesBruteForce(t *testing.T) {
	testCases := []struct {
		name string
		seed uint64
		n    int
	}{
		{name: "n=3", seed: 1, n: 3},
		{name: "n=5", seed: 2, n: 5},
		{name: "n=6", seed: 3, n: 6},
		{name: "n=7", seed: 4, n: 7},
		{name: "n=8", seed: 5, n: 8},
	}

	oracle := NewBruteForceOracle(0)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			points := randomPoints(tt.seed, tt.n)
			m := da.NewDistanceMatrix(points)

			snap, err := NewSolver(Options{}).SolveMatrix(context.Background(), m)
			require.NoError(t, err)

			want, err := oracle.Solve(context.Background(), m)
			require.NoError(t, err)
			require.Equal(t, StatusOptimal, want.Status)

			require.NoError(t, CrossCheck(snap.Cost, want))
			assert.InDelta(t, da.TourCost(m, snap.Path), snap.Cost, 1e-9)
			assert.LessOrEqual(t, snap.Cost, snap.HeuristicCost)
			assertValidTour(t, snap.Path, tt.n)
		})
	}
}

func TestPruningDoesNotChangeOptimum(t *testing.T) {
	for seed := uint64(10); seed < 15; seed++ {
		m := da.NewDistanceMatrix(randomPoints(seed, 7))

		pruned, err := NewSolver(Options{}).SolveMatrix(context.Background(), m)
		require.NoError(t, err)
		full, err := NewSolver(Options{DisablePruning: true}).SolveMatrix(context.Background(), m)
		require.NoError(t, err)

		assert.True(t, util.AllClose(pruned.Cost, full.Cost))
		assert.LessOrEqual(t, pruned.NodesExpanded, full.NodesExpanded)
		assert.Equal(t, int64(0), full.PruningCount)
	}
}

func TestSolveDeterministic(t *testing.T) {
	points := randomPoints(42, 8)

	first, err := NewSolver(Options{}).Solve("a", points)
	require.NoError(t, err)
	second, err := NewSolver(Options{}).Solve("b", points)
	require.NoError(t, err)

	assert.Equal(t, first.Cost, second.Cost)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.NodesExpanded, second.NodesExpanded)
	assert.Equal(t, first.PruningCount, second.PruningCount)
}

func TestBoundHistoryStrictlyDecreasing(t *testing.T) {
	for seed := uint64(20); seed < 25; seed++ {
		snap, err := NewSolver(Options{}).SolveMatrix(context.Background(),
			da.NewDistanceMatrix(randomPoints(seed, 8)))
		require.NoError(t, err)

		require.NotEmpty(t, snap.BoundHistory)
		assert.Equal(t, snap.HeuristicCost, snap.BoundHistory[0])
		assert.Equal(t, snap.Cost, snap.BoundHistory[len(snap.BoundHistory)-1])
		for i := 1; i < len(snap.BoundHistory); i++ {
			assert.Less(t, snap.BoundHistory[i], snap.BoundHistory[i-1])
		}
	}
}

func TestSolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points := randomPoints(99, 9)
	res, err := NewSolver(Options{DisablePruning: true}).SolveContext(ctx, "cancelled", points)
	require.ErrorIs(t, err, ErrSearchInterrupted)
	require.NotNil(t, res)

	assert.True(t, res.Partial)
	assert.Equal(t, int64(4096), res.NodesExpanded)
	assert.LessOrEqual(t, res.Cost, res.HeuristicCost)
	assertValidTour(t, res.Path, len(points))
}

func TestNearestNeighborTour(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]float64
		wantCost float64
		wantPath []int
	}{
		{
			name:     "unit square, lowest index wins ties",
			rows:     [][]float64{{0, 1, 2, 1}, {1, 0, 1, 2}, {2, 1, 0, 1}, {1, 2, 1, 0}},
			wantCost: 4,
			wantPath: []int{0, 1, 2, 3, 0},
		},
		{
			name:     "greedy trap",
			rows:     [][]float64{{0, 1, 2, 10}, {1, 0, 1.5, 3}, {2, 1.5, 0, 1}, {10, 3, 1, 0}},
			wantCost: 1 + 1.5 + 1 + 10,
			wantPath: []int{0, 1, 2, 3, 0},
		},
		{
			name:     "single",
			rows:     [][]float64{{0}},
			wantCost: 0,
			wantPath: []int{0, 0},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cost, path := NearestNeighborTour(da.NewDistanceMatrixFromRows(tt.rows))
			assert.InDelta(t, tt.wantCost, cost, 1e-12)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestNearestNeighborNeverBeatsOptimum(t *testing.T) {
	for seed := uint64(30); seed < 40; seed++ {
		m := da.NewDistanceMatrix(randomPoints(seed, 7))
		nnCost, _ := NearestNeighborTour(m)
		optCost, _, err := BruteForce(context.Background(), m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, nnCost+1e-9, optCost)
	}
}

func TestBruteForceOracleLimits(t *testing.T) {
	o := NewBruteForceOracle(4)
	_, err := o.Solve(context.Background(), da.NewDistanceMatrix(randomPoints(1, 5)))
	require.ErrorIs(t, err, ErrOracleTooLarge)

	_, err = o.Solve(context.Background(), da.NewDistanceMatrix(randomPoints(1, 1)))
	require.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestCrossCheckDivergence(t *testing.T) {
	require.NoError(t, CrossCheck(10.0, OracleResult{Cost: 10.00000001}))
	require.ErrorIs(t, CrossCheck(10.0, OracleResult{Cost: 10.1}), ErrSolverDivergence)
}

func TestNextPermutation(t *testing.T) {
	a := []int{1, 2, 3}
	got := [][]int{append([]int(nil), a...)}
	for nextPermutation(a) {
		got = append(got, append([]int(nil), a...))
	}
	assert.Equal(t, [][]int{{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1}}, got)
}

func assertValidTour(t *testing.T, path []int, n int) {
	t.Helper()
	require.Len(t, path, n+1)
	require.Equal(t, 0, path[0])
	require.Equal(t, 0, path[n])
	seen := make(map[int]bool, n)
	for _, v := range path[:n] {
		require.False(t, seen[v], "position %d visited twice", v)
		seen[v] = true
	}
}
