package budget

import (
	"math"
	"testing"

	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curitibaPoints() []da.Point {
	return []da.Point{
		da.NewPoint(1, "Jardim Botanico", -25.4431, -49.2390, "Parque", 4.7, 95, 0, 60),
		da.NewPoint(2, "Museu Oscar Niemeyer", -25.4101, -49.2672, "Museu", 4.8, 90, 30, 120),
		da.NewPoint(3, "Opera de Arame", -25.3847, -49.2762, "Cultura", 4.6, 80, 0, 45),
		da.NewPoint(4, "Parque Tangua", -25.3786, -49.2833, "Parque", 4.7, 85, 0, 60),
		da.NewPoint(5, "Largo da Ordem", -25.4275, -49.2713, "Historico", 4.5, 70, 0, 90),
		da.NewPoint(6, "Torre Panoramica", -25.4268, -49.3045, "Mirante", 4.4, 60, 15, 40),
	}
}

func TestSelectInfeasibleStart(t *testing.T) {
	points := curitibaPoints()
	m := da.NewDistanceMatrix(points)
	s := NewSelector(costfunction.NewTimeCostFunction())

	testCases := []struct {
		name       string
		startID    int64
		maxMinutes float64
		maxCost    float64
		wantErr    error
	}{
		{name: "start costs more than the budget", startID: 2, maxMinutes: 600, maxCost: 10, wantErr: ErrInfeasibleStart},
		{name: "start visit longer than the budget", startID: 1, maxMinutes: 30, maxCost: 100, wantErr: ErrInfeasibleStart},
		{name: "unknown start", startID: 77, maxMinutes: 600, maxCost: 100, wantErr: ErrStartNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Select(points, m, tt.startID, tt.maxMinutes, tt.maxCost)
			assert.True(t, res.IsEmpty())
			assert.Nil(t, res.Summary)
			assert.NotEmpty(t, res.Diagnostic)
			assert.ErrorIs(t, res.Err, tt.wantErr)
		})
	}
}

func TestSelectStartOnlyFitsExactly(t *testing.T) {
	points := curitibaPoints()
	res := NewSelector(costfunction.NewTimeCostFunction()).Select(points, da.NewDistanceMatrix(points), 1, 60, 0)

	require.NoError(t, res.Err)
	require.Len(t, res.Route, 1)
	assert.Equal(t, "Jardim Botanico", res.Summary.PathNames)
	assert.Equal(t, 95.0, res.Summary.Popularity)
	assert.Equal(t, 60.0, res.Summary.TotalMinutes)
}

func TestSelectUnlimitedBudgetVisitsEverything(t *testing.T) {
	points := curitibaPoints()
	m := da.NewDistanceMatrix(points)
	s := NewSelector(costfunction.NewTimeCostFunction())

	res := s.Select(points, m, 1, math.Inf(1), math.Inf(1))
	require.NoError(t, res.Err)
	require.Len(t, res.Route, len(points))

	seen := map[int64]bool{}
	totalPop := 0.0
	for _, stop := range res.Route {
		assert.False(t, seen[stop.Point.GetID()])
		seen[stop.Point.GetID()] = true
		totalPop += stop.Point.GetPopularity()
	}
	assert.Equal(t, int64(1), res.Route[0].Point.GetID())
	assert.InDelta(t, totalPop, res.Summary.Popularity, 1e-9)

	again := s.Select(points, m, 1, math.Inf(1), math.Inf(1))
	assert.Equal(t, res.Summary.PathNames, again.Summary.PathNames)
	assert.Equal(t, res.Log, again.Log)
}

func TestSelectPrefixFeasibility(t *testing.T) {
	points := curitibaPoints()
	m := da.NewDistanceMatrix(points)
	s := NewSelector(costfunction.NewTimeCostFunction())

	budgets := []struct{ minutes, cost float64 }{
		{minutes: 120, cost: 0}, {minutes: 240, cost: 15}, {minutes: 300, cost: 45}, {minutes: 480, cost: 100},
	}
	for _, b := range budgets {
		res := s.Select(points, m, 1, b.minutes, b.cost)
		require.NoError(t, res.Err)

		prevMinutes, prevCost := 0.0, 0.0
		for i, stop := range res.Route {
			assert.LessOrEqual(t, stop.CumulativeMinutes, b.minutes)
			assert.LessOrEqual(t, stop.CumulativeCost, b.cost)
			assert.GreaterOrEqual(t, stop.CumulativeMinutes, prevMinutes)
			assert.GreaterOrEqual(t, stop.CumulativeCost, prevCost)
			if i > 0 {
				prev := res.Route[i-1].Point
				d := m.At(indexOf(points, prev.GetID()), indexOf(points, stop.Point.GetID()))
				assert.InDelta(t, d, stop.TravelKm, 1e-12)
			}
			prevMinutes, prevCost = stop.CumulativeMinutes, stop.CumulativeCost
		}
		assert.Equal(t, prevMinutes, res.Summary.TotalMinutes)
		assert.Equal(t, prevCost, res.Summary.TotalCost)
	}
}

func TestSelectTieGoesToFirstPoint(t *testing.T) {
	points := []da.Point{
		da.NewPoint(1, "origin", 0, 0, "", 0, 0, 0, 0),
		da.NewPoint(2, "east", 0, 0.01, "", 0, 50, 0, 30),
		da.NewPoint(3, "west", 0, -0.01, "", 0, 50, 0, 30),
	}
	m := da.NewDistanceMatrixFromRows([][]float64{{0, 1, 1}, {1, 0, 2}, {1, 2, 0}})

	res := NewSelector(costfunction.NewTimeCostFunction()).Select(points, m, 1, 40, 0)
	require.Len(t, res.Route, 2)
	assert.Equal(t, "east", res.Route[1].Point.GetName())
	assert.Equal(t, "origin -> east", res.Summary.PathNames)
}

func TestSelectZeroSpeedNeverMoves(t *testing.T) {
	points := curitibaPoints()
	s := NewSelector(costfunction.NewTimeCostFunctionWithSpeed(0))

	res := s.Select(points, da.NewDistanceMatrix(points), 1, math.Inf(1), math.Inf(1))
	require.NoError(t, res.Err)
	require.Len(t, res.Route, 1)
	assert.Equal(t, "Jardim Botanico", res.Summary.PathNames)
}

func indexOf(points []da.Point, id int64) int {
	for i, p := range points {
		if p.GetID() == id {
			return i
		}
	}
	return -1
}
