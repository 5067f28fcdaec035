package engine

import (
	"context"
	"errors"
	"testing"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func curitiba() []da.Point {
	return []da.Point{
		da.NewPoint(1, "Jardim Botanico", -25.4431, -49.2390, "Parque", 4.7, 95, 0, 60),
		da.NewPoint(2, "Museu Oscar Niemeyer", -25.4101, -49.2672, "Museu", 4.8, 90, 30, 120),
		da.NewPoint(3, "Opera de Arame", -25.3847, -49.2762, "Cultura", 4.6, 80, 0, 45),
		da.NewPoint(4, "Parque Tangua", -25.3786, -49.2833, "Parque", 4.7, 85, 0, 60),
		da.NewPoint(5, "Largo da Ordem", -25.4275, -49.2713, "Historico", 4.5, 70, 0, 90),
		da.NewPoint(6, "Torre Panoramica", -25.4268, -49.3045, "Mirante", 4.4, 60, 15, 40),
		da.NewPoint(7, "Parque Barigui", -25.4216, -49.3075, "Parque", 4.7, 88, 0, 75),
		da.NewPoint(8, "Mercado Municipal", -25.4359, -49.2592, "Mercado", 4.5, 65, 0, 60),
	}
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(curitiba(), cfg, zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestSolveTourSubsetOrder(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	tour, err := e.SolveTour(context.Background(), 1, []int64{5, 3, 3, 1, 2})
	require.NoError(t, err)

	ids := make([]int64, len(tour.Subset))
	for i, p := range tour.Subset {
		ids[i] = p.GetID()
	}
	assert.Equal(t, []int64{1, 2, 3, 5}, ids)
	assert.Len(t, tour.Result.Path, 5)
	assert.Len(t, tour.Coordinates, 5)
	assert.NotEmpty(t, tour.Polyline)
	assert.Equal(t, "Jardim Botanico", tour.Result.PathNames[0])
}

func TestSolveTourErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTourPoints = 4
	e := newTestEngine(t, cfg)

	testCases := []struct {
		name    string
		startID int64
		ids     []int64
		wantErr error
	}{
		{name: "unknown start", startID: 99, ids: []int64{2}, wantErr: ErrPointNotFound},
		{name: "unknown selection", startID: 1, ids: []int64{2, 42}, wantErr: ErrPointNotFound},
		{name: "only the start", startID: 1, ids: []int64{1}, wantErr: tsp.ErrInsufficientPoints},
		{name: "too many points", startID: 1, ids: []int64{2, 3, 4, 5}, wantErr: ErrTooManyPoints},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.SolveTour(context.Background(), tt.startID, tt.ids)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSolveTourRecomputesPerCall(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	first, err := e.SolveTour(context.Background(), 1, []int64{2, 3})
	require.NoError(t, err)

	_, err = e.SolveTour(context.Background(), 1, []int64{2, 4})
	require.NoError(t, err)

	again, err := e.SolveTour(context.Background(), 1, []int64{2, 3})
	require.NoError(t, err)

	assert.NotSame(t, first.Result, again.Result)
	assert.Equal(t, first.Result.Path, again.Result.Path)
	assert.Equal(t, first.Result.Cost, again.Result.Cost)
	assert.Equal(t, first.Result.NodesExpanded, again.Result.NodesExpanded)
	assert.Equal(t, first.Result.PruningCount, again.Result.PruningCount)
}

func TestCrossCheckTour(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	checked, err := e.CrossCheckTour(context.Background(), 1, []int64{2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, tsp.StatusOptimal, checked.Oracle.Status)
	assert.InDelta(t, checked.Oracle.Cost, checked.Result.Cost, 1e-9)
	assert.Equal(t, "brute-force", checked.OracleName)
}

func TestBudgetRoute(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	res := e.BudgetRoute(1, 8*60, 50)
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Route)
	assert.Equal(t, int64(1), res.Route[0].Point.GetID())
	assert.LessOrEqual(t, res.Summary.TotalMinutes, 480.0)
	assert.LessOrEqual(t, res.Summary.TotalCost, 50.0)

	res = e.BudgetRoute(2, 480, 10)
	assert.True(t, errors.Is(res.Err, budget.ErrInfeasibleStart))
	assert.Empty(t, res.Route)
}

func TestImpactAndSensitivity(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	impact, tour, err := e.Impact(context.Background(), 1, []int64{2, 3, 4, 5, 6}, 2.5, 30, 25)
	require.NoError(t, err)
	assert.True(t, impact.Savings.Sign() >= 0)
	assert.InDelta(t, tour.Result.Cost, impact.Optimized.DistanceKm, 1e-12)
	assert.InDelta(t, tour.Result.HeuristicCost, impact.Heuristic.DistanceKm, 1e-12)

	sweep, base, err := e.Sensitivity(context.Background(), 1, 30, 25, 1.0, 5.0, 20)
	require.NoError(t, err)
	require.Len(t, sweep, 20)
	assert.Len(t, base.Subset, 6)
	assert.Equal(t, 1.0, sweep[0].CostPerKm)
	assert.Equal(t, 5.0, sweep[19].CostPerKm)
	for i := 1; i < len(sweep); i++ {
		assert.Greater(t, sweep[i].TotalCost, sweep[i-1].TotalCost)
	}
}

func TestNearestPoint(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	p, dist, err := e.NearestPoint(-25.4432, -49.2391, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.GetID())
	assert.Less(t, dist, 0.1)

	_, _, err = e.NearestPoint(-23.55, -46.63, 1)
	require.ErrorIs(t, err, ErrPointNotFound)
}

func TestSummary(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	s := e.Summary()
	assert.Equal(t, 8, s.NumPoints)
	require.NotEmpty(t, s.Categories)
	assert.Equal(t, "Parque", s.Categories[0].Category)
	assert.Equal(t, 3, s.Categories[0].Count)
}
