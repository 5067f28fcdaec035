package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/TourPlanner/pkg"
	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/lintang-b-s/TourPlanner/pkg/poiparser"
	"github.com/lintang-b-s/TourPlanner/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	ErrPointNotFound = errors.New("point of interest not found")
	ErrTooManyPoints = errors.New("too many points for the exact solver")
)

// number of points besides the start in the fixed route used by the sensitivity sweep
const sensitivityRoutePoints = 5

// leaf bounding box radius of the spatial index, km
const indexLeafRadiusKm = 0.01

type Config struct {
	SpeedKmh        float64
	MaxTourPoints   int // start point included
	OracleMaxPoints int
	SolverOptions   tsp.Options
}

func DefaultConfig() Config {
	return Config{
		SpeedKmh:        pkg.AVG_SPEED_KMH,
		MaxTourPoints:   10,
		OracleMaxPoints: 10,
	}
}

// Engine. owns the loaded dataset: points in source order, their full distance matrix (computed once,
// used by the budget selector) and a spatial index over them.
type Engine struct {
	points    []da.Point
	idToIndex map[int64]int
	matrix    *da.DistanceMatrix

	timeFunction *costfunction.TimeFunction
	solver       *tsp.Solver
	oracle       tsp.Oracle
	selector     *budget.Selector
	index        *spatialindex.Rtree

	maxTourPoints int
	log           *zap.Logger
}

func NewEngine(points []da.Point, cfg Config, log *zap.Logger) (*Engine, error) {
	if len(points) == 0 {
		return nil, poiparser.ErrNoPoints
	}
	log.Info("computing full distance matrix", zap.Int("points", len(points)))
	tf := costfunction.NewTimeCostFunctionWithSpeed(cfg.SpeedKmh)

	index := spatialindex.NewRtree()
	index.Build(points, indexLeafRadiusKm, log)

	return &Engine{
		points:        points,
		idToIndex:     da.IndexByID(points),
		matrix:        da.NewDistanceMatrix(points),
		timeFunction:  tf,
		solver:        tsp.NewSolver(cfg.SolverOptions),
		oracle:        tsp.NewBruteForceOracle(cfg.OracleMaxPoints),
		selector:      budget.NewSelector(tf),
		index:         index,
		maxTourPoints: cfg.MaxTourPoints,
		log:           log,
	}, nil
}

// LoadEngine. reads the dataset from src and builds the engine over it.
func LoadEngine(ctx context.Context, src poiparser.Source, cfg Config, log *zap.Logger) (*Engine, error) {
	log.Info("Starting tour planner engine...")
	points, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewEngine(points, cfg, log)
}

func (e *Engine) GetPoints() []da.Point {
	return e.points
}

func (e *Engine) GetPoint(id int64) (da.Point, error) {
	idx, ok := e.idToIndex[id]
	if !ok {
		return da.Point{}, fmt.Errorf("%w: id %d", ErrPointNotFound, id)
	}
	return e.points[idx], nil
}

func (e *Engine) GetSpeed() float64 {
	return e.timeFunction.GetSpeed()
}

// Tour. exact tour over a subset plus its geometry.
type Tour struct {
	Result      *tsp.TourResult
	Subset      []da.Point
	Coordinates []geo.Coordinate // along Result.Path
	Polyline    string
}

/*
subset. start point followed by the selected points in dataset order. duplicate ids and the start id
are dropped from the selection.
*/
func (e *Engine) subset(startID int64, ids []int64) ([]da.Point, error) {
	startIdx, ok := e.idToIndex[startID]
	if !ok {
		return nil, fmt.Errorf("%w: start id %d", ErrPointNotFound, startID)
	}

	selected := make([]bool, len(e.points))
	for _, id := range ids {
		idx, ok := e.idToIndex[id]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrPointNotFound, id)
		}
		if idx != startIdx {
			selected[idx] = true
		}
	}

	sub := make([]da.Point, 0, len(ids)+1)
	sub = append(sub, e.points[startIdx])
	for i, sel := range selected {
		if sel {
			sub = append(sub, e.points[i])
		}
	}

	if e.maxTourPoints > 0 && len(sub) > e.maxTourPoints {
		return nil, fmt.Errorf("%w: %d points, limit %d", ErrTooManyPoints, len(sub), e.maxTourPoints)
	}
	return sub, nil
}

func (e *Engine) newTour(res *tsp.TourResult, sub []da.Point) *Tour {
	coords := da.PointCoordinates(sub, res.Path)
	return &Tour{
		Result:      res,
		Subset:      sub,
		Coordinates: coords,
		Polyline:    geo.PolylineFromCoords(coords),
	}
}

// SolveTour. optimal closed tour from startID through ids. an interrupted search still returns the
// best tour found together with tsp.ErrSearchInterrupted.
func (e *Engine) SolveTour(ctx context.Context, startID int64, ids []int64) (*Tour, error) {
	sub, err := e.subset(startID, ids)
	if err != nil {
		return nil, err
	}
	return e.solve(ctx, sub, da.NewDistanceMatrix(sub))
}

// solve. m is built by the caller for this invocation only and is never shared between calls.
func (e *Engine) solve(ctx context.Context, sub []da.Point, m *da.DistanceMatrix) (*Tour, error) {
	name := fmt.Sprintf("Route of %d points", len(sub))
	res, err := e.solver.SolveWithMatrix(ctx, name, sub, m)
	if res == nil {
		return nil, err
	}

	e.log.Debug("tour solved", zap.String("name", name), zap.Float64("cost", res.Cost),
		zap.Int64("nodesExpanded", res.NodesExpanded), zap.Int64("pruningCount", res.PruningCount),
		zap.Duration("elapsed", res.ElapsedTime), zap.Bool("partial", res.Partial))
	return e.newTour(res, sub), err
}

type CrossCheckedTour struct {
	*Tour
	OracleName string
	Oracle     tsp.OracleResult
}

// CrossCheckTour. SolveTour plus the brute-force oracle over the same matrix. a cost mismatch is
// returned as tsp.ErrSolverDivergence alongside both results.
func (e *Engine) CrossCheckTour(ctx context.Context, startID int64, ids []int64) (*CrossCheckedTour, error) {
	sub, err := e.subset(startID, ids)
	if err != nil {
		return nil, err
	}
	m := da.NewDistanceMatrix(sub)

	tour, err := e.solve(ctx, sub, m)
	if err != nil {
		return nil, err
	}

	oracleRes, err := e.oracle.Solve(ctx, m)
	if err != nil {
		return nil, err
	}

	out := &CrossCheckedTour{Tour: tour, OracleName: e.oracle.Name(), Oracle: oracleRes}
	if err := tsp.CrossCheck(tour.Result.Cost, oracleRes); err != nil {
		e.log.Error("exact solver diverged from oracle", zap.Float64("exact", tour.Result.Cost),
			zap.Float64("oracle", oracleRes.Cost), zap.String("oracle name", e.oracle.Name()))
		return out, err
	}
	return out, nil
}

// BudgetRoute. greedy open route over the whole dataset.
func (e *Engine) BudgetRoute(startID int64, maxMinutes, maxCost float64) budget.BudgetResult {
	return e.selector.Select(e.points, e.matrix, startID, maxMinutes, maxCost)
}

// Impact. solves the tour and prices the nearest neighbour tour against the optimal one.
func (e *Engine) Impact(ctx context.Context, startID int64, ids []int64, costPerKm, costPerHour,
	speedKmh float64) (costfunction.Impact, *Tour, error) {
	tour, err := e.SolveTour(ctx, startID, ids)
	if err != nil {
		return costfunction.Impact{}, tour, err
	}
	impact := costfunction.ImpactAnalysis(tour.Result.HeuristicCost, tour.Result.Cost, costPerKm,
		costPerHour, speedKmh)
	return impact, tour, nil
}

// Sensitivity. total cost of a fixed optimal route (start point plus the first five other points of
// the dataset) while the cost per km sweeps [fromCost, toCost].
func (e *Engine) Sensitivity(ctx context.Context, startID int64, costPerHour, speedKmh, fromCost,
	toCost float64, samples int) ([]costfunction.SensitivityPoint, *Tour, error) {
	ids := make([]int64, 0, sensitivityRoutePoints)
	for _, p := range e.points {
		if len(ids) == sensitivityRoutePoints {
			break
		}
		if p.GetID() != startID {
			ids = append(ids, p.GetID())
		}
	}

	tour, err := e.SolveTour(ctx, startID, ids)
	if err != nil {
		return nil, tour, err
	}
	sweep := costfunction.CostPerKmSensitivity(tour.Result.Cost, speedKmh, costPerHour, fromCost, toCost,
		samples)
	return sweep, tour, nil
}

func (e *Engine) Summary() da.DatasetSummary {
	return da.Summarize(e.points)
}

// NearestPoint. closest point of interest within radiusKm of (lat, lon).
func (e *Engine) NearestPoint(lat, lon, radiusKm float64) (da.Point, float64, error) {
	cand, ok := e.index.Nearest(lat, lon, radiusKm)
	if !ok {
		return da.Point{}, 0, fmt.Errorf("%w: none within %.2f km", ErrPointNotFound, radiusKm)
	}
	return e.points[cand.Position], cand.DistanceKm, nil
}
