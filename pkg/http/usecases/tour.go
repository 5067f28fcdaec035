package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/lintang-b-s/TourPlanner/pkg/metrics"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"go.uber.org/zap"
)

type TourService struct {
	log        *zap.Logger
	engine     TourEngine
	tspTimeout time.Duration // 0: no deadline
}

func NewTourService(log *zap.Logger, engine TourEngine, tspTimeout time.Duration) *TourService {
	return &TourService{
		log:        log,
		engine:     engine,
		tspTimeout: tspTimeout,
	}
}

func (ts *TourService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if ts.tspTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ts.tspTimeout)
}

// SolveTour. an interrupted search is not an error here: the best tour found so far is returned with
// Partial set.
func (ts *TourService) SolveTour(ctx context.Context, startID int64, ids []int64) (*engine.Tour, error) {
	ctx, cancel := ts.withDeadline(ctx)
	defer cancel()

	tour, err := ts.engine.SolveTour(ctx, startID, ids)
	if err != nil && !errors.Is(err, tsp.ErrSearchInterrupted) {
		metrics.SolverRuns.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, wrapEngineError(err)
	}

	ts.observe(tour, err)
	return tour, nil
}

func (ts *TourService) CrossCheckTour(ctx context.Context, startID int64, ids []int64) (*engine.CrossCheckedTour,
	error) {
	ctx, cancel := ts.withDeadline(ctx)
	defer cancel()

	checked, err := ts.engine.CrossCheckTour(ctx, startID, ids)
	if errors.Is(err, tsp.ErrSolverDivergence) {
		metrics.ObserveTour(metrics.OutcomeDiverged, checked.Result.NodesExpanded, checked.Result.PruningCount,
			checked.Result.ElapsedTime)
		return checked, util.WrapErrorf(err, util.ErrConflict, "exact solver and %s oracle disagree",
			checked.OracleName)
	}
	if err != nil {
		metrics.SolverRuns.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, wrapEngineError(err)
	}

	ts.observe(checked.Tour, nil)
	return checked, nil
}

// BudgetRoute. an infeasible start is a valid (empty) answer, only an unknown start id is an error.
func (ts *TourService) BudgetRoute(startID int64, maxMinutes, maxCost float64) (budget.BudgetResult, error) {
	res := ts.engine.BudgetRoute(startID, maxMinutes, maxCost)
	switch {
	case errors.Is(res.Err, budget.ErrStartNotFound):
		metrics.ObserveBudget(metrics.OutcomeStartNotFound)
		return res, util.WrapErrorf(res.Err, util.ErrNotFound, "start point %d not found", startID)
	case errors.Is(res.Err, budget.ErrInfeasibleStart):
		metrics.ObserveBudget(metrics.OutcomeInfeasible)
	default:
		metrics.ObserveBudget(metrics.OutcomeRoute)
	}
	return res, nil
}

func (ts *TourService) Impact(ctx context.Context, startID int64, ids []int64, costPerKm, costPerHour,
	speedKmh float64) (costfunction.Impact, *engine.Tour, error) {
	ctx, cancel := ts.withDeadline(ctx)
	defer cancel()

	impact, tour, err := ts.engine.Impact(ctx, startID, ids, costPerKm, costPerHour, speedKmh)
	if err != nil {
		return costfunction.Impact{}, nil, wrapEngineError(err)
	}
	ts.observe(tour, nil)
	return impact, tour, nil
}

func (ts *TourService) Sensitivity(ctx context.Context, startID int64, costPerHour, speedKmh, fromCost,
	toCost float64, samples int) ([]costfunction.SensitivityPoint, *engine.Tour, error) {
	ctx, cancel := ts.withDeadline(ctx)
	defer cancel()

	sweep, tour, err := ts.engine.Sensitivity(ctx, startID, costPerHour, speedKmh, fromCost, toCost, samples)
	if err != nil {
		return nil, nil, wrapEngineError(err)
	}
	return sweep, tour, nil
}

func (ts *TourService) observe(tour *engine.Tour, err error) {
	outcome := metrics.OutcomeOptimal
	if err != nil {
		outcome = metrics.OutcomeInterrupted
		ts.log.Warn("tour search interrupted, returning best tour found", zap.String("name", tour.Result.Name),
			zap.Float64("cost", tour.Result.Cost), zap.Int64("nodesExpanded", tour.Result.NodesExpanded))
	}
	metrics.ObserveTour(outcome, tour.Result.NodesExpanded, tour.Result.PruningCount, tour.Result.ElapsedTime)
}

func wrapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrPointNotFound):
		return util.WrapErrorf(err, util.ErrNotFound, "point of interest not found")
	case errors.Is(err, engine.ErrTooManyPoints), errors.Is(err, tsp.ErrInsufficientPoints),
		errors.Is(err, tsp.ErrOracleTooLarge):
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid point selection")
	case errors.Is(err, tsp.ErrSearchInterrupted):
		return util.WrapErrorf(err, util.ErrInternalServerError, "tour search timed out")
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, "internal error")
	}
}
