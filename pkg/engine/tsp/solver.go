package tsp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lintang-b-s/TourPlanner/pkg"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
)

// TourResult. what the exact solver reports for one point subset.
type TourResult struct {
	Name          string
	Cost          float64
	Path          []int
	PathNames     []string
	NodesExpanded int64
	PruningCount  int64
	HeuristicCost float64
	HeuristicPath []int
	ElapsedTime   time.Duration
	Partial       bool
}

// PathDescription. "A -> B -> A".
func (r *TourResult) PathDescription() string {
	return strings.Join(r.PathNames, pkg.PATH_SEPARATOR)
}

type Solver struct {
	opts Options
}

func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts}
}

func (s *Solver) Solve(name string, points []da.Point) (*TourResult, error) {
	return s.SolveContext(context.Background(), name, points)
}

// SolveContext. optimal closed tour over points starting and ending at points[0]. the distance
// matrix is computed fresh for this subset. when ctx ends before the search finishes, the best tour
// found so far is returned with Partial set, together with ErrSearchInterrupted.
func (s *Solver) SolveContext(ctx context.Context, name string, points []da.Point) (*TourResult, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}
	return s.SolveWithMatrix(ctx, name, points, da.NewDistanceMatrix(points))
}

// SolveWithMatrix. m must be the distance matrix of exactly this points slice.
func (s *Solver) SolveWithMatrix(ctx context.Context, name string, points []da.Point,
	m *da.DistanceMatrix) (*TourResult, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}
	snap, err := s.SolveMatrix(ctx, m)
	if err != nil && !errors.Is(err, ErrSearchInterrupted) {
		return nil, err
	}

	res := &TourResult{
		Name:          name,
		Cost:          snap.Cost,
		Path:          snap.Path,
		PathNames:     da.PointNames(points, snap.Path),
		NodesExpanded: snap.NodesExpanded,
		PruningCount:  snap.PruningCount,
		HeuristicCost: snap.HeuristicCost,
		HeuristicPath: snap.HeuristicPath,
		ElapsedTime:   snap.Elapsed,
		Partial:       snap.Partial,
	}
	return res, err
}

// SolveMatrix. same search over an arbitrary non-negative square matrix.
func (s *Solver) SolveMatrix(ctx context.Context, m *da.DistanceMatrix) (SearchSnapshot, error) {
	if m.Size() < 2 {
		return SearchSnapshot{}, ErrInsufficientPoints
	}
	if ctx == nil {
		ctx = context.Background()
	}

	stats := NewSearchStatistics()

	heuristicCost, heuristicPath := NearestNeighborTour(m)
	stats.seed(heuristicCost, heuristicPath)

	stats.startClock()
	err := branchAndBound(ctx, m, stats, s.opts)
	stats.stopClock()

	snap := stats.Snapshot()
	snap.HeuristicCost = heuristicCost
	snap.HeuristicPath = heuristicPath
	if err != nil {
		snap.Partial = true
		return snap, err
	}
	return snap, nil
}
