package tsp

import (
	"math"
	"time"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
)

// SearchStatistics. per-invocation accumulator threaded through the search by pointer. never shared
// between invocations.
type SearchStatistics struct {
	best          da.Tour // incumbent, best.Cost is the upper bound
	nodesExpanded int64
	pruningCount  int64
	start         time.Time
	end           time.Time
	boundHistory  []float64
}

func NewSearchStatistics() *SearchStatistics {
	return &SearchStatistics{
		best:         da.Tour{Path: []int{}, Cost: math.Inf(1)},
		boundHistory: make([]float64, 0, 8),
	}
}

// seed. installs the initial incumbent.
func (s *SearchStatistics) seed(cost float64, path []int) {
	s.best = da.NewTour(path, cost)
	s.boundHistory = append(s.boundHistory, cost)
}

// improve. callers only invoke it with cost < the current upper bound.
func (s *SearchStatistics) improve(cost float64, path []int) {
	s.best = da.Tour{Path: path, Cost: cost}
	s.boundHistory = append(s.boundHistory, cost)
}

func (s *SearchStatistics) GetUpperBound() float64 {
	return s.best.Cost
}

func (s *SearchStatistics) GetNodesExpanded() int64 {
	return s.nodesExpanded
}

func (s *SearchStatistics) GetPruningCount() int64 {
	return s.pruningCount
}

func (s *SearchStatistics) startClock() {
	s.start = time.Now()
}

func (s *SearchStatistics) stopClock() {
	s.end = time.Now()
}

// SearchSnapshot. immutable view of a finished (or interrupted) search.
type SearchSnapshot struct {
	Cost          float64
	Path          []int
	NodesExpanded int64
	PruningCount  int64
	HeuristicCost float64
	HeuristicPath []int
	Start         time.Time
	End           time.Time
	Elapsed       time.Duration
	// BoundHistory holds the seed followed by every strict improvement, in discovery order.
	BoundHistory []float64
	Partial      bool
}

func (s *SearchStatistics) Snapshot() SearchSnapshot {
	snap := SearchSnapshot{
		Cost:          s.best.Cost,
		Path:          append([]int(nil), s.best.Path...),
		NodesExpanded: s.nodesExpanded,
		PruningCount:  s.pruningCount,
		Start:         s.start,
		End:           s.end,
		Elapsed:       s.end.Sub(s.start),
		BoundHistory:  append([]float64(nil), s.boundHistory...),
	}
	if len(s.boundHistory) > 0 {
		snap.HeuristicCost = s.boundHistory[0]
	}
	return snap
}
