package tsp

import (
	"context"

	"github.com/lintang-b-s/TourPlanner/pkg"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
)

type Options struct {
	// DisablePruning pushes every extension regardless of the incumbent. only the cost of the
	// search changes, never the optimal cost.
	DisablePruning bool
}

/*
branchAndBound. depth-first search over open paths from position 0 with an explicit LIFO stack.

  - a popped state that already visits all n positions is closed back to 0; it replaces the
    incumbent only when strictly cheaper, so among equal-cost optima the first one found on this
    traversal order is kept.
  - otherwise every unvisited position, in ascending index order, extends the path. the accumulated
    cost is a lower bound of any completion (distances are non-negative); the extension is pushed
    only when that bound is strictly below the incumbent, else it is counted as pruned.

stats must already hold the seeded incumbent. ctx is polled every CANCEL_CHECK_INTERVAL expansions;
on cancellation stats keeps the best tour found so far and ErrSearchInterrupted is returned.
*/
func branchAndBound(ctx context.Context, m *da.DistanceMatrix, stats *SearchStatistics, opts Options) error {
	n := m.Size()
	stack := da.NewPathStack()
	stack.Push(da.NewPartialPath(0))

	for !stack.IsEmpty() {
		current, _ := stack.Pop()

		stats.nodesExpanded++
		if stats.nodesExpanded%pkg.CANCEL_CHECK_INTERVAL == 0 && ctx.Err() != nil {
			return ErrSearchInterrupted
		}

		if current.Len() == n {
			finalCost := current.GetCost() + m.At(current.Last(), 0)
			if finalCost < stats.best.Cost {
				stats.improve(finalCost, current.Closed())
			}
			continue
		}

		last := current.Last()
		for next := 0; next < n; next++ {
			if current.Contains(next) {
				continue
			}

			edge := m.At(last, next)
			lowerBound := current.GetCost() + edge

			if opts.DisablePruning || lowerBound < stats.best.Cost {
				stack.Push(current.Extend(next, edge))
			} else {
				stats.pruningCount++
			}
		}
	}
	return nil
}
