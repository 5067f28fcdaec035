package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/TourPlanner/pkg"
	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
)

var (
	ErrStartNotFound   = errors.New("budget: start point not found")
	ErrInfeasibleStart = errors.New("budget: start point alone exceeds the budget")
)

// RouteStop. one point of the open route with running totals after visiting it.
type RouteStop struct {
	Point                da.Point
	TravelKm             float64
	TravelMinutes        float64
	CumulativeCost       float64
	CumulativeMinutes    float64
	CumulativePopularity float64
}

type Summary struct {
	Popularity   float64
	TotalMinutes float64
	TotalCost    float64
	MaxMinutes   float64
	MaxCost      float64
	PathNames    string
}

// BudgetResult. Route and Summary are empty whenever Diagnostic is set.
type BudgetResult struct {
	Route      []RouteStop
	Summary    *Summary
	Log        []string
	Diagnostic string
	Err        error
}

func (r BudgetResult) IsEmpty() bool {
	return len(r.Route) == 0
}

type Selector struct {
	tf costfunction.CostFunction
}

func NewSelector(tf costfunction.CostFunction) *Selector {
	return &Selector{tf: tf}
}

/*
Select. greedy prize collecting open route from startID over the full dataset.

every round scans points in the given order and keeps the unvisited candidate with the strictly
greatest popularity / (travel + visit + 1) among those whose addition keeps both totals within
budget (inclusive), so ties go to the earliest point. stops when no candidate qualifies.
matrix must be indexed by position in points.
*/
func (s *Selector) Select(points []da.Point, matrix *da.DistanceMatrix, startID int64,
	maxMinutes, maxCost float64) BudgetResult {
	res := BudgetResult{
		Route: []RouteStop{},
		Log:   make([]string, 0, 8),
	}

	startIdx := -1
	for i, p := range points {
		if p.GetID() == startID {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		res.Diagnostic = fmt.Sprintf("Error: start point (ID %d) not found.", startID)
		res.Log = append(res.Log, res.Diagnostic)
		res.Err = ErrStartNotFound
		return res
	}

	start := points[startIdx]
	if start.GetVisitMinutes() > maxMinutes || start.GetEntryCost() > maxCost {
		res.Diagnostic = fmt.Sprintf("Start point (%s) exceeds the budget. Empty route.", start.GetName())
		res.Log = append(res.Log, res.Diagnostic)
		res.Err = ErrInfeasibleStart
		return res
	}

	routeCost := start.GetEntryCost()
	routeMinutes := start.GetVisitMinutes()
	routePopularity := start.GetPopularity()
	visited := make([]bool, len(points))
	visited[startIdx] = true

	res.Route = append(res.Route, RouteStop{
		Point:                start,
		CumulativeCost:       routeCost,
		CumulativeMinutes:    routeMinutes,
		CumulativePopularity: routePopularity,
	})
	res.Log = append(res.Log, fmt.Sprintf("Start point: %s (Cost: R$%.2f, Time: %.0f min)",
		start.GetName(), routeCost, routeMinutes))

	last := startIdx
	for {
		best := -1
		bestScore := -1.0
		bestTravelKm, bestTravelMinutes := 0.0, 0.0

		for c, cand := range points {
			if visited[c] {
				continue
			}

			travelKm := matrix.At(last, c)
			travelMinutes := s.tf.GetTravelMinutes(travelKm)
			if costfunction.IsUnreachable(travelMinutes) {
				continue
			}

			minutesIfAdded := routeMinutes + travelMinutes + cand.GetVisitMinutes()
			costIfAdded := routeCost + cand.GetEntryCost()
			if minutesIfAdded > maxMinutes || costIfAdded > maxCost {
				continue
			}

			score := cand.GetPopularity() / (travelMinutes + cand.GetVisitMinutes() + 1)
			if score > bestScore {
				bestScore = score
				best = c
				bestTravelKm, bestTravelMinutes = travelKm, travelMinutes
			}
		}

		if best == -1 {
			res.Log = append(res.Log, "No further point can be added within the budget.")
			break
		}

		chosen := points[best]
		routeMinutes += bestTravelMinutes + chosen.GetVisitMinutes()
		routeCost += chosen.GetEntryCost()
		routePopularity += chosen.GetPopularity()
		visited[best] = true
		last = best

		res.Route = append(res.Route, RouteStop{
			Point:                chosen,
			TravelKm:             bestTravelKm,
			TravelMinutes:        bestTravelMinutes,
			CumulativeCost:       routeCost,
			CumulativeMinutes:    routeMinutes,
			CumulativePopularity: routePopularity,
		})
		res.Log = append(res.Log, fmt.Sprintf("  -> Adding: %s (Dist: %.1fkm, Travel time: %.0fmin)",
			chosen.GetName(), bestTravelKm, bestTravelMinutes))
	}

	names := make([]string, len(res.Route))
	for i, stop := range res.Route {
		names[i] = stop.Point.GetName()
	}
	res.Summary = &Summary{
		Popularity:   routePopularity,
		TotalMinutes: routeMinutes,
		TotalCost:    routeCost,
		MaxMinutes:   maxMinutes,
		MaxCost:      maxCost,
		PathNames:    strings.Join(names, pkg.PATH_SEPARATOR),
	}
	return res
}
