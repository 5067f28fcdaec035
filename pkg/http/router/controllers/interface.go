package controllers

import (
	"context"

	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
)

type TourService interface {
	SolveTour(ctx context.Context, startID int64, ids []int64) (*engine.Tour, error)
	CrossCheckTour(ctx context.Context, startID int64, ids []int64) (*engine.CrossCheckedTour, error)
	BudgetRoute(startID int64, maxMinutes, maxCost float64) (budget.BudgetResult, error)
	Impact(ctx context.Context, startID int64, ids []int64, costPerKm, costPerHour,
		speedKmh float64) (costfunction.Impact, *engine.Tour, error)
	Sensitivity(ctx context.Context, startID int64, costPerHour, speedKmh, fromCost, toCost float64,
		samples int) ([]costfunction.SensitivityPoint, *engine.Tour, error)
}

type PointService interface {
	Points() []da.Point
	Summary() da.DatasetSummary
	NearestPoint(lat, lon, radiusKm float64) (da.Point, float64, error)
}
