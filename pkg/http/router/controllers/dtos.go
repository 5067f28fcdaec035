package controllers

import (
	"github.com/lintang-b-s/TourPlanner/pkg/costfunction"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
)

// points a tour request must select besides the start
const minSelectedPoints = 2

type tourRequest struct {
	StartID  int64   `json:"start_id" validate:"gte=0"`
	PointIDs []int64 `json:"point_ids" validate:"required,min=2,dive,gte=0"`
}

type budgetRequest struct {
	StartID    int64   `json:"start_id" validate:"gte=0"`
	MaxMinutes float64 `json:"max_minutes" validate:"gte=0"`
	MaxCost    float64 `json:"max_cost" validate:"gte=0"`
}

type impactRequest struct {
	StartID     int64    `json:"start_id" validate:"gte=0"`
	PointIDs    []int64  `json:"point_ids" validate:"required,min=2,dive,gte=0"`
	CostPerKm   *float64 `json:"cost_per_km" validate:"omitempty,gte=0"`
	CostPerHour *float64 `json:"cost_per_hour" validate:"omitempty,gte=0"`
	SpeedKmh    *float64 `json:"speed_kmh" validate:"omitempty,gt=0"`
}

type sensitivityRequest struct {
	StartID     int64   `validate:"gte=0"`
	CostPerHour float64 `validate:"gte=0"`
	SpeedKmh    float64 `validate:"gt=0"`
	FromCost    float64 `validate:"gte=0"`
	ToCost      float64 `validate:"gtefield=FromCost"`
	Samples     int     `validate:"gte=1,lte=1000"`
}

type nearestRequest struct {
	Lat      float64 `validate:"gte=-90,lte=90"`
	Lon      float64 `validate:"gte=-180,lte=180"`
	RadiusKm float64 `validate:"gt=0,lte=50"`
}

type pointResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating"`
	Popularity   float64 `json:"popularity"`
	EntryCost    float64 `json:"entry_cost"`
	VisitMinutes float64 `json:"visit_minutes"`
}

func NewPointResponse(p da.Point) pointResponse {
	return pointResponse{
		ID:           p.GetID(),
		Name:         p.GetName(),
		Lat:          p.GetLat(),
		Lon:          p.GetLon(),
		Category:     p.GetCategory(),
		Rating:       p.GetRating(),
		Popularity:   p.GetPopularity(),
		EntryCost:    p.GetEntryCost(),
		VisitMinutes: p.GetVisitMinutes(),
	}
}

func NewPointsResponse(points []da.Point) []pointResponse {
	resp := make([]pointResponse, len(points))
	for i, p := range points {
		resp[i] = NewPointResponse(p)
	}
	return resp
}

type coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type tourResponse struct {
	Name            string       `json:"name"`
	Cost            float64      `json:"cost_km"`
	Path            []int64      `json:"path"`
	PathNames       []string     `json:"path_names"`
	PathDescription string       `json:"path_description"`
	NodesExpanded   int64        `json:"nodes_expanded"`
	PruningCount    int64        `json:"pruning_count"`
	HeuristicCost   float64      `json:"heuristic_cost_km"`
	ElapsedMs       float64      `json:"elapsed_ms"`
	Partial         bool         `json:"partial"`
	Coordinates     []coordinate `json:"coordinates"`
	Polyline        string       `json:"polyline"`
}

// NewTourResponse. path positions are translated back to point ids.
func NewTourResponse(tour *engine.Tour) tourResponse {
	res := tour.Result
	path := make([]int64, len(res.Path))
	for i, pos := range res.Path {
		path[i] = tour.Subset[pos].GetID()
	}
	coords := make([]coordinate, len(tour.Coordinates))
	for i, c := range tour.Coordinates {
		coords[i] = coordinate{Lat: c.GetLat(), Lon: c.GetLon()}
	}
	return tourResponse{
		Name:            res.Name,
		Cost:            res.Cost,
		Path:            path,
		PathNames:       res.PathNames,
		PathDescription: res.PathDescription(),
		NodesExpanded:   res.NodesExpanded,
		PruningCount:    res.PruningCount,
		HeuristicCost:   res.HeuristicCost,
		ElapsedMs:       float64(res.ElapsedTime.Microseconds()) / 1000,
		Partial:         res.Partial,
		Coordinates:     coords,
		Polyline:        tour.Polyline,
	}
}

type crossCheckResponse struct {
	Tour         tourResponse `json:"tour"`
	OracleName   string       `json:"oracle_name"`
	OracleCost   float64      `json:"oracle_cost_km"`
	OracleStatus string       `json:"oracle_status"`
	OracleMs     float64      `json:"oracle_elapsed_ms"`
}

func NewCrossCheckResponse(c *engine.CrossCheckedTour) crossCheckResponse {
	return crossCheckResponse{
		Tour:         NewTourResponse(c.Tour),
		OracleName:   c.OracleName,
		OracleCost:   c.Oracle.Cost,
		OracleStatus: c.Oracle.Status,
		OracleMs:     float64(c.Oracle.Elapsed.Microseconds()) / 1000,
	}
}

type routeStopResponse struct {
	Point                pointResponse `json:"point"`
	TravelKm             float64       `json:"travel_km"`
	TravelMinutes        float64       `json:"travel_minutes"`
	CumulativeCost       float64       `json:"cumulative_cost"`
	CumulativeMinutes    float64       `json:"cumulative_minutes"`
	CumulativePopularity float64       `json:"cumulative_popularity"`
}

type budgetSummaryResponse struct {
	Popularity   float64 `json:"popularity"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalCost    float64 `json:"total_cost"`
	MaxMinutes   float64 `json:"max_minutes"`
	MaxCost      float64 `json:"max_cost"`
	PathNames    string  `json:"path_names"`
}

type budgetResponse struct {
	Route      []routeStopResponse    `json:"route"`
	Summary    *budgetSummaryResponse `json:"summary"`
	Log        []string               `json:"log"`
	Diagnostic string                 `json:"diagnostic,omitempty"`
}

func NewBudgetResponse(res budget.BudgetResult) budgetResponse {
	route := make([]routeStopResponse, len(res.Route))
	for i, s := range res.Route {
		route[i] = routeStopResponse{
			Point:                NewPointResponse(s.Point),
			TravelKm:             s.TravelKm,
			TravelMinutes:        s.TravelMinutes,
			CumulativeCost:       s.CumulativeCost,
			CumulativeMinutes:    s.CumulativeMinutes,
			CumulativePopularity: s.CumulativePopularity,
		}
	}
	var summary *budgetSummaryResponse
	if res.Summary != nil {
		summary = &budgetSummaryResponse{
			Popularity:   res.Summary.Popularity,
			TotalMinutes: res.Summary.TotalMinutes,
			TotalCost:    res.Summary.TotalCost,
			MaxMinutes:   res.Summary.MaxMinutes,
			MaxCost:      res.Summary.MaxCost,
			PathNames:    res.Summary.PathNames,
		}
	}
	return budgetResponse{
		Route:      route,
		Summary:    summary,
		Log:        res.Log,
		Diagnostic: res.Diagnostic,
	}
}

type scenarioResponse struct {
	DistanceKm   float64 `json:"distance_km"`
	Hours        float64 `json:"hours"`
	DistanceCost string  `json:"distance_cost"`
	LabourCost   string  `json:"labour_cost"`
	Total        string  `json:"total"`
}

func newScenarioResponse(s costfunction.ScenarioCost) scenarioResponse {
	return scenarioResponse{
		DistanceKm:   s.DistanceKm,
		Hours:        s.Hours,
		DistanceCost: s.DistanceCost.StringFixed(2),
		LabourCost:   s.LabourCost.StringFixed(2),
		Total:        s.Total.StringFixed(2),
	}
}

type impactResponse struct {
	Heuristic      scenarioResponse `json:"heuristic"`
	Optimized      scenarioResponse `json:"optimized"`
	DistanceDelta  float64          `json:"distance_delta_km"`
	HoursDelta     float64          `json:"hours_delta"`
	Savings        string           `json:"savings"`
	SavingsPercent float64          `json:"savings_percent"`
	Tour           tourResponse     `json:"tour"`
}

func NewImpactResponse(impact costfunction.Impact, tour *engine.Tour) impactResponse {
	return impactResponse{
		Heuristic:      newScenarioResponse(impact.Heuristic),
		Optimized:      newScenarioResponse(impact.Optimized),
		DistanceDelta:  impact.DistanceDelta,
		HoursDelta:     impact.HoursDelta,
		Savings:        impact.Savings.StringFixed(2),
		SavingsPercent: impact.SavingsPercent,
		Tour:           NewTourResponse(tour),
	}
}

type sensitivityPointResponse struct {
	CostPerKm float64 `json:"cost_per_km"`
	TotalCost float64 `json:"total_cost"`
}

type sensitivityResponse struct {
	Sweep []sensitivityPointResponse `json:"sweep"`
	Tour  tourResponse               `json:"tour"`
}

func NewSensitivityResponse(sweep []costfunction.SensitivityPoint, tour *engine.Tour) sensitivityResponse {
	pts := make([]sensitivityPointResponse, len(sweep))
	for i, s := range sweep {
		pts[i] = sensitivityPointResponse{CostPerKm: s.CostPerKm, TotalCost: s.TotalCost}
	}
	return sensitivityResponse{Sweep: pts, Tour: NewTourResponse(tour)}
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type summaryResponse struct {
	NumPoints        int                     `json:"num_points"`
	MeanEntryCost    float64                 `json:"mean_entry_cost"`
	MeanVisitMinutes float64                 `json:"mean_visit_minutes"`
	MeanRating       float64                 `json:"mean_rating"`
	MeanPopularity   float64                 `json:"mean_popularity"`
	Categories       []categoryCountResponse `json:"categories"`
	MinLat           float64                 `json:"min_lat"`
	MinLon           float64                 `json:"min_lon"`
	MaxLat           float64                 `json:"max_lat"`
	MaxLon           float64                 `json:"max_lon"`
}

func NewSummaryResponse(s da.DatasetSummary) summaryResponse {
	cats := make([]categoryCountResponse, len(s.Categories))
	for i, c := range s.Categories {
		cats[i] = categoryCountResponse{Category: c.Category, Count: c.Count}
	}
	return summaryResponse{
		NumPoints:        s.NumPoints,
		MeanEntryCost:    s.MeanEntryCost,
		MeanVisitMinutes: s.MeanVisitMinutes,
		MeanRating:       s.MeanRating,
		MeanPopularity:   s.MeanPopularity,
		Categories:       cats,
		MinLat:           s.MinLat,
		MinLon:           s.MinLon,
		MaxLat:           s.MaxLat,
		MaxLon:           s.MaxLon,
	}
}

type nearestResponse struct {
	Point      pointResponse `json:"point"`
	DistanceKm float64       `json:"distance_km"`
}
