package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/TourPlanner/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

// Defaults. values used when a request leaves the corresponding field out.
type Defaults struct {
	StartID           int64
	CostPerKm         float64
	CostPerHour       float64
	SpeedKmh          float64
	NearestRadiusKm   float64
	SensitivityFrom   float64
	SensitivityTo     float64
	SensitivitySample int
}

type plannerAPI struct {
	tourService  TourService
	pointService PointService
	defaults     Defaults
	log          *zap.Logger
}

func New(tourService TourService, pointService PointService, defaults Defaults, log *zap.Logger) *plannerAPI {
	return &plannerAPI{
		tourService:  tourService,
		pointService: pointService,
		defaults:     defaults,
		log:          log,
	}
}

func (api *plannerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/tsp", api.solveTour)
	group.POST("/tsp/crosscheck", api.crossCheckTour)
	group.POST("/budgetRoute", api.budgetRoute)
	group.POST("/impact", api.impact)
	group.GET("/sensitivity", api.sensitivity)

	group.GET("/points", api.points)
	group.GET("/points/summary", api.summary)
	group.GET("/points/nearest", api.nearestPoint)
}

// solveTour godoc
//
//	@Summary		optimal closed tour from start_id through point_ids (branch and bound).
//	@Tags			tour
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tourRequest	true	"start point and selected points"
//	@Success		200		{object}	tourResponse
//	@Router			/api/tsp [post]
func (api *plannerAPI) solveTour(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request tourRequest
	if err := readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	tour, err := api.tourService.SolveTour(r.Context(), request.StartID, request.PointIDs)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewTourResponse(tour)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// crossCheckTour godoc
//
//	@Summary		optimal tour checked against the brute force oracle, 409 when the costs differ.
//	@Tags			tour
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tourRequest	true	"start point and selected points"
//	@Success		200		{object}	crossCheckResponse
//	@Router			/api/tsp/crosscheck [post]
func (api *plannerAPI) crossCheckTour(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request tourRequest
	if err := readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	checked, err := api.tourService.CrossCheckTour(r.Context(), request.StartID, request.PointIDs)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewCrossCheckResponse(checked)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// budgetRoute godoc
//
//	@Summary		greedy open route maximizing popularity within time and cost budgets.
//	@Tags			tour
//	@Accept			json
//	@Produce		json
//	@Param			body	body		budgetRequest	true	"start point and budgets"
//	@Success		200		{object}	budgetResponse
//	@Router			/api/budgetRoute [post]
func (api *plannerAPI) budgetRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request budgetRequest
	if err := readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.tourService.BudgetRoute(request.StartID, request.MaxMinutes, request.MaxCost)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewBudgetResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// impact godoc
//
//	@Summary		operating cost of the nearest neighbour tour against the optimal tour.
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		impactRequest	true	"selection and cost parameters"
//	@Success		200		{object}	impactResponse
//	@Router			/api/impact [post]
func (api *plannerAPI) impact(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request impactRequest
	if err := readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	costPerKm := valueOr(request.CostPerKm, api.defaults.CostPerKm)
	costPerHour := valueOr(request.CostPerHour, api.defaults.CostPerHour)
	speed := valueOr(request.SpeedKmh, api.defaults.SpeedKmh)

	impact, tour, err := api.tourService.Impact(r.Context(), request.StartID, request.PointIDs, costPerKm,
		costPerHour, speed)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewImpactResponse(impact, tour)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// sensitivity godoc
//
//	@Summary		total cost of a fixed optimal route while the cost per km sweeps a range.
//	@Tags			analysis
//	@Produce		json
//	@Param			start_id		query		int		false	"start point id"
//	@Param			cost_per_hour	query		number	false	"labour cost per hour"
//	@Param			speed_kmh		query		number	false	"average speed"
//	@Param			from			query		number	false	"first cost per km"
//	@Param			to				query		number	false	"last cost per km"
//	@Param			samples			query		int		false	"number of samples"
//	@Success		200				{object}	sensitivityResponse
//	@Router			/api/sensitivity [get]
func (api *plannerAPI) sensitivity(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request sensitivityRequest
		err     error
	)
	query := r.URL.Query()

	if request.StartID, err = queryInt(query, "start_id", api.defaults.StartID); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.CostPerHour, err = queryFloat(query, "cost_per_hour", api.defaults.CostPerHour); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.SpeedKmh, err = queryFloat(query, "speed_kmh", api.defaults.SpeedKmh); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.FromCost, err = queryFloat(query, "from", api.defaults.SensitivityFrom); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.ToCost, err = queryFloat(query, "to", api.defaults.SensitivityTo); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	samples, err := queryInt(query, "samples", int64(api.defaults.SensitivitySample))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Samples = int(samples)
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	sweep, tour, err := api.tourService.Sensitivity(r.Context(), request.StartID, request.CostPerHour,
		request.SpeedKmh, request.FromCost, request.ToCost, request.Samples)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewSensitivityResponse(sweep, tour)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// points godoc
//
//	@Summary		every loaded point of interest in dataset order.
//	@Tags			points
//	@Produce		json
//	@Success		200	{object}	[]pointResponse
//	@Router			/api/points [get]
func (api *plannerAPI) points(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewPointsResponse(api.pointService.Points())
	if err := writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// summary godoc
//
//	@Summary		descriptive statistics of the loaded dataset.
//	@Tags			points
//	@Produce		json
//	@Success		200	{object}	summaryResponse
//	@Router			/api/points/summary [get]
func (api *plannerAPI) summary(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewSummaryResponse(api.pointService.Summary())
	if err := writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// nearestPoint godoc
//
//	@Summary		closest point of interest to a coordinate.
//	@Tags			points
//	@Produce		json
//	@Param			lat			query		number	true	"latitude"
//	@Param			lon			query		number	true	"longitude"
//	@Param			radius_km	query		number	false	"search radius"
//	@Success		200			{object}	nearestResponse
//	@Router			/api/points/nearest [get]
func (api *plannerAPI) nearestPoint(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if request.RadiusKm, err = queryFloat(query, "radius_km", api.defaults.NearestRadiusKm); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	point, dist, err := api.pointService.NearestPoint(request.Lat, request.Lon, request.RadiusKm)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := nearestResponse{Point: NewPointResponse(point), DistanceKm: dist}
	if err := writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func queryFloat(query url.Values, key string, def float64) (float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid float", key)
	}
	return v, nil
}

func queryInt(query url.Values, key string, def int64) (int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid int", key)
	}
	return v, nil
}
