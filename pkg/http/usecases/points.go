package usecases

import (
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"go.uber.org/zap"
)

type PointService struct {
	log          *zap.Logger
	engine       PointEngine
	searchRadius float64
}

func NewPointService(log *zap.Logger, engine PointEngine, searchRadius float64) *PointService {
	return &PointService{
		log:          log,
		engine:       engine,
		searchRadius: searchRadius,
	}
}

func (ps *PointService) Points() []da.Point {
	return ps.engine.GetPoints()
}

func (ps *PointService) Summary() da.DatasetSummary {
	return ps.engine.Summary()
}

// NearestPoint. radiusKm <= 0 falls back to the configured search radius.
func (ps *PointService) NearestPoint(lat, lon, radiusKm float64) (da.Point, float64, error) {
	if radiusKm <= 0 {
		radiusKm = ps.searchRadius
	}
	p, dist, err := ps.engine.NearestPoint(lat, lon, radiusKm)
	if err != nil {
		return da.Point{}, 0, util.WrapErrorf(err, util.ErrNotFound, "no point of interest within %.2f km of %f,%f",
			radiusKm, lat, lon)
	}
	return p, dist, nil
}
