package poiparser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrMissingColumn = errors.New("poiparser: required column missing")
	ErrDuplicateID   = errors.New("poiparser: duplicate point id")
	ErrNoPoints      = errors.New("poiparser: source contains no points")
)

// Source. where the dataset of points of interest comes from. points are returned in source order.
type Source interface {
	Load(ctx context.Context) ([]da.Point, error)
}

// NewSource. postgres:// and postgresql:// uris read from Postgres, *.pbf files are OpenStreetMap
// extracts, anything else is a (optionally bzip2 compressed) CSV file.
func NewSource(ctx context.Context, uri string, log *zap.Logger) (Source, error) {
	switch {
	case strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://"):
		return NewPostgresSource(ctx, uri, log)
	case strings.HasSuffix(uri, ".pbf"):
		return NewOsmPOIParser(uri, log), nil
	default:
		return NewCSVSource(uri, log), nil
	}
}

// rawPoint. a parsed record before defaults are applied; nil means the value was missing.
type rawPoint struct {
	id           int64
	name         string
	lat, lon     float64
	category     string
	rating       float64
	popularity   float64
	entryCost    *float64
	visitMinutes *float64
}

// finalize. missing entry cost becomes 0, missing visit minutes the median of the present ones.
func finalize(raws []rawPoint) ([]da.Point, error) {
	if len(raws) == 0 {
		return nil, ErrNoPoints
	}

	present := make([]float64, 0, len(raws))
	for _, r := range raws {
		if r.visitMinutes != nil {
			present = append(present, *r.visitMinutes)
		}
	}
	medianVisit := 0.0
	if len(present) > 0 {
		medianVisit = util.Median(present)
	}

	seen := make(map[int64]struct{}, len(raws))
	points := make([]da.Point, 0, len(raws))
	for _, r := range raws {
		if _, ok := seen[r.id]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.id)
		}
		seen[r.id] = struct{}{}

		entryCost := 0.0
		if r.entryCost != nil {
			entryCost = *r.entryCost
		}
		visitMinutes := medianVisit
		if r.visitMinutes != nil {
			visitMinutes = *r.visitMinutes
		}
		points = append(points, da.NewPoint(r.id, r.name, r.lat, r.lon, r.category, r.rating, r.popularity,
			entryCost, visitMinutes))
	}
	return points, nil
}
