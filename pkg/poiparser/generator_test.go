package poiparser

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGeneratePoints(t *testing.T) {
	center := geo.NewCoordinate(-25.4284, -49.2733)

	points := GeneratePoints(rand.New(rand.NewSource(3)), 50, center, 5)
	require.Len(t, points, 50)

	for i, p := range points {
		assert.Equal(t, int64(i+1), p.GetID())
		d := geo.CalculateHaversineDistance(center.GetLat(), center.GetLon(), p.GetLat(), p.GetLon())
		assert.LessOrEqual(t, d, 5.001)
		assert.GreaterOrEqual(t, p.GetPopularity(), 10.0)
		assert.LessOrEqual(t, p.GetPopularity(), 100.0)
		assert.Greater(t, p.GetVisitMinutes(), 0.0)
		assert.GreaterOrEqual(t, p.GetEntryCost(), 0.0)
	}

	again := GeneratePoints(rand.New(rand.NewSource(3)), 50, center, 5)
	assert.Equal(t, points, again)
}

func TestGeneratedPointsRoundTripThroughCSV(t *testing.T) {
	points := GeneratePoints(rand.New(rand.NewSource(11)), 12, geo.NewCoordinate(-25.43, -49.27), 3)

	path := filepath.Join(t.TempDir(), "generated.csv.bz2")
	require.NoError(t, WriteCSV(path, points))

	loaded, err := ParseCSV(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(points))
	for i := range points {
		assert.Equal(t, points[i].GetID(), loaded[i].GetID())
		assert.Equal(t, points[i].GetName(), loaded[i].GetName())
		assert.InDelta(t, points[i].GetLat(), loaded[i].GetLat(), 1e-9)
		assert.InDelta(t, points[i].GetVisitMinutes(), loaded[i].GetVisitMinutes(), 1e-9)
	}
}
