package spatialindex

import (
	"testing"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchWithinRadius(t *testing.T) {
	points := []da.Point{
		da.NewPoint(1, "Jardim Botanico", -25.4431, -49.2390, "Parque", 4.7, 95, 0, 60),
		da.NewPoint(2, "Museu Oscar Niemeyer", -25.4101, -49.2672, "Museu", 4.8, 90, 30, 120),
		da.NewPoint(3, "Largo da Ordem", -25.4275, -49.2713, "Historico", 4.5, 70, 0, 90),
		da.NewPoint(4, "Parque Tangua", -25.3786, -49.2833, "Parque", 4.7, 85, 0, 60),
	}
	rt := NewRtree()
	rt.Build(points, 0.05, zap.NewNop())
	require.Equal(t, 4, rt.Len())

	testCases := []struct {
		name         string
		lat, lon     float64
		radius       float64
		wantFirst    int64
		wantNumFound int
	}{
		{name: "on top of a point", lat: -25.4431, lon: -49.2390, radius: 0.5, wantFirst: 1, wantNumFound: 1},
		{name: "city centre", lat: -25.4284, lon: -49.2733, radius: 2.5, wantFirst: 3, wantNumFound: 2},
		{name: "far away", lat: -23.55, lon: -46.63, radius: 5, wantNumFound: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := rt.SearchWithinRadius(tt.lat, tt.lon, tt.radius)
			require.Len(t, got, tt.wantNumFound)
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
			}

			nearest, ok := rt.Nearest(tt.lat, tt.lon, tt.radius)
			assert.Equal(t, tt.wantNumFound > 0, ok)
			if ok {
				assert.Equal(t, tt.wantFirst, points[nearest.Position].GetID())
			}
		})
	}
}
