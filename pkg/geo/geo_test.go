package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// reference values: sin² haversine on a 6371.0088 km sphere, evaluated independently
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		epsilon                float64 // relative
	}{
		{"one degree of longitude on the equator", 0, 0, 0, 1, 111.1950802335329, 1e-10},
		{"one degree of latitude", 10, 20, 11, 20, 111.19508023353288, 1e-10},
		{"antipodal", 0, 0, 0, 180, 20015.114442035923, 1e-10},
		{"curitiba to sao paulo", -25.4284, -49.2733, -23.5505, -46.6333, 339.05379134959173, 1e-10},
		{"two curitiba landmarks", -25.4431, -49.2390, -25.4101, -49.2672, 4.635169612348485, 1e-10},
		{"centimetres apart", -25.4284, -49.2733, -25.4284001, -49.2733, 1.1119508138052268e-05, 1e-6},
		{"1e-7 degrees of longitude", 0, 0, 0, 1e-7, 1.111950802335329e-05, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InEpsilon(t, tt.want, got, tt.epsilon)

			back := CalculateHaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			assert.InEpsilon(t, got, back, tt.epsilon)
		})
	}

	assert.Equal(t, 0.0, CalculateHaversineDistance(-25.4284, -49.2733, -25.4284, -49.2733))
}

func TestS2DistanceAgreesWithHaversine(t *testing.T) {
	pairs := [][4]float64{
		{-25.4431, -49.2390, -25.4101, -49.2672},
		{-25.3847, -49.2762, -25.4268, -49.3045},
		{51.5, -0.12, 48.85, 2.35},
	}
	for _, p := range pairs {
		h := CalculateHaversineDistance(p[0], p[1], p[2], p[3])
		s := CalculateS2Distance(p[0], p[1], p[2], p[3])
		assert.InDelta(t, h, s, 1e-6)
	}
}

func TestGetDestinationPoint(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 180, 270, 315} {
		lat, lon := GetDestinationPoint(-25.4284, -49.2733, bearing, 3)
		d := CalculateHaversineDistance(-25.4284, -49.2733, lat, lon)
		assert.InDelta(t, 3.0, d, 1e-6, "bearing %v", bearing)
	}

	lat, lon := GetDestinationPoint(0, 179.99, 90, 10)
	assert.InDelta(t, 0, lat, 1e-9)
	assert.Less(t, lon, 0.0)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-25.4431, -49.2390),
		NewCoordinate(-25.4101, -49.2672),
		NewCoordinate(-25.3847, -49.2762),
		NewCoordinate(-25.4431, -49.2390),
	}

	encoded := PolylineFromCoords(coords)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].GetLat(), decoded[i].GetLat(), 1e-5)
		assert.InDelta(t, coords[i].GetLon(), decoded[i].GetLon(), 1e-5)
	}

	assert.Equal(t, "", PolylineFromCoords(nil))
}

func TestBoundingRect(t *testing.T) {
	rect := BoundingRect([]Coordinate{
		NewCoordinate(-25.44, -49.30),
		NewCoordinate(-25.38, -49.24),
		NewCoordinate(-25.41, -49.27),
	})
	assert.InDelta(t, -25.44, rect.Lo().Lat.Degrees(), 1e-9)
	assert.InDelta(t, -49.30, rect.Lo().Lng.Degrees(), 1e-9)
	assert.InDelta(t, -25.38, rect.Hi().Lat.Degrees(), 1e-9)
	assert.InDelta(t, -49.24, rect.Hi().Lng.Degrees(), 1e-9)
}
