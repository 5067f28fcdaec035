package geo

import (
	"github.com/golang/geo/s2"
)

// CalculateS2Distance. great-circle distance in km computed from the s2 angle between the two points,
// same sphere as CalculateHaversineDistance.
func CalculateS2Distance(latOne, longOne, latTwo, longTwo float64) float64 {
	a := s2.LatLngFromDegrees(latOne, longOne)
	b := s2.LatLngFromDegrees(latTwo, longTwo)
	return a.Distance(b).Radians() * earthRadiusKM
}

// BoundingRect. smallest lat/lng rectangle containing every coordinate.
func BoundingRect(coords []Coordinate) s2.Rect {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	return rect
}
