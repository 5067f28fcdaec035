package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. encoded polyline (precision 5) of the coordinate sequence.
func PolylineFromCoords(coords []Coordinate) string {
	pc := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pc = append(pc, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pc))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	pc, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(pc))
	for _, c := range pc {
		coords = append(coords, NewCoordinate(c[0], c[1]))
	}
	return coords, nil
}
