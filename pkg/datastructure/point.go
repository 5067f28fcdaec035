package datastructure

import "github.com/lintang-b-s/TourPlanner/pkg/geo"

// Point. a geolocated point of interest. immutable after load.
type Point struct {
	id           int64
	name         string
	lat          float64
	lon          float64
	category     string
	rating       float64
	popularity   float64
	entryCost    float64 // currency
	visitMinutes float64
}

func NewPoint(id int64, name string, lat, lon float64, category string, rating, popularity, entryCost,
	visitMinutes float64) Point {
	return Point{
		id:           id,
		name:         name,
		lat:          lat,
		lon:          lon,
		category:     category,
		rating:       rating,
		popularity:   popularity,
		entryCost:    entryCost,
		visitMinutes: visitMinutes,
	}
}

func (p Point) GetID() int64 {
	return p.id
}

func (p Point) GetName() string {
	return p.name
}

func (p Point) GetLat() float64 {
	return p.lat
}

func (p Point) GetLon() float64 {
	return p.lon
}

func (p Point) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(p.lat, p.lon)
}

func (p Point) GetCategory() string {
	return p.category
}

func (p Point) GetRating() float64 {
	return p.rating
}

func (p Point) GetPopularity() float64 {
	return p.popularity
}

func (p Point) GetEntryCost() float64 {
	return p.entryCost
}

func (p Point) GetVisitMinutes() float64 {
	return p.visitMinutes
}

func PointNames(points []Point, path []int) []string {
	names := make([]string, len(path))
	for i, idx := range path {
		names[i] = points[idx].name
	}
	return names
}

func PointCoordinates(points []Point, path []int) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(path))
	for i, idx := range path {
		coords[i] = points[idx].GetCoordinate()
	}
	return coords
}

// IndexByID. position of every point in the slice, keyed by point id.
func IndexByID(points []Point) map[int64]int {
	idx := make(map[int64]int, len(points))
	for i, p := range points {
		idx[p.id] = i
	}
	return idx
}
