package spatialindex

import (
	"math"
	"sort"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr     *rtree.RTreeG[PointEntry]
	points []da.Point
}

// PointEntry. leaf payload: position of the point in the dataset it was built from.
type PointEntry struct {
	position int
}

func (pe PointEntry) GetPosition() int {
	return pe.position
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[PointEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km)
func (rt *Rtree) Build(points []da.Point, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("points", len(points)))
	rt.points = points
	for i, p := range points {
		lowerLat, lowerLon := geo.GetDestinationPoint(p.GetLat(), p.GetLon(), 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(p.GetLat(), p.GetLon(), 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, PointEntry{position: i})
	}
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// Candidate. a point within the search radius and its great-circle distance (km) to the query.
type Candidate struct {
	Position   int
	DistanceKm float64
}

// SearchWithinRadius. all points whose great-circle distance to (qLat, qLon) is at most radius km,
// sorted by distance, ties by dataset position.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []Candidate {
	// corners at radius*sqrt2 so the box encloses the whole circle
	diag := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, diag)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, diag)

	results := make([]Candidate, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data PointEntry) bool {
			p := rt.points[data.position]
			dist := geo.CalculateS2Distance(qLat, qLon, p.GetLat(), p.GetLon())
			if dist <= radius {
				results = append(results, Candidate{Position: data.position, DistanceKm: dist})
			}
			return true
		})

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].Position < results[j].Position
	})
	return results
}

// Nearest. closest point within radius km, false when none.
func (rt *Rtree) Nearest(qLat, qLon, radius float64) (Candidate, bool) {
	cands := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(cands) == 0 {
		return Candidate{}, false
	}
	return cands[0], true
}
