package datastructure

import (
	"sort"

	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
)

type CategoryCount struct {
	Category string
	Count    int
}

// DatasetSummary. descriptive statistics of a loaded point set.
type DatasetSummary struct {
	NumPoints        int
	MeanEntryCost    float64
	MeanVisitMinutes float64
	MeanRating       float64
	MeanPopularity   float64
	Categories       []CategoryCount // descending count, ties by name
	MinLat, MinLon   float64
	MaxLat, MaxLon   float64
}

func Summarize(points []Point) DatasetSummary {
	s := DatasetSummary{NumPoints: len(points)}
	if len(points) == 0 {
		return s
	}

	costs := make([]float64, len(points))
	visits := make([]float64, len(points))
	ratings := make([]float64, len(points))
	pops := make([]float64, len(points))
	counts := make(map[string]int)

	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		costs[i] = p.entryCost
		visits[i] = p.visitMinutes
		ratings[i] = p.rating
		pops[i] = p.popularity
		counts[p.category]++
		coords[i] = p.GetCoordinate()
	}

	rect := geo.BoundingRect(coords)
	s.MinLat, s.MinLon = rect.Lo().Lat.Degrees(), rect.Lo().Lng.Degrees()
	s.MaxLat, s.MaxLon = rect.Hi().Lat.Degrees(), rect.Hi().Lng.Degrees()

	s.MeanEntryCost = util.Mean(costs)
	s.MeanVisitMinutes = util.Mean(visits)
	s.MeanRating = util.Mean(ratings)
	s.MeanPopularity = util.Mean(pops)

	s.Categories = make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		s.Categories = append(s.Categories, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Count == s.Categories[j].Count {
			return s.Categories[i].Category < s.Categories[j].Category
		}
		return s.Categories[i].Count > s.Categories[j].Count
	})
	return s
}
