package poiparser

import (
	"fmt"
	"math"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"golang.org/x/exp/rand"
)

var generatedCategories = []string{"Parque", "Museu", "Cultura", "Historico", "Mirante", "Mercado"}

// GeneratePoints. n synthetic points of interest uniformly spread over a disc of radiusKm around
// center, ids 1..n in generation order. the same rd state always yields the same dataset.
func GeneratePoints(rd *rand.Rand, n int, center geo.Coordinate, radiusKm float64) []da.Point {
	points := make([]da.Point, 0, n)
	for i := 0; i < n; i++ {
		bearing := rd.Float64() * 360
		dist := radiusKm * math.Sqrt(rd.Float64())
		lat, lon := geo.GetDestinationPoint(center.GetLat(), center.GetLon(), bearing, dist)

		category := generatedCategories[rd.Intn(len(generatedCategories))]
		rating := util.RoundFloat(3.5+rd.Float64()*1.5, 1)
		popularity := float64(10 + rd.Intn(91))
		entryCost := 0.0
		if rd.Float64() < 0.3 {
			entryCost = float64(5 * (1 + rd.Intn(8)))
		}
		visit := float64(15 * (1 + rd.Intn(8)))

		points = append(points, da.NewPoint(int64(i+1), fmt.Sprintf("%s %d", category, i+1),
			util.RoundFloat(lat, 6), util.RoundFloat(lon, 6), category, rating, popularity, entryCost, visit))
	}
	return points
}
