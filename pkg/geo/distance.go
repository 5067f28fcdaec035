package geo

import (
	"math"

	"github.com/lintang-b-s/TourPlanner/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// mean earth radius in km (IUGG), the value used for every distance in the planner
const earthRadiusKM = 6371.0088

// sinHalfSquared. sin²(x/2), stays accurate for points centimetres apart
func sinHalfSquared(angleRad float64) float64 {
	s := math.Sin(angleRad / 2)
	return s * s
}

// CalculateHaversineDistance. great-circle distance in km between two points given in degrees
func CalculateHaversineDistance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	phiOne := util.DegreeToRadians(latOne)
	phiTwo := util.DegreeToRadians(latTwo)
	dPhi := util.DegreeToRadians(latTwo - latOne)
	dLambda := util.DegreeToRadians(lonTwo - lonOne)

	h := sinHalfSquared(dPhi) + math.Cos(phiOne)*math.Cos(phiTwo)*sinHalfSquared(dLambda)
	if h > 1 {
		h = 1
	}
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
