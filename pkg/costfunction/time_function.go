package costfunction

import (
	"math"

	"github.com/lintang-b-s/TourPlanner/pkg"
)

type TimeFunction struct {
	speedKmh float64
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{speedKmh: pkg.AVG_SPEED_KMH}
}

func NewTimeCostFunctionWithSpeed(speedKmh float64) *TimeFunction {
	return &TimeFunction{speedKmh: speedKmh}
}

func (tf *TimeFunction) GetTravelMinutes(distKm float64) float64 {
	return TravelTimeMinutes(distKm, tf.speedKmh)
}

func (tf *TimeFunction) GetSpeed() float64 {
	return tf.speedKmh
}

// TravelTimeMinutes. (dist / speed) * 60. a non-positive speed makes every edge unreachable (+Inf).
func TravelTimeMinutes(distKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		return math.Inf(1)
	}
	return (distKm / speedKmh) * 60
}

func IsUnreachable(minutes float64) bool {
	return math.IsInf(minutes, 1) || math.IsNaN(minutes)
}
