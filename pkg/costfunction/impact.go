package costfunction

import (
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"github.com/shopspring/decimal"
)

// ScenarioCost. operating cost of driving a closed tour of DistanceKm.
type ScenarioCost struct {
	DistanceKm   float64
	Hours        float64
	DistanceCost decimal.Decimal // DistanceKm * costPerKm
	LabourCost   decimal.Decimal // Hours * costPerHour
	Total        decimal.Decimal
}

// Impact. heuristic (nearest neighbour) tour versus the optimal tour.
type Impact struct {
	Heuristic      ScenarioCost
	Optimized      ScenarioCost
	DistanceDelta  float64 // optimized - heuristic, km
	HoursDelta     float64
	Savings        decimal.Decimal
	SavingsPercent float64
}

func scenario(distKm, costPerKm, costPerHour, speedKmh float64) ScenarioCost {
	hours := 0.0
	if speedKmh > 0 {
		hours = distKm / speedKmh
	}
	distCost := distKm * costPerKm
	labourCost := hours * costPerHour
	return ScenarioCost{
		DistanceKm:   distKm,
		Hours:        hours,
		DistanceCost: decimal.NewFromFloat(distCost).Round(2),
		LabourCost:   decimal.NewFromFloat(labourCost).Round(2),
		Total:        decimal.NewFromFloat(distCost + labourCost).Round(2),
	}
}

// ImpactAnalysis. cost of the heuristic tour against the optimal one, savings percent is 0 when the
// heuristic total is not positive.
func ImpactAnalysis(heuristicKm, optimalKm, costPerKm, costPerHour, speedKmh float64) Impact {
	h := scenario(heuristicKm, costPerKm, costPerHour, speedKmh)
	o := scenario(optimalKm, costPerKm, costPerHour, speedKmh)

	hTotal := heuristicKm*costPerKm + h.Hours*costPerHour
	oTotal := optimalKm*costPerKm + o.Hours*costPerHour
	savings := hTotal - oTotal

	percent := 0.0
	if hTotal > 0 {
		percent = util.RoundFloat(savings/hTotal*100, 4)
	}
	return Impact{
		Heuristic:      h,
		Optimized:      o,
		DistanceDelta:  optimalKm - heuristicKm,
		HoursDelta:     o.Hours - h.Hours,
		Savings:        decimal.NewFromFloat(savings).Round(2),
		SavingsPercent: percent,
	}
}

type SensitivityPoint struct {
	CostPerKm float64
	TotalCost float64
}

// CostPerKmSensitivity. total tour cost while costPerKm sweeps [fromCost, toCost]; the labour
// component stays fixed.
func CostPerKmSensitivity(optimalKm, speedKmh, costPerHour, fromCost, toCost float64,
	samples int) []SensitivityPoint {
	timeCost := 0.0
	if speedKmh > 0 {
		timeCost = (optimalKm / speedKmh) * costPerHour
	}

	sweep := util.Linspace(fromCost, toCost, samples)
	out := make([]SensitivityPoint, len(sweep))
	for i, c := range sweep {
		out[i] = SensitivityPoint{
			CostPerKm: c,
			TotalCost: optimalKm*c + timeCost,
		}
	}
	return out
}
