package costfunction

// CostFunction. converts a travel distance between two points into elapsed minutes.
type CostFunction interface {
	GetTravelMinutes(distKm float64) float64
	GetSpeed() float64
}
