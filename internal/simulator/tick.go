package simulator

import (
	"math/rand"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// TickProbabilities are the per-road chances of each adjustment
// during one simulated time-step.
type TickProbabilities struct {
	CongestionShift float64
	SpeedShift      float64
	Accident        float64
}

// DefaultTickProbabilities returns the standard simulation behaviour:
// congestion moves often, speed occasionally, accidents rarely.
func DefaultTickProbabilities() TickProbabilities {
	return TickProbabilities{
		CongestionShift: 0.30,
		SpeedShift:      0.10,
		Accident:        0.05,
	}
}

// TickReport summarises what one tick changed. The runner uses it for
// accident events and progress logging.
type TickReport struct {
	CongestionShifts int
	SpeedShifts      int
	Accidents        []string
}

// ApplyTick advances every road by one simulated time-step, in place.
// The three adjustments are drawn independently per road, always in
// the same order, so one rng seed reproduces one trajectory exactly.
// Values are clamped back into range after each adjustment; accident
// counts only grow and stop at models.MaxAccidents. Names, positions
// and dataset order are never touched.
func ApplyTick(rng *rand.Rand, roads []models.RoadRecord, probs TickProbabilities) TickReport {
	var report TickReport
	for i := range roads {
		road := &roads[i]

		if rng.Float64() < probs.CongestionShift {
			delta := rng.Intn(11) - 5
			road.CongestionPct = clamp(road.CongestionPct+delta, models.CongestionMin, models.CongestionMax)
			report.CongestionShifts++
		}

		if rng.Float64() < probs.SpeedShift {
			delta := rng.Intn(9) - 4
			road.AvgSpeedKmh = clamp(road.AvgSpeedKmh+delta, models.SpeedMinKmh, models.SpeedMaxKmh)
			report.SpeedShifts++
		}

		if rng.Float64() < probs.Accident && road.Accidents < models.MaxAccidents {
			road.Accidents++
			report.Accidents = append(report.Accidents, road.Name)
		}
	}
	return report
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
