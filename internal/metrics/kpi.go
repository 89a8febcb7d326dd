package metrics

import (
	"math"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// ComputeKPIs aggregates the headline dashboard numbers in one pass.
// An empty dataset yields the zero value instead of dividing by zero.
func ComputeKPIs(roads []models.RoadRecord) models.TrafficKPIs {
	if len(roads) == 0 {
		return models.TrafficKPIs{}
	}

	var kpis models.TrafficKPIs
	var congestionSum, speedSum int
	for _, rec := range roads {
		congestionSum += rec.CongestionPct
		speedSum += rec.AvgSpeedKmh
		kpis.TotalAccidents += rec.Accidents
		if isSafeRoute(rec) {
			kpis.SafeRouteCount++
		}
	}
	kpis.AvgCongestion = roundMean(congestionSum, len(roads))
	kpis.AvgSpeed = roundMean(speedSum, len(roads))
	return kpis
}

// roundMean rounds half up. Sums here are never negative.
func roundMean(sum, n int) int {
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}

// Trend is the qualitative read of average congestion.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendNormal  Trend = "normal"
)

// TrendLabel maps average congestion to a trend word. Both thresholds
// are exclusive, so 40..60 inclusive reads as normal.
func TrendLabel(avgCongestion int) Trend {
	switch {
	case avgCongestion > 60:
		return TrendRising
	case avgCongestion < 40:
		return TrendFalling
	default:
		return TrendNormal
	}
}

// SafetyStatus is the network wide accident read.
type SafetyStatus string

const (
	SafetyCaution  SafetyStatus = "caution"
	SafetySafe     SafetyStatus = "safe"
	SafetyModerate SafetyStatus = "moderate"
)

// SafetyStatusLabel maps the total accident count to a status word.
func SafetyStatusLabel(totalAccidents int) SafetyStatus {
	switch {
	case totalAccidents > 5:
		return SafetyCaution
	case totalAccidents == 0:
		return SafetySafe
	default:
		return SafetyModerate
	}
}
