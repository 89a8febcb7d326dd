// Package metrics derives every dashboard reading from a road
// dataset. All functions are pure: they never mutate their input and
// keep no state, so the caller owns the one live dataset and passes a
// snapshot in on each call.
package metrics

import (
	"fmt"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// Band is the three way congestion classification shown on the map.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"

	// BandAll is a filter wildcard, never produced by CongestionLevel.
	BandAll Band = "all"
)

// Map layer palette, keyed by band.
const (
	ColorLow    = "#2ecc71"
	ColorMedium = "#f39c12"
	ColorHigh   = "#e74c3c"
)

// CongestionLevel buckets a congestion percentage. Both boundaries of
// the medium band are inclusive; values outside 0..100 still land in
// the nearest band.
func CongestionLevel(congestionPct int) Band {
	switch {
	case congestionPct < 40:
		return BandLow
	case congestionPct <= 70:
		return BandMedium
	default:
		return BandHigh
	}
}

// CongestionColor returns the map colour for a congestion percentage.
func CongestionColor(congestionPct int) string {
	switch CongestionLevel(congestionPct) {
	case BandLow:
		return ColorLow
	case BandMedium:
		return ColorMedium
	default:
		return ColorHigh
	}
}

// ParseBand validates a band filter coming off the wire. The empty
// string means no filter.
func ParseBand(s string) (Band, error) {
	switch Band(s) {
	case "":
		return BandAll, nil
	case BandLow, BandMedium, BandHigh, BandAll:
		return Band(s), nil
	default:
		return "", fmt.Errorf("unknown congestion band: %q", s)
	}
}

// Grade is the A to D safety classification of a single road.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// SafetyGrade grades one road. The rules are ordered and the first
// match wins; three or more accidents force D no matter how clear the
// road is.
func SafetyGrade(rec models.RoadRecord) Grade {
	switch {
	case rec.Accidents == 0 && rec.CongestionPct < 50:
		return GradeA
	case rec.Accidents < 2 && rec.CongestionPct < 70:
		return GradeB
	case rec.Accidents < 3:
		return GradeC
	default:
		return GradeD
	}
}
