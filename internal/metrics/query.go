package metrics

import (
	"sort"
	"strings"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// FilterByBand returns the records in the given congestion band,
// preserving dataset order. BandAll matches everything.
func FilterByBand(roads []models.RoadRecord, band Band) []models.RoadRecord {
	out := make([]models.RoadRecord, 0, len(roads))
	for _, rec := range roads {
		if band == BandAll || CongestionLevel(rec.CongestionPct) == band {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByName matches road names case insensitively on a substring.
// An empty query matches everything.
func FilterByName(roads []models.RoadRecord, query string) []models.RoadRecord {
	q := strings.ToLower(query)
	out := make([]models.RoadRecord, 0, len(roads))
	for _, rec := range roads {
		if q == "" || strings.Contains(strings.ToLower(rec.Name), q) {
			out = append(out, rec)
		}
	}
	return out
}

// isSafeRoute is the recommendation predicate. It coincides with the
// conditions for grade A.
func isSafeRoute(rec models.RoadRecord) bool {
	return rec.Accidents == 0 && rec.CongestionPct < 50
}

// TopSafeRoutes returns up to limit recommended roads, least congested
// first. Ties keep dataset order. A non positive limit yields an empty
// result rather than "no limit".
func TopSafeRoutes(roads []models.RoadRecord, limit int) []models.RoadRecord {
	safe := make([]models.RoadRecord, 0, len(roads))
	if limit <= 0 {
		return safe
	}
	for _, rec := range roads {
		if isSafeRoute(rec) {
			safe = append(safe, rec)
		}
	}
	sort.SliceStable(safe, func(i, j int) bool {
		return safe[i].CongestionPct < safe[j].CongestionPct
	})
	if limit < len(safe) {
		safe = safe[:limit]
	}
	return safe
}

// AccidentHotspots returns every road with at least one accident, most
// accidents first. Ties keep dataset order.
func AccidentHotspots(roads []models.RoadRecord) []models.RoadRecord {
	out := make([]models.RoadRecord, 0, len(roads))
	for _, rec := range roads {
		if rec.Accidents > 0 {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Accidents > out[j].Accidents
	})
	return out
}
