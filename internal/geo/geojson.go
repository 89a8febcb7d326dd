// Package geo renders road snapshots as GeoJSON for map frontends.
package geo

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/monxcode/GeoSense-Udaipur/internal/metrics"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// RoadFeatureCollection converts roads into a FeatureCollection of
// point features. Coordinates follow GeoJSON order, longitude first,
// and each feature carries the derived band, colour and grade so the
// frontend can style markers without recomputing anything.
func RoadFeatureCollection(roads []models.RoadRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, road := range roads {
		f := geojson.NewPointFeature([]float64{road.Position.Lng, road.Position.Lat})
		f.SetProperty("road", road.Name)
		f.SetProperty("congestion", road.CongestionPct)
		f.SetProperty("accidents", road.Accidents)
		f.SetProperty("averageSpeed", road.AvgSpeedKmh)
		f.SetProperty("congestionLevel", string(metrics.CongestionLevel(road.CongestionPct)))
		f.SetProperty("color", metrics.CongestionColor(road.CongestionPct))
		f.SetProperty("safetyGrade", string(metrics.SafetyGrade(road)))
		fc.AddFeature(f)
	}
	return fc
}
