package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Location is a geographic coordinate pair. The dashboard and every
// dataset source exchange it as a two element [lat, lng] array, so it
// marshals that way instead of as an object.
type Location struct {
	Lat float64
	Lng float64
}

func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{l.Lat, l.Lng})
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("location must be a [lat, lng] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("location must have exactly 2 elements, got %d", len(pair))
	}
	l.Lat, l.Lng = pair[0], pair[1]
	return nil
}

// DistanceKm returns the haversine distance between two locations.
func (l Location) DistanceKm(other Location) float64 {
	const earthRadiusKm = 6371.0

	lat1 := toRadians(l.Lat)
	lon1 := toRadians(l.Lng)
	lat2 := toRadians(other.Lat)
	lon2 := toRadians(other.Lng)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
