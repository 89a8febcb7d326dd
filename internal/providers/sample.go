package providers

import (
	"context"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// sampleRoads is the built-in Udaipur dataset used when no external
// source is configured or the configured one is unavailable.
var sampleRoads = []models.RoadRecord{
	{Name: "MG Road", Position: models.Location{Lat: 24.5791, Lng: 73.6919}, CongestionPct: 45, Accidents: 0, AvgSpeedKmh: 32},
	{Name: "Fatehpura Circle", Position: models.Location{Lat: 24.6095, Lng: 73.6802}, CongestionPct: 68, Accidents: 1, AvgSpeedKmh: 18},
	{Name: "Chetak Circle", Position: models.Location{Lat: 24.5937, Lng: 73.6882}, CongestionPct: 72, Accidents: 1, AvgSpeedKmh: 15},
	{Name: "Delhi Gate", Position: models.Location{Lat: 24.5886, Lng: 73.6926}, CongestionPct: 80, Accidents: 2, AvgSpeedKmh: 12},
	{Name: "Hathipole", Position: models.Location{Lat: 24.5829, Lng: 73.6840}, CongestionPct: 65, Accidents: 0, AvgSpeedKmh: 20},
	{Name: "Surajpole", Position: models.Location{Lat: 24.5799, Lng: 73.6997}, CongestionPct: 58, Accidents: 1, AvgSpeedKmh: 22},
	{Name: "Udiapole", Position: models.Location{Lat: 24.5746, Lng: 73.6983}, CongestionPct: 62, Accidents: 0, AvgSpeedKmh: 24},
	{Name: "Shastri Circle", Position: models.Location{Lat: 24.6026, Lng: 73.6947}, CongestionPct: 38, Accidents: 0, AvgSpeedKmh: 35},
	{Name: "Ayad Bridge", Position: models.Location{Lat: 24.5880, Lng: 73.7104}, CongestionPct: 51, Accidents: 0, AvgSpeedKmh: 28},
	{Name: "Sevashram Chouraha", Position: models.Location{Lat: 24.5898, Lng: 73.7045}, CongestionPct: 55, Accidents: 1, AvgSpeedKmh: 23},
	{Name: "Lake Palace Road", Position: models.Location{Lat: 24.5760, Lng: 73.6810}, CongestionPct: 30, Accidents: 0, AvgSpeedKmh: 38},
	{Name: "Saheli Marg", Position: models.Location{Lat: 24.6000, Lng: 73.6770}, CongestionPct: 42, Accidents: 0, AvgSpeedKmh: 30},
}

// SampleRoads returns a fresh copy of the built-in dataset so callers
// can mutate it freely.
func SampleRoads() []models.RoadRecord {
	return models.CloneRoads(sampleRoads)
}

type SampleProvider struct{}

func (p *SampleProvider) Name() string { return models.SourceSample }

func (p *SampleProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	return SampleRoads(), nil
}
