// Package providers loads the initial road dataset from one of the
// configured sources. Every provider returns plain records; range
// checks are deliberately absent because values are only clamped at
// mutation time.
package providers

import (
	"context"
	"fmt"
	"log"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// RoadProvider is one way of obtaining the initial dataset.
type RoadProvider interface {
	Name() string
	Load(ctx context.Context) ([]models.RoadRecord, error)
}

// Resolve picks the provider configured under "source".
func Resolve(cfg *models.Config) (RoadProvider, error) {
	switch cfg.Source {
	case models.SourceSample, "":
		return &SampleProvider{}, nil
	case models.SourceFile:
		return &FileProvider{Path: cfg.SourceFile}, nil
	case models.SourceHTTP:
		return &HTTPProvider{URL: cfg.SourceURL}, nil
	case models.SourcePostgres:
		return &PostgresProvider{DSN: cfg.PostgresDSN}, nil
	case models.SourceOSM:
		return &OSMProvider{
			Path:     cfg.OSMFile,
			MaxRoads: cfg.OSMMaxRoads,
			Seed:     cfg.Seed,
			Center:   models.Location{Lat: cfg.CityLat, Lng: cfg.CityLng},
			RadiusKm: cfg.CityRadiusKm,
		}, nil
	case models.SourceSynthetic:
		return &SyntheticProvider{
			Count:    cfg.SyntheticRoads,
			Seed:     cfg.Seed,
			Center:   models.Location{Lat: cfg.CityLat, Lng: cfg.CityLng},
			RadiusKm: cfg.CityRadiusKm,
		}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source: %q", cfg.Source)
	}
}

// LoadOrFallback never leaves the simulation without data: when the
// source fails or comes back empty, the built-in sample set takes its
// place.
func LoadOrFallback(ctx context.Context, provider RoadProvider) []models.RoadRecord {
	roads, err := provider.Load(ctx)
	if err != nil {
		log.Printf("dataset source %s unavailable, falling back to sample data: %v", provider.Name(), err)
		return SampleRoads()
	}
	if len(roads) == 0 {
		log.Printf("dataset source %s returned no roads, falling back to sample data", provider.Name())
		return SampleRoads()
	}
	log.Printf("loaded %d roads from %s", len(roads), provider.Name())
	return roads
}
