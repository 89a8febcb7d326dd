package providers

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// SyntheticProvider fabricates a dataset around the configured city
// centre. The same seed always produces the same roads.
type SyntheticProvider struct {
	Count    int
	Seed     int64
	Center   models.Location
	RadiusKm float64
}

func (p *SyntheticProvider) Name() string { return models.SourceSynthetic }

func (p *SyntheticProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	count := p.Count
	if count <= 0 {
		count = 12
	}
	radius := p.RadiusKm
	if radius <= 0 {
		radius = 5.0
	}

	rng := rand.New(rand.NewSource(p.Seed))
	fake := faker.NewWithSeed(rand.NewSource(p.Seed))

	latRange := radius / 111.0
	lngRange := latRange / math.Cos(p.Center.Lat*math.Pi/180.0)

	seen := make(map[string]bool, count)
	roads := make([]models.RoadRecord, 0, count)
	for len(roads) < count {
		name := fake.Address().StreetName()
		if seen[name] {
			name = fmt.Sprintf("%s %d", name, len(roads)+1)
		}
		seen[name] = true

		congestion := fake.IntBetween(10, 90)
		speed := 60 - congestion/2 + fake.IntBetween(-5, 5)

		accidents := 0
		switch roll := fake.IntBetween(1, 100); {
		case roll <= 5:
			accidents = 2
		case roll <= 20:
			accidents = 1
		}

		roads = append(roads, models.RoadRecord{
			Name: name,
			Position: models.Location{
				Lat: p.Center.Lat + (rng.Float64()*2-1)*latRange,
				Lng: p.Center.Lng + (rng.Float64()*2-1)*lngRange,
			},
			CongestionPct: congestion,
			Accidents:     accidents,
			AvgSpeedKmh:   speed,
		})
	}
	return roads, nil
}
