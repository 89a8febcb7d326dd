package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/monxcode/GeoSense-Udaipur/internal/metrics"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/providers"
	"github.com/schollz/progressbar/v3"
)

// Simulator owns the live road dataset and the random source driving
// it. It is not safe for concurrent use; callers running ticks and
// reads from different goroutines serialize access themselves.
type Simulator struct {
	Config      *models.Config
	Roads       []models.RoadRecord
	CurrentTime time.Time
	TickCount   int64
	Rng         *rand.Rand
}

func New(config *models.Config) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		Config:      config,
		CurrentTime: time.Now().UTC(),
		Rng:         rand.New(rand.NewSource(seed)),
	}
}

// Load populates the dataset from the configured source, falling back
// to the built-in sample set when the source is unavailable.
func (s *Simulator) Load(ctx context.Context) error {
	provider, err := providers.Resolve(s.Config)
	if err != nil {
		return err
	}
	s.Roads = providers.LoadOrFallback(ctx, provider)
	return nil
}

// Snapshot returns an independent copy of the live dataset.
func (s *Simulator) Snapshot() []models.RoadRecord {
	return models.CloneRoads(s.Roads)
}

// KPIs aggregates the live dataset.
func (s *Simulator) KPIs() models.TrafficKPIs {
	return metrics.ComputeKPIs(s.Roads)
}

func (s *Simulator) probabilities() TickProbabilities {
	probs := TickProbabilities{
		CongestionShift: s.Config.CongestionShiftProbability,
		SpeedShift:      s.Config.SpeedShiftProbability,
		Accident:        s.Config.AccidentProbability,
	}
	if probs == (TickProbabilities{}) {
		return DefaultTickProbabilities()
	}
	return probs
}

// Tick advances the dataset by one time-step and emits the snapshot,
// KPI and accident events for it.
func (s *Simulator) Tick(output OutputDestination) error {
	report := ApplyTick(s.Rng, s.Roads, s.probabilities())
	s.TickCount++
	s.CurrentTime = time.Now().UTC()
	return s.emitTick(output, report)
}

// EmitSnapshot publishes the current dataset without advancing it.
func (s *Simulator) EmitSnapshot(output OutputDestination) error {
	return s.emitTick(output, TickReport{})
}

// Run drives the simulation until the context is cancelled, or for
// exactly config.Ticks steps when a finite run was requested.
func (s *Simulator) Run(ctx context.Context) error {
	output, err := NewOutputDestination(ctx, s.Config)
	if err != nil {
		return fmt.Errorf("failed to set up output destination: %w", err)
	}
	defer func() {
		if err := output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	if err := s.Load(ctx); err != nil {
		return err
	}

	// tick 0 publishes the freshly loaded dataset
	if err := s.EmitSnapshot(output); err != nil {
		log.Printf("Failed to write initial snapshot: %v", err)
	}

	if s.Config.Ticks > 0 {
		return s.runBatch(ctx, output)
	}
	return s.runLive(ctx, output)
}

func (s *Simulator) runBatch(ctx context.Context, output OutputDestination) error {
	log.Printf("Generating %d ticks for %d roads", s.Config.Ticks, len(s.Roads))
	bar := progressbar.Default(int64(s.Config.Ticks))

	for i := 0; i < s.Config.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Tick(output); err != nil {
			log.Printf("Tick %d: %v", s.TickCount, err)
		}
		_ = bar.Add(1)
	}

	log.Printf("Simulation completed at %s", time.Now().UTC().Format(time.RFC3339))
	return nil
}

func (s *Simulator) runLive(ctx context.Context, output OutputDestination) error {
	interval := s.Config.TickInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	log.Printf("Simulation started: %d roads in %s, tick every %s", len(s.Roads), s.Config.CityName, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Simulation stopped after %d ticks", s.TickCount)
			return nil
		case <-ticker.C:
			if err := s.Tick(output); err != nil {
				log.Printf("Tick %d: %v", s.TickCount, err)
			}
			s.showProgress()
		}
	}
}

func (s *Simulator) showProgress() {
	if s.TickCount%100 == 0 {
		kpis := metrics.ComputeKPIs(s.Roads)
		log.Printf("Tick %d: avg congestion %d%%, %d accidents network wide",
			s.TickCount, kpis.AvgCongestion, kpis.TotalAccidents)
	}
}

func (s *Simulator) emitTick(output OutputDestination, report TickReport) error {
	var firstErr error
	emit := func(topic string, event interface{}) {
		data, err := json.Marshal(event)
		if err == nil {
			err = output.WriteMessage(topic, data)
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("writing %s: %w", topic, err)
		}
	}

	for _, road := range s.Roads {
		emit(models.TopicRoadSnapshots, s.roadSnapshotEvent(road))
	}
	emit(models.TopicTrafficKPIs, s.trafficKPIEvent())
	for _, name := range report.Accidents {
		if road, ok := s.roadByName(name); ok {
			emit(models.TopicRoadAccidents, s.roadAccidentEvent(road))
		}
	}
	return firstErr
}

func (s *Simulator) roadByName(name string) (models.RoadRecord, bool) {
	for _, road := range s.Roads {
		if road.Name == name {
			return road, true
		}
	}
	return models.RoadRecord{}, false
}

func (s *Simulator) roadSnapshotEvent(road models.RoadRecord) models.RoadSnapshotEvent {
	return models.RoadSnapshotEvent{
		EventID:       models.NewEventID(),
		Timestamp:     s.CurrentTime.Unix(),
		EventType:     models.EventRoadSnapshot,
		Tick:          s.TickCount,
		Road:          road.Name,
		Lat:           road.Position.Lat,
		Lng:           road.Position.Lng,
		CongestionPct: int32(road.CongestionPct),
		Accidents:     int32(road.Accidents),
		AvgSpeedKmh:   int32(road.AvgSpeedKmh),
		Band:          string(metrics.CongestionLevel(road.CongestionPct)),
		Color:         metrics.CongestionColor(road.CongestionPct),
		SafetyGrade:   string(metrics.SafetyGrade(road)),
	}
}

func (s *Simulator) trafficKPIEvent() models.TrafficKPIEvent {
	kpis := metrics.ComputeKPIs(s.Roads)
	return models.TrafficKPIEvent{
		EventID:        models.NewEventID(),
		Timestamp:      s.CurrentTime.Unix(),
		EventType:      models.EventTrafficKPIs,
		Tick:           s.TickCount,
		AvgCongestion:  int32(kpis.AvgCongestion),
		TotalAccidents: int32(kpis.TotalAccidents),
		AvgSpeed:       int32(kpis.AvgSpeed),
		SafeRouteCount: int32(kpis.SafeRouteCount),
		Trend:          string(metrics.TrendLabel(kpis.AvgCongestion)),
		SafetyStatus:   string(metrics.SafetyStatusLabel(kpis.TotalAccidents)),
		RoadCount:      int32(len(s.Roads)),
	}
}

func (s *Simulator) roadAccidentEvent(road models.RoadRecord) models.RoadAccidentEvent {
	return models.RoadAccidentEvent{
		EventID:       models.NewEventID(),
		Timestamp:     s.CurrentTime.Unix(),
		EventType:     models.EventRoadAccident,
		Tick:          s.TickCount,
		Road:          road.Name,
		Lat:           road.Position.Lat,
		Lng:           road.Position.Lng,
		Accidents:     int32(road.Accidents),
		CongestionPct: int32(road.CongestionPct),
	}
}
