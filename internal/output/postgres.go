// Package output holds event sinks that need a backing service rather
// than the local filesystem.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// PostgresOutput keeps a queryable history of simulation events, one
// table per topic, so congestion and accidents can be charted over
// time.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

func NewPostgresOutput(ctx context.Context, dsn string) (*PostgresOutput, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres_dsn is not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &PostgresOutput{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Printf("Postgres event sink ready")
	return p, nil
}

func (p *PostgresOutput) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS road_snapshot_events (
            event_id TEXT PRIMARY KEY,
            event_time TIMESTAMPTZ NOT NULL,
            tick BIGINT NOT NULL,
            road TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lng DOUBLE PRECISION NOT NULL,
            congestion_pct INT NOT NULL,
            accidents INT NOT NULL,
            avg_speed_kmh INT NOT NULL,
            band TEXT NOT NULL,
            safety_grade TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS traffic_kpi_events (
            event_id TEXT PRIMARY KEY,
            event_time TIMESTAMPTZ NOT NULL,
            tick BIGINT NOT NULL,
            avg_congestion INT NOT NULL,
            total_accidents INT NOT NULL,
            avg_speed INT NOT NULL,
            safe_route_count INT NOT NULL,
            trend TEXT NOT NULL,
            safety_status TEXT NOT NULL,
            road_count INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS road_accident_events (
            event_id TEXT PRIMARY KEY,
            event_time TIMESTAMPTZ NOT NULL,
            tick BIGINT NOT NULL,
            road TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lng DOUBLE PRECISION NOT NULL,
            accidents INT NOT NULL,
            congestion_pct INT NOT NULL
        )`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create events table: %w", err)
		}
	}
	return nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	ctx := context.Background()

	switch topic {
	case models.TopicRoadSnapshots:
		var event models.RoadSnapshotEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return fmt.Errorf("failed to unmarshal %s event: %w", topic, err)
		}
		return p.insertRoadSnapshot(ctx, event)
	case models.TopicTrafficKPIs:
		var event models.TrafficKPIEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return fmt.Errorf("failed to unmarshal %s event: %w", topic, err)
		}
		return p.insertTrafficKPIs(ctx, event)
	case models.TopicRoadAccidents:
		var event models.RoadAccidentEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return fmt.Errorf("failed to unmarshal %s event: %w", topic, err)
		}
		return p.insertRoadAccident(ctx, event)
	default:
		return fmt.Errorf("unknown topic: %s", topic)
	}
}

func (p *PostgresOutput) insertRoadSnapshot(ctx context.Context, event models.RoadSnapshotEvent) error {
	query := `
        INSERT INTO road_snapshot_events (
            event_id, event_time, tick, road, lat, lng,
            congestion_pct, accidents, avg_speed_kmh, band, safety_grade
        ) VALUES ($1, to_timestamp($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Timestamp,
		event.Tick,
		event.Road,
		event.Lat,
		event.Lng,
		event.CongestionPct,
		event.Accidents,
		event.AvgSpeedKmh,
		event.Band,
		event.SafetyGrade,
	)
	return err
}

func (p *PostgresOutput) insertTrafficKPIs(ctx context.Context, event models.TrafficKPIEvent) error {
	query := `
        INSERT INTO traffic_kpi_events (
            event_id, event_time, tick, avg_congestion, total_accidents,
            avg_speed, safe_route_count, trend, safety_status, road_count
        ) VALUES ($1, to_timestamp($2), $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Timestamp,
		event.Tick,
		event.AvgCongestion,
		event.TotalAccidents,
		event.AvgSpeed,
		event.SafeRouteCount,
		event.Trend,
		event.SafetyStatus,
		event.RoadCount,
	)
	return err
}

func (p *PostgresOutput) insertRoadAccident(ctx context.Context, event models.RoadAccidentEvent) error {
	query := `
        INSERT INTO road_accident_events (
            event_id, event_time, tick, road, lat, lng, accidents, congestion_pct
        ) VALUES ($1, to_timestamp($2), $3, $4, $5, $6, $7, $8)
    `
	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Timestamp,
		event.Tick,
		event.Road,
		event.Lat,
		event.Lng,
		event.Accidents,
		event.CongestionPct,
	)
	return err
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
