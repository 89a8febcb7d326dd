package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

type RoadRepository struct {
	pool *pgxpool.Pool
}

func NewRoadRepository(pool *pgxpool.Pool) *RoadRepository {
	return &RoadRepository{pool: pool}
}

// EnsureSchema creates the roads table when it does not exist yet.
// The id column carries the load order the simulation relies on.
func (r *RoadRepository) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS roads (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            location GEOGRAPHY(POINT, 4326) NOT NULL,
            congestion_pct INT NOT NULL,
            accidents INT NOT NULL,
            avg_speed_kmh INT NOT NULL
        )
    `
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *RoadRepository) BulkCreate(ctx context.Context, roads []models.RoadRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, road := range roads {
		query := `
            INSERT INTO roads (
                name, location, congestion_pct, accidents, avg_speed_kmh
            ) VALUES (
                $1,
                ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
                $4, $5, $6
            )
        `

		_, err = tx.Exec(ctx, query,
			road.Name,
			road.Position.Lng,
			road.Position.Lat,
			road.CongestionPct,
			road.Accidents,
			road.AvgSpeedKmh,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *RoadRepository) Create(ctx context.Context, road models.RoadRecord) error {
	query := `
        INSERT INTO roads (
            name, location, congestion_pct, accidents, avg_speed_kmh
        ) VALUES (
            $1,
            ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
            $4, $5, $6
        )
    `

	_, err := r.pool.Exec(ctx, query,
		road.Name,
		road.Position.Lng,
		road.Position.Lat,
		road.CongestionPct,
		road.Accidents,
		road.AvgSpeedKmh,
	)
	return err
}

// GetAll returns roads in load order.
func (r *RoadRepository) GetAll(ctx context.Context) ([]models.RoadRecord, error) {
	query := `
        SELECT
            name,
            ST_Y(location::geometry) as latitude,
            ST_X(location::geometry) as longitude,
            congestion_pct, accidents, avg_speed_kmh
        FROM roads
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roads []models.RoadRecord
	for rows.Next() {
		var lat, lng float64
		var road models.RoadRecord
		err := rows.Scan(
			&road.Name,
			&lat,
			&lng,
			&road.CongestionPct,
			&road.Accidents,
			&road.AvgSpeedKmh,
		)
		if err != nil {
			return nil, err
		}
		road.Position = models.Location{Lat: lat, Lng: lng}
		roads = append(roads, road)
	}
	return roads, rows.Err()
}

func (r *RoadRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM roads").Scan(&count)
	return count, err
}

func (r *RoadRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE roads")
	return err
}
