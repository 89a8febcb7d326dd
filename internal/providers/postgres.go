package providers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/repositories/postgres"
)

// PostgresProvider loads the dataset from the roads table, usually
// populated beforehand by the seed command.
type PostgresProvider struct {
	DSN string
}

func (p *PostgresProvider) Name() string { return models.SourcePostgres }

func (p *PostgresProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	if p.DSN == "" {
		return nil, fmt.Errorf("postgres_dsn is not set")
	}
	pool, err := pgxpool.New(ctx, p.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	roads, err := postgres.NewRoadRepository(pool).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roads: %w", err)
	}
	return roads, nil
}
