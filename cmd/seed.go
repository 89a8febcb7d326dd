package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/providers"
	"github.com/monxcode/GeoSense-Udaipur/internal/repositories/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a road dataset and bulk insert it into Postgres",
	Long: `seed resolves the configured dataset source (sample, file, http,
osm or synthetic), replaces the contents of the roads table with it and
exits. Point the simulation at the result with --source postgres.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.PostgresDSN == "" {
			fmt.Fprintln(os.Stderr, "postgres_dsn is required for seeding")
			os.Exit(1)
		}
		if cfg.Source == models.SourcePostgres {
			fmt.Fprintln(os.Stderr, "seed source must not be postgres itself")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := seedDatabase(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func seedDatabase(ctx context.Context, cfg *models.Config) error {
	provider, err := providers.Resolve(cfg)
	if err != nil {
		return err
	}
	roads, err := provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading roads from %s: %w", provider.Name(), err)
	}
	if len(roads) == 0 {
		return fmt.Errorf("source %s produced no roads", provider.Name())
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	repo := postgres.NewRoadRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := repo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := repo.BulkCreate(ctx, roads); err != nil {
		return err
	}

	log.Printf("Seeded %d roads from %s into postgres", len(roads), provider.Name())
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
