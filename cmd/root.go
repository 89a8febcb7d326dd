package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "geosense",
	Short: "Simulates live road traffic metrics for a city road network",
	Long: `geosense generates a stream of road traffic readings (congestion,
average speed, accidents) for a city road network, Udaipur by default.
Each tick perturbs the dataset and publishes snapshot, KPI and accident
events to the configured sink: console, JSON, CSV, Parquet (local or
S3), Postgres or Kafka.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sim := simulator.New(cfg)
		if err := sim.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")
	flags.Int64("seed", 42, "Random seed driving the simulation")
	flags.String("source", models.SourceSample, "Road dataset source (sample, file, http, postgres, osm, synthetic)")
	flags.String("source-file", "", "Roads JSON file for the file source")
	flags.String("source-url", "", "URL returning roads JSON for the http source")
	flags.String("postgres-dsn", "", "Postgres connection string")
	flags.String("osm-file", "", "OpenStreetMap .osm.pbf extract for the osm source")
	flags.Duration("tick-interval", 3*time.Second, "Wall clock time between ticks")
	flags.Bool("kafka-enabled", false, "Publish events to Kafka instead of a file sink")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	flags.String("output-format", models.OutputConsole, "Event sink (console, json, csv, parquet, postgres)")
	flags.String("output-path", "", "Base directory for file sinks")
	flags.String("output-destination", models.DestinationLocal, "Where file sinks land (local, s3)")

	rootCmd.Flags().Int("ticks", 0, "Generate exactly this many ticks then exit (0 runs until interrupted)")

	persistentBindings := map[string]string{
		"seed":               "seed",
		"source":             "source",
		"source_file":        "source-file",
		"source_url":         "source-url",
		"postgres_dsn":       "postgres-dsn",
		"osm_file":           "osm-file",
		"tick_interval":      "tick-interval",
		"kafka_enabled":      "kafka-enabled",
		"kafka_broker_list":  "kafka-broker-list",
		"output_format":      "output-format",
		"output_path":        "output-path",
		"output_destination": "output-destination",
	}
	for key, flag := range persistentBindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
	cobra.CheckErr(viper.BindPFlag("ticks", rootCmd.Flags().Lookup("ticks")))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
