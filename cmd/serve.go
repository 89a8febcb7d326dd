package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/server"
	"github.com/monxcode/GeoSense-Udaipur/internal/simulator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API while ticking in the background",
	Long: `serve runs the simulation behind an HTTP API for dashboard
frontends. Roads, KPIs, safe routes, hotspots and a GeoJSON layer are
exposed under /api, the background ticker keeps advancing the dataset,
and POST /api/tick advances it on demand.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sim := simulator.New(cfg)
		if err := sim.Load(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading road dataset: %v\n", err)
			os.Exit(1)
		}

		output, err := simulator.NewOutputDestination(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up output destination: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := output.Close(); err != nil {
				log.Printf("Error closing output: %v", err)
			}
		}()

		srv := server.New(cfg, sim, output)
		if err := srv.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("http-addr", ":8080", "Listen address for the dashboard API")
	cobra.CheckErr(viper.BindPFlag("http_addr", serveCmd.Flags().Lookup("http-addr")))

	rootCmd.AddCommand(serveCmd)
}
