package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	Seed int64 `mapstructure:"seed"`

	CityName     string  `mapstructure:"city_name"`
	CityLat      float64 `mapstructure:"city_latitude"`
	CityLng      float64 `mapstructure:"city_longitude"`
	CityRadiusKm float64 `mapstructure:"city_radius_km"`

	TickInterval time.Duration `mapstructure:"tick_interval"`
	Ticks        int           `mapstructure:"ticks"`

	CongestionShiftProbability float64 `mapstructure:"congestion_shift_probability"`
	SpeedShiftProbability      float64 `mapstructure:"speed_shift_probability"`
	AccidentProbability        float64 `mapstructure:"accident_probability"`

	Source         string `mapstructure:"source"`
	SourceFile     string `mapstructure:"source_file"`
	SourceURL      string `mapstructure:"source_url"`
	PostgresDSN    string `mapstructure:"postgres_dsn"`
	OSMFile        string `mapstructure:"osm_file"`
	OSMMaxRoads    int    `mapstructure:"osm_max_roads"`
	SyntheticRoads int    `mapstructure:"synthetic_roads"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	OutputFormat      string             `mapstructure:"output_format"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	HTTPAddr       string   `mapstructure:"http_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig initializes and reads the configuration using Viper.
// A missing config file is only an error when one was named
// explicitly; the defaults describe a runnable simulation on their
// own.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("seed", 42)

	viper.SetDefault("city_name", "Udaipur")
	viper.SetDefault("city_latitude", 24.5854)
	viper.SetDefault("city_longitude", 73.7125)
	viper.SetDefault("city_radius_km", 6.0)

	viper.SetDefault("tick_interval", "3s")
	viper.SetDefault("ticks", 0)

	viper.SetDefault("congestion_shift_probability", 0.30)
	viper.SetDefault("speed_shift_probability", 0.10)
	viper.SetDefault("accident_probability", 0.05)

	viper.SetDefault("source", SourceSample)
	viper.SetDefault("osm_max_roads", 25)
	viper.SetDefault("synthetic_roads", 12)

	viper.SetDefault("kafka_enabled", false)
	viper.SetDefault("kafka_broker_list", "localhost:9092")

	viper.SetDefault("output_format", OutputConsole)
	viper.SetDefault("output_destination", DestinationLocal)

	viper.SetDefault("http_addr", ":8080")
	viper.SetDefault("allowed_origins", []string{"*"})
}
