package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Weather provider configuration.
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`
	NASABaseURL     string        `envconfig:"NASA_POWER_BASE_URL" default:"https://power.larc.nasa.gov"`
	OpenMeteoURL    string        `envconfig:"OPEN_METEO_BASE_URL" default:"https://api.open-meteo.com"`
	ERA5URL         string        `envconfig:"ERA5_BASE_URL" default:"https://archive-api.open-meteo.com"`
	ForecastDays    int           `envconfig:"FORECAST_DAYS" default:"14"`

	// Optional Kafka plan publishing.
	KafkaEnabled  bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers  []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic    string   `envconfig:"KAFKA_TOPIC" default:"spray-plans"`
}

// Load reads configuration from the environment, first merging an optional
// .env file. Defaults apply where variables are unset.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.ProviderTimeout <= 0 {
		return errors.New("PROVIDER_TIMEOUT must be positive")
	}
	if c.ForecastDays <= 0 {
		return errors.New("FORECAST_DAYS must be positive")
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if c.KafkaTopic == "" {
			return errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}
	return nil
}
