package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/HarvesConsulting/crop-protection/internal/adapter/http"
	kafkaadapter "github.com/HarvesConsulting/crop-protection/internal/adapter/kafka"
	"github.com/HarvesConsulting/crop-protection/internal/adapter/nasapower"
	"github.com/HarvesConsulting/crop-protection/internal/adapter/openmeteo"
	"github.com/HarvesConsulting/crop-protection/internal/advisor"
	"github.com/HarvesConsulting/crop-protection/internal/config"
	"github.com/HarvesConsulting/crop-protection/internal/domain"
	"github.com/HarvesConsulting/crop-protection/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	metrics := observability.NewMetrics()

	engine := domain.NewEngine(domain.DefaultParams())

	// Historical data comes from NASA POWER with ERA5 reanalysis as
	// fallback; forecasts come from Open-Meteo.
	nasa := nasapower.NewClient(engine, cfg.NASABaseURL, cfg.ProviderTimeout, logger)
	era5 := openmeteo.NewArchiveClient(engine, cfg.ERA5URL, cfg.ProviderTimeout, logger)
	forecast := openmeteo.NewForecastClient(engine, cfg.OpenMeteoURL, cfg.ProviderTimeout, logger)

	historical := &advisor.FallbackWeather{Primary: nasa, Fallback: era5, Logger: logger, Metrics: metrics}
	historicalRain := &advisor.FallbackRain{Primary: nasa, Fallback: era5, Logger: logger, Metrics: metrics}
	forecastWeather := &advisor.FallbackWeather{Primary: forecast, Logger: logger, Metrics: metrics}
	forecastRain := &advisor.FallbackRain{Primary: forecast, Logger: logger, Metrics: metrics}

	// Plan publishing is feature-flagged via KAFKA_ENABLED.
	var publisher advisor.PlanPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka plan publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka plan publishing disabled")
	}

	service := advisor.NewService(advisor.Options{
		Engine:         engine,
		Historical:     historical,
		HistoricalRain: historicalRain,
		Forecast:       forecastWeather,
		ForecastRain:   forecastRain,
		ForecastDays:   cfg.ForecastDays,
		Publisher:      publisher,
		Logger:         logger,
		Metrics:        metrics,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
