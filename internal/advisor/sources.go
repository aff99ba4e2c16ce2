package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
	"github.com/HarvesConsulting/crop-protection/internal/observability"
)

// WeatherSource provides daily leaf-wetness records for a location and
// period. Each provider adapter normalizes its own hourly shape into the
// same records, so the engine never sees provider-specific structures.
type WeatherSource interface {
	Name() string
	DailyWeather(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.DailyRecord, error)
}

// RainSource provides daily precipitation totals for a location and period.
type RainSource interface {
	Name() string
	DailyRain(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.RainRecord, error)
}

// FallbackWeather tries a primary weather source and, on failure or an
// empty result, a fallback before surfacing the primary's error.
type FallbackWeather struct {
	Primary  WeatherSource
	Fallback WeatherSource
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

func (f *FallbackWeather) Name() string { return f.Primary.Name() }

func (f *FallbackWeather) DailyWeather(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.DailyRecord, error) {
	recs, err := observeWeather(ctx, f.Metrics, f.Primary, lat, lon, from, to)
	if err == nil && len(recs) > 0 {
		return recs, nil
	}
	if f.Fallback == nil {
		return recs, err
	}

	f.Logger.Warn("primary weather source failed, trying fallback",
		"primary", f.Primary.Name(),
		"fallback", f.Fallback.Name(),
		"error", err,
	)
	fbRecs, fbErr := observeWeather(ctx, f.Metrics, f.Fallback, lat, lon, from, to)
	if fbErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fbErr
	}
	return fbRecs, nil
}

// FallbackRain mirrors FallbackWeather for precipitation series.
type FallbackRain struct {
	Primary  RainSource
	Fallback RainSource
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

func (f *FallbackRain) Name() string { return f.Primary.Name() }

func (f *FallbackRain) DailyRain(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.RainRecord, error) {
	recs, err := observeRain(ctx, f.Metrics, f.Primary, lat, lon, from, to)
	if err == nil && len(recs) > 0 {
		return recs, nil
	}
	if f.Fallback == nil {
		return recs, err
	}

	f.Logger.Warn("primary rain source failed, trying fallback",
		"primary", f.Primary.Name(),
		"fallback", f.Fallback.Name(),
		"error", err,
	)
	fbRecs, fbErr := observeRain(ctx, f.Metrics, f.Fallback, lat, lon, from, to)
	if fbErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fbErr
	}
	return fbRecs, nil
}

func observeWeather(ctx context.Context, m *observability.Metrics, src WeatherSource, lat, lon float64, from, to time.Time) ([]domain.DailyRecord, error) {
	start := time.Now()
	recs, err := src.DailyWeather(ctx, lat, lon, from, to)
	recordProvider(m, src.Name(), start, len(recs), err)
	return recs, err
}

func observeRain(ctx context.Context, m *observability.Metrics, src RainSource, lat, lon float64, from, to time.Time) ([]domain.RainRecord, error) {
	start := time.Now()
	recs, err := src.DailyRain(ctx, lat, lon, from, to)
	recordProvider(m, src.Name(), start, len(recs), err)
	return recs, err
}

func recordProvider(m *observability.Metrics, provider string, start time.Time, n int, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case n == 0:
		outcome = "empty"
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
