// Package advisor turns a plan request into a season spray plan: it
// fetches weather and rain series, runs the scheduling engine, and
// assembles the schedules, weekly risk plan, and disease summaries.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
	"github.com/HarvesConsulting/crop-protection/internal/observability"
)

// Request modes.
const (
	ModeHistorical = "historical"
	ModeForecast   = "forecast"
)

const dateLayout = "2006-01-02"

// ErrNoWeatherData signals that every configured provider returned an
// empty series for the requested period. Callers surface "no data"
// instead of an empty plan.
var ErrNoWeatherData = errors.New("no weather data for the requested period")

// ErrInvalidRequest marks request errors that are the caller's fault,
// such as unparseable or inverted dates.
var ErrInvalidRequest = errors.New("invalid plan request")

// PlanRequest is the immutable input to a plan computation. Dates are
// ISO strings at this boundary and parsed exactly once.
type PlanRequest struct {
	Latitude     float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64  `json:"longitude" validate:"gte=-180,lte=180"`
	PlantingDate string   `json:"planting_date" validate:"required"`
	HarvestDate  string   `json:"harvest_date" validate:"required_if=Mode historical"`
	Mode         string   `json:"mode" validate:"required,oneof=historical forecast"`
	Diseases     []string `json:"diseases" validate:"dive,oneof=gray_mold alternaria bacteriosis"`
}

// Application is one recommended spray with its rotation product.
type Application struct {
	Date    time.Time `json:"date"`
	Product string    `json:"product"`
}

// DiseaseTreatment is one advanced-interval treatment with its product.
type DiseaseTreatment struct {
	Date    time.Time `json:"date"`
	GapDays int       `json:"gap_days"`
	Product string    `json:"product"`
}

// DiseaseSummary reports one secondary disease's risk days and treatments.
type DiseaseSummary struct {
	Disease    string             `json:"disease"`
	RiskDates  []time.Time        `json:"risk_dates"`
	Treatments []DiseaseTreatment `json:"treatments"`
}

// PlanResult is the full advisory output for one request.
type PlanResult struct {
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`

	// Authoritative late-blight recommendation (cadence scheduler).
	Applications []Application `json:"applications"`

	// Diagnostics: per-day severities and the accumulator's triggers.
	Rows        []domain.DSVRow     `json:"rows"`
	DSVSchedule []domain.SprayEvent `json:"dsv_schedule"`

	WeeklyPlan []domain.WeekSummary `json:"weekly_plan"`
	Diseases   []DiseaseSummary     `json:"diseases,omitempty"`
}

// PlanPublisher forwards finished plans to a downstream sink.
type PlanPublisher interface {
	PublishPlan(ctx context.Context, plan PlanResult) error
}

// Service computes spray plans. Historical requests go to the historical
// sources (with provider fallback wired by the caller); forecast requests
// go to the forecast sources over a fixed horizon.
type Service struct {
	engine *domain.Engine

	historical     WeatherSource
	historicalRain RainSource
	forecast       WeatherSource
	forecastRain   RainSource
	forecastDays   int

	publisher PlanPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// Options wires a Service. Publisher may be nil (publishing disabled).
type Options struct {
	Engine         *domain.Engine
	Historical     WeatherSource
	HistoricalRain RainSource
	Forecast       WeatherSource
	ForecastRain   RainSource
	ForecastDays   int
	Publisher      PlanPublisher
	Logger         *slog.Logger
	Metrics        *observability.Metrics
}

// NewService creates a Service from its wired collaborators.
func NewService(opts Options) *Service {
	if opts.Engine == nil {
		opts.Engine = domain.NewEngine(domain.DefaultParams())
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = 14
	}
	return &Service{
		engine:         opts.Engine,
		historical:     opts.Historical,
		historicalRain: opts.HistoricalRain,
		forecast:       opts.Forecast,
		forecastRain:   opts.ForecastRain,
		forecastDays:   opts.ForecastDays,
		publisher:      opts.Publisher,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
	}
}

// CheckReadiness returns nil once the service has produced at least one plan.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no plans computed yet")
	}
	return nil
}

// Plan runs the full computation for one request. Transport failures and
// empty data come back as errors; the engine itself cannot fail.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	start := time.Now()

	result, err := s.plan(ctx, req)

	outcome := "success"
	switch {
	case errors.Is(err, ErrNoWeatherData):
		outcome = "no_data"
	case err != nil:
		outcome = "error"
	}
	if s.metrics != nil {
		s.metrics.PlansComputed.WithLabelValues(req.Mode, outcome).Inc()
		if err == nil {
			s.metrics.PlanDuration.Observe(time.Since(start).Seconds())
			s.metrics.ServiceReady.Set(1)
		}
	}
	if err != nil {
		return PlanResult{}, err
	}

	s.ready.Store(true)
	s.logger.Info("plan computed",
		"mode", req.Mode,
		"lat", req.Latitude,
		"lon", req.Longitude,
		"days", len(result.Rows),
		"applications", len(result.Applications),
		"duration", time.Since(start),
	)

	s.publish(ctx, result)
	return result, nil
}

func (s *Service) plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	from, to, err := s.period(req)
	if err != nil {
		return PlanResult{}, err
	}

	weatherSrc, rainSrc := s.historical, s.historicalRain
	if req.Mode == ModeForecast {
		weatherSrc, rainSrc = s.forecast, s.forecastRain
	}

	var (
		days []domain.DailyRecord
		rain []domain.RainRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var werr error
		days, werr = weatherSrc.DailyWeather(gctx, req.Latitude, req.Longitude, from, to)
		if werr != nil {
			return fmt.Errorf("fetch weather from %s: %w", weatherSrc.Name(), werr)
		}
		return nil
	})
	g.Go(func() error {
		var rerr error
		rain, rerr = rainSrc.DailyRain(gctx, req.Latitude, req.Longitude, from, to)
		if rerr != nil {
			// The schedulers degrade gracefully without rain; the join
			// treats missing days as dry.
			s.logger.Warn("rain fetch failed, planning without precipitation",
				"source", rainSrc.Name(), "error", rerr)
			rain = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return PlanResult{}, err
	}

	days = domain.ClipDays(days, from, to)
	rain = domain.ClipRain(rain, from, to)
	if len(days) == 0 {
		return PlanResult{}, ErrNoWeatherData
	}

	horizon := 0
	if req.Mode == ModeForecast {
		horizon = s.forecastDays
	}

	acc := s.engine.AccumulateDSV(days)
	sprays := s.engine.MultiSpraySchedule(days, rain)
	weekly := s.engine.WeeklyPlan(acc.Rows, rain, from, horizon)

	result := PlanResult{
		GeneratedAt: time.Now().UTC(),
		Mode:        req.Mode,
		From:        from,
		To:          to,
		Rows:        acc.Rows,
		DSVSchedule: acc.Schedule,
		WeeklyPlan:  weekly,
	}
	for i, d := range sprays {
		result.Applications = append(result.Applications, Application{
			Date:    d,
			Product: productAt(lateBlightRotation, i),
		})
	}
	for _, disease := range req.Diseases {
		if !domain.KnownDisease(disease) {
			continue
		}
		result.Diseases = append(result.Diseases, s.diseaseSummary(disease, days, rain))
	}
	return result, nil
}

// period resolves the inclusive [from, to] planning window. Forecast mode
// spans a fixed horizon from planting; an explicit harvest date inside
// that horizon shortens it.
func (s *Service) period(req PlanRequest) (time.Time, time.Time, error) {
	planting, err := time.Parse(dateLayout, req.PlantingDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: parse planting date: %w", ErrInvalidRequest, err)
	}
	from := domain.DateOf(planting)

	to := domain.AddDays(from, s.forecastDays-1)
	if req.HarvestDate != "" {
		harvest, err := time.Parse(dateLayout, req.HarvestDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: parse harvest date: %w", ErrInvalidRequest, err)
		}
		h := domain.DateOf(harvest)
		if req.Mode == ModeHistorical || h.Before(to) {
			to = h
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: harvest date %s precedes planting date %s",
			ErrInvalidRequest, to.Format(dateLayout), from.Format(dateLayout))
	}
	return from, to, nil
}

func (s *Service) diseaseSummary(disease string, days []domain.DailyRecord, rain []domain.RainRecord) DiseaseSummary {
	riskDates := s.engine.RiskDates(disease, days, rain)
	rotation := rotationFor(disease)

	summary := DiseaseSummary{Disease: disease, RiskDates: riskDates}
	for i, tr := range s.engine.AdvancedTreatments(riskDates) {
		summary.Treatments = append(summary.Treatments, DiseaseTreatment{
			Date:    tr.Date,
			GapDays: tr.Gap,
			Product: productAt(rotation, i),
		})
	}
	return summary
}

// publish forwards the plan to the configured sink, best-effort: a
// publishing failure never fails the request.
func (s *Service) publish(ctx context.Context, plan PlanResult) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishPlan(ctx, plan)
	outcome := "success"
	if err != nil {
		outcome = "error"
		s.logger.Warn("plan publish failed", "error", err)
	}
	if s.metrics != nil {
		s.metrics.PlansPublished.WithLabelValues(outcome).Inc()
	}
}
