// Package openmeteo fetches forecast and ERA5 reanalysis data from the
// Open-Meteo APIs and normalizes it into the engine's daily records.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02T15:04"
)

// Client calls one Open-Meteo endpoint: either the 16-day forecast API
// or the ERA5 archive API. The two share request and response shapes.
type Client struct {
	engine     *domain.Engine
	httpClient *http.Client
	name       string
	baseURL    string
	path       string
	logger     *slog.Logger
}

// NewForecastClient creates a client for the forecast API.
func NewForecastClient(engine *domain.Engine, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(engine, "open-meteo", baseURL, "/v1/forecast", timeout, logger)
}

// NewArchiveClient creates a client for the ERA5 reanalysis archive,
// used as the historical fallback behind NASA POWER.
func NewArchiveClient(engine *domain.Engine, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return newClient(engine, "era5", baseURL, "/v1/era5", timeout, logger)
}

func newClient(engine *domain.Engine, name, baseURL, path string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		engine: engine,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		name:    name,
		baseURL: baseURL,
		path:    path,
		logger:  logger,
	}
}

func (c *Client) Name() string { return c.name }

// DailyWeather fetches hourly temperature and humidity for the period and
// aggregates them into daily leaf-wetness records. Null readings become
// NaN samples.
func (c *Client) DailyWeather(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.DailyRecord, error) {
	params := c.baseParams(lat, lon, from, to)
	params.Set("hourly", "temperature_2m,relative_humidity_2m")

	var resp apiResponse
	if err := c.doRequest(ctx, params, &resp); err != nil {
		return nil, err
	}

	samples := make([]domain.HourlySample, 0, len(resp.Hourly.Time))
	for i, raw := range resp.Hourly.Time {
		ts, err := time.ParseInLocation(hourLayout, raw, time.UTC)
		if err != nil {
			c.logger.Warn("skipping malformed open-meteo timestamp", "value", raw)
			continue
		}
		samples = append(samples, domain.HourlySample{
			Time:     ts,
			TempC:    deref(resp.Hourly.Temperature, i),
			Humidity: deref(resp.Hourly.Humidity, i),
		})
	}
	return c.engine.AggregateHourly(samples), nil
}

// DailyRain fetches daily precipitation sums for the period.
func (c *Client) DailyRain(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.RainRecord, error) {
	params := c.baseParams(lat, lon, from, to)
	params.Set("daily", "precipitation_sum")

	var resp apiResponse
	if err := c.doRequest(ctx, params, &resp); err != nil {
		return nil, err
	}

	var records []domain.RainRecord
	for i, raw := range resp.Daily.Time {
		day, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			c.logger.Warn("skipping malformed open-meteo date", "value", raw)
			continue
		}
		rain := deref(resp.Daily.PrecipitationSum, i)
		if math.IsNaN(rain) {
			rain = 0
		}
		records = append(records, domain.RainRecord{Date: day, Rain: rain})
	}
	return records, nil
}

func (c *Client) baseParams(lat, lon float64, from, to time.Time) url.Values {
	return url.Values{
		"latitude":   {fmt.Sprintf("%g", lat)},
		"longitude":  {fmt.Sprintf("%g", lon)},
		"timezone":   {"auto"},
		"start_date": {from.Format(dateLayout)},
		"end_date":   {to.Format(dateLayout)},
	}
}

func (c *Client) doRequest(ctx context.Context, params url.Values, out *apiResponse) error {
	fullURL := c.baseURL + c.path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s API error: status %d: %s", c.name, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// deref reads an optional reading, mapping nulls and gaps to NaN.
func deref(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return math.NaN()
	}
	return *vals[i]
}

// Open-Meteo API response types.

type apiResponse struct {
	Hourly struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		Humidity    []*float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time             []string   `json:"time"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}
