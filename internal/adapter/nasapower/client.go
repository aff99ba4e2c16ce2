// Package nasapower fetches historical agroclimatology data from the
// NASA POWER API and normalizes it into the engine's daily records.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
)

const (
	hourlyKeyLayout = "2006010215"
	dailyKeyLayout  = "20060102"

	// POWER reports missing readings as -999.
	fillValue = -900
)

// Client calls the NASA POWER temporal point endpoints.
type Client struct {
	engine     *domain.Engine
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a POWER client aggregating with the given engine's
// thresholds.
func NewClient(engine *domain.Engine, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		engine: engine,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *Client) Name() string { return "nasa-power" }

// DailyWeather fetches hourly T2M/RH2M for the period and aggregates it
// into daily leaf-wetness records. Fill values become NaN so the engine's
// "does not qualify" rule applies.
func (c *Client) DailyWeather(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.DailyRecord, error) {
	params := url.Values{
		"parameters":    {"T2M,RH2M"},
		"start":         {from.Format(dailyKeyLayout)},
		"end":           {to.Format(dailyKeyLayout)},
		"latitude":      {fmt.Sprintf("%g", lat)},
		"longitude":     {fmt.Sprintf("%g", lon)},
		"community":     {"ag"},
		"time-standard": {"lst"},
		"format":        {"JSON"},
	}

	var resp powerResponse
	if err := c.doRequest(ctx, c.baseURL+"/api/temporal/hourly/point?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	temps := resp.Properties.Parameter["T2M"]
	humidity := resp.Properties.Parameter["RH2M"]

	samples := make([]domain.HourlySample, 0, len(temps))
	for key, tv := range temps {
		ts, err := time.ParseInLocation(hourlyKeyLayout, key, time.UTC)
		if err != nil {
			c.logger.Warn("skipping malformed POWER timestamp", "key", key)
			continue
		}
		rv, ok := humidity[key]
		if !ok {
			rv = math.NaN()
		}
		samples = append(samples, domain.HourlySample{
			Time:     ts,
			TempC:    sanitize(tv),
			Humidity: sanitize(rv),
		})
	}

	return c.engine.AggregateHourly(samples), nil
}

// DailyRain fetches corrected daily precipitation (PRECTOTCORR). Days
// with a fill value are omitted; the engine's join treats them as dry.
func (c *Client) DailyRain(ctx context.Context, lat, lon float64, from, to time.Time) ([]domain.RainRecord, error) {
	params := url.Values{
		"parameters": {"PRECTOTCORR"},
		"start":      {from.Format(dailyKeyLayout)},
		"end":        {to.Format(dailyKeyLayout)},
		"latitude":   {fmt.Sprintf("%g", lat)},
		"longitude":  {fmt.Sprintf("%g", lon)},
		"community":  {"ag"},
		"format":     {"JSON"},
	}

	var resp powerResponse
	if err := c.doRequest(ctx, c.baseURL+"/api/temporal/daily/point?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var records []domain.RainRecord
	for key, v := range resp.Properties.Parameter["PRECTOTCORR"] {
		day, err := time.ParseInLocation(dailyKeyLayout, key, time.UTC)
		if err != nil {
			c.logger.Warn("skipping malformed POWER date", "key", key)
			continue
		}
		if v <= fillValue {
			continue
		}
		records = append(records, domain.RainRecord{Date: day, Rain: v})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string, out *powerResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("power request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("power API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sanitize maps POWER fill values to NaN.
func sanitize(v float64) float64 {
	if v <= fillValue {
		return math.NaN()
	}
	return v
}

// POWER API response types.

type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}
