package nasapower

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	engine := domain.NewEngine(domain.DefaultParams())
	return NewClient(engine, srv.URL, 5*time.Second, slog.Default())
}

func TestDailyWeather(t *testing.T) {
	t.Run("aggregates hourly parameters", func(t *testing.T) {
		var gotPath, gotQuery string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"properties":{"parameter":{
				"T2M":{"2025060100":20.0,"2025060101":22.0,"2025060102":24.0},
				"RH2M":{"2025060100":95.0,"2025060101":91.0,"2025060102":60.0}
			}}}`))
		})

		recs, err := c.DailyWeather(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, recs, 1)

		assert.Equal(t, "/api/temporal/hourly/point", gotPath)
		assert.Contains(t, gotQuery, "parameters=T2M%2CRH2M")
		assert.Contains(t, gotQuery, "community=ag")
		assert.Contains(t, gotQuery, "start=20250601")

		rec := recs[0]
		assert.Equal(t, date(2025, 6, 1), rec.Date)
		assert.Equal(t, 2, rec.WetHours)
		assert.Equal(t, 2, rec.CondHours)
		assert.InDelta(t, 21.0, rec.WetTempAvg, 1e-9)
		assert.InDelta(t, 22.0, rec.AllTempAvg, 1e-9)
	})

	t.Run("fill values do not qualify as wet hours", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"properties":{"parameter":{
				"T2M":{"2025060100":-999.0,"2025060101":20.0},
				"RH2M":{"2025060100":95.0,"2025060101":-999.0}
			}}}`))
		})

		recs, err := c.DailyWeather(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 1))
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, 0, recs[0].WetHours)
		assert.InDelta(t, 20.0, recs[0].AllTempAvg, 1e-9)
	})

	t.Run("API error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		})

		_, err := c.DailyWeather(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("empty payload yields empty series", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"properties":{"parameter":{}}}`))
		})

		recs, err := c.DailyWeather(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 1))
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestDailyRain(t *testing.T) {
	t.Run("sorted daily totals", func(t *testing.T) {
		var gotPath string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"properties":{"parameter":{
				"PRECTOTCORR":{"20250603":4.2,"20250601":0.0,"20250602":-999.0}
			}}}`))
		})

		recs, err := c.DailyRain(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 3))
		require.NoError(t, err)

		assert.Equal(t, "/api/temporal/daily/point", gotPath)
		require.Len(t, recs, 2, "fill-value day omitted")
		assert.Equal(t, date(2025, 6, 1), recs[0].Date)
		assert.InDelta(t, 0.0, recs[0].Rain, 1e-9)
		assert.Equal(t, date(2025, 6, 3), recs[1].Date)
		assert.InDelta(t, 4.2, recs[1].Rain, 1e-9)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		})

		_, err := c.DailyRain(context.Background(), 48.5, 32.3, date(2025, 6, 1), date(2025, 6, 3))
		assert.Error(t, err)
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
