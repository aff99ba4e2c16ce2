package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dsvRowsFrom(days ...DailyRecord) []DSVRow {
	rows := make([]DSVRow, len(days))
	for i, d := range days {
		rows[i] = DSVRow{DailyRecord: d, DSV: DSVFromWet(d.WetHours, d.WetTempAvg)}
	}
	return rows
}

func TestWeeklyPlan(t *testing.T) {
	e := NewEngine(DefaultParams())

	t.Run("rain partitions exactly across weeks", func(t *testing.T) {
		var rain []RainRecord
		for i := 0; i < 14; i++ {
			rain = append(rain, RainRecord{Date: day(i), Rain: 1.5})
		}

		weeks := e.WeeklyPlan(nil, rain, day(0), 0)
		require.Len(t, weeks, 2)

		total := 0.0
		for _, w := range weeks {
			total += w.RainSum
		}
		assert.InDelta(t, 21.0, total, 1e-9)
		assert.InDelta(t, 10.5, weeks[0].RainSum, 1e-9)
		assert.Equal(t, day(0), weeks[0].Start)
		assert.Equal(t, day(6), weeks[0].End)
		assert.Equal(t, day(7), weeks[1].Start)
		assert.Equal(t, day(13), weeks[1].End)
	})

	t.Run("recommendation tiers", func(t *testing.T) {
		tests := []struct {
			name     string
			days     []DailyRecord
			expected string
		}{
			{"heavy at seven", []DailyRecord{wetDay(0, 10, 24), wetDay(1, 8, 24)}, RecommendHeavy},          // 4+3
			{"moderate at five", []DailyRecord{wetDay(0, 8, 24), wetDay(1, 6, 22)}, RecommendModerate},      // 3+2
			{"alert at three", []DailyRecord{wetDay(0, 6, 22), wetDay(1, 6, 15)}, RecommendAlert},           // 2+1
			{"no spray below three", []DailyRecord{wetDay(0, 6, 15), wetDay(1, 6, 15)}, RecommendNone},      // 1+1
			{"moderate at six stays below heavy", []DailyRecord{wetDay(0, 8, 24), wetDay(1, 8, 24)}, RecommendModerate}, // 3+3
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				weeks := e.WeeklyPlan(dsvRowsFrom(tt.days...), nil, day(0), 7)
				require.NotEmpty(t, weeks)
				assert.Equal(t, tt.expected, weeks[0].Recommendation)
			})
		}
	})

	t.Run("window contents", func(t *testing.T) {
		rows := dsvRowsFrom(wetDay(0, 10, 24), wetDay(1, 8, 24), wetDay(8, 6, 22))
		rain := []RainRecord{{Date: day(1), Rain: 4}, {Date: day(8), Rain: 2.5}}

		weeks := e.WeeklyPlan(rows, rain, day(0), 0)

		expected := []WeekSummary{
			{Start: day(0), End: day(6), DSV: 7, RainSum: 4, Recommendation: RecommendHeavy},
			{Start: day(7), End: day(8), DSV: 2, RainSum: 2.5, Recommendation: RecommendNone},
		}
		if diff := cmp.Diff(expected, weeks); diff != "" {
			t.Errorf("weekly plan mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("weekly sum is not capped", func(t *testing.T) {
		var days []DailyRecord
		for i := 0; i < 7; i++ {
			days = append(days, wetDay(i, 10, 24)) // DSV 4 each
		}

		weeks := e.WeeklyPlan(dsvRowsFrom(days...), nil, day(0), 0)
		require.NotEmpty(t, weeks)
		assert.Equal(t, 28, weeks[0].DSV)
	})

	t.Run("explicit horizon overrides row extent", func(t *testing.T) {
		rows := dsvRowsFrom(wetDay(0, 10, 24))
		weeks := e.WeeklyPlan(rows, nil, day(0), 14)
		assert.Len(t, weeks, 3) // d0-6, d7-13, d14 truncated
		assert.Equal(t, day(14), weeks[2].Start)
		assert.Equal(t, day(14), weeks[2].End)
	})

	t.Run("empty input still yields one degenerate week", func(t *testing.T) {
		now := time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(now))
		defer SetClock(nil)

		weeks := e.WeeklyPlan(nil, nil, time.Time{}, 0)
		require.Len(t, weeks, 1)
		assert.Equal(t, DateOf(now), weeks[0].Start)
		assert.Equal(t, AddDays(DateOf(now), 6), weeks[0].End)
		assert.Equal(t, RecommendNone, weeks[0].Recommendation)
	})

	t.Run("start defaults to first row", func(t *testing.T) {
		rows := dsvRowsFrom(wetDay(2, 10, 24), wetDay(9, 10, 24))
		weeks := e.WeeklyPlan(rows, nil, time.Time{}, 0)
		require.Len(t, weeks, 2)
		assert.Equal(t, day(2), weeks[0].Start)
		assert.Equal(t, 4, weeks[0].DSV)
		assert.Equal(t, 4, weeks[1].DSV)
	})

	t.Run("stop falls back to last rain record", func(t *testing.T) {
		rain := []RainRecord{{Date: day(0), Rain: 2}, {Date: day(10), Rain: 2}}
		weeks := e.WeeklyPlan(nil, rain, day(0), 0)
		assert.Len(t, weeks, 2)
	})
}
