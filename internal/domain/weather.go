package domain

import (
	"time"
)

// HourlySample is one raw hourly reading from a weather provider.
// Missing readings are represented as NaN, never dropped, so aggregation
// can count qualifying hours without guessing at gaps.
type HourlySample struct {
	Time     time.Time
	TempC    float64
	Humidity float64 // relative humidity, percent
}

// DailyRecord is the per-day leaf-wetness aggregate every algorithm
// consumes. Date carries no time-of-day component.
type DailyRecord struct {
	Date       time.Time `json:"date"`
	WetHours   int       `json:"wet_hours"`
	WetTempAvg float64   `json:"wet_temp_avg"` // NaN when WetHours == 0
	AllTempAvg float64   `json:"all_temp_avg"`
	CondHours  int       `json:"cond_hours"`
}

// RainRecord is one day of precipitation in millimeters.
type RainRecord struct {
	Date time.Time `json:"date"`
	Rain float64   `json:"rain_mm"`
}

// DSVRow is a DailyRecord annotated with its disease severity value.
type DSVRow struct {
	DailyRecord
	DSV int `json:"dsv"`
}

// ClipDays returns the records whose dates fall inside [from, to] inclusive.
// Input order is preserved.
func ClipDays(days []DailyRecord, from, to time.Time) []DailyRecord {
	from, to = DateOf(from), DateOf(to)
	out := make([]DailyRecord, 0, len(days))
	for _, d := range days {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ClipRain returns the rain records whose dates fall inside [from, to] inclusive.
func ClipRain(rain []RainRecord, from, to time.Time) []RainRecord {
	from, to = DateOf(from), DateOf(to)
	out := make([]RainRecord, 0, len(rain))
	for _, r := range rain {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// rainIndex joins a rain series by exact calendar day. Duplicate days sum.
type rainIndex map[time.Time]float64

func indexRain(rain []RainRecord) rainIndex {
	idx := make(rainIndex, len(rain))
	for _, r := range rain {
		idx[DateOf(r.Date)] += r.Rain
	}
	return idx
}

// on returns the rainfall for a day, 0 when the series has no entry.
func (idx rainIndex) on(day time.Time) float64 {
	return idx[DateOf(day)]
}
