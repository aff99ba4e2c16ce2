package domain

import (
	"math"
	"sort"
	"time"
)

// dayAccumulator tallies one civil day's qualifying hours during aggregation.
type dayAccumulator struct {
	allTempSum float64
	allTempN   int
	wetTempSum float64
	wetHours   int
	condHours  int
}

// AggregateHourly collapses hourly samples into per-day leaf-wetness
// records. Each hour is thresholded independently: wetness (RH at or
// above WetRHMin) and infection condition (RH at or above CondRHMin with
// temperature inside [CondTempMin, CondTempMax)) are derived from the
// same samples in one pass. Hours with a non-finite temperature are
// ignored entirely; hours with a finite temperature but non-finite
// humidity still feed the all-hours mean. Output is sorted ascending by
// date.
func (e *Engine) AggregateHourly(samples []HourlySample) []DailyRecord {
	perDay := make(map[time.Time]*dayAccumulator)
	for _, s := range samples {
		tv, rv := s.TempC, s.Humidity
		if !isFinite(tv) {
			continue
		}
		day := DateOf(s.Time)
		acc := perDay[day]
		if acc == nil {
			acc = &dayAccumulator{}
			perDay[day] = acc
		}
		acc.allTempSum += tv
		acc.allTempN++
		if !isFinite(rv) {
			continue
		}
		if rv >= e.p.WetRHMin {
			acc.wetTempSum += tv
			acc.wetHours++
		}
		if rv >= e.p.CondRHMin && tv >= e.p.CondTempMin && tv < e.p.CondTempMax {
			acc.condHours++
		}
	}

	out := make([]DailyRecord, 0, len(perDay))
	for day, acc := range perDay {
		rec := DailyRecord{
			Date:       day,
			WetHours:   acc.wetHours,
			WetTempAvg: math.NaN(),
			AllTempAvg: math.NaN(),
			CondHours:  acc.condHours,
		}
		if acc.allTempN > 0 {
			rec.AllTempAvg = acc.allTempSum / float64(acc.allTempN)
		}
		if acc.wetHours > 0 {
			rec.WetTempAvg = acc.wetTempSum / float64(acc.wetHours)
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
