package domain

import (
	"math"
	"sort"
)

// dsvBand awards a severity once the wet-hour count reaches Hours.
type dsvBand struct {
	Hours int
	DSV   int
}

// dsvRule covers a temperature range [TempMin, TempMax) with its duration bands.
type dsvRule struct {
	TempMin float64
	TempMax float64
	Bands   []dsvBand
}

// dsvRules is the TOM-CAST severity table. Ranges do not overlap; list
// order is still the tie-break should a revision ever introduce one.
var dsvRules = []dsvRule{
	{TempMin: 21, TempMax: 27, Bands: []dsvBand{{6, 2}, {8, 3}, {10, 4}}},
	{TempMin: 13, TempMax: 21, Bands: []dsvBand{{6, 1}, {8, 2}, {10, 3}, {12, 4}}},
	{TempMin: 7, TempMax: 13, Bands: []dsvBand{{6, 1}, {8, 1}, {10, 2}, {12, 3}, {14, 4}}},
	{TempMin: 27, TempMax: 40, Bands: []dsvBand{{6, 1}, {8, 2}, {10, 3}}},
}

// minWetHoursForDSV is the minimum wetness duration for any infection value.
const minWetHoursForDSV = 6

// DSVFromWet maps a day's wet-hour count and wet-hour mean temperature to
// a disease severity value of 0–4. Non-finite temperatures (no wet hours)
// and durations under six hours never score. For the first rule whose
// range contains the temperature, the highest band whose duration
// requirement is met wins.
func DSVFromWet(wetHours int, wetTempAvg float64) int {
	if math.IsNaN(wetTempAvg) || math.IsInf(wetTempAvg, 0) {
		return 0
	}
	if wetHours < minWetHoursForDSV {
		return 0
	}
	for _, rule := range dsvRules {
		if wetTempAvg < rule.TempMin || wetTempAvg >= rule.TempMax {
			continue
		}
		bands := make([]dsvBand, len(rule.Bands))
		copy(bands, rule.Bands)
		sort.Slice(bands, func(i, j int) bool { return bands[i].Hours > bands[j].Hours })
		for _, b := range bands {
			if wetHours >= b.Hours {
				return b.DSV
			}
		}
		return 0
	}
	return 0
}

// DailyDSV returns the severity for one record, clamped to the per-day cap.
func (e *Engine) DailyDSV(d DailyRecord) int {
	dsv := DSVFromWet(d.WetHours, d.WetTempAvg)
	if dsv > e.p.DSVCap {
		dsv = e.p.DSVCap
	}
	return dsv
}
