package domain

import (
	"sort"
	"time"
)

// Secondary diseases tracked alongside late blight.
const (
	DiseaseGrayMold    = "gray_mold"
	DiseaseAlternaria  = "alternaria"
	DiseaseBacteriosis = "bacteriosis"
)

// KnownDisease reports whether name is a recognized secondary disease.
func KnownDisease(name string) bool {
	switch name {
	case DiseaseGrayMold, DiseaseAlternaria, DiseaseBacteriosis:
		return true
	}
	return false
}

// GrayMoldRisk reports botrytis-favorable conditions: a long wet period
// at mild temperatures. NaN temperatures compare false and never qualify.
func (e *Engine) GrayMoldRisk(d DailyRecord) bool {
	r := e.p.GrayMold
	return d.WetHours >= r.MinWetHours && d.WetTempAvg >= r.TempMin && d.WetTempAvg <= r.TempMax
}

// AlternariaRisk reports early-blight-favorable conditions, judged on the
// all-hours mean temperature.
func (e *Engine) AlternariaRisk(d DailyRecord) bool {
	r := e.p.Alternaria
	return d.WetHours >= r.MinWetHours && d.AllTempAvg >= r.TempMin && d.AllTempAvg <= r.TempMax
}

// BacteriosisRisk reports bacterial-spot-favorable conditions: warm, wet
// foliage after measurable rain on the same day.
func (e *Engine) BacteriosisRisk(d DailyRecord, rainMM float64) bool {
	r := e.p.Bacteriosis
	return rainMM >= r.MinRainMM &&
		d.AllTempAvg >= r.TempMin && d.AllTempAvg <= r.TempMax &&
		d.WetHours >= r.MinWetHours
}

// RiskDates evaluates one disease's predicate over the season and returns
// the qualifying days in input order. Rain is joined by exact calendar
// day; unmatched days count as dry. Unknown disease names yield nil.
func (e *Engine) RiskDates(disease string, days []DailyRecord, rain []RainRecord) []time.Time {
	var dates []time.Time
	rainByDay := indexRain(rain)
	for _, d := range days {
		risky := false
		switch disease {
		case DiseaseGrayMold:
			risky = e.GrayMoldRisk(d)
		case DiseaseAlternaria:
			risky = e.AlternariaRisk(d)
		case DiseaseBacteriosis:
			risky = e.BacteriosisRisk(d, rainByDay.on(d.Date))
		}
		if risky {
			dates = append(dates, DateOf(d.Date))
		}
	}
	return dates
}

// Treatment is one selected application date plus the minimum interval
// required before the next one.
type Treatment struct {
	Date time.Time `json:"date"`
	Gap  int       `json:"gap_days"`
}

// AdvancedTreatments thins a list of risk dates into application dates.
// Walking the sorted dates, a date is accepted only once the previously
// accepted entry's own gap has elapsed. Each accepted entry inspects the
// run of consecutive-day risk dates that follows it: a streak of four or
// more signals persistent pressure and shortens that entry's gap from
// the default seven days to five.
func (e *Engine) AdvancedTreatments(riskDates []time.Time) []Treatment {
	sorted := make([]time.Time, len(riskDates))
	for i, d := range riskDates {
		sorted[i] = DateOf(d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var selected []Treatment
	for i, cur := range sorted {
		if len(selected) > 0 {
			prev := selected[len(selected)-1]
			if DaysBetween(prev.Date, cur) < prev.Gap {
				continue
			}
		}

		streak := 1
		for j := i + 1; j < len(sorted) && DaysBetween(sorted[j-1], sorted[j]) == 1; j++ {
			streak++
		}
		gap := e.p.TreatmentGapDays
		if streak >= e.p.RiskStreakForShortGap {
			gap = e.p.TreatmentShortGapDays
		}
		selected = append(selected, Treatment{Date: cur, Gap: gap})
	}
	return selected
}
