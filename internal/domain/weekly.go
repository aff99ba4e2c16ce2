package domain

import "time"

// Spray recommendation tiers, from no action to urgent re-treatment.
const (
	RecommendNone     = "No spray"
	RecommendAlert    = "Alert"
	RecommendModerate = "Moderate spray"
	RecommendHeavy    = "Heavy spray"
)

// WeekSummary is one 7-day window of the weekly risk plan.
type WeekSummary struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DSV            int       `json:"dsv"`     // uncapped sum of capped daily severities
	RainSum        float64   `json:"rain_mm"` // total precipitation in the window
	Recommendation string    `json:"recommendation"`
}

// WeeklyPlan buckets daily severities and rainfall into consecutive
// 7-day windows starting at start (or the first row's date, or today)
// and classifies each window into a recommendation tier. When
// horizonDays is positive the plan spans exactly that many days;
// otherwise it runs to the last available row (or rain record). At least
// one window is always produced, even for empty input.
func (e *Engine) WeeklyPlan(rows []DSVRow, rain []RainRecord, start time.Time, horizonDays int) []WeekSummary {
	switch {
	case !start.IsZero():
		start = DateOf(start)
	case len(rows) > 0:
		start = DateOf(rows[0].Date)
	default:
		start = DateOf(clock.Now())
	}

	stop := e.weeklyStop(rows, rain, start, horizonDays)
	rainByDay := indexRain(rain)

	var weeks []WeekSummary
	for cur := start; !cur.After(stop); cur = AddDays(cur, 7) {
		end := minDate(AddDays(cur, 6), stop)

		week := WeekSummary{Start: cur, End: end}
		for _, r := range rows {
			day := DateOf(r.Date)
			if day.Before(cur) || day.After(end) {
				continue
			}
			week.DSV += e.DailyDSV(r.DailyRecord)
		}
		for day := cur; !day.After(end); day = AddDays(day, 1) {
			week.RainSum += rainByDay.on(day)
		}
		week.Recommendation = e.classifyWeek(week.DSV)
		weeks = append(weeks, week)
	}
	return weeks
}

// weeklyStop picks the last day of the plan. Empty inputs degrade to a
// single week so callers always get at least one window back.
func (e *Engine) weeklyStop(rows []DSVRow, rain []RainRecord, start time.Time, horizonDays int) time.Time {
	if horizonDays > 0 {
		return AddDays(start, horizonDays)
	}
	stop := time.Time{}
	if len(rows) > 0 {
		stop = DateOf(rows[len(rows)-1].Date)
	} else if len(rain) > 0 {
		stop = DateOf(rain[len(rain)-1].Date)
	}
	if stop.IsZero() || stop.Before(start) {
		return AddDays(start, 6)
	}
	return stop
}

func (e *Engine) classifyWeek(weeklyDSV int) string {
	switch {
	case weeklyDSV >= e.p.WeeklyHeavyDSV:
		return RecommendHeavy
	case weeklyDSV >= e.p.WeeklyModerateDSV:
		return RecommendModerate
	case weeklyDSV >= e.p.WeeklyAlertDSV:
		return RecommendAlert
	default:
		return RecommendNone
	}
}
