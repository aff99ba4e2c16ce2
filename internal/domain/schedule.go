package domain

import "time"

// SprayEvent records one accumulator-triggered application.
type SprayEvent struct {
	Date      time.Time `json:"date"`
	AccBefore int       `json:"acc_before"` // accumulated DSV at the moment of the trigger
}

// DSVResult carries the annotated daily rows and the accumulator's
// trigger events. The rows are diagnostic output; the authoritative
// spray recommendation comes from MultiSpraySchedule.
type DSVResult struct {
	Rows     []DSVRow     `json:"rows"`
	Schedule []SprayEvent `json:"schedule"`
}

// AccumulateDSV runs the threshold scheduler: daily severities are summed
// and an application triggers once the sum reaches the DSV threshold,
// subject to the cooldown since the previous trigger. On a trigger the
// threshold is subtracted, carrying any remainder forward rather than
// resetting, so severity earned during a cooldown is not lost.
func (e *Engine) AccumulateDSV(days []DailyRecord) DSVResult {
	rows := make([]DSVRow, len(days))
	schedule := []SprayEvent{}

	acc := 0
	var lastSpray time.Time
	haveSpray := false

	for i, d := range days {
		rows[i] = DSVRow{DailyRecord: d, DSV: e.DailyDSV(d)}
		acc += rows[i].DSV

		canSpray := !haveSpray || DaysBetween(lastSpray, d.Date) >= e.p.SprayCooldownDays
		if acc >= e.p.DSVThreshold && canSpray {
			schedule = append(schedule, SprayEvent{Date: DateOf(d.Date), AccBefore: acc})
			acc -= e.p.DSVThreshold
			lastSpray = d.Date
			haveSpray = true
		}
	}

	return DSVResult{Rows: rows, Schedule: schedule}
}

// hasCond reports whether a day's condition hours mark it as an infection day.
func (e *Engine) hasCond(d DailyRecord) bool {
	return d.CondHours >= e.p.CondHoursTrigger
}

// MultiSpraySchedule runs the condition-hours cadence scheduler. The
// first infection day seeds the schedule; from each application the next
// one is chosen by ordered priority:
//
//  1. heavy rain (at or above the wash-off threshold) strictly after the
//     application and within seven days forces a day-5 re-spray,
//  2. an infection day within days 1–7 locks the standard day-7 cadence,
//  3. otherwise the schedule skips ahead to the next infection day after
//     day 7.
//
// The loop stops when no next date exists or the candidate fails to
// advance, so it terminates in O(n) for any input.
func (e *Engine) MultiSpraySchedule(days []DailyRecord, rain []RainRecord) []time.Time {
	var sprays []time.Time

	cursor := time.Time{}
	seeded := false
	for _, d := range days {
		if e.hasCond(d) {
			cursor = DateOf(d.Date)
			seeded = true
			break
		}
	}
	if !seeded {
		return sprays
	}
	sprays = append(sprays, cursor)

	for {
		d1 := AddDays(cursor, 1)
		d5 := AddDays(cursor, 5)
		d7 := AddDays(cursor, 7)

		heavyRain := false
		for _, r := range rain {
			day := DateOf(r.Date)
			if day.After(cursor) && !day.After(d7) && r.Rain >= e.p.RainWashoffMM {
				heavyRain = true
				break
			}
		}

		var next time.Time
		switch {
		case heavyRain:
			next = d5
		case e.condWithin(days, d1, d7):
			next = d7
		default:
			next = e.firstCondAfter(days, d7)
		}

		if next.IsZero() || !next.After(sprays[len(sprays)-1]) {
			break
		}
		sprays = append(sprays, next)
		cursor = next
	}

	return sprays
}

// condWithin reports whether any infection day falls inside [from, to].
func (e *Engine) condWithin(days []DailyRecord, from, to time.Time) bool {
	for _, d := range days {
		day := DateOf(d.Date)
		if !day.Before(from) && !day.After(to) && e.hasCond(d) {
			return true
		}
	}
	return false
}

// firstCondAfter returns the date of the first infection day strictly
// after the given day, or the zero time when none exists.
func (e *Engine) firstCondAfter(days []DailyRecord, after time.Time) time.Time {
	for _, d := range days {
		day := DateOf(d.Date)
		if day.After(after) && e.hasCond(d) {
			return day
		}
	}
	return time.Time{}
}
