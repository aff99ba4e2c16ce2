// Package domain implements the disease-risk scheduling engine for
// fungicide spray planning in tomato and vegetable crops.
//
// # Data Source
//
// The engine consumes daily leaf-wetness records aggregated from hourly
// temperature and relative-humidity series. Hourly data comes from the
// NASA POWER agroclimatology API (T2M, RH2M) for historical seasons, or
// from the Open-Meteo forecast API for 14-day outlooks; daily rainfall
// comes from the corresponding daily endpoints (PRECTOTCORR /
// precipitation_sum). Provider adapters normalize both shapes into the
// same [DailyRecord] slice before the engine runs.
//
// # Leaf-Wetness Conventions
//
// One hour counts as wet when relative humidity is at or above 90%. One
// hour counts as an infection-condition hour when humidity is at or above
// 90% AND the air temperature sits inside the crop-specific window
// (10 °C inclusive to 28 °C exclusive by default). The two counts are
// derived independently from the same hourly samples in a single
// aggregation pass; neither bounds the other.
//
//	WetHours   — hours with RH ≥ 90
//	WetTempAvg — mean temperature over exactly those hours (NaN if none)
//	AllTempAvg — mean temperature over every hour with a finite reading
//	CondHours  — hours with RH ≥ 90 and 10 ≤ T < 28
//
// # Disease Severity Values (DSV)
//
// Daily DSVs follow the TOM-CAST convention: the wet-hour count and the
// mean temperature during those hours index a band table yielding a
// severity of 0–4. Longer wetness at moderate temperatures scores
// higher; fewer than six wet hours never scores. Accumulated DSV drives
// the threshold scheduler, while condition hours drive the seven-day
// cadence scheduler with its rain wash-off override (a BLITECAST-style
// policy: 12.7 mm or more of rain within a week of the last application
// strips residue and pulls the next application forward to day five).
//
// # Determinism
//
// Everything in this package is a pure function over its inputs plus the
// tunable [Params] table. Non-finite readings (missing provider data)
// are treated as "does not qualify" and never fail a computation. Empty
// series produce empty schedules. The package clock is only consulted
// for the weekly plan's default start date and can be frozen in tests
// via [SetClock].
package domain
