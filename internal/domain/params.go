package domain

// DiseaseRule bounds a secondary-disease risk predicate. Zero-valued
// fields are meaningful; use the constructors in DefaultParams.
type DiseaseRule struct {
	MinWetHours int
	TempMin     float64 // inclusive
	TempMax     float64 // inclusive
	MinRainMM   float64 // bacteriosis only
}

// Params collects every tunable threshold in the engine. The source
// advisory model went through many revisions with drifting constants
// (condition minimum 13 vs 10 °C, several bacteriosis formulas); pinning
// them here lets agronomists retune behavior without code changes.
type Params struct {
	// Hourly aggregation.
	WetRHMin    float64 // RH% at or above which an hour counts as wet
	CondRHMin   float64 // RH% bound of the infection-condition band
	CondTempMin float64 // °C, inclusive
	CondTempMax float64 // °C, exclusive

	// DSV accumulator scheduler.
	DSVThreshold      int // accumulated DSV that triggers an application
	SprayCooldownDays int // minimum days between accumulator triggers
	DSVCap            int // per-day severity clamp

	// Condition-hours multi-spray scheduler.
	CondHoursTrigger int     // condition hours that mark an infection day
	RainWashoffMM    float64 // daily rain that forces the day-5 re-spray

	// Weekly risk banding (inclusive lower bounds on the weekly DSV sum).
	WeeklyHeavyDSV    int
	WeeklyModerateDSV int
	WeeklyAlertDSV    int

	// Secondary diseases and their treatment intervals.
	GrayMold    DiseaseRule // bounds on WetTempAvg
	Alternaria  DiseaseRule // bounds on AllTempAvg
	Bacteriosis DiseaseRule // bounds on AllTempAvg, plus rain

	TreatmentGapDays      int // default interval between treatments
	TreatmentShortGapDays int // interval after a persistent risk streak
	RiskStreakForShortGap int // consecutive risk days that shorten the gap
}

// DefaultParams returns the authoritative parameter set, matching the
// final revision of the source advisory model.
func DefaultParams() Params {
	return Params{
		WetRHMin:    90,
		CondRHMin:   90,
		CondTempMin: 10,
		CondTempMax: 28,

		DSVThreshold:      15,
		SprayCooldownDays: 5,
		DSVCap:            4,

		CondHoursTrigger: 3,
		RainWashoffMM:    12.7,

		WeeklyHeavyDSV:    7,
		WeeklyModerateDSV: 5,
		WeeklyAlertDSV:    3,

		GrayMold:    DiseaseRule{MinWetHours: 6, TempMin: 15, TempMax: 28},
		Alternaria:  DiseaseRule{MinWetHours: 5, TempMin: 15, TempMax: 30},
		Bacteriosis: DiseaseRule{MinWetHours: 4, TempMin: 22, TempMax: 32, MinRainMM: 3},

		TreatmentGapDays:      7,
		TreatmentShortGapDays: 5,
		RiskStreakForShortGap: 4,
	}
}

// Engine evaluates the scheduling model under a fixed parameter set.
// Engines are immutable and safe for concurrent use.
type Engine struct {
	p Params
}

// NewEngine creates an engine. A zero-valued Params is almost certainly
// wrong; start from DefaultParams.
func NewEngine(p Params) *Engine {
	return &Engine{p: p}
}

// Params returns the engine's parameter set.
func (e *Engine) Params() Params { return e.p }
