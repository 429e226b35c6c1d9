package params

import "time"

// CookingConfig holds the cooking-episode detector's thresholds. Like the
// underground thresholds, these are empirically chosen policy values.
//
// PM deltas are µg/m³ above the EWMA baseline, humidity deltas are
// percentage points, temperature deltas are °C.
type CookingConfig struct {
	// BaselineAlpha is the EWMA smoothing factor for the ambient baselines.
	// ~25–30 min half-adaptation at 1 Hz ticks.
	BaselineAlpha float64

	// TriggerSpikeDelta: PM2.5 above baseline required to arm a trigger.
	TriggerSpikeDelta float64
	// TriggerRise: instantaneous PM2.5 rise required alongside the spike,
	// so a stale plateau doesn't re-arm.
	TriggerRise float64
	// DebounceSlots and DebounceRequired: N-of-M trigger debounce gating
	// idle → episode.
	DebounceSlots    int
	DebounceRequired int

	// Scoring weights, accumulated per tick while in episode/cooking.
	ScoreLargeSpike      float64 // PM2.5 delta ≥ LargeSpikeDelta
	ScoreMediumSpike     float64 // PM2.5 delta ≥ TriggerSpikeDelta
	ScorePM10Rising      float64 // PM10 rising with PM10/PM2.5 ≤ PM10RatioMax
	ScoreFryingBand      float64 // PM1/PM2.5 inside the frying band
	ScorePM10RatioLow    float64 // PM10/PM2.5 ≤ PM10RatioLow
	ScoreHumidityRise    float64 // RH delta ≥ HumidityRiseDelta
	ScoreTemperatureRise float64 // temp delta ≥ TemperatureRiseDelta
	ScoreStill           float64
	ScoreAtHome          float64
	ScoreBeacon          float64
	ScoreMealTime        float64

	LargeSpikeDelta      float64
	PM10RiseDelta        float64
	PM10RatioMax         float64
	PM10RatioLow         float64
	FryingBandLow        float64
	FryingBandHigh       float64
	HumidityRiseDelta    float64
	TemperatureRiseDelta float64

	// Anti-false-positive penalties.
	PenaltyVacuum float64 // motion + high PM10/PM2.5
	PenaltySmoke  float64 // high PM1 ratio, flat humidity
	PenaltyDust   float64 // very high PM10 ratio, flat humidity

	VacuumPM10Ratio float64
	SmokePM1Ratio   float64
	DustPM10Ratio   float64
	FlatHumidityMax float64

	// ConfirmScore and ConfirmDuration gate episode → cooking: the running
	// max score must reach ConfirmScore and the episode must have lived
	// ConfirmDuration (transient spikes never confirm).
	ConfirmScore    float64
	ConfirmDuration time.Duration

	// AboveThresholdPM and AboveThresholdRH define a tick still "above
	// threshold"; HoldDuration without one decays the episode back to idle.
	AboveThresholdPM float64
	AboveThresholdRH float64
	HoldDuration     time.Duration

	// SubtypePMStrong and SubtypeRHStrong split frying vs boiling; when
	// both are strong the PM2.5 delta is compared against SubtypePMTieBreak.
	SubtypePMStrong   float64
	SubtypeRHStrong   float64
	SubtypePMTieBreak float64

	// MealHours are hour-of-day windows lending a meal-time prior.
	MealHours [][2]int
}

var DefaultCookingConfig = CookingConfig{
	BaselineAlpha: 0.02,

	TriggerSpikeDelta: 25,
	TriggerRise:       10,
	DebounceSlots:     3,
	DebounceRequired:  2,

	ScoreLargeSpike:      0.50,
	ScoreMediumSpike:     0.30,
	ScorePM10Rising:      0.10,
	ScoreFryingBand:      0.15,
	ScorePM10RatioLow:    0.05,
	ScoreHumidityRise:    0.20,
	ScoreTemperatureRise: 0.10,
	ScoreStill:           0.10,
	ScoreAtHome:          0.10,
	ScoreBeacon:          0.10,
	ScoreMealTime:        0.10,

	LargeSpikeDelta:      50,
	PM10RiseDelta:        10,
	PM10RatioMax:         1.2,
	PM10RatioLow:         1.0,
	FryingBandLow:        0.35,
	FryingBandHigh:       0.70,
	HumidityRiseDelta:    4,
	TemperatureRiseDelta: 1.0,

	PenaltyVacuum: 0.20,
	PenaltySmoke:  0.15,
	PenaltyDust:   0.20,

	VacuumPM10Ratio: 1.5,
	SmokePM1Ratio:   0.80,
	DustPM10Ratio:   2.0,
	FlatHumidityMax: 1.0,

	ConfirmScore:    0.60,
	ConfirmDuration: 180 * time.Second,

	AboveThresholdPM: 20,
	AboveThresholdRH: 2,
	HoldDuration:     600 * time.Second,

	SubtypePMStrong:   40,
	SubtypeRHStrong:   4,
	SubtypePMTieBreak: 120,

	MealHours: [][2]int{{7, 9}, {11, 14}, {18, 21}},
}

// IsMealHour reports whether hour falls in one of the configured meal
// windows. Bounds are inclusive-start, exclusive-end.
func (c *CookingConfig) IsMealHour(hour int) bool {
	for _, w := range c.MealHours {
		if hour >= w[0] && hour < w[1] {
			return true
		}
	}
	return false
}
