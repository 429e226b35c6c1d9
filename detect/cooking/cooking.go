/*
Package cooking detects indoor cooking episodes from particulate, humidity,
and temperature spikes over slow EWMA ambient baselines.

The detector is an explicit three-state machine:

	idle ──2-of-3 trigger debounce──► episode ──score+duration confirm──► cooking
	  ▲                                  │                                  │
	  └────────────600 s below threshold─┴──────────────────────────────────┘

All transitions and their guards live in Update, so they're reviewable in
one place. Baselines update on every tick regardless of state; ambient air
drifts whether or not anyone is frying.
*/
package cooking

import (
	"time"

	"github.com/aethermon/ctxd/common"
	"github.com/aethermon/ctxd/metrics"
	"github.com/aethermon/ctxd/params"
)

type State int

const (
	StateIdle State = iota
	StateEpisode
	StateCooking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEpisode:
		return "episode"
	case StateCooking:
		return "cooking"
	}
	return "idle"
}

type Subtype string

const (
	SubtypeUnknown Subtype = "unknown"
	SubtypeFrying  Subtype = "frying"
	SubtypeBoiling Subtype = "boiling"
)

// Tick is one evaluation tick's worth of cooking-relevant readings and
// context hints. Sensor readings are optional; hints default false.
type Tick struct {
	Now time.Time

	PM1         *float64
	PM25        *float64
	PM10        *float64
	TempC       *float64
	HumidityPct *float64

	Still    bool
	AtHome   bool
	Beacon   bool
	MealTime bool
}

// Result reports the detector's verdict after a tick.
type Result struct {
	Active   bool
	State    State
	Subtype  Subtype
	ScoreMax float64
}

// Detector owns the cooking-episode state for one tracker.
type Detector struct {
	cfg *params.CookingConfig

	state        State
	episodeStart time.Time
	lastAbove    time.Time
	scoreMax     float64

	basePM25 *metrics.EWMA
	basePM10 *metrics.EWMA
	baseRH   *metrics.EWMA
	baseTemp *metrics.EWMA

	triggers *common.RingBuffer[bool]

	prevPM25 *float64
	prevPM10 *float64
}

func NewDetector(cfg *params.CookingConfig) *Detector {
	if cfg == nil {
		cfg = &params.DefaultCookingConfig
	}
	return &Detector{
		cfg:      cfg,
		basePM25: metrics.NewEWMA(cfg.BaselineAlpha),
		basePM10: metrics.NewEWMA(cfg.BaselineAlpha),
		baseRH:   metrics.NewEWMA(cfg.BaselineAlpha),
		baseTemp: metrics.NewEWMA(cfg.BaselineAlpha),
		triggers: common.NewRingBuffer[bool](cfg.DebounceSlots),
	}
}

// State returns the current episode state.
func (d *Detector) State() State { return d.state }

// Reset returns the detector to idle with neutral baselines.
func (d *Detector) Reset() {
	d.state = StateIdle
	d.episodeStart = time.Time{}
	d.lastAbove = time.Time{}
	d.scoreMax = 0
	d.basePM25.Reset()
	d.basePM10.Reset()
	d.baseRH.Reset()
	d.baseTemp.Reset()
	d.triggers = common.NewRingBuffer[bool](d.cfg.DebounceSlots)
	d.prevPM25 = nil
	d.prevPM10 = nil
}

// observation is a tick reduced to deltas and ratios, nil-guarded.
type observation struct {
	pm25Delta float64
	pm25OK    bool
	pm25Rise  float64
	riseOK    bool

	pm10Rising bool
	pm10Ratio  float64 // PM10/PM2.5
	pm10OK     bool

	pm1Ratio float64 // PM1/PM2.5
	pm1OK    bool

	rhDelta float64
	rhOK    bool

	tempDelta float64
	tempOK    bool
}

// observe reduces the tick against the current baselines, before they fold
// the tick in. A reading with no seeded baseline yields no delta.
func (d *Detector) observe(t Tick) observation {
	var o observation
	if t.PM25 != nil {
		if base, ok := d.basePM25.Value(); ok {
			o.pm25Delta = *t.PM25 - base
			o.pm25OK = true
		}
		if d.prevPM25 != nil {
			o.pm25Rise = *t.PM25 - *d.prevPM25
			o.riseOK = true
		}
		if *t.PM25 > 0 {
			if t.PM10 != nil {
				o.pm10Ratio = *t.PM10 / *t.PM25
				o.pm10OK = true
			}
			if t.PM1 != nil {
				o.pm1Ratio = *t.PM1 / *t.PM25
				o.pm1OK = true
			}
		}
	}
	if t.PM10 != nil && d.prevPM10 != nil {
		o.pm10Rising = *t.PM10-*d.prevPM10 >= d.cfg.PM10RiseDelta
	}
	if t.HumidityPct != nil {
		if base, ok := d.baseRH.Value(); ok {
			o.rhDelta = *t.HumidityPct - base
			o.rhOK = true
		}
	}
	if t.TempC != nil {
		if base, ok := d.baseTemp.Value(); ok {
			o.tempDelta = *t.TempC - base
			o.tempOK = true
		}
	}
	return o
}

// Update advances the state machine by one tick.
func (d *Detector) Update(t Tick) Result {
	o := d.observe(t)

	// Baselines track slow ambient drift even while cooking.
	if t.PM25 != nil {
		d.basePM25.Update(*t.PM25)
	}
	if t.PM10 != nil {
		d.basePM10.Update(*t.PM10)
	}
	if t.HumidityPct != nil {
		d.baseRH.Update(*t.HumidityPct)
	}
	if t.TempC != nil {
		d.baseTemp.Update(*t.TempC)
	}
	d.prevPM25 = t.PM25
	d.prevPM10 = t.PM10

	trigger := o.pm25OK && o.riseOK &&
		o.pm25Delta >= d.cfg.TriggerSpikeDelta && o.pm25Rise >= d.cfg.TriggerRise
	d.triggers.Add(trigger)

	above := (o.pm25OK && o.pm25Delta >= d.cfg.AboveThresholdPM) ||
		(o.rhOK && o.rhDelta > d.cfg.AboveThresholdRH)
	if above {
		d.lastAbove = t.Now
	}

	switch d.state {
	case StateIdle:
		if d.debounced() {
			d.state = StateEpisode
			d.episodeStart = t.Now
			d.lastAbove = t.Now
			d.scoreMax = 0
		}
	case StateEpisode:
		if d.expired(t.Now) {
			d.toIdle()
			break
		}
		d.accumulate(o, t)
		if d.scoreMax >= d.cfg.ConfirmScore && t.Now.Sub(d.episodeStart) >= d.cfg.ConfirmDuration {
			d.state = StateCooking
		}
	case StateCooking:
		if d.expired(t.Now) {
			d.toIdle()
			break
		}
		d.accumulate(o, t)
	}

	res := Result{
		Active:   d.state == StateCooking,
		State:    d.state,
		ScoreMax: d.scoreMax,
	}
	if d.state == StateCooking {
		res.Subtype = d.subtype(o)
	}
	return res
}

// debounced holds when enough of the recent trigger ring is set.
func (d *Detector) debounced() bool {
	n := 0
	d.triggers.Scan(func(v bool) bool {
		if v {
			n++
		}
		return true
	})
	return n >= d.cfg.DebounceRequired
}

// expired: the hold window has fully elapsed without an above-threshold tick.
func (d *Detector) expired(now time.Time) bool {
	return !d.lastAbove.IsZero() && now.Sub(d.lastAbove) >= d.cfg.HoldDuration
}

func (d *Detector) toIdle() {
	d.state = StateIdle
	d.episodeStart = time.Time{}
	d.scoreMax = 0
	d.triggers = common.NewRingBuffer[bool](d.cfg.DebounceSlots)
}

// accumulate adds this tick's evidence to the running maximum score.
func (d *Detector) accumulate(o observation, t Tick) {
	score := 0.0

	if o.pm25OK {
		switch {
		case o.pm25Delta >= d.cfg.LargeSpikeDelta:
			score += d.cfg.ScoreLargeSpike
		case o.pm25Delta >= d.cfg.TriggerSpikeDelta:
			score += d.cfg.ScoreMediumSpike
		}
	}
	if o.pm10OK && o.pm10Rising && o.pm10Ratio <= d.cfg.PM10RatioMax {
		score += d.cfg.ScorePM10Rising
	}
	if o.pm1OK && o.pm1Ratio >= d.cfg.FryingBandLow && o.pm1Ratio <= d.cfg.FryingBandHigh {
		score += d.cfg.ScoreFryingBand
	}
	if o.pm10OK && o.pm10Ratio <= d.cfg.PM10RatioLow {
		score += d.cfg.ScorePM10RatioLow
	}
	if o.rhOK && o.rhDelta >= d.cfg.HumidityRiseDelta {
		score += d.cfg.ScoreHumidityRise
	}
	if o.tempOK && o.tempDelta >= d.cfg.TemperatureRiseDelta {
		score += d.cfg.ScoreTemperatureRise
	}
	if t.Still {
		score += d.cfg.ScoreStill
	}
	if t.AtHome {
		score += d.cfg.ScoreAtHome
	}
	if t.Beacon {
		score += d.cfg.ScoreBeacon
	}
	if t.MealTime {
		score += d.cfg.ScoreMealTime
	}

	flatRH := !o.rhOK || o.rhDelta < d.cfg.FlatHumidityMax
	// Vacuuming: coarse dust kicked up while moving around.
	if !t.Still && o.pm10OK && o.pm10Ratio >= d.cfg.VacuumPM10Ratio {
		score -= d.cfg.PenaltyVacuum
	}
	// Smoke or incense: fine particles, no steam.
	if o.pm1OK && o.pm1Ratio >= d.cfg.SmokePM1Ratio && flatRH {
		score -= d.cfg.PenaltySmoke
	}
	// Dust: coarse particles, no steam.
	if o.pm10OK && o.pm10Ratio >= d.cfg.DustPM10Ratio && flatRH {
		score -= d.cfg.PenaltyDust
	}

	if score > d.scoreMax {
		d.scoreMax = score
	}
}

// subtype splits a confirmed episode into frying vs boiling by which signal
// dominates; when both are strong, a very large PM2.5 spike reads as frying.
func (d *Detector) subtype(o observation) Subtype {
	pmStrong := o.pm25OK && o.pm25Delta >= d.cfg.SubtypePMStrong
	rhStrong := o.rhOK && o.rhDelta >= d.cfg.SubtypeRHStrong
	switch {
	case pmStrong && rhStrong:
		if o.pm25Delta >= d.cfg.SubtypePMTieBreak {
			return SubtypeFrying
		}
		return SubtypeBoiling
	case pmStrong:
		return SubtypeFrying
	case rhStrong:
		return SubtypeBoiling
	}
	return SubtypeUnknown
}
