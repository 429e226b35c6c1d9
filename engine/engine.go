// Package engine ties the regime fork, the signal window, and the
// per-regime detectors into a single per-tracker classifier.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aethermon/ctxd/detect/cooking"
	"github.com/aethermon/ctxd/detect/outdoor"
	"github.com/aethermon/ctxd/detect/underground"
	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/rules"
	"github.com/aethermon/ctxd/signal"
	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

// Config bundles the tunables for one engine instance.
// Zero values are replaced with the package defaults.
type Config struct {
	Window      *params.WindowConfig
	Walk        *params.WalkConfig
	Underground *params.UndergroundConfig
	Cooking     *params.CookingConfig
	Outdoor     *params.OutdoorConfig
	Fork        *params.ForkConfig
	Rules       []rules.Rule
	MemoSize    int
}

func (c Config) withDefaults() Config {
	if c.Window == nil {
		v := params.DefaultWindowConfig
		c.Window = &v
	}
	if c.Walk == nil {
		v := params.DefaultWalkConfig
		c.Walk = &v
	}
	if c.Underground == nil {
		v := params.DefaultUndergroundConfig
		c.Underground = &v
	}
	if c.Cooking == nil {
		v := params.DefaultCookingConfig
		c.Cooking = &v
	}
	if c.Outdoor == nil {
		v := params.DefaultOutdoorConfig
		c.Outdoor = &v
	}
	if c.Fork == nil {
		v := params.DefaultForkConfig
		c.Fork = &v
	}
	if c.Rules == nil {
		c.Rules = rules.DefaultRules
	}
	if c.MemoSize == 0 {
		c.MemoSize = params.DefaultRuleMemoSize
	}
	return c
}

// Decision is the outcome of one tick.
type Decision struct {
	Label      label.Label
	Fork       Fork
	Confidence float64
	Cooking    cooking.Result
}

// Engine classifies a single tracker's ticks. It owns all mutable state
// (signal window, cooking detector, hysteresis clock, last label) and is
// safe for use from multiple goroutines.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	rules   *rules.Evaluator
	window  *signal.Window
	cooking *cooking.Detector

	lastStrongUnderground time.Time
	lastLabel             label.Label

	feed transitionFeed
}

// New returns an engine with cfg's nil fields filled from defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:     cfg,
		rules:   rules.NewEvaluator(cfg.Rules, cfg.MemoSize),
		window:  signal.NewWindow(*cfg.Window),
		cooking: cooking.NewDetector(cfg.Cooking),
	}
}

// Evaluate classifies one tick. The snapshot carries the derived readings
// (speed, quality, wifi); extras carry the raw sensor values for the window
// and the cooking detector.
func (e *Engine) Evaluate(snap snapshot.Snapshot, x snapshot.Extras) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := signal.FromExtras(x); ok {
		e.window.Add(s)
	}

	if snap.Previous == "" {
		snap.Previous = e.lastLabel
	}

	d := Decision{Fork: e.fork(snap, x, *e.cfg.Fork)}
	switch d.Fork {
	case ForkUnderground:
		d.Label, d.Confidence = e.evalUnderground(snap, x)
	case ForkIndoor:
		d.Label, d.Cooking = e.evalIndoor(snap, x)
	case ForkOutdoor:
		d.Label = e.evalOutdoor(snap)
	}
	if d.Label == label.Unknown {
		d.Label = e.rules.Evaluate(snap)
	}

	if d.Label != e.lastLabel {
		e.feed.send(Transition{From: e.lastLabel, To: d.Label, Fork: d.Fork, At: x.Now})
		slog.Debug("context transition",
			"from", e.lastLabel, "to", d.Label, "fork", d.Fork.String())
	}
	e.lastLabel = d.Label
	return d
}

func (e *Engine) evalUnderground(snap snapshot.Snapshot, x snapshot.Extras) (label.Label, float64) {
	res, ok := underground.Classify(e.window, *e.cfg.Walk, e.cfg.Underground)
	if !ok {
		return e.rules.Evaluate(snap), 0
	}
	if res.Confidence >= e.cfg.Fork.StrongConfidence {
		e.lastStrongUnderground = x.Now
	}
	return res.Label, res.Confidence
}

func (e *Engine) evalIndoor(snap snapshot.Snapshot, x snapshot.Extras) (label.Label, cooking.Result) {
	res := e.cooking.Update(e.cookingTick(snap, x))
	if res.Active {
		return label.IndoorCooking, res
	}
	return e.rules.Evaluate(snap), res
}

func (e *Engine) evalOutdoor(snap snapshot.Snapshot) label.Label {
	speed, ok := snap.Movement.Speed()
	if !ok {
		return e.rules.Evaluate(snap)
	}
	l, ok := outdoor.Classify(speed, snap.Movement.WalkingSignature, snap.Previous, e.cfg.Outdoor)
	if !ok {
		return e.rules.Evaluate(snap)
	}
	return l
}

func (e *Engine) cookingTick(snap snapshot.Snapshot, x snapshot.Extras) cooking.Tick {
	t := cooking.Tick{
		Now:         x.Now,
		PM1:         x.PM1,
		PM25:        x.PM25,
		PM10:        x.PM10,
		HumidityPct: x.HumidityPct,
		TempC:       x.TempC,
		AtHome:      snap.Location.InsideHome || snap.Wifi.Home,
		Still:       !snap.Movement.Moving,
	}
	if speed, ok := snap.Movement.Speed(); ok && speed >= e.cfg.Fork.StationarySpeedMaxKmh {
		t.Still = false
	}
	if x.HomeBeacon != nil {
		t.Beacon = *x.HomeBeacon
	}
	if x.Hour != nil {
		t.MealTime = e.cfg.Cooking.IsMealHour(*x.Hour)
	} else {
		t.MealTime = e.cfg.Cooking.IsMealHour(snap.Time.Hour)
	}
	return t
}

// LastLabel returns the label of the most recent tick.
func (e *Engine) LastLabel() label.Label {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastLabel
}

// Reset clears all accumulated state: the window, the cooking detector,
// the hysteresis clock, and the last label.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.window.Reset()
	e.cooking.Reset()
	e.lastStrongUnderground = time.Time{}
	e.lastLabel = label.Unknown
}
