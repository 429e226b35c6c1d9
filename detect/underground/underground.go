/*
Package underground classifies what a tracker without GPS is doing down
there, from windowed IMU statistics alone.

The five sub-labels split on three energies: body motion (accelerometer),
traction-motor magnetic churn (magnetometer), and vertical pressure drift
(barometer). Precedence is fixed; the walking check runs first so someone
pacing a platform next to an arriving train stays "Walk platform".
*/
package underground

import (
	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/signal"
	"github.com/aethermon/ctxd/types/label"
)

// Evidence carries the windowed statistics a classification was made from,
// for telemetry and offline accuracy review.
type Evidence struct {
	AccelStd     float64
	MagnetoStd   float64
	BaroStd      float64
	BaroSlope    float64
	WalkScore    float64
	SampleRateHz float64
	BaroOK       bool
}

// Result is a sub-label with its confidence and supporting evidence.
type Result struct {
	Label      label.Label
	Confidence float64
	Evidence   Evidence
}

// Classify runs the precedence chain over the window's statistics.
// ok is false when the window is empty or carries no usable motion signal;
// the caller falls through to the rule engine.
func Classify(w *signal.Window, walkCfg params.WalkConfig, cfg *params.UndergroundConfig) (Result, bool) {
	if cfg == nil {
		cfg = &params.DefaultUndergroundConfig
	}
	if w == nil || w.IsEmpty() {
		return Result{}, false
	}
	samples := w.Samples()

	ev := Evidence{}
	accelStd, accelOK := signal.AccelStd(samples)
	magnetoStd, magnetoOK := signal.MagnetoStd(samples)
	if !accelOK && !magnetoOK {
		return Result{}, false
	}
	ev.AccelStd = accelStd
	ev.MagnetoStd = magnetoStd
	if rate, ok := signal.SampleRateHz(samples); ok {
		ev.SampleRateHz = rate
	}
	walkScore, walking := signal.WalkScore(samples, walkCfg)
	ev.WalkScore = walkScore
	if std, slope, ok := signal.BaroStats(samples); ok {
		ev.BaroStd, ev.BaroSlope, ev.BaroOK = std, slope, true
	}

	// First match wins.
	if walking || accelStd >= cfg.AccelStdWalk {
		return Result{
			Label:      label.WalkPlatform,
			Confidence: confidence(walkScore/walkCfg.WalkScoreThreshold, accelStd/cfg.AccelStdWalk),
			Evidence:   ev,
		}, true
	}
	if magnetoOK && magnetoStd >= cfg.MagnetoStdTransport && accelStd < cfg.AccelStdModerate {
		return Result{
			Label:      label.UndergroundTransport,
			Confidence: confidence(magnetoStd/cfg.MagnetoStdTransport, 1-accelStd/cfg.AccelStdModerate),
			Evidence:   ev,
		}, true
	}
	if ev.BaroOK && accelStd < cfg.AccelStdModerate &&
		(ev.BaroStd >= cfg.BaroStdEscalator || abs(ev.BaroSlope) >= cfg.BaroSlopeEscalator) {
		return Result{
			Label:      label.EscalatorUnderground,
			Confidence: confidence(ev.BaroStd/cfg.BaroStdEscalator, abs(ev.BaroSlope)/cfg.BaroSlopeEscalator),
			Evidence:   ev,
		}, true
	}
	if accelStd < cfg.AccelStdVeryLow && magnetoOK &&
		magnetoStd >= cfg.MagnetoStdStationLow && magnetoStd < cfg.MagnetoStdStationHigh {
		return Result{
			Label:      label.UndergroundStation,
			Confidence: confidence(1-accelStd/cfg.AccelStdVeryLow, magnetoStd/cfg.MagnetoStdStationHigh),
			Evidence:   ev,
		}, true
	}
	if accelStd < cfg.AccelStdLow && (!magnetoOK || magnetoStd < cfg.MagnetoStdLow) {
		return Result{
			Label:      label.StandPlatform,
			Confidence: confidence(1-accelStd/cfg.AccelStdLow, 0.5),
			Evidence:   ev,
		}, true
	}

	// Nothing decisive. Call it standing, quietly.
	return Result{
		Label:      label.StandPlatform,
		Confidence: cfg.DefaultConfidence,
		Evidence:   ev,
	}, true
}

// confidence blends threshold exceedances into a clamped [0,1] score.
// A statistic exactly at its threshold contributes 0.5; twice the threshold
// contributes 1.
func confidence(ratios ...float64) float64 {
	if len(ratios) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range ratios {
		sum += r / 2
	}
	v := sum / float64(len(ratios))
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
