package params

import "time"

// WindowConfig bounds the raw IMU/barometer signal window.
type WindowConfig struct {
	// Span is how much trailing signal the window keeps. Samples older
	// than Span (relative to the newest sample) are evicted on insert.
	Span time.Duration
}

var DefaultWindowConfig = WindowConfig{
	Span: 8 * time.Second,
}

// WalkConfig tunes the walk-score estimator over the signal window.
// The autocorrelation path needs a decent sample rate; below that a coarse
// jump-rate heuristic substitutes.
type WalkConfig struct {
	// MinAutocorrRateHz is the estimated sample rate required for the
	// autocorrelation path.
	MinAutocorrRateHz float64
	// StepBandLowHz and StepBandHighHz bound the human step-frequency band
	// searched for a periodicity peak.
	StepBandLowHz  float64
	StepBandHighHz float64
	// WalkScoreThreshold is the normalized autocorrelation peak above which
	// walking is asserted.
	WalkScoreThreshold float64
	// JumpThreshold is the accel-magnitude sample-to-sample delta counted
	// as a "large jump" by the coarse heuristic.
	JumpThreshold float64
	// JumpVarianceScale normalizes magnitude variance in the coarse blend.
	JumpVarianceScale float64
}

var DefaultWalkConfig = WalkConfig{
	MinAutocorrRateHz:  15,
	StepBandLowHz:      1.0,
	StepBandHighHz:     2.5,
	WalkScoreThreshold: 0.35,
	JumpThreshold:      1.5,
	JumpVarianceScale:  4.0,
}
