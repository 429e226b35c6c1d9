package signal

import (
	"math"

	"github.com/aethermon/ctxd/params"
	"github.com/montanaflynn/stats"
)

// WalkScore estimates how much the window's acceleration looks like rhythmic
// gait, normalized to [0,1]. Given a usable sample rate, it is the peak
// normalized autocorrelation of the acceleration magnitude over lags in the
// human step-frequency band. At low sample rates a coarse jump-rate heuristic
// substitutes. Walking is asserted above cfg.WalkScoreThreshold.
func WalkScore(samples []Sample, cfg params.WalkConfig) (score float64, walking bool) {
	mags := accelMagnitudes(samples)
	if len(mags) < 4 {
		return 0, false
	}

	rate, rateOK := SampleRateHz(samples)
	if rateOK && rate >= cfg.MinAutocorrRateHz {
		score = autocorrPeak(mags, rate, cfg.StepBandLowHz, cfg.StepBandHighHz)
	} else {
		score = jumpHeuristic(mags, cfg)
	}
	return score, score > cfg.WalkScoreThreshold
}

// autocorrPeak scans lags corresponding to [bandLowHz, bandHighHz] step
// frequencies for the best variance-normalized autocorrelation.
func autocorrPeak(mags []float64, rateHz, bandLowHz, bandHighHz float64) float64 {
	n := len(mags)
	mean, err := stats.Mean(stats.Float64Data(mags))
	if err != nil {
		return 0
	}
	centered := make([]float64, n)
	var variance float64
	for i, v := range mags {
		c := v - mean
		centered[i] = c
		variance += c * c
	}
	if variance < 1e-12 {
		return 0
	}

	// Shortest period first: a 2.5 Hz step is rate/2.5 samples long.
	lagLo := int(rateHz / bandHighHz)
	lagHi := int(rateHz / bandLowHz)
	if lagHi > n/2 {
		lagHi = n / 2
	}
	if lagLo < 1 {
		lagLo = 1
	}
	if lagLo >= lagHi {
		return 0
	}

	best := 0.0
	for lag := lagLo; lag <= lagHi; lag++ {
		var s float64
		for i := 0; i < n-lag; i++ {
			s += centered[i] * centered[i+lag]
		}
		r := s / variance
		if r > best {
			best = r
		}
	}
	return clamp01(best)
}

// jumpHeuristic blends the fraction of large sample-to-sample magnitude
// jumps with the magnitude variance. Crude, but it is all a ~1 Hz feed
// supports.
func jumpHeuristic(mags []float64, cfg params.WalkConfig) float64 {
	jumps := 0
	for i := 1; i < len(mags); i++ {
		if math.Abs(mags[i]-mags[i-1]) > cfg.JumpThreshold {
			jumps++
		}
	}
	jumpFrac := float64(jumps) / float64(len(mags)-1)

	variance, err := stats.Variance(stats.Float64Data(mags))
	if err != nil {
		return clamp01(0.6 * jumpFrac)
	}
	varScore := variance / cfg.JumpVarianceScale
	if varScore > 1 {
		varScore = 1
	}
	return clamp01(0.6*jumpFrac + 0.4*varScore)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
