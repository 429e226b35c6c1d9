package metrics

// EWMA is a plain exponentially-weighted moving average with a fixed
// smoothing factor. It is used as a slow-adapting "ambient normal" reference
// for spike detection, not as a rate meter: the first observation seeds the
// average so a fresh tracker doesn't spend half an hour climbing from zero.
type EWMA struct {
	alpha float64
	value float64
	seen  bool
}

// NewEWMA returns an EWMA with smoothing factor alpha in (0,1].
// At 1 Hz updates, alpha 0.02 half-adapts in roughly 25–30 minutes.
func NewEWMA(alpha float64) *EWMA {
	return &EWMA{alpha: alpha}
}

// Update folds v into the average and returns the new value.
func (e *EWMA) Update(v float64) float64 {
	if !e.seen {
		e.value = v
		e.seen = true
		return e.value
	}
	e.value += e.alpha * (v - e.value)
	return e.value
}

// Value returns the current average, ok=false before any observation.
func (e *EWMA) Value() (v float64, ok bool) {
	return e.value, e.seen
}

// Reset returns the average to its unseeded state.
func (e *EWMA) Reset() {
	e.value = 0
	e.seen = false
}
