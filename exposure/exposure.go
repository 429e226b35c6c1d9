// Package exposure attributes time and inhaled PM2.5 dose to context
// labels. Dose bookkeeping uses exact decimals so long accumulation runs
// don't drift the way float summation does.
package exposure

import (
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/aethermon/ctxd/types/label"
)

type bucket struct {
	duration time.Duration
	// dose integrates concentration over minutes: µg/m³ · min.
	dose    decimal.Decimal
	pm25    []float64
	samples int
}

// Accumulator aggregates per-label exposure. Safe for concurrent use.
type Accumulator struct {
	mu      sync.Mutex
	buckets map[label.Label]*bucket
}

func NewAccumulator() *Accumulator {
	return &Accumulator{buckets: map[label.Label]*bucket{}}
}

// Add attributes one classified interval to l. pm25 may be nil when the
// particulate sensor had no reading; the time still counts, the dose does
// not.
func (a *Accumulator) Add(l label.Label, d time.Duration, pm25 *float64) {
	if l == "" {
		l = label.Unknown
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.buckets[l]
	if b == nil {
		b = &bucket{dose: decimal.Zero}
		a.buckets[l] = b
	}
	b.duration += d
	b.samples++
	if pm25 != nil {
		b.pm25 = append(b.pm25, *pm25)
		b.dose = b.dose.Add(
			decimal.NewFromFloat(*pm25).Mul(decimal.NewFromFloat(d.Minutes())))
	}
}

// LabelExposure is one label's share of the accumulation window.
type LabelExposure struct {
	Label    label.Label
	Duration time.Duration
	// DoseUgM3Min is the time-integrated PM2.5 concentration, µg/m³ · min.
	DoseUgM3Min decimal.Decimal
	MeanPM25    float64
	MedianPM25  float64
	Samples     int
}

// Report summarizes the buckets, heaviest exposure time first.
func (a *Accumulator) Report() []LabelExposure {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]LabelExposure, 0, len(a.buckets))
	for l, b := range a.buckets {
		e := LabelExposure{
			Label:       l,
			Duration:    b.duration,
			DoseUgM3Min: b.dose,
			Samples:     b.samples,
		}
		if len(b.pm25) > 0 {
			e.MeanPM25, _ = stats.Mean(b.pm25)
			e.MedianPM25, _ = stats.Median(b.pm25)
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Reset drops all buckets.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buckets = map[label.Label]*bucket{}
}
