package signal

import (
	"time"

	"github.com/aethermon/ctxd/params"
)

// Window is the append-only, time-bounded sample buffer. Entries older than
// the span (relative to the newest sample) are dropped on every insert.
// Eviction is monotonic FIFO by time; callers feed samples in tick order.
type Window struct {
	span    time.Duration
	samples []Sample
}

func NewWindow(cfg params.WindowConfig) *Window {
	return &Window{
		span:    cfg.Span,
		samples: []Sample{},
	}
}

// Add appends s and evicts everything older than the window span.
func (w *Window) Add(s Sample) {
	w.samples = append(w.samples, s)
	cut := s.Time.Add(-w.span)
	i := 0
	for ; i < len(w.samples); i++ {
		if !w.samples[i].Time.Before(cut) {
			break
		}
	}
	if i > 0 {
		w.samples = w.samples[i:]
	}
}

// Len returns the current number of samples.
func (w *Window) Len() int { return len(w.samples) }

// IsEmpty is useful for deciding whether the underground classifier has
// anything to say.
func (w *Window) IsEmpty() bool { return len(w.samples) == 0 }

// Samples returns the window contents in FIFO order. The slice is shared;
// callers read, they don't mutate.
func (w *Window) Samples() []Sample { return w.samples }

// Span returns the configured window span.
func (w *Window) Span() time.Duration { return w.span }

// Reset empties the window.
func (w *Window) Reset() { w.samples = w.samples[:0] }

// Timespan returns the time covered by the buffered samples.
func (w *Window) Timespan() time.Duration {
	if len(w.samples) < 2 {
		return 0
	}
	return w.samples[len(w.samples)-1].Time.Sub(w.samples[0].Time)
}
