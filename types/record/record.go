// Package record defines the classified-tick output written by the
// pipeline and consumed by exporters.
package record

import (
	"time"

	"github.com/aethermon/ctxd/types/label"
)

// Record is one classified tick.
type Record struct {
	TrackerID string    `json:"trackerId"`
	Time      time.Time `json:"time"`

	Label        label.Label `json:"label"`
	Fork         string      `json:"fork"`
	Confidence   float64     `json:"confidence,omitempty"`
	CookingState string      `json:"cookingState,omitempty"`

	SpeedKmh *float64 `json:"speedKmh,omitempty"`
	PM25     *float64 `json:"pm25,omitempty"`
	PM10     *float64 `json:"pm10,omitempty"`
}
