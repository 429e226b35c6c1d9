// Package signal maintains the short trailing window of raw IMU and
// barometer samples and derives the windowed statistics the underground
// classifier feeds on.
package signal

import (
	"time"

	"github.com/aethermon/ctxd/types/snapshot"
)

// Sample is one raw motion/magnetic/pressure reading. Every field but Time
// is optional; a nil field means that sensor had nothing this tick.
type Sample struct {
	Time time.Time

	AccelX *float64
	AccelY *float64
	AccelZ *float64

	MagnetoX *float64
	MagnetoY *float64
	MagnetoZ *float64

	PressureHPa *float64
}

// HasAccel reports a complete accelerometer triple.
func (s Sample) HasAccel() bool {
	return s.AccelX != nil && s.AccelY != nil && s.AccelZ != nil
}

// HasMagneto reports a complete magnetometer triple.
func (s Sample) HasMagneto() bool {
	return s.MagnetoX != nil && s.MagnetoY != nil && s.MagnetoZ != nil
}

// FromExtras lifts the raw sensor fields of a tick's extras into a Sample.
// ok is false when the extras carry no raw signal at all.
func FromExtras(x snapshot.Extras) (s Sample, ok bool) {
	if !x.HasIMU() {
		return Sample{}, false
	}
	return Sample{
		Time:        x.Now,
		AccelX:      x.AccelX,
		AccelY:      x.AccelY,
		AccelZ:      x.AccelZ,
		MagnetoX:    x.MagnetoX,
		MagnetoY:    x.MagnetoY,
		MagnetoZ:    x.MagnetoZ,
		PressureHPa: x.PressureHPa,
	}, true
}
