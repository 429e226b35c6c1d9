package engine

import (
	"time"

	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/types/snapshot"
)

// Fork is the coarse regime selected before fine-grained classification.
type Fork int

const (
	ForkOutdoor Fork = iota
	ForkIndoor
	ForkUnderground
)

func (f Fork) String() string {
	switch f {
	case ForkUnderground:
		return "UNDERGROUND"
	case ForkIndoor:
		return "INDOOR"
	case ForkOutdoor:
		return "OUTDOOR"
	}
	return "OUTDOOR"
}

// fork decides the regime for the current tick.
//
// GPS starvation or a reported-poor fix means underground; so does a recent
// strong underground classification, briefly, so tunnel mouths don't flap.
// A not-good fix while stationary is the indoor proxy: genuine open-air GPS
// is normally "good". Everything else is outdoors.
func (e *Engine) fork(snap snapshot.Snapshot, x snapshot.Extras, cfg params.ForkConfig) Fork {
	if x.GPSGapSeconds != nil &&
		time.Duration(*x.GPSGapSeconds*float64(time.Second)) >= cfg.GPSLossDuration {
		return ForkUnderground
	}
	if snap.Location.GPSQuality == snapshot.GPSQualityPoor {
		return ForkUnderground
	}
	if !e.lastStrongUnderground.IsZero() &&
		x.Now.Sub(e.lastStrongUnderground) < cfg.UndergroundExitHysteresis {
		return ForkUnderground
	}
	if snap.Location.GPSQuality != snapshot.GPSQualityGood && e.stationary(snap, cfg) {
		return ForkIndoor
	}
	return ForkOutdoor
}

func (e *Engine) stationary(snap snapshot.Snapshot, cfg params.ForkConfig) bool {
	if snap.Movement.Moving {
		return false
	}
	speed, ok := snap.Movement.Speed()
	if !ok {
		// No speed reading and no moving flag reads as still.
		return true
	}
	return speed < cfg.StationarySpeedMaxKmh
}
