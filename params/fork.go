package params

import (
	"time"

	"github.com/aethermon/ctxd/common"
)

// ForkConfig tunes the per-tick regime selection (UNDERGROUND / INDOOR /
// OUTDOOR) and its exit hysteresis.
type ForkConfig struct {
	// GPSLossDuration: seconds without a usable fix before assuming
	// underground.
	GPSLossDuration time.Duration
	// UndergroundExitHysteresis keeps the fork locked underground briefly
	// after GPS recovers, so tunnel mouths don't flap.
	UndergroundExitHysteresis time.Duration
	// StrongConfidence: underground classifications at or above refresh the
	// hysteresis timestamp.
	StrongConfidence float64
	// StationarySpeedMaxKmh bounds the indoor-proxy stationarity check.
	StationarySpeedMaxKmh float64
}

var DefaultForkConfig = ForkConfig{
	GPSLossDuration:           25 * time.Second,
	UndergroundExitHysteresis: 12 * time.Second,
	StrongConfidence:          0.55,
	StationarySpeedMaxKmh:     common.SpeedOfStillMaxKmh,
}
