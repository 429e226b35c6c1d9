// Package motion smooths raw GPS fixes into the speed and moving-state
// readings the classifier consumes. Raw consumer GPS jitters by meters
// between fixes; a naive delta-over-time speed flaps across the walking
// bands. The Kalman filter absorbs the jitter.
package motion

import (
	"log/slog"
	"time"

	"github.com/paulmach/orb"
	rkalman "github.com/regnull/kalman"

	"github.com/aethermon/ctxd/common"
	"github.com/aethermon/ctxd/types/snapshot"
)

// Smoother wraps a geodetic Kalman filter over a single tracker's fixes.
// The filter is lazily initialized at the first observed fix, anchored on
// its latitude.
type Smoother struct {
	filter *rkalman.GeoFilter
	last   time.Time

	speedMS  float64
	observed int
}

func newGeoFilter(latitude float64) *rkalman.GeoFilter {
	f, err := rkalman.NewGeoFilter(&rkalman.GeoProcessNoise{
		BaseLat: latitude,
		// Meters per second a pedestrian-to-vehicle subject plausibly moves.
		DistancePerSecond: 1,
		// Meters per second squared the speed plausibly changes.
		SpeedPerSecond: 0.1,
	})
	if err != nil {
		slog.Error("kalman filter init failed", "error", err)
		return nil
	}
	return f
}

// Observe feeds one GPS fix. Speed is m/s, accuracy is the reported
// horizontal accuracy in meters. Fixes older than the last observation
// are dropped.
func (s *Smoother) Observe(t time.Time, pt orb.Point, speedMS, accuracyM float64) {
	if s.filter == nil {
		s.filter = newGeoFilter(pt.Lat())
		s.last = t
		s.speedMS = speedMS
		return
	}
	seconds := t.Sub(s.last).Seconds()
	if seconds <= 0 {
		return
	}
	s.last = t

	err := s.filter.Observe(seconds, &rkalman.GeoObserved{
		Lat:                pt.Lat(),
		Lng:                pt.Lon(),
		Speed:              speedMS,
		SpeedAccuracy:      0.2,
		HorizontalAccuracy: accuracyM,
		VerticalAccuracy:   2.0,
	})
	if err != nil {
		slog.Error("kalman observe failed", "error", err)
		return
	}
	s.observed++
	if est := s.filter.Estimate(); est != nil {
		s.speedMS = est.Speed
	}
}

// Point returns the filtered position, or the zero point before any
// estimate exists.
func (s *Smoother) Point() orb.Point {
	if s.filter == nil {
		return orb.Point{}
	}
	if est := s.filter.Estimate(); est != nil {
		return orb.Point{est.Lng, est.Lat}
	}
	return orb.Point{}
}

// Movement renders the smoothed state as classifier input. Before the
// filter has settled (fewer than two accepted fixes) the speed is reported
// unavailable rather than zero.
func (s *Smoother) Movement() snapshot.Movement {
	if s.filter == nil || s.observed < 1 {
		return snapshot.Movement{}
	}
	kmh := s.speedMS * common.MPSToKmh
	return snapshot.Movement{
		SpeedKmh: &kmh,
		Moving:   kmh >= common.SpeedOfStillMaxKmh,
	}
}
