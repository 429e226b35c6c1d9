// Package fence resolves raw coordinates against configured circular
// geofences (home, work) into the location hints the rule engine consumes.
package fence

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/aethermon/ctxd/types/snapshot"
)

// Fence is a circle on the globe. Center is lng/lat, per orb convention.
type Fence struct {
	Name    string
	Center  orb.Point
	RadiusM float64
}

// Contains reports whether pt falls inside the fence.
func (f Fence) Contains(pt orb.Point) bool {
	return geo.Distance(f.Center, pt) <= f.RadiusM
}

// Set holds a tracker's configured fences.
type Set struct {
	Home *Fence
	Work *Fence
}

// Locate resolves pt into rule-engine location hints, preserving quality.
// A nil fence never matches.
func (s Set) Locate(pt orb.Point, quality snapshot.GPSQuality) snapshot.Location {
	loc := snapshot.Location{GPSQuality: quality}
	if s.Home != nil && s.Home.Contains(pt) {
		loc.InsideHome = true
	}
	if s.Work != nil && s.Work.Contains(pt) {
		loc.InsideWork = true
	}
	return loc
}
