/*
Package rules is the declarative fallback classifier: a priority-ordered
conjunctive condition matcher over the sensor snapshot. It labels what the
specialized detectors decline (Wi-Fi and time-of-day indoor labels, weather
gating, the sticky-driving backstop).

Rules are immutable configuration. There is no implicit fallback: a rule set
without a terminal catch-all is a setup error the caller owns (DefaultRules
ships one at priority 0).
*/
package rules

import (
	"sort"

	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

// Rule maps a conjunctive condition set to a result label.
// Higher priority wins; equal priorities keep list order.
type Rule struct {
	ID          string
	Name        string
	Description string
	Priority    int
	Conditions  Conditions
	Result      label.Label
}

// Conditions is the predicate set of a rule. A nil group, or a nil field
// within a group, is "don't care". All present predicates must hold.
type Conditions struct {
	Wifi         *WifiCondition
	Location     *LocationCondition
	Movement     *MovementCondition
	Time         *TimeCondition
	Connectivity *ConnectivityCondition
	Weather      *WeatherCondition
	Context      *ContextCondition
}

type WifiCondition struct {
	Home  *bool
	Work  *bool
	Known *bool
}

type LocationCondition struct {
	InsideHome *bool
	InsideWork *bool
	GPSQuality *snapshot.GPSQuality
}

// MovementCondition bounds are inclusive. RequiresWalkingSignature true
// demands an affirmative upstream verdict; false demands its absence
// (a false or missing verdict both satisfy it).
type MovementCondition struct {
	MinSpeedKmh              *float64
	MaxSpeedKmh              *float64
	Moving                   *bool
	RequiresWalkingSignature *bool
}

// TimeCondition hour bounds are inclusive and may wrap midnight:
// HourFrom 22, HourTo 5 means hour ≥ 22 or hour < 5.
type TimeCondition struct {
	HourFrom *int
	HourTo   *int
	Weekend  *bool
}

type ConnectivityCondition struct {
	MinCellularSignal *float64
	CarBluetooth      *bool
}

type WeatherCondition struct {
	Main           *string
	MinTempC       *float64
	MaxTempC       *float64
	MinHumidityPct *float64
	MaxHumidityPct *float64
}

// ContextCondition matches on the previously emitted label.
type ContextCondition struct {
	PreviousPrefix string
}

// Evaluate returns the result of the highest-priority rule whose every
// present condition matches the snapshot, or Unknown when none match.
// The sort is stable: equal priorities tie-break by list order.
func Evaluate(rules []Rule, snap snapshot.Snapshot) label.Label {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	for _, r := range ordered {
		if r.Conditions.match(snap) {
			return r.Result
		}
	}
	return label.Unknown
}

func (c Conditions) match(snap snapshot.Snapshot) bool {
	if c.Wifi != nil && !c.Wifi.match(snap.Wifi) {
		return false
	}
	if c.Location != nil && !c.Location.match(snap.Location) {
		return false
	}
	if c.Movement != nil && !c.Movement.match(snap.Movement) {
		return false
	}
	if c.Time != nil && !c.Time.match(snap.Time) {
		return false
	}
	if c.Connectivity != nil && !c.Connectivity.match(snap.Connectivity) {
		return false
	}
	if c.Weather != nil && !c.Weather.match(snap.Weather) {
		return false
	}
	if c.Context != nil && !c.Context.match(snap.Previous) {
		return false
	}
	return true
}

func (c WifiCondition) match(w snapshot.Wifi) bool {
	if c.Home != nil && w.Home != *c.Home {
		return false
	}
	if c.Work != nil && w.Work != *c.Work {
		return false
	}
	if c.Known != nil && w.Known != *c.Known {
		return false
	}
	return true
}

func (c LocationCondition) match(l snapshot.Location) bool {
	if c.InsideHome != nil && l.InsideHome != *c.InsideHome {
		return false
	}
	if c.InsideWork != nil && l.InsideWork != *c.InsideWork {
		return false
	}
	if c.GPSQuality != nil && l.GPSQuality != *c.GPSQuality {
		return false
	}
	return true
}

func (c MovementCondition) match(m snapshot.Movement) bool {
	if c.MinSpeedKmh != nil || c.MaxSpeedKmh != nil {
		speed, ok := m.Speed()
		if !ok {
			return false
		}
		if c.MinSpeedKmh != nil && speed < *c.MinSpeedKmh {
			return false
		}
		if c.MaxSpeedKmh != nil && speed > *c.MaxSpeedKmh {
			return false
		}
	}
	if c.Moving != nil && m.Moving != *c.Moving {
		return false
	}
	if c.RequiresWalkingSignature != nil {
		if *c.RequiresWalkingSignature != m.HasWalkingSignature() {
			return false
		}
	}
	return true
}

func (c TimeCondition) match(t snapshot.TimeOfDay) bool {
	if c.Weekend != nil && t.Weekend != *c.Weekend {
		return false
	}
	if c.HourFrom != nil && c.HourTo != nil {
		from, to := *c.HourFrom, *c.HourTo
		if from > to {
			// Wraps midnight.
			if !(t.Hour >= from || t.Hour < to) {
				return false
			}
		} else if t.Hour < from || t.Hour > to {
			return false
		}
	} else if c.HourFrom != nil && t.Hour < *c.HourFrom {
		return false
	} else if c.HourTo != nil && t.Hour > *c.HourTo {
		return false
	}
	return true
}

func (c ConnectivityCondition) match(conn snapshot.Connectivity) bool {
	if c.MinCellularSignal != nil {
		if conn.CellularSignal == nil || *conn.CellularSignal < *c.MinCellularSignal {
			return false
		}
	}
	if c.CarBluetooth != nil {
		got := conn.CarBluetooth != nil && *conn.CarBluetooth
		if got != *c.CarBluetooth {
			return false
		}
	}
	return true
}

func (c WeatherCondition) match(w *snapshot.Weather) bool {
	if w == nil {
		return false
	}
	if c.Main != nil && w.Main != *c.Main {
		return false
	}
	if c.MinTempC != nil && (w.TempC == nil || *w.TempC < *c.MinTempC) {
		return false
	}
	if c.MaxTempC != nil && (w.TempC == nil || *w.TempC > *c.MaxTempC) {
		return false
	}
	if c.MinHumidityPct != nil && (w.HumidityPct == nil || *w.HumidityPct < *c.MinHumidityPct) {
		return false
	}
	if c.MaxHumidityPct != nil && (w.HumidityPct == nil || *w.HumidityPct > *c.MaxHumidityPct) {
		return false
	}
	return true
}

func (c ContextCondition) match(previous label.Label) bool {
	return previous.HasPrefix(c.PreviousPrefix)
}
