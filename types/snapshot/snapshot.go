// Package snapshot defines the per-tick sensor snapshot consumed by the
// context classification engine. A snapshot is a point-in-time read of all
// sensor subsystems, constructed by the caller once per tick; the engine
// never mutates it.
//
// Fields that can be legitimately absent are pointers. A nil pointer means
// "feature unavailable" and is distinct from a zero reading: 0 km/h is a
// real speed, 0% humidity is a real (if suspicious) humidity.
package snapshot

import (
	"time"

	"github.com/aethermon/ctxd/types/label"
)

// GPSQuality is the location subsystem's coarse fix-quality verdict.
type GPSQuality string

const (
	GPSQualityUnknown GPSQuality = ""
	GPSQualityGood    GPSQuality = "good"
	GPSQualityPoor    GPSQuality = "poor"
)

// Wifi is the Wi-Fi detection collaborator's verdict for the current tick.
type Wifi struct {
	Home  bool `json:"home,omitempty"`
	Work  bool `json:"work,omitempty"`
	Known bool `json:"known,omitempty"`
}

// Location carries the geofence booleans and GPS quality. The inside* flags
// are computed upstream (see geo/fence); the engine only reads them.
type Location struct {
	InsideHome bool       `json:"insideHome,omitempty"`
	InsideWork bool       `json:"insideWork,omitempty"`
	GPSQuality GPSQuality `json:"gpsQuality,omitempty"`
}

// Movement is the motion subsystem's read.
// WalkingSignature is derived upstream from accelerometer step detection
// and is independent of GPS speed; nil means the detector had no verdict.
type Movement struct {
	SpeedKmh         *float64 `json:"speedKmh,omitempty"`
	Moving           bool     `json:"moving,omitempty"`
	WalkingSignature *bool    `json:"walkingSignature,omitempty"`
	DataQuality      *float64 `json:"dataQuality,omitempty"`
}

// Speed returns the reported speed in km/h, or 0 with ok=false when the
// motion subsystem reported nothing.
func (m Movement) Speed() (kmh float64, ok bool) {
	if m.SpeedKmh == nil {
		return 0, false
	}
	return *m.SpeedKmh, true
}

// HasWalkingSignature returns true only on an affirmative upstream verdict.
// Absent and false are deliberately indistinguishable here: every consumer
// treats "no signature" and "unknown" the same way.
func (m Movement) HasWalkingSignature() bool {
	return m.WalkingSignature != nil && *m.WalkingSignature
}

// TimeOfDay is the clock collaborator's read.
type TimeOfDay struct {
	Hour    int  `json:"hour"`
	Weekend bool `json:"weekend,omitempty"`
}

// Connectivity carries cellular signal strength (0..1) and the car
// Bluetooth association flag.
type Connectivity struct {
	CellularSignal *float64 `json:"cellularSignal,omitempty"`
	CarBluetooth   *bool    `json:"carBluetooth,omitempty"`
}

// Weather is the weather service's read, used only by rule predicates.
type Weather struct {
	Main        string   `json:"main,omitempty"`
	TempC       *float64 `json:"tempC,omitempty"`
	HumidityPct *float64 `json:"humidityPct,omitempty"`
}

// Snapshot is the full per-tick evaluation record.
type Snapshot struct {
	Wifi         Wifi         `json:"wifi"`
	Location     Location     `json:"location"`
	Movement     Movement     `json:"movement"`
	Time         TimeOfDay    `json:"time"`
	Connectivity Connectivity `json:"connectivity"`
	Weather      *Weather     `json:"weather,omitempty"`

	// Previous is the label the engine emitted on the prior tick.
	// The sticky-driving rule and context conditions read it.
	Previous label.Label `json:"previous,omitempty"`
}

// Extras is the optional enrichment passed alongside a Snapshot: raw IMU and
// barometer samples, particulate readings, and GPS-loss bookkeeping. Any
// field may be absent.
type Extras struct {
	Now time.Time `json:"now"`

	// GPSGapSeconds is the rolling "seconds since last usable fix"
	// maintained by the location collaborator.
	GPSGapSeconds *float64 `json:"gpsGapSeconds,omitempty"`

	AccelX *float64 `json:"ax,omitempty"`
	AccelY *float64 `json:"ay,omitempty"`
	AccelZ *float64 `json:"az,omitempty"`

	MagnetoX *float64 `json:"mx,omitempty"`
	MagnetoY *float64 `json:"my,omitempty"`
	MagnetoZ *float64 `json:"mz,omitempty"`

	PressureHPa *float64 `json:"pressureHPa,omitempty"`

	PM1         *float64 `json:"pm1,omitempty"`
	PM25        *float64 `json:"pm25,omitempty"`
	PM10        *float64 `json:"pm10,omitempty"`
	HumidityPct *float64 `json:"humidityPct,omitempty"`
	TempC       *float64 `json:"tempC,omitempty"`

	// HomeBeacon reports a known BLE beacon in range, a strong at-home hint
	// for the cooking detector.
	HomeBeacon *bool `json:"homeBeacon,omitempty"`

	Hour    *int          `json:"hour,omitempty"`
	Weekday *time.Weekday `json:"weekday,omitempty"`
}

// HasIMU reports whether the tick carries at least one raw accelerometer,
// magnetometer, or barometer reading worth appending to the signal window.
func (x Extras) HasIMU() bool {
	return x.AccelX != nil || x.AccelY != nil || x.AccelZ != nil ||
		x.MagnetoX != nil || x.MagnetoY != nil || x.MagnetoZ != nil ||
		x.PressureHPa != nil
}

// Bool returns a pointer to v. Convenient for literal optional fields.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
