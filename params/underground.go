package params

// UndergroundConfig holds the fixed thresholds of the underground
// sub-classifier. These are empirically chosen policy values; don't retune
// them without a labeled ride to validate against.
//
// Units: accelerometer std in m/s², magnetometer std in µT, pressure std in
// hPa, pressure slope in hPa/s.
type UndergroundConfig struct {
	// AccelStdWalk: accel energy alone asserting a walking platform.
	AccelStdWalk float64
	// AccelStdModerate caps accel energy for the transport/escalator checks.
	AccelStdModerate float64
	// AccelStdLow bounds "basically still" for the stand-platform check.
	AccelStdLow float64
	// AccelStdVeryLow bounds "dead still" for the station check.
	AccelStdVeryLow float64

	// MagnetoStdTransport: traction-motor magnetic churn of a moving train.
	MagnetoStdTransport float64
	// MagnetoStdStationLow/High bound the mid-range magnetic band of a
	// station hall (powered infrastructure, no traction surges).
	MagnetoStdStationLow  float64
	MagnetoStdStationHigh float64
	// MagnetoStdLow bounds quiet magnetics for the stand-platform check.
	MagnetoStdLow float64

	// BaroStdEscalator and BaroSlopeEscalator detect the steady pressure
	// drift of a vertical transition.
	BaroStdEscalator   float64
	BaroSlopeEscalator float64

	// DefaultConfidence is emitted when no check matched and the classifier
	// falls back to a stand-platform guess.
	DefaultConfidence float64
}

var DefaultUndergroundConfig = UndergroundConfig{
	AccelStdWalk:     1.5,
	AccelStdModerate: 0.8,
	AccelStdLow:      0.25,
	AccelStdVeryLow:  0.12,

	MagnetoStdTransport:   18.0,
	MagnetoStdStationLow:  6.0,
	MagnetoStdStationHigh: 18.0,
	MagnetoStdLow:         6.0,

	BaroStdEscalator:   0.05,
	BaroSlopeEscalator: 0.02,

	DefaultConfidence: 0.3,
}
