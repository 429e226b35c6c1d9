package params

import "github.com/aethermon/ctxd/common"

// OutdoorConfig holds the outdoor speed classifier's breakpoints, km/h.
type OutdoorConfig struct {
	// DrivingMinKmh: at or above, without a walking signature, it's a car.
	DrivingMinKmh float64
	// DrivingStickyMaxKmh: below this, with a previous Driving label and no
	// walking signature, the car is assumed stopped at a light.
	DrivingStickyMaxKmh float64
	// DrivingSureKmh: at or above, it's a car even if the step detector
	// thinks otherwise (engine vibration fakes gait at highway speed).
	DrivingSureKmh float64

	CyclingMinKmh float64

	WalkingMinKmh float64
	WalkingMaxKmh float64
	JoggingMaxKmh float64
}

var DefaultOutdoorConfig = OutdoorConfig{
	DrivingMinKmh:       common.SpeedOfDrivingMinKmh,
	DrivingStickyMaxKmh: common.SpeedOfDrivingCrawlKmh,
	DrivingSureKmh:      common.SpeedOfDrivingSureKmh,

	CyclingMinKmh: common.SpeedOfCyclingMinKmh,

	WalkingMinKmh: common.SpeedOfWalkingMinKmh,
	WalkingMaxKmh: common.SpeedOfWalkingMaxKmh,
	JoggingMaxKmh: common.SpeedOfJoggingMaxKmh,
}
