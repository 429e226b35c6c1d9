package rules

import (
	"github.com/aethermon/ctxd/common"
	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

// DefaultRules is the rule set shipped with the engine. Priorities are
// spaced by tens so deployments can wedge site-specific rules in between
// without renumbering. The priority-0 catch-all is the terminal rule the
// engine's error contract requires; don't remove it.
var DefaultRules = []Rule{
	{
		ID:          "car-bluetooth",
		Name:        "Car Bluetooth",
		Description: "Associated with the car's head unit and moving: driving.",
		Priority:    100,
		Conditions: Conditions{
			Connectivity: &ConnectivityCondition{CarBluetooth: snapshot.Bool(true)},
			Movement:     &MovementCondition{Moving: snapshot.Bool(true)},
		},
		Result: label.Driving,
	},
	{
		ID:          "sticky-driving",
		Name:        "Sticky driving",
		Description: "Stop-and-go below cycling speeds keeps a driver a driver.",
		Priority:    90,
		Conditions: Conditions{
			Context: &ContextCondition{PreviousPrefix: string(label.Driving)},
			Movement: &MovementCondition{
				MaxSpeedKmh:              snapshot.Float(common.SpeedOfCyclingMinKmh),
				RequiresWalkingSignature: snapshot.Bool(false),
			},
		},
		Result: label.Driving,
	},
	{
		ID:          "fast-no-gait",
		Name:        "Fast without gait",
		Description: "Driving speeds without a walking signature.",
		Priority:    80,
		Conditions: Conditions{
			Movement: &MovementCondition{
				MinSpeedKmh:              snapshot.Float(common.SpeedOfDrivingMinKmh),
				RequiresWalkingSignature: snapshot.Bool(false),
			},
		},
		Result: label.Driving,
	},
	{
		ID:          "cycling-band",
		Name:        "Cycling band",
		Description: "Cycling speeds without a walking signature.",
		Priority:    70,
		Conditions: Conditions{
			Movement: &MovementCondition{
				MinSpeedKmh:              snapshot.Float(common.SpeedOfCyclingMinKmh),
				MaxSpeedKmh:              snapshot.Float(common.SpeedOfCyclingMaxKmh),
				RequiresWalkingSignature: snapshot.Bool(false),
			},
		},
		Result: label.OutdoorCycling,
	},
	{
		ID:          "walking-band",
		Name:        "Walking band",
		Description: "Walking speeds with a walking signature.",
		Priority:    60,
		Conditions: Conditions{
			Movement: &MovementCondition{
				MinSpeedKmh:              snapshot.Float(common.SpeedOfWalkingMinKmh),
				MaxSpeedKmh:              snapshot.Float(common.SpeedOfWalkingMaxKmh),
				RequiresWalkingSignature: snapshot.Bool(true),
			},
		},
		Result: label.OutdoorWalking,
	},
	{
		ID:          "jogging-band",
		Name:        "Jogging band",
		Description: "Jogging speeds with a walking signature.",
		Priority:    55,
		Conditions: Conditions{
			Movement: &MovementCondition{
				MinSpeedKmh:              snapshot.Float(common.SpeedOfWalkingMaxKmh),
				MaxSpeedKmh:              snapshot.Float(common.SpeedOfJoggingMaxKmh),
				RequiresWalkingSignature: snapshot.Bool(true),
			},
		},
		Result: label.OutdoorJogging,
	},
	{
		ID:          "at-work",
		Name:        "At work",
		Description: "On the work network or inside the work fence.",
		Priority:    50,
		Conditions: Conditions{
			Wifi: &WifiCondition{Work: snapshot.Bool(true)},
		},
		Result: label.IndoorAtWork,
	},
	{
		ID:          "at-work-fence",
		Name:        "At work by fence",
		Priority:    49,
		Conditions: Conditions{
			Location: &LocationCondition{InsideWork: snapshot.Bool(true)},
		},
		Result: label.IndoorAtWork,
	},
	{
		ID:          "at-home",
		Name:        "At home",
		Description: "On the home network.",
		Priority:    45,
		Conditions: Conditions{
			Wifi: &WifiCondition{Home: snapshot.Bool(true)},
		},
		Result: label.IndoorAtHome,
	},
	{
		ID:          "at-home-fence",
		Name:        "At home by fence",
		Priority:    44,
		Conditions: Conditions{
			Location: &LocationCondition{InsideHome: snapshot.Bool(true)},
		},
		Result: label.IndoorAtHome,
	},
	{
		ID:          "known-network",
		Name:        "Known network",
		Description: "A known Wi-Fi network is indoors somewhere familiar.",
		Priority:    40,
		Conditions: Conditions{
			Wifi: &WifiCondition{Known: snapshot.Bool(true)},
		},
		Result: label.Indoor,
	},
	{
		ID:          "open-air",
		Name:        "Open air",
		Description: "Good GPS and moving: outside, doing something.",
		Priority:    30,
		Conditions: Conditions{
			Location: &LocationCondition{GPSQuality: gpsQuality(snapshot.GPSQualityGood)},
			Movement: &MovementCondition{Moving: snapshot.Bool(true)},
		},
		Result: label.Outdoor,
	},
	{
		ID:       "catch-all",
		Name:     "Catch-all",
		Priority: 0,
		Result:   label.Unknown,
	},
}

func gpsQuality(q snapshot.GPSQuality) *snapshot.GPSQuality { return &q }
