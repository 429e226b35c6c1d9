package label

import (
	"regexp"
	"strings"
)

// Label is the short context string inferred for a sensor tick,
// e.g. "Driving" or "Indoor Cooking". It is what exposure minutes
// get grouped by downstream, so the exact strings are contract.
type Label string

const (
	Unknown Label = "Unknown"

	Driving        Label = "Driving"
	OutdoorWalking Label = "Outdoor walking"
	OutdoorJogging Label = "Outdoor jogging"
	OutdoorCycling Label = "Outdoor cycling"
	Outdoor        Label = "Outdoor"

	WalkPlatform         Label = "Walk platform"
	StandPlatform        Label = "Stand platform"
	UndergroundTransport Label = "Underground Transport"
	UndergroundStation   Label = "Underground Station"
	EscalatorUnderground Label = "Escalator underground"

	Indoor        Label = "Indoor"
	IndoorCooking Label = "Indoor Cooking"
	IndoorAtWork  Label = "Indoor at work"
	IndoorAtHome  Label = "Indoor at home"
)

var AllLabels = []Label{
	Unknown,
	Driving, OutdoorWalking, OutdoorJogging, OutdoorCycling, Outdoor,
	WalkPlatform, StandPlatform, UndergroundTransport, UndergroundStation, EscalatorUnderground,
	Indoor, IndoorCooking, IndoorAtWork, IndoorAtHome,
}

var (
	labelDriving     = regexp.MustCompile(`(?i)^driv`)
	labelOutdoor     = regexp.MustCompile(`(?i)^outdoor|^driv`)
	labelUnderground = regexp.MustCompile(`(?i)underground|platform|escalator`)
	labelIndoor      = regexp.MustCompile(`(?i)^indoor`)
)

// IsKnown returns true if the label is not Unknown (or empty).
func (l Label) IsKnown() bool {
	return l != Unknown && l != ""
}

// IsDriving reports whether the label is a driving label,
// including any future "Driving (...)" refinements.
func (l Label) IsDriving() bool { return labelDriving.MatchString(string(l)) }

// IsOutdoor reports whether the label is an open-air label.
func (l Label) IsOutdoor() bool { return labelOutdoor.MatchString(string(l)) }

// IsUnderground reports whether the label is one of the transit sub-labels.
func (l Label) IsUnderground() bool { return labelUnderground.MatchString(string(l)) }

// IsIndoor reports whether the label is an indoor label.
func (l Label) IsIndoor() bool { return labelIndoor.MatchString(string(l)) }

// HasPrefix matches the label against a prefix, case-sensitively.
// Rule context conditions use this for "previous label starts with" matching.
func (l Label) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(l), prefix)
}

// String implements the Stringer interface.
func (l Label) String() string {
	if l == "" {
		return string(Unknown)
	}
	return string(l)
}
