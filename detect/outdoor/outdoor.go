/*
Package outdoor classifies open-air movement from instantaneous speed, the
upstream walking-signature verdict, and the previously emitted label.

It is a pure function over breakpoints, with two deliberate asymmetries:
driving is sticky through stop-and-go crawls, and is asserted outright at
speeds no human sustains on foot, whatever the step detector claims.
*/
package outdoor

import (
	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/types/label"
)

// Classify returns the outdoor label for the tick, or ok=false when no
// breakpoint matches and the caller should fall through to the rule engine.
//
// Checks run in a fixed order; earlier checks win:
//  1. speed ≥ DrivingMinKmh without a walking signature → Driving
//  2. previous label Driving*, crawling without a signature → Driving
//  3. speed ≥ DrivingSureKmh → Driving, signature or not
//  4. [CyclingMinKmh, DrivingMinKmh) without a signature → Outdoor cycling
//  5. signature, [WalkingMinKmh, WalkingMaxKmh] → Outdoor walking
//  6. signature, (WalkingMaxKmh, JoggingMaxKmh] → Outdoor jogging
func Classify(speedKmh float64, walkingSignature *bool, previous label.Label, cfg *params.OutdoorConfig) (label.Label, bool) {
	if cfg == nil {
		cfg = &params.DefaultOutdoorConfig
	}
	sig := walkingSignature != nil && *walkingSignature

	if speedKmh >= cfg.DrivingMinKmh && !sig {
		return label.Driving, true
	}
	if previous.HasPrefix(string(label.Driving)) && speedKmh < cfg.DrivingStickyMaxKmh && !sig {
		return label.Driving, true
	}
	if speedKmh >= cfg.DrivingSureKmh {
		return label.Driving, true
	}
	if !sig && speedKmh >= cfg.CyclingMinKmh && speedKmh < cfg.DrivingMinKmh {
		return label.OutdoorCycling, true
	}
	if sig && speedKmh >= cfg.WalkingMinKmh && speedKmh <= cfg.WalkingMaxKmh {
		return label.OutdoorWalking, true
	}
	if sig && speedKmh > cfg.WalkingMaxKmh && speedKmh <= cfg.JoggingMaxKmh {
		return label.OutdoorJogging, true
	}
	return "", false
}
