package rules

import (
	"testing"

	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

func moving(speedKmh float64, sig *bool) snapshot.Snapshot {
	return snapshot.Snapshot{
		Movement: snapshot.Movement{
			SpeedKmh:         snapshot.Float(speedKmh),
			Moving:           speedKmh >= 2,
			WalkingSignature: sig,
		},
	}
}

func TestHighestPriorityWins(t *testing.T) {
	rs := []Rule{
		{ID: "low", Priority: 1, Result: "Low"},
		{ID: "high", Priority: 10, Result: "High"},
	}
	if got := Evaluate(rs, snapshot.Snapshot{}); got != "High" {
		t.Fatalf("got %q, want High", got)
	}
}

func TestEqualPriorityKeepsListOrder(t *testing.T) {
	rs := []Rule{
		{ID: "first", Priority: 5, Result: "First"},
		{ID: "second", Priority: 5, Result: "Second"},
		{ID: "third", Priority: 9, Result: "Third"},
	}
	if got := Evaluate(rs, snapshot.Snapshot{}); got != "Third" {
		t.Fatalf("got %q, want Third", got)
	}
	rs = rs[:2]
	if got := Evaluate(rs, snapshot.Snapshot{}); got != "First" {
		t.Fatalf("got %q, want First (stable order)", got)
	}
}

func TestNoMatchReturnsUnknown(t *testing.T) {
	rs := []Rule{{
		ID:       "picky",
		Priority: 10,
		Conditions: Conditions{
			Wifi: &WifiCondition{Home: snapshot.Bool(true)},
		},
		Result: "Home",
	}}
	if got := Evaluate(rs, snapshot.Snapshot{}); got != label.Unknown {
		t.Fatalf("got %q, want Unknown", got)
	}
}

func TestStickyDrivingRule(t *testing.T) {
	snap := moving(2, snapshot.Bool(false))
	snap.Previous = label.Driving
	if got := Evaluate(DefaultRules, snap); got != label.Driving {
		t.Fatalf("got %q, want Driving (sticky)", got)
	}

	// With a walking signature the driver has left the car.
	snap.Movement.WalkingSignature = snapshot.Bool(true)
	if got := Evaluate(DefaultRules, snap); got == label.Driving {
		t.Fatal("sticky driving held despite a walking signature")
	}
}

func TestWalkingSignatureGate(t *testing.T) {
	with := moving(5, snapshot.Bool(true))
	if got := Evaluate(DefaultRules, with); got != label.OutdoorWalking {
		t.Fatalf("got %q, want Outdoor walking", got)
	}
	without := moving(5, snapshot.Bool(false))
	if got := Evaluate(DefaultRules, without); got == label.OutdoorWalking {
		t.Fatal("labeled walking without a signature")
	}
	absent := moving(5, nil)
	if got := Evaluate(DefaultRules, absent); got == label.OutdoorWalking {
		t.Fatal("labeled walking with no signature verdict")
	}
}

func TestHourRangeWrapsMidnight(t *testing.T) {
	rs := []Rule{{
		ID:       "night-shift",
		Priority: 10,
		Conditions: Conditions{
			Time: &TimeCondition{HourFrom: snapshot.Int(22), HourTo: snapshot.Int(5)},
		},
		Result: "Night",
	}}
	for _, hour := range []int{22, 23, 0, 4} {
		snap := snapshot.Snapshot{Time: snapshot.TimeOfDay{Hour: hour}}
		if got := Evaluate(rs, snap); got != "Night" {
			t.Fatalf("hour %d: got %q, want Night", hour, got)
		}
	}
	for _, hour := range []int{5, 12, 21} {
		snap := snapshot.Snapshot{Time: snapshot.TimeOfDay{Hour: hour}}
		if got := Evaluate(rs, snap); got == "Night" {
			t.Fatalf("hour %d matched a wrapped 22–5 range", hour)
		}
	}
}

func TestSpeedConditionRequiresAReading(t *testing.T) {
	rs := []Rule{{
		ID:       "speedy",
		Priority: 10,
		Conditions: Conditions{
			Movement: &MovementCondition{MinSpeedKmh: snapshot.Float(10)},
		},
		Result: "Fast",
	}}
	// No speed reading: the range predicate cannot hold. Zero is a real
	// speed, absence is not zero.
	if got := Evaluate(rs, snapshot.Snapshot{}); got != label.Unknown {
		t.Fatalf("got %q, want Unknown for missing speed", got)
	}
}

func TestDefaultRulesWifiLabels(t *testing.T) {
	work := snapshot.Snapshot{Wifi: snapshot.Wifi{Work: true}}
	if got := Evaluate(DefaultRules, work); got != label.IndoorAtWork {
		t.Fatalf("got %q, want Indoor at work", got)
	}
	home := snapshot.Snapshot{Wifi: snapshot.Wifi{Home: true}}
	if got := Evaluate(DefaultRules, home); got != label.IndoorAtHome {
		t.Fatalf("got %q, want Indoor at home", got)
	}
	known := snapshot.Snapshot{Wifi: snapshot.Wifi{Known: true}}
	if got := Evaluate(DefaultRules, known); got != label.Indoor {
		t.Fatalf("got %q, want Indoor", got)
	}
}

func TestDefaultRulesCatchAll(t *testing.T) {
	if got := Evaluate(DefaultRules, snapshot.Snapshot{}); got != label.Unknown {
		t.Fatalf("got %q, want the catch-all Unknown", got)
	}
}

func TestMemoizedEvaluatorAgrees(t *testing.T) {
	e := NewEvaluator(DefaultRules, 16)
	snaps := []snapshot.Snapshot{
		{},
		moving(18, snapshot.Bool(false)),
		{Wifi: snapshot.Wifi{Home: true}},
	}
	for _, snap := range snaps {
		want := Evaluate(DefaultRules, snap)
		if got := e.Evaluate(snap); got != want {
			t.Fatalf("memoized %q, direct %q", got, want)
		}
		// Second pass comes from the memo.
		if got := e.Evaluate(snap); got != want {
			t.Fatalf("cached %q, direct %q", got, want)
		}
	}
}
