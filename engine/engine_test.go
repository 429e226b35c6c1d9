package engine

import (
	"testing"
	"time"

	"github.com/aethermon/ctxd/detect/cooking"
	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

// lcg is a tiny deterministic noise source in [-1,1]; real sensor noise is
// not autocorrelated, and neither is this.
type lcg struct{ state uint64 }

func (l *lcg) next() float64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return float64(int64(l.state>>11))/float64(1<<52) - 1
}

func outdoorSnap(speedKmh float64, sig *bool, prev label.Label) snapshot.Snapshot {
	return snapshot.Snapshot{
		Location: snapshot.Location{GPSQuality: snapshot.GPSQualityGood},
		Movement: snapshot.Movement{
			SpeedKmh:         snapshot.Float(speedKmh),
			Moving:           speedKmh >= 2,
			WalkingSignature: sig,
		},
		Previous: prev,
	}
}

func TestOutdoorSpeedBands(t *testing.T) {
	cases := []struct {
		name  string
		speed float64
		sig   *bool
		prev  label.Label
		want  label.Label
	}{
		{"jogging with gait", 10, snapshot.Bool(true), "", label.OutdoorJogging},
		{"cycling without gait", 18, snapshot.Bool(false), "", label.OutdoorCycling},
		{"walking band", 5, snapshot.Bool(true), "", label.OutdoorWalking},
		{"driving speed", 40, snapshot.Bool(false), "", label.Driving},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(Config{})
			d := e.Evaluate(outdoorSnap(tc.speed, tc.sig, tc.prev), snapshot.Extras{Now: time.Unix(1700000000, 0)})
			if d.Fork != ForkOutdoor {
				t.Fatalf("fork %v, want outdoor", d.Fork)
			}
			if d.Label != tc.want {
				t.Fatalf("label %q, want %q", d.Label, tc.want)
			}
		})
	}
}

// A car stuck in traffic slows well into walking speeds. Without a walking
// signature the driving context must stick.
func TestSlowTrafficKeepsDriving(t *testing.T) {
	e := New(Config{})
	now := time.Unix(1700000000, 0)
	e.Evaluate(outdoorSnap(40, snapshot.Bool(false), ""), snapshot.Extras{Now: now})

	now = now.Add(time.Second)
	d := e.Evaluate(outdoorSnap(6, snapshot.Bool(false), ""), snapshot.Extras{Now: now})
	if d.Label != label.Driving {
		t.Fatalf("label %q at 6 km/h after driving, want %q", d.Label, label.Driving)
	}

	// A confirmed gait releases the hold.
	now = now.Add(time.Second)
	d = e.Evaluate(outdoorSnap(5, snapshot.Bool(true), ""), snapshot.Extras{Now: now})
	if d.Label != label.OutdoorWalking {
		t.Fatalf("label %q with walking signature, want %q", d.Label, label.OutdoorWalking)
	}
}

func TestGPSLossSelectsUndergroundFork(t *testing.T) {
	e := New(Config{})
	snap := snapshot.Snapshot{}
	x := snapshot.Extras{
		Now:           time.Unix(1700000000, 0),
		GPSGapSeconds: snapshot.Float(30),
	}
	d := e.Evaluate(snap, x)
	if d.Fork != ForkUnderground {
		t.Fatalf("fork %v after 30s GPS gap, want underground", d.Fork)
	}
}

func TestEmptyWindowUndergroundFallsThroughToRules(t *testing.T) {
	e := New(Config{})
	snap := snapshot.Snapshot{Wifi: snapshot.Wifi{Home: true}}
	x := snapshot.Extras{
		Now:           time.Unix(1700000000, 0),
		GPSGapSeconds: snapshot.Float(30),
	}
	d := e.Evaluate(snap, x)
	if d.Fork != ForkUnderground {
		t.Fatalf("fork %v, want underground", d.Fork)
	}
	if d.Label != label.IndoorAtHome {
		t.Fatalf("label %q with no window data, want the rule verdict %q", d.Label, label.IndoorAtHome)
	}
}

// feedTransport drives 25 Hz transport-signature samples (quiet accel,
// churning magnetics) through the engine with GPS lost, returning the last
// decision and the wall time after the run.
func feedTransport(e *Engine, start time.Time, dur time.Duration) (Decision, time.Time) {
	noise := &lcg{state: 7}
	mnoise := &lcg{state: 99}
	const rate = 25.0
	n := int(dur.Seconds() * rate)
	step := time.Duration(float64(time.Second) / rate)
	var d Decision
	now := start
	for i := 0; i < n; i++ {
		now = start.Add(time.Duration(i) * step)
		x := snapshot.Extras{
			Now:           now,
			GPSGapSeconds: snapshot.Float(30),
			AccelX:        snapshot.Float(0.1 * noise.next()),
			AccelY:        snapshot.Float(0),
			AccelZ:        snapshot.Float(9.81),
			MagnetoX:      snapshot.Float(120 * mnoise.next()),
			MagnetoY:      snapshot.Float(0),
			MagnetoZ:      snapshot.Float(45),
		}
		d = e.Evaluate(snapshot.Snapshot{}, x)
	}
	return d, now
}

func TestUndergroundTransportClassification(t *testing.T) {
	e := New(Config{})
	d, _ := feedTransport(e, time.Unix(1700000000, 0), 4*time.Second)
	if d.Label != label.UndergroundTransport {
		t.Fatalf("label %q, want %q", d.Label, label.UndergroundTransport)
	}
	if d.Confidence < 0.55 {
		t.Fatalf("confidence %v, want >= 0.55", d.Confidence)
	}
}

// After a strong underground verdict, a briefly recovered fix must not flip
// the fork: GPS comes back at a tunnel mouth seconds before the train dives
// again. After the hysteresis window the recovery is believed.
func TestUndergroundExitHysteresis(t *testing.T) {
	goodFix := snapshot.Snapshot{
		Location: snapshot.Location{GPSQuality: snapshot.GPSQualityGood},
	}

	e := New(Config{})
	_, last := feedTransport(e, time.Unix(1700000000, 0), 4*time.Second)
	d := e.Evaluate(goodFix, snapshot.Extras{Now: last.Add(5 * time.Second)})
	if d.Fork != ForkUnderground {
		t.Fatalf("fork %v 5s after a strong underground verdict, want underground", d.Fork)
	}

	e = New(Config{})
	_, last = feedTransport(e, time.Unix(1700000000, 0), 4*time.Second)
	d = e.Evaluate(goodFix, snapshot.Extras{Now: last.Add(15 * time.Second)})
	if d.Fork == ForkUnderground {
		t.Fatalf("fork still underground 15s after the last strong verdict")
	}
}

// Cooking end to end: stationary at home over lunch, PM2.5 ramps and holds.
// The label must move from the rule verdict to Indoor Cooking only once the
// episode confirms.
func TestIndoorCookingEndToEnd(t *testing.T) {
	e := New(Config{})
	now := time.Unix(1700000000, 0)
	snap := snapshot.Snapshot{
		Location: snapshot.Location{InsideHome: true},
		Movement: snapshot.Movement{Moving: false},
	}
	tick := func(pm float64) Decision {
		now = now.Add(time.Second)
		return e.Evaluate(snap, snapshot.Extras{
			Now:         now,
			PM25:        snapshot.Float(pm),
			HumidityPct: snapshot.Float(40),
			TempC:       snapshot.Float(21),
			Hour:        snapshot.Int(12),
		})
	}

	for i := 0; i < 600; i++ {
		if d := tick(10); d.Label != label.IndoorAtHome {
			t.Fatalf("label %q on clean air at home, want %q", d.Label, label.IndoorAtHome)
		}
	}

	pm := 10.0
	var episodeAt time.Time
	sawCooking := false
	for i := 0; i < 30; i++ {
		pm += 10
		d := tick(pm)
		if d.Cooking.State != cooking.StateIdle && episodeAt.IsZero() {
			episodeAt = now
		}
		if d.Label == label.IndoorCooking {
			t.Fatalf("cooking label %v into the ramp, before the confirm window", now.Sub(episodeAt))
		}
	}
	if episodeAt.IsZero() {
		t.Fatal("PM ramp never started an episode")
	}
	for i := 0; i < 200; i++ {
		pm += 3
		d := tick(pm)
		elapsed := now.Sub(episodeAt)
		if d.Label == label.IndoorCooking {
			sawCooking = true
			if elapsed < 180*time.Second {
				t.Fatalf("cooking at %v, before the 180s confirm", elapsed)
			}
		}
	}
	if !sawCooking {
		t.Fatal("confirmed cooking never surfaced as Indoor Cooking")
	}
}

func TestTransitionsAreEmitted(t *testing.T) {
	e := New(Config{})
	ch := make(chan Transition, 16)
	sub := e.SubscribeTransitions(ch)
	defer sub.Unsubscribe()

	now := time.Unix(1700000000, 0)
	e.Evaluate(outdoorSnap(40, snapshot.Bool(false), ""), snapshot.Extras{Now: now})

	select {
	case tr := <-ch:
		if tr.From != label.Unknown || tr.To != label.Driving {
			t.Fatalf("transition %+v, want Unknown -> Driving", tr)
		}
	case <-time.After(time.Second):
		t.Fatal("no transition delivered")
	}
}

func TestResetClearsState(t *testing.T) {
	e := New(Config{})
	feedTransport(e, time.Unix(1700000000, 0), 4*time.Second)
	if e.LastLabel() == label.Unknown {
		t.Fatal("expected a label before reset")
	}
	e.Reset()
	if e.LastLabel() != label.Unknown {
		t.Fatalf("last label %q after reset", e.LastLabel())
	}
	if got := e.window.Len(); got != 0 {
		t.Fatalf("window holds %d samples after reset", got)
	}
}

func TestRegistryReturnsSameEnginePerTracker(t *testing.T) {
	r := NewRegistry(Config{})
	defer r.Stop()
	a := r.For("ada")
	if b := r.For("ada"); a != b {
		t.Fatal("same tracker resolved to different engines")
	}
	if c := r.For("kit"); a == c {
		t.Fatal("distinct trackers share an engine")
	}
	if r.Len() != 2 {
		t.Fatalf("registry holds %d engines, want 2", r.Len())
	}
}
