package underground

import (
	"math"
	"testing"
	"time"

	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/signal"
	"github.com/aethermon/ctxd/types/label"
)

func f(v float64) *float64 { return &v }

// lcg is a tiny deterministic noise source in [-1,1]; real sensor noise is
// not autocorrelated, and neither is this.
type lcg struct{ state uint64 }

func (l *lcg) next() float64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return float64(int64(l.state>>11))/float64(1<<52) - 1
}

type gen struct {
	accel   func(sec float64) float64
	magneto func(sec float64) float64
	baro    func(sec float64) float64
}

func buildWindow(t *testing.T, rateHz float64, dur time.Duration, g gen) *signal.Window {
	t.Helper()
	w := signal.NewWindow(params.DefaultWindowConfig)
	t0 := time.Unix(1700000000, 0)
	n := int(dur.Seconds() * rateHz)
	step := time.Duration(float64(time.Second) / rateHz)
	for i := 0; i < n; i++ {
		sec := float64(i) / rateHz
		s := signal.Sample{Time: t0.Add(time.Duration(i) * step)}
		if g.accel != nil {
			s.AccelX = f(g.accel(sec))
			s.AccelY = f(0)
			s.AccelZ = f(9.81)
		}
		if g.magneto != nil {
			s.MagnetoX = f(g.magneto(sec))
			s.MagnetoY = f(0)
			s.MagnetoZ = f(45)
		}
		if g.baro != nil {
			s.PressureHPa = f(g.baro(sec))
		}
		w.Add(s)
	}
	return w
}

func classify(t *testing.T, w *signal.Window) Result {
	t.Helper()
	res, ok := Classify(w, params.DefaultWalkConfig, nil)
	if !ok {
		t.Fatal("classifier declined")
	}
	return res
}

func TestEmptyWindowDeclines(t *testing.T) {
	w := signal.NewWindow(params.DefaultWindowConfig)
	if _, ok := Classify(w, params.DefaultWalkConfig, nil); ok {
		t.Fatal("empty window produced a verdict")
	}
	if _, ok := Classify(nil, params.DefaultWalkConfig, nil); ok {
		t.Fatal("nil window produced a verdict")
	}
}

// Walking rhythm wins over elevated magnetics: someone pacing the platform
// next to an arriving train is still walking.
func TestWalkPrecedesMagnetic(t *testing.T) {
	noise := &lcg{state: 7}
	w := buildWindow(t, 25, 6*time.Second, gen{
		accel:   func(sec float64) float64 { return 2 * math.Sin(2*math.Pi*2*sec) },
		magneto: func(float64) float64 { return 120 * noise.next() },
	})
	res := classify(t, w)
	if res.Label != label.WalkPlatform {
		t.Fatalf("got %q (evidence %+v), want Walk platform", res.Label, res.Evidence)
	}
	if res.Evidence.WalkScore <= params.DefaultWalkConfig.WalkScoreThreshold {
		t.Fatalf("walk score %v not above threshold", res.Evidence.WalkScore)
	}
}

func TestTransportOnMagneticChurn(t *testing.T) {
	noise := &lcg{state: 3}
	w := buildWindow(t, 25, 6*time.Second, gen{
		accel:   func(float64) float64 { return 0.1 * noise.next() },
		magneto: func(float64) float64 { return 120 * noise.next() },
	})
	res := classify(t, w)
	if res.Label != label.UndergroundTransport {
		t.Fatalf("got %q (evidence %+v), want Underground Transport", res.Label, res.Evidence)
	}
	if res.Confidence < 0.55 {
		t.Fatalf("confidence %v, want a strong classification", res.Confidence)
	}
}

func TestEscalatorOnPressureDrift(t *testing.T) {
	noise := &lcg{state: 11}
	w := buildWindow(t, 25, 6*time.Second, gen{
		accel: func(float64) float64 { return 0.05 * noise.next() },
		baro:  func(sec float64) float64 { return 1013 - 0.05*sec },
	})
	res := classify(t, w)
	if res.Label != label.EscalatorUnderground {
		t.Fatalf("got %q (evidence %+v), want Escalator underground", res.Label, res.Evidence)
	}
	if !res.Evidence.BaroOK {
		t.Fatal("baro evidence missing")
	}
}

func TestStationOnMidMagnetics(t *testing.T) {
	noise := &lcg{state: 5}
	mnoise := &lcg{state: 13}
	w := buildWindow(t, 25, 6*time.Second, gen{
		accel:   func(float64) float64 { return 0.05 * noise.next() },
		magneto: func(float64) float64 { return 25 * mnoise.next() },
	})
	res := classify(t, w)
	if res.Label != label.UndergroundStation {
		t.Fatalf("got %q (evidence %+v), want Underground Station", res.Label, res.Evidence)
	}
}

func TestStandPlatformOnQuiet(t *testing.T) {
	noise := &lcg{state: 17}
	mnoise := &lcg{state: 23}
	w := buildWindow(t, 25, 6*time.Second, gen{
		accel:   func(float64) float64 { return 0.2 * noise.next() },
		magneto: func(float64) float64 { return 4 * mnoise.next() },
	})
	res := classify(t, w)
	if res.Label != label.StandPlatform {
		t.Fatalf("got %q (evidence %+v), want Stand platform", res.Label, res.Evidence)
	}
}
