package outdoor

import (
	"testing"

	"github.com/aethermon/ctxd/types/label"
)

func b(v bool) *bool { return &v }

func TestClassifyScenarios(t *testing.T) {
	cases := []struct {
		name     string
		speed    float64
		sig      *bool
		previous label.Label
		want     label.Label
		wantOK   bool
	}{
		{"jogging", 10, b(true), "", label.OutdoorJogging, true},
		{"cycling", 18, b(false), "", label.OutdoorCycling, true},
		{"cycling no verdict", 18, nil, "", label.OutdoorCycling, true},
		{"sticky driving at a light", 6, b(false), label.Driving, "", false},
		{"sticky driving crawl", 2, b(false), label.Driving, label.Driving, true},
		{"sticky driving nil verdict", 2, nil, label.Driving, label.Driving, true},
		{"walking", 5, b(true), "", label.OutdoorWalking, true},
		{"same speed no signature declines", 5, b(false), "", "", false},
		{"driving gate", 22, b(false), "", label.Driving, true},
		{"highway immunization", 30, b(true), "", label.Driving, true},
		{"immunization boundary", 28, b(true), "", label.Driving, true},
		{"slow stroll declines", 1, b(true), "", "", false},
		{"fast jog with signature", 12, b(true), "", label.OutdoorJogging, true},
		{"too fast to jog, unsignatured, cycling", 13, b(false), "", label.OutdoorCycling, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Classify(c.speed, c.sig, c.previous, nil)
			if ok != c.wantOK || got != c.want {
				t.Fatalf("Classify(%v, sig=%v, prev=%q) = (%q, %v), want (%q, %v)",
					c.speed, c.sig, c.previous, got, ok, c.want, c.wantOK)
			}
		})
	}
}

// Once the driving threshold is crossed without a walking signature, no
// higher speed may regress to cycling.
func TestSpeedMonotonicity(t *testing.T) {
	crossed := false
	for speed := 0.0; speed <= 60; speed += 0.5 {
		got, ok := Classify(speed, b(false), "", nil)
		if ok && got == label.Driving {
			crossed = true
		}
		if crossed && ok && got == label.OutdoorCycling {
			t.Fatalf("regressed to cycling at %v km/h after driving", speed)
		}
	}
	if !crossed {
		t.Fatal("driving never asserted")
	}
}

func TestImmunizationIgnoresSignature(t *testing.T) {
	for speed := 28.0; speed <= 120; speed += 4 {
		for _, sig := range []*bool{nil, b(false), b(true)} {
			got, ok := Classify(speed, sig, "", nil)
			if !ok || got != label.Driving {
				t.Fatalf("speed %v sig %v: got (%q, %v), want Driving", speed, sig, got, ok)
			}
		}
	}
}
