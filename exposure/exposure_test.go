package exposure

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aethermon/ctxd/types/label"
)

func f(v float64) *float64 { return &v }

func TestDoseIntegration(t *testing.T) {
	a := NewAccumulator()
	// Ten minutes at 30 µg/m³, one minute at a time.
	for i := 0; i < 10; i++ {
		a.Add(label.IndoorCooking, time.Minute, f(30))
	}
	rep := a.Report()
	if len(rep) != 1 {
		t.Fatalf("%d buckets, want 1", len(rep))
	}
	e := rep[0]
	if e.Duration != 10*time.Minute {
		t.Fatalf("duration %v, want 10m", e.Duration)
	}
	if want := decimal.NewFromInt(300); !e.DoseUgM3Min.Equal(want) {
		t.Fatalf("dose %v, want %v", e.DoseUgM3Min, want)
	}
	if e.MeanPM25 != 30 || e.MedianPM25 != 30 {
		t.Fatalf("mean %v median %v, want 30/30", e.MeanPM25, e.MedianPM25)
	}
}

func TestMissingReadingCountsTimeNotDose(t *testing.T) {
	a := NewAccumulator()
	a.Add(label.Driving, time.Minute, f(12))
	a.Add(label.Driving, time.Minute, nil)
	e := a.Report()[0]
	if e.Duration != 2*time.Minute {
		t.Fatalf("duration %v, want 2m", e.Duration)
	}
	if want := decimal.NewFromInt(12); !e.DoseUgM3Min.Equal(want) {
		t.Fatalf("dose %v, want %v", e.DoseUgM3Min, want)
	}
	if e.Samples != 2 {
		t.Fatalf("samples %d, want 2", e.Samples)
	}
}

func TestReportOrdersByDuration(t *testing.T) {
	a := NewAccumulator()
	a.Add(label.Outdoor, 5*time.Minute, f(8))
	a.Add(label.IndoorAtHome, 45*time.Minute, f(6))
	a.Add("", time.Minute, nil)
	rep := a.Report()
	if len(rep) != 3 {
		t.Fatalf("%d buckets, want 3", len(rep))
	}
	if rep[0].Label != label.IndoorAtHome || rep[1].Label != label.Outdoor || rep[2].Label != label.Unknown {
		t.Fatalf("order %v %v %v", rep[0].Label, rep[1].Label, rep[2].Label)
	}
}

func TestReset(t *testing.T) {
	a := NewAccumulator()
	a.Add(label.Outdoor, time.Minute, f(8))
	a.Reset()
	if got := a.Report(); len(got) != 0 {
		t.Fatalf("%d buckets after reset", len(got))
	}
}
