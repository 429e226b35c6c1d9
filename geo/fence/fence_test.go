package fence

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/aethermon/ctxd/types/snapshot"
)

// Missoula-ish coordinates; 0.001 degrees latitude is about 111 m.
var home = Fence{Name: "home", Center: orb.Point{-114.01, 46.87}, RadiusM: 150}

func TestContains(t *testing.T) {
	if !home.Contains(orb.Point{-114.01, 46.87}) {
		t.Fatal("center not inside its own fence")
	}
	if !home.Contains(orb.Point{-114.01, 46.8707}) {
		t.Fatal("point ~78m north not inside a 150m fence")
	}
	if home.Contains(orb.Point{-114.01, 46.89}) {
		t.Fatal("point ~2.2km north inside a 150m fence")
	}
}

func TestLocate(t *testing.T) {
	work := Fence{Name: "work", Center: orb.Point{-114.02, 46.86}, RadiusM: 100}
	s := Set{Home: &home, Work: &work}

	loc := s.Locate(orb.Point{-114.01, 46.87}, snapshot.GPSQualityGood)
	if !loc.InsideHome || loc.InsideWork {
		t.Fatalf("home point resolved to %+v", loc)
	}
	if loc.GPSQuality != snapshot.GPSQualityGood {
		t.Fatalf("quality %q not preserved", loc.GPSQuality)
	}

	loc = s.Locate(orb.Point{-114.02, 46.86}, snapshot.GPSQualityPoor)
	if loc.InsideHome || !loc.InsideWork {
		t.Fatalf("work point resolved to %+v", loc)
	}

	loc = Set{}.Locate(orb.Point{-114.01, 46.87}, snapshot.GPSQualityGood)
	if loc.InsideHome || loc.InsideWork {
		t.Fatalf("nil fences matched: %+v", loc)
	}
}
