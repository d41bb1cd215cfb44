package climate

import "testing"

func TestClassifyFromStatsTropicalAf(t *testing.T) {
	// spec §8 scenario 6: Tcold=20, Thot=28, Pann=2500mm, driest-month=120mm -> Af
	got := ClassifyFromStats(28, 20, 2380, 120)
	if name := ClassName(got); name != "Af" {
		t.Errorf("expected Af, got %s", name)
	}
}

func TestClassifyFromStatsIceCap(t *testing.T) {
	got := ClassifyFromStats(-5, -20, 50, 50)
	if name := ClassName(got); name != "EF" {
		t.Errorf("expected EF, got %s", name)
	}
}

func TestClassifyFromStatsDesert(t *testing.T) {
	got := ClassifyFromStats(35, 15, 20, 10)
	name := ClassName(got)
	if name != "BWh" {
		t.Errorf("expected BWh for a hot/dry region, got %s", name)
	}
}

func TestClassNameFallback(t *testing.T) {
	if ClassName(255) != "Dfc" {
		t.Errorf("expected Dfc fallback for an unassigned id")
	}
}

func TestClassNameAllAssignedIdsRoundTrip(t *testing.T) {
	for id := ClassOcean; id <= ClassEF; id++ {
		if name := ClassName(id); name == "" {
			t.Errorf("class id %d has no name", id)
		}
	}
}
