package tectonics

import (
	"testing"

	"planetgen/core"
)

func TestAssignOceansHitsTargetBand(t *testing.T) {
	mesh := gridMesh(300)
	rng := core.NewRng(7)
	rPlate, plates := AssignPlates(mesh, 10, rng)
	AssignOceans(mesh, rPlate, plates, 3, rng)

	landRegions := 0
	for _, p := range rPlate {
		if !plates.IsOcean[p] {
			landRegions++
		}
	}
	frac := float64(landRegions) / float64(len(rPlate))
	if frac < 0.10 || frac > 0.65 {
		t.Errorf("land fraction %v outside tolerant band", frac)
	}
}

func TestAssignOceansDensityRanges(t *testing.T) {
	mesh := gridMesh(200)
	rng := core.NewRng(11)
	rPlate, plates := AssignPlates(mesh, 8, rng)
	AssignOceans(mesh, rPlate, plates, 2, rng)

	for p := range plates.Density {
		d := plates.Density[p]
		if plates.IsOcean[p] {
			if d < 3.0 || d > 3.5 {
				t.Errorf("ocean plate %d density %v out of [3.0,3.5]", p, d)
			}
		} else {
			if d < 2.4 || d > 2.9 {
				t.Errorf("land plate %d density %v out of [2.4,2.9]", p, d)
			}
		}
	}
}

func TestApplyTogglesFlipsStatus(t *testing.T) {
	plates := core.NewPlateSet(3)
	plates.IsOcean = []bool{true, false, true}
	ApplyToggles(plates, []uint16{0, 2})
	want := []bool{false, false, false}
	for i, w := range want {
		if plates.IsOcean[i] != w {
			t.Errorf("plate %d: got %v want %v", i, plates.IsOcean[i], w)
		}
	}
}
