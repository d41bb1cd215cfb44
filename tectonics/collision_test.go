package tectonics

import (
	"testing"

	"planetgen/core"
	"planetgen/core/noise"
)

// twoPlateMesh returns an 8-region ring split into two plates (0..3 and
// 4..7), so the ring has exactly two cross-plate boundaries: (3,4) and
// (7,0). Interior regions (1,2,5,6) must end up with BoundaryInterior.
func twoPlateMesh(t *testing.T) (*core.SphereMesh, []int32, *core.PlateSet) {
	t.Helper()
	mesh := gridMesh(8)
	rPlate := make([]int32, 8)
	for i := 0; i < 8; i++ {
		if i < 4 {
			rPlate[i] = 0
		} else {
			rPlate[i] = 1
		}
	}
	plates := core.NewPlateSet(2)
	plates.SeedRegion = []int{0, 4}
	plates.Density = []float64{2.6, 3.1}
	plates.IsOcean = []bool{false, true}
	plates.Drift[0] = core.BuildTangentFrame(mesh.RXYZ[0]).East
	plates.Drift[1] = plates.Drift[0].Scale(-1)
	return mesh, rPlate, plates
}

func TestDetectCollisionsInteriorRegionsUntouched(t *testing.T) {
	mesh, rPlate, plates := twoPlateMesh(t)
	basis := noise.New(1)
	_, _, rBoundaryType, _ := DetectCollisions(mesh, rPlate, plates, basis)

	for _, r := range []int{1, 2, 5, 6} {
		if rBoundaryType[r] != core.BoundaryInterior {
			t.Errorf("region %d expected interior, got %d", r, rBoundaryType[r])
		}
	}
	for _, r := range []int{0, 3, 4, 7} {
		if rBoundaryType[r] == core.BoundaryInterior {
			t.Errorf("boundary region %d unexpectedly interior", r)
		}
	}
}

func TestDetectCollisionsStressAndSubductInRange(t *testing.T) {
	mesh, rPlate, plates := twoPlateMesh(t)
	basis := noise.New(2)
	rStress, rSubductFactor, _, result := DetectCollisions(mesh, rPlate, plates, basis)

	for r := 0; r < mesh.NumRegions; r++ {
		if rStress[r] < 0 {
			t.Errorf("region %d has negative stress %v", r, rStress[r])
		}
		if rSubductFactor[r] < 0 || rSubductFactor[r] > 1 {
			t.Errorf("region %d subduct factor out of range: %v", r, rSubductFactor[r])
		}
	}

	total := len(result.Mountain) + len(result.Coastline) + len(result.Ocean)
	if total == 0 {
		t.Errorf("expected at least one boundary region classified into a seed set")
	}
}

func TestTimeStepShrinksWithResolution(t *testing.T) {
	small := TimeStep(2500)
	large := TimeStep(40000)
	if large >= small {
		t.Errorf("expected dt to shrink as N grows: dt(2500)=%v dt(40000)=%v", small, large)
	}
}

func TestPairIntensityDeterministicAndOrderIndependent(t *testing.T) {
	a := pairIntensity(3, 9)
	b := pairIntensity(9, 3)
	if a != b {
		t.Errorf("pairIntensity not symmetric: %v vs %v", a, b)
	}
	if a < 0.5 || a > 1.5 {
		t.Errorf("pairIntensity out of range: %v", a)
	}
}
