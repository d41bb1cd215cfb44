package tectonics

import (
	"math"
	"testing"

	"planetgen/core"
)

// gridMesh builds a ring of n unit-sphere points (equally spaced on the
// equator) with ring adjacency, enough topology for adjacency- and
// position-driven tests without a full Delaunay mesh.
func gridMesh(n int) *core.SphereMesh {
	rxyz := make([]core.Vector3, n)
	adj := make([][]int32, n)
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * 2 * math.Pi
		rxyz[i] = core.Vector3{X: math.Cos(theta), Y: 0, Z: math.Sin(theta)}
	}
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		adj[i] = []int32{int32(prev), int32(next)}
	}
	return core.NewSphereMesh(rxyz, adj)
}

func TestAssignPlatesCoversAllRegions(t *testing.T) {
	mesh := gridMesh(200)
	rng := core.NewRng(1)
	rPlate, plates := AssignPlates(mesh, 6, rng)

	if len(plates.SeedRegion) != 6 {
		t.Fatalf("expected 6 plates, got %d", len(plates.SeedRegion))
	}
	for r, p := range rPlate {
		if p < 0 || int(p) >= 6 {
			t.Fatalf("region %d has invalid plate id %d", r, p)
		}
	}
}

func TestAssignPlatesDeterministic(t *testing.T) {
	mesh := gridMesh(150)
	a, _ := AssignPlates(mesh, 5, core.NewRng(99))
	b, _ := AssignPlates(mesh, 5, core.NewRng(99))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("region %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestDriftVectorIsTangentAndUnit(t *testing.T) {
	rng := core.NewRng(3)
	pos := core.Vector3{X: 0, Y: 1, Z: 0}
	d := driftVector(pos, rng)
	if l := d.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("drift vector not unit length: %v", l)
	}
	if dot := d.Dot(pos); dot > 1e-6 || dot < -1e-6 {
		t.Errorf("drift vector not tangent to position: dot=%v", dot)
	}
}
