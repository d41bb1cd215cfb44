package distfield

import (
	"math"
	"testing"

	"planetgen/core"
)

func ringMesh(n int) *core.SphereMesh {
	rxyz := make([]core.Vector3, n)
	adj := make([][]int32, n)
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * 2 * math.Pi
		rxyz[i] = core.Vector3{X: math.Cos(theta), Y: 0, Z: math.Sin(theta)}
	}
	for i := 0; i < n; i++ {
		adj[i] = []int32{int32((i - 1 + n) % n), int32((i + 1) % n)}
	}
	return core.NewSphereMesh(rxyz, adj)
}

func TestAssignSeedIsZero(t *testing.T) {
	mesh := ringMesh(20)
	dist := Assign(mesh, []int{0}, nil, core.NewRng(1))
	if dist[0] != 0 {
		t.Errorf("seed distance = %d, want 0", dist[0])
	}
}

func TestAssignMonotoneAlongRing(t *testing.T) {
	mesh := ringMesh(20)
	dist := Assign(mesh, []int{0}, nil, core.NewRng(1))
	for i := 1; i <= 10; i++ {
		if int(dist[i]) != i {
			t.Errorf("region %d: dist=%d, want %d (unbarred ring, one direction)", i, dist[i], i)
		}
	}
}

func TestAssignDeterministic(t *testing.T) {
	mesh := ringMesh(100)
	a := Assign(mesh, []int{0, 50}, nil, core.NewRng(77))
	b := Assign(mesh, []int{0, 50}, nil, core.NewRng(77))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("region %d not deterministic: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestAssignBarrierBlocksPropagation(t *testing.T) {
	mesh := ringMesh(10)
	stops := map[int]bool{3: true}
	dist := Assign(mesh, []int{0}, stops, core.NewRng(5))

	if dist[3] != Unreachable {
		t.Errorf("barrier region should stay unreachable, got %d", dist[3])
	}
	// going the other way around (through 9,8,7...) should still reach 4,5,6
	for _, r := range []int{4, 5, 6} {
		if dist[r] == Unreachable {
			t.Errorf("region %d should be reachable around the barrier, got Unreachable", r)
		}
	}
}

func TestAssignSeedThatIsABarrierStaysUnreachable(t *testing.T) {
	mesh := ringMesh(10)
	stops := map[int]bool{0: true}
	dist := Assign(mesh, []int{0}, stops, core.NewRng(5))
	if dist[0] != Unreachable {
		t.Errorf("seed-that-is-a-barrier should stay Unreachable, got %d", dist[0])
	}
}

func TestAssignDisconnectedRegionUnreachable(t *testing.T) {
	mesh := ringMesh(6)
	// isolate region 3 artificially by using it as a barrier on both sides
	stops := map[int]bool{2: true, 4: true}
	dist := Assign(mesh, []int{0}, stops, core.NewRng(1))
	if dist[3] != Unreachable {
		t.Errorf("region surrounded by barriers should be unreachable, got %d", dist[3])
	}
}
