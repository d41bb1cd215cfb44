package climate

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
		rxyz[i] = core.Vector3{X: math.Cos(theta), Y: math.Sin(theta) * 0.3, Z: math.Sin(theta)}
		rxyz[i] = rxyz[i].Normalize()
	}
	for i := 0; i < n; i++ {
		adj[i] = []int32{int32((i - 1 + n) % n), int32((i + 1) % n)}
	}
	return core.NewSphereMesh(rxyz, adj)
}

func TestTemperatureNormalizedToUnitInterval(t *testing.T) {
	mesh := ringMesh(100)
	geometry := core.ComputeGeometry(mesh)
	elev := make([]float32, mesh.NumRegions)
	warmth := make([]float32, mesh.NumRegions)
	isOcean := make([]bool, mesh.NumRegions)

	temp := Temperature(mesh, geometry, elev, warmth, isOcean, 23.5, true)
	for r, v := range temp {
		if v < 0 || v > 1 {
			t.Errorf("region %d temperature %v out of [0,1]", r, v)
		}
	}
}

func TestNormalizeTempRoundTrip(t *testing.T) {
	for _, c := range []float64{-45, -10, 0, 22.5, 45} {
		norm := NormalizeTemp(c)
		back := DenormTemp(norm)
		if math.Abs(back-c) > 1e-9 {
			t.Errorf("round-trip failed: %v -> %v -> %v", c, norm, back)
		}
	}
}
