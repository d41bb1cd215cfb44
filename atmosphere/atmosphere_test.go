package atmosphere

import (
	"math"
	"testing"

	"planetgen/core"
	"planetgen/core/noise"
)

func ringMesh(n int) *core.SphereMesh {
	rxyz := make([]core.Vector3, n)
	adj := make([][]int32, n)
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * 2 * math.Pi
		rxyz[i] = core.Vector3{X: math.Cos(theta), Y: math.Sin(theta) * 0.3, Z: math.Sin(theta)}
	}
	for i := range rxyz {
		rxyz[i] = rxyz[i].Normalize()
	}
	for i := 0; i < n; i++ {
		adj[i] = []int32{int32((i - 1 + n) % n), int32((i + 1) % n)}
	}
	return core.NewSphereMesh(rxyz, adj)
}

func TestITCZSplineEvalWithinClampedRange(t *testing.T) {
	mesh := ringMesh(200)
	geometry := core.ComputeGeometry(mesh)
	elev := make([]float32, mesh.NumRegions)
	for i := range elev {
		elev[i] = 0.1
	}

	spline := BuildITCZSpline(mesh, geometry, elev, true)
	for lon := -180.0; lon < 180; lon += 17 {
		v := spline.Eval(lon)
		if v < 4 || v > 21 {
			t.Errorf("ITCZ(%v) = %v, expected roughly within [5,20]", lon, v)
		}
	}
}

func TestITCZSplineWinterIsNegativeOfSummerSign(t *testing.T) {
	mesh := ringMesh(200)
	geometry := core.ComputeGeometry(mesh)
	elev := make([]float32, mesh.NumRegions)

	summer := BuildITCZSpline(mesh, geometry, elev, true)
	winter := BuildITCZSpline(mesh, geometry, elev, false)
	if summer.Eval(0) <= 0 {
		t.Errorf("summer ITCZ should be positive, got %v", summer.Eval(0))
	}
	if winter.Eval(0) >= 0 {
		t.Errorf("winter ITCZ should be negative, got %v", winter.Eval(0))
	}
}

func TestBuildPressureFinite(t *testing.T) {
	mesh := ringMesh(150)
	geometry := core.ComputeGeometry(mesh)
	elev := make([]float32, mesh.NumRegions)
	for i := range elev {
		elev[i] = float32(0.2 * math.Sin(float64(i)))
	}
	basis := noise.New(1)
	itcz := BuildITCZSpline(mesh, geometry, elev, true)
	pressure := BuildPressure(mesh, geometry, elev, itcz, true, basis)

	for r, p := range pressure {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			t.Errorf("region %d has non-finite pressure %v", r, p)
		}
	}
}

func TestComputeWindSpeedClampedToUnitInterval(t *testing.T) {
	mesh := ringMesh(150)
	geometry := core.ComputeGeometry(mesh)
	pressure := make([]float32, mesh.NumRegions)
	for i := range pressure {
		pressure[i] = float32(10 * math.Sin(float64(i)*0.3))
	}

	grad := ComputeGradient(mesh, geometry, pressure)
	wind := ComputeWind(geometry, grad)

	for r, s := range wind.Speed {
		if s < 0 || s > 1 {
			t.Errorf("region %d wind speed %v out of [0,1]", r, s)
		}
	}
}

func TestComputeGradientZeroWhenPressureFlat(t *testing.T) {
	mesh := ringMesh(50)
	geometry := core.ComputeGeometry(mesh)
	pressure := make([]float32, mesh.NumRegions)
	for i := range pressure {
		pressure[i] = 5
	}
	grad := ComputeGradient(mesh, geometry, pressure)
	for r := range pressure {
		if grad.East[r] != 0 || grad.North[r] != 0 {
			t.Errorf("region %d expected zero gradient on flat field, got (%v,%v)", r, grad.East[r], grad.North[r])
		}
	}
}
