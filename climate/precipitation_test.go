package climate

import (
	"math"
	"testing"

	"planetgen/atmosphere"
	"planetgen/core"
)

func TestPrecipitationInUnitInterval(t *testing.T) {
	mesh := ringMesh(120)
	geometry := core.ComputeGeometry(mesh)
	elev := make([]float32, mesh.NumRegions)
	temperature := make([]float32, mesh.NumRegions)
	isOcean := make([]bool, mesh.NumRegions)
	windEast := make([]float32, mesh.NumRegions)
	windNorth := make([]float32, mesh.NumRegions)
	for i := range elev {
		isOcean[i] = i%4 == 0
		temperature[i] = 0.6
		windEast[i] = float32(math.Sin(float64(i) * 0.2))
		windNorth[i] = float32(math.Cos(float64(i) * 0.2))
	}

	itcz := atmosphere.BuildITCZSpline(mesh, geometry, elev, true)

	precip := Precipitation(mesh, geometry, isOcean, elev, temperature, windEast, windNorth, itcz, 42)
	for r, p := range precip {
		if p < 0 || p > 1 {
			t.Errorf("region %d precipitation %v out of [0,1]", r, p)
		}
	}
}
