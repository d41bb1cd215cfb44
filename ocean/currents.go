// Package ocean implements spec §4.I: wind-driven surface currents masked
// to ocean cells, coastal deflection, warmth propagation and p95-normalized
// speed. Speed is normalized with the same p95 percentile scheme the
// atmosphere package uses for wind; the currents themselves are not rotated.
package ocean

import (
	"math"
	"sort"

	"planetgen/core"

	"gonum.org/v1/gonum/stat"
)

// Currents is the per-region surface-current field spec §3 calls
// r_ocean_current_{east,north}, r_ocean_speed and r_ocean_warmth.
type Currents struct {
	East, North, Speed, Warmth []float32
}

const dampingPasses = 4

// Compute implements spec §4.I: seeds ocean-cell currents from the wind
// field damped by latitude, runs coastal-deflection + smoothing passes,
// derives warmth from latitude blended with neighboring ocean warmth, and normalizes speed
// by its 95th percentile.
func Compute(mesh *core.SphereMesh, geometry []core.RegionGeometry, isOcean []bool, windEast, windNorth []float32) Currents {
	n := mesh.NumRegions
	east := make([]float32, n)
	north := make([]float32, n)
	warmth := make([]float32, n)

	for r := 0; r < n; r++ {
		if !isOcean[r] {
			continue
		}
		damp := 0.15 + 0.1*(1-math.Abs(geometry[r].SinLat))
		east[r] = windEast[r] * float32(damp)
		north[r] = windNorth[r] * float32(damp)
		warmth[r] = float32(1 - math.Abs(geometry[r].SinLat))
	}

	for pass := 0; pass < dampingPasses; pass++ {
		east, north = deflectCoastal(mesh, geometry, isOcean, east, north)
		east, north = smoothVector(mesh, isOcean, east, north)
		warmth = advectWarmth(mesh, isOcean, warmth, east, north)
	}

	_, normSpeed := percentileNormalizedSpeed(east, north)

	return Currents{East: east, North: north, Speed: normSpeed, Warmth: warmth}
}

// deflectCoastal zeroes the component of the current normal to the
// coastline at any ocean cell with a land neighbor, approximating the
// coastline normal as the mean direction toward its land neighbors.
func deflectCoastal(mesh *core.SphereMesh, geometry []core.RegionGeometry, isOcean []bool, east, north []float32) ([]float32, []float32) {
	outE := append([]float32(nil), east...)
	outN := append([]float32(nil), north...)

	for r := 0; r < mesh.NumRegions; r++ {
		if !isOcean[r] {
			continue
		}
		var sumE, sumN float64
		landNeighbors := 0
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			if isOcean[nbr] {
				continue
			}
			offset := mesh.RXYZ[nbr].Sub(mesh.RXYZ[r])
			sumE += offset.Dot(geometry[r].Frame.East)
			sumN += offset.Dot(geometry[r].Frame.North)
			landNeighbors++
		}
		if landNeighbors == 0 {
			continue
		}
		nx, ny := sumE, sumN
		norm := math.Hypot(nx, ny)
		if norm < 1e-9 {
			continue
		}
		nx, ny = nx/norm, ny/norm

		dot := float64(east[r])*nx + float64(north[r])*ny
		outE[r] = east[r] - float32(dot*nx)
		outN[r] = north[r] - float32(dot*ny)
	}
	return outE, outN
}

func smoothVector(mesh *core.SphereMesh, isOcean []bool, east, north []float32) ([]float32, []float32) {
	outE := make([]float32, len(east))
	outN := make([]float32, len(north))
	copy(outE, east)
	copy(outN, north)

	for r := 0; r < mesh.NumRegions; r++ {
		if !isOcean[r] {
			continue
		}
		sumE, sumN, count := 0.0, 0.0, 0
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			if !isOcean[nbr] {
				continue
			}
			sumE += float64(east[nbr])
			sumN += float64(north[nbr])
			count++
		}
		if count == 0 {
			continue
		}
		outE[r] = float32(0.6*float64(east[r]) + 0.4*sumE/float64(count))
		outN[r] = float32(0.6*float64(north[r]) + 0.4*sumN/float64(count))
	}
	return outE, outN
}

// advectWarmth blends each ocean cell's warmth toward the mean warmth of
// its ocean neighbors (0.8 own, 0.2 mean), then clamps to [0,1]. The
// current components passed in are not used: warmth spreads equally to all
// ocean neighbors, not along the current direction.
func advectWarmth(mesh *core.SphereMesh, isOcean []bool, warmth []float32, east, north []float32) []float32 {
	out := make([]float32, len(warmth))
	copy(out, warmth)

	for r := 0; r < mesh.NumRegions; r++ {
		if !isOcean[r] {
			continue
		}
		sum, count := 0.0, 0
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			if !isOcean[nbr] {
				continue
			}
			sum += float64(warmth[nbr])
			count++
		}
		if count == 0 {
			continue
		}
		advected := sum / float64(count)
		out[r] = float32(clamp01(0.8*float64(warmth[r]) + 0.2*advected))
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func percentileNormalizedSpeed(east, north []float32) ([]float32, []float32) {
	n := len(east)
	raw := make([]float64, n)
	for r := 0; r < n; r++ {
		raw[r] = math.Hypot(float64(east[r]), float64(north[r]))
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	p95 := 0.0
	if n > 0 {
		p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	speed := make([]float32, n)
	normSpeed := make([]float32, n)
	for r := 0; r < n; r++ {
		speed[r] = float32(raw[r])
		s := 0.0
		if p95 > 1e-12 {
			s = raw[r] / p95
		}
		normSpeed[r] = float32(clamp01(s))
	}
	return speed, normSpeed
}
