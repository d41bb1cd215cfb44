package atmosphere

import (
	"math"

	"planetgen/core"
	"planetgen/core/noise"
)

// BuildPressure implements spec §4.H's pressure-field assembly (the ITCZ
// low, subtropical highs, subpolar lows, polar highs, thermal land/sea
// contrast, elevation and noise terms) followed by three Laplacian
// smoothing passes.
func BuildPressure(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, itcz *ITCZSpline, summer bool, noiseBasis *noise.Basis) []float32 {
	n := mesh.NumRegions
	isLand := make([]float64, n)
	for r, e := range elev {
		if e > 0 {
			isLand[r] = 1
		}
	}
	contn := laplacianSmoothScalar(mesh, isLand, 10)

	shift := 5.0
	if !summer {
		shift = -5.0
	}

	p := make([]float32, n)
	for r := 0; r < n; r++ {
		lat := geometry[r].LatDeg
		pos := mesh.RXYZ[r]

		dITCZ := lat - itcz.Eval(geometry[r].LonDeg)
		itczTerm := -15 * math.Exp(-0.5*(dITCZ/8)*(dITCZ/8))

		highNorth := gauss(lat-(30+shift), 10)
		highSouth := gauss(lat+(30-shift), 10)
		subtropical := 12 * (1 - 0.3*contn[r]) * (highNorth + highSouth)

		subpolar := -10 * (gauss(lat-60, 10) + gauss(lat+60, 10))
		polar := 8 * (gauss(lat-85, 8) + gauss(lat+85, 8))

		latFactor := thermalLatFactor(lat)
		var thermal float64
		if summer {
			thermal = -10 * latFactor * core.Smoothstep(0.2, 0.5, contn[r])
		} else {
			thermal = 14 * latFactor * core.Smoothstep(0.2, 0.5, contn[r])
		}

		elevTerm := -8 * math.Max(0, float64(elev[r]))
		noiseTerm := 2 * noiseBasis.Fbm(pos.X*2, pos.Y*2, pos.Z*2, 3)

		p[r] = float32(itczTerm + subtropical + subpolar + polar + thermal + elevTerm + noiseTerm)
	}

	return laplacianSmooth(mesh, p, 3)
}

func gauss(x, sigma float64) float64 {
	return math.Exp(-0.5 * (x / sigma) * (x / sigma))
}

// thermalLatFactor is 0 below 15 degrees, ramps to 0.75 at 30, plateaus at
// 1.0 across 45-60, and tapers to 0 by 90 (spec §4.H thermal term profile).
func thermalLatFactor(lat float64) float64 {
	a := math.Abs(lat)
	switch {
	case a < 15:
		return 0
	case a < 30:
		return 0.75 * core.Smoothstep(15, 30, a)
	case a < 45:
		return 0.75 + 0.25*core.Smoothstep(30, 45, a)
	case a <= 60:
		return 1.0
	default:
		return 1.0 * (1 - core.Smoothstep(60, 90, a))
	}
}

// laplacianSmooth runs `passes` uniform-weight Laplacian smoothing passes
// over a float32 per-region field, each writing to a scratch buffer that is
// swapped in afterward (spec §4.H "Laplacian smoothing").
func laplacianSmooth(mesh *core.SphereMesh, field []float32, passes int) []float32 {
	cur := append([]float32(nil), field...)
	for pass := 0; pass < passes; pass++ {
		next := make([]float32, len(cur))
		for r := range cur {
			sum := float64(cur[r])
			count := 1
			for _, nbr32 := range mesh.Neighbors(r) {
				sum += float64(cur[nbr32])
				count++
			}
			next[r] = float32(sum / float64(count))
		}
		cur = next
	}
	return cur
}

// laplacianSmoothScalar is the float64 variant used for continentality,
// which needs more passes (10) than the pressure field itself.
func laplacianSmoothScalar(mesh *core.SphereMesh, field []float64, passes int) []float64 {
	cur := append([]float64(nil), field...)
	for pass := 0; pass < passes; pass++ {
		next := make([]float64, len(cur))
		for r := range cur {
			sum := cur[r]
			count := 1
			for _, nbr32 := range mesh.Neighbors(r) {
				sum += cur[nbr32]
				count++
			}
			next[r] = sum / float64(count)
		}
		cur = next
	}
	return cur
}
