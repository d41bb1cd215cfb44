package climate

import (
	"math"

	"planetgen/core"
)

// Temperature implements spec §4.K: an insolation-latitude profile shifted
// by axial tilt and season, a lapse-rate elevation correction, a
// continentality modulation, a coastal warmth blend from r_ocean_warmth,
// and 2-3 smoothing passes. Output is normalized into [0,1] representing
// [-45C, +45C].
func Temperature(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, oceanWarmth []float32, isOcean []bool, axialTiltDeg float64, summer bool) []float32 {
	n := mesh.NumRegions
	contn := continentality(mesh, isOcean, 10)

	shift := axialTiltDeg
	if !summer {
		shift = -axialTiltDeg
	}

	celsius := make([]float64, n)
	for r := 0; r < n; r++ {
		lat := geometry[r].LatDeg
		insolationLat := lat - shift*0.4
		base := 30 * math.Cos(insolationLat*math.Pi/180*0.9)

		lapse := -6.5 * math.Max(0, float64(elev[r])) * 8.0
		continental := (1 - contn[r]) * 4 * math.Cos(lat*math.Pi/180)

		coastal := 0.0
		if isOcean[r] {
			coastal = float64(oceanWarmth[r]) * 10
		} else {
			coastal = float64(oceanWarmth[r]) * 4 * contn[r]
		}

		celsius[r] = base + lapse + continental + coastal
	}

	smoothed := smoothScalar(mesh, celsius, 3)

	out := make([]float32, n)
	for r, c := range smoothed {
		out[r] = float32(NormalizeTemp(c))
	}
	return out
}

// NormalizeTemp maps a Celsius value in [-45, 45] into [0,1] (spec §4.K).
func NormalizeTemp(celsius float64) float64 {
	v := (celsius + 45) / 90
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DenormTemp is NormalizeTemp's inverse, used by the Köppen classifier and
// the round-trip test in spec §8.
func DenormTemp(norm float64) float64 {
	return norm*90 - 45
}

func continentality(mesh *core.SphereMesh, isOcean []bool, passes int) []float64 {
	n := mesh.NumRegions
	field := make([]float64, n)
	for r, o := range isOcean {
		if !o {
			field[r] = 1
		}
	}
	for pass := 0; pass < passes; pass++ {
		next := make([]float64, n)
		for r := 0; r < n; r++ {
			sum := field[r]
			count := 1
			for _, nbr32 := range mesh.Neighbors(r) {
				sum += field[nbr32]
				count++
			}
			next[r] = core.Smoothstep(0.2, 0.5, sum/float64(count))
		}
		field = next
	}
	return field
}

func smoothScalar(mesh *core.SphereMesh, field []float64, passes int) []float64 {
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
