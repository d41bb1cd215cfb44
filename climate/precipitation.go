// Package climate implements spec §4.J-§4.L: precipitation, temperature
// and the Köppen classifier, reusing atmosphere's gradient/percentile-
// normalization pattern directly for orographic uplift.
package climate

import (
	"math"
	"sort"

	"planetgen/atmosphere"
	"planetgen/core"
	"planetgen/distfield"

	"gonum.org/v1/gonum/stat"
)

const advectionPasses = 6

// Precipitation implements spec §4.J: a moisture field seeded by ocean
// proximity and temperature, advected downwind by relaxation passes,
// with orographic uplift added over land and a convective term from ITCZ
// proximity, normalized by its 95th percentile. seed is the pipeline seed;
// the ocean-distance field's tie-breaking RNG derives from it at offset
// 901, per spec §5's per-stage seeding convention.
func Precipitation(mesh *core.SphereMesh, geometry []core.RegionGeometry, isOcean []bool, elev []float32, temperature []float32, windEast, windNorth []float32, itcz *atmosphere.ITCZSpline, seed uint32) []float32 {
	n := mesh.NumRegions

	oceanSeeds := make([]int, 0, n/4)
	for r, o := range isOcean {
		if o {
			oceanSeeds = append(oceanSeeds, r)
		}
	}
	distToOcean := distfield.Assign(mesh, oceanSeeds, nil, core.NewRng(uint64(seed)).Derive(901))

	moisture := make([]float64, n)
	for r := 0; r < n; r++ {
		decay := 1.0
		if distToOcean[r] != distfield.Unreachable {
			decay = math.Exp(-float64(distToOcean[r]) / 15.0)
		} else {
			decay = 0
		}
		moisture[r] = decay * (0.3 + 0.7*float64(temperature[r]))
	}

	for pass := 0; pass < advectionPasses; pass++ {
		moisture = advectDownwind(mesh, geometry, moisture, windEast, windNorth)
	}

	elevGrad := atmosphere.ComputeGradient(mesh, geometry, elev)

	raw := make([]float64, n)
	for r := 0; r < n; r++ {
		p := moisture[r]
		if !isOcean[r] {
			uplift := float64(windEast[r])*float64(elevGrad.East[r]) + float64(windNorth[r])*float64(elevGrad.North[r])
			if uplift > 0 {
				p += uplift * 2.0
			}
		}

		dITCZ := math.Abs(geometry[r].LatDeg - itcz.Eval(geometry[r].LonDeg))
		convective := math.Exp(-0.5 * (dITCZ / 6) * (dITCZ / 6))
		p += 0.4 * convective

		if p < 0 {
			p = 0
		}
		raw[r] = p
	}

	return normalizeP95(raw)
}

// advectDownwind blends each region's moisture toward the upwind
// neighbor's value (the neighbor whose offset most opposes the local
// wind vector), approximating downwind transport one hop per pass.
func advectDownwind(mesh *core.SphereMesh, geometry []core.RegionGeometry, moisture []float64, windEast, windNorth []float32) []float64 {
	out := make([]float64, len(moisture))
	copy(out, moisture)

	for r := 0; r < mesh.NumRegions; r++ {
		we, wn := float64(windEast[r]), float64(windNorth[r])
		speed := math.Hypot(we, wn)
		if speed < 1e-9 {
			continue
		}
		frame := geometry[r].Frame

		best, bestAlign := -1, -2.0
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			offset := mesh.RXYZ[r].Sub(mesh.RXYZ[nbr])
			norm := offset.Length()
			if norm < 1e-12 {
				continue
			}
			de, dn := offset.Dot(frame.East), offset.Dot(frame.North)
			align := (de*we + dn*wn) / (norm * speed)
			if align > bestAlign {
				bestAlign = align
				best = nbr
			}
		}
		if best == -1 || bestAlign <= 0 {
			continue
		}
		out[r] = 0.55*moisture[r] + 0.45*moisture[best]
	}
	return out
}

func normalizeP95(raw []float64) []float32 {
	n := len(raw)
	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	p95 := 0.0
	if n > 0 {
		p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	out := make([]float32, n)
	for i, v := range raw {
		s := 0.0
		if p95 > 1e-12 {
			s = v / p95
		}
		if s > 1 {
			s = 1
		}
		if s < 0 {
			s = 0
		}
		out[i] = float32(s)
	}
	return out
}
