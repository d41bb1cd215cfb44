package elevation

import (
	"math"

	"planetgen/core"
)

// PostProcess implements spec §4.G: optional smoothing, composite erosion,
// ridge sharpening and soil creep, each gated on the land/ocean partition
// snapshotted before the step sequence runs (r_isOcean = r_elevation <= 0).
// A cell that the steps leave on the wrong side of sea level is reset to its
// input height, so the sequence never moves a cell across the coastline. Grounded on the
// teacher's legacy erosion.go (iterative talus/stream-power slumping) and
// smoothing.go (neighbor-averaging passes).
func PostProcess(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, p core.Params) []float32 {
	isOcean := make([]bool, mesh.NumRegions)
	for r, e := range elev {
		isOcean[r] = e <= 0
	}

	out := make([]float32, len(elev))
	copy(out, elev)

	if p.Smoothing > 0 {
		out = smooth(mesh, out, isOcean, p.Smoothing)
	}
	if p.HydraulicErosion > 0 {
		out = hydraulicErosion(mesh, out, isOcean, p.HydraulicErosion)
	}
	if p.ThermalErosion > 0 {
		out = thermalErosion(mesh, out, isOcean, p.ThermalErosion)
	}
	if p.GlacialErosion > 0 {
		out = glacialErosion(mesh, geometry, out, isOcean, p.GlacialErosion)
	}
	if p.RidgeSharpening > 0 {
		out = ridgeSharpen(mesh, out, isOcean, p.RidgeSharpening)
	}
	// soilCreep's numeric schedule is reserved per spec §9 Open Question
	// (iii): a fixed 3 passes at strength 0.1125 regardless of slider value.
	out = soilCreep(mesh, out, isOcean, 3, 0.1125)

	for r := range out {
		if isOcean[r] != (out[r] <= 0) {
			out[r] = elev[r]
		}
	}

	return out
}

func neighborMean(mesh *core.SphereMesh, elev []float32, isOcean []bool, r int) (float64, int) {
	sum, count := 0.0, 0
	for _, nbr32 := range mesh.Neighbors(r) {
		nbr := int(nbr32)
		if isOcean[nbr] != isOcean[r] {
			continue
		}
		sum += float64(elev[nbr])
		count++
	}
	return sum, count
}

// smooth is spec §4.G(a): round(1+4*smoothing) passes at strength
// 0.2+0.5*smoothing toward the plain mean of same-partition neighbors; every
// neighbor has equal weight (no Gaussian distance weighting).
func smooth(mesh *core.SphereMesh, elev []float32, isOcean []bool, smoothing float64) []float32 {
	passes := int(math.Round(1 + 4*smoothing))
	strength := 0.2 + 0.5*smoothing

	cur := elev
	for pass := 0; pass < passes; pass++ {
		next := make([]float32, len(cur))
		for r := range cur {
			sum, count := neighborMean(mesh, cur, isOcean, r)
			if count == 0 {
				next[r] = cur[r]
				continue
			}
			mean := sum / float64(count)
			next[r] = float32((1-strength)*float64(cur[r]) + strength*mean)
		}
		cur = next
	}
	return cur
}

// hydraulicErosion is spec §4.G(b)'s stream-power/capacity variant: land
// cells lose elevation toward their steepest downhill same-partition
// neighbor, capped by a talus-like capacity term, for a fixed number of
// iterations scaled by the slider.
func hydraulicErosion(mesh *core.SphereMesh, elev []float32, isOcean []bool, strength float64) []float32 {
	iterations := int(math.Round(2 + 3*strength))
	cur := make([]float32, len(elev))
	copy(cur, elev)

	for it := 0; it < iterations; it++ {
		next := make([]float32, len(cur))
		copy(next, cur)
		for r := range cur {
			if isOcean[r] {
				continue
			}
			steepest, drop := -1, 0.0
			for _, nbr32 := range mesh.Neighbors(r) {
				nbr := int(nbr32)
				if isOcean[nbr] {
					continue
				}
				d := float64(cur[r] - cur[nbr])
				if d > drop {
					drop = d
					steepest = nbr
				}
			}
			if steepest == -1 {
				continue
			}
			capacity := math.Min(drop*0.3*strength, 0.05)
			next[r] -= float32(capacity)
		}
		cur = next
	}
	return cur
}

// thermalErosion is spec §4.G(b)'s angle-of-repose slumping: material
// moves from a land cell to a lower same-partition neighbor whenever the
// slope exceeds a fixed talus angle.
func thermalErosion(mesh *core.SphereMesh, elev []float32, isOcean []bool, strength float64) []float32 {
	const talus = 0.08
	iterations := int(math.Round(2 + 3*strength))
	cur := make([]float32, len(elev))
	copy(cur, elev)

	for it := 0; it < iterations; it++ {
		next := make([]float32, len(cur))
		copy(next, cur)
		for r := range cur {
			if isOcean[r] {
				continue
			}
			for _, nbr32 := range mesh.Neighbors(r) {
				nbr := int(nbr32)
				if isOcean[nbr] {
					continue
				}
				slope := float64(cur[r] - cur[nbr])
				if slope > talus {
					move := float32((slope - talus) * 0.25 * strength)
					next[r] -= move
					next[nbr] += move
				}
			}
		}
		cur = next
	}
	return cur
}

// glacialErosion is spec §4.G(b)'s high-latitude/altitude carving: land
// cells above a height threshold poleward of 55 degrees are rounded toward
// their same-partition neighbor mean (U-valley profile, roughly).
func glacialErosion(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, isOcean []bool, strength float64) []float32 {
	const latThreshold = 55.0
	const heightThreshold = 0.3

	out := make([]float32, len(elev))
	copy(out, elev)
	for r := range elev {
		if isOcean[r] || elev[r] < heightThreshold {
			continue
		}
		if math.Abs(geometry[r].LatDeg) < latThreshold {
			continue
		}
		sum, count := neighborMean(mesh, elev, isOcean, r)
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		out[r] = float32((1-0.4*strength)*float64(elev[r]) + 0.4*strength*mean)
	}
	return out
}

// ridgeSharpen is spec §4.G(c): an anisotropic high-pass on land, pushing
// each cell away from its same-partition neighbor mean to emphasize
// ridgelines the noise layers already created.
func ridgeSharpen(mesh *core.SphereMesh, elev []float32, isOcean []bool, strength float64) []float32 {
	out := make([]float32, len(elev))
	copy(out, elev)
	for r := range elev {
		if isOcean[r] {
			continue
		}
		sum, count := neighborMean(mesh, elev, isOcean, r)
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		highpass := float64(elev[r]) - mean
		out[r] = float32(float64(elev[r]) + highpass*strength*0.5)
	}
	return out
}

// soilCreep is spec §4.G(d): mild diffusion toward the same-partition
// neighbor mean, run a fixed number of passes at a fixed strength (see
// spec §9 Open Question iii on the slider's reserved status).
func soilCreep(mesh *core.SphereMesh, elev []float32, isOcean []bool, passes int, strength float64) []float32 {
	cur := make([]float32, len(elev))
	copy(cur, elev)
	for pass := 0; pass < passes; pass++ {
		next := make([]float32, len(cur))
		for r := range cur {
			sum, count := neighborMean(mesh, cur, isOcean, r)
			if count == 0 {
				next[r] = cur[r]
				continue
			}
			mean := sum / float64(count)
			next[r] = float32((1-strength)*float64(cur[r]) + strength*mean)
		}
		cur = next
	}
	return cur
}
