// Package elevation implements spec §4.F-§4.G: combining the three
// tectonic distance fields and propagated stress into per-region elevation,
// then the optional post-processing chain (smoothing, erosion, ridge
// sharpening, soil creep), blending terrain/ridge noise and composite
// erosion passes generalized from a voxel grid to the mesh's per-region
// arrays.
package elevation

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"planetgen/core"
	"planetgen/core/noise"
	"planetgen/distfield"
	"planetgen/tectonics"
)

const eps = 1e-3

// Seeds bundles the region sets spec §4.F's step 1-2 assembles before the
// distance fields are built.
type Seeds struct {
	Mountain, Ocean, Coastline map[int]bool
}

// BuildSeeds implements spec §4.F step 1: adds each plate's seed region to
// ocean_r/coastline_r by ocean status and unions in stage C's
// classification. Mountain is returned unfiltered; StressMountains derives
// the subduction-qualified subset (step 2).
func BuildSeeds(plates *core.PlateSet, rPlate []int32, collision tectonics.CollisionResult) Seeds {
	s := Seeds{Mountain: map[int]bool{}, Ocean: map[int]bool{}, Coastline: map[int]bool{}}
	for r, m := range collision.Mountain {
		if m {
			s.Mountain[r] = true
		}
	}
	for r, m := range collision.Coastline {
		if m {
			s.Coastline[r] = true
		}
	}
	for r, m := range collision.Ocean {
		if m {
			s.Ocean[r] = true
		}
	}
	for p, seed := range plates.SeedRegion {
		if plates.IsOcean[p] {
			s.Ocean[seed] = true
		} else {
			s.Coastline[seed] = true
		}
	}
	return s
}

// StressMountains filters Seeds.Mountain to the subduction-qualified set
// spec §4.F step 2 names stress_mountain_r.
func StressMountains(seeds Seeds, rSubductFactor []float32) map[int]bool {
	out := map[int]bool{}
	for r := range seeds.Mountain {
		if rSubductFactor[r] < 0.55 {
			out[r] = true
		}
	}
	return out
}

func union(sets ...map[int]bool) map[int]bool {
	out := map[int]bool{}
	for _, s := range sets {
		for r := range s {
			out[r] = true
		}
	}
	return out
}

func keys(s map[int]bool) []int {
	out := make([]int, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// toFloat64s adapts a []float32 field to the []float64 slice floats.Max
// expects.
func toFloat64s(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// Assemble implements spec §4.F steps 3-5: builds the three distance
// fields, the ocean-floor dist_coast field, and the base elevation formula
// (1/a - 1/b)/(1/a + 1/b + 1/c), then applies land/ocean-specific
// stress-driven and noise-driven terms. seed is the pipeline seed; the
// distance fields are derived from seed+1, +2, +3 per spec §5.
func Assemble(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, rStress, rSubductFactor []float32, rBoundaryType []uint8, seeds Seeds, seed uint32) []float32 {
	n := mesh.NumRegions
	stressMountain := StressMountains(seeds, rSubductFactor)

	distMountain := distfield.Assign(mesh, keys(stressMountain), seeds.Ocean, core.NewRng(uint64(seed)+1))
	distOcean := distfield.Assign(mesh, keys(seeds.Ocean), seeds.Coastline, core.NewRng(uint64(seed)+2))
	distCoastline := distfield.Assign(mesh, keys(seeds.Coastline), union(stressMountain, seeds.Coastline, seeds.Ocean), core.NewRng(uint64(seed)+3))
	distCoast := buildDistCoast(mesh, rPlate, plates, core.NewRng(uint64(seed)+4))

	maxStress := float32(1e-2)
	if len(rStress) > 0 {
		if m := float32(floats.Max(toFloat64s(rStress))); m > maxStress {
			maxStress = m
		}
	}

	domainNoise := noise.New(int64(seed) + 10)
	landNoise := noise.New(int64(seed) + 11)
	ridgedNoise := noise.New(int64(seed) + 12)
	oceanNoise := noise.New(int64(seed) + 13)

	elev := make([]float32, n)
	for r := 0; r < n; r++ {
		a := invOrZero(distMountain[r])
		bInv := invOrZero(distOcean[r])
		cInv := invOrZero(distCoastline[r])

		var base float64
		if distMountain[r] == distfield.Unreachable && distOcean[r] == distfield.Unreachable {
			base = 0.1
		} else {
			base = (a - bInv) / (a + bInv + cInv + 1e-9)
		}

		p := mesh.RXYZ[r]
		wx := p.X + 0.4*domainNoise.Fbm(p.X+11, p.Y+11, p.Z+11, 3)
		wy := p.Y + 0.4*domainNoise.Fbm(p.X+23, p.Y+23, p.Z+23, 3)
		wz := p.Z + 0.4*domainNoise.Fbm(p.X+47, p.Y+47, p.Z+47, 3)

		stressNorm := float64(rStress[r] / maxStress)
		boundary := rBoundaryType[r]
		sf := float64(rSubductFactor[r])

		pr := rPlate[r]
		isLand := !plates.IsOcean[pr]

		if isLand {
			e := base
			if sf > 0.5 && e > 0 {
				e *= 1 - 0.35*(sf-0.5)*2
			}
			if stressNorm > 0 && stressNorm < 0.05 {
				e -= 0.02
			}
			if boundary == core.BoundaryDivergent && !hasOceanNeighbor(mesh, r, plates, rPlate) {
				e -= 0.12
			}
			smooth := landNoise.Fbm(wx*3, wy*3, wz*3, 3)
			ridged := ridgedNoise.RidgedFbm(wx*3, wy*3, wz*3, 4)
			blend := math.Min(1, stressNorm*3)
			e += smooth*(1-blend) + ridged*blend*1.5
			elev[r] = float32(e)
		} else {
			oceanBase := oceanDepthBase(distCoast[r])
			e := math.Min(base, oceanBase)

			bothOcean := plates.IsOcean[pr]
			if boundary == core.BoundaryDivergent && bothOcean {
				e += 0.12*ridgedNoise.RidgedFbm(wx*5, wy*5, wz*5, 3) + 0.06
			}
			if boundary == core.BoundaryConvergent {
				e -= 0.15 + 0.15*stressNorm
			}
			e += 0.05 * oceanNoise.Fbm(wx*6, wy*6, wz*6, 2)
			elev[r] = float32(e)
		}
	}

	coastalBasis := noise.New(int64(seed) + 77)
	islandBasis := noise.New(int64(seed) + 133)
	warpBasis := noise.New(int64(seed) + 211)
	arcBasis := noise.New(int64(seed) + 307)

	roughenCoasts(mesh, rPlate, plates, rStress, rSubductFactor, elev, coastalBasis, islandBasis, warpBasis)
	addIslandArcs(mesh, rPlate, plates, rSubductFactor, rBoundaryType, elev, arcBasis)

	return elev
}

// maxCoastalDist is spec §4.F step 6's maxCD: the coastal-roughening band
// widens slowly with mesh resolution so the feature stays proportionate
// across region counts.
func maxCoastalDist(numRegions int) int {
	d := int(math.Round(8 * math.Sqrt(float64(numRegions)/10000)))
	if d < 8 {
		return 8
	}
	return d
}

// maxArcDist is spec §4.F step 7's maxArcDist.
func maxArcDist(numRegions int) int {
	d := int(math.Round(5 * math.Sqrt(float64(numRegions)/10000)))
	if d < 5 {
		return 5
	}
	return d
}

// roughenCoasts implements spec §4.F step 6: a capped BFS distance field
// from every land/ocean boundary cell carries the boundary's stress and
// subduction factor inward (no convergent flag is carried), and three noise layers are
// blended in on cells the field reaches, falling off as (1-t)^2.
func roughenCoasts(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, rStress, rSubductFactor []float32, elev []float32, coastalBasis, islandBasis, warpBasis *noise.Basis) {
	n := mesh.NumRegions
	maxCD := maxCoastalDist(n)

	isOceanRegion := func(r int) bool { return plates.IsOcean[rPlate[r]] }

	type src struct {
		dist    int
		stress  float32
		subduct float32
	}
	carried := make([]src, n)
	for i := range carried {
		carried[i].dist = -1
	}

	queue := make([]int, 0, n/4)
	for r := 0; r < n; r++ {
		onBoundary := false
		for _, nbr32 := range mesh.Neighbors(r) {
			if isOceanRegion(int(nbr32)) != isOceanRegion(r) {
				onBoundary = true
				break
			}
		}
		if onBoundary {
			carried[r] = src{dist: 0, stress: rStress[r], subduct: rSubductFactor[r]}
			queue = append(queue, r)
		}
	}

	for head := 0; head < len(queue); head++ {
		r := queue[head]
		if carried[r].dist >= maxCD {
			continue
		}
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			if carried[nbr].dist != -1 {
				continue
			}
			carried[nbr] = src{dist: carried[r].dist + 1, stress: carried[r].stress, subduct: carried[r].subduct}
			queue = append(queue, nbr)
		}
	}

	for r := 0; r < n; r++ {
		c := carried[r]
		if c.dist < 0 || c.dist > maxCD {
			continue
		}
		t := float64(c.dist) / float64(maxCD)
		falloff := (1 - t) * (1 - t)
		p := mesh.RXYZ[r]

		sn := coastalBasis.Fbm(p.X*20, p.Y*20, p.Z*20, 4)
		highFreq := falloff * (1 + 5*sn)
		if isOceanRegion(r) {
			highFreq *= 1 - float64(c.subduct)
		}
		elev[r] += float32(0.04 * highFreq)

		if isOceanRegion(r) {
			isl := islandBasis.Fbm(p.X*8, p.Y*8, p.Z*8, 3)
			threshold := 0.6 - 0.3*float64(c.stress)
			excess := isl - threshold
			if excess > 0 {
				elev[r] += float32(0.3 * excess * excess * falloff)
			}
		}

		warpAmp := 0.1 + 0.6*falloff
		wx := p.X + warpAmp*warpBasis.Fbm(p.X+5, p.Y+5, p.Z+5, 3)
		wy := p.Y + warpAmp*warpBasis.Fbm(p.X+17, p.Y+17, p.Z+17, 3)
		wz := p.Z + warpAmp*warpBasis.Fbm(p.X+29, p.Y+29, p.Z+29, 3)
		elev[r] += float32(0.15 * falloff * warpBasis.Fbm(wx*4, wy*4, wz*4, 3))
	}
}

// addIslandArcs implements spec §4.F step 7: ocean cells within maxArcDist
// of a convergent, both-ocean, lightly-subducting cell, reached by staying
// on the same plate, get a Gaussian-distance-weighted ridged-noise uplift.
func addIslandArcs(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, rSubductFactor []float32, rBoundaryType []uint8, elev []float32, arcBasis *noise.Basis) {
	n := mesh.NumRegions
	maxAD := maxArcDist(n)

	isOceanRegion := func(r int) bool { return plates.IsOcean[rPlate[r]] }

	type frontierEntry struct {
		region   int
		dist     int
		arcPlate int32
		arcStr   float64
	}

	dist := make([]int, n)
	arcStrength := make([]float64, n)
	for i := range dist {
		dist[i] = -1
	}

	queue := make([]frontierEntry, 0, n/8)
	for r := 0; r < n; r++ {
		if rBoundaryType[r] != core.BoundaryConvergent || !isOceanRegion(r) {
			continue
		}
		if rSubductFactor[r] >= 0.45 {
			continue
		}
		bothOcean := false
		for _, nbr32 := range mesh.Neighbors(r) {
			if rPlate[nbr32] != rPlate[r] && isOceanRegion(int(nbr32)) {
				bothOcean = true
				break
			}
		}
		if !bothOcean {
			continue
		}
		arcStr := 1 - float64(rSubductFactor[r])/0.45
		dist[r] = 0
		arcStrength[r] = arcStr
		queue = append(queue, frontierEntry{region: r, dist: 0, arcPlate: rPlate[r], arcStr: arcStr})
	}

	for head := 0; head < len(queue); head++ {
		e := queue[head]
		if e.dist >= maxAD {
			continue
		}
		for _, nbr32 := range mesh.Neighbors(e.region) {
			nbr := int(nbr32)
			if dist[nbr] != -1 || rPlate[nbr] != e.arcPlate || !isOceanRegion(nbr) {
				continue
			}
			dist[nbr] = e.dist + 1
			arcStrength[nbr] = e.arcStr
			queue = append(queue, frontierEntry{region: nbr, dist: e.dist + 1, arcPlate: e.arcPlate, arcStr: e.arcStr})
		}
	}

	sigma := float64(maxAD) / 2
	for r := 0; r < n; r++ {
		if dist[r] < 0 {
			continue
		}
		d := float64(dist[r])
		w := math.Exp(-0.5 * (d / sigma) * (d / sigma))
		p := mesh.RXYZ[r]
		ridged := arcBasis.RidgedFbm(p.X*6, p.Y*6, p.Z*6, 4)
		uplift := ridged * w
		if uplift > 0.55 {
			uplift = 0.55
		}
		elev[r] += float32(uplift * (0.5 + arcStrength[r]))
	}
}

func invOrZero(d int32) float64 {
	if d == distfield.Unreachable {
		return 0
	}
	return 1 / (float64(d) + eps)
}

// buildDistCoast implements spec §4.F step 4: distance from every
// ocean-adjacent land cell's ocean neighbor, unblocked — an ocean-floor
// depth feature seeded at every ocean region directly touching land.
func buildDistCoast(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, rng *core.Rng) []int32 {
	seeds := []int{}
	for r := 0; r < mesh.NumRegions; r++ {
		if plates.IsOcean[rPlate[r]] {
			continue
		}
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			if plates.IsOcean[rPlate[nbr]] {
				seeds = append(seeds, nbr)
			}
		}
	}
	return distfield.Assign(mesh, seeds, nil, rng)
}

func hasOceanNeighbor(mesh *core.SphereMesh, r int, plates *core.PlateSet, rPlate []int32) bool {
	for _, nbr32 := range mesh.Neighbors(r) {
		if plates.IsOcean[rPlate[int(nbr32)]] {
			return true
		}
	}
	return false
}

// oceanDepthBase is the piecewise-linear ocean-depth shelf/slope/abyssal
// profile of spec §4.F step 5: a gentle shelf for the first 5 hops from
// shore, a steeper slope from 5-12, and a mild abyssal floor beyond.
func oceanDepthBase(distCoast int32) float64 {
	if distCoast == distfield.Unreachable {
		return -0.8
	}
	d := float64(distCoast)
	switch {
	case d <= 5:
		return -0.05 - d*0.03
	case d <= 12:
		return -0.2 - (d-5)*0.07
	default:
		return -0.69
	}
}
