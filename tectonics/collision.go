package tectonics

import (
	"math"

	"planetgen/core"
	"planetgen/core/noise"
)

// CollisionResult holds the seed sets spec §4.F consumes from stage C:
// boundary regions classified as prospective mountains, coastlines or
// ocean floor, keyed by the best-neighbor boundary classification.
type CollisionResult struct {
	Mountain   map[int]bool
	Coastline  map[int]bool
	Ocean      map[int]bool
}

// TimeStep is spec §4.C's dt: 1e-2 / max(1, sqrt(N/10000)), the plate
// advance distance used to probe boundary compression.
func TimeStep(numRegions int) float64 {
	scale := math.Sqrt(float64(numRegions) / 10000.0)
	if scale < 1 {
		scale = 1
	}
	return 1e-2 / scale
}

// DetectCollisions implements spec §4.C. For every region it finds the
// cross-plate neighbor with the greatest compression (distance reduction
// after both endpoints advance by their plate's drift vector for one dt),
// classifies the boundary type, and — for regions where compression
// exceeds the collision threshold — computes stress and subduction factor.
func DetectCollisions(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, noiseBasis *noise.Basis) (rStress, rSubductFactor []float32, rBoundaryType []uint8, result CollisionResult) {
	n := mesh.NumRegions
	rStress = make([]float32, n)
	rSubductFactor = make([]float32, n)
	rBoundaryType = make([]uint8, n)
	result = CollisionResult{Mountain: map[int]bool{}, Coastline: map[int]bool{}, Ocean: map[int]bool{}}

	dt := TimeStep(n)

	for r := 0; r < n; r++ {
		pr := int(rPlate[r])
		posR := mesh.RXYZ[r]
		advR := posR.Add(plates.Drift[pr].Scale(dt))

		bestNbr := -1
		bestComp := -math.MaxFloat64
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			pn := int(rPlate[nbr])
			if pn == pr {
				continue
			}
			posN := mesh.RXYZ[nbr]
			advN := posN.Add(plates.Drift[pn].Scale(dt))

			before := posR.Sub(posN).Length()
			after := advR.Sub(advN).Length()
			comp := before - after
			if comp > bestComp {
				bestComp = comp
				bestNbr = nbr
			}
		}

		if bestNbr == -1 {
			rBoundaryType[r] = core.BoundaryInterior
			continue
		}

		pn := int(rPlate[bestNbr])
		posN := mesh.RXYZ[bestNbr]
		sep := posR.Sub(posN)
		sepLen := sep.Length()

		var bestNormalComp float64
		if sepLen > 1e-12 {
			relVel := plates.Drift[pr].Sub(plates.Drift[pn])
			bestNormalComp = -relVel.Dot(sep) / sepLen
		}

		switch {
		case bestNormalComp > 0.3*dt:
			rBoundaryType[r] = core.BoundaryConvergent
		case bestNormalComp < -0.3*dt:
			rBoundaryType[r] = core.BoundaryDivergent
		default:
			rBoundaryType[r] = core.BoundaryTransform
		}

		rOcean := plates.IsOcean[pr]
		nOcean := plates.IsOcean[pn]
		bothOcean := rOcean && nOcean
		hasOcean := rOcean || nOcean

		colliding := bestComp > 0.75*dt

		if colliding {
			intensity := pairIntensity(pr, pn)
			rStress[r] = float32(bestComp / dt * intensity)

			densR, densN := plates.Density[pr], plates.Density[pn]
			undulation := noiseBasis.Fbm(posR.X*6, posR.Y*6, posR.Z*6, 3) * 0.4 * math.Exp(-12*math.Abs(densR-densN))
			sf := 0.5 + 0.5*math.Tanh(8*(densR-densN)) + undulation
			rSubductFactor[r] = float32(clamp01(sf))
		}

		switch {
		case bothOcean:
			if colliding {
				result.Coastline[r] = true
			} else {
				result.Ocean[r] = true
			}
		case !hasOcean: // both land
			if colliding {
				if rSubductFactor[r] < 0.55 {
					result.Mountain[r] = true
				} else {
					result.Coastline[r] = true
				}
			}
		default: // land meets ocean
			if colliding {
				result.Mountain[r] = true
			} else {
				result.Coastline[r] = true
			}
		}
	}

	return rStress, rSubductFactor, rBoundaryType, result
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

// pairIntensity deterministically hashes an unordered plate pair into
// [0.5, 1.5], so the same pair of plates always produces the same stress
// multiplier regardless of iteration order (spec §4.C).
func pairIntensity(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	h := uint64(a)*2654435761 + uint64(b)*40503
	h ^= h >> 15
	h *= 2246822519
	h ^= h >> 13
	frac := float64(h%1_000_000) / 1_000_000.0
	return 0.5 + frac
}
