package tectonics

import (
	"math"

	"planetgen/core"
)

// DecayParams bundles the three quantities spec §4.D derives from
// `spread` and the mesh resolution before running the frontier-BFS.
//
// Spec §4.D names a `spread` input to this stage that has no matching
// field in the documented Params struct (only `roughness` is ever
// threaded through). Scenario 5 in spec §8 exercises decay/subductDecay/
// numPasses directly as already-computed values, so PropagateStress takes
// them as arguments rather than re-deriving them from Params — this
// keeps the BFS itself independently testable. ComputeDecayParams is the
// pipeline-facing helper that derives them from Roughness, under the
// resolution spread = Roughness*10 (documented as an Open Question
// decision): roughness's full range [0,0.5] maps to spread [0,5],
// keeping baseDecay in [0.5, 0.7] — a physically sane decay band.
func ComputeDecayParams(roughness float64, numRegions int) (numPasses int, decayFactor, subductDecayFactor float64) {
	spread := roughness * 10
	scale := math.Sqrt(float64(numRegions) / 10000.0)

	numPasses = int(math.Round(3 * spread * scale))
	if numPasses < 1 {
		numPasses = 1
	}

	baseDecay := 0.5 + 0.04*spread
	exp := 1.0
	if scale > 1e-9 {
		exp = 1 / scale
	}
	decayFactor = math.Pow(baseDecay, exp)
	subductDecayFactor = math.Pow(baseDecay*0.45, exp)
	return numPasses, decayFactor, subductDecayFactor
}

// PropagateStress implements spec §4.D: frontier-BFS diffusion of stress
// inward from plate boundaries, along intra-plate neighbors only, stopping
// at numPasses or once propagated stress drops below 0.005. rStress and
// rSubductFactor are mutated in place; rStress must already hold stage C's
// per-boundary-region stress values.
func PropagateStress(mesh *core.SphereMesh, rPlate []int32, isOcean []bool, rStress, rSubductFactor []float32, numPasses int, decayFactor, subductDecayFactor float64) {
	const seedThreshold = 0.01
	const stopThreshold = 0.005

	frontier := make([]int, 0, mesh.NumRegions/8)
	for r := 0; r < mesh.NumRegions; r++ {
		if rStress[r] > seedThreshold {
			frontier = append(frontier, r)
		}
	}

	for pass := 0; pass < numPasses && len(frontier) > 0; pass++ {
		next := make([]int, 0, len(frontier))
		anyPropagated := false

		for _, r := range frontier {
			pr := rPlate[r]
			if isOcean[pr] {
				continue
			}

			effDecay := decayFactor
			if rSubductFactor[r] > 0.5 {
				effDecay = subductDecayFactor
			}
			propagated := float64(rStress[r]) * effDecay
			if propagated < stopThreshold {
				continue
			}

			for _, nbr32 := range mesh.Neighbors(r) {
				nbr := int(nbr32)
				if rPlate[nbr] != pr {
					continue
				}
				if propagated > float64(rStress[nbr]) {
					rStress[nbr] = float32(propagated)
					rSubductFactor[nbr] = rSubductFactor[r]
					next = append(next, nbr)
					anyPropagated = true
				}
			}
		}

		if !anyPropagated {
			break
		}
		frontier = next
	}
}
