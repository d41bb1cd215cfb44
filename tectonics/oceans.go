package tectonics

import (
	"math"
	"sort"

	"planetgen/core"
)

// landFractionTarget resolves spec §4.B's "target land fraction" — spacing-
// rule seed selection followed by BFS growth to a target, without a fixed
// target value. This ties it to numContinents, landing inside the
// [0.15, 0.55] band spec §8 scenario 1 expects for numContinents=3.
func landFractionTarget(numContinents int) float64 {
	f := 0.08*float64(numContinents) + 0.1
	if f < 0.15 {
		f = 0.15
	}
	if f > 0.55 {
		f = 0.55
	}
	return f
}

// AssignOceans implements spec §4.B and finishes spec §4.A's density draw
// (which depends on the ocean/land tag this stage produces). It picks
// numContinents seeds by largest-minimum-angular-separation, grows land
// status by BFS over the plate-adjacency graph toward landFractionTarget,
// then draws each plate's density from the land or ocean range.
func AssignOceans(mesh *core.SphereMesh, rPlate []int32, plates *core.PlateSet, numContinents int, rng *core.Rng) {
	numPlates := len(plates.SeedRegion)
	for i := range plates.IsOcean {
		plates.IsOcean[i] = true
	}

	seedPos := make([]core.Vector3, numPlates)
	for p := 0; p < numPlates; p++ {
		seedPos[p] = mesh.RXYZ[plates.SeedRegion[p]]
	}

	continents := pickSpacedContinents(seedPos, numContinents, rng)
	for _, p := range continents {
		plates.IsOcean[p] = false
	}

	plateAdj := buildPlateAdjacency(mesh, rPlate, numPlates)
	regionCount := make([]int, numPlates)
	for _, pid := range rPlate {
		regionCount[pid]++
	}

	growLandByBFS(plateAdj, seedPos, plates.IsOcean, regionCount, len(rPlate), landFractionTarget(numContinents))

	for p := 0; p < numPlates; p++ {
		if plates.IsOcean[p] {
			plates.Density[p] = 3.0 + rng.Float64()*0.5
		} else {
			plates.Density[p] = 2.4 + rng.Float64()*0.5
		}
	}
}

// pickSpacedContinents greedily selects numContinents plate indices that
// maximize the minimum angular separation among the picks (farthest-point
// sampling on the sphere), per spec §4.B's "spacing rule".
func pickSpacedContinents(seedPos []core.Vector3, numContinents int, rng *core.Rng) []int {
	n := len(seedPos)
	if numContinents > n {
		numContinents = n
	}
	chosen := []int{rng.IntN(n)}

	for len(chosen) < numContinents {
		best, bestMinDist := -1, -1.0
		for cand := 0; cand < n; cand++ {
			if contains(chosen, cand) {
				continue
			}
			minDist := math.MaxFloat64
			for _, c := range chosen {
				d := angularDistance(seedPos[cand], seedPos[c])
				if d < minDist {
					minDist = d
				}
			}
			if minDist > bestMinDist {
				bestMinDist = minDist
				best = cand
			}
		}
		if best == -1 {
			break
		}
		chosen = append(chosen, best)
	}
	return chosen
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func angularDistance(a, b core.Vector3) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	}
	if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// buildPlateAdjacency derives the plate-level adjacency graph from the
// region-level mesh adjacency: two plates are adjacent if any pair of
// neighboring regions belongs to each.
func buildPlateAdjacency(mesh *core.SphereMesh, rPlate []int32, numPlates int) [][]int {
	adjSet := make([]map[int]bool, numPlates)
	for i := range adjSet {
		adjSet[i] = make(map[int]bool)
	}
	for r := 0; r < mesh.NumRegions; r++ {
		pr := int(rPlate[r])
		for _, nbr := range mesh.Neighbors(r) {
			pn := int(rPlate[nbr])
			if pn != pr {
				adjSet[pr][pn] = true
			}
		}
	}
	adj := make([][]int, numPlates)
	for p, set := range adjSet {
		for other := range set {
			adj[p] = append(adj[p], other)
		}
		sort.Ints(adj[p])
	}
	return adj
}

// growLandByBFS expands the land-plate set by repeatedly annexing the
// ocean plate adjacent to an existing land plate whose seed sits closest to
// that land plate (spec §4.B: "preferring plates whose seed is near an
// existing land plate"), until the land area fraction reaches target or no
// further ocean plate is reachable.
func growLandByBFS(plateAdj [][]int, seedPos []core.Vector3, isOcean []bool, regionCount []int, totalRegions int, target float64) {
	landRegions := 0
	for p, oceanic := range isOcean {
		if !oceanic {
			landRegions += regionCount[p]
		}
	}

	for float64(landRegions)/float64(totalRegions) < target {
		bestPlate, bestDist := -1, math.MaxFloat64
		for p, oceanic := range isOcean {
			if !oceanic {
				continue
			}
			for _, nbr := range plateAdj[p] {
				if isOcean[nbr] {
					continue
				}
				d := angularDistance(seedPos[p], seedPos[nbr])
				if d < bestDist {
					bestDist = d
					bestPlate = p
				}
			}
		}
		if bestPlate == -1 {
			break
		}
		isOcean[bestPlate] = false
		landRegions += regionCount[bestPlate]
	}
}

// ApplyToggles flips the ocean/land status of the plates named in
// toggledPlateIndices (spec §6 Params field), applied after AssignOceans.
// Indices are plate ids in seed order, per spec §8 scenario 2.
func ApplyToggles(plates *core.PlateSet, toggled []uint16) {
	for _, idx := range toggled {
		if int(idx) < len(plates.IsOcean) {
			plates.IsOcean[idx] = !plates.IsOcean[idx]
		}
	}
}
