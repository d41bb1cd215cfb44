// Package tectonics implements spec §4.A-§4.D: plate assignment and drift,
// ocean/land plate tagging, plate-boundary collision & stress, and stress
// propagation. Boundary classification follows a relative-velocity
// dot-product test and flood-fill plate identification, generalized from a
// voxel-shell adjacency to the mesh's flat region adjacency, with
// tangent-vector drift generation in the style of a generatePlateVelocity
// helper.
package tectonics

import "planetgen/core"

// AssignPlates implements spec §4.A: region->plate labeling by randomized
// BFS flood-fill from P seed regions, plus each plate's drift vector.
// Density is left at zero here: AssignOceans draws it, since spec §4.A's
// density ranges depend on the §4.B ocean/land tag that is produced one
// stage later.
func AssignPlates(mesh *core.SphereMesh, numPlates int, rng *core.Rng) (rPlate []int32, plates *core.PlateSet) {
	n := mesh.NumRegions
	rPlate = make([]int32, n)
	for i := range rPlate {
		rPlate[i] = -1
	}

	plates = core.NewPlateSet(numPlates)
	seeds := pickDistinctSeeds(n, numPlates, rng)
	for pid, seed := range seeds {
		plates.SeedRegion[pid] = seed
		plates.Drift[pid] = driftVector(mesh.RXYZ[seed], rng)
		rPlate[seed] = int32(pid)
	}

	growPlatesBFS(mesh, rPlate, seeds, rng)
	return rPlate, plates
}

func pickDistinctSeeds(numRegions, numPlates int, rng *core.Rng) []int {
	seen := make(map[int]bool, numPlates)
	seeds := make([]int, 0, numPlates)
	for len(seeds) < numPlates {
		r := rng.IntN(numRegions)
		if seen[r] {
			continue
		}
		seen[r] = true
		seeds = append(seeds, r)
	}
	return seeds
}

// driftVector projects a uniformly random 3-vector onto the tangent plane
// at the seed position and normalizes it, as spec §4.A requires.
func driftVector(seedPos core.Vector3, rng *core.Rng) core.Vector3 {
	random := rng.UnitVector3()
	tangential := random.Sub(seedPos.Scale(random.Dot(seedPos)))
	if tangential.Length() < 1e-9 {
		frame := core.BuildTangentFrame(seedPos)
		return frame.East
	}
	return tangential.Normalize()
}

// queueEntry is a frontier element for the multi-source randomized BFS that
// grows every plate simultaneously from its seed.
type queueEntry struct {
	region int
	plate  int32
}

// growPlatesBFS performs the randomized multi-source BFS described in spec
// §4.A: a single shared frontier queue seeded with every plate's seed
// region; at each step a random remaining queue position is swapped to the
// head and popped (the same randomized-pop pattern used by the distance-
// field engine in §4.E), so plate boundaries fall out of RNG tie-breaking
// rather than seed insertion order.
func growPlatesBFS(mesh *core.SphereMesh, rPlate []int32, seeds []int, rng *core.Rng) {
	queue := make([]queueEntry, len(seeds))
	for i, s := range seeds {
		queue[i] = queueEntry{region: s, plate: int32(i)}
	}

	for qi := 0; qi < len(queue); qi++ {
		remaining := len(queue) - qi
		pick := qi + rng.IntN(remaining)
		queue[qi], queue[pick] = queue[pick], queue[qi]

		cur := queue[qi]
		for _, nbr := range mesh.Neighbors(cur.region) {
			if rPlate[nbr] != -1 {
				continue
			}
			rPlate[nbr] = cur.plate
			queue = append(queue, queueEntry{region: int(nbr), plate: cur.plate})
		}
	}
}
