// Package distfield implements spec §4.E, the randomized-BFS distance-field
// engine shared by elevation assembly, coastal roughening and island arcs.
// It generalizes the randomized multi-source BFS already used for plate
// growth in tectonics.AssignPlates (the same swap-to-head queue-position
// trick), parameterized over an arbitrary seed set and a barrier set.
package distfield

import "planetgen/core"

// Unreachable marks a region that no seed could reach, either because it is
// disconnected from every seed or because it is itself a barrier.
const Unreachable = int32(1<<31 - 1)

type queueEntry struct {
	region int
	dist   int32
}

// Assign implements spec §4.E's assignDistanceField(seeds, stops, seed): it
// returns integer hop distances from the nearest seed region, Unreachable
// everywhere a seed can't reach. Regions in stops act as barriers — they
// never receive a distance, even when they are also listed as a seed, and
// nothing propagates through them. The queue starts with every seed at distance 0; at each
// step a random remaining queue position is swapped to the head before
// being popped, so which of several equidistant paths "wins" is RNG-driven
// but fully deterministic for a fixed seed and input set.
func Assign(mesh *core.SphereMesh, seeds []int, stops map[int]bool, rng *core.Rng) []int32 {
	dist := make([]int32, mesh.NumRegions)
	for i := range dist {
		dist[i] = Unreachable
	}

	queue := make([]queueEntry, 0, len(seeds))
	for _, s := range seeds {
		if stops[s] {
			continue
		}
		if dist[s] == Unreachable {
			dist[s] = 0
			queue = append(queue, queueEntry{region: s, dist: 0})
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		remaining := len(queue) - qi
		pick := qi + rng.IntN(remaining)
		queue[qi], queue[pick] = queue[pick], queue[qi]

		cur := queue[qi]
		for _, nbr32 := range mesh.Neighbors(cur.region) {
			nbr := int(nbr32)
			if dist[nbr] != Unreachable {
				continue
			}
			if stops[nbr] {
				continue
			}
			dist[nbr] = cur.dist + 1
			queue = append(queue, queueEntry{region: nbr, dist: cur.dist + 1})
		}
	}

	return dist
}
