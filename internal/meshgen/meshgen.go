// Package meshgen builds a minimal SphereMesh for the cmd/planetgen CLI
// demo. Mesh construction (Fibonacci point generation, spherical Delaunay,
// pole closure) is explicitly out of scope for this module — it is
// consumed as a pre-built adjacency structure — so this package is
// deliberately small: a Fibonacci lattice plus a k-nearest-neighbor
// adjacency, good enough to drive the pipeline end to end, not a
// substitute for a real mesh generator.
package meshgen

import (
	"math"
	"sort"

	"planetgen/core"
)

// neighborCount is the fixed adjacency degree used in place of a true
// Delaunay triangulation.
const neighborCount = 6

// Build lays out n points on a Fibonacci sphere and connects each to its
// neighborCount nearest neighbors by angular distance.
func Build(n int) *core.SphereMesh {
	points := fibonacciSphere(n)
	adjacency := make([][]int32, n)

	for i, p := range points {
		type cand struct {
			idx  int32
			dist float64
		}
		candidates := make([]cand, 0, n-1)
		for j, q := range points {
			if i == j {
				continue
			}
			candidates = append(candidates, cand{idx: int32(j), dist: p.Sub(q).Length()})
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })

		k := neighborCount
		if k > len(candidates) {
			k = len(candidates)
		}
		nbrs := make([]int32, k)
		for m := 0; m < k; m++ {
			nbrs[m] = candidates[m].idx
		}
		adjacency[i] = nbrs
	}

	return core.NewSphereMesh(points, adjacency)
}

// fibonacciSphere places n points approximately evenly over the unit
// sphere using the golden-angle spiral construction.
func fibonacciSphere(n int) []core.Vector3 {
	points := make([]core.Vector3, n)
	goldenAngle := math.Pi * (3 - math.Sqrt(5))

	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		radius := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)

		points[i] = core.Vector3{
			X: math.Cos(theta) * radius,
			Y: y,
			Z: math.Sin(theta) * radius,
		}
	}
	return points
}
