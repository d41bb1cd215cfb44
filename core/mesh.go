package core

// SphereMesh is the dual Voronoi/Delaunay mesh on the unit sphere that the
// pipeline consumes as input. It is built upstream (Fibonacci point
// generation, spherical Delaunay, pole closure — spec §1 non-goal (e)) and
// treated here as an immutable, pre-built adjacency structure.
//
// Region ids are dense [0, NumRegions). AdjOffset/AdjList is the flat
// CSR-style adjacency layout called out in spec §9 ("Irregular-mesh
// kernels"): neighbors of region r are AdjList[AdjOffset[r]:AdjOffset[r+1]],
// in consistent rotational order.
type SphereMesh struct {
	NumRegions   int
	NumTriangles int

	RXYZ []Vector3 // per-region unit-sphere position

	AdjOffset []int // length NumRegions+1
	AdjList   []int32
}

// Neighbors returns the neighbor region ids of r, without allocating a new
// slice — callers must not mutate the returned slice.
func (m *SphereMesh) Neighbors(r int) []int32 {
	return m.AdjList[m.AdjOffset[r]:m.AdjOffset[r+1]]
}

// NumNeighbors is a small convenience used by kernels that only need a count.
func (m *SphereMesh) NumNeighbors(r int) int {
	return m.AdjOffset[r+1] - m.AdjOffset[r]
}

// NewSphereMesh builds a mesh from a pre-computed region position list and
// a ragged adjacency list, flattening the latter into the CSR layout used
// throughout the pipeline. It does not validate mesh topology beyond basic
// shape — mesh construction and its invariants (pole closure, Delaunay
// quality) are outside this module's scope (spec §1 non-goal (e)).
func NewSphereMesh(rxyz []Vector3, adjacency [][]int32) *SphereMesh {
	n := len(rxyz)
	offsets := make([]int, n+1)
	total := 0
	for i, nbrs := range adjacency {
		offsets[i] = total
		total += len(nbrs)
	}
	offsets[n] = total

	flat := make([]int32, 0, total)
	for _, nbrs := range adjacency {
		flat = append(flat, nbrs...)
	}

	return &SphereMesh{
		NumRegions: n,
		RXYZ:       rxyz,
		AdjOffset:  offsets,
		AdjList:    flat,
	}
}
