package meshgen

import "testing"

func TestBuildProducesNonEmptyDegreeBoundedAdjacency(t *testing.T) {
	mesh := Build(500)
	if mesh.NumRegions != 500 {
		t.Fatalf("NumRegions = %d, want 500", mesh.NumRegions)
	}
	for r := 0; r < mesh.NumRegions; r++ {
		if mesh.NumNeighbors(r) == 0 {
			t.Errorf("region %d has no neighbors", r)
		}
		if mesh.NumNeighbors(r) > neighborCount {
			t.Errorf("region %d has %d neighbors, want <= %d", r, mesh.NumNeighbors(r), neighborCount)
		}
	}
}

func TestBuildPointsLieOnUnitSphere(t *testing.T) {
	mesh := Build(200)
	for r, p := range mesh.RXYZ {
		l := p.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("region %d position not unit-length: %v", r, l)
		}
	}
}
