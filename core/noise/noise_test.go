package noise

import "testing"

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for _, p := range [][3]float64{{0, 0, 0}, {1.5, -2.3, 0.7}, {10, 10, 10}} {
		na := a.Noise3D(p[0], p[1], p[2])
		nb := b.Noise3D(p[0], p[1], p[2])
		if na != nb {
			t.Errorf("Noise3D(%v) not deterministic: %v != %v", p, na, nb)
		}
	}
}

func TestFbmBounded(t *testing.T) {
	b := New(7)
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.37
		v := b.Fbm(x, x*1.1, x*0.9, 3)
		if v < -1.5 || v > 1.5 {
			t.Errorf("Fbm out of expected range: %v", v)
		}
	}
}

func TestRidgedFbmNonNegativeBias(t *testing.T) {
	b := New(7)
	sum := 0.0
	const n = 200
	for i := 0; i < n; i++ {
		x := float64(i) * 0.13
		sum += b.RidgedFbm(x, x*0.5, x*1.7, 3)
	}
	mean := sum / n
	if mean < 0 {
		t.Errorf("ridgedFbm mean = %v, expected a non-negative bias (folded noise)", mean)
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	const n = 20
	for i := 0; i < n; i++ {
		// Perlin noise is zero at integer lattice points for every seed, so
		// the samples are taken off the lattice.
		x := float64(i)*0.37 + 0.13
		if a.Noise3D(x, x, x) == b.Noise3D(x, x, x) {
			same++
		}
	}
	if same == n {
		t.Errorf("different seeds produced identical noise for all %d samples", n)
	}
}
