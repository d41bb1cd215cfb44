package core

import "math/rand"

// Rng is an explicit, per-stage deterministic random source. Spec §9
// ("Global/module state") calls for no singleton RNG: every stage receives
// its own Rng, seeded by the caller (typically the pipeline seed offset by
// a small per-stage constant, e.g. seed+1, seed+2 — see pipeline package).
type Rng struct {
	r *rand.Rand
}

// NewRng creates a deterministic RNG from a 64-bit seed.
func NewRng(seed uint64) *Rng {
	return &Rng{r: rand.New(rand.NewSource(int64(seed)))}
}

// Float64 returns a pseudo-random number in [0,1).
func (g *Rng) Float64() float64 {
	return g.r.Float64()
}

// IntN returns a pseudo-random number in [0,n).
func (g *Rng) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}

// UnitVector3 returns a uniformly distributed random point on the unit
// sphere, used as a seed direction before projecting onto a tangent plane
// (spec §4.A).
func (g *Rng) UnitVector3() Vector3 {
	for {
		v := Vector3{
			X: 2*g.Float64() - 1,
			Y: 2*g.Float64() - 1,
			Z: 2*g.Float64() - 1,
		}
		if l := v.Length(); l > 1e-6 && l <= 1 {
			return v.Scale(1 / l)
		}
	}
}

// Derive produces an independent child RNG for a sub-stage, seeded with
// the parent's next Int63 draw plus offset, so the child depends on both
// the parent's seed and the offset.
func (g *Rng) Derive(offset uint64) *Rng {
	return NewRng(uint64(g.r.Int63()) + offset)
}
