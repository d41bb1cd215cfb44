// Package noise implements the single noise basis required by spec §9:
// a 3D value-noise primitive plus fbm/ridgedFbm combinators built on it.
//
// The primitive is github.com/aquilax/go-perlin. go-perlin's own Noise3D
// already sums multiple octaves internally (its alpha/beta/n constructor
// arguments), which doesn't match spec §9's requirement that callers choose
// octave count, lacunarity and gain per call site (2..3 octaves for most
// features, 4 for the coastal and ridged layers). So the generator is configured
// for a single octave (n=1) and used purely as the noise(x,y,z) primitive;
// the octave summation loop below is this package's own terrainNoise/
// ridgeNoise-style fbm/ridged-fbm composition.
package noise

import "github.com/aquilax/go-perlin"

// Basis is a seeded noise generator providing noise, fbm and ridgedFbm.
type Basis struct {
	p *perlin.Perlin
}

// New creates a noise basis from a 64-bit seed. The seed threads directly
// into go-perlin's permutation table, so two Basis values built from the
// same seed produce byte-identical output (spec §8 determinism).
func New(seed int64) *Basis {
	const alpha, beta = 2.0, 2.0
	return &Basis{p: perlin.NewPerlin(alpha, beta, 1, seed)}
}

// Noise3D returns the base value noise at (x,y,z), approximately in
// [-1, 1].
func (b *Basis) Noise3D(x, y, z float64) float64 {
	return b.p.Noise3D(x, y, z)
}

// Fbm sums octaves of noise at increasing frequency and decreasing
// amplitude: frequency *= lacunarity, amplitude *= gain, each octave.
// Passing lacunarity <= 0 or gain <= 0 selects the conventional defaults
// (2.0 and 0.5 respectively).
func (b *Basis) Fbm(x, y, z float64, octaves int, lacunarityGain ...float64) float64 {
	lacunarity, gain := 2.0, 0.5
	if len(lacunarityGain) > 0 && lacunarityGain[0] > 0 {
		lacunarity = lacunarityGain[0]
	}
	if len(lacunarityGain) > 1 && lacunarityGain[1] > 0 {
		gain = lacunarityGain[1]
	}

	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * b.Noise3D(x*freq, y*freq, z*freq)
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// RidgedFbm produces the "mountain ridge" variant: each octave is folded
// around zero (1 - |n|) and squared before accumulation, the classic
// Perlin/Musgrave ridged-multifractal construction, seeded from the same
// Noise3D primitive as Fbm.
func (b *Basis) RidgedFbm(x, y, z float64, octaves int, lacunarityGainOffset ...float64) float64 {
	lacunarity, gain, offset := 2.0, 0.5, 1.0
	if len(lacunarityGainOffset) > 0 && lacunarityGainOffset[0] > 0 {
		lacunarity = lacunarityGainOffset[0]
	}
	if len(lacunarityGainOffset) > 1 && lacunarityGainOffset[1] > 0 {
		gain = lacunarityGainOffset[1]
	}
	if len(lacunarityGainOffset) > 2 {
		offset = lacunarityGainOffset[2]
	}

	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		n := b.Noise3D(x*freq, y*freq, z*freq)
		ridge := offset - absf(n)
		ridge *= ridge
		sum += amp * ridge
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
