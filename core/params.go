package core

import "math"

// Params is the engine's entry point (spec §6). Validate snaps Jitter,
// Roughness and the [0,1] sliders to a fixed step so that two hosts
// constructing the "same" Params from a coded representation get
// byte-identical floats (spec §7 category 1). AxialTilt is range-checked
// but not snapped.
type Params struct {
	Seed uint32 // [0, 2^24)
	N    uint32 // region count, 2,000 - 2,560,000

	Jitter float64 // [0,1], Fibonacci-point jitter (consumed, not produced, here)
	P      uint32  // plate count, 4-120

	NumContinents int // [1,10]

	Roughness float64 // [0, 0.5]

	Smoothing        float64 // [0,1]
	GlacialErosion   float64 // [0,1]
	HydraulicErosion float64 // [0,1]
	ThermalErosion   float64 // [0,1]
	RidgeSharpening  float64 // [0,1]
	SoilCreep        float64 // [0,1] — reserved; see spec §9 Open Question (iii)

	AxialTilt float64 // degrees, default 23.5

	ToggledPlateIndices []uint16 // post-hoc land/sea flips, applied after stage B
}

// DefaultParams returns a Params value with every field at its documented
// default, suitable as a base for a host-supplied override.
func DefaultParams() Params {
	return Params{
		Seed:             42,
		N:                10000,
		Jitter:           0.5,
		P:                12,
		NumContinents:    5,
		Roughness:        0.1,
		Smoothing:        0,
		GlacialErosion:   0,
		HydraulicErosion: 0,
		ThermalErosion:   0,
		RidgeSharpening:  0,
		SoilCreep:        0,
		AxialTilt:        23.5,
	}
}

// quantStep is the slider resolution used to snap normalized [0,1] fields to
// a reproducible step before they are encoded into a parameter code (spec
// §7 category 1: "Sliders snap to their step on entry"). 256 steps gives
// sub-percent resolution, comfortably finer than anything the simulation is
// sensitive to.
const quantStep = 1.0 / 256.0

func snap(x float64) float64 {
	return math.Round(x/quantStep) * quantStep
}

// Validate checks every field against its quantization table and snaps the
// normalized sliders to their step. It returns a ParamOutOfRange error
// naming the first offending field.
func (p *Params) Validate() error {
	if p.Seed >= 1<<24 {
		return NewParamOutOfRange("Seed")
	}
	if p.N < 2000 || p.N > 2560000 {
		return NewParamOutOfRange("N")
	}
	if p.Jitter < 0 || p.Jitter > 1 {
		return NewParamOutOfRange("Jitter")
	}
	if p.P < 4 || p.P > 120 {
		return NewParamOutOfRange("P")
	}
	if p.NumContinents < 1 || p.NumContinents > 10 {
		return NewParamOutOfRange("NumContinents")
	}
	if p.Roughness < 0 || p.Roughness > 0.5 {
		return NewParamOutOfRange("Roughness")
	}
	for _, f := range []struct {
		name string
		val  *float64
	}{
		{"Smoothing", &p.Smoothing},
		{"GlacialErosion", &p.GlacialErosion},
		{"HydraulicErosion", &p.HydraulicErosion},
		{"ThermalErosion", &p.ThermalErosion},
		{"RidgeSharpening", &p.RidgeSharpening},
		{"SoilCreep", &p.SoilCreep},
	} {
		if *f.val < 0 || *f.val > 1 {
			return NewParamOutOfRange(f.name)
		}
		*f.val = snap(*f.val)
	}
	if p.AxialTilt < 0 || p.AxialTilt > 90 {
		return NewParamOutOfRange("AxialTilt")
	}
	p.Jitter = snap(p.Jitter)
	p.Roughness = math.Round(p.Roughness/quantStep) * quantStep
	return nil
}
