package core

import "time"

// BoundaryType values for RBoundaryType (spec §3).
const (
	BoundaryInterior uint8 = iota
	BoundaryConvergent
	BoundaryDivergent
	BoundaryTransform
)

// PlateSet holds the per-plate attributes of spec §3 ("Per-plate
// attributes"). Indexed by plate id, length NumPlates.
type PlateSet struct {
	SeedRegion []int
	Drift      []Vector3 // tangent unit vector at the seed
	Density    []float64 // [2.4, 3.5]
	IsOcean    []bool
}

func NewPlateSet(n int) *PlateSet {
	return &PlateSet{
		SeedRegion: make([]int, n),
		Drift:      make([]Vector3, n),
		Density:    make([]float64, n),
		IsOcean:    make([]bool, n),
	}
}

// StageTiming records how long one pipeline stage took (spec §6 "Outputs").
type StageTiming struct {
	Label    string
	Duration time.Duration
}

// Diagnostics are non-fatal observations recorded during the run (spec §7:
// "diagnostics log a warning (not a failure)").
type Diagnostics struct {
	NaNCount        int
	LowLandFraction bool
}

// Planet is the single owner of the mesh reference and every per-region
// array produced by the pipeline (spec §3 "Ownership & lifecycle"). Arrays
// are populated in strict stage order A->L and, once written, are not
// mutated by later stages except along the documented A->...->F->G chain.
type Planet struct {
	Mesh     *SphereMesh
	Geometry []RegionGeometry

	Plates *PlateSet
	RPlate []int32

	RElevation      []float32
	RStress         []float32
	RSubductFactor  []float32
	RBoundaryType   []uint8

	RPressureSummer []float32
	RPressureWinter []float32

	RWindEastSummer, RWindNorthSummer []float32
	RWindEastWinter, RWindNorthWinter []float32
	RWindSpeedSummer, RWindSpeedWinter []float32

	ROceanCurrentEastSummer, ROceanCurrentNorthSummer []float32
	ROceanCurrentEastWinter, ROceanCurrentNorthWinter []float32
	ROceanSpeedSummer, ROceanSpeedWinter               []float32
	ROceanWarmthSummer, ROceanWarmthWinter              []float32

	RPrecipSummer, RPrecipWinter           []float32
	RTemperatureSummer, RTemperatureWinter []float32

	RKoppen []uint8

	Timings     []StageTiming
	Diagnostics Diagnostics
}

// NewPlanet allocates every per-region array for a mesh with the given
// number of plates. Arrays start zeroed; each stage is responsible for
// filling in its own fields.
func NewPlanet(mesh *SphereMesh, numPlates int) *Planet {
	n := mesh.NumRegions
	f32 := func() []float32 { return make([]float32, n) }

	return &Planet{
		Mesh:     mesh,
		Geometry: ComputeGeometry(mesh),
		Plates:   NewPlateSet(numPlates),
		RPlate:   make([]int32, n),

		RElevation:     f32(),
		RStress:        f32(),
		RSubductFactor: f32(),
		RBoundaryType:  make([]uint8, n),

		RPressureSummer: f32(),
		RPressureWinter: f32(),

		RWindEastSummer:  f32(),
		RWindNorthSummer: f32(),
		RWindEastWinter:  f32(),
		RWindNorthWinter: f32(),
		RWindSpeedSummer: f32(),
		RWindSpeedWinter: f32(),

		ROceanCurrentEastSummer:  f32(),
		ROceanCurrentNorthSummer: f32(),
		ROceanCurrentEastWinter:  f32(),
		ROceanCurrentNorthWinter: f32(),
		ROceanSpeedSummer:        f32(),
		ROceanSpeedWinter:        f32(),
		ROceanWarmthSummer:       f32(),
		ROceanWarmthWinter:       f32(),

		RPrecipSummer:      f32(),
		RPrecipWinter:      f32(),
		RTemperatureSummer: f32(),
		RTemperatureWinter: f32(),

		RKoppen: make([]uint8, n),
	}
}

// Reporter is the caller-supplied progress sink (spec §6 "Progress stream").
// percent is cumulative across the whole pipeline, not per-stage.
type Reporter func(percent float64, label string)
