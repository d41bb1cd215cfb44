// Package pipeline implements spec §5-§6: the dependency-ordered A->L
// stage scheduler, cooperative cancellation between stages, per-stage
// timing, and the progress reporter, in the style of a staged, resumable
// computation with a per-stage budget, generalized from a per-frame
// physics tick to this pipeline's one-shot A->L run.
package pipeline

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"planetgen/atmosphere"
	"planetgen/climate"
	"planetgen/core"
	"planetgen/core/noise"
	"planetgen/elevation"
	"planetgen/ocean"
	"planetgen/tectonics"
)

// stageShare is spec §2's per-component budget, used only to weight the
// progress reporter; it has no effect on the computation itself.
var stageShare = map[string]float64{
	"plate_assignment":   5,
	"ocean_tagging":      3,
	"collision":          10,
	"stress_propagation": 4,
	"elevation":          18,
	"postprocess":        6,
	"wind":               18,
	"ocean_currents":     8,
	"precipitation":      8,
	"temperature":        8,
	"koppen":             12,
}

// Run executes the full pipeline A->L for the given Params over a
// pre-built mesh (mesh construction is outside this module's scope — spec
// §1 non-goal (e)), reporting progress through reporter and honoring
// cooperative cancellation via ctx: the context is only checked at stage
// boundaries, never mid-kernel (spec §5 "Suspension/cancellation").
func Run(ctx context.Context, mesh *core.SphereMesh, p core.Params, reporter core.Reporter) (*core.Planet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	planet := core.NewPlanet(mesh, int(p.P))
	cumulative := 0.0

	report := func(stage string) {
		cumulative += stageShare[stage]
		if reporter != nil {
			reporter(cumulative, stage)
		}
	}

	runStage := func(name string, fn func() error) error {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		start := time.Now()
		if err := fn(); err != nil {
			return err
		}
		elapsed := time.Since(start)
		planet.Timings = append(planet.Timings, core.StageTiming{Label: name, Duration: elapsed})
		log.Debug().Str("stage", name).Dur("elapsed", elapsed).Msg("stage complete")
		report(name)
		return nil
	}

	seed := uint64(p.Seed)

	if err := runStage("plate_assignment", func() error {
		rPlate, plates := tectonics.AssignPlates(mesh, int(p.P), core.NewRng(seed))
		planet.RPlate = rPlate
		planet.Plates = plates
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("ocean_tagging", func() error {
		tectonics.AssignOceans(mesh, planet.RPlate, planet.Plates, p.NumContinents, core.NewRng(seed+50))
		tectonics.ApplyToggles(planet.Plates, p.ToggledPlateIndices)
		return nil
	}); err != nil {
		return nil, err
	}

	var collision tectonics.CollisionResult
	if err := runStage("collision", func() error {
		collisionBasis := noise.New(int64(seed) + 60)
		rStress, rSubductFactor, rBoundaryType, result := tectonics.DetectCollisions(mesh, planet.RPlate, planet.Plates, collisionBasis)
		planet.RStress = rStress
		planet.RSubductFactor = rSubductFactor
		planet.RBoundaryType = rBoundaryType
		collision = result
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("stress_propagation", func() error {
		numPasses, decay, subductDecay := tectonics.ComputeDecayParams(p.Roughness, mesh.NumRegions)
		tectonics.PropagateStress(mesh, planet.RPlate, planet.Plates.IsOcean, planet.RStress, planet.RSubductFactor, numPasses, decay, subductDecay)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("elevation", func() error {
		seeds := elevation.BuildSeeds(planet.Plates, planet.RPlate, collision)
		elev := elevation.Assemble(mesh, planet.RPlate, planet.Plates, planet.RStress, planet.RSubductFactor, planet.RBoundaryType, seeds, p.Seed)
		if bad, ok := firstNonFinite(elev); !ok {
			return core.NewInternal("elevation", "non-finite elevation at region "+strconv.Itoa(bad))
		}
		planet.RElevation = elev
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("postprocess", func() error {
		planet.RElevation = elevation.PostProcess(mesh, planet.Geometry, planet.RElevation, p)
		if bad, ok := firstNonFinite(planet.RElevation); !ok {
			return core.NewInternal("postprocess", "non-finite elevation at region "+strconv.Itoa(bad))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	isOcean := make([]bool, mesh.NumRegions)
	for r, e := range planet.RElevation {
		isOcean[r] = e <= 0
	}
	recordLandFraction(planet, isOcean)

	var itczSummer, itczWinter *atmosphere.ITCZSpline
	if err := runStage("wind", func() error {
		pressureBasis := noise.New(int64(seed) + 70)
		itczSummer = atmosphere.BuildITCZSpline(mesh, planet.Geometry, planet.RElevation, true)
		itczWinter = atmosphere.BuildITCZSpline(mesh, planet.Geometry, planet.RElevation, false)

		planet.RPressureSummer = atmosphere.BuildPressure(mesh, planet.Geometry, planet.RElevation, itczSummer, true, pressureBasis)
		planet.RPressureWinter = atmosphere.BuildPressure(mesh, planet.Geometry, planet.RElevation, itczWinter, false, pressureBasis)

		gradSummer := atmosphere.ComputeGradient(mesh, planet.Geometry, planet.RPressureSummer)
		gradWinter := atmosphere.ComputeGradient(mesh, planet.Geometry, planet.RPressureWinter)

		windSummer := atmosphere.ComputeWind(planet.Geometry, gradSummer)
		windWinter := atmosphere.ComputeWind(planet.Geometry, gradWinter)

		planet.RWindEastSummer, planet.RWindNorthSummer, planet.RWindSpeedSummer = windSummer.East, windSummer.North, windSummer.Speed
		planet.RWindEastWinter, planet.RWindNorthWinter, planet.RWindSpeedWinter = windWinter.East, windWinter.North, windWinter.Speed
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("ocean_currents", func() error {
		cSummer := ocean.Compute(mesh, planet.Geometry, isOcean, planet.RWindEastSummer, planet.RWindNorthSummer)
		cWinter := ocean.Compute(mesh, planet.Geometry, isOcean, planet.RWindEastWinter, planet.RWindNorthWinter)

		planet.ROceanCurrentEastSummer, planet.ROceanCurrentNorthSummer, planet.ROceanSpeedSummer, planet.ROceanWarmthSummer = cSummer.East, cSummer.North, cSummer.Speed, cSummer.Warmth
		planet.ROceanCurrentEastWinter, planet.ROceanCurrentNorthWinter, planet.ROceanSpeedWinter, planet.ROceanWarmthWinter = cWinter.East, cWinter.North, cWinter.Speed, cWinter.Warmth
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("temperature", func() error {
		planet.RTemperatureSummer = climate.Temperature(mesh, planet.Geometry, planet.RElevation, planet.ROceanWarmthSummer, isOcean, p.AxialTilt, true)
		planet.RTemperatureWinter = climate.Temperature(mesh, planet.Geometry, planet.RElevation, planet.ROceanWarmthWinter, isOcean, p.AxialTilt, false)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("precipitation", func() error {
		planet.RPrecipSummer = climate.Precipitation(mesh, planet.Geometry, isOcean, planet.RElevation, planet.RTemperatureSummer, planet.RWindEastSummer, planet.RWindNorthSummer, itczSummer, p.Seed)
		planet.RPrecipWinter = climate.Precipitation(mesh, planet.Geometry, isOcean, planet.RElevation, planet.RTemperatureWinter, planet.RWindEastWinter, planet.RWindNorthWinter, itczWinter, p.Seed)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := runStage("koppen", func() error {
		planet.RKoppen = climate.Classify(mesh, planet.Geometry, isOcean, planet.RTemperatureSummer, planet.RTemperatureWinter, planet.RPrecipSummer, planet.RPrecipWinter)
		return nil
	}); err != nil {
		return nil, err
	}

	return planet, nil
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return core.NewCancelled()
	default:
		return nil
	}
}

// firstNonFinite reports the first non-finite region in elev, or ok=true
// if every region is finite.
func firstNonFinite(elev []float32) (region int, ok bool) {
	for r, e := range elev {
		v := float64(e)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r, false
		}
	}
	return 0, true
}

// recordLandFraction implements spec §9 Open Question (ii)'s degenerate-
// growth diagnostic: a warning, not a pipeline failure, when land covers
// under 10% of regions after post-processing.
func recordLandFraction(planet *core.Planet, isOcean []bool) {
	land := 0
	for _, o := range isOcean {
		if !o {
			land++
		}
	}
	if float64(land) < 0.1*float64(len(isOcean)) {
		planet.Diagnostics.LowLandFraction = true
		log.Warn().Int("land_regions", land).Int("total_regions", len(isOcean)).Msg("land fraction below 10%, degenerate ocean growth")
	}
}
