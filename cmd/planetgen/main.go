// Command planetgen runs the full tectonics->climate pipeline for a given
// set of parameters and prints a summary of the resulting planet. It is a
// local single-process smoke-test driver, not a parameter-codec or
// worker-orchestration surface.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"planetgen/climate"
	"planetgen/config"
	"planetgen/core"
	"planetgen/internal/meshgen"
	"planetgen/pipeline"
)

var (
	profileFlag  string
	overrideFlag string
	seedFlag     uint32
	regionsFlag  uint32
)

var rootCmd = &cobra.Command{
	Use:   "planetgen",
	Short: "Generate a procedural planet and print a summary of its climate.",
	RunE:  run,
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd.Flags().StringVar(&profileFlag, "profile", string(config.ProfileDefault), "named parameter profile (default, earthlike, archipelago, supercontinent, icehouse)")
	rootCmd.Flags().StringVar(&overrideFlag, "override", "", "path to a JSON file overriding the profile's Params fields")
	rootCmd.Flags().Uint32Var(&seedFlag, "seed", 0, "override the profile's seed (0 keeps the profile's seed)")
	rootCmd.Flags().Uint32Var(&regionsFlag, "regions", 10000, "region count for the demo mesh")
}

func run(cmd *cobra.Command, args []string) error {
	p, err := config.Load(config.Profile(profileFlag), overrideFlag)
	if err != nil {
		return err
	}
	if seedFlag != 0 {
		p.Seed = seedFlag
	}
	p.N = regionsFlag

	log.Info().Str("profile", profileFlag).Uint32("seed", p.Seed).Uint32("regions", p.N).Msg("building demo mesh")
	mesh := meshgen.Build(int(p.N))

	reporter := func(percent float64, label string) {
		log.Debug().Float64("percent", percent).Str("stage", label).Msg("stage progress")
	}

	start := time.Now()
	planet, err := pipeline.Run(context.Background(), mesh, p, reporter)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("pipeline complete")

	printSummary(planet)
	return nil
}

func printSummary(planet *core.Planet) {
	landCount, classCounts := 0, map[string]int{}
	for r := 0; r < planet.Mesh.NumRegions; r++ {
		if planet.RElevation[r] > 0 {
			landCount++
		}
		classCounts[climate.ClassName(planet.RKoppen[r])]++
	}

	fmt.Printf("regions: %d, land: %d (%.1f%%)\n", planet.Mesh.NumRegions, landCount,
		100*float64(landCount)/float64(planet.Mesh.NumRegions))
	fmt.Println("Köppen class distribution:")
	for _, name := range []string{
		"Ocean", "Af", "Am", "Aw", "BWh", "BWk", "BSh", "BSk",
		"Csa", "Csb", "Csc", "Cwa", "Cwb", "Cwc", "Cfa", "Cfb", "Cfc",
		"Dsa", "Dsb", "Dsc", "Dsd", "Dwa", "Dwb", "Dwc", "Dwd",
		"Dfa", "Dfb", "Dfc", "Dfd", "ET", "EF",
	} {
		if n := classCounts[name]; n > 0 {
			fmt.Printf("  %-4s %d\n", name, n)
		}
	}

	fmt.Println("stage timings:")
	for _, t := range planet.Timings {
		fmt.Printf("  %-20s %s\n", t.Label, t.Duration)
	}
	if planet.Diagnostics.LowLandFraction {
		fmt.Println("warning: land fraction below 10%")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("planetgen failed")
	}
}
