// Package config provides named Params presets and a JSON file-override
// mechanism, in the style of a global settings loader adapted from a
// single hot-reloadable Settings value to a set of named, immutable
// simulation presets (the parameter-codec non-goal excludes an encoding
// scheme, not named presets over the existing Params).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"planetgen/core"
)

// Profile names a built-in Params preset.
type Profile string

const (
	ProfileDefault        Profile = "default"
	ProfileEarthlike      Profile = "earthlike"
	ProfileArchipelago    Profile = "archipelago"
	ProfileSupercontinent Profile = "supercontinent"
	ProfileIcehouse       Profile = "icehouse"
)

// Profiles maps every built-in Profile to its Params value. Each preset
// starts from core.DefaultParams and only overrides the fields that define
// its character, so new Params fields automatically inherit a sane default.
var Profiles = map[Profile]core.Params{
	ProfileDefault: core.DefaultParams(),

	ProfileEarthlike: withParams(func(p *core.Params) {
		p.NumContinents = 6
		p.Roughness = 0.15
		p.HydraulicErosion = 0.4
		p.ThermalErosion = 0.3
		p.Smoothing = 0.2
	}),

	ProfileArchipelago: withParams(func(p *core.Params) {
		p.NumContinents = 10
		p.Roughness = 0.3
		p.P = 40
		p.GlacialErosion = 0.1
	}),

	ProfileSupercontinent: withParams(func(p *core.Params) {
		p.NumContinents = 1
		p.P = 8
		p.Roughness = 0.05
		p.RidgeSharpening = 0.3
	}),

	ProfileIcehouse: withParams(func(p *core.Params) {
		p.NumContinents = 4
		p.AxialTilt = 10
		p.GlacialErosion = 0.6
	}),
}

func withParams(mutate func(p *core.Params)) core.Params {
	p := core.DefaultParams()
	mutate(&p)
	return p
}

// Load resolves a named profile and, if overridePath is non-empty and the
// file exists, decodes a JSON object over it ("file overrides defaults,
// missing file is not an error," the same pattern as a loadSettings
// helper). A seed of 0 in the override is treated as "not set" and left at
// the profile's seed, since Params' Seed range starts at 0 and a
// JSON-absent field also decodes to 0.
func Load(profile Profile, overridePath string) (core.Params, error) {
	p, ok := Profiles[profile]
	if !ok {
		return core.Params{}, fmt.Errorf("config: unknown profile %q", profile)
	}

	if overridePath == "" {
		return p, nil
	}

	file, err := os.Open(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", overridePath).Msg("no override file found, using profile defaults")
			return p, nil
		}
		return core.Params{}, err
	}
	defer file.Close()

	seedBefore := p.Seed
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&p); err != nil {
		return core.Params{}, fmt.Errorf("config: error parsing %s: %w", overridePath, err)
	}
	if p.Seed == 0 {
		p.Seed = seedBefore
	}

	log.Info().Str("profile", string(profile)).Str("override", overridePath).Msg("loaded params override")
	return p, nil
}
