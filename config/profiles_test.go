package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllProfilesValidate(t *testing.T) {
	for name, p := range Profiles {
		p := p
		err := p.Validate()
		assert.NoErrorf(t, err, "profile %s failed validation", name)
	}
}

func TestLoadUnknownProfile(t *testing.T) {
	_, err := Load(Profile("not-a-profile"), "")
	require.Error(t, err)
}

func TestLoadMissingOverrideFallsBackToProfile(t *testing.T) {
	p, err := Load(ProfileEarthlike, filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Profiles[ProfileEarthlike], p)
}

func TestLoadOverrideAppliesFieldsAndKeepsSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.json")
	// Params has no json tags, so the override must use Go field names.
	data, err := json.Marshal(map[string]any{"NumContinents": 3})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := Load(ProfileEarthlike, path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumContinents)
	assert.Equal(t, Profiles[ProfileEarthlike].Seed, p.Seed)
}
