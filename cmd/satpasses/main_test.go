package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/satpasses/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSatelliteIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: []int{}},
		{in: "25544", want: []int{25544}},
		{in: "25544,33591", want: []int{25544, 33591}},
		{in: "25544 33591, 99999", want: []int{25544, 33591, 99999}},
		{in: "25544,25544", want: []int{25544, 25544}},
		{in: "iss", wantErr: true},
		{in: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSatelliteIDs(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := config.Default()
	opts := options{
		days:         3,
		minElevation: 0,
		workers:      8,
		format:       "json",
		set:          map[string]bool{"days": true, "min-elevation": true},
	}
	opts.apply(cfg)

	assert.Equal(t, 3, cfg.Defaults.Days)
	assert.Equal(t, 0.0, cfg.Defaults.MinElevation)
	assert.Equal(t, config.DefaultWorkers, cfg.Defaults.Workers)
	assert.Equal(t, config.DefaultFormat, cfg.Defaults.Format)
	assert.NoError(t, cfg.Validate())
}

func TestCanonicalFlag(t *testing.T) {
	assert.Equal(t, "location", canonicalFlag("l"))
	assert.Equal(t, "min-elevation", canonicalFlag("e"))
	assert.Equal(t, "workers", canonicalFlag("workers"))
}

func TestSatelliteTables(t *testing.T) {
	tracked, names, err := satelliteTables(&config.ConfigData{})
	require.NoError(t, err)
	assert.Equal(t, 11, tracked.Len())
	assert.Equal(t, 11, names.Len())

	tracked, names, err = satelliteTables(&config.ConfigData{Satellites: []config.SatelliteData{{ID: 43013, Name: "NOAA 20"}}})
	require.NoError(t, err)
	assert.Equal(t, []int{43013}, tracked.IDs())

	// Built-in names stay available when the configured list leaves them out
	name, ok := names.Lookup(25544)
	assert.True(t, ok)
	assert.Equal(t, "ISS", name)
	name, ok = names.Lookup(43013)
	assert.True(t, ok)
	assert.Equal(t, "NOAA 20", name)

	_, _, err = satelliteTables(&config.ConfigData{Satellites: []config.SatelliteData{{ID: 123}}})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", "yaml")
	require.NoError(t, err)
	assert.Empty(t, cfg.N2YO.APIKey)

	path := filepath.Join(t.TempDir(), "satpasses.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  days: 2\n"), 0o644))

	cfg, err = loadConfig(path, "yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Defaults.Days)

	_, err = loadConfig(path, "toml")
	assert.Error(t, err)
}
