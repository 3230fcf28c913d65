package main

import (
	"path/filepath"
	"testing"

	"github.com/chrissnell/satpasses/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "satpasses.db")
	in := &config.ConfigData{
		N2YO:       config.N2YOData{APIKey: "abc"},
		Defaults:   config.DefaultsData{Days: 3},
		Satellites: []config.SatelliteData{{ID: 43013, Name: "NOAA 20"}, {ID: 25544, Name: "ISS"}},
	}
	require.NoError(t, convert(dbPath, in))

	provider, err := config.NewSQLiteProvider(dbPath)
	require.NoError(t, err)
	defer provider.Close()

	out, err := provider.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "abc", out.N2YO.APIKey)
	assert.Equal(t, 3, out.Defaults.Days)
	assert.Equal(t, in.Satellites, out.Satellites)
}

func TestValidateWithDefaults(t *testing.T) {
	assert.NoError(t, validateWithDefaults(&config.ConfigData{}))
	assert.ErrorIs(t, validateWithDefaults(&config.ConfigData{Defaults: config.DefaultsData{Days: -1}}), config.ErrInvalidConfig)
}
