package main

import (
	"testing"

	"github.com/chrissnell/satpasses/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	a := &config.ConfigData{
		N2YO:       config.N2YOData{APIKey: "one"},
		Defaults:   config.DefaultsData{Days: 3},
		Satellites: []config.SatelliteData{{ID: 25544, Name: "ISS"}},
	}
	b := *a
	b.Satellites = []config.SatelliteData{{ID: 25544, Name: "ISS"}}
	assert.Empty(t, compare(a, &b))

	b.N2YO.APIKey = "two"
	b.Defaults.Days = 4
	b.Satellites = []config.SatelliteData{{ID: 25544, Name: "ZARYA"}}

	diffs := compare(a, &b)
	assert.Len(t, diffs, 3)
	for _, d := range diffs {
		assert.NotContains(t, d, "one")
	}
}
