package sky

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/passes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunElevation(t *testing.T) {
	tests := []struct {
		name      string
		time      time.Time
		lat, lon  float64
		elevation float64
	}{
		{
			name:      "equinox noon on the equator",
			time:      time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC),
			elevation: 88.2,
		},
		{
			name:      "midsummer midnight at Greenwich",
			time:      time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			lat:       51.48,
			elevation: -15.1,
		},
		{
			name:      "midwinter noon at Greenwich",
			time:      time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC),
			lat:       51.48,
			elevation: 15.1,
		},
		{
			name:      "autumn noon in Paris",
			time:      time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC),
			lat:       48.8566,
			lon:       2.3522,
			elevation: 30.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Sun(tt.time, tt.lat, tt.lon)
			assert.InDelta(t, tt.elevation, pos.ElevationDeg, 0.3)
		})
	}
}

func TestSunAzimuth(t *testing.T) {
	morning := Sun(time.Date(2025, 6, 21, 8, 0, 0, 0, time.UTC), 51.48, 0)
	evening := Sun(time.Date(2025, 6, 21, 16, 0, 0, 0, time.UTC), 51.48, 0)

	assert.InDelta(t, 97.6, morning.AzimuthDeg, 1)
	assert.InDelta(t, 261.6, evening.AzimuthDeg, 1)
}

func TestClassifyLighting(t *testing.T) {
	tests := []struct {
		elevation float64
		want      Lighting
	}{
		{45, Daylight},
		{0, Daylight},
		{-0.5, CivilTwilight},
		{-6, CivilTwilight},
		{-8, NauticalTwilight},
		{-12, NauticalTwilight},
		{-15, AstronomicalTwilight},
		{-18, AstronomicalTwilight},
		{-40, Night},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLighting(tt.elevation), "elevation %v", tt.elevation)
	}
}

func TestMoonPhases(t *testing.T) {
	tests := []struct {
		name   string
		time   time.Time
		phase  string
		minIll float64
		maxIll float64
	}{
		{
			name:   "new moon Jan 2023",
			time:   time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC),
			phase:  "New Moon",
			minIll: 0,
			maxIll: 0.05,
		},
		{
			name:   "full moon Feb 2023",
			time:   time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC),
			phase:  "Full Moon",
			minIll: 0.95,
			maxIll: 1,
		},
		{
			name:   "first quarter Jan 2023",
			time:   time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC),
			phase:  "First Quarter",
			minIll: 0.45,
			maxIll: 0.55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Moon(tt.time)
			assert.Equal(t, tt.phase, m.Name)
			assert.GreaterOrEqual(t, m.Illumination, tt.minIll)
			assert.LessOrEqual(t, m.Illumination, tt.maxIll)
		})
	}
}

func TestAnnotate(t *testing.T) {
	var p passes.Pass
	require.NoError(t, json.Unmarshal([]byte(`{"startUTC":1750463400,"maxUTC":1750464000,"endUTC":1750464600,"maxEl":45}`), &p))
	p.SatelliteID = 25544
	p.SatelliteLabel = "ISS (25544)"

	report := passes.Report{Passes: []passes.ReportPass{{Pass: p}}}
	Annotate(&report, location.Location{Latitude: 51.48, Longitude: 0})

	fields := report.Passes[0].Fields()
	// 2025-06-21 00:00 UTC at Greenwich: astronomical twilight all night
	assert.Equal(t, "astronomical twilight", fields[FieldLighting])
	assert.InDelta(t, -15.1, fields[FieldSunElevation].(float64), 0.3)
	assert.Contains(t, fields, FieldMoonIllumination)
	assert.Equal(t, float64(45), fields["maxEl"])
}

func TestAnnotateKeepsProviderFields(t *testing.T) {
	var p passes.Pass
	require.NoError(t, json.Unmarshal([]byte(`{"startUTC":1750463400,"maxUTC":1750464000,"endUTC":1750464600,"lighting":"provider"}`), &p))

	report := passes.Report{Passes: []passes.ReportPass{{Pass: p}}}
	Annotate(&report, location.Location{Latitude: 51.48})

	assert.Equal(t, "provider", report.Passes[0].Fields()[FieldLighting])
}
