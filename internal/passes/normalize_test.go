package passes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDuration(t *testing.T) {
	tests := []struct {
		start, end int64
		want       Duration
		text       string
	}{
		{0, 0, Duration{0, 0}, "0m 0s"},
		{100, 159, Duration{0, 59}, "0m 59s"},
		{100, 160, Duration{1, 0}, "1m 0s"},
		{1760875200, 1760875811, Duration{10, 11}, "10m 11s"},
		{500, 400, Duration{0, 0}, "0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := NewDuration(tt.start, tt.end)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.text, d.String())
			if tt.end >= tt.start {
				assert.Equal(t, tt.end-tt.start, d.TotalSeconds())
			}
		})
	}
}

func TestDurationDecompositionIsExact(t *testing.T) {
	for diff := int64(0); diff < 5000; diff += 7 {
		d := NewDuration(1000, 1000+diff)
		assert.Equal(t, diff, d.Minutes*60+d.Seconds)
		assert.True(t, d.Seconds >= 0 && d.Seconds < 60)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00 UTC Jan/01/1970", FormatTime(0))
	assert.Equal(t, "12:00:00 UTC Oct/19/2025", FormatTime(1760875200))
}

func TestReportPassJSON(t *testing.T) {
	var p Pass
	require.NoError(t, json.Unmarshal([]byte(samplePass), &p))
	p.SatelliteID = 25544
	p.SatelliteLabel = "ISS (25544)"

	rp := newReportPass(p)
	rp.Annotate("sky", "night")
	rp.Annotate("maxEl", 0.0)

	data, err := json.Marshal(rp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "ISS (25544)", out["sat_info"])
	assert.Equal(t, float64(25544), out["satid"])
	assert.Equal(t, "12:00:00 UTC Oct/19/2025", out["startUTC"])
	assert.Equal(t, "12:05:00 UTC Oct/19/2025", out["maxUTC"])
	assert.Equal(t, "12:10:11 UTC Oct/19/2025", out["endUTC"])
	assert.Equal(t, "10m 11s", out["duration"])
	assert.Equal(t, "NW", out["startAzCompass"])
	assert.Equal(t, "night", out["sky"])
	assert.Equal(t, 62.4, out["maxEl"], "annotations never replace provider fields")

	// Raw epochs remain on the pass after formatting.
	assert.Equal(t, int64(1760875200), rp.StartUTC)
}

func TestReportPassFieldsDecodesExtras(t *testing.T) {
	var p Pass
	require.NoError(t, json.Unmarshal([]byte(samplePass), &p))

	fields := newReportPass(p).Fields()
	assert.Equal(t, 62.4, fields["maxEl"])
	assert.Equal(t, "ESE", fields["endAzCompass"])
	assert.Equal(t, "10m 11s", fields["duration"])
}
