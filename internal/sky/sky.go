package sky

import (
	"math"
	"time"

	"github.com/chrissnell/satpasses/internal/location"
	"github.com/chrissnell/satpasses/internal/passes"
)

// Output field names added to each annotated pass
const (
	FieldSunElevation     = "sunEl"
	FieldLighting         = "lighting"
	FieldMoonIllumination = "moonIllumination"
)

// Conditions is what the sky looks like at one instant for one observer
type Conditions struct {
	SunElevation     float64
	Lighting         Lighting
	MoonIllumination float64
}

// At computes conditions for an observer at t
func At(t time.Time, loc location.Location) Conditions {
	sun := Sun(t, loc.Latitude, loc.Longitude)
	return Conditions{
		SunElevation:     sun.ElevationDeg,
		Lighting:         ClassifyLighting(sun.ElevationDeg),
		MoonIllumination: Moon(t).Illumination,
	}
}

// Annotate adds the sky conditions at culmination to every pass in the
// report. Fields already supplied by the provider keep their values.
func Annotate(report *passes.Report, loc location.Location) {
	for i := range report.Passes {
		rp := &report.Passes[i]
		c := At(time.Unix(rp.MaxUTC, 0), loc)
		rp.Annotate(FieldSunElevation, round(c.SunElevation, 1))
		rp.Annotate(FieldLighting, string(c.Lighting))
		rp.Annotate(FieldMoonIllumination, round(c.MoonIllumination, 2))
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
