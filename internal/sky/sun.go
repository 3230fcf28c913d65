// Package sky computes the lighting conditions an observer sees during a
// pass: the Sun's elevation, the twilight class it implies, and how much of
// the Moon is lit.
package sky

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// SunPosition is the Sun's apparent place for an observer
type SunPosition struct {
	DeclinationDeg float64
	EqOfTimeMin    float64
	HourAngleDeg   float64
	ElevationDeg   float64
	AzimuthDeg     float64
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// julianCenturies returns Julian centuries since J2000.0
func julianCenturies(t time.Time) float64 {
	return (julian.TimeToJD(t.UTC()) - 2451545.0) / 36525.0
}

// Sun computes the Sun's position at t for an observer at lat/lon (degrees,
// east positive). Refraction is ignored.
func Sun(t time.Time, lat, lon float64) SunPosition {
	t = t.UTC()
	T := julianCenturies(t)

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	Ω := 125.04 - 1934.136*T
	λ := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(Ω))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	δRad := math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(λ)))

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	// True solar time in minutes, then hour angle with noon at 0
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*lon + eqTimeMin
	ha := tst/4 - 180
	if ha < -180 {
		ha += 360
	} else if ha > 180 {
		ha -= 360
	}
	haRad := degToRad(ha)

	latRad := degToRad(lat)
	cosZen := math.Sin(latRad)*math.Sin(δRad) + math.Cos(latRad)*math.Cos(δRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenRad := math.Acos(cosZen)

	// Azimuth measured from north, clockwise
	az := radToDeg(math.Atan2(
		math.Sin(haRad),
		math.Cos(haRad)*math.Sin(latRad)-math.Tan(δRad)*math.Cos(latRad),
	)) + 180

	return SunPosition{
		DeclinationDeg: radToDeg(δRad),
		EqOfTimeMin:    eqTimeMin,
		HourAngleDeg:   ha,
		ElevationDeg:   90 - radToDeg(zenRad),
		AzimuthDeg:     fixAngle(az),
	}
}

// Lighting classifies sky brightness by the Sun's elevation
type Lighting string

const (
	Daylight             Lighting = "daylight"
	CivilTwilight        Lighting = "civil twilight"
	NauticalTwilight     Lighting = "nautical twilight"
	AstronomicalTwilight Lighting = "astronomical twilight"
	Night                Lighting = "night"
)

// ClassifyLighting maps a solar elevation in degrees to a lighting class
func ClassifyLighting(elevationDeg float64) Lighting {
	switch {
	case elevationDeg >= 0:
		return Daylight
	case elevationDeg >= -6:
		return CivilTwilight
	case elevationDeg >= -12:
		return NauticalTwilight
	case elevationDeg >= -18:
		return AstronomicalTwilight
	default:
		return Night
	}
}
