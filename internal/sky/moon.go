package sky

import (
	"math"
	"time"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// MoonPhase is the Moon's phase as seen from Earth. Accuracy is within about
// one percent of illumination.
type MoonPhase struct {
	Elongation   float64 // Sun to Moon ecliptic angle, degrees [0,360)
	Illumination float64 // lit fraction [0,1]
	AgeDays      float64
	Waxing       bool
	Name         string
}

// Moon computes the phase at t
func Moon(t time.Time) MoonPhase {
	T := julianCenturies(t)

	elongation := fixAngle(moonEclipticLongitude(T) - sunEclipticLongitude(T))
	illumination := (1 - math.Cos(degToRad(elongation))) / 2
	waxing := elongation < 180

	return MoonPhase{
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      elongation / 360.0 * SynodicMonth,
		Waxing:       waxing,
		Name:         phaseName(illumination, waxing),
	}
}

func phaseName(illumination float64, waxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if waxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

func sunEclipticLongitude(T float64) float64 {
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := degToRad(fixAngle(357.52911 + 35999.05029*T - 0.0001537*T*T))

	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	return fixAngle(L0 + C)
}

// moonEclipticLongitude keeps the dominant periodic terms of Meeus ch. 47
func moonEclipticLongitude(T float64) float64 {
	L := 218.3164477 +
		481267.88123421*T -
		0.0015786*T*T +
		T*T*T/538841 -
		T*T*T*T/65194000

	D := degToRad(fixAngle(297.8501921 +
		445267.1114034*T -
		0.0018819*T*T +
		T*T*T/545868 -
		T*T*T*T/113065000))

	Mp := degToRad(fixAngle(134.9633964 +
		477198.8675055*T +
		0.0087414*T*T +
		T*T*T/69699 -
		T*T*T*T/14712000))

	return fixAngle(L +
		6.289*math.Sin(Mp) +
		1.274*math.Sin(2*D-Mp) +
		0.658*math.Sin(2*D) +
		0.214*math.Sin(2*Mp) +
		0.110*math.Sin(D))
}
