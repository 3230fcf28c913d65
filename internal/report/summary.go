package report

import (
	"github.com/chrissnell/satpasses/internal/passes"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// fieldMaxElevation is the provider's culmination elevation, when supplied
const fieldMaxElevation = "maxEl"

// Summary condenses a report into a few figures
type Summary struct {
	Passes              int      `json:"passes"`
	MeanDurationSeconds float64  `json:"meanDurationSeconds"`
	LongestDuration     string   `json:"longestDuration"`
	HighestElevation    *float64 `json:"highestElevation,omitempty"`
}

// Summarize computes the summary of r. Elevation statistics are only
// present when the provider reported maxEl on at least one pass.
func Summarize(r passes.Report) Summary {
	s := Summary{Passes: len(r.Passes)}
	if len(r.Passes) == 0 {
		return s
	}

	durations := make([]float64, len(r.Passes))
	var elevations []float64
	for i, p := range r.Passes {
		durations[i] = float64(p.Duration.TotalSeconds())
		if el, ok := p.Float(fieldMaxElevation); ok {
			elevations = append(elevations, el)
		}
	}

	s.MeanDurationSeconds = stat.Mean(durations, nil)
	longest := int64(floats.Max(durations))
	s.LongestDuration = passes.Duration{Minutes: longest / 60, Seconds: longest % 60}.String()

	if len(elevations) > 0 {
		highest := floats.Max(elevations)
		s.HighestElevation = &highest
	}
	return s
}

func (s Summary) meanDuration() passes.Duration {
	secs := int64(s.MeanDurationSeconds + 0.5)
	return passes.Duration{Minutes: secs / 60, Seconds: secs % 60}
}
