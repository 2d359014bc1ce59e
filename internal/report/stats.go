// Package report turns simulation results into tables, statistics and files.
package report

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"cooling_control/internal/models"
)

// Stats mirrors a tabular "describe" over one column.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"` // sample standard deviation, NaN for fewer than 2 values
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics; quantiles use linear interpolation.
func Describe(values []float64) Stats {
	n := len(values)
	if n == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if n < 2 {
		std = math.NaN()
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile interpolates between the two closest ranks at q*(n-1).
// stat.Quantile(stat.LinInterp) uses a different rank rule and yields other
// quartiles for small samples.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Summary is the statistical digest of one run.
type Summary struct {
	Temperature       Stats              `json:"temperature"`
	Error             Stats              `json:"error"`
	CompressorMinutes int                `json:"compressor_on_minutes"`
	DutyCycle         float64            `json:"duty_cycle"` // share of simulated minutes with the compressor ON
	Switches          int                `json:"switches"`
	MaxAbsError       float64            `json:"max_abs_error"`
	Fault             models.FaultStatus `json:"fault"`
}

// Summarize digests a result.
func Summarize(res models.SimulationResult) Summary {
	temps := make([]float64, 0, len(res.Samples))
	errs := make([]float64, 0, len(res.Samples))
	s := Summary{Fault: res.Fault}

	for i, smp := range res.Samples {
		temps = append(temps, smp.Temperature)
		errs = append(errs, smp.Error)
		if smp.CompressorOn {
			s.CompressorMinutes++
		}
		if i > 0 && smp.CompressorOn != res.Samples[i-1].CompressorOn {
			s.Switches++
		}
		s.MaxAbsError = math.Max(s.MaxAbsError, math.Abs(smp.Error))
	}
	if ticks := len(res.Samples) - 1; ticks > 0 {
		s.DutyCycle = float64(s.CompressorMinutes) / float64(ticks)
	}
	s.Temperature = Describe(temps)
	s.Error = Describe(errs)
	return s
}
