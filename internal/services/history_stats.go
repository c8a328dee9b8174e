package services

import (
	"github.com/terraincognita07/graceflow/internal/cycle"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type CycleLengthSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    int
	Max    int
	Median int
}

// SummarizeCycleLengths describes the spread of completed cycle lengths.
// StdDev stays zero below two samples.
func SummarizeCycleLengths(lengths []int) CycleLengthSummary {
	if len(lengths) == 0 {
		return CycleLengthSummary{Median: cycle.DefaultCentralTendency}
	}

	values := make([]float64, len(lengths))
	for index, length := range lengths {
		values[index] = float64(length)
	}

	summary := CycleLengthSummary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    int(floats.Min(values)),
		Max:    int(floats.Max(values)),
		Median: cycle.RobustCentralTendency(lengths),
	}
	if len(values) > 1 {
		summary.StdDev = stat.StdDev(values, nil)
	}
	return summary
}
