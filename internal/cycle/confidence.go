package cycle

import (
	"math"

	"github.com/montanaflynn/stats"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	// DefaultCentralTendency is the cycle length assumed when no history exists.
	DefaultCentralTendency = 28
	ConsistentStdDevDays   = 3.0

	highRecencyFactor   = 1.2
	mediumRecencyFactor = 2.5
)

type Sample struct {
	CyclesCount      int
	CycleLengths     []int
	DaysSinceLastLog int
}

// EstimateConfidence grades predictions from cycle-length variability and log
// recency. It is independent of RecencyConfidence and does not replace it.
func EstimateConfidence(sample Sample) Confidence {
	if sample.CyclesCount < 1 {
		return ConfidenceLow
	}

	medianLength := float64(RobustCentralTendency(sample.CycleLengths))
	daysSinceLastLog := float64(sample.DaysSinceLastLog)

	switch {
	case sample.CyclesCount >= 3 &&
		LengthsConsistent(sample.CycleLengths) &&
		daysSinceLastLog < medianLength*highRecencyFactor:
		return ConfidenceHigh
	case sample.CyclesCount >= 2 || daysSinceLastLog < medianLength*mediumRecencyFactor:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// LengthsConsistent reports whether the sample standard deviation of lengths
// is under ConsistentStdDevDays. Fewer than two lengths are never consistent.
func LengthsConsistent(lengths []int) bool {
	if len(lengths) < 2 {
		return false
	}
	deviation, err := stats.StandardDeviationSample(stats.LoadRawData(lengths))
	if err != nil {
		return false
	}
	return deviation < ConsistentStdDevDays
}

// RobustCentralTendency is the median of values rounded half up, or
// DefaultCentralTendency when values is empty.
func RobustCentralTendency(values []int) int {
	if len(values) == 0 {
		return DefaultCentralTendency
	}
	median, err := stats.Median(stats.LoadRawData(values))
	if err != nil {
		return DefaultCentralTendency
	}
	return int(math.Floor(median + 0.5))
}
