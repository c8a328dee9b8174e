package cycle

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinCycleLength      = 21
	MaxCycleLength      = 45
	MinPeriodLength     = 2
	MaxPeriodLength     = 10
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

var (
	ErrCycleLengthOutOfRange    = errors.New("cycle length out of range")
	ErrPeriodLengthOutOfRange   = errors.New("period length out of range")
	ErrPeriodLengthIncompatible = errors.New("period length must be shorter than cycle length")
	ErrLastPeriodStartMissing   = errors.New("last period start is required")
	ErrReferenceDateMissing     = errors.New("reference date is required")
	ErrDaysAheadNegative        = errors.New("days ahead must not be negative")
)

// ValidationError reports which input was rejected. It unwraps to one of the
// package sentinels so callers can match with errors.Is.
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%d): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Parameters struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodLength    int
}

func DefaultParameters(lastPeriodStart time.Time) Parameters {
	return Parameters{
		LastPeriodStart: lastPeriodStart,
		CycleLength:     DefaultCycleLength,
		PeriodLength:    DefaultPeriodLength,
	}
}

func (params Parameters) Validate() error {
	if params.LastPeriodStart.IsZero() {
		return &ValidationError{Field: "last_period_start", Err: ErrLastPeriodStartMissing}
	}
	return ValidateLengths(params.CycleLength, params.PeriodLength)
}

// ValidateLengths checks a cycle/period length pair against the supported
// ranges. Out-of-range values are reported, never clamped.
func ValidateLengths(cycleLength int, periodLength int) error {
	if err := ValidateCycleLength(cycleLength); err != nil {
		return err
	}
	if periodLength < MinPeriodLength || periodLength > MaxPeriodLength {
		return &ValidationError{Field: "average_period_length", Value: periodLength, Err: ErrPeriodLengthOutOfRange}
	}
	if periodLength >= cycleLength {
		return &ValidationError{Field: "average_period_length", Value: periodLength, Err: ErrPeriodLengthIncompatible}
	}
	return nil
}

func ValidateCycleLength(cycleLength int) error {
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		return &ValidationError{Field: "average_cycle_length", Value: cycleLength, Err: ErrCycleLengthOutOfRange}
	}
	return nil
}

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}
