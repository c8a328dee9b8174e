package cycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	require.NoError(t, err)
	return day
}

func TestComputePhaseFirstDayOfCycle(t *testing.T) {
	t.Parallel()

	params := DefaultParameters(mustDay(t, "2024-01-01"))
	snapshot, err := ComputePhase(params, mustDay(t, "2024-01-01"))
	require.NoError(t, err)

	require.Equal(t, 1, snapshot.CycleDay)
	require.Equal(t, PhaseMenstrual, snapshot.Phase)
	require.Equal(t, PhaseFollicular, snapshot.NextPhase)
	require.Equal(t, 5, snapshot.DaysUntilNextPhase)
	require.Equal(t, ConfidenceHigh, snapshot.Confidence)
}

func TestComputePhaseKnownDays(t *testing.T) {
	t.Parallel()

	anchor := mustDay(t, "2024-01-01")
	cases := []struct {
		name          string
		reference     string
		wantDay       int
		wantPhase     Phase
		wantNext      Phase
		wantDaysUntil int
		wantConf      Confidence
	}{
		{name: "last menstrual day", reference: "2024-01-05", wantDay: 5, wantPhase: PhaseMenstrual, wantNext: PhaseFollicular, wantDaysUntil: 1, wantConf: ConfidenceHigh},
		{name: "first follicular day", reference: "2024-01-06", wantDay: 6, wantPhase: PhaseFollicular, wantNext: PhaseOvulatory, wantDaysUntil: 8, wantConf: ConfidenceHigh},
		{name: "ovulatory mid window", reference: "2024-01-15", wantDay: 15, wantPhase: PhaseOvulatory, wantNext: PhaseLuteal, wantDaysUntil: 2, wantConf: ConfidenceHigh},
		{name: "first luteal day", reference: "2024-01-17", wantDay: 17, wantPhase: PhaseLuteal, wantNext: PhaseMenstrual, wantDaysUntil: 12, wantConf: ConfidenceHigh},
		{name: "last cycle day", reference: "2024-01-28", wantDay: 28, wantPhase: PhaseLuteal, wantNext: PhaseMenstrual, wantDaysUntil: 1, wantConf: ConfidenceHigh},
		{name: "wraps after one cycle", reference: "2024-01-29", wantDay: 1, wantPhase: PhaseMenstrual, wantNext: PhaseFollicular, wantDaysUntil: 5, wantConf: ConfidenceMedium},
		{name: "two cycles elapsed", reference: "2024-03-24", wantDay: 28, wantPhase: PhaseLuteal, wantNext: PhaseMenstrual, wantDaysUntil: 1, wantConf: ConfidenceMedium},
		{name: "three cycles elapsed", reference: "2024-03-25", wantDay: 1, wantPhase: PhaseMenstrual, wantNext: PhaseFollicular, wantDaysUntil: 5, wantConf: ConfidenceLow},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snapshot, err := ComputePhase(DefaultParameters(anchor), mustDay(t, testCase.reference))
			require.NoError(t, err)
			require.Equal(t, testCase.wantDay, snapshot.CycleDay)
			require.Equal(t, testCase.wantPhase, snapshot.Phase)
			require.Equal(t, testCase.wantNext, snapshot.NextPhase)
			require.Equal(t, testCase.wantDaysUntil, snapshot.DaysUntilNextPhase)
			require.Equal(t, testCase.wantConf, snapshot.Confidence)
		})
	}
}

func TestComputePhaseFutureAnchorCountsAsDayOne(t *testing.T) {
	t.Parallel()

	params := DefaultParameters(mustDay(t, "2024-02-01"))
	snapshot, err := ComputePhase(params, mustDay(t, "2024-01-20"))
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.CycleDay)
	require.Equal(t, PhaseMenstrual, snapshot.Phase)
	require.Equal(t, ConfidenceHigh, snapshot.Confidence)
}

func TestComputePhaseIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	params := DefaultParameters(time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC))
	snapshot, err := ComputePhase(params, time.Date(2024, time.January, 2, 0, 15, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.CycleDay)
}

func TestComputePhaseIsIdempotent(t *testing.T) {
	t.Parallel()

	params := Parameters{LastPeriodStart: mustDay(t, "2024-03-10"), CycleLength: 31, PeriodLength: 6}
	reference := mustDay(t, "2024-05-02")

	first, err := ComputePhase(params, reference)
	require.NoError(t, err)
	second, err := ComputePhase(params, reference)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputePhaseInvariantsAcrossRanges(t *testing.T) {
	t.Parallel()

	anchor := mustDay(t, "2024-01-01")
	for cycleLength := MinCycleLength; cycleLength <= MaxCycleLength; cycleLength++ {
		for periodLength := MinPeriodLength; periodLength <= MaxPeriodLength; periodLength++ {
			params := Parameters{LastPeriodStart: anchor, CycleLength: cycleLength, PeriodLength: periodLength}
			for offset := 0; offset < cycleLength*2; offset++ {
				snapshot, err := ComputePhase(params, anchor.AddDate(0, 0, offset))
				require.NoError(t, err)
				require.GreaterOrEqual(t, snapshot.CycleDay, 1)
				require.LessOrEqual(t, snapshot.CycleDay, cycleLength)
				require.GreaterOrEqual(t, snapshot.DaysUntilNextPhase, 0)
				require.Equal(t, snapshot.Phase.Next(), snapshot.NextPhase)
			}
		}
	}
}

func TestComputePhaseRejectsInvalidParameters(t *testing.T) {
	t.Parallel()

	anchor := mustDay(t, "2024-01-01")
	cases := []struct {
		name      string
		params    Parameters
		reference time.Time
		wantErr   error
		wantField string
	}{
		{name: "short cycle", params: Parameters{LastPeriodStart: anchor, CycleLength: 20, PeriodLength: 5}, reference: anchor, wantErr: ErrCycleLengthOutOfRange, wantField: "average_cycle_length"},
		{name: "long cycle", params: Parameters{LastPeriodStart: anchor, CycleLength: 46, PeriodLength: 5}, reference: anchor, wantErr: ErrCycleLengthOutOfRange, wantField: "average_cycle_length"},
		{name: "short period", params: Parameters{LastPeriodStart: anchor, CycleLength: 28, PeriodLength: 1}, reference: anchor, wantErr: ErrPeriodLengthOutOfRange, wantField: "average_period_length"},
		{name: "long period", params: Parameters{LastPeriodStart: anchor, CycleLength: 28, PeriodLength: 11}, reference: anchor, wantErr: ErrPeriodLengthOutOfRange, wantField: "average_period_length"},
		{name: "missing anchor", params: Parameters{CycleLength: 28, PeriodLength: 5}, reference: anchor, wantErr: ErrLastPeriodStartMissing, wantField: "last_period_start"},
		{name: "missing reference", params: DefaultParameters(anchor), wantErr: ErrReferenceDateMissing, wantField: "reference_date"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := ComputePhase(testCase.params, testCase.reference)
			require.ErrorIs(t, err, testCase.wantErr)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, testCase.wantField, validationErr.Field)
		})
	}
}

func TestValidateLengthsRejectsPeriodNotShorterThanCycle(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateLengths(21, 10))
	require.ErrorIs(t, ValidateLengths(28, 28), ErrPeriodLengthOutOfRange)
}

func TestPhaseBoundariesScaleWithCycleLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cycleLength int
		want        Boundaries
	}{
		{cycleLength: 21, want: Boundaries{MenstrualEnd: 5, FollicularEnd: 10, OvulatoryEnd: 12, CycleEnd: 21}},
		{cycleLength: 25, want: Boundaries{MenstrualEnd: 5, FollicularEnd: 12, OvulatoryEnd: 14, CycleEnd: 25}},
		{cycleLength: 28, want: Boundaries{MenstrualEnd: 5, FollicularEnd: 13, OvulatoryEnd: 16, CycleEnd: 28}},
		{cycleLength: 35, want: Boundaries{MenstrualEnd: 5, FollicularEnd: 16, OvulatoryEnd: 20, CycleEnd: 35}},
		{cycleLength: 45, want: Boundaries{MenstrualEnd: 5, FollicularEnd: 21, OvulatoryEnd: 26, CycleEnd: 45}},
	}

	for _, testCase := range cases {
		require.Equal(t, testCase.want, PhaseBoundaries(testCase.cycleLength, 5), "cycle length %d", testCase.cycleLength)
	}
}

func TestRecencyConfidence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		elapsed int
		want    Confidence
	}{
		{elapsed: -3, want: ConfidenceHigh},
		{elapsed: 0, want: ConfidenceHigh},
		{elapsed: 27, want: ConfidenceHigh},
		{elapsed: 28, want: ConfidenceMedium},
		{elapsed: 83, want: ConfidenceMedium},
		{elapsed: 84, want: ConfidenceLow},
		{elapsed: 400, want: ConfidenceLow},
	}

	for _, testCase := range cases {
		require.Equal(t, testCase.want, RecencyConfidence(testCase.elapsed, 28), "elapsed %d", testCase.elapsed)
	}
	require.Equal(t, ConfidenceLow, RecencyConfidence(10, 0))
}
