package cycle

import "time"

const (
	HorizonBufferDays   = 3
	DefaultBackfillDays = 90
)

type Prediction struct {
	Date     time.Time `json:"date"`
	Phase    Phase     `json:"predicted_phase"`
	CycleDay int       `json:"cycle_day"`
}

// Window is the half-open day range [Start, End) covered by PredictPhases.
type Window struct {
	Start time.Time
	End   time.Time
}

func (window Window) Days() int {
	days := DaysBetween(window.Start, window.End)
	if days < 0 {
		return 0
	}
	return days
}

// PredictNextPeriodStart returns the first projected cycle start strictly after
// today, however stale the anchor is. The result is in today's location.
func PredictNextPeriodStart(lastPeriodStart time.Time, cycleLength int, today time.Time) (time.Time, error) {
	if lastPeriodStart.IsZero() {
		return time.Time{}, &ValidationError{Field: "last_period_start", Err: ErrLastPeriodStartMissing}
	}
	if err := ValidateCycleLength(cycleLength); err != nil {
		return time.Time{}, err
	}
	if today.IsZero() {
		return time.Time{}, &ValidationError{Field: "today", Err: ErrReferenceDateMissing}
	}

	day := DateOnly(today)
	anchor := dateIn(lastPeriodStart, day.Location())
	completeCycles := ElapsedDays(anchor, day) / cycleLength

	next := anchor.AddDate(0, 0, cycleLength*(completeCycles+1))
	if !next.After(day) {
		next = next.AddDate(0, 0, cycleLength)
	}
	return next, nil
}

// PredictionWindow resolves the day range PredictPhases covers. The forward
// edge never passes the next predicted period start plus HorizonBufferDays;
// the back edge is earliestHistorical when known, else DefaultBackfillDays ago.
func PredictionWindow(params Parameters, daysAhead int, today time.Time, earliestHistorical time.Time) (Window, error) {
	if err := params.Validate(); err != nil {
		return Window{}, err
	}
	if daysAhead < 0 {
		return Window{}, &ValidationError{Field: "days_ahead", Value: daysAhead, Err: ErrDaysAheadNegative}
	}

	nextStart, err := PredictNextPeriodStart(params.LastPeriodStart, params.CycleLength, today)
	if err != nil {
		return Window{}, err
	}

	day := DateOnly(today)
	horizon := nextStart.AddDate(0, 0, HorizonBufferDays)
	forwardDays := min(daysAhead, DaysBetween(day, horizon))

	start := day.AddDate(0, 0, -DefaultBackfillDays)
	if !earliestHistorical.IsZero() {
		start = dateIn(earliestHistorical, day.Location())
		if start.After(day) {
			start = day
		}
	}

	return Window{Start: start, End: day.AddDate(0, 0, forwardDays)}, nil
}

// PredictPhases emits one prediction per day of PredictionWindow, ascending.
// Every day is placed against the same anchor. Days from today on match
// ComputePhase, so an anchor after today counts as day one until it is
// reached. Earlier days wrap backward from the anchor. Logged intervening
// cycles of a different length are not re-anchored.
func PredictPhases(params Parameters, daysAhead int, today time.Time, earliestHistorical time.Time) ([]Prediction, error) {
	window, err := PredictionWindow(params, daysAhead, today, earliestHistorical)
	if err != nil {
		return nil, err
	}

	anchor := dateIn(params.LastPeriodStart, window.Start.Location())
	current := DateOnly(today)
	predictions := make([]Prediction, 0, window.Days())
	for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		elapsed := DaysBetween(anchor, day)
		if !day.Before(current) {
			elapsed = ElapsedDays(anchor, day)
		}
		snapshot := snapshotForElapsed(params, elapsed)
		predictions = append(predictions, Prediction{
			Date:     day,
			Phase:    snapshot.Phase,
			CycleDay: snapshot.CycleDay,
		})
	}
	return predictions, nil
}
