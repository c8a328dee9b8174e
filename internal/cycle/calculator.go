package cycle

import "time"

// Boundaries holds the last cycle day (1-indexed, inclusive) of each phase.
type Boundaries struct {
	MenstrualEnd  int
	FollicularEnd int
	OvulatoryEnd  int
	CycleEnd      int
}

type Snapshot struct {
	Phase              Phase      `json:"current_phase"`
	CycleDay           int        `json:"cycle_day"`
	DaysUntilNextPhase int        `json:"days_until_next_phase"`
	NextPhase          Phase      `json:"next_phase"`
	Confidence         Confidence `json:"confidence"`
}

// PhaseBoundaries scales the follicular and ovulatory ends with the cycle
// length (46% and 57%, rounded half up), which gives 5/13/16 for 28/5.
func PhaseBoundaries(cycleLength int, periodLength int) Boundaries {
	return Boundaries{
		MenstrualEnd:  periodLength,
		FollicularEnd: roundPercent(cycleLength, 46),
		OvulatoryEnd:  roundPercent(cycleLength, 57),
		CycleEnd:      cycleLength,
	}
}

// PhaseForDay returns the phase owning cycleDay and the last day of that phase.
func (boundaries Boundaries) PhaseForDay(cycleDay int) (Phase, int) {
	switch {
	case cycleDay <= boundaries.MenstrualEnd:
		return PhaseMenstrual, boundaries.MenstrualEnd
	case cycleDay <= boundaries.FollicularEnd:
		return PhaseFollicular, boundaries.FollicularEnd
	case cycleDay <= boundaries.OvulatoryEnd:
		return PhaseOvulatory, boundaries.OvulatoryEnd
	default:
		return PhaseLuteal, boundaries.CycleEnd
	}
}

// ComputePhase places referenceDate within the cycle anchored at
// params.LastPeriodStart. The reference date must be supplied by the caller.
func ComputePhase(params Parameters, referenceDate time.Time) (Snapshot, error) {
	if err := params.Validate(); err != nil {
		return Snapshot{}, err
	}
	if referenceDate.IsZero() {
		return Snapshot{}, &ValidationError{Field: "reference_date", Err: ErrReferenceDateMissing}
	}

	return snapshotForElapsed(params, ElapsedDays(params.LastPeriodStart, referenceDate)), nil
}

// snapshotForElapsed wraps elapsedDays into the cycle. Negative offsets wrap
// backward from the anchor, which only the back-filling predictor relies on.
func snapshotForElapsed(params Parameters, elapsedDays int) Snapshot {
	cycleDay := floorMod(elapsedDays, params.CycleLength) + 1
	phase, phaseEnd := PhaseBoundaries(params.CycleLength, params.PeriodLength).PhaseForDay(cycleDay)

	return Snapshot{
		Phase:              phase,
		CycleDay:           cycleDay,
		DaysUntilNextPhase: phaseEnd - cycleDay + 1,
		NextPhase:          phase.Next(),
		Confidence:         RecencyConfidence(elapsedDays, params.CycleLength),
	}
}

// RecencyConfidence grades a snapshot by how many whole cycles passed since the
// anchor was logged. It ignores cycle variability; see EstimateConfidence.
func RecencyConfidence(elapsedDays int, cycleLength int) Confidence {
	if cycleLength <= 0 {
		return ConfidenceLow
	}
	if elapsedDays < 0 {
		elapsedDays = 0
	}

	switch cyclesSinceLog := elapsedDays / cycleLength; {
	case cyclesSinceLog == 0:
		return ConfidenceHigh
	case cyclesSinceLog <= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func roundPercent(value int, percent int) int {
	return (value*percent + 50) / 100
}

func floorMod(value int, modulus int) int {
	remainder := value % modulus
	if remainder < 0 {
		remainder += modulus
	}
	return remainder
}
