package cycle

// Phase is one of the four stages of a menstrual cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

// Intensity is the exercise load suggested for a phase.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Phases lists every phase in cycle order, starting at menstruation.
func Phases() []Phase {
	return []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}
}

// ParsePhase converts raw into a Phase and reports whether it names a known one.
func ParsePhase(raw string) (Phase, bool) {
	phase := Phase(raw)
	return phase, phase.Valid()
}

// Valid reports whether phase is one of the four known phases.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal:
		return true
	}
	return false
}

// Next returns the phase that follows in cycle order; luteal wraps to
// menstrual. Unknown values return the empty phase.
func (phase Phase) Next() Phase {
	switch phase {
	case PhaseMenstrual:
		return PhaseFollicular
	case PhaseFollicular:
		return PhaseOvulatory
	case PhaseOvulatory:
		return PhaseLuteal
	case PhaseLuteal:
		return PhaseMenstrual
	}
	return ""
}

// DisplayName is the capitalized label shown to users.
func (phase Phase) DisplayName() string {
	switch phase {
	case PhaseMenstrual:
		return "Menstrual"
	case PhaseFollicular:
		return "Follicular"
	case PhaseOvulatory:
		return "Ovulatory"
	case PhaseLuteal:
		return "Luteal"
	}
	return ""
}

// Description is a short guidance sentence for the phase.
func (phase Phase) Description() string {
	switch phase {
	case PhaseMenstrual:
		return "Rest and restore. Honor lower energy with gentle movement."
	case PhaseFollicular:
		return "Energy is rising. Great time to try new things and build strength."
	case PhaseOvulatory:
		return "Peak energy. Embrace challenging workouts and social movement."
	case PhaseLuteal:
		return "Winding down. Focus on steady, grounding practices."
	}
	return ""
}

// RecommendedIntensity is the suggested exercise load for the phase.
func (phase Phase) RecommendedIntensity() Intensity {
	switch phase {
	case PhaseMenstrual:
		return IntensityLow
	case PhaseFollicular, PhaseLuteal:
		return IntensityMedium
	case PhaseOvulatory:
		return IntensityHigh
	}
	return ""
}
