package api

import (
	"time"

	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/models"
	"github.com/terraincognita07/graceflow/internal/services"
)

type profileResponse struct {
	ID                  uint    `json:"id"`
	Email               string  `json:"email"`
	DisplayName         string  `json:"display_name"`
	AverageCycleLength  int     `json:"average_cycle_length"`
	AveragePeriodLength int     `json:"average_period_length"`
	LastPeriodStart     *string `json:"last_period_start_date"`
}

type phaseResponse struct {
	cycle.Snapshot
	PhaseDisplayName     string          `json:"phase_display_name"`
	PhaseDescription     string          `json:"phase_description"`
	RecommendedIntensity cycle.Intensity `json:"recommended_intensity"`
}

type cycleInfoResponse struct {
	Cycle                phaseResponse    `json:"cycle"`
	LastPeriodStart      string           `json:"last_period_start"`
	AverageCycleLength   int              `json:"average_cycle_length"`
	AveragePeriodLength  int              `json:"average_period_length"`
	PredictionConfidence cycle.Confidence `json:"prediction_confidence"`
}

type cycleRecordResponse struct {
	ID            string    `json:"id"`
	StartDate     string    `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	PeriodEndDate *string   `json:"period_end_date"`
	CycleLength   *int      `json:"cycle_length"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type variabilityResponse struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Median int     `json:"median"`
}

type cycleHistoryResponse struct {
	Cycles             []cycleRecordResponse `json:"cycles"`
	AverageCycleLength int                   `json:"average_cycle_length"`
	TotalCyclesLogged  int                   `json:"total_cycles_logged"`
	Confidence         cycle.Confidence      `json:"confidence"`
	Variability        variabilityResponse   `json:"variability"`
}

type predictionResponse struct {
	Date           string      `json:"date"`
	PredictedPhase cycle.Phase `json:"predicted_phase"`
	CycleDay       int         `json:"cycle_day"`
}

type predictionsResponse struct {
	Predictions     []predictionResponse `json:"predictions"`
	NextPeriodStart string               `json:"next_period_start"`
}

func newProfileResponse(user models.User) profileResponse {
	return profileResponse{
		ID:                  user.ID,
		Email:               user.Email,
		DisplayName:         user.DisplayName,
		AverageCycleLength:  user.CycleLength,
		AveragePeriodLength: user.PeriodLength,
		LastPeriodStart:     formatOptionalDay(user.LastPeriodStart),
	}
}

func newCycleInfoResponse(info services.CycleInfo) cycleInfoResponse {
	return cycleInfoResponse{
		Cycle: phaseResponse{
			Snapshot:             info.Phase.Snapshot,
			PhaseDisplayName:     info.Phase.DisplayName,
			PhaseDescription:     info.Phase.Description,
			RecommendedIntensity: info.Phase.RecommendedIntensity,
		},
		LastPeriodStart:      formatDay(info.LastPeriodStart),
		AverageCycleLength:   info.AverageCycleLength,
		AveragePeriodLength:  info.AveragePeriodLength,
		PredictionConfidence: info.HistoryConfidence,
	}
}

func newCycleRecordResponse(record models.CycleRecord) cycleRecordResponse {
	return cycleRecordResponse{
		ID:            record.PublicID,
		StartDate:     formatDay(record.StartDate),
		EndDate:       formatOptionalDay(record.EndDate),
		PeriodEndDate: formatOptionalDay(record.PeriodEndDate),
		CycleLength:   record.CycleLength,
		Notes:         record.Notes,
		CreatedAt:     record.CreatedAt,
	}
}

func newCycleHistoryResponse(history services.CycleHistory) cycleHistoryResponse {
	cycles := make([]cycleRecordResponse, 0, len(history.Cycles))
	for _, record := range history.Cycles {
		cycles = append(cycles, newCycleRecordResponse(record))
	}

	return cycleHistoryResponse{
		Cycles:             cycles,
		AverageCycleLength: history.AverageCycleLength,
		TotalCyclesLogged:  history.TotalCyclesLogged,
		Confidence:         history.Confidence,
		Variability: variabilityResponse{
			Count:  history.Variability.Count,
			Mean:   history.Variability.Mean,
			StdDev: history.Variability.StdDev,
			Min:    history.Variability.Min,
			Max:    history.Variability.Max,
			Median: history.Variability.Median,
		},
	}
}

func newPredictionsResponse(result services.PredictionsResult) predictionsResponse {
	predictions := make([]predictionResponse, 0, len(result.Predictions))
	for _, prediction := range result.Predictions {
		predictions = append(predictions, predictionResponse{
			Date:           formatDay(prediction.Date),
			PredictedPhase: prediction.Phase,
			CycleDay:       prediction.CycleDay,
		})
	}
	return predictionsResponse{
		Predictions:     predictions,
		NextPeriodStart: formatDay(result.NextPeriodStart),
	}
}
