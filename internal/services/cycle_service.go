package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	MinHistoryLimit       = 1
	MaxHistoryLimit       = 24
	DefaultHistoryLimit   = 12
	MinPredictionDays     = 7
	MaxPredictionDays     = 90
	DefaultPredictionDays = 30
	MaxInitialPeriodDates = 3
	averagesWindow        = 12
	initialTrackingNotes  = "Initial data from onboarding"
)

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrNoPeriodLogged             = errors.New("no period logged")
	ErrPeriodStartInFuture        = errors.New("period start is in the future")
	ErrPeriodAlreadyLogged        = errors.New("period already logged for this date")
	ErrPeriodEndBeforeStart       = errors.New("period end is before cycle start")
	ErrHistoryLimitOutOfRange     = errors.New("history limit out of range")
	ErrPredictionDaysOutOfRange   = errors.New("prediction days out of range")
	ErrInitialDatesRequired       = errors.New("initial period dates required")
	ErrTooManyInitialDates        = errors.New("too many initial period dates")
	ErrDuplicateInitialDates      = errors.New("duplicate initial period dates")
	ErrTrackingAlreadyInitialized = errors.New("cycle tracking already initialized")
	ErrCycleNotFound              = errors.New("cycle entry not found")
	ErrCannotDeleteOnlyCycle      = errors.New("cannot delete the only cycle entry")
)

type CycleUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateCycleBaseline(userID uint, cycleLength int, periodLength int) error
}

type CycleRecordRepository interface {
	ListByUser(userID uint) ([]models.CycleRecord, error)
	ListRecent(userID uint, limit int) ([]models.CycleRecord, error)
	CountByUser(userID uint) (int64, error)
	EarliestStart(userID uint) (time.Time, bool, error)
	FindByPublicID(userID uint, publicID string) (models.CycleRecord, error)
	ExistsStartInRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	SaveChain(userID uint, records []models.CycleRecord, lastPeriodStart *time.Time) error
	DeleteAndRelink(userID uint, recordID uint, remaining []models.CycleRecord, lastPeriodStart *time.Time) error
	InitializeHistory(userID uint, records []models.CycleRecord, cycleLength int, lastPeriodStart time.Time) error
}

type CycleService struct {
	users  CycleUserRepository
	cycles CycleRecordRepository
}

func NewCycleService(users CycleUserRepository, cycles CycleRecordRepository) *CycleService {
	return &CycleService{users: users, cycles: cycles}
}

type PhaseDetails struct {
	cycle.Snapshot
	DisplayName          string
	Description          string
	RecommendedIntensity cycle.Intensity
}

type CycleInfo struct {
	Phase               PhaseDetails
	HistoryConfidence   cycle.Confidence
	LastPeriodStart     time.Time
	AverageCycleLength  int
	AveragePeriodLength int
}

type CycleHistory struct {
	Cycles             []models.CycleRecord
	AverageCycleLength int
	TotalCyclesLogged  int
	Confidence         cycle.Confidence
	Variability        CycleLengthSummary
}

type PredictionsResult struct {
	Predictions     []cycle.Prediction
	NextPeriodStart time.Time
}

type CycleEntryUpdate struct {
	StartDate     *time.Time
	PeriodEndDate *time.Time
	Notes         *string
}

func (service *CycleService) CurrentCycleInfo(userID uint, today time.Time) (CycleInfo, error) {
	user, err := service.loadUser(userID)
	if err != nil {
		return CycleInfo{}, err
	}
	if user.LastPeriodStart == nil {
		return CycleInfo{}, ErrNoPeriodLogged
	}

	params := parametersFor(user)
	snapshot, err := cycle.ComputePhase(params, today)
	if err != nil {
		return CycleInfo{}, fmt.Errorf("compute phase: %w", err)
	}

	recent, err := service.cycles.ListRecent(userID, averagesWindow)
	if err != nil {
		return CycleInfo{}, fmt.Errorf("load recent cycles: %w", err)
	}

	return CycleInfo{
		Phase: PhaseDetails{
			Snapshot:             snapshot,
			DisplayName:          snapshot.Phase.DisplayName(),
			Description:          snapshot.Phase.Description(),
			RecommendedIntensity: snapshot.Phase.RecommendedIntensity(),
		},
		HistoryConfidence:   historyConfidence(recent, *user.LastPeriodStart, today),
		LastPeriodStart:     *user.LastPeriodStart,
		AverageCycleLength:  user.CycleLength,
		AveragePeriodLength: user.PeriodLength,
	}, nil
}

// LogPeriod records a new period start and relinks the cycle chain so the
// previously open cycle is closed on the new start.
func (service *CycleService) LogPeriod(userID uint, start time.Time, notes string, today time.Time) (models.CycleRecord, error) {
	if start.IsZero() {
		return models.CycleRecord{}, &cycle.ValidationError{Field: "start_date", Err: cycle.ErrLastPeriodStartMissing}
	}
	if cycle.DaysBetween(today, start) > 0 {
		return models.CycleRecord{}, ErrPeriodStartInFuture
	}
	if _, err := service.loadUser(userID); err != nil {
		return models.CycleRecord{}, err
	}

	if err := service.ensureStartFree(userID, start, 0); err != nil {
		return models.CycleRecord{}, err
	}

	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return models.CycleRecord{}, fmt.Errorf("load cycles: %w", err)
	}

	created := newCycleRecord(userID, start, notes)
	chain := RelinkCycleRecords(append(records, created))
	if err := service.cycles.SaveChain(userID, chain, newestStart(chain)); err != nil {
		return models.CycleRecord{}, fmt.Errorf("save cycles: %w", err)
	}
	if _, _, err := service.RecalculateAverages(userID); err != nil {
		return models.CycleRecord{}, err
	}

	return findByPublicID(chain, created.PublicID), nil
}

func (service *CycleService) History(userID uint, limit int, today time.Time) (CycleHistory, error) {
	if limit < MinHistoryLimit || limit > MaxHistoryLimit {
		return CycleHistory{}, ErrHistoryLimitOutOfRange
	}

	user, err := service.loadUser(userID)
	if err != nil {
		return CycleHistory{}, err
	}

	records, err := service.cycles.ListRecent(userID, limit)
	if err != nil {
		return CycleHistory{}, fmt.Errorf("load cycles: %w", err)
	}
	total, err := service.cycles.CountByUser(userID)
	if err != nil {
		return CycleHistory{}, fmt.Errorf("count cycles: %w", err)
	}

	lengths := completedCycleLengths(records)
	history := CycleHistory{
		Cycles:             records,
		AverageCycleLength: cycle.RobustCentralTendency(lengths),
		TotalCyclesLogged:  int(total),
		Confidence:         cycle.ConfidenceLow,
		Variability:        SummarizeCycleLengths(lengths),
	}
	if user.LastPeriodStart != nil {
		// Confidence always reads the averaging window, whatever page size was asked for.
		recent, err := service.cycles.ListRecent(userID, averagesWindow)
		if err != nil {
			return CycleHistory{}, fmt.Errorf("load recent cycles: %w", err)
		}
		history.Confidence = historyConfidence(recent, *user.LastPeriodStart, today)
	}
	return history, nil
}

func (service *CycleService) Predictions(userID uint, daysAhead int, today time.Time) (PredictionsResult, error) {
	if daysAhead < MinPredictionDays || daysAhead > MaxPredictionDays {
		return PredictionsResult{}, ErrPredictionDaysOutOfRange
	}

	var (
		user     models.User
		earliest time.Time
		group    errgroup.Group
	)
	group.Go(func() error {
		loaded, err := service.loadUser(userID)
		if err != nil {
			return err
		}
		user = loaded
		return nil
	})
	group.Go(func() error {
		start, found, err := service.cycles.EarliestStart(userID)
		if err != nil {
			return fmt.Errorf("load earliest cycle: %w", err)
		}
		if found {
			earliest = start
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return PredictionsResult{}, err
	}

	if user.LastPeriodStart == nil {
		return PredictionsResult{}, ErrNoPeriodLogged
	}

	params := parametersFor(user)
	predictions, err := cycle.PredictPhases(params, daysAhead, today, earliest)
	if err != nil {
		return PredictionsResult{}, fmt.Errorf("predict phases: %w", err)
	}
	nextStart, err := cycle.PredictNextPeriodStart(params.LastPeriodStart, params.CycleLength, today)
	if err != nil {
		return PredictionsResult{}, fmt.Errorf("predict next period: %w", err)
	}

	return PredictionsResult{Predictions: predictions, NextPeriodStart: nextStart}, nil
}

// InitializeTracking seeds an empty history from up to three remembered
// period starts. The median of the resulting lengths becomes the baseline.
func (service *CycleService) InitializeTracking(userID uint, dates []time.Time, today time.Time) error {
	if len(dates) == 0 {
		return ErrInitialDatesRequired
	}
	if len(dates) > MaxInitialPeriodDates {
		return ErrTooManyInitialDates
	}

	starts := make([]time.Time, 0, len(dates))
	seen := make(map[time.Time]struct{}, len(dates))
	for _, raw := range dates {
		if raw.IsZero() {
			return &cycle.ValidationError{Field: "dates", Err: cycle.ErrLastPeriodStartMissing}
		}
		if cycle.DaysBetween(today, raw) > 0 {
			return ErrPeriodStartInFuture
		}
		day := storageDay(raw)
		if _, duplicate := seen[day]; duplicate {
			return ErrDuplicateInitialDates
		}
		seen[day] = struct{}{}
		starts = append(starts, day)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	user, err := service.loadUser(userID)
	if err != nil {
		return err
	}
	count, err := service.cycles.CountByUser(userID)
	if err != nil {
		return fmt.Errorf("count cycles: %w", err)
	}
	if count > 0 {
		return ErrTrackingAlreadyInitialized
	}

	records := make([]models.CycleRecord, 0, len(starts))
	for _, start := range starts {
		records = append(records, newCycleRecord(userID, start, initialTrackingNotes))
	}
	chain := RelinkCycleRecords(records)

	cycleLength := cycle.RobustCentralTendency(completedCycleLengths(chain))
	if cycle.ValidateLengths(cycleLength, user.PeriodLength) != nil {
		cycleLength = user.CycleLength
	}

	if err := service.cycles.InitializeHistory(userID, chain, cycleLength, starts[len(starts)-1]); err != nil {
		return fmt.Errorf("initialize cycles: %w", err)
	}
	return nil
}

// RecalculateAverages derives the baseline from the most recent cycles. A
// derived pair the engine would reject leaves the stored baseline in place.
func (service *CycleService) RecalculateAverages(userID uint) (int, int, error) {
	user, err := service.loadUser(userID)
	if err != nil {
		return 0, 0, err
	}

	recent, err := service.cycles.ListRecent(userID, averagesWindow)
	if err != nil {
		return 0, 0, fmt.Errorf("load recent cycles: %w", err)
	}

	cycleLength := cycle.RobustCentralTendency(completedCycleLengths(recent))
	if !cycle.IsValidCycleLength(cycleLength) {
		cycleLength = user.CycleLength
	}

	periodLength := models.DefaultPeriodLength
	if spans := loggedPeriodLengths(recent); len(spans) > 0 {
		periodLength = cycle.RobustCentralTendency(spans)
	}
	if !cycle.IsValidPeriodLength(periodLength) {
		periodLength = user.PeriodLength
	}

	if cycle.ValidateLengths(cycleLength, periodLength) != nil {
		cycleLength, periodLength = user.CycleLength, user.PeriodLength
	}

	if err := service.users.UpdateCycleBaseline(userID, cycleLength, periodLength); err != nil {
		return 0, 0, fmt.Errorf("update baseline: %w", err)
	}
	return cycleLength, periodLength, nil
}

func (service *CycleService) UpdateCycleEntry(userID uint, publicID string, update CycleEntryUpdate, today time.Time) (models.CycleRecord, error) {
	target, err := service.findCycle(userID, publicID)
	if err != nil {
		return models.CycleRecord{}, err
	}

	if update.StartDate != nil {
		if cycle.DaysBetween(today, *update.StartDate) > 0 {
			return models.CycleRecord{}, ErrPeriodStartInFuture
		}
		if err := service.ensureStartFree(userID, *update.StartDate, target.ID); err != nil {
			return models.CycleRecord{}, err
		}
		target.StartDate = storageDay(*update.StartDate)
	}
	if update.PeriodEndDate != nil {
		end := storageDay(*update.PeriodEndDate)
		target.PeriodEndDate = &end
	}
	if update.Notes != nil {
		target.Notes = *update.Notes
	}
	if target.PeriodEndDate != nil && cycle.DaysBetween(target.StartDate, *target.PeriodEndDate) < 0 {
		return models.CycleRecord{}, ErrPeriodEndBeforeStart
	}

	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return models.CycleRecord{}, fmt.Errorf("load cycles: %w", err)
	}
	for index := range records {
		if records[index].ID == target.ID {
			records[index] = target
		}
	}

	chain := RelinkCycleRecords(records)
	if err := service.cycles.SaveChain(userID, chain, newestStart(chain)); err != nil {
		return models.CycleRecord{}, fmt.Errorf("save cycles: %w", err)
	}
	if _, _, err := service.RecalculateAverages(userID); err != nil {
		return models.CycleRecord{}, err
	}

	return findByPublicID(chain, publicID), nil
}

func (service *CycleService) DeleteCycleEntry(userID uint, publicID string) error {
	target, err := service.findCycle(userID, publicID)
	if err != nil {
		return err
	}

	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load cycles: %w", err)
	}
	if len(records) <= 1 {
		return ErrCannotDeleteOnlyCycle
	}

	remaining := make([]models.CycleRecord, 0, len(records)-1)
	for _, record := range records {
		if record.ID != target.ID {
			remaining = append(remaining, record)
		}
	}

	chain := RelinkCycleRecords(remaining)
	if err := service.cycles.DeleteAndRelink(userID, target.ID, chain, newestStart(chain)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCycleNotFound
		}
		return fmt.Errorf("delete cycle: %w", err)
	}
	if _, _, err := service.RecalculateAverages(userID); err != nil {
		return err
	}
	return nil
}

func (service *CycleService) loadUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (service *CycleService) findCycle(userID uint, publicID string) (models.CycleRecord, error) {
	record, err := service.cycles.FindByPublicID(userID, publicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleRecord{}, ErrCycleNotFound
	}
	if err != nil {
		return models.CycleRecord{}, fmt.Errorf("load cycle: %w", err)
	}
	return record, nil
}

// ensureStartFree rejects a start date already used by another record of the
// user. ignoreID excludes the record being edited.
func (service *CycleService) ensureStartFree(userID uint, start time.Time, ignoreID uint) error {
	day := storageDay(start)
	if ignoreID == 0 {
		exists, err := service.cycles.ExistsStartInRange(userID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("check period start: %w", err)
		}
		if exists {
			return ErrPeriodAlreadyLogged
		}
		return nil
	}

	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load cycles: %w", err)
	}
	for _, record := range records {
		if record.ID != ignoreID && cycle.DaysBetween(record.StartDate, day) == 0 {
			return ErrPeriodAlreadyLogged
		}
	}
	return nil
}

func parametersFor(user models.User) cycle.Parameters {
	params := cycle.Parameters{
		CycleLength:  user.CycleLength,
		PeriodLength: user.PeriodLength,
	}
	if user.LastPeriodStart != nil {
		params.LastPeriodStart = *user.LastPeriodStart
	}
	return params
}

func historyConfidence(records []models.CycleRecord, lastPeriodStart time.Time, today time.Time) cycle.Confidence {
	return cycle.EstimateConfidence(cycle.Sample{
		CyclesCount:      len(records),
		CycleLengths:     completedCycleLengths(records),
		DaysSinceLastLog: cycle.ElapsedDays(lastPeriodStart, today),
	})
}

func findByPublicID(records []models.CycleRecord, publicID string) models.CycleRecord {
	for _, record := range records {
		if record.PublicID == publicID {
			return record
		}
	}
	return models.CycleRecord{}
}
