package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSettingsCycleLengthOutOfRange    = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange   = errors.New("settings period length out of range")
	ErrSettingsPeriodLengthIncompatible = errors.New("settings period length incompatible with cycle length")
)

type SettingsUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type CycleSettingsUpdate struct {
	CycleLength  int
	PeriodLength int
	DisplayName  *string
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

// ValidateCycleSettings applies the engine's length rules and reports them
// with settings-level errors.
func (service *SettingsService) ValidateCycleSettings(cycleLength int, periodLength int) error {
	err := cycle.ValidateLengths(cycleLength, periodLength)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cycle.ErrCycleLengthOutOfRange):
		return ErrSettingsCycleLengthOutOfRange
	case errors.Is(err, cycle.ErrPeriodLengthOutOfRange):
		return ErrSettingsPeriodLengthOutOfRange
	case errors.Is(err, cycle.ErrPeriodLengthIncompatible):
		return ErrSettingsPeriodLengthIncompatible
	default:
		return err
	}
}

func (service *SettingsService) SaveCycleSettings(userID uint, update CycleSettingsUpdate) (models.User, error) {
	if err := service.ValidateCycleSettings(update.CycleLength, update.PeriodLength); err != nil {
		return models.User{}, err
	}

	updates := map[string]any{
		"cycle_length":  update.CycleLength,
		"period_length": update.PeriodLength,
	}
	if update.DisplayName != nil {
		updates["display_name"] = *update.DisplayName
	}
	if err := service.users.UpdateByID(userID, updates); err != nil {
		return models.User{}, fmt.Errorf("save cycle settings: %w", err)
	}
	return service.LoadProfile(userID)
}

func (service *SettingsService) LoadProfile(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}
