package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/graceflow/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(userID uint) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListRecent returns up to limit records, newest start first.
func (repo *CycleRepository) ListRecent(userID uint, limit int) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CycleRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *CycleRepository) EarliestStart(userID uint) (time.Time, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Select("id", "start_date").
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return time.Time{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return time.Time{}, false, nil
	}
	return record.StartDate, true, nil
}

func (repo *CycleRepository) FindByPublicID(userID uint, publicID string) (models.CycleRecord, error) {
	var record models.CycleRecord
	if err := repo.database.
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&record).Error; err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

func (repo *CycleRepository) ExistsStartInRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.CycleRecord{}).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// SaveChain persists every record of a relinked chain, creating the ones
// without an ID, and moves the user's last period start in the same transaction.
func (repo *CycleRepository) SaveChain(userID uint, records []models.CycleRecord, lastPeriodStart *time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := saveRecords(tx, userID, records); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("last_period_start", lastPeriodStart).Error
	})
}

func (repo *CycleRepository) DeleteAndRelink(userID uint, recordID uint, remaining []models.CycleRecord, lastPeriodStart *time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, recordID).Delete(&models.CycleRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := saveRecords(tx, userID, remaining); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("last_period_start", lastPeriodStart).Error
	})
}

func (repo *CycleRepository) InitializeHistory(userID uint, records []models.CycleRecord, cycleLength int, lastPeriodStart time.Time) error {
	if len(records) == 0 {
		return errors.New("no cycle records to initialize")
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := saveRecords(tx, userID, records); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"cycle_length":      cycleLength,
			"last_period_start": lastPeriodStart,
		}).Error
	})
}

func saveRecords(tx *gorm.DB, userID uint, records []models.CycleRecord) error {
	for index := range records {
		if records[index].UserID != userID {
			return errors.New("cycle record belongs to another user")
		}
		if err := tx.Save(&records[index]).Error; err != nil {
			return err
		}
	}
	return nil
}
