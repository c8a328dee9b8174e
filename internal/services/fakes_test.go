package services

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/graceflow/internal/models"
	"gorm.io/gorm"
)

type memoryStore struct {
	mu         sync.Mutex
	users      map[uint]models.User
	records    []models.CycleRecord
	nextUserID uint
	nextID     uint
	failSave   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[uint]models.User)}
}

func (store *memoryStore) addUser(user models.User) models.User {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextUserID++
	user.ID = store.nextUserID
	if user.CycleLength == 0 {
		user.CycleLength = models.DefaultCycleLength
	}
	if user.PeriodLength == 0 {
		user.PeriodLength = models.DefaultPeriodLength
	}
	store.users[user.ID] = user
	return user
}

func (store *memoryStore) user(userID uint) models.User {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.users[userID]
}

func (store *memoryStore) FindByID(userID uint) (models.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (store *memoryStore) FindByNormalizedEmail(email string) (models.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (store *memoryStore) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := store.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (store *memoryStore) Create(user *models.User) error {
	*user = store.addUser(*user)
	return nil
}

func (store *memoryStore) UpdateByID(userID uint, updates map[string]any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "cycle_length":
			user.CycleLength = value.(int)
		case "period_length":
			user.PeriodLength = value.(int)
		case "display_name":
			user.DisplayName = value.(string)
		}
	}
	store.users[userID] = user
	return nil
}

func (store *memoryStore) UpdateCycleBaseline(userID uint, cycleLength int, periodLength int) error {
	return store.UpdateByID(userID, map[string]any{"cycle_length": cycleLength, "period_length": periodLength})
}

func (store *memoryStore) ListByUser(userID uint) ([]models.CycleRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	records := make([]models.CycleRecord, 0)
	for _, record := range store.records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].StartDate.Before(records[j].StartDate) })
	return records, nil
}

func (store *memoryStore) ListRecent(userID uint, limit int) ([]models.CycleRecord, error) {
	records, _ := store.ListByUser(userID)
	recent := make([]models.CycleRecord, 0, limit)
	for index := len(records) - 1; index >= 0 && len(recent) < limit; index-- {
		recent = append(recent, records[index])
	}
	return recent, nil
}

func (store *memoryStore) CountByUser(userID uint) (int64, error) {
	records, _ := store.ListByUser(userID)
	return int64(len(records)), nil
}

func (store *memoryStore) EarliestStart(userID uint) (time.Time, bool, error) {
	records, _ := store.ListByUser(userID)
	if len(records) == 0 {
		return time.Time{}, false, nil
	}
	return records[0].StartDate, true, nil
}

func (store *memoryStore) FindByPublicID(userID uint, publicID string) (models.CycleRecord, error) {
	records, _ := store.ListByUser(userID)
	for _, record := range records {
		if record.PublicID == publicID {
			return record, nil
		}
	}
	return models.CycleRecord{}, gorm.ErrRecordNotFound
}

func (store *memoryStore) ExistsStartInRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	records, _ := store.ListByUser(userID)
	for _, record := range records {
		if !record.StartDate.Before(dayStart) && record.StartDate.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (store *memoryStore) SaveChain(userID uint, records []models.CycleRecord, lastPeriodStart *time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.failSave != nil {
		return store.failSave
	}
	store.saveLocked(records)
	user := store.users[userID]
	user.LastPeriodStart = lastPeriodStart
	store.users[userID] = user
	return nil
}

func (store *memoryStore) DeleteAndRelink(userID uint, recordID uint, remaining []models.CycleRecord, lastPeriodStart *time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	kept := store.records[:0]
	deleted := false
	for _, record := range store.records {
		if record.ID == recordID && record.UserID == userID {
			deleted = true
			continue
		}
		kept = append(kept, record)
	}
	if !deleted {
		return gorm.ErrRecordNotFound
	}
	store.records = kept
	store.saveLocked(remaining)
	user := store.users[userID]
	user.LastPeriodStart = lastPeriodStart
	store.users[userID] = user
	return nil
}

func (store *memoryStore) InitializeHistory(userID uint, records []models.CycleRecord, cycleLength int, lastPeriodStart time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.saveLocked(records)
	user := store.users[userID]
	user.CycleLength = cycleLength
	user.LastPeriodStart = &lastPeriodStart
	store.users[userID] = user
	return nil
}

func (store *memoryStore) saveLocked(records []models.CycleRecord) {
	for _, record := range records {
		if record.ID == 0 {
			store.nextID++
			record.ID = store.nextID
			store.records = append(store.records, record)
			continue
		}
		for index := range store.records {
			if store.records[index].ID == record.ID {
				store.records[index] = record
			}
		}
	}
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func intPtr(value int) *int {
	return &value
}

func timePtr(value time.Time) *time.Time {
	return &value
}
