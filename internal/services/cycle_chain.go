package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/models"
)

// RelinkCycleRecords returns a copy of records sorted by start date in which
// every cycle ends on the next cycle's start. The newest cycle is left open.
func RelinkCycleRecords(records []models.CycleRecord) []models.CycleRecord {
	chain := make([]models.CycleRecord, len(records))
	copy(chain, records)
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].StartDate.Equal(chain[j].StartDate) {
			return chain[i].ID < chain[j].ID
		}
		return chain[i].StartDate.Before(chain[j].StartDate)
	})

	for index := range chain {
		if index == len(chain)-1 {
			chain[index].EndDate = nil
			chain[index].CycleLength = nil
			continue
		}
		end := chain[index+1].StartDate
		length := cycle.DaysBetween(chain[index].StartDate, end)
		chain[index].EndDate = &end
		chain[index].CycleLength = &length
	}
	return chain
}

func newCycleRecord(userID uint, start time.Time, notes string) models.CycleRecord {
	return models.CycleRecord{
		PublicID:  uuid.NewString(),
		UserID:    userID,
		StartDate: storageDay(start),
		Notes:     notes,
	}
}

// storageDay pins a calendar date to UTC midnight, the form dates are stored in.
func storageDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func completedCycleLengths(records []models.CycleRecord) []int {
	lengths := make([]int, 0, len(records))
	for _, record := range records {
		if record.CycleLength != nil {
			lengths = append(lengths, *record.CycleLength)
		}
	}
	return lengths
}

func loggedPeriodLengths(records []models.CycleRecord) []int {
	lengths := make([]int, 0, len(records))
	for _, record := range records {
		if record.PeriodEndDate == nil {
			continue
		}
		if span := cycle.DaysBetween(record.StartDate, *record.PeriodEndDate) + 1; span > 0 {
			lengths = append(lengths, span)
		}
	}
	return lengths
}

func newestStart(chain []models.CycleRecord) *time.Time {
	if len(chain) == 0 {
		return nil
	}
	start := chain[len(chain)-1].StartDate
	return &start
}
