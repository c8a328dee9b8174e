package models

import "time"

// CycleRecord is one logged cycle. EndDate and CycleLength stay nil while the
// cycle is open, i.e. until the next period start is logged.
type CycleRecord struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	PublicID      string     `gorm:"not null;uniqueIndex" json:"id"`
	UserID        uint       `gorm:"not null;index:idx_cycle_records_user_start" json:"-"`
	StartDate     time.Time  `gorm:"type:date;not null;index:idx_cycle_records_user_start" json:"start_date"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date"`
	PeriodEndDate *time.Time `gorm:"type:date" json:"period_end_date"`
	CycleLength   *int       `json:"cycle_length"`
	Notes         string     `gorm:"not null;default:''" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (record CycleRecord) IsOpen() bool {
	return record.EndDate == nil
}
