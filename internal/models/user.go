package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	DisplayName     string     `gorm:"not null;default:''" json:"display_name"`
	CycleLength     int        `gorm:"not null;default:28" json:"average_cycle_length"`
	PeriodLength    int        `gorm:"not null;default:5" json:"average_period_length"`
	LastPeriodStart *time.Time `gorm:"type:date" json:"last_period_start_date,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
