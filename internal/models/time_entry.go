package models

import (
	"time"
)

// Day type tags shared by time entries and official schedule entries.
const (
	DayTypeNormal  = "normal"
	DayTypeHoliday = "holiday"
	DayTypeOnCall  = "oncall"
	DayTypeSick    = "sick"
)

// TimeEntry is one real worked day for one user. Uniqueness per user/date is
// a convention, not a constraint.
type TimeEntry struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_entry_user_date" json:"user_id"`
	// WorkDate is stored as a canonical "YYYY-MM-DD" string so that range
	// queries compare lexicographically regardless of the driver's
	// timestamp formatting.
	WorkDate      string `gorm:"type:date;not null;index:idx_entry_user_date;index" json:"work_date"`
	Shift         string `gorm:"size:120" json:"shift"`
	WorkedMinutes int    `gorm:"not null;default:0" json:"worked_minutes"`
	ExtraMinutes  int    `gorm:"not null;default:0" json:"extra_minutes"`
	// ExpectedMinutes is a legacy per-row expectation, superseded by the
	// schedule-derived plan used for period balances.
	ExpectedMinutes int       `gorm:"not null;default:0" json:"expected_minutes"`
	VacationDay     bool      `gorm:"not null;default:false" json:"vacation_day"`
	PersonalDay     bool      `gorm:"not null;default:false" json:"personal_day"`
	Notes           string    `json:"notes"`
	DayType         string    `gorm:"size:30;not null;default:'normal'" json:"day_type"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// IsValid checks the invariants the repository refuses to persist without.
func (e *TimeEntry) IsValid() bool {
	if e.UserID == 0 {
		return false
	}
	if e.WorkDate == "" {
		return false
	}
	if e.WorkedMinutes < 0 || e.ExtraMinutes < 0 || e.ExpectedMinutes < 0 {
		return false
	}
	return IsKnownDayType(e.DayType)
}

// IsKnownDayType reports whether the tag is one of the supported day types.
func IsKnownDayType(dayType string) bool {
	switch dayType {
	case DayTypeNormal, DayTypeHoliday, DayTypeOnCall, DayTypeSick:
		return true
	}
	return false
}
