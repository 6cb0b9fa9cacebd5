package models

import (
	"time"
)

// ScheduleEntry is the employer-declared plan for one user on one date.
// At most one row exists per (user, date); saving again replaces in place.
type ScheduleEntry struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:uq_schedule_user_date" json:"user_id"`
	WorkDate       string    `gorm:"type:date;not null;uniqueIndex:uq_schedule_user_date;index" json:"work_date"`
	PlannedMinutes int       `gorm:"not null;default:0" json:"planned_minutes"`
	ShiftName      string    `gorm:"size:120" json:"shift_name"`
	DayType        string    `gorm:"size:30;not null;default:'normal'" json:"day_type"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleEntry) TableName() string {
	return "official_schedule"
}

func (s *ScheduleEntry) IsValid() bool {
	if s.UserID == 0 {
		return false
	}
	if s.WorkDate == "" {
		return false
	}
	if s.PlannedMinutes < 0 {
		return false
	}
	return IsKnownDayType(s.DayType)
}
