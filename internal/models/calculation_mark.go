package models

import (
	"time"
)

// CalculationMark records when and why a user's period was last recalculated.
// One row per (user, period type, period key), replaced on every recompute;
// only the most recent marks per user are retained.
type CalculationMark struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:uq_mark_user_period" json:"user_id"`
	PeriodType   string    `gorm:"size:10;not null;uniqueIndex:uq_mark_user_period" json:"period_type"`
	PeriodKey    string    `gorm:"size:20;not null;uniqueIndex:uq_mark_user_period" json:"period_key"`
	Trigger      string    `gorm:"size:40;not null" json:"trigger"`
	CalculatedAt time.Time `gorm:"not null" json:"calculated_at"`
}

func (CalculationMark) TableName() string {
	return "calculation_marks"
}
