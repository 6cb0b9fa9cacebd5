package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Balance statuses
const (
	StatusOK       = "ok"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)

// Deviation thresholds in minutes, symmetric around zero. Fixed policy
// constants, not user-configurable.
const (
	WarningThresholdMinutes  = 120
	ExceededThresholdMinutes = 300
)

// PeriodBalance is the materialized worked/planned aggregate for one user
// and one period. At most one row exists per (user, period type, period key);
// recalculation fully replaces the prior row.
type PeriodBalance struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:uq_balance_user_period" json:"user_id"`
	PeriodType        string    `gorm:"size:10;not null;uniqueIndex:uq_balance_user_period" json:"period_type"`
	PeriodKey         string    `gorm:"size:20;not null;uniqueIndex:uq_balance_user_period" json:"period_key"`
	WorkedMinutes     int       `gorm:"not null;default:0" json:"worked_minutes"`
	PlannedMinutes    int       `gorm:"not null;default:0" json:"planned_minutes"`
	DifferenceMinutes int       `gorm:"not null;default:0" json:"difference_minutes"`
	ExtraMinutes      int       `gorm:"not null;default:0" json:"extra_minutes"`
	Status            string    `gorm:"size:10;not null;default:'ok';index" json:"status"`
	CalculatedAt      time.Time `gorm:"not null" json:"calculated_at"`
}

func (PeriodBalance) TableName() string {
	return "period_balances"
}

// ClassifyStatus maps a signed worked-minus-planned difference to a status.
// Both excess and shortfall trigger the same severities.
func ClassifyStatus(differenceMinutes int) string {
	delta := differenceMinutes
	if delta < 0 {
		delta = -delta
	}

	if delta >= ExceededThresholdMinutes {
		return StatusExceeded
	}
	if delta >= WarningThresholdMinutes {
		return StatusWarning
	}
	return StatusOK
}

// FormatSignedMinutes renders minutes as a signed HH:MM string, e.g. "+02:15"
// or "-06:00". Zero renders with a plus sign.
func FormatSignedMinutes(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatMinutes renders minutes as an unsigned "HH:MM h" string for display.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%02d:%02d h", minutes/60, minutes%60)
}

// ParseClock parses an "HH:MM" clock value into minutes.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hours in %q: expected 0-23", value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q: expected 0-59", value)
	}

	return hours*60 + minutes, nil
}
