package models

import (
	"fmt"
	"strings"
	"time"
)

// Alert severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// AlertTypePrefix combined with a period type gives the alert type,
// e.g. "balance_week".
const AlertTypePrefix = "balance_"

// Alert is a derived signal for a period whose balance is not ok. The engine
// keeps at most one active alert per (user, period type, period key) by
// replacing the set on every recalculation; an absent row is the resolved
// signal. ResolvedAt exists in the schema but is never written by this path.
type Alert struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     uint       `gorm:"not null;index:idx_alert_user_created" json:"user_id"`
	AlertType  string     `gorm:"size:40;not null;index" json:"alert_type"`
	PeriodType string     `gorm:"size:10;not null" json:"period_type"`
	PeriodKey  string     `gorm:"size:20;not null" json:"period_key"`
	Message    string     `gorm:"size:255;not null" json:"message"`
	Severity   string     `gorm:"size:10;not null;default:'warning'" json:"severity"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index:idx_alert_user_created" json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

func (Alert) TableName() string {
	return "alerts"
}

// NewBalanceAlert builds the alert for a non-ok period balance. The message
// keeps the original operator-facing wording, e.g. "Desviación WEEK (+02:15).".
func NewBalanceAlert(userID uint, periodType, periodKey, status string, differenceMinutes int) *Alert {
	severity := SeverityWarning
	if status == StatusExceeded {
		severity = SeverityCritical
	}

	return &Alert{
		UserID:     userID,
		AlertType:  AlertTypePrefix + periodType,
		PeriodType: periodType,
		PeriodKey:  periodKey,
		Message:    fmt.Sprintf("Desviación %s (%s).", strings.ToUpper(periodType), FormatSignedMinutes(differenceMinutes)),
		Severity:   severity,
	}
}
