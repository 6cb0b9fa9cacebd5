package repository

import (
	"time"

	"cuadrante-bot/pkg/period"
)

// monthRange returns the inclusive [first day, last day] of a calendar month
// as canonical date strings.
func monthRange(year, month int) [2]string {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return [2]string{period.DateKey(start), period.DateKey(end)}
}
