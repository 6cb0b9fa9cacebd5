package models_test

import (
	"testing"

	"cuadrante-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		diff int
		want string
	}{
		{"zero difference", 0, models.StatusOK},
		{"just below warning", 119, models.StatusOK},
		{"warning threshold", 120, models.StatusWarning},
		{"just below exceeded", 299, models.StatusWarning},
		{"exceeded threshold", 300, models.StatusExceeded},
		{"deficit below warning", -119, models.StatusOK},
		{"deficit warning", -120, models.StatusWarning},
		{"deficit exceeded", -300, models.StatusExceeded},
		{"large surplus", 1000, models.StatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ClassifyStatus(tt.diff))
		})
	}
}

func TestFormatSignedMinutes(t *testing.T) {
	assert.Equal(t, "+02:15", models.FormatSignedMinutes(135))
	assert.Equal(t, "-06:00", models.FormatSignedMinutes(-360))
	assert.Equal(t, "+00:00", models.FormatSignedMinutes(0))
	assert.Equal(t, "-00:30", models.FormatSignedMinutes(-30))
}

func TestParseClock(t *testing.T) {
	minutes, err := models.ParseClock("8:00")
	require.NoError(t, err)
	assert.Equal(t, 480, minutes)

	minutes, err = models.ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, minutes)

	_, err = models.ParseClock("480")
	assert.Error(t, err)

	_, err = models.ParseClock("8:75")
	assert.Error(t, err)

	_, err = models.ParseClock("-1:00")
	assert.Error(t, err)
}

func TestNewBalanceAlert(t *testing.T) {
	alert := models.NewBalanceAlert(7, "week", "2026-W10", models.StatusExceeded, -360)

	assert.Equal(t, uint(7), alert.UserID)
	assert.Equal(t, "balance_week", alert.AlertType)
	assert.Equal(t, models.SeverityCritical, alert.Severity)
	assert.Equal(t, "Desviación WEEK (-06:00).", alert.Message)

	warning := models.NewBalanceAlert(7, "month", "2026-03", models.StatusWarning, 135)
	assert.Equal(t, models.SeverityWarning, warning.Severity)
	assert.Equal(t, "Desviación MONTH (+02:15).", warning.Message)
}
