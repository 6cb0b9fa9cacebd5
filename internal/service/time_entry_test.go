package service_test

import (
	"testing"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntryCreate_TriggersRecalculation(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 200)
	entries := service.NewTimeEntryService(env.entries, env.balances)

	entry := &models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      "2026-03-11",
		WorkedMinutes: 480,
		DayType:       models.DayTypeNormal,
	}
	require.NoError(t, entries.Create(entry))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 480, week.WorkedMinutes)
}

func TestTimeEntryCreate_PersistsDayFlags(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 204)
	entries := service.NewTimeEntryService(env.entries, env.balances)

	entry := &models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      "2026-03-11",
		Shift:         "M",
		WorkedMinutes: 480,
		ExtraMinutes:  90,
		VacationDay:   true,
		PersonalDay:   true,
		Notes:         "covered the late handover",
		DayType:       models.DayTypeHoliday,
	}
	require.NoError(t, entries.Create(entry))

	stored, err := entries.GetByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 90, stored.ExtraMinutes)
	assert.True(t, stored.VacationDay)
	assert.True(t, stored.PersonalDay)
	assert.Equal(t, "covered the late handover", stored.Notes)
	assert.Equal(t, models.DayTypeHoliday, stored.DayType)
}

func TestTimeEntryCreate_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 201)
	entries := service.NewTimeEntryService(env.entries, env.balances)

	err := entries.Create(&models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      "11/03/2026",
		WorkedMinutes: 480,
		DayType:       models.DayTypeNormal,
	})
	assert.Error(t, err)

	err = entries.Create(&models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      "2026-03-11",
		WorkedMinutes: -5,
		DayType:       models.DayTypeNormal,
	})
	assert.Error(t, err)
}

func TestTimeEntryDelete_RefreshesBalance(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 202)
	entries := service.NewTimeEntryService(env.entries, env.balances)

	entry := &models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      "2026-03-11",
		WorkedMinutes: 480,
		DayType:       models.DayTypeNormal,
	}
	require.NoError(t, entries.Create(entry))
	require.NoError(t, entries.Delete(entry.ID))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 0, week.WorkedMinutes)
}

func TestScheduleUpsert_ReplacesExistingDay(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 203)
	schedule := service.NewScheduleService(env.schedule, env.balances)

	require.NoError(t, schedule.Upsert(&models.ScheduleEntry{
		UserID:         user.ID,
		WorkDate:       "2026-03-11",
		PlannedMinutes: 480,
		DayType:        models.DayTypeNormal,
	}))
	require.NoError(t, schedule.Upsert(&models.ScheduleEntry{
		UserID:         user.ID,
		WorkDate:       "2026-03-11",
		PlannedMinutes: 420,
		DayType:        models.DayTypeNormal,
	}))

	stored, err := env.schedule.GetByUserAndDate(user.ID, "2026-03-11")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 420, stored.PlannedMinutes)

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 420, week.PlannedMinutes)
}
