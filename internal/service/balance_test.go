package service_test

import (
	"errors"
	"fmt"
	"testing"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"
	"cuadrante-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	balances  *service.BalanceService
	settings  *service.SettingsService
	users     repository.UserRepository
	entries   repository.TimeEntryRepository
	schedule  repository.ScheduleEntryRepository
	balRepo   repository.PeriodBalanceRepository
	alertRepo repository.AlertRepository
	markRepo  repository.CalculationMarkRepository
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)
	entryRepo, err := repository.NewGormTimeEntryRepository(db)
	require.NoError(t, err)
	scheduleRepo, err := repository.NewGormScheduleEntryRepository(db)
	require.NoError(t, err)
	balanceRepo, err := repository.NewGormPeriodBalanceRepository(db)
	require.NoError(t, err)
	alertRepo, err := repository.NewGormAlertRepository(db)
	require.NoError(t, err)
	markRepo, err := repository.NewGormCalculationMarkRepository(db)
	require.NoError(t, err)
	settingRepo, err := repository.NewGormSettingRepository(db)
	require.NoError(t, err)

	settings := service.NewSettingsService(settingRepo)
	balances := service.NewBalanceService(
		entryRepo, scheduleRepo, balanceRepo, alertRepo, markRepo, userRepo, settings,
	)

	return &testEnv{
		balances:  balances,
		settings:  settings,
		users:     userRepo,
		entries:   entryRepo,
		schedule:  scheduleRepo,
		balRepo:   balanceRepo,
		alertRepo: alertRepo,
		markRepo:  markRepo,
	}
}

func (e *testEnv) newUser(t *testing.T, chatID int64) *models.User {
	user := &models.User{ChatID: chatID, FirstName: "Test", Role: models.RoleClient}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) addEntry(t *testing.T, userID uint, date string, minutes int) {
	entry := &models.TimeEntry{
		UserID:        userID,
		WorkDate:      date,
		WorkedMinutes: minutes,
		DayType:       models.DayTypeNormal,
	}
	require.NoError(t, e.entries.Create(entry))
}

func (e *testEnv) planDay(t *testing.T, userID uint, date string, minutes int) {
	entry := &models.ScheduleEntry{
		UserID:         userID,
		WorkDate:       date,
		PlannedMinutes: minutes,
		DayType:        models.DayTypeNormal,
	}
	require.NoError(t, e.schedule.Upsert(entry))
}

// week 2026-W11 runs Monday 2026-03-09 through Sunday 2026-03-15
var weekdays = []string{"2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13"}

func TestRecalculate_MatchingWeekIsOk(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 100)

	for _, day := range weekdays {
		env.planDay(t, user.ID, day, 480)
		env.addEntry(t, user.ID, day, 480)
	}

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 2400, week.WorkedMinutes)
	assert.Equal(t, 2400, week.PlannedMinutes)
	assert.Equal(t, 0, week.DifferenceMinutes)
	assert.Equal(t, models.StatusOK, week.Status)

	month, err := env.balRepo.GetByUserAndPeriod(user.ID, "month", "2026-03")
	require.NoError(t, err)
	require.NotNil(t, month)
	assert.Equal(t, models.StatusOK, month.Status)

	alerts, err := env.alertRepo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRecalculate_ShortFridayRaisesCriticalAlert(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 101)

	for _, day := range weekdays {
		env.planDay(t, user.ID, day, 480)
	}
	for _, day := range weekdays[:4] {
		env.addEntry(t, user.ID, day, 480)
	}
	env.addEntry(t, user.ID, "2026-03-13", 120)

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-13", "test"))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, -360, week.DifferenceMinutes)
	assert.Equal(t, 0, week.ExtraMinutes)
	assert.Equal(t, models.StatusExceeded, week.Status)

	alerts, err := env.alertRepo.GetByPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "WEEK")
	assert.Contains(t, alerts[0].Message, "-06:00")
}

func TestRecalculate_SurplusCountsAsExtraMinutes(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 102)

	env.planDay(t, user.ID, "2026-03-11", 480)
	env.addEntry(t, user.ID, "2026-03-11", 615)

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 135, week.DifferenceMinutes)
	assert.Equal(t, 135, week.ExtraMinutes)
	assert.Equal(t, models.StatusWarning, week.Status)

	alerts, err := env.alertRepo.GetByPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "+02:15")
}

func TestRecalculate_ContractFallbackFillsUnscheduledDays(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 103)

	require.NoError(t, env.settings.SetFallbackConfig(models.FallbackModeContract, 480))

	// only three of seven days carry an official schedule
	for _, day := range weekdays[:3] {
		env.planDay(t, user.ID, day, 400)
	}

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 3*400+4*480, week.PlannedMinutes)
}

func TestRecalculate_ZeroFallbackIgnoresUnscheduledDays(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 104)

	for _, day := range weekdays[:3] {
		env.planDay(t, user.ID, day, 400)
	}

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	week, err := env.balRepo.GetByUserAndPeriod(user.ID, "week", "2026-W11")
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, 1200, week.PlannedMinutes)
}

func TestRecalculate_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 105)

	env.planDay(t, user.ID, "2026-03-11", 480)
	env.addEntry(t, user.ID, "2026-03-11", 480)

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))
	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	balances, err := env.balRepo.GetByUser(user.ID)
	require.NoError(t, err)
	// one week row and one month row, never duplicated
	assert.Len(t, balances, 2)
}

func TestRecalculate_AlertClearedWhenBackWithinLimits(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 106)

	env.planDay(t, user.ID, "2026-03-11", 480)
	env.addEntry(t, user.ID, "2026-03-11", 330)

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	alerts, err := env.alertRepo.GetByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2) // week and month both at -02:30

	env.addEntry(t, user.ID, "2026-03-11", 150)
	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))

	alerts, err = env.alertRepo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRecalculate_InvalidInputIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 107)

	require.NoError(t, env.balances.RecalculateForUserAndDate(0, "2026-03-11", "test"))
	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "not-a-date", "test"))

	balances, err := env.balRepo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestGetBalances_NewestPeriodFirstPerType(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, 112)

	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-03-11", "test"))
	require.NoError(t, env.balances.RecalculateForUserAndDate(user.ID, "2026-04-15", "test"))

	balances, err := env.balances.GetBalances(user.ID)
	require.NoError(t, err)
	require.Len(t, balances, 4)

	keys := make([]string, len(balances))
	for i, b := range balances {
		keys[i] = b.PeriodKey
	}
	assert.Equal(t, []string{"2026-04", "2026-03", "2026-W16", "2026-W11"}, keys)
}

// failingEntryRepo errors for one user's aggregation and delegates the rest.
type failingEntryRepo struct {
	repository.TimeEntryRepository
	failUserID uint
}

func (r *failingEntryRepo) SumWorkedMinutes(userID uint, startDate, endDate string) (int, error) {
	if userID == r.failUserID {
		return 0, errors.New("storage offline")
	}
	return r.TimeEntryRepository.SumWorkedMinutes(userID, startDate, endDate)
}

func TestRecalculateAllUsers_IsolatesFailingUser(t *testing.T) {
	env := newTestEnv(t)
	healthy := env.newUser(t, 110)
	broken := env.newUser(t, 111)

	env.addEntry(t, healthy.ID, "2026-03-11", 480)

	balances := service.NewBalanceService(
		&failingEntryRepo{TimeEntryRepository: env.entries, failUserID: broken.ID},
		env.schedule, env.balRepo, env.alertRepo, env.markRepo, env.users, env.settings,
	)

	processed, failures := balances.RecalculateAllUsers("test")

	assert.Equal(t, 1, processed)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), fmt.Sprintf("user %d", broken.ID))
	assert.Contains(t, failures[0].Error(), "storage offline")

	// the healthy user's sweep still landed
	stored, err := env.balRepo.GetByUser(healthy.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	skipped, err := env.balRepo.GetByUser(broken.ID)
	require.NoError(t, err)
	assert.Empty(t, skipped)
}

func TestRecalculateAllUsers(t *testing.T) {
	env := newTestEnv(t)
	first := env.newUser(t, 108)
	second := env.newUser(t, 109)

	env.addEntry(t, first.ID, "2026-03-11", 480)
	env.addEntry(t, second.ID, "2026-03-11", 240)

	processed, failures := env.balances.RecalculateAllUsers("test")

	assert.Equal(t, 2, processed)
	assert.Empty(t, failures)

	balances, err := env.balRepo.GetByUser(first.ID)
	require.NoError(t, err)
	assert.Len(t, balances, 2)
}
