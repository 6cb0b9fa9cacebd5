package service

import (
	"fmt"
	"time"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"
	"cuadrante-bot/pkg/period"

	"github.com/sirupsen/logrus"
)

// AlertNotifier receives alerts that need to reach a human right away.
// The Telegram admin notifier implements it; a nil notifier disables pushes.
type AlertNotifier interface {
	NotifyAlert(user *models.User, alert *models.Alert)
}

// BalanceService recomputes the week and month balances of a user around
// a given date, classifies them and keeps the alert table in sync.
type BalanceService struct {
	timeEntryRepo repository.TimeEntryRepository
	scheduleRepo  repository.ScheduleEntryRepository
	balanceRepo   repository.PeriodBalanceRepository
	alertRepo     repository.AlertRepository
	markRepo      repository.CalculationMarkRepository
	userRepo      repository.UserRepository
	settings      *SettingsService
	notifier      AlertNotifier
	logger        *logrus.Logger
}

func NewBalanceService(
	timeEntryRepo repository.TimeEntryRepository,
	scheduleRepo repository.ScheduleEntryRepository,
	balanceRepo repository.PeriodBalanceRepository,
	alertRepo repository.AlertRepository,
	markRepo repository.CalculationMarkRepository,
	userRepo repository.UserRepository,
	settings *SettingsService,
) *BalanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &BalanceService{
		timeEntryRepo: timeEntryRepo,
		scheduleRepo:  scheduleRepo,
		balanceRepo:   balanceRepo,
		alertRepo:     alertRepo,
		markRepo:      markRepo,
		userRepo:      userRepo,
		settings:      settings,
		logger:        logger,
	}
}

// SetNotifier attaches an optional push channel for critical alerts.
func (s *BalanceService) SetNotifier(notifier AlertNotifier) {
	s.notifier = notifier
}

// RecalculateForUserAndDate recomputes the ISO week and the calendar month
// containing workDate for one user. Invalid input is ignored without error
// so that callers can fire recomputes unconditionally.
func (s *BalanceService) RecalculateForUserAndDate(userID uint, workDate string, trigger string) error {
	if userID == 0 {
		return nil
	}

	day, err := period.ParseDate(workDate)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":   userID,
			"work_date": workDate,
		}).Debug("Skipping recalculation for unparseable date")
		return nil
	}

	// One fallback snapshot covers both windows of this run, so a config
	// change mid-recompute cannot split the week and month values.
	fallbackMinutes, err := s.settings.FallbackMinutes()
	if err != nil {
		return fmt.Errorf("resolve fallback minutes: %w", err)
	}

	for _, window := range []period.Window{period.Week(day), period.Month(day)} {
		if err := s.recomputeWindow(userID, window, fallbackMinutes, trigger); err != nil {
			return err
		}
	}

	return nil
}

// RecalculateOpenPeriods recomputes the periods containing today.
func (s *BalanceService) RecalculateOpenPeriods(userID uint, trigger string) error {
	return s.RecalculateForUserAndDate(userID, period.DateKey(period.Today()), trigger)
}

// RecalculateAllUsers recomputes the open periods of every known user.
// A failing user does not stop the sweep; the count of successfully
// processed users is returned together with the per-user errors.
func (s *BalanceService) RecalculateAllUsers(trigger string) (int, []error) {
	ids, err := s.userRepo.GetAllIDs()
	if err != nil {
		return 0, []error{err}
	}

	processed := 0
	var failures []error

	for _, id := range ids {
		if err := s.RecalculateOpenPeriods(id, trigger); err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id": id,
				"trigger": trigger,
			}).WithError(err).Error("Failed to recalculate user balances")
			failures = append(failures, fmt.Errorf("user %d: %w", id, err))
			continue
		}
		processed++
	}

	s.logger.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    len(failures),
		"trigger":   trigger,
	}).Info("Bulk recalculation finished")

	return processed, failures
}

// GetBalances returns the stored balances of a user, grouped by period type
// with the newest period first within each type.
func (s *BalanceService) GetBalances(userID uint) ([]*models.PeriodBalance, error) {
	return s.balanceRepo.GetByUser(userID)
}

// GetBalance returns one stored balance, or nil when never computed.
func (s *BalanceService) GetBalance(userID uint, periodType, periodKey string) (*models.PeriodBalance, error) {
	return s.balanceRepo.GetByUserAndPeriod(userID, periodType, periodKey)
}

// GetBalancesForPeriod returns the balances of every user for one period.
func (s *BalanceService) GetBalancesForPeriod(periodType, periodKey string) ([]*models.PeriodBalance, error) {
	return s.balanceRepo.GetByPeriod(periodType, periodKey)
}

// GetAlerts returns the open alerts of a user.
func (s *BalanceService) GetAlerts(userID uint) ([]*models.Alert, error) {
	return s.alertRepo.GetByUser(userID)
}

func (s *BalanceService) recomputeWindow(userID uint, window period.Window, fallbackMinutes int, trigger string) error {
	startKey := period.DateKey(window.Start)
	endKey := period.DateKey(window.End)

	worked, err := s.timeEntryRepo.SumWorkedMinutes(userID, startKey, endKey)
	if err != nil {
		return fmt.Errorf("sum worked minutes for %s: %w", window.Key, err)
	}

	plannedByDate, err := s.scheduleRepo.PlannedMinutesByDate(userID, startKey, endKey)
	if err != nil {
		return fmt.Errorf("load schedule for %s: %w", window.Key, err)
	}

	planned := 0
	for _, day := range window.Days() {
		if minutes, ok := plannedByDate[period.DateKey(day)]; ok {
			planned += minutes
		} else {
			planned += fallbackMinutes
		}
	}

	diff := worked - planned
	extra := diff
	if extra < 0 {
		extra = 0
	}
	status := models.ClassifyStatus(diff)

	balance := &models.PeriodBalance{
		UserID:            userID,
		PeriodType:        window.Type,
		PeriodKey:         window.Key,
		WorkedMinutes:     worked,
		PlannedMinutes:    planned,
		DifferenceMinutes: diff,
		ExtraMinutes:      extra,
		Status:            status,
		CalculatedAt:      time.Now(),
	}

	if err := s.balanceRepo.Replace(balance); err != nil {
		return fmt.Errorf("store balance %s: %w", window.Key, err)
	}

	var alert *models.Alert
	if status != models.StatusOK {
		alert = models.NewBalanceAlert(userID, window.Type, window.Key, status, diff)
	}

	if err := s.alertRepo.ReplaceForPeriod(userID, window.Type, window.Key, alert); err != nil {
		return fmt.Errorf("sync alerts %s: %w", window.Key, err)
	}

	mark := &models.CalculationMark{
		UserID:       userID,
		PeriodType:   window.Type,
		PeriodKey:    window.Key,
		Trigger:      trigger,
		CalculatedAt: time.Now(),
	}
	if err := s.markRepo.Record(mark); err != nil {
		s.logger.WithError(err).Warn("Failed to record calculation mark")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"period":  window.Key,
		"worked":  worked,
		"planned": planned,
		"diff":    diff,
		"status":  status,
	}).Debug("Period balance recalculated")

	if alert != nil && alert.Severity == models.SeverityCritical && s.notifier != nil {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to load user for alert notification")
		} else {
			s.notifier.NotifyAlert(user, alert)
		}
	}

	return nil
}
