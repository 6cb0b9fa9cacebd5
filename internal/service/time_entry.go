package service

import (
	"errors"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"
	"cuadrante-bot/pkg/period"

	"github.com/sirupsen/logrus"
)

const (
	TriggerEntrySaved    = "entry_saved"
	TriggerEntryDeleted  = "entry_deleted"
	TriggerScheduleSaved = "schedule_saved"
	TriggerScheduleWiped = "schedule_deleted"
	TriggerManual        = "manual"
	TriggerDailySweep    = "cron_daily"
)

// TimeEntryService manages worked-time records. Every mutation triggers a
// recompute of the periods around the touched date and around today, so
// open balances never lag behind an edit to a past day.
type TimeEntryService struct {
	timeEntryRepo repository.TimeEntryRepository
	balances      *BalanceService
	logger        *logrus.Logger
}

func NewTimeEntryService(timeEntryRepo repository.TimeEntryRepository, balances *BalanceService) *TimeEntryService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &TimeEntryService{
		timeEntryRepo: timeEntryRepo,
		balances:      balances,
		logger:        logger,
	}
}

func (s *TimeEntryService) Create(entry *models.TimeEntry) error {
	if !entry.IsValid() {
		return errors.New("invalid time entry data")
	}

	if _, err := period.ParseDate(entry.WorkDate); err != nil {
		return errors.New("work date must be in YYYY-MM-DD format")
	}

	if err := s.timeEntryRepo.Create(entry); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   entry.UserID,
		"work_date": entry.WorkDate,
		"minutes":   entry.WorkedMinutes,
	}).Info("Time entry created")

	s.recalculateAround(entry.UserID, entry.WorkDate, TriggerEntrySaved)
	return nil
}

func (s *TimeEntryService) Update(entry *models.TimeEntry) error {
	if !entry.IsValid() {
		return errors.New("invalid time entry data")
	}

	if err := s.timeEntryRepo.Update(entry); err != nil {
		return err
	}

	s.recalculateAround(entry.UserID, entry.WorkDate, TriggerEntrySaved)
	return nil
}

func (s *TimeEntryService) Delete(id uint) error {
	entry, err := s.timeEntryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.New("time entry not found")
	}

	if err := s.timeEntryRepo.DeleteByID(id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":        id,
		"user_id":   entry.UserID,
		"work_date": entry.WorkDate,
	}).Info("Time entry deleted")

	s.recalculateAround(entry.UserID, entry.WorkDate, TriggerEntryDeleted)
	return nil
}

func (s *TimeEntryService) GetByID(id uint) (*models.TimeEntry, error) {
	return s.timeEntryRepo.GetByID(id)
}

func (s *TimeEntryService) GetByUserAndMonth(userID uint, year, month int) ([]*models.TimeEntry, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, errors.New("invalid year or month")
	}
	return s.timeEntryRepo.GetByUserAndMonth(userID, year, month)
}

func (s *TimeEntryService) GetByUserAndRange(userID uint, startDate, endDate string) ([]*models.TimeEntry, error) {
	return s.timeEntryRepo.GetByUserAndRange(userID, startDate, endDate)
}

// recalculateAround refreshes the periods of the edited date and, when the
// edit touched a past day, the currently open periods as well.
func (s *TimeEntryService) recalculateAround(userID uint, workDate, trigger string) {
	if err := s.balances.RecalculateForUserAndDate(userID, workDate, trigger); err != nil {
		s.logger.WithError(err).Error("Failed to recalculate balances after entry change")
	}

	today := period.DateKey(period.Today())
	if workDate == today {
		return
	}

	day, err := period.ParseDate(workDate)
	if err != nil {
		return
	}
	if period.Week(period.Today()).Contains(day) && period.Month(period.Today()).Contains(day) {
		return
	}

	if err := s.balances.RecalculateOpenPeriods(userID, trigger); err != nil {
		s.logger.WithError(err).Error("Failed to recalculate open periods after entry change")
	}
}
