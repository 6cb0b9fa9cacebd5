package service

import (
	"errors"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"
	"cuadrante-bot/pkg/period"

	"github.com/sirupsen/logrus"
)

// ScheduleService manages the official planned schedule. Schedule edits
// only affect the periods containing the edited date, so unlike time
// entry edits they never force a refresh of the open periods.
type ScheduleService struct {
	scheduleRepo repository.ScheduleEntryRepository
	balances     *BalanceService
	logger       *logrus.Logger
}

func NewScheduleService(scheduleRepo repository.ScheduleEntryRepository, balances *BalanceService) *ScheduleService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		balances:     balances,
		logger:       logger,
	}
}

// Upsert stores or replaces the planned entry for one user and date.
func (s *ScheduleService) Upsert(entry *models.ScheduleEntry) error {
	if !entry.IsValid() {
		return errors.New("invalid schedule entry data")
	}

	if _, err := period.ParseDate(entry.WorkDate); err != nil {
		return errors.New("work date must be in YYYY-MM-DD format")
	}

	if err := s.scheduleRepo.Upsert(entry); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   entry.UserID,
		"work_date": entry.WorkDate,
		"minutes":   entry.PlannedMinutes,
	}).Info("Schedule entry saved")

	if err := s.balances.RecalculateForUserAndDate(entry.UserID, entry.WorkDate, TriggerScheduleSaved); err != nil {
		s.logger.WithError(err).Error("Failed to recalculate balances after schedule change")
	}

	return nil
}

func (s *ScheduleService) Delete(id uint) error {
	entry, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.New("schedule entry not found")
	}

	if err := s.scheduleRepo.DeleteByID(id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":        id,
		"user_id":   entry.UserID,
		"work_date": entry.WorkDate,
	}).Info("Schedule entry deleted")

	if err := s.balances.RecalculateForUserAndDate(entry.UserID, entry.WorkDate, TriggerScheduleWiped); err != nil {
		s.logger.WithError(err).Error("Failed to recalculate balances after schedule change")
	}

	return nil
}

func (s *ScheduleService) GetByID(id uint) (*models.ScheduleEntry, error) {
	return s.scheduleRepo.GetByID(id)
}

func (s *ScheduleService) GetByUserAndDate(userID uint, workDate string) (*models.ScheduleEntry, error) {
	return s.scheduleRepo.GetByUserAndDate(userID, workDate)
}

func (s *ScheduleService) GetByUserAndMonth(userID uint, year, month int) ([]*models.ScheduleEntry, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, errors.New("invalid year or month")
	}
	return s.scheduleRepo.GetByUserAndMonth(userID, year, month)
}
