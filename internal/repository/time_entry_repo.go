package repository

import (
	"errors"

	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TimeEntryRepository interface {
	Create(entry *models.TimeEntry) error
	Update(entry *models.TimeEntry) error
	GetByID(id uint) (*models.TimeEntry, error)
	GetByUserAndRange(userID uint, startDate, endDate string) ([]*models.TimeEntry, error)
	GetByUserAndMonth(userID uint, year, month int) ([]*models.TimeEntry, error)
	SumWorkedMinutes(userID uint, startDate, endDate string) (int, error)
	DeleteByID(id uint) error
	DeleteByUserID(userID uint) error
}

type GormTimeEntryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormTimeEntryRepository(db *gorm.DB) (*GormTimeEntryRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.TimeEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate time_entries table")
		return nil, err
	}

	logger.Info("Time entry repository initialized")

	return &GormTimeEntryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":   entry.UserID,
		"work_date": entry.WorkDate,
	}).Debug("Creating time entry")

	if !entry.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"user_id":   entry.UserID,
			"work_date": entry.WorkDate,
		}).Warn("Invalid time entry data")
		return errors.New("invalid time entry data")
	}

	result := r.db.Create(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create time entry")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":             entry.ID,
		"user_id":        entry.UserID,
		"worked_minutes": entry.WorkedMinutes,
	}).Debug("Time entry created successfully")

	return nil
}

func (r *GormTimeEntryRepository) Update(entry *models.TimeEntry) error {
	r.logger.WithFields(logrus.Fields{
		"id":      entry.ID,
		"user_id": entry.UserID,
	}).Debug("Updating time entry")

	if !entry.IsValid() {
		r.logger.WithField("id", entry.ID).Warn("Invalid time entry data for update")
		return errors.New("invalid time entry data")
	}

	existing, err := r.GetByID(entry.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		r.logger.WithField("id", entry.ID).Warn("Time entry not found for update")
		return errors.New("time entry not found")
	}

	result := r.db.Save(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update time entry")
		return result.Error
	}

	return nil
}

func (r *GormTimeEntryRepository) GetByID(id uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	result := r.db.First(&entry, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Time entry not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time entry by ID")
		return nil, result.Error
	}

	return &entry, nil
}

func (r *GormTimeEntryRepository) GetByUserAndRange(userID uint, startDate, endDate string) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	result := r.db.Where("user_id = ? AND work_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("work_date ASC, id ASC").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time entries by range")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"start":   startDate,
		"end":     endDate,
		"count":   len(entries),
	}).Debug("Retrieved time entries by range")

	return entries, nil
}

func (r *GormTimeEntryRepository) GetByUserAndMonth(userID uint, year, month int) ([]*models.TimeEntry, error) {
	window := monthRange(year, month)
	return r.GetByUserAndRange(userID, window[0], window[1])
}

// SumWorkedMinutes aggregates worked minutes across [startDate, endDate]
// inclusive. A user with no entries in range yields 0.
func (r *GormTimeEntryRepository) SumWorkedMinutes(userID uint, startDate, endDate string) (int, error) {
	var total int64
	result := r.db.Model(&models.TimeEntry{}).
		Select("COALESCE(SUM(worked_minutes), 0)").
		Where("user_id = ? AND work_date BETWEEN ? AND ?", userID, startDate, endDate).
		Scan(&total)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to sum worked minutes")
		return 0, result.Error
	}

	return int(total), nil
}

func (r *GormTimeEntryRepository) DeleteByID(id uint) error {
	r.logger.WithField("id", id).Info("Deleting time entry by ID")

	result := r.db.Delete(&models.TimeEntry{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete time entry")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Time entry not found for deletion")
		return errors.New("time entry not found")
	}

	return nil
}

func (r *GormTimeEntryRepository) DeleteByUserID(userID uint) error {
	r.logger.WithField("user_id", userID).Info("Deleting all time entries for user")

	result := r.db.Where("user_id = ?", userID).Delete(&models.TimeEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user time entries")
		return result.Error
	}

	return nil
}
