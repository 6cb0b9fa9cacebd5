package repository

import (
	"errors"

	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleEntryRepository interface {
	Upsert(entry *models.ScheduleEntry) error
	GetByID(id uint) (*models.ScheduleEntry, error)
	GetByUserAndDate(userID uint, workDate string) (*models.ScheduleEntry, error)
	GetByUserAndRange(userID uint, startDate, endDate string) ([]*models.ScheduleEntry, error)
	GetByUserAndMonth(userID uint, year, month int) ([]*models.ScheduleEntry, error)
	PlannedMinutesByDate(userID uint, startDate, endDate string) (map[string]int, error)
	DeleteByID(id uint) error
	DeleteByUserID(userID uint) error
}

type GormScheduleEntryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormScheduleEntryRepository(db *gorm.DB) (*GormScheduleEntryRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.ScheduleEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate official_schedule table")
		return nil, err
	}

	logger.Info("Schedule entry repository initialized")

	return &GormScheduleEntryRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert inserts the plan for (user, date), replacing any previous row in
// place so that at most one plan exists per user and date.
func (r *GormScheduleEntryRepository) Upsert(entry *models.ScheduleEntry) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":         entry.UserID,
		"work_date":       entry.WorkDate,
		"planned_minutes": entry.PlannedMinutes,
	}).Debug("Upserting schedule entry")

	if !entry.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"user_id":   entry.UserID,
			"work_date": entry.WorkDate,
		}).Warn("Invalid schedule entry data")
		return errors.New("invalid schedule entry data")
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"planned_minutes", "shift_name", "day_type", "notes", "updated_at",
		}),
	}).Create(entry)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert schedule entry")
		return result.Error
	}

	return nil
}

func (r *GormScheduleEntryRepository) GetByID(id uint) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	result := r.db.First(&entry, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Schedule entry not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule entry by ID")
		return nil, result.Error
	}

	return &entry, nil
}

func (r *GormScheduleEntryRepository) GetByUserAndDate(userID uint, workDate string) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	result := r.db.Where("user_id = ? AND work_date = ?", userID, workDate).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule entry by user and date")
		return nil, result.Error
	}

	return &entry, nil
}

func (r *GormScheduleEntryRepository) GetByUserAndRange(userID uint, startDate, endDate string) ([]*models.ScheduleEntry, error) {
	var entries []*models.ScheduleEntry
	result := r.db.Where("user_id = ? AND work_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("work_date ASC, id ASC").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule entries by range")
		return nil, result.Error
	}

	return entries, nil
}

func (r *GormScheduleEntryRepository) GetByUserAndMonth(userID uint, year, month int) ([]*models.ScheduleEntry, error) {
	window := monthRange(year, month)
	return r.GetByUserAndRange(userID, window[0], window[1])
}

// PlannedMinutesByDate returns the official plan inside the range keyed by
// date string. Dates without a row are simply absent from the map.
func (r *GormScheduleEntryRepository) PlannedMinutesByDate(userID uint, startDate, endDate string) (map[string]int, error) {
	entries, err := r.GetByUserAndRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	planned := make(map[string]int, len(entries))
	for _, entry := range entries {
		planned[entry.WorkDate] = entry.PlannedMinutes
	}

	return planned, nil
}

func (r *GormScheduleEntryRepository) DeleteByID(id uint) error {
	r.logger.WithField("id", id).Info("Deleting schedule entry by ID")

	result := r.db.Delete(&models.ScheduleEntry{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete schedule entry")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Schedule entry not found for deletion")
		return errors.New("schedule entry not found")
	}

	return nil
}

func (r *GormScheduleEntryRepository) DeleteByUserID(userID uint) error {
	r.logger.WithField("user_id", userID).Info("Deleting all schedule entries for user")

	result := r.db.Where("user_id = ?", userID).Delete(&models.ScheduleEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user schedule entries")
		return result.Error
	}

	return nil
}
