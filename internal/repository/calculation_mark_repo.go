package repository

import (
	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// markHistoryLimit caps how many calculation marks are kept per user.
const markHistoryLimit = 50

type CalculationMarkRepository interface {
	Record(mark *models.CalculationMark) error
	GetByUser(userID uint) ([]*models.CalculationMark, error)
	DeleteByUserID(userID uint) error
}

type GormCalculationMarkRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormCalculationMarkRepository(db *gorm.DB) (*GormCalculationMarkRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.CalculationMark{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate calculation_marks table")
		return nil, err
	}

	logger.Info("Calculation mark repository initialized")

	return &GormCalculationMarkRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Record upserts the mark for its (user, period type, period key) tuple and
// prunes the user's history down to the retention limit.
func (r *GormCalculationMarkRepository) Record(mark *models.CalculationMark) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "period_type"}, {Name: "period_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"trigger", "calculated_at"}),
		}).Create(mark)
		if result.Error != nil {
			return result.Error
		}

		var stale []uint
		if err := tx.Model(&models.CalculationMark{}).
			Where("user_id = ?", mark.UserID).
			Order("calculated_at DESC, id DESC").
			Offset(markHistoryLimit).
			Pluck("id", &stale).Error; err != nil {
			return err
		}

		if len(stale) == 0 {
			return nil
		}

		return tx.Delete(&models.CalculationMark{}, stale).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to record calculation mark")
		return err
	}

	return nil
}

func (r *GormCalculationMarkRepository) GetByUser(userID uint) ([]*models.CalculationMark, error) {
	var marks []*models.CalculationMark
	result := r.db.Where("user_id = ?", userID).
		Order("calculated_at DESC, id DESC").
		Find(&marks)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get calculation marks")
		return nil, result.Error
	}

	return marks, nil
}

func (r *GormCalculationMarkRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.CalculationMark{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user calculation marks")
		return result.Error
	}

	return nil
}
